package dag

import "strings"

// addNode is the single path every builder routes through (§4.3).
func (d *Dag) addNode(n *Node, canReplace bool) (*Node, error) {
	if d.index.contains(n.ResultName) && !canReplace {
		return nil, newErr(DuplicateColumn, "add_node", "column already exists: "+n.ResultName)
	}
	d.store.push(n)
	if n.Kind == Input {
		d.inputs = append(d.inputs, n)
	}
	if canReplace {
		d.index.replace(n)
	} else {
		d.index.insert(n)
	}
	return n, nil
}

// AddInput declares a stage input with no known constant value.
func (d *Dag) AddInput(name string, typ Type) (*Node, error) {
	return d.addNode(&Node{Kind: Input, ResultName: name, ResultType: typ}, false)
}

// AddInputColumn declares a stage input whose value is externally supplied
// as a constant (used when constants are passed in as inputs).
func (d *Dag) AddInputColumn(name string, col Column) (*Node, error) {
	if col == nil {
		return nil, newErr(LogicalError, "add_input", "nil column for input "+name)
	}
	return d.addNode(&Node{Kind: Input, ResultName: name, ResultType: col.Type(), Col: col, AllowConstantFolding: true}, false)
}

// AddColumn produces a COLUMN node; col must be non-nil.
func (d *Dag) AddColumn(name string, col Column) (*Node, error) {
	return d.addColumnNode(name, col, false)
}

// addColumnNode is AddColumn with a caller-chosen canReplace, for internal
// builders (e.g. MakeConvertingActions) that need to add a COLUMN node
// under a name that may already be indexed.
func (d *Dag) addColumnNode(name string, col Column, canReplace bool) (*Node, error) {
	if col == nil {
		return nil, newErr(LogicalError, "add_column", "nil column for "+name)
	}
	return d.addNode(&Node{Kind: ColumnKind, ResultName: name, ResultType: col.Type(), Col: col, AllowConstantFolding: true}, canReplace)
}

// FindNode resolves a name to a node via the index.
func (d *Dag) FindNode(name string) (*Node, error) {
	n, ok := d.index.find(name)
	if !ok {
		return nil, newErr(UnknownIdentifier, "find_node", "unknown identifier: "+name)
	}
	return n, nil
}

// AddAlias renames sourceName to newName.
func (d *Dag) AddAlias(sourceName, newName string) (*Node, error) {
	src, err := d.FindNode(sourceName)
	if err != nil {
		return nil, err
	}
	return d.addAliasNode(src, newName, false)
}

func (d *Dag) addAliasNode(src *Node, newName string, canReplace bool) (*Node, error) {
	n := &Node{
		Kind:                 Alias,
		ResultName:           newName,
		ResultType:           src.ResultType,
		Col:                  src.Col,
		Children:             []*Node{src},
		AllowConstantFolding: src.AllowConstantFolding,
	}
	return d.addNode(n, canReplace)
}

// AddArrayJoin unnests an array-typed input/expression. Constant folding
// is never applied to the result -- array-join changes row count.
func (d *Dag) AddArrayJoin(sourceName, resultName string) (*Node, error) {
	src, err := d.FindNode(sourceName)
	if err != nil {
		return nil, err
	}
	elem, ok := src.ResultType.NestedElementType()
	if !ok {
		return nil, newErr(TypeMismatch, "add_array_join", sourceName+" is not an array type")
	}
	n := &Node{
		Kind:       ArrayJoin,
		ResultName: resultName,
		ResultType: elem,
		Children:   []*Node{src},
	}
	return d.addNode(n, false)
}

// AddFunctionByName resolves each argument name via the index, then calls
// AddFunction.
func (d *Dag) AddFunctionByName(builder FunctionOverloadResolver, argumentNames []string, resultName string) (*Node, error) {
	children := make([]*Node, 0, len(argumentNames))
	for _, name := range argumentNames {
		n, err := d.FindNode(name)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return d.AddFunction(builder, children, resultName, false)
}

// AddFunction is the core function-application builder (§4.3 steps 1-6).
func (d *Dag) AddFunction(builder FunctionOverloadResolver, children []*Node, resultName string, canReplace bool) (*Node, error) {
	args := make([]FunctionArgument, len(children))
	allConst := true
	allowFold := true
	for i, c := range children {
		args[i] = FunctionArgument{Col: c.Col, Type: c.ResultType, Name: c.ResultName}
		if !c.isConstant() {
			allConst = false
		}
		if !c.AllowConstantFolding {
			allowFold = false
		}
	}

	base, err := builder.Build(args)
	if err != nil {
		return nil, wrapErr(LogicalError, "add_function", err)
	}
	resultType := base.ResultType()
	instance, err := base.Prepare(args)
	if err != nil {
		return nil, wrapErr(LogicalError, "add_function", err)
	}

	n := &Node{
		Kind:                 Function,
		ResultType:           resultType,
		Children:             children,
		FuncBuilder:          builder,
		FuncBase:             base,
		FuncInstance:         instance,
		AllowConstantFolding: allowFold,
	}

	if allConst && base.IsSuitableForConstantFolding() && (!d.Settings.CompileExpressions || base.IsDeterministic()) {
		nRows := 0
		if len(args) > 0 && args[0].Col != nil {
			nRows = args[0].Col.Size()
		}
		col, err := instance.Execute(args, resultType, nRows, true)
		if err != nil {
			return nil, wrapErr(LogicalError, "add_function", err)
		}
		if col != nil && col.IsConstant() {
			if col.IsEmpty() {
				col = col.CloneResized(1)
			}
			n.Col = col
		}
	} else if base.IsSuitableForConstantFolding() {
		if col, ok := base.ConstantIfAlwaysConstantWithArgs(args); ok && col != nil {
			n.Col = col
			n.AllowConstantFolding = false
		}
	}

	if resultName == "" {
		resultName = defaultFunctionName(builder.Name(), children)
	}
	n.ResultName = resultName

	return d.addNode(n, canReplace)
}

func defaultFunctionName(fname string, children []*Node) string {
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.ResultName
	}
	var b strings.Builder
	b.WriteString(fname)
	b.WriteByte('(')
	b.WriteString(strings.Join(names, ", "))
	b.WriteByte(')')
	return b.String()
}
