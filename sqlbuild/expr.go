package sqlbuild

import (
	"fmt"
	"strconv"

	"github.com/xwb1989/sqlparser"

	"github.com/ariyn/exprdag/dag"
	"github.com/ariyn/exprdag/runtime/columnrt"
)

// compiler threads the dag being built and the registry function names are
// resolved against through the recursive-descent walk below. litCount
// gives every literal column its own _litN name, so literals never collide
// with each other, however many times the same value appears; an input
// already named _litN makes that literal's AddColumn fail.
type compiler struct {
	dag      *dag.Dag
	runtime  *columnrt.Runtime
	litCount int
}

// compile walks one sqlparser expression node and returns the dag.Node
// computing it, building whatever function/column nodes are needed along
// the way.
func (c *compiler) compile(expr sqlparser.Expr) (*dag.Node, error) {
	switch e := expr.(type) {
	case *sqlparser.ParenExpr:
		return c.compile(e.Expr)

	case *sqlparser.ColName:
		return c.dag.FindNode(e.Name.String())

	case *sqlparser.SQLVal:
		return c.literal(e)

	case *sqlparser.AndExpr:
		return c.binary("and", e.Left, e.Right)
	case *sqlparser.OrExpr:
		return c.binary("or", e.Left, e.Right)

	case *sqlparser.NotExpr:
		inner, err := c.compile(e.Expr)
		if err != nil {
			return nil, err
		}
		return c.apply("not", inner)

	case *sqlparser.ComparisonExpr:
		name, err := comparisonFuncName(e.Operator)
		if err != nil {
			return nil, err
		}
		return c.binary(name, e.Left, e.Right)

	case *sqlparser.BinaryExpr:
		name, err := arithmeticFuncName(e.Operator)
		if err != nil {
			return nil, err
		}
		return c.binary(name, e.Left, e.Right)

	default:
		return nil, fmt.Errorf("sqlbuild: unsupported expression %T", expr)
	}
}

func (c *compiler) binary(name string, left, right sqlparser.Expr) (*dag.Node, error) {
	l, err := c.compile(left)
	if err != nil {
		return nil, err
	}
	r, err := c.compile(right)
	if err != nil {
		return nil, err
	}
	return c.apply(name, l, r)
}

func (c *compiler) apply(name string, args ...*dag.Node) (*dag.Node, error) {
	resolver, ok := c.runtime.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("sqlbuild: no function registered for %q", name)
	}
	return c.dag.AddFunction(resolver, args, "", true)
}

func (c *compiler) literal(v *sqlparser.SQLVal) (*dag.Node, error) {
	switch v.Type {
	case sqlparser.StrVal:
		return c.addLiteral(columnrt.NewStringScalar(string(v.Val)))
	case sqlparser.IntVal:
		n, err := strconv.ParseInt(string(v.Val), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sqlbuild: invalid integer literal %q: %w", v.Val, err)
		}
		return c.addLiteral(columnrt.NewInt64Scalar(n))
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		if err != nil {
			return nil, fmt.Errorf("sqlbuild: invalid float literal %q: %w", v.Val, err)
		}
		return c.addLiteral(columnrt.NewFloat64Scalar(f))
	default:
		return nil, fmt.Errorf("sqlbuild: unsupported literal kind %v", v.Type)
	}
}

func (c *compiler) addLiteral(col columnrt.Column) (*dag.Node, error) {
	name := fmt.Sprintf("_lit%d", c.litCount)
	c.litCount++
	return c.dag.AddColumn(name, col)
}

func comparisonFuncName(op string) (string, error) {
	switch op {
	case "=":
		return "equals", nil
	case "!=", "<>":
		return "notEquals", nil
	case "<":
		return "less", nil
	case "<=":
		return "lessOrEquals", nil
	case ">":
		return "greater", nil
	case ">=":
		return "greaterOrEquals", nil
	default:
		return "", fmt.Errorf("sqlbuild: unsupported comparison operator %q", op)
	}
}

func arithmeticFuncName(op string) (string, error) {
	switch op {
	case "+":
		return "plus", nil
	case "-":
		return "minus", nil
	case "*":
		return "multiply", nil
	case "/":
		return "divide", nil
	default:
		return "", fmt.Errorf("sqlbuild: unsupported arithmetic operator %q", op)
	}
}
