package main

// DemoConfig defines the structure of the configuration file: the input
// schema a query compiles against, and the query text itself.
type DemoConfig struct {
	Schema []SchemaColumn `yaml:"schema"`
	Query  string         `yaml:"query"`
}

// SchemaColumn names one input column and its scalar type, by the same
// five names columnrt.ScalarType accepts (Int32, Int64, Float64, String,
// Bool).
type SchemaColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}
