package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ariyn/exprdag/runtime/columnrt"
	"github.com/ariyn/exprdag/sqlbuild"
)

func main() {
	configPath := flag.String("config", "exprdag.yaml", "Path to configuration file")
	flag.Parse()

	configFile, err := os.ReadFile(*configPath)
	if err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		os.Exit(1)
	}

	var config DemoConfig
	if err := yaml.Unmarshal(configFile, &config); err != nil {
		fmt.Printf("Error parsing config file: %v\n", err)
		os.Exit(1)
	}

	schema := make(sqlbuild.Schema, len(config.Schema))
	for i, col := range config.Schema {
		typ, err := columnrt.ScalarType(col.Type)
		if err != nil {
			fmt.Printf("Error resolving type of column %s: %v\n", col.Name, err)
			os.Exit(1)
		}
		schema[i] = sqlbuild.ColumnDef{Name: col.Name, Type: typ}
	}

	fmt.Printf("Compiling query: %s\n", config.Query)
	d, err := sqlbuild.Build(config.Query, schema)
	if err != nil {
		fmt.Printf("Error compiling query: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(d.Dump())
	fmt.Println("Result columns:")
	for _, rc := range d.ResultColumns() {
		fmt.Printf("  %s: %s\n", rc.Name, rc.Type)
	}
}
