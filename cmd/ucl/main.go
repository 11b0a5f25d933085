// Package main implements the ucl reference CLI: parse a Config or JSON
// document, optionally validate it against a draft-4 JSON Schema, and
// re-emit it in any of the four supported formats.
//
// Usage:
//
//	ucl -in PATH -out PATH [-format ucl|json|compact_json|yaml] [-schema PATH]
//
// Flags:
//
//	-in string       input file path ("-" for stdin)
//	-out string      output file path ("-" for stdout)
//	-schema string   optional JSON Schema file to validate the input against
//	-format string   output format: ucl, json, compact_json, yaml (default "json")
//	-help            show help message
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/emit"
	"github.com/kaptinlin/ucl/parser"
	"github.com/kaptinlin/ucl/schema"
)

// Exit codes follow sysexits(3).
const (
	exUsage     = 64
	exDataErr   = 65
	exNoInput   = 66
	exCantCreat = 73
	exIOErr     = 74
	exOSErr     = 71
)

var (
	inPath     = flag.String("in", "-", `input file path ("-" for stdin)`)
	outPath    = flag.String("out", "-", `output file path ("-" for stdout)`)
	schemaPath = flag.String("schema", "", "optional JSON Schema file to validate the input against")
	formatName = flag.String("format", "json", "output format: ucl, json, compact_json, yaml")
	help       = flag.Bool("help", false, "show help message")
)

func main() {
	flag.Parse()

	if *help {
		showHelp()
		os.Exit(0)
	}

	format, err := parseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ucl:", err)
		os.Exit(exUsage)
	}

	input, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ucl: reading input:", err)
		os.Exit(exNoInput)
	}

	doc, err := parseInput(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ucl: parsing input:", err)
		os.Exit(exDataErr)
	}

	if *schemaPath != "" {
		if err := validateAgainstSchema(doc, *schemaPath); err != nil {
			fmt.Fprintln(os.Stderr, "ucl: schema validation failed:", err)
			os.Exit(exDataErr)
		}
	}

	output, err := emit.Emit(doc, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ucl: emitting output:", err)
		os.Exit(exIOErr)
	}

	if err := writeOutput(*outPath, output); err != nil {
		fmt.Fprintln(os.Stderr, "ucl: writing output:", err)
		os.Exit(exCantCreat)
	}
}

func parseFormat(name string) (emit.Format, error) {
	switch name {
	case "ucl", "config":
		return emit.Config, nil
	case "json":
		return emit.Json, nil
	case "compact_json":
		return emit.JsonCompact, nil
	case "yaml":
		return emit.Yaml, nil
	default:
		return 0, fmt.Errorf("unknown format %q", name)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// parseInput accepts either JSON or Config-dialect source through the one
// Config parser, since the Config dialect is a strict superset of JSON
// object/array syntax (spec.md §4.1).
func parseInput(data []byte) (*ucl.Value, error) {
	p := parser.New(0)
	if !p.AddChunk(data) {
		return nil, p.GetError()
	}
	return p.GetObject()
}

func validateAgainstSchema(doc *ucl.Value, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	compiler := schema.NewCompiler()
	s, err := compiler.CompileJSON("", data)
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	ok, info := s.Validate(doc)
	if !ok {
		return fmt.Errorf("%s: %s", info.Code, info.Message)
	}
	return nil
}

func showHelp() {
	fmt.Println(`ucl - parse, validate, and re-emit Config/JSON documents

USAGE:
    ucl [flags]

FLAGS:`)
	flag.PrintDefaults()
	fmt.Println(`
EXAMPLES:
    # Convert a Config-dialect file to pretty JSON
    ucl -in app.conf -out app.json -format json

    # Validate a document against a schema before converting to YAML
    ucl -in app.conf -schema app.schema.json -format yaml -out app.yaml

    # Read from stdin, write compact JSON to stdout
    cat app.conf | ucl -format compact_json`)
}
