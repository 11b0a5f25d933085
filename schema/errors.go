package schema

import "errors"

// Sentinel errors returned by Compiler.Compile/CompileJSON and by $ref
// resolution. The teacher's errors.go carries a much larger grouped-sentinel
// set (network/IO, struct reflection, codegen, …) inherited from features
// this package doesn't implement; only the subset a draft-4,
// local-pointer-only validator can actually raise survives here.
var (
	// ErrInvalidSchemaValue is returned when Compile is given a *ucl.Value
	// that is neither a Bool nor an Object (the only two shapes a JSON
	// Schema document may take).
	ErrInvalidSchemaValue = errors.New("schema: schema value must be a boolean or an object")

	// ErrSchemaNotFound is returned by Compiler.GetSchema for an
	// unregistered name.
	ErrSchemaNotFound = errors.New("schema: no schema registered under that name")

	// ErrReferenceResolution is returned when a $ref's JSON Pointer does not
	// resolve to a subschema within the root document.
	ErrReferenceResolution = errors.New("schema: $ref does not resolve within the root schema")

	// ErrUnsupportedRef is returned for any $ref this package does not
	// support: draft-4 local fragment pointers ("#/a/b") and the bare root
	// reference ("#") are the only forms implemented (spec.md §4.9 — no
	// external URL resolution, no $dynamicRef/$anchor).
	ErrUnsupportedRef = errors.New(`schema: only local "#" and "#/a/b" references are supported`)

	// ErrInvalidPattern is returned when "pattern" or a patternProperties
	// key fails to compile as a regular expression.
	ErrInvalidPattern = errors.New("schema: invalid regular expression pattern")
)
