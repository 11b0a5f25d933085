// Package ucl implements the document model shared by the UCL parser,
// emitter, and schema validator: a tagged value tree with reference
// counting, insertion-ordered key-preserving object maps that merge
// duplicate keys into implicit arrays, and deep value comparison.
//
// Parsing lives in github.com/kaptinlin/ucl/parser, serialization in
// github.com/kaptinlin/ucl/emit, and draft-4 schema validation in
// github.com/kaptinlin/ucl/schema. All three operate on the *Value tree
// defined here.
package ucl
