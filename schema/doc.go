// Package schema implements the draft-4 JSON Schema validator described in
// spec.md §4.9: a schema compiles from a *ucl.Value (either parsed from the
// Config dialect or decoded from JSON) into a *Schema, and a *Schema
// validates instances that are themselves *ucl.Value trees.
//
// $ref only resolves local "#/a/b" fragment pointers into the root schema
// document; there is no URL/network resolution, no $id-scoped base URIs, and
// no $dynamicRef — those are 2019-09/2020-12 features outside draft-4.
package schema
