package schema

import (
	"regexp"

	"github.com/kaptinlin/ucl"
)

// Dependency is one entry of draft-4's unified "dependencies" keyword: a
// property name maps either to a list of other property names that must
// also be present, or to a subschema the whole instance must satisfy when
// the triggering property is present.
type Dependency struct {
	Properties []string
	Schema     *Schema
}

// Schema is a compiled draft-4 JSON Schema node. It holds the same keyword
// set the teacher's schema.go does, narrowed to spec.md §4.9's draft-4 list
// plus the Format annotation SPEC_FULL.md §4.10 supplements, and it compiles
// from a *ucl.Value rather than being unmarshaled by reflection from JSON
// bytes into Go struct tags.
type Schema struct {
	compiler *Compiler
	root     *Schema
	raw      *ucl.Value

	// Boolean holds the schema's value when it was given in its
	// true/false shorthand form instead of an object.
	Boolean *bool

	Ref string

	Type []string
	Enum []*ucl.Value

	Properties           map[string]*Schema
	PropertyOrder        []string
	PatternProperties    map[string]*Schema
	patternPropertyOrder []string
	compiledPatterns     map[string]*regexp.Regexp
	AdditionalProperties *Schema
	Required             []string
	MinProperties        *float64
	MaxProperties        *float64
	Dependencies         map[string]*Dependency

	Items           *Schema
	ItemsList       []*Schema
	AdditionalItems *Schema

	UniqueItems *bool
	MinItems    *float64
	MaxItems    *float64

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64

	MinLength             *float64
	MaxLength             *float64
	Pattern               *string
	compiledStringPattern *regexp.Regexp

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Format *string

	Title       *string
	Description *string
	Default     *ucl.Value
}

// GetCompiler returns the Compiler this schema was compiled with.
func (s *Schema) GetCompiler() *Compiler { return s.compiler }

func (s *Schema) getRootSchema() *Schema {
	if s.root != nil {
		return s.root
	}
	return s
}

// compileSchema builds a *Schema from a *ucl.Value, which must be a Bool
// (the true/false shorthand) or an Object (the keyword-map form) per
// spec.md §4.9. root is the document's root *Schema, used by $ref
// resolution; it is nil only while compiling the root schema itself, in
// which case the freshly built *Schema becomes its own root.
func compileSchema(v *ucl.Value, root *Schema, compiler *Compiler) (*Schema, error) {
	if v == nil {
		return &Schema{compiler: compiler, raw: v}, nil
	}

	s := &Schema{compiler: compiler, raw: v}
	if root == nil {
		s.root = s
	} else {
		s.root = root
	}

	switch v.Tag() {
	case ucl.Bool:
		b := v.Bool()
		s.Boolean = &b
		return s, nil
	case ucl.Object:
		// fallthrough to keyword parsing below
	default:
		return nil, ErrInvalidSchemaValue
	}

	if ref, ok := stringField(v, "$ref"); ok {
		s.Ref = ref
	}

	if t, ok := v.Get("type"); ok {
		s.Type = typeList(t)
	}

	if e, ok := v.Get("enum"); ok && e.Tag() == ucl.Array {
		s.Enum = append(s.Enum, e.Elements()...)
	}

	if p, ok := v.Get("properties"); ok && p.Tag() == ucl.Object {
		s.Properties = make(map[string]*Schema)
		p.Iterate(ucl.Collapsed, func(entry ucl.Entry) bool {
			child, err := compileSchema(entry.Value, s.getRootSchema(), compiler)
			if err == nil {
				s.Properties[entry.Key] = child
				s.PropertyOrder = append(s.PropertyOrder, entry.Key)
			}
			return true
		})
	}

	if pp, ok := v.Get("patternProperties"); ok && pp.Tag() == ucl.Object {
		s.PatternProperties = make(map[string]*Schema)
		s.compiledPatterns = make(map[string]*regexp.Regexp)
		pp.Iterate(ucl.Collapsed, func(entry ucl.Entry) bool {
			child, err := compileSchema(entry.Value, s.getRootSchema(), compiler)
			if err == nil {
				s.PatternProperties[entry.Key] = child
				s.patternPropertyOrder = append(s.patternPropertyOrder, entry.Key)
				if re, err := regexp.Compile(entry.Key); err == nil {
					s.compiledPatterns[entry.Key] = re
				}
			}
			return true
		})
	}

	if ap, ok := v.Get("additionalProperties"); ok {
		child, err := compileSchema(ap, s.getRootSchema(), compiler)
		if err == nil {
			s.AdditionalProperties = child
		}
	}

	if req, ok := v.Get("required"); ok && req.Tag() == ucl.Array {
		for _, el := range req.Elements() {
			if el.Tag() == ucl.String {
				s.Required = append(s.Required, el.Str())
			}
		}
	}

	s.MinProperties = floatField(v, "minProperties")
	s.MaxProperties = floatField(v, "maxProperties")

	if dep, ok := v.Get("dependencies"); ok && dep.Tag() == ucl.Object {
		s.Dependencies = make(map[string]*Dependency)
		dep.Iterate(ucl.Collapsed, func(entry ucl.Entry) bool {
			d := &Dependency{}
			switch entry.Value.Tag() {
			case ucl.Array:
				for _, el := range entry.Value.Elements() {
					if el.Tag() == ucl.String {
						d.Properties = append(d.Properties, el.Str())
					}
				}
			default:
				if child, err := compileSchema(entry.Value, s.getRootSchema(), compiler); err == nil {
					d.Schema = child
				}
			}
			s.Dependencies[entry.Key] = d
			return true
		})
	}

	if items, ok := v.Get("items"); ok {
		if items.Tag() == ucl.Array {
			for _, el := range items.Elements() {
				if child, err := compileSchema(el, s.getRootSchema(), compiler); err == nil {
					s.ItemsList = append(s.ItemsList, child)
				}
			}
		} else if child, err := compileSchema(items, s.getRootSchema(), compiler); err == nil {
			s.Items = child
		}
	}

	if ai, ok := v.Get("additionalItems"); ok {
		if child, err := compileSchema(ai, s.getRootSchema(), compiler); err == nil {
			s.AdditionalItems = child
		}
	}

	s.UniqueItems = boolField(v, "uniqueItems")
	s.MinItems = floatField(v, "minItems")
	s.MaxItems = floatField(v, "maxItems")

	s.Minimum = floatField(v, "minimum")
	s.Maximum = floatField(v, "maximum")
	s.MultipleOf = floatField(v, "multipleOf")

	// Draft-4 exclusiveMinimum/exclusiveMaximum are boolean flags modifying
	// minimum/maximum, not standalone numeric bounds (spec.md §9 Open
	// Question decision, see DESIGN.md).
	if b := boolField(v, "exclusiveMinimum"); b != nil {
		s.ExclusiveMinimum = *b
	}
	if b := boolField(v, "exclusiveMaximum"); b != nil {
		s.ExclusiveMaximum = *b
	}

	s.MinLength = floatField(v, "minLength")
	s.MaxLength = floatField(v, "maxLength")
	if p, ok := stringField(v, "pattern"); ok {
		s.Pattern = &p
	}

	if allOf, ok := v.Get("allOf"); ok && allOf.Tag() == ucl.Array {
		for _, el := range allOf.Elements() {
			if child, err := compileSchema(el, s.getRootSchema(), compiler); err == nil {
				s.AllOf = append(s.AllOf, child)
			}
		}
	}
	if anyOf, ok := v.Get("anyOf"); ok && anyOf.Tag() == ucl.Array {
		for _, el := range anyOf.Elements() {
			if child, err := compileSchema(el, s.getRootSchema(), compiler); err == nil {
				s.AnyOf = append(s.AnyOf, child)
			}
		}
	}
	if oneOf, ok := v.Get("oneOf"); ok && oneOf.Tag() == ucl.Array {
		for _, el := range oneOf.Elements() {
			if child, err := compileSchema(el, s.getRootSchema(), compiler); err == nil {
				s.OneOf = append(s.OneOf, child)
			}
		}
	}
	if not, ok := v.Get("not"); ok {
		if child, err := compileSchema(not, s.getRootSchema(), compiler); err == nil {
			s.Not = child
		}
	}

	if f, ok := stringField(v, "format"); ok {
		s.Format = &f
	}

	if t, ok := stringField(v, "title"); ok {
		s.Title = &t
	}
	if d, ok := stringField(v, "description"); ok {
		s.Description = &d
	}
	if def, ok := v.Get("default"); ok {
		s.Default = def
	}

	return s, nil
}

func stringField(v *ucl.Value, key string) (string, bool) {
	f, ok := v.Get(key)
	if !ok || f.Tag() != ucl.String {
		return "", false
	}
	return f.Str(), true
}

func boolField(v *ucl.Value, key string) *bool {
	f, ok := v.Get(key)
	if !ok || f.Tag() != ucl.Bool {
		return nil
	}
	b := f.Bool()
	return &b
}

func floatField(v *ucl.Value, key string) *float64 {
	f, ok := v.Get(key)
	if !ok || !f.IsNumeric() {
		return nil
	}
	n := f.AsFloat64()
	return &n
}

// typeList normalizes "type"'s string-or-array-of-strings form into a
// slice, per draft-4.
func typeList(v *ucl.Value) []string {
	switch v.Tag() {
	case ucl.String:
		return []string{v.Str()}
	case ucl.Array:
		var out []string
		for _, el := range v.Elements() {
			if el.Tag() == ucl.String {
				out = append(out, el.Str())
			}
		}
		return out
	default:
		return nil
	}
}
