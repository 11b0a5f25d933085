package emit

import (
	"strings"

	"github.com/kaptinlin/ucl"
)

// textOps is the per-format operations table for the two hand-rolled
// textual formats, Json and Config (spec.md §4.8's format-rules table).
// JsonCompact and Yaml instead convert to a generic tree and delegate to
// goccy/go-json and goccy/go-yaml respectively (see compact.go, yaml.go).
type textOps struct {
	topBraces      bool
	indentUnit     string
	kvSepScalar    string
	kvSepContainer string
	scalarTerm     string // written after a scalar entry, before the newline
	containerTerm  string // written after a nested container entry, before the newline
	arrayElemSep   string
	quoteAllStrings bool
	quoteKey       func(string) bool
	quoteValue     func(string) bool
	duplicateAsArray bool
	// alwaysTerminate is true for Config, where every scalar statement ends
	// with ';' regardless of position (a container entry ends at its closing
	// brace or bracket), and false for Json, where the element separator is
	// a comma that must not trail the last entry.
	alwaysTerminate bool
}

func jsonOps() textOps {
	return textOps{
		topBraces:        true,
		indentUnit:       "    ",
		kvSepScalar:      ": ",
		kvSepContainer:   ": ",
		scalarTerm:       ",",
		containerTerm:    ",",
		arrayElemSep:     ",",
		quoteAllStrings:  true,
		quoteKey:         func(string) bool { return true },
		quoteValue:       func(string) bool { return true },
		duplicateAsArray: true,
		alwaysTerminate:  false,
	}
}

func configOps() textOps {
	return textOps{
		topBraces:        false,
		indentUnit:       "    ",
		kvSepScalar:      " = ",
		kvSepContainer:   " ",
		scalarTerm:       ";",
		containerTerm:    "",
		arrayElemSep:     ",",
		quoteAllStrings:  false,
		quoteKey:         keyNeedsConfigEscape,
		quoteValue:       configValueNeedsQuote,
		duplicateAsArray: false,
		alwaysTerminate:  true,
	}
}

// configValueNeedsQuote decides whether a Config-format string value must
// be wrapped in quotes: empty, containing whitespace/separators, or
// containing a byte that would otherwise end the bareword early.
func configValueNeedsQuote(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '"' || b == '\\' || b == '#' {
			return true
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' ||
			b == ';' || b == ',' || b == '{' || b == '}' || b == '[' || b == ']' {
			return true
		}
	}
	return false
}

type textCtx struct {
	fns funcsTable
	ops textOps
}

func renderText(v *ucl.Value, fns funcsTable, ops textOps) error {
	ctx := &textCtx{fns: fns, ops: ops}
	if v.Tag() == ucl.Object && !ops.topBraces {
		return ctx.writeObjectBody(v, 0)
	}
	return ctx.writeValue(v, 0)
}

func (c *textCtx) indent(depth int) error {
	return c.fns.str(strings.Repeat(c.ops.indentUnit, depth))
}

func (c *textCtx) writeValue(v *ucl.Value, depth int) error {
	switch v.Tag() {
	case ucl.Object:
		if err := c.fns.str("{\n"); err != nil {
			return err
		}
		if err := c.writeObjectBody(v, depth+1); err != nil {
			return err
		}
		if err := c.indent(depth); err != nil {
			return err
		}
		return c.fns.str("}")
	case ucl.Array:
		return c.writeArray(v, depth)
	default:
		return c.writeScalar(v)
	}
}

// entryJob is one physical output line queued for writeObjectBody: either
// a single value or (Config's repeated-key-line duplicate form) one of
// several lines sharing a key.
type entryJob struct {
	key         string
	write       func() error
	isContainer bool
}

func (c *textCtx) writeObjectBody(v *ucl.Value, depth int) error {
	keys := v.Keys()
	var jobs []entryJob
	for _, key := range keys {
		head, _ := v.Get(key)
		chain := chainOf(head)

		switch {
		case len(chain) > 1 && c.ops.duplicateAsArray:
			chainCopy := chain
			jobs = append(jobs, entryJob{
				key:   key,
				write: func() error { return c.writeGroupedArray(chainCopy, depth) },
			})
		case len(chain) > 1:
			// Config: repeated key-value lines, one per chain value.
			for _, cv := range chain {
				cvCopy := cv
				jobs = append(jobs, entryJob{
					key:         key,
					write:       func() error { return c.writeValue(cvCopy, depth) },
					isContainer: cvCopy.Tag() == ucl.Object || cvCopy.Tag() == ucl.Array,
				})
			}
		default:
			headCopy := head
			jobs = append(jobs, entryJob{
				key:         key,
				write:       func() error { return c.writeValue(headCopy, depth) },
				isContainer: headCopy.Tag() == ucl.Object || headCopy.Tag() == ucl.Array,
			})
		}
	}

	for i, job := range jobs {
		if err := c.writeEntry(job.key, depth, job.write, job.isContainer, i == len(jobs)-1); err != nil {
			return err
		}
	}
	return nil
}

func chainOf(head *ucl.Value) []*ucl.Value {
	var chain []*ucl.Value
	for v := head; v != nil; v = v.Next() {
		chain = append(chain, v)
	}
	return chain
}

func (c *textCtx) writeEntry(key string, depth int, writeVal func() error, isContainer, isLast bool) error {
	if err := c.indent(depth); err != nil {
		return err
	}
	if err := c.writeKey(key); err != nil {
		return err
	}
	sep := c.ops.kvSepScalar
	if isContainer {
		sep = c.ops.kvSepContainer
	}
	if err := c.fns.str(sep); err != nil {
		return err
	}
	if err := writeVal(); err != nil {
		return err
	}
	term := c.ops.scalarTerm
	if isContainer {
		term = c.ops.containerTerm
	}
	if c.ops.alwaysTerminate || !isLast {
		if err := c.fns.str(term); err != nil {
			return err
		}
	}
	return c.fns.str("\n")
}

func (c *textCtx) writeKey(key string) error {
	if c.ops.quoteKey(key) {
		return c.fns.str(escapeJSONString(key))
	}
	return c.fns.str(key)
}

func (c *textCtx) writeGroupedArray(chain []*ucl.Value, depth int) error {
	return c.writeBracketedElems(chain, depth)
}

func (c *textCtx) writeArray(v *ucl.Value, depth int) error {
	return c.writeBracketedElems(v.Elements(), depth)
}

func (c *textCtx) writeBracketedElems(elems []*ucl.Value, depth int) error {
	if len(elems) == 0 {
		return c.fns.str("[]")
	}
	if err := c.fns.str("[\n"); err != nil {
		return err
	}
	for i, el := range elems {
		if err := c.indent(depth + 1); err != nil {
			return err
		}
		if err := c.writeValue(el, depth+1); err != nil {
			return err
		}
		if i < len(elems)-1 {
			if err := c.fns.str(c.ops.arrayElemSep); err != nil {
				return err
			}
		}
		if err := c.fns.str("\n"); err != nil {
			return err
		}
	}
	if err := c.indent(depth); err != nil {
		return err
	}
	return c.fns.str("]")
}

func (c *textCtx) writeScalar(v *ucl.Value) error {
	switch v.Tag() {
	case ucl.Null:
		return c.fns.str("null")
	case ucl.Bool:
		if v.Bool() {
			return c.fns.str("true")
		}
		return c.fns.str("false")
	case ucl.Int:
		return c.fns.appendInt(v.Int())
	case ucl.Float, ucl.Time:
		return c.fns.appendDouble(v.Float())
	case ucl.String:
		if c.ops.quoteAllStrings || c.ops.quoteValue(v.Str()) {
			return c.fns.str(escapeJSONString(v.Str()))
		}
		return c.fns.str(v.Str())
	case ucl.Userdata:
		return c.writeUserdata(v)
	default:
		return c.fns.str("null")
	}
}

func (c *textCtx) writeUserdata(v *ucl.Value) error {
	ud := v.Userdata()
	if ud == nil || ud.Emit == nil {
		return c.fns.str("null")
	}
	return c.fns.str(ud.Emit(ud.Data))
}
