package parser

import (
	"fmt"
	"testing"

	"github.com/kaptinlin/ucl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string, flags Flag) *Parser {
	t.Helper()
	p := New(flags)
	if !p.AddString(src) {
		require.NoError(t, p.GetError())
	}
	return p
}

func TestParseImplicitTopLevelObject(t *testing.T) {
	p := mustParse(t, `foo = 1; bar = "two";`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)

	foo, ok := v.Get("foo")
	require.True(t, ok)
	assert.EqualValues(t, 1, foo.Int())

	bar, ok := v.Get("bar")
	require.True(t, ok)
	assert.Equal(t, "two", bar.Str())
}

func TestParseExplicitBraceObject(t *testing.T) {
	p := mustParse(t, `{ a = 1, b = 2 }`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.EqualValues(t, 1, a.Int())
}

func TestParseNestedObjectAndArray(t *testing.T) {
	p := mustParse(t, `server { listen = [80, 443]; name = "web" }`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)

	server, ok := v.Get("server")
	require.True(t, ok)
	require.Equal(t, 2, server.Length())

	listen, ok := server.Get("listen")
	require.True(t, ok)
	require.Equal(t, 2, listen.Length())
	assert.EqualValues(t, 80, listen.Elements()[0].Int())
	assert.EqualValues(t, 443, listen.Elements()[1].Int())
}

func TestParseDuplicateKeysFormImplicitArray(t *testing.T) {
	p := mustParse(t, `key = 1; key = 2; key = 3;`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)

	require.Equal(t, 1, v.Length())

	first, ok := v.Get("key")
	require.True(t, ok)
	assert.EqualValues(t, 1, first.Int())

	second := first.Next()
	require.NotNil(t, second)
	assert.EqualValues(t, 2, second.Int())

	third := second.Next()
	require.NotNil(t, third)
	assert.EqualValues(t, 3, third.Int())
	assert.Nil(t, third.Next())
}

func TestParseNumberSuffixes(t *testing.T) {
	p := mustParse(t, `a = 10k; b = 10kb; c = 10min; d = 0.2s; e = 10ms;`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)

	a, _ := v.Get("a")
	assert.EqualValues(t, 10000, a.Int())

	b, _ := v.Get("b")
	assert.EqualValues(t, 10240, b.Int())

	c, _ := v.Get("c")
	assert.InDelta(t, 600.0, c.Float(), 0.0001)

	d, _ := v.Get("d")
	assert.InDelta(t, 0.2, d.Float(), 0.0001)

	e, _ := v.Get("e")
	assert.InDelta(t, 0.01, e.Float(), 0.0001)
}

func TestParseBooleanRecognition(t *testing.T) {
	p := mustParse(t, `a = true; b = no; c = On;`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)

	a, _ := v.Get("a")
	assert.Equal(t, true, a.Bool())
	b, _ := v.Get("b")
	assert.Equal(t, false, b.Bool())
	c, _ := v.Get("c")
	assert.Equal(t, true, c.Bool())
}

func TestParseComments(t *testing.T) {
	p := mustParse(t, `
		# shell style
		a = 1; // trailing
		/* block
		   /* nested */ still inside */
		b = 2;
	`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.EqualValues(t, 1, a.Int())
	b, ok := v.Get("b")
	require.True(t, ok)
	assert.EqualValues(t, 2, b.Int())
}

func TestParseHeredoc(t *testing.T) {
	p := mustParse(t, "msg = <<EOD\nline one\nline two\nEOD\n", 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	msg, ok := v.Get("msg")
	require.True(t, ok)
	assert.Equal(t, "line one\nline two\n", msg.Str())
}

// TestParseHeredocTerminatorRequiresLineStart guards against matching the
// tag in the middle of a line: the line "hello xxEOD" ends in the tag but
// must not be mistaken for the "EOD" terminator line.
func TestParseHeredocTerminatorRequiresLineStart(t *testing.T) {
	p := mustParse(t, "msg = <<EOD\nhello xxEOD\nmore\nEOD\n", 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	msg, ok := v.Get("msg")
	require.True(t, ok)
	assert.Equal(t, "hello xxEOD\nmore\n", msg.Str())
}

// TestParseHeredocTerminatorAtCarriageReturn exercises the \r line ending
// alongside a non-matching tag-like prefix.
func TestParseHeredocTerminatorAtCarriageReturn(t *testing.T) {
	p := mustParse(t, "msg = <<EOD\r\nEODX\r\nEOD\r\n", 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	msg, ok := v.Get("msg")
	require.True(t, ok)
	assert.Equal(t, "EODX\r\n", msg.Str())
}

func TestParseZeroCopyQuotedStringBorrowsInputBuffer(t *testing.T) {
	p := mustParse(t, `a = "hello world";`, ZeroCopy)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, "hello world", a.Str())
	assert.False(t, a.HasFlag(ucl.ValueAllocated), "plain quoted string should borrow the input buffer under ZeroCopy")
}

func TestParseZeroCopyQuotedStringWithEscapeStillCopies(t *testing.T) {
	p := mustParse(t, `a = "line\nbreak";`, ZeroCopy)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, "line\nbreak", a.Str())
	assert.True(t, a.HasFlag(ucl.ValueAllocated), "an escape sequence must materialize a new buffer even under ZeroCopy")
}

func TestParseZeroCopyUnquotedStringBorrowsInputBuffer(t *testing.T) {
	p := mustParse(t, `a = bareword;`, ZeroCopy)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, "bareword", a.Str())
	assert.False(t, a.HasFlag(ucl.ValueAllocated))
}

func TestParseZeroCopyHeredocBorrowsInputBuffer(t *testing.T) {
	p := mustParse(t, "msg = <<EOD\nline one\nline two\nEOD\n", ZeroCopy)
	v, err := p.GetObject()
	require.NoError(t, err)
	msg, ok := v.Get("msg")
	require.True(t, ok)
	assert.Equal(t, "line one\nline two\n", msg.Str())
	assert.False(t, msg.HasFlag(ucl.ValueAllocated))
}

func TestParseZeroCopyVariableExpansionStillCopies(t *testing.T) {
	p := New(ZeroCopy)
	p.RegisterVariable("NAME", "world")
	ok := p.AddString(`greeting = "hello ${NAME}";`)
	require.True(t, ok, p.GetError())
	v, err := p.GetObject()
	require.NoError(t, err)
	g, ok2 := v.Get("greeting")
	require.True(t, ok2)
	assert.Equal(t, "hello world", g.Str())
	assert.True(t, g.HasFlag(ucl.ValueAllocated), "expansion produces a new string, never a borrow of the raw source text")
}

// TestParseZeroCopyWithoutFlagAlwaysCopies ensures plain parsing (flag
// unset) never produces a borrowed string, regardless of the fast-path
// scan added for ZeroCopy.
func TestParseZeroCopyWithoutFlagAlwaysCopies(t *testing.T) {
	p := mustParse(t, `a = "hello"; b = bareword;`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, _ := v.Get("a")
	assert.True(t, a.HasFlag(ucl.ValueAllocated))
	b, _ := v.Get("b")
	assert.True(t, b.HasFlag(ucl.ValueAllocated))
}

func TestParseTrailingSeparatorInArray(t *testing.T) {
	p := mustParse(t, `a = [1, 2, 3,]`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, a.Length())
}

func TestParseEmptyObjectAndArray(t *testing.T) {
	p := mustParse(t, `a = {}; b = [];`, 0)
	v, err := p.GetObject()
	require.NoError(t, err)
	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, 0, a.Length())
	b, ok := v.Get("b")
	require.True(t, ok)
	assert.Equal(t, 0, b.Length())
}

type mapFetcher map[string][]byte

func (m mapFetcher) Fetch(target string) ([]byte, error) {
	data, ok := m[target]
	if !ok {
		return nil, fmt.Errorf("not found: %s", target)
	}
	return data, nil
}

func TestParseInclude(t *testing.T) {
	p := New(0)
	p.SetFetcher(mapFetcher{
		"child.conf": []byte(`child_key = "hi";`),
	})
	ok := p.AddString(`parent_key = 1; .include "child.conf"`)
	require.True(t, ok, p.GetError())

	v, err := p.GetObject()
	require.NoError(t, err)

	pk, ok := v.Get("parent_key")
	require.True(t, ok)
	assert.EqualValues(t, 1, pk.Int())

	ck, ok := v.Get("child_key")
	require.True(t, ok)
	assert.Equal(t, "hi", ck.Str())
}

func TestParseIncludePriorityMerge(t *testing.T) {
	p := New(0)
	p.SetFetcher(mapFetcher{
		"high.conf": []byte(`value = "from-include";`),
	})
	ok := p.AddString(`value = "from-parent"; .include "high.conf" priority=10`)
	require.True(t, ok, p.GetError())

	v, err := p.GetObject()
	require.NoError(t, err)
	got, ok2 := v.Get("value")
	require.True(t, ok2)
	assert.Equal(t, "from-include", got.Str())
	assert.Nil(t, got.Next())
}

func TestParseVariableExpansion(t *testing.T) {
	p := New(0)
	p.RegisterVariable("NAME", "world")
	ok := p.AddString(`greeting = "hello ${NAME}";`)
	require.True(t, ok, p.GetError())
	v, err := p.GetObject()
	require.NoError(t, err)
	g, ok2 := v.Get("greeting")
	require.True(t, ok2)
	assert.Equal(t, "hello world", g.Str())
}

func TestParseSyntaxErrorUnterminatedString(t *testing.T) {
	p := New(0)
	ok := p.AddString(`a = "unterminated`)
	assert.False(t, ok)
	assert.Error(t, p.GetError())
}

func TestParseUnknownMacroFails(t *testing.T) {
	p := New(0)
	ok := p.AddString(`.bogus "x"`)
	assert.False(t, ok)
	assert.ErrorIs(t, p.GetError(), ErrMacro)
}
