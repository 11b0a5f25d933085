package emit

import (
	"testing"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseValue(t *testing.T, src string) *ucl.Value {
	t.Helper()
	p := parser.New(0)
	ok := p.AddString(src)
	require.True(t, ok, p.GetError())
	v, err := p.GetObject()
	require.NoError(t, err)
	return v
}

// E1: emit(Json) on {key: "value"}.
func TestEmitJsonLiteralE1(t *testing.T) {
	v := mustParseValue(t, `key = "value";`)
	out, err := Emit(v, Json)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"key\": \"value\"\n}", string(out))
}

// E2: emit(JsonCompact) on a duplicate key "a" with values 1 and 2 grouped
// into an array.
func TestEmitJsonCompactLiteralE2(t *testing.T) {
	v := mustParseValue(t, `a = 1; a = 2;`)
	out, err := Emit(v, JsonCompact)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,2]}`, string(out))
}

// E3: emit(Config) on size: Int 2048.
func TestEmitConfigLiteralE3(t *testing.T) {
	v := mustParseValue(t, `size = 2048;`)
	out, err := Emit(v, Config)
	require.NoError(t, err)
	assert.Equal(t, "size = 2048;\n", string(out))
}

// E4: emit(Yaml) on a duplicate key "param" rendered as a sequence.
func TestEmitYamlLiteralE4(t *testing.T) {
	v := mustParseValue(t, `param = "one"; param = "two";`)
	out, err := Emit(v, Yaml)
	require.NoError(t, err)
	assert.Contains(t, string(out), "param:")
	assert.Contains(t, string(out), "- one")
	assert.Contains(t, string(out), "- two")
}

func TestEmitJsonNestedObjectAndArray(t *testing.T) {
	v := mustParseValue(t, `server { host = "localhost"; ports = [80, 443]; }`)
	out, err := Emit(v, Json)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"server\": {\n        \"host\": \"localhost\",\n        \"ports\": [\n            80,\n            443\n        ]\n    }\n}", string(out))
}

func TestEmitJsonNoTrailingCommaOnLastEntry(t *testing.T) {
	v := mustParseValue(t, `a = 1; b = 2;`)
	out, err := Emit(v, Json)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": 2\n}", string(out))
}

func TestEmitConfigDuplicateKeyRepeatsLine(t *testing.T) {
	v := mustParseValue(t, `param = "one"; param = "two";`)
	out, err := Emit(v, Config)
	require.NoError(t, err)
	assert.Equal(t, "param = one;\nparam = two;\n", string(out))
}

func TestEmitConfigUnbracedTopLevel(t *testing.T) {
	v := mustParseValue(t, `name = "svc"; size = 2048;`)
	out, err := Emit(v, Config)
	require.NoError(t, err)
	assert.Equal(t, "name = svc;\nsize = 2048;\n", string(out))
	assert.NotContains(t, string(out), "{")
}

func TestEmitFloatFormatting(t *testing.T) {
	assert.Equal(t, "2.0", formatFloat(2.0))
	assert.Equal(t, "1.5", formatFloat(1.5))
}

// Round-trip property 1: JSON -> CompactJSON re-parse equality for the
// scalar/object/array shapes both formats can represent without loss.
func TestRoundTripJsonToCompactJson(t *testing.T) {
	v := mustParseValue(t, `a = 1; b = "two"; c = [1, 2, 3]; d { e = true; }`)

	jsonBytes, err := Emit(v, Json)
	require.NoError(t, err)
	compactBytes, err := Emit(v, JsonCompact)
	require.NoError(t, err)

	reparsedFromJSON := mustParseValue(t, string(jsonBytes))
	reparsedFromCompact := mustParseValue(t, string(compactBytes))

	assert.True(t, ucl.Equal(reparsedFromJSON, reparsedFromCompact))
}

// Round-trip property 2: UCL -> Config -> parse yields an equivalent value
// (comments and original formatting aside).
func TestRoundTripUclToConfig(t *testing.T) {
	v := mustParseValue(t, `
		# a comment that config re-emission drops
		name = "svc";
		size = 2048;
		tags = [1, 2, 3];
	`)

	configBytes, err := Emit(v, Config)
	require.NoError(t, err)

	reparsed := mustParseValue(t, string(configBytes))
	assert.True(t, ucl.Equal(v, reparsed))
}

func TestStreamEmitterMatchesBatchEmit(t *testing.T) {
	var buf []byte
	sink := bufSink{&buf}
	var e StreamEmitter
	require.NoError(t, e.Start(Json, sink))

	require.NoError(t, e.StartContainer(false)) // root object
	require.NoError(t, e.SetKey("key"))
	require.NoError(t, e.AddObject(ucl.NewString("value")))
	require.NoError(t, e.EndContainer())
	require.NoError(t, e.Finish())

	assert.Equal(t, "{\n    \"key\": \"value\"\n}", string(buf))
}

func TestStreamEmitterFinishClosesOutstandingContainers(t *testing.T) {
	var buf []byte
	sink := bufSink{&buf}
	var e StreamEmitter
	require.NoError(t, e.Start(Json, sink))

	require.NoError(t, e.StartContainer(false)) // root object
	require.NoError(t, e.SetKey("items"))
	require.NoError(t, e.StartContainer(true)) // array, left open
	require.NoError(t, e.AddObject(ucl.NewInt(1)))
	require.NoError(t, e.AddObject(ucl.NewInt(2)))
	// no matching EndContainer for the array or the root object: Finish
	// must close both.
	require.NoError(t, e.Finish())

	reparsed := mustParseValue(t, string(buf))
	got, ok := reparsed.Get("items")
	require.True(t, ok)
	assert.Equal(t, 2, len(got.Elements()))
}

func TestStreamEmitterRejectsUnmatchedEndContainer(t *testing.T) {
	var e StreamEmitter
	require.NoError(t, e.Start(Json, bufSink{&[]byte{}}))
	assert.Error(t, e.EndContainer())
}

// bufSink is a minimal io.Writer-backed Sink for stream emitter tests.
type bufSink struct {
	buf *[]byte
}

func (s bufSink) Write(p []byte) (int, error) {
	*s.buf = append(*s.buf, p...)
	return len(p), nil
}
