package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/internal/chartable"
)

// MacroHandler implements a registered dot-macro (spec.md §4.6/§4.7). args
// holds any trailing key=value pairs found after the macro body (e.g.
// `priority=5`); body is the raw, unexpanded bytes of the macro's body. A
// handler that wants to splice new input into the parse (as .include does)
// calls Parser.PushChunk.
type MacroHandler func(p *Parser, args *ucl.Value, body []byte) error

// Fetcher resolves a macro's target — a local path or a URL — to bytes. It
// is the sole I/O seam of the core (spec.md §5): the parser itself never
// touches the filesystem or network.
type Fetcher interface {
	Fetch(target string) ([]byte, error)
}

// SignatureVerifier backs the .includes macro's detached-signature check.
type SignatureVerifier interface {
	// Verify returns nil when sig is a valid detached signature over data.
	Verify(data, sig []byte) error
}

func (p *Parser) registerBuiltinMacros() {
	p.macros["include"] = builtinInclude
	p.macros["includes"] = builtinIncludes
}

func builtinInclude(p *Parser, args *ucl.Value, body []byte) error {
	target := strings.TrimSpace(string(body))
	if target == "" {
		return fmt.Errorf("%w: .include requires a target", ErrMacro)
	}
	data, err := p.fetch(target)
	if err != nil {
		return err
	}
	return p.PushChunk(data, includePriority(args), target)
}

func builtinIncludes(p *Parser, args *ucl.Value, body []byte) error {
	target := strings.TrimSpace(string(body))
	if target == "" {
		return fmt.Errorf("%w: .includes requires a target", ErrMacro)
	}
	data, err := p.fetch(target)
	if err != nil {
		return err
	}
	if p.sigVerifier == nil {
		return fmt.Errorf("%w: no signature verifier registered for .includes", ErrSignature)
	}
	sig, err := p.fetch(target + ".sig")
	if err != nil {
		return fmt.Errorf("%w: fetching detached signature: %v", ErrSignature, err)
	}
	if err := p.sigVerifier.Verify(data, sig); err != nil {
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return p.PushChunk(data, includePriority(args), target)
}

func includePriority(args *ucl.Value) uint8 {
	if args == nil {
		return 0
	}
	if v, ok := args.Get("priority"); ok && v.IsNumeric() {
		return uint8(v.AsFloat64())
	}
	return 0
}

// fetch resolves target via the host fetcher, passing it through unchanged;
// the fetcher is responsible for telling local paths from URLs. The
// local-path test (begins with / or .) used for FILENAME/CURDIR
// bookkeeping lives in applyFilevars.
func (p *Parser) fetch(target string) ([]byte, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher registered for target %q", ErrMacro, target)
	}
	data, err := p.fetcher.Fetch(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return data, nil
}

// PushChunk splices raw bytes into the parse as a new chunk on top of the
// chunk stack, to be fully consumed before the chunk that pushed it
// resumes (spec.md §4.3/§4.7). name feeds FILENAME/CURDIR when expand is
// enabled.
func (p *Parser) PushChunk(data []byte, priority uint8, name string) error {
	if err := p.r.push(data, priority, name); err != nil {
		return err
	}
	if p.expandFilevars && name != "" {
		p.applyFilevars(name)
	}
	return nil
}

func (p *Parser) applyFilevars(name string) {
	p.variables["FILENAME"] = name
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, ".") {
		p.variables["CURDIR"] = filepath.Dir(name)
	}
}

// RegisterMacro registers a handler for the dot-macro named name (without
// the leading dot), overriding any previous registration including the
// built-ins.
func (p *Parser) RegisterMacro(name string, handler MacroHandler) {
	p.macros[name] = handler
}

// RegisterVariable registers a ${name} substitution value.
func (p *Parser) RegisterVariable(name, value string) {
	p.variables[name] = value
}

// SetSignatureVerifier installs the verifier .includes uses.
func (p *Parser) SetSignatureVerifier(v SignatureVerifier) { p.sigVerifier = v }

// SetFetcher installs the host callback used to resolve include targets.
func (p *Parser) SetFetcher(f Fetcher) { p.fetcher = f }

// VariablesHandler is consulted for ${NAME} references with no registered
// variable. Returning ok=false leaves the reference as a literal.
type VariablesHandler func(name string) (value string, ok bool)

// SetVariablesHandler installs the fallback handler for unregistered
// variable references.
func (p *Parser) SetVariablesHandler(h VariablesHandler) { p.variablesHandler = h }

// SetFileVars sets the built-in FILENAME/CURDIR variables for the parser's
// top-level input (spec.md §4.6); expand additionally arms automatic
// FILENAME/CURDIR updates as .include pushes new chunks.
func (p *Parser) SetFileVars(filename string, expand bool) {
	p.variables["FILENAME"] = filename
	p.variables["CURDIR"] = filepath.Dir(filename)
	p.expandFilevars = expand
}

// expandVariables replaces ${NAME} occurrences in s using registered
// variables, falling back to the host handler, and leaving unresolved
// references untouched.
func (p *Parser) expandVariables(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end >= 0 {
				name := s[i+2 : i+2+end]
				if val, ok := p.variables[name]; ok {
					out.WriteString(val)
					i += 2 + end + 1
					continue
				}
				if p.variablesHandler != nil {
					if val, ok := p.variablesHandler(name); ok {
						out.WriteString(val)
						i += 2 + end + 1
						continue
					}
				}
			}
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

// scanMacroBody implements the MacroName/MacroBody states (spec.md §4.6):
// the name runs until whitespace; the body is then either a quoted
// string, a balanced-brace block, or a bare atom, optionally followed by
// whitespace-separated key=value arguments up to the statement terminator.
func (p *Parser) scanMacroBody() (name string, body []byte, args *ucl.Value, err error) {
	var nameBuf strings.Builder
	for {
		b, has := p.r.cur()
		if !has || chartable.Is(b, chartable.Whitespace) || chartable.Is(b, chartable.ValueEnd) {
			break
		}
		nameBuf.WriteByte(b)
		p.r.advance()
	}
	name = nameBuf.String()
	if name == "" {
		l, c := p.r.position()
		return "", nil, nil, newSyntaxErr(l, c, "empty macro name")
	}

	p.skipHorizontalWhitespace()

	body, err = p.scanBodyAtom()
	if err != nil {
		return "", nil, nil, err
	}

	p.skipHorizontalWhitespace()
	args, err = p.scanMacroArgs()
	return name, body, args, err
}

func (p *Parser) skipHorizontalWhitespace() {
	for {
		b, has := p.r.cur()
		if !has || !chartable.Is(b, chartable.WhitespaceUnsafe) {
			return
		}
		p.r.advance()
	}
}

func (p *Parser) scanBodyAtom() ([]byte, error) {
	b, has := p.r.cur()
	if !has {
		return nil, nil
	}
	switch b {
	case '"':
		v, err := p.lexQuotedString()
		if err != nil {
			return nil, err
		}
		return []byte(v.Str()), nil
	case '{':
		return p.scanBalancedBraces()
	default:
		var sb strings.Builder
		for {
			b, has := p.r.cur()
			if !has || chartable.Is(b, chartable.ValueEnd) {
				break
			}
			sb.WriteByte(b)
			p.r.advance()
		}
		return []byte(sb.String()), nil
	}
}

func (p *Parser) scanBalancedBraces() ([]byte, error) {
	l, c := p.r.position()
	p.r.advance() // consume '{'
	depth := 1
	var sb strings.Builder
	for {
		b, has := p.r.cur()
		if !has {
			return nil, newSyntaxErr(l, c, "unterminated macro brace body")
		}
		if b == '{' {
			depth++
		} else if b == '}' {
			depth--
			if depth == 0 {
				p.r.advance()
				return []byte(sb.String()), nil
			}
		}
		sb.WriteByte(b)
		p.r.advance()
	}
}

func (p *Parser) scanMacroArgs() (*ucl.Value, error) {
	args := ucl.NewObject(false)
	any := false
	for {
		p.skipHorizontalWhitespace()
		b, has := p.r.cur()
		if !has || chartable.Is(b, chartable.ValueEnd) {
			break
		}
		if !chartable.Is(b, chartable.KeyStart) {
			break
		}
		var key strings.Builder
		for {
			b, has := p.r.cur()
			if !has || !chartable.Is(b, chartable.KeyContinue) {
				break
			}
			key.WriteByte(b)
			p.r.advance()
		}
		p.skipHorizontalWhitespace()
		b, has = p.r.cur()
		if !has || b != '=' {
			break
		}
		p.r.advance()
		p.skipHorizontalWhitespace()

		val, err := p.lexScalarAtom()
		if err != nil {
			return nil, err
		}
		args.Insert(key.String(), val)
		any = true
	}
	if !any {
		return nil, nil
	}
	return args, nil
}
