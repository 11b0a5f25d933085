package parser

import (
	"fmt"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/internal/chartable"
)

// pstate names the logical states of spec.md §4.6's parser state machine.
// MacroName/MacroBody are folded into a single scanMacroBody call invoked
// from sKey rather than separate loop iterations, since a macro's name,
// body, and trailing arguments are always consumed as one unit before
// control returns to the object being populated.
type pstate int

const (
	sInit pstate = iota
	sKey
	sValue
	sAfterValue
)

func (p *Parser) topFrame() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(container *ucl.Value, implicit bool) {
	p.stack = append(p.stack, &frame{container: container})
	p.stack[len(p.stack)-1].implicit = implicit
}

func (p *Parser) pop() *frame {
	n := len(p.stack)
	f := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return f
}

// run drives the state machine as far as the currently buffered input
// allows, pausing (returning true) when it runs out of bytes with open
// containers still on the stack — more input may arrive via a later
// AddChunk call, or the document may simply be done, which GetObject
// resolves for the implicit top-level object case.
func (p *Parser) run() bool {
	for {
		if err := p.skipWhitespaceAndComments(); err != nil {
			p.fail(err)
			return false
		}
		_, has := p.r.cur()
		if !has {
			return true
		}

		var err error
		switch p.curState() {
		case sInit:
			err = p.stepInit()
		case sKey:
			err = p.stepKey()
		case sValue:
			err = p.stepValue()
		case sAfterValue:
			err = p.stepAfterValue()
		}
		if err != nil {
			p.fail(err)
			return false
		}
		if p.state == stateError {
			return false
		}
	}
}

func (p *Parser) curState() pstate {
	return p.pstateField
}

func (p *Parser) stepInit() error {
	if p.root != nil || len(p.stack) != 0 {
		// Root already established by a prior AddChunk call; fall through
		// to whatever state that call left us in.
		return nil
	}
	b, _ := p.r.cur()
	caseInsensitive := p.flags.has(KeyLowercase)

	switch b {
	case '[':
		p.r.advance()
		arr := ucl.NewArray()
		p.push(arr, false)
		p.pstateField = sValue
	case '{':
		p.r.advance()
		obj := ucl.NewObject(caseInsensitive)
		p.push(obj, false)
		p.pstateField = sKey
	default:
		obj := ucl.NewObject(caseInsensitive)
		p.push(obj, true)
		p.pstateField = sKey
	}
	return nil
}

func (p *Parser) stepKey() error {
	top := p.topFrame()
	b, _ := p.r.cur()

	if b == '}' {
		if top.implicit {
			l, c := p.r.position()
			return newSyntaxErrByte(l, c, "unexpected '}' in implicit top-level object", b)
		}
		p.r.advance()
		return p.closeContainer()
	}

	if b == '.' {
		p.r.advance()
		name, body, args, err := p.scanMacroBody()
		if err != nil {
			return err
		}
		handler, ok := p.macros[name]
		if !ok {
			return fmt.Errorf("%w: unknown macro %q", ErrMacro, name)
		}
		if err := handler(p, args, body); err != nil {
			return fmt.Errorf("%w: %v", ErrMacro, err)
		}
		return nil
	}

	key, err := p.lexKey()
	if err != nil {
		return err
	}
	top.pendingKey = key
	top.pendingKeyPriority = p.r.currentPriority()
	top.haveKey = true
	p.pstateField = sValue
	return nil
}

func (p *Parser) lexKey() (string, error) {
	b, _ := p.r.cur()
	var key string
	if b == '"' {
		v, err := p.lexQuotedString()
		if err != nil {
			return "", err
		}
		key = v.Str()
	} else {
		l, c := p.r.position()
		if !chartable.Is(b, chartable.KeyStart) {
			return "", newSyntaxErrByte(l, c, "invalid key start byte", b)
		}
		var sb []byte
		for {
			b, has := p.r.cur()
			if !has || !chartable.Is(b, chartable.KeyContinue) {
				break
			}
			sb = append(sb, b)
			p.r.advance()
		}
		key = string(sb)
	}

	p.skipHorizontalWhitespace()
	if b, has := p.r.cur(); has && chartable.Is(b, chartable.KeySep) {
		p.r.advance()
		p.skipHorizontalWhitespace()
	}
	return key, nil
}

func (p *Parser) stepValue() error {
	top := p.topFrame()
	b, _ := p.r.cur()

	if top.container.Tag() == ucl.Array && b == ']' {
		p.r.advance()
		return p.closeContainer()
	}

	switch {
	case b == '"':
		v, err := p.lexQuotedString()
		if err != nil {
			return err
		}
		p.attach(v)
		p.pstateField = sAfterValue
	case b == '{':
		p.r.advance()
		obj := ucl.NewObject(p.flags.has(KeyLowercase))
		p.push(obj, false)
		p.pstateField = sKey
	case b == '[':
		p.r.advance()
		arr := ucl.NewArray()
		p.push(arr, false)
		p.pstateField = sValue
	case b == '<' && peekIs(p, 1, '<'):
		v, err := p.lexHeredoc()
		if err != nil {
			return err
		}
		p.attach(v)
		p.pstateField = sAfterValue
	case chartable.Is(b, chartable.DigitStart):
		v, ok, err := p.lexNumber()
		if err != nil {
			return err
		}
		if !ok {
			v, err = p.lexUnquotedString()
			if err != nil {
				return err
			}
		}
		p.attach(v)
		p.pstateField = sAfterValue
	default:
		v, err := p.lexUnquotedString()
		if err != nil {
			return err
		}
		p.attach(v)
		p.pstateField = sAfterValue
	}
	return nil
}

func peekIs(p *Parser, offset int, want byte) bool {
	b, has := p.r.peekAt(offset)
	return has && b == want
}

func (p *Parser) stepAfterValue() error {
	top := p.topFrame()
	b, has := p.r.cur()
	if !has {
		return nil
	}

	if b == ',' || b == ';' {
		p.r.advance()
		if err := p.skipWhitespaceAndComments(); err != nil {
			return err
		}
	}

	b, has = p.r.cur()
	if has && b == '}' && top.container.Tag() == ucl.Object {
		p.r.advance()
		return p.closeContainer()
	}
	if has && b == ']' && top.container.Tag() == ucl.Array {
		p.r.advance()
		return p.closeContainer()
	}

	if top.container.Tag() == ucl.Array {
		p.pstateField = sValue
	} else {
		p.pstateField = sKey
	}
	return nil
}

// attach inserts/appends v into the value the current top frame is
// building: Array gets a plain append; Object inserts under the pending
// key, forming an implicit-array chain if the key repeats (spec.md §4.6).
func (p *Parser) attach(v *ucl.Value) {
	top := p.topFrame()
	if top.container.Tag() == ucl.Array {
		top.container.Append(v)
		return
	}
	v.SetPriority(top.pendingKeyPriority)
	top.container.Insert(top.pendingKey, v)
	top.haveKey = false
}

// closeContainer pops the current frame. If it was the document root, the
// root is finalized; otherwise the popped container is attached to its
// parent exactly as any other completed value would be.
func (p *Parser) closeContainer() error {
	popped := p.pop()
	if len(p.stack) == 0 {
		p.root = popped.container
		p.pstateField = sAfterValue
		return nil
	}
	p.attach(popped.container)
	p.pstateField = sAfterValue
	return nil
}

// skipWhitespaceAndComments consumes whitespace and all three comment
// forms (spec.md §4.6): '#' and '//' to end of line, and nested '/* */'
// blocks tracked by a depth counter.
func (p *Parser) skipWhitespaceAndComments() error {
	for {
		b, has := p.r.cur()
		if !has {
			return nil
		}
		if chartable.Is(b, chartable.Whitespace) {
			p.r.advance()
			continue
		}
		if b == '#' {
			p.skipToEOL()
			continue
		}
		if b == '/' {
			nb, hn := p.r.peekAt(1)
			if hn && nb == '/' {
				p.skipToEOL()
				continue
			}
			if hn && nb == '*' {
				if err := p.skipBlockComment(); err != nil {
					return err
				}
				continue
			}
		}
		return nil
	}
}

func (p *Parser) skipToEOL() {
	for {
		b, has := p.r.cur()
		if !has || b == '\n' {
			return
		}
		p.r.advance()
	}
}

func (p *Parser) skipBlockComment() error {
	l, c := p.r.position()
	p.r.advance() // '/'
	p.r.advance() // '*'
	depth := 1
	for depth > 0 {
		b, has := p.r.cur()
		if !has {
			return newSyntaxErr(l, c, "unterminated block comment")
		}
		if b == '/' && peekIs(p, 1, '*') {
			depth++
			p.r.advance()
			p.r.advance()
			continue
		}
		if b == '*' && peekIs(p, 1, '/') {
			depth--
			p.r.advance()
			p.r.advance()
			continue
		}
		p.r.advance()
	}
	return nil
}

// lexScalarAtom dispatches a single scalar value (used for macro
// arguments, which never nest containers).
func (p *Parser) lexScalarAtom() (*ucl.Value, error) {
	b, has := p.r.cur()
	if !has {
		l, c := p.r.position()
		return nil, newSyntaxErr(l, c, "expected a value")
	}
	if b == '"' {
		return p.lexQuotedString()
	}
	if chartable.Is(b, chartable.DigitStart) {
		v, ok, err := p.lexNumber()
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
	}
	return p.lexUnquotedString()
}
