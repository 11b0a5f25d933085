package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/internal/chartable"
)

// lexQuotedString scans a JSON-style quoted string starting at the opening
// '"' (spec.md §4.5). Raw control bytes are invalid; backslash escapes are
// the standard JSON set plus \uXXXX, including UTF-16 surrogate pairs for
// code points above U+FFFF.
func (p *Parser) lexQuotedString() (*ucl.Value, error) {
	line, col := p.r.position()
	p.r.advance() // consume opening quote

	if p.flags.has(ZeroCopy) {
		if s, ok := p.tryZeroCopyQuoted(); ok {
			return p.newString(s), nil
		}
	}

	var sb strings.Builder
	for {
		b, has := p.r.cur()
		if !has {
			return nil, newSyntaxErr(line, col, "unterminated quoted string")
		}
		if b == '"' {
			p.r.advance()
			return p.newString(sb.String()), nil
		}
		if b < 0x20 {
			l, c := p.r.position()
			return nil, newSyntaxErrByte(l, c, "invalid control byte in quoted string", b)
		}
		if b != '\\' {
			sb.WriteByte(b)
			p.r.advance()
			continue
		}

		p.r.advance() // consume backslash
		esc, hasEsc := p.r.cur()
		if !hasEsc {
			return nil, newSyntaxErr(line, col, "unterminated escape sequence")
		}
		if !chartable.Is(esc, chartable.Escape) {
			l, c := p.r.position()
			return nil, newSyntaxErrByte(l, c, "invalid escape sequence", esc)
		}

		switch esc {
		case '"', '\\', '/':
			sb.WriteByte(esc)
			p.r.advance()
		case 'b':
			sb.WriteByte('\b')
			p.r.advance()
		case 'f':
			sb.WriteByte('\f')
			p.r.advance()
		case 'n':
			sb.WriteByte('\n')
			p.r.advance()
		case 'r':
			sb.WriteByte('\r')
			p.r.advance()
		case 't':
			sb.WriteByte('\t')
			p.r.advance()
		case 'u':
			p.r.advance()
			r, err := p.lexUnicodeEscape(line, col)
			if err != nil {
				return nil, err
			}
			sb.WriteRune(r)
		}
	}
}

// tryZeroCopyQuoted attempts the ZeroCopy fast path for a quoted string
// positioned just past the opening '"': if the string closes within the
// current chunk with no escape sequence or control byte in between, it
// consumes through the closing quote and returns a string that slices the
// chunk's own backing array directly (spec.md Testable Property #5). Any
// escape, control byte, chunk boundary, or EOF before the close means
// ok=false with no input consumed, so the caller retries with the copying
// lexer — an escape always requires materializing a different byte
// sequence than the raw input, so there is no zero-copy representation for
// it regardless of this flag.
func (p *Parser) tryZeroCopyQuoted() (s string, ok bool) {
	c := p.r.top()
	if c == nil {
		return "", false
	}
	start := c.pos
	for i := 0; ; i++ {
		b, has := p.r.peekAt(i)
		if !has {
			return "", false
		}
		if b == '"' {
			for j := 0; j < i+1; j++ {
				p.r.advance()
			}
			return zeroCopyString(c.data[start : start+i]), true
		}
		if b == '\\' || b < 0x20 {
			return "", false
		}
	}
}

func (p *Parser) lexHex4() (uint32, bool) {
	var v uint32
	for i := 0; i < 4; i++ {
		b, has := p.r.cur()
		if !has {
			return 0, false
		}
		var d uint32
		switch {
		case b >= '0' && b <= '9':
			d = uint32(b - '0')
		case b >= 'a' && b <= 'f':
			d = uint32(b-'a') + 10
		case b >= 'A' && b <= 'F':
			d = uint32(b-'A') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
		p.r.advance()
	}
	return v, true
}

// lexUnicodeEscape reads a \uXXXX escape (the 'u' has already been
// consumed) and, when it forms the high half of a UTF-16 surrogate pair,
// also consumes the following \uXXXX low half, re-encoding both as a
// single rune.
func (p *Parser) lexUnicodeEscape(line, col int) (rune, error) {
	hi, ok := p.lexHex4()
	if !ok {
		return 0, newSyntaxErr(line, col, "invalid \\u escape")
	}
	if hi < 0xD800 || hi > 0xDBFF {
		return rune(hi), nil
	}

	// High surrogate: require a following \uDC00-\uDFFF low surrogate.
	b1, h1 := p.r.cur()
	b2, h2 := p.r.peekAt(1)
	if !h1 || !h2 || b1 != '\\' || b2 != 'u' {
		return 0, newSyntaxErr(line, col, "unpaired utf-16 surrogate")
	}
	p.r.advance()
	p.r.advance()
	lo, ok := p.lexHex4()
	if !ok || lo < 0xDC00 || lo > 0xDFFF {
		return 0, newSyntaxErr(line, col, "invalid utf-16 low surrogate")
	}
	r := ((rune(hi) - 0xD800) << 10) | (rune(lo) - 0xDC00) + 0x10000
	if !utf8.ValidRune(r) {
		return 0, newSyntaxErr(line, col, "invalid utf-16 surrogate pair")
	}
	return r, nil
}

// lexUnquotedString captures an unquoted value atom: from the cursor up to
// the first value terminator or comment start, tracking balanced {}/[] so
// that bare tokens like a path or URL containing brackets aren't cut short
// (spec.md §4.5). Leading/trailing whitespace is stripped.
func (p *Parser) lexUnquotedString() (*ucl.Value, error) {
	if p.flags.has(ZeroCopy) {
		if text, ok := p.tryZeroCopyUnquoted(); ok {
			if b, ok := recognizeBool(text); ok {
				return ucl.NewBool(b), nil
			}
			return p.newString(text), nil
		}
	}

	var sb strings.Builder
	braceDepth, bracketDepth := 0, 0

	for {
		b, has := p.r.cur()
		if !has {
			break
		}
		if braceDepth == 0 && bracketDepth == 0 {
			if chartable.Is(b, chartable.ValueEnd) {
				break
			}
			if b == '#' {
				break
			}
			if b == '/' {
				if nb, hn := p.r.peekAt(1); hn && (nb == '/' || nb == '*') {
					break
				}
			}
		}
		switch b {
		case '{':
			braceDepth++
		case '}':
			if braceDepth > 0 {
				braceDepth--
			}
		case '[':
			bracketDepth++
		case ']':
			if bracketDepth > 0 {
				bracketDepth--
			}
		}
		sb.WriteByte(b)
		p.r.advance()
	}

	text := strings.TrimSpace(sb.String())
	if b, ok := recognizeBool(text); ok {
		return ucl.NewBool(b), nil
	}
	return p.newString(text), nil
}

// tryZeroCopyUnquoted attempts the ZeroCopy fast path for an unquoted
// string atom: unlike the quoted lexer, unquoted capture never transforms
// bytes (no escapes), so the only reason to fall back is the scan running
// off the end of the current chunk before finding the terminator — it
// repeats the same terminator/brace-balance scan as lexUnquotedString's
// slow path via peekAt, which is bounded to the current chunk, then slices
// the chunk's own backing array and trims it in place (TrimSpace re-slices
// rather than copying). ok=false means no input was consumed.
func (p *Parser) tryZeroCopyUnquoted() (text string, ok bool) {
	c := p.r.top()
	if c == nil {
		return "", false
	}
	start := c.pos
	braceDepth, bracketDepth := 0, 0
	i := 0
	for {
		b, has := p.r.peekAt(i)
		if !has {
			return "", false
		}
		if braceDepth == 0 && bracketDepth == 0 {
			if chartable.Is(b, chartable.ValueEnd) {
				break
			}
			if b == '#' {
				break
			}
			if b == '/' {
				if nb, hn := p.r.peekAt(i + 1); hn && (nb == '/' || nb == '*') {
					break
				}
			}
		}
		switch b {
		case '{':
			braceDepth++
		case '}':
			if braceDepth > 0 {
				braceDepth--
			}
		case '[':
			bracketDepth++
		case ']':
			if bracketDepth > 0 {
				bracketDepth--
			}
		}
		i++
	}
	for j := 0; j < i; j++ {
		p.r.advance()
	}
	return strings.TrimSpace(zeroCopyString(c.data[start : start+i])), true
}

// recognizeBool applies the case-insensitive boolean literal recognition
// spec.md §4.5 requires after unquoted string capture.
func recognizeBool(text string) (bool, bool) {
	switch strings.ToLower(text) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
