package parser

import (
	"strings"

	"github.com/kaptinlin/ucl"
)

// lexHeredoc scans a <<TAG ... TAG multiline string. The cursor is
// positioned at the first '<' of "<<"; TAG must be all-uppercase ASCII and
// content runs verbatim until a line consisting of exactly TAG terminated
// by \n or \r (spec.md §4.5).
func (p *Parser) lexHeredoc() (*ucl.Value, error) {
	line, col := p.r.position()
	p.r.advance() // first '<'
	p.r.advance() // second '<'

	var tag strings.Builder
	for {
		b, has := p.r.cur()
		if !has || b == '\n' || b == '\r' {
			break
		}
		if !(b >= 'A' && b <= 'Z') {
			return nil, newSyntaxErr(line, col, "heredoc tag must be uppercase ASCII")
		}
		tag.WriteByte(b)
		p.r.advance()
	}
	if tag.Len() == 0 {
		return nil, newSyntaxErr(line, col, "empty heredoc tag")
	}
	if b, has := p.r.cur(); has && (b == '\n' || b == '\r') {
		p.r.advance()
		if b == '\r' {
			if nb, hn := p.r.cur(); hn && nb == '\n' {
				p.r.advance()
			}
		}
	}

	tagStr := tag.String()
	startChunk := p.r.top()
	startPos := 0
	if startChunk != nil {
		startPos = startChunk.pos
	}

	var sb strings.Builder
	useBuilder := false
	atLineStart := true

	for {
		// p.r.top() may lazily pop an exhausted chunk as a side effect of
		// this call (or of the peekAt calls inside lineRemainderStartsWith
		// below), so the chunk-boundary check runs first, unconditionally,
		// every iteration — not only inside the content-byte branch — to
		// guarantee startPos is never sliced against the wrong chunk.
		curChunk := p.r.top()
		if !useBuilder && curChunk != startChunk {
			// Content crossed a chunk boundary before any terminator line
			// was found: flush the unbuffered span scanned in startChunk
			// and fall back to accumulating through the builder.
			if startChunk != nil {
				sb.Write(startChunk.data[startPos:startChunk.pos])
			}
			useBuilder = true
		}

		if atLineStart && p.lineRemainderStartsWith(tagStr) {
			var v *ucl.Value
			if !useBuilder && p.flags.has(ZeroCopy) {
				v = p.newString(zeroCopyString(startChunk.data[startPos:startChunk.pos]))
			} else {
				// Either the ZeroCopy flag is off, or it is on but this is
				// the (rare) path taken after a chunk-boundary fallback:
				// either way sb must hold the full content span. When it
				// never crossed a chunk (useBuilder still false) that span
				// was never written byte-by-byte, so flush it here first.
				if !useBuilder {
					sb.Write(startChunk.data[startPos:startChunk.pos])
				}
				v = p.newString(sb.String())
			}
			p.consumeLine(len(tagStr))
			v.SetFlag(ucl.Multiline)
			return v, nil
		}
		b, has := p.r.cur()
		if !has {
			return nil, newSyntaxErr(line, col, "unterminated heredoc")
		}
		if useBuilder {
			sb.WriteByte(b)
		}
		p.r.advance()
		switch b {
		case '\n':
			atLineStart = true
		case '\r':
			if nb, hn := p.r.cur(); hn && nb == '\n' {
				if useBuilder {
					sb.WriteByte(nb)
				}
				p.r.advance()
			}
			atLineStart = true
		default:
			atLineStart = false
		}
	}
}

// lineRemainderStartsWith reports whether, from the cursor, the rest of
// the current line is exactly tag followed by \n, \r, or EOF. The caller
// is responsible for only calling this at a true start-of-line position;
// it does not itself check the preceding byte.
func (p *Parser) lineRemainderStartsWith(tag string) bool {
	for i := 0; i < len(tag); i++ {
		b, has := p.r.peekAt(i)
		if !has || b != tag[i] {
			return false
		}
	}
	nb, hasNb := p.r.peekAt(len(tag))
	return !hasNb || nb == '\n' || nb == '\r'
}

func (p *Parser) consumeLine(tagLen int) {
	for i := 0; i < tagLen; i++ {
		p.r.advance()
	}
	if b, has := p.r.cur(); has && (b == '\n' || b == '\r') {
		p.r.advance()
		if b == '\r' {
			if nb, hn := p.r.cur(); hn && nb == '\n' {
				p.r.advance()
			}
		}
	}
}
