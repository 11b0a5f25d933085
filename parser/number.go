package parser

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/internal/chartable"
)

// suffix precedence table (spec.md §4.4). Order matters: longer, more
// specific suffixes (ms, kb, min) must be tried before their shorter
// prefixes (m, k) would otherwise swallow them.
type suffixKind int

const (
	sufNone suffixKind = iota
	sufMillis
	sufBytesPow
	sufUnitPow
	sufSeconds
	sufHours
	sufDays
	sufWeeks
	sufYears
	sufMinutes
)

type suffixMatch struct {
	text string
	kind suffixKind
	mult float64 // for sufUnitPow/sufBytesPow this is the base (1000/1024)
}

// checked longest-first within each class so "ms" beats "m" and "min"
// beats "m".
var suffixes = []suffixMatch{
	{"ms", sufMillis, 0.001},
	{"Ms", sufMillis, 0.001},
	{"min", sufMinutes, 60},
	{"MIN", sufMinutes, 60},
	{"Min", sufMinutes, 60},
	{"kb", sufBytesPow, 1024},
	{"Kb", sufBytesPow, 1024},
	{"KB", sufBytesPow, 1024},
	{"mb", sufBytesPow, 1024 * 1024},
	{"Mb", sufBytesPow, 1024 * 1024},
	{"MB", sufBytesPow, 1024 * 1024},
	{"gb", sufBytesPow, 1024 * 1024 * 1024},
	{"Gb", sufBytesPow, 1024 * 1024 * 1024},
	{"GB", sufBytesPow, 1024 * 1024 * 1024},
	{"k", sufUnitPow, 1000},
	{"K", sufUnitPow, 1000},
	{"m", sufUnitPow, 1000 * 1000},
	{"M", sufUnitPow, 1000 * 1000},
	{"g", sufUnitPow, 1000 * 1000 * 1000},
	{"G", sufUnitPow, 1000 * 1000 * 1000},
	{"s", sufSeconds, 1},
	{"S", sufSeconds, 1},
	{"h", sufHours, 3600},
	{"H", sufHours, 3600},
	{"d", sufDays, 86400},
	{"D", sufDays, 86400},
	{"w", sufWeeks, 604800},
	{"W", sufWeeks, 604800},
	{"y", sufYears, 31536000},
	{"Y", sufYears, 31536000},
}

// lexNumber attempts to scan a numeric literal (with optional suffix) at
// the cursor. ok is false when the run does not form a valid number, in
// which case the cursor is rewound and the caller should fall back to
// lexUnquotedString.
func (p *Parser) lexNumber() (val *ucl.Value, ok bool, err error) {
	start := p.r.mark()
	line, col := p.r.position()

	var sb strings.Builder
	isFloat := false

	if b, has := p.r.cur(); has && b == '-' {
		sb.WriteByte(b)
		p.r.advance()
	}

	digits := 0
	for {
		b, has := p.r.cur()
		if !has || !chartable.Is(b, chartable.Digit) {
			break
		}
		sb.WriteByte(b)
		p.r.advance()
		digits++
	}
	if digits == 0 {
		p.r.reset(start)
		return nil, false, nil
	}

	if b, has := p.r.cur(); has && b == '.' {
		if nb, hasNb := p.r.peekAt(1); hasNb && chartable.Is(nb, chartable.Digit) {
			isFloat = true
			sb.WriteByte(b)
			p.r.advance()
			for {
				b, has := p.r.cur()
				if !has || !chartable.Is(b, chartable.Digit) {
					break
				}
				sb.WriteByte(b)
				p.r.advance()
			}
		}
	}

	if b, has := p.r.cur(); has && (b == 'e' || b == 'E') {
		m := p.r.mark()
		var exp strings.Builder
		exp.WriteByte(b)
		p.r.advance()
		if sb2, has2 := p.r.cur(); has2 && (sb2 == '+' || sb2 == '-') {
			exp.WriteByte(sb2)
			p.r.advance()
		}
		expDigits := 0
		for {
			b, has := p.r.cur()
			if !has || !chartable.Is(b, chartable.Digit) {
				break
			}
			exp.WriteByte(b)
			p.r.advance()
			expDigits++
		}
		if expDigits == 0 {
			p.r.reset(m)
		} else {
			isFloat = true
			sb.WriteString(exp.String())
		}
	}

	numText := sb.String()

	// Suffix disambiguation, longest-match first within the ordered table.
	if !p.flags.has(NoTime) {
		for _, suf := range suffixes {
			if p.matchesSuffix(suf.text) {
				afterLen := len(suf.text)
				nb, hasNb := p.r.peekAt(afterLen)
				isTerm := !hasNb || chartable.Is(nb, chartable.ValueEnd)
				if !isTerm {
					continue
				}
				for i := 0; i < afterLen; i++ {
					p.r.advance()
				}
				return p.buildSuffixed(numText, isFloat, suf, line, col)
			}
		}
	}

	// No suffix: accept the bare literal only if immediately followed by a
	// value terminator; otherwise this is actually an unquoted string
	// (spec.md §4.4).
	nb, hasNb := p.r.cur()
	if hasNb && !chartable.Is(nb, chartable.ValueEnd) {
		p.r.reset(start)
		return nil, false, nil
	}

	if isFloat {
		f, perr := strconv.ParseFloat(numText, 64)
		if perr != nil {
			return nil, true, newSyntaxErr(line, col, "numeric value out of range")
		}
		return ucl.NewFloat(f), true, nil
	}
	i, perr := strconv.ParseInt(numText, 10, 64)
	if perr != nil {
		return nil, true, newSyntaxErr(line, col, "numeric value out of range")
	}
	return ucl.NewInt(i), true, nil
}

func (p *Parser) matchesSuffix(text string) bool {
	for i := 0; i < len(text); i++ {
		b, has := p.r.peekAt(i)
		if !has || b != text[i] {
			return false
		}
	}
	return true
}

func (p *Parser) buildSuffixed(numText string, isFloat bool, suf suffixMatch, line, col int) (*ucl.Value, bool, error) {
	base, perr := strconv.ParseFloat(numText, 64)
	if perr != nil {
		return nil, true, newSyntaxErr(line, col, "numeric value out of range")
	}

	switch suf.kind {
	case sufMillis:
		return ucl.NewTime(base * suf.mult), true, nil
	case sufBytesPow:
		// kb/mb/gb always produce an Int regardless of the literal's form.
		return ucl.NewInt(int64(base * suf.mult)), true, nil
	case sufUnitPow:
		// k/m/g: Int when the literal itself had no fractional/exponent
		// part, Float otherwise (spec.md §4.4).
		scaled := base * suf.mult
		if !isFloat {
			return ucl.NewInt(int64(scaled)), true, nil
		}
		return ucl.NewFloat(scaled), true, nil
	case sufSeconds, sufHours, sufDays, sufWeeks, sufYears, sufMinutes:
		return ucl.NewTime(base * suf.mult), true, nil
	default:
		return nil, true, newSyntaxErr(line, col, "internal: unhandled suffix kind")
	}
}
