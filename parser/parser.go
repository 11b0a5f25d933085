// Package parser implements the tolerant streaming UCL parser: a chunk
// reader (spec.md §4.3), number/string/heredoc lexers (§4.4-4.5), an
// object/array/key/value/after-value/macro state machine (§4.6), and the
// macro and ${VAR} expansion engine (§4.7). It produces github.com/
// kaptinlin/ucl.Value trees.
package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/kaptinlin/ucl"
)

// Flag configures a Parser's lexical behavior (spec.md §4.6, §6).
type Flag uint8

const (
	// KeyLowercase lowercases every key at insertion time.
	KeyLowercase Flag = 1 << iota
	// ZeroCopy stores string values as slices of the input buffer instead
	// of copying; the caller must keep that buffer alive.
	ZeroCopy
	// NoTime disables numeric time suffixes, treating them as part of an
	// unquoted string instead.
	NoTime
)

func (f Flag) has(bit Flag) bool { return f&bit != 0 }

type runState int

const (
	stateRunning runState = iota
	stateDone
	stateError
)

// frame is one entry in the parser's container stack.
type frame struct {
	container          *ucl.Value // Object or Array
	pendingKey         string
	pendingKeyPriority uint8
	haveKey            bool
	// implicit marks the synthetic top-level object created when the
	// document doesn't open with '{' or '[' (spec.md §4.1): it has no
	// matching closing brace and is finalized by GetObject instead.
	implicit bool
}

// Parser is a tolerant, single-threaded, single-use UCL parser (spec.md
// §5: synchronous, not safe for concurrent mutation).
type Parser struct {
	flags Flag
	r     *stackReader

	stack       []*frame
	root        *ucl.Value
	pstateField pstate

	state runState
	err   error

	macros           map[string]MacroHandler
	variables        map[string]string
	variablesHandler VariablesHandler
	fetcher          Fetcher
	sigVerifier      SignatureVerifier
	expandFilevars   bool
}

// New creates a parser configured by the given flags.
func New(flags Flag) *Parser {
	p := &Parser{
		flags:     flags,
		r:         &stackReader{},
		macros:    make(map[string]MacroHandler),
		variables: make(map[string]string),
	}
	p.registerBuiltinMacros()
	return p
}

// AddChunk adds len(data) bytes of input at the given priority (default 0
// if omitted) and advances the state machine as far as it can go. It
// returns false (with GetError populated) once the parser has entered the
// terminal Error state — including on this call.
func (p *Parser) AddChunk(data []byte, priority ...uint8) bool {
	if p.state == stateError {
		p.err = ErrState
		return false
	}
	var pr uint8
	if len(priority) > 0 {
		pr = priority[0]
	}
	if err := p.r.push(data, pr, ""); err != nil {
		p.fail(err)
		return false
	}
	return p.run()
}

// AddString is a convenience wrapper over AddChunk for string input.
func (p *Parser) AddString(s string, priority ...uint8) bool {
	return p.AddChunk([]byte(s), priority...)
}

// AddFile is a convenience wrapper that reads path from the local
// filesystem and feeds it through AddChunk, also arming FILENAME/CURDIR.
func (p *Parser) AddFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		p.fail(fmt.Errorf("%w: %v", ErrIO, err))
		return false
	}
	p.SetFileVars(path, true)
	return p.AddChunk(data)
}

// AddFD is a convenience wrapper that reads all of fd and feeds it through
// AddChunk.
func (p *Parser) AddFD(fd *os.File) bool {
	data, err := readAll(fd)
	if err != nil {
		p.fail(fmt.Errorf("%w: %v", ErrIO, err))
		return false
	}
	return p.AddChunk(data)
}

func readAll(f *os.File) ([]byte, error) {
	buf := make([]byte, 0, 4096)
	tmp := make([]byte, 4096)
	for {
		n, err := f.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf, nil
			}
			return buf, err
		}
		if n == 0 {
			return buf, nil
		}
	}
}

// GetObject returns the fully parsed root value with its refcount
// incremented, or an error if parsing has not completed successfully. A
// document with no opening '{'/'[' builds an implicit top-level object
// that never sees a matching closing brace; GetObject finalizes it here
// once the caller signals no more input is coming.
func (p *Parser) GetObject() (*ucl.Value, error) {
	if p.state == stateError {
		return nil, p.err
	}
	if p.root == nil && len(p.stack) == 1 && p.stack[0].implicit {
		p.root = p.stack[0].container
		p.stack = nil
	}
	if p.root == nil {
		return nil, fmt.Errorf("%w: no input parsed", ErrState)
	}
	if len(p.stack) != 0 {
		return nil, fmt.Errorf("%w: unterminated container", ErrState)
	}
	return p.root.Ref(), nil
}

// GetError returns the parser's stored error, or nil if none occurred.
func (p *Parser) GetError() error { return p.err }

func (p *Parser) fail(err error) {
	p.state = stateError
	p.err = err
}

// newString constructs a String value honoring the ZeroCopy configuration:
// s is borrowed only when ${VAR} expansion leaves it unchanged and its
// bytes lie inside one of the chunk stack's input buffers; a string that a
// lexer assembled in a builder is owned (ValueAllocated). KeyLowercase is
// applied by the object map at insertion, not here.
func (p *Parser) newString(s string) *ucl.Value {
	expanded := p.expandVariables(s)
	if p.flags.has(ZeroCopy) && expanded == s && len(s) > 0 {
		sp := uintptr(unsafe.Pointer(unsafe.StringData(s)))
		for _, c := range p.r.chunks {
			if len(c.data) == 0 {
				continue
			}
			base := uintptr(unsafe.Pointer(&c.data[0]))
			if sp >= base && sp < base+uintptr(len(c.data)) {
				return ucl.NewBorrowedString(s)
			}
		}
	}
	return ucl.NewString(expanded)
}
