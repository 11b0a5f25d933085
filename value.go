package ucl

import (
	"fmt"
	"sync/atomic"
)

// Tag identifies which union arm of a Value is live.
type Tag int

const (
	Null Tag = iota
	Bool
	Int
	Float
	// Time is numerically a Float (seconds), kept as a distinct tag so
	// emitters and the schema validator can special-case duration values
	// while still treating them as "number" for compatibility checks.
	Time
	String
	Array
	Object
	Userdata
)

func (t Tag) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Int:
		return "int"
	case Float:
		return "float"
	case Time:
		return "time"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	case Userdata:
		return "userdata"
	default:
		return "unknown"
	}
}

// Flag records per-value bookkeeping bits. Most hosts never inspect these
// directly; they exist so destruction and emission know which invariants
// hold for a given value.
type Flag uint8

const (
	// KeyAllocated means the value owns the buffer backing its Key.
	KeyAllocated Flag = 1 << iota
	// ValueAllocated means the value owns its String buffer; when unset in
	// ZeroCopy mode, the string borrows from the parser's input buffer.
	ValueAllocated
	// KeyNeedsEscape means the key contains bytes the Config/JSON emitters
	// must quote.
	KeyNeedsEscape
	// Ephemeral marks short-lived values (e.g. macro argument scratch) that
	// are never attached to a container.
	Ephemeral
	// Multiline marks a String produced by the heredoc lexer.
	Multiline
)

// UserdataPayload is the opaque-pointer variant: an arbitrary Go value plus
// an optional destructor and an emitter hook that renders it as text.
type UserdataPayload struct {
	Data    any
	Destroy func(any)
	Emit    func(any) string
}

// Value is the tagged union described in spec.md §3: every UCL value,
// whatever its tag, is one of these structs, reference counted and
// (when it is a child of an Object) carrying a key and a priority.
type Value struct {
	tag      Tag
	flags    Flag
	priority uint8 // 0-15, clamped by SetPriority

	key    string
	length int

	refcount int32
	// next chains same-keyed Object entries in insertion order, forming
	// the "implicit array" described in spec.md §3.
	next *Value

	b    bool
	i    int64
	f    float64
	s    string
	arr  []*Value
	obj  *objectMap
	ud   *UserdataPayload
}

func newValue(tag Tag) *Value {
	return &Value{tag: tag, refcount: 1}
}

// NewNull creates a Null value with refcount 1.
func NewNull() *Value { return newValue(Null) }

// NewBool creates a Bool value with refcount 1.
func NewBool(b bool) *Value {
	v := newValue(Bool)
	v.b = b
	return v
}

// NewInt creates an Int value with refcount 1.
func NewInt(i int64) *Value {
	v := newValue(Int)
	v.i = i
	return v
}

// NewFloat creates a Float value with refcount 1.
func NewFloat(f float64) *Value {
	v := newValue(Float)
	v.f = f
	return v
}

// NewTime creates a Time value (double seconds) with refcount 1.
func NewTime(seconds float64) *Value {
	v := newValue(Time)
	v.f = seconds
	return v
}

// NewString creates an owning String value: it keeps s as given (no copy
// is made) and sets ValueAllocated, so s must not be a view into a buffer
// the caller will reuse.
func NewString(s string) *Value {
	v := newValue(String)
	v.s = s
	v.length = len(s)
	v.flags |= ValueAllocated
	return v
}

// NewBorrowedString creates a String value that borrows its bytes from the
// caller (ZeroCopy mode); the caller must keep the backing memory alive for
// as long as the value is reachable. ValueAllocated is left unset.
func NewBorrowedString(s string) *Value {
	v := newValue(String)
	v.s = s
	v.length = len(s)
	return v
}

// NewArray creates an empty Array value with refcount 1.
func NewArray() *Value {
	return newValue(Array)
}

// NewObject creates an empty Object value with refcount 1. caseInsensitive
// selects ASCII-lowercase key folding at insertion time.
func NewObject(caseInsensitive bool) *Value {
	v := newValue(Object)
	v.obj = newObjectMap(caseInsensitive)
	return v
}

// NewUserdata creates an opaque Userdata value with refcount 1.
func NewUserdata(p *UserdataPayload) *Value {
	v := newValue(Userdata)
	v.ud = p
	return v
}

// Tag returns the value's tag.
func (v *Value) Tag() Tag { return v.tag }

// Key returns the value's key, or "" if it is not an Object child.
func (v *Value) Key() string { return v.key }

// Priority returns the value's merge priority (0-15).
func (v *Value) Priority() uint8 { return v.priority }

// SetPriority sets the value's merge priority, clamping to [0,15].
func (v *Value) SetPriority(p uint8) {
	if p > 15 {
		p = 15
	}
	v.priority = p
}

// HasFlag reports whether flag f is set.
func (v *Value) HasFlag(f Flag) bool { return v.flags&f != 0 }

// SetFlag sets flag f.
func (v *Value) SetFlag(f Flag) { v.flags |= f }

// Length returns the tag-dependent length: string byte length, array
// element count, or object distinct-key count. Implicit-array siblings do
// not inflate an Object's length (spec.md §3 invariants).
func (v *Value) Length() int {
	switch v.tag {
	case String:
		return v.length
	case Array:
		return len(v.arr)
	case Object:
		return v.obj.Len()
	default:
		return 0
	}
}

// Next returns the next value in this entry's implicit-array sibling chain,
// or nil if this is the last (or only) value for its key.
func (v *Value) Next() *Value { return v.next }

// Bool returns the Bool payload; the caller must check Tag() == Bool.
func (v *Value) Bool() bool { return v.b }

// Int returns the Int payload; the caller must check Tag() == Int.
func (v *Value) Int() int64 { return v.i }

// Float returns the numeric payload for Float or Time values.
func (v *Value) Float() float64 { return v.f }

// Str returns the String payload; the caller must check Tag() == String.
func (v *Value) Str() string { return v.s }

// Userdata returns the Userdata payload; the caller must check Tag() ==
// Userdata.
func (v *Value) Userdata() *UserdataPayload { return v.ud }

// Ref increments the reference count and returns v, mirroring the C API's
// ref-then-use idiom.
func (v *Value) Ref() *Value {
	atomic.AddInt32(&v.refcount, 1)
	return v
}

// Unref decrements the reference count; at zero it recursively unrefs
// Array elements and Object entries (including implicit-array siblings)
// and releases any Userdata payload via its destructor.
func (v *Value) Unref() {
	if v == nil {
		return
	}
	if atomic.AddInt32(&v.refcount, -1) > 0 {
		return
	}
	switch v.tag {
	case Array:
		for _, c := range v.arr {
			c.Unref()
		}
		v.arr = nil
	case Object:
		v.obj.unrefAll()
	case Userdata:
		if v.ud != nil && v.ud.Destroy != nil {
			v.ud.Destroy(v.ud.Data)
		}
	}
}

// Refcount returns the current reference count (for tests and diagnostics).
func (v *Value) Refcount() int32 { return atomic.LoadInt32(&v.refcount) }

// IsNumeric reports whether the value's tag is Int, Float, or Time — the
// three tags the schema validator treats as JSON Schema's "number".
func (v *Value) IsNumeric() bool {
	return v.tag == Int || v.tag == Float || v.tag == Time
}

// AsFloat64 returns the value's numeric payload regardless of whether it is
// tagged Int, Float, or Time. It panics if the value is not numeric; callers
// should check IsNumeric first.
func (v *Value) AsFloat64() float64 {
	switch v.tag {
	case Int:
		return float64(v.i)
	case Float, Time:
		return v.f
	default:
		panic(fmt.Sprintf("ucl: AsFloat64 on non-numeric tag %s", v.tag))
	}
}

// --- Array operations ---

// Append adds a value to an Array value's element list, taking ownership
// of val (the caller must not hold onto val expecting shared ownership
// without calling Ref first).
func (v *Value) Append(val *Value) {
	if v.tag != Array {
		panic("ucl: Append on non-Array value")
	}
	v.arr = append(v.arr, val)
}

// Elements returns the Array's elements in order. The returned slice must
// not be mutated by the caller.
func (v *Value) Elements() []*Value {
	if v.tag != Array {
		return nil
	}
	return v.arr
}

// --- Object operations ---

// Insert adds val under key into an Object value. If key already exists,
// the outcome depends on priority: at equal priority val is appended to the
// existing entry's implicit-array sibling chain (spec.md §4.6 "Duplicate
// keys"); a strictly higher priority replaces the whole chain; a strictly
// lower priority drops val.
func (v *Value) Insert(key string, val *Value) {
	if v.tag != Object {
		panic("ucl: Insert on non-Object value")
	}
	v.obj.insert(key, val)
}

// Get looks up key in an Object value, returning the head of its
// implicit-array chain (the first-inserted value for that key) and whether
// it was found.
func (v *Value) Get(key string) (*Value, bool) {
	if v.tag != Object {
		return nil, false
	}
	return v.obj.get(key)
}

// Delete removes key from an Object value entirely (including any
// implicit-array siblings), returning the removed chain head.
func (v *Value) Delete(key string) (*Value, bool) {
	if v.tag != Object {
		return nil, false
	}
	return v.obj.delete(key)
}

// Keys returns the Object's distinct keys in insertion order.
func (v *Value) Keys() []string {
	if v.tag != Object {
		return nil
	}
	return v.obj.keys()
}

// IterMode selects how Object iteration treats implicit-array chains.
type IterMode int

const (
	// Expanded visits every distinct value, siblings included, as if
	// duplicate keys had formed an array. Used by emitters.
	Expanded IterMode = iota
	// Collapsed visits only the head of each key's chain.
	Collapsed
)

// Entry is one (key, value) pair yielded by Iterate.
type Entry struct {
	Key   string
	Value *Value
}

// Iterate walks an Object's entries in insertion order according to mode,
// calling fn for each. Returning false from fn stops iteration early.
func (v *Value) Iterate(mode IterMode, fn func(Entry) bool) {
	if v.tag != Object {
		return
	}
	v.obj.iterate(mode, fn)
}

// DotPath looks up a value by a dotted key path ("a.b.c"), descending
// through nested Objects. This is the spec's one deliberately limited
// pointer-like lookup (spec.md §1 Non-goals: no general JSON Pointer).
func (v *Value) DotPath(path string) (*Value, bool) {
	cur := v
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			seg := path[start:i]
			if seg == "" {
				return nil, false
			}
			if cur.tag != Object {
				return nil, false
			}
			next, ok := cur.Get(seg)
			if !ok {
				return nil, false
			}
			cur = next
			start = i + 1
		}
	}
	return cur, true
}
