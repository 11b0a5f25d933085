package ucl

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// objectMap is the ordered hash map described in spec.md §4.2: an
// insertion-ordered key→value mapping, optionally case-insensitive, with
// O(1)-amortized insert/lookup/delete. Storage of distinct keys is
// delegated to wk8/go-ordered-map/v2, which already gives us the
// insertion-order iteration and amortized-O(1) map operations the spec
// asks for; what it cannot express — the implicit-array sibling chain
// hung off an Object entry's *Value when a key repeats — is maintained by
// hand on the Value itself (see Value.next in value.go).
type objectMap struct {
	caseInsensitive bool
	m               *orderedmap.OrderedMap[string, *Value]
}

func newObjectMap(caseInsensitive bool) *objectMap {
	return &objectMap{
		caseInsensitive: caseInsensitive,
		m:               orderedmap.New[string, *Value](),
	}
}

func (o *objectMap) fold(key string) string {
	if o.caseInsensitive {
		return strings.ToLower(key)
	}
	return key
}

// insert adds val under key, creating the chain if key is new. val.key is
// set to the (possibly folded) map key so that Value.Key() always matches
// the entry it lives under, per spec.md §3's invariant.
//
// A collision with an existing chain is resolved by priority (spec.md
// §4.6/§4.7, the same rule mergeInsert applies to whole-object merges):
// equal priority appends val to the chain tail, forming an implicit array
// exactly as ordinary duplicate keys within one source do; a strictly
// higher incoming priority replaces the chain outright (a higher-priority
// .include overrides rather than accumulates); a strictly lower incoming
// priority is silently dropped.
func (o *objectMap) insert(key string, val *Value) {
	k := o.fold(key)
	val.key = k
	val.flags |= KeyAllocated

	head, ok := o.m.Get(k)
	if !ok {
		o.m.Set(k, val)
		return
	}

	switch {
	case val.priority > head.priority:
		for v, nxt := head, (*Value)(nil); v != nil; v = nxt {
			nxt = v.next
			v.next = nil
			v.Unref()
		}
		o.m.Set(k, val)
	case val.priority < head.priority:
		val.Unref()
	default:
		tail := head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = val
	}
}

func (o *objectMap) get(key string) (*Value, bool) {
	return o.m.Get(o.fold(key))
}

func (o *objectMap) delete(key string) (*Value, bool) {
	return o.m.Delete(o.fold(key))
}

func (o *objectMap) keys() []string {
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (o *objectMap) Len() int { return o.m.Len() }

func (o *objectMap) iterate(mode IterMode, fn func(Entry) bool) {
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if mode == Collapsed {
			if !fn(Entry{Key: pair.Key, Value: pair.Value}) {
				return
			}
			continue
		}
		for v := pair.Value; v != nil; v = v.next {
			if !fn(Entry{Key: pair.Key, Value: v}) {
				return
			}
		}
	}
}

func (o *objectMap) unrefAll() {
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		for v, nxt := pair.Value, (*Value)(nil); v != nil; v = nxt {
			nxt = v.next
			v.next = nil
			v.Unref()
		}
	}
	o.m = orderedmap.New[string, *Value]()
}

// mergeInsert implements the parser's priority-merge rule (spec.md §4.6):
// when a key already exists in o, the existing head value wins if its
// priority is >= incoming's priority; otherwise incoming replaces it
// (discarding the old chain). Object-vs-object collisions recurse.
func (o *objectMap) mergeInsert(key string, incoming *Value) {
	k := o.fold(key)
	existing, ok := o.m.Get(k)
	if !ok {
		incoming.key = k
		o.m.Set(k, incoming)
		return
	}

	if existing.tag == Object && incoming.tag == Object {
		existing.obj.mergeAll(incoming.obj)
		return
	}

	if existing.priority >= incoming.priority {
		return
	}
	incoming.key = k
	o.m.Set(k, incoming)
}

func (o *objectMap) mergeAll(other *objectMap) {
	for pair := other.m.Oldest(); pair != nil; pair = pair.Next() {
		o.mergeInsert(pair.Key, pair.Value)
	}
}
