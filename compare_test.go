package ucl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualNumericCrossTag(t *testing.T) {
	assert.True(t, Equal(NewInt(1), NewFloat(1.0)), "1 and 1.0 compare equal as numbers")
	assert.False(t, Equal(NewInt(1), NewInt(2)))
}

func TestEqualObjectsIgnoreKeyOrder(t *testing.T) {
	a := NewObject(false)
	a.Insert("x", NewInt(1))
	a.Insert("y", NewInt(2))

	b := NewObject(false)
	b.Insert("y", NewInt(2))
	b.Insert("x", NewInt(1))

	assert.True(t, Equal(a, b))
}

func TestEqualObjectsCompareImplicitArrayChains(t *testing.T) {
	a := NewObject(false)
	a.Insert("a", NewInt(1))
	a.Insert("a", NewInt(2))

	b := NewObject(false)
	b.Insert("a", NewInt(1))

	assert.False(t, Equal(a, b), "differing chain lengths must not compare equal")
}

func TestMergePriority(t *testing.T) {
	existing := NewObject(false)
	low := NewInt(1)
	low.SetPriority(0)
	existing.Insert("k", low)

	incoming := NewObject(false)
	high := NewInt(2)
	high.SetPriority(5)
	incoming.Insert("k", high)

	existing.Merge(incoming)
	v, _ := existing.Get("k")
	assert.EqualValues(t, 2, v.Int(), "higher-priority incoming value should replace a lower-priority existing one")

	// Equal priority: the value already present wins.
	again := NewObject(false)
	same1 := NewInt(10)
	same1.SetPriority(3)
	again.Insert("k", same1)

	incoming2 := NewObject(false)
	same2 := NewInt(20)
	same2.SetPriority(3)
	incoming2.Insert("k", same2)

	again.Merge(incoming2)
	v2, _ := again.Get("k")
	assert.EqualValues(t, 10, v2.Int(), "equal priority: existing value wins per spec.md §4.6")
}
