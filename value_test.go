package ucl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefcountIdentity(t *testing.T) {
	v := NewInt(5)
	require.EqualValues(t, 1, v.Refcount())

	v.Ref()
	assert.EqualValues(t, 2, v.Refcount())

	v.Unref()
	assert.EqualValues(t, 1, v.Refcount())
}

func TestUnrefReleasesChildren(t *testing.T) {
	arr := NewArray()
	child := NewInt(1)
	arr.Append(child)

	require.EqualValues(t, 1, child.Refcount())
	arr.Unref()
	assert.EqualValues(t, 0, child.Refcount())
}

func TestImplicitArrayInsertAndLength(t *testing.T) {
	obj := NewObject(false)
	obj.Insert("a", NewInt(1))
	obj.Insert("a", NewInt(2))
	obj.Insert("a", NewInt(3))
	obj.Insert("b", NewInt(9))

	assert.Equal(t, 2, obj.Length(), "implicit-array siblings must not inflate Object length")

	head, ok := obj.Get("a")
	require.True(t, ok)
	assert.EqualValues(t, 1, head.Int())
	require.NotNil(t, head.Next())
	assert.EqualValues(t, 2, head.Next().Int())
	require.NotNil(t, head.Next().Next())
	assert.EqualValues(t, 3, head.Next().Next().Int())
	assert.Nil(t, head.Next().Next().Next())

	var expandedCount, collapsedCount int
	obj.Iterate(Expanded, func(Entry) bool { expandedCount++; return true })
	obj.Iterate(Collapsed, func(Entry) bool { collapsedCount++; return true })
	assert.Equal(t, 4, expandedCount)
	assert.Equal(t, 2, collapsedCount)
}

func TestCaseInsensitiveObjectFoldsKeys(t *testing.T) {
	obj := NewObject(true)
	obj.Insert("Foo", NewInt(1))
	v, ok := obj.Get("FOO")
	require.True(t, ok)
	assert.EqualValues(t, 1, v.Int())
	assert.Equal(t, "foo", v.Key())
}

func TestDotPath(t *testing.T) {
	root := NewObject(false)
	inner := NewObject(false)
	inner.Insert("c", NewString("deep"))
	root.Insert("a", NewObject(false))
	rootA, _ := root.Get("a")
	rootA.Insert("b", inner.mustTake("c"))

	v, ok := root.DotPath("a.b")
	require.True(t, ok)
	assert.Equal(t, "deep", v.Str())

	_, ok = root.DotPath("a.missing")
	assert.False(t, ok)
}

// mustTake is a tiny test helper that pulls a value out of a scratch object
// without dragging the scratch object itself along.
func (v *Value) mustTake(key string) *Value {
	val, _ := v.Get(key)
	return val
}

func TestAsFloat64AcrossNumericTags(t *testing.T) {
	assert.Equal(t, 10.0, NewInt(10).AsFloat64())
	assert.Equal(t, 0.5, NewFloat(0.5).AsFloat64())
	assert.Equal(t, 600.0, NewTime(600).AsFloat64())
}
