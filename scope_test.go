package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeDefineAndFind(t *testing.T) {
	heap := NewHeap()
	root := heap.NewScope(nil)
	root.Define("x", Number(1))
	assert.True(t, root.Find("x"))
	assert.False(t, root.Find("y"))
}

func TestScopeLookupWalksParents(t *testing.T) {
	heap := NewHeap()
	root := heap.NewScope(nil)
	root.Define("x", Number(10))
	child := heap.NewScope(root)
	v, ok := child.lookup("x")
	assert.True(t, ok)
	assert.Equal(t, Number(10), v)
}

func TestScopeDefineShadowsParent(t *testing.T) {
	heap := NewHeap()
	root := heap.NewScope(nil)
	root.Define("x", Number(1))
	child := heap.NewScope(root)
	child.Define("x", Number(2))

	v, _ := child.lookup("x")
	assert.Equal(t, Number(2), v)
	v, _ = root.lookup("x")
	assert.Equal(t, Number(1), v)
}

func TestScopeGetMutatesThroughAncestor(t *testing.T) {
	heap := NewHeap()
	root := heap.NewScope(nil)
	root.Define("x", Number(1))
	child := heap.NewScope(root)

	slot := child.Get("x")
	*slot = Number(99)

	v, _ := root.lookup("x")
	assert.Equal(t, Number(99), v)
}

func TestScopeGetCreatesPlaceholderWhenUnbound(t *testing.T) {
	heap := NewHeap()
	root := heap.NewScope(nil)
	assert.False(t, root.Find("z"))
	slot := root.Get("z")
	assert.Nil(t, *slot)
	assert.True(t, root.Find("z"))
}
