package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGarbageCollectionReclaimsUnreachableCells(t *testing.T) {
	it, err := New(WithGC(false))
	require.NoError(t, err)

	_, err = it.Run("(cons 1 2)")
	require.NoError(t, err)
	before := it.heap.size()

	it.collectGarbage()
	after := it.heap.size()

	assert.Less(t, after, before)
}

func TestGarbageCollectionKeepsReachableBindings(t *testing.T) {
	it, err := New(WithGC(false))
	require.NoError(t, err)

	_, err = it.Run("(define kept (cons 1 2))")
	require.NoError(t, err)

	it.collectGarbage()

	out, err := it.Run("kept")
	require.NoError(t, err)
	assert.Equal(t, "(1 . 2)", out)
}

func TestGarbageCollectionRunsAutomaticallyByDefault(t *testing.T) {
	it, err := New()
	require.NoError(t, err)

	_, err = it.Run("(cons 1 2)")
	require.NoError(t, err)
	baseline := it.HeapStats().Live

	_, err = it.Run("(cons 3 4)")
	require.NoError(t, err)

	// Neither throwaway cons result was bound to anything, so the
	// automatic collection after each Run should leave heap size
	// unchanged rather than growing call over call.
	assert.Equal(t, baseline, it.HeapStats().Live)
}

func TestMarkReachesThroughLambdaEnvAndBody(t *testing.T) {
	heap := NewHeap()
	root := heap.NewScope(nil)
	kept := heap.NewNumber(123)
	inner := heap.NewScope(root)
	inner.Define("kept", kept)
	lambda := heap.NewLambda(nil, []Value{Symbol("kept")}, inner)
	root.Define("f", lambda)

	marked := make(map[Value]bool)
	mark(root, marked)

	assert.True(t, marked[lambda])
	assert.True(t, marked[inner])
	assert.True(t, marked[kept])
}
