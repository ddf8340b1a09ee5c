package collections

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type Int int

func (a Int) Less(b Int) bool {
	return a < b
}

func TestNewPriorityQueue(t *testing.T) {
	q := NewPriorityQueue([]Int{4, 3, 5, 1, 2})
	require.False(t, q.Empty())
	require.Equal(t, Int(1), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(2), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(3), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(4), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(5), q.Pop())
	require.True(t, q.Empty())
}

func TestNewEmptyPriorityQueue(t *testing.T) {
	q := NewEmptyPriorityQueue[Int]()
	require.True(t, q.Empty())

	for i := Int(5); i >= 1; i-- {
		q.Push(i)
	}

	require.False(t, q.Empty())
	require.Equal(t, Int(1), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(2), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(3), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(4), q.Pop())
	require.False(t, q.Empty())
	require.Equal(t, Int(5), q.Pop())
	require.True(t, q.Empty())
}
