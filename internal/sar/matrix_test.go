package sar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAppendAndFind(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a, err := s.Append("alpha")
	require.NoError(t, err)
	require.NoError(t, a.SetData(1, 2, []complex128{1, 2}))

	b, err := s.Append("beta")
	require.NoError(t, err)
	require.NoError(t, b.SetData(2, 2, []complex128{1, 2, 3, 4}))

	got, ok := s.Find("beta")
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = s.Find("missing")
	assert.False(t, ok)

	// Head is always reachable by its reserved name.
	head, ok := s.Find(MetadataName)
	require.True(t, ok)
	assert.Same(t, s.Head(), head)
}

func TestStoreFindFirstMatchWins(t *testing.T) {
	t.Parallel()

	s := NewStore()
	first, err := s.Append("dup")
	require.NoError(t, err)
	require.NoError(t, first.SetData(1, 1, []complex128{1}))

	second, err := s.Append("dup")
	require.NoError(t, err)
	require.NoError(t, second.SetData(1, 1, []complex128{2}))

	got, ok := s.Find("dup")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestMatrixSetDataInvariant(t *testing.T) {
	t.Parallel()

	m := &Matrix{Name: "x"}
	assert.Error(t, m.SetData(2, 3, make([]complex128, 5)))
	assert.Error(t, m.SetData(0, 3, nil))
	assert.Error(t, m.SetData(2, -1, nil))
	require.NoError(t, m.SetData(2, 3, make([]complex128, 6)))
	assert.Equal(t, 2, m.Rows)
	assert.Equal(t, 3, m.Cols)
}

func TestBuildDirectory(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a, err := s.Append("a")
	require.NoError(t, err)
	require.NoError(t, a.Alloc(2, 4))
	b, err := s.Append("b")
	require.NoError(t, err)
	require.NoError(t, b.Alloc(1, 8))

	require.NoError(t, s.BuildDirectory())
	head := s.Head()
	require.Len(t, head.Data, 2)
	assert.Equal(t, complex(2, 4), head.Data[0])
	assert.Equal(t, complex(1, 8), head.Data[1])

	// Exactly once.
	assert.Error(t, s.BuildDirectory())
}

func TestBuildDirectoryEmptyStore(t *testing.T) {
	t.Parallel()

	s := NewStore()
	assert.Error(t, s.BuildDirectory())
}

func TestStoreCloseLifecycle(t *testing.T) {
	t.Parallel()

	s := NewStore()
	a, err := s.Append("a")
	require.NoError(t, err)
	require.NoError(t, a.Alloc(4, 4))

	require.NoError(t, s.Close())
	assert.Nil(t, a.Data)

	_, err = s.Append("b")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.BuildDirectory(), ErrClosed)

	// Idempotent.
	assert.NoError(t, s.Close())
}
