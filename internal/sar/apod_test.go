package sar

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onesMatrix(t *testing.T, rows, cols int) *Matrix {
	t.Helper()
	m := &Matrix{Name: "img"}
	data := make([]complex128, rows*cols)
	for i := range data {
		data[i] = 1
	}
	require.NoError(t, m.SetData(rows, cols, data))
	return m
}

func TestApodizePreservesDimensions(t *testing.T) {
	t.Parallel()

	for _, kind := range []WindowKind{WindowHamming, WindowHann} {
		m := onesMatrix(t, 16, 32)
		require.NoError(t, Apodize(m, kind))
		assert.Equal(t, 16, m.Rows)
		assert.Equal(t, 32, m.Cols)
		assert.Len(t, m.Data, 16*32)
	}
}

func TestApodizeTapersEdges(t *testing.T) {
	t.Parallel()

	m := onesMatrix(t, 17, 17)
	require.NoError(t, Apodize(m, WindowHann))

	centre := cmplx.Abs(m.At(8, 8))
	corner := cmplx.Abs(m.At(0, 0))
	edge := cmplx.Abs(m.At(8, 0))
	assert.Greater(t, centre, edge)
	assert.GreaterOrEqual(t, edge, corner)
	assert.InDelta(t, 1.0, centre, 0.05) // window peaks at the centre
}

func TestApodizeNoneIsNoOp(t *testing.T) {
	t.Parallel()

	m := onesMatrix(t, 4, 4)
	require.NoError(t, Apodize(m, WindowNone))
	for _, v := range m.Data {
		assert.Equal(t, complex128(1), v)
	}
}

func TestApodizeUnknownWindow(t *testing.T) {
	t.Parallel()

	m := onesMatrix(t, 4, 4)
	assert.Error(t, Apodize(m, WindowKind("blackman")))
}

func TestApodizeUnpopulatedMatrix(t *testing.T) {
	t.Parallel()

	assert.Error(t, Apodize(&Matrix{Name: "empty"}, WindowHamming))
}
