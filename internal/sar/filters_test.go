package sar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFilterRegistered(t *testing.T) {
	t.Parallel()

	RegisterFilter("test-double", func(m *Matrix, p *Params) error {
		for i := range m.Data {
			m.Data[i] *= 2
		}
		return nil
	})

	m := onesMatrix(t, 4, 4)
	require.NoError(t, applyFilter("test-double", m, simParams()))
	assert.Equal(t, complex128(2), m.Data[0])
}

func TestApplyFilterUnregisteredSkips(t *testing.T) {
	t.Parallel()

	m := onesMatrix(t, 4, 4)
	require.NoError(t, applyFilter("test-nonexistent", m, simParams()))
	// Skip leaves the prior buffer fully valid.
	for _, v := range m.Data {
		assert.Equal(t, complex128(1), v)
	}
}

func TestApplyFilterDimensionViolation(t *testing.T) {
	t.Parallel()

	RegisterFilter("test-shrink", func(m *Matrix, p *Params) error {
		return m.SetData(2, 2, make([]complex128, 4))
	})

	m := onesMatrix(t, 4, 4)
	err := applyFilter("test-shrink", m, simParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed dimensions")
}

func TestApplyFilterError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	RegisterFilter("test-fail", func(m *Matrix, p *Params) error { return sentinel })

	err := applyFilter("test-fail", onesMatrix(t, 2, 2), simParams())
	assert.ErrorIs(t, err, sentinel)
}
