package sar

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/window"
)

// Apodize multiplies a separable 2D window onto the matrix to suppress
// sidelobes. The window is the outer product of the 1D window along each
// dimension; dimensions are never altered. WindowNone is a no-op.
func Apodize(m *Matrix, kind WindowKind) error {
	var winFn func([]float64) []float64
	switch kind {
	case WindowNone, "":
		return nil
	case WindowHamming:
		winFn = window.Hamming
	case WindowHann:
		winFn = window.Hann
	default:
		return fmt.Errorf("apodization: unknown window %q", kind)
	}
	if m.Data == nil {
		return fmt.Errorf("apodization: matrix %q not populated", m.Name)
	}

	rowW := window.NewValues(winFn, m.Rows)
	colW := window.NewValues(winFn, m.Cols)
	for r := 0; r < m.Rows; r++ {
		row := m.Row(r)
		wr := rowW[r]
		for c := range row {
			row[c] *= complex(wr*colW[c], 0)
		}
	}
	return nil
}
