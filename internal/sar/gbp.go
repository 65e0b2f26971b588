package sar

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Backproject forms the SAR image by global backprojection. For every output
// pixel it computes the slant range to each aperture position, interpolates
// the corresponding range-profile sample, applies the round-trip phase
// correction and coherently accumulates in complex double precision. The
// pass consumes the compressed image when one exists, otherwise the raw image.
func Backproject(s *Store, p *Params) error {
	raw, ok := s.Find(NameCompressedImage)
	if !ok {
		raw, ok = s.Find(NameRawImage)
	}
	if !ok {
		return fmt.Errorf("backprojection: %w: %s", ErrNotFound, NameRawImage)
	}
	if p.AperturePositions <= 0 {
		return fmt.Errorf("backprojection: aperture positions must be positive, got %d", p.AperturePositions)
	}
	if raw.Rows != p.AperturePositions || raw.Cols != p.RangeBins {
		return fmt.Errorf("backprojection: raw data is %dx%d, geometry declares %d positions x %d bins",
			raw.Rows, raw.Cols, p.AperturePositions, p.RangeBins)
	}
	if p.CellSpacing <= 0 || p.Wavelength <= 0 {
		return fmt.Errorf("backprojection: geometry incomplete (cell spacing %g, wavelength %g)",
			p.CellSpacing, p.Wavelength)
	}

	img, err := s.Append(NameSARImage)
	if err != nil {
		return err
	}
	if err := img.Alloc(p.SceneRows, p.SceneCols); err != nil {
		return err
	}

	track := apertureTrack(p)
	phaseK := 4 * math.Pi / p.Wavelength
	for row := 0; row < p.SceneRows; row++ {
		out := img.Row(row)
		for col := 0; col < p.SceneCols; col++ {
			var sum complex128
			for j, x := range track {
				r := slantRange(x, row, col, p)
				if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
					return fmt.Errorf("backprojection: degenerate range %g at aperture %d pixel (%d,%d)", r, j, row, col)
				}
				fbin := r / p.CellSpacing
				k := int(fbin)
				if k+1 >= raw.Cols {
					continue
				}
				frac := complex(fbin-float64(k), 0)
				profile := raw.Row(j)
				sample := profile[k]*(1-frac) + profile[k+1]*frac
				sum += sample * cmplx.Exp(complex(0, phaseK*r))
			}
			out[col] = sum
		}
	}

	p.Nrows = p.SceneRows
	p.Ncols = p.SceneCols
	return nil
}

// SpectrumImage computes the 2D DFT of the formed image, row-wise then
// column-wise, into a buffer of identical dimensions. Always produced.
func SpectrumImage(s *Store, p *Params) error {
	img, ok := s.Find(NameSARImage)
	if !ok {
		return fmt.Errorf("spectral analysis: %w: %s", ErrNotFound, NameSARImage)
	}
	m, err := s.Append(NameSARFFT)
	if err != nil {
		return err
	}
	return m.SetData(img.Rows, img.Cols, fft2D(img.Rows, img.Cols, img.Data))
}
