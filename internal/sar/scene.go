package sar

import (
	"fmt"
	"math"
	"math/cmplx"
)

// BuildScene constructs the synthetic scene: an empty SceneRows x SceneCols
// image with the compressed pulse embedded centred in both dimensions. A
// pulse larger than the scene in either dimension is a configuration error.
func BuildScene(s *Store, p *Params) error {
	pulse, ok := s.Find(NameCompressedPulse)
	if !ok {
		return fmt.Errorf("scene: %w: %s", ErrNotFound, NameCompressedPulse)
	}
	if pulse.Rows > p.SceneRows || pulse.Cols > p.SceneCols {
		return fmt.Errorf("scene: pulse %dx%d exceeds scene %dx%d",
			pulse.Rows, pulse.Cols, p.SceneRows, p.SceneCols)
	}

	scene, err := s.Append(NameScene)
	if err != nil {
		return err
	}
	if err := scene.Alloc(p.SceneRows, p.SceneCols); err != nil {
		return err
	}
	rowOff := (p.SceneRows - pulse.Rows) / 2
	colOff := (p.SceneCols - pulse.Cols) / 2
	for r := 0; r < pulse.Rows; r++ {
		copy(scene.Row(rowOff + r)[colOff:colOff+pulse.Cols], pulse.Row(r))
	}
	return nil
}

// apertureTrack returns the antenna positions along the column axis, spaced
// at the cell spacing and centred over the scene.
func apertureTrack(p *Params) []float64 {
	track := make([]float64, p.AperturePositions)
	centre := p.CellSpacing * float64(p.SceneCols-1) / 2
	for j := range track {
		track[j] = centre + p.CellSpacing*(float64(j)-float64(p.AperturePositions-1)/2)
	}
	return track
}

// slantRange is the distance from an antenna at track position x to the
// ground location of cell (row, col). The track runs parallel to the scene's
// first row at the configured standoff.
func slantRange(x float64, row, col int, p *Params) float64 {
	dx := x - float64(col)*p.CellSpacing
	dy := p.Standoff + float64(row)*p.CellSpacing
	return math.Hypot(dx, dy)
}

// SimulateScan derives the raw range returns an idealized radar would record
// while scanning the scene along the synthetic aperture: each nonzero scene
// cell contributes to the nearest range bin of each aperture position with
// the round-trip propagation phase applied. The range bin spacing equals the
// scene cell spacing, which is set to the compressed pulse resolution.
func SimulateScan(s *Store, p *Params) error {
	scene, ok := s.Find(NameScene)
	if !ok {
		return fmt.Errorf("scan simulation: %w: %s", ErrNotFound, NameScene)
	}
	if p.AperturePositions <= 0 {
		return fmt.Errorf("scan simulation: aperture positions must be positive, got %d", p.AperturePositions)
	}
	if p.Resolution <= 0 {
		return fmt.Errorf("scan simulation: resolution not derived, run pulse compression first")
	}
	p.CellSpacing = p.Resolution

	// Farthest corner of the scene from either end of the track bounds the swath.
	track := apertureTrack(p)
	var rmax float64
	for _, x := range []float64{track[0], track[len(track)-1]} {
		for _, row := range []int{0, scene.Rows - 1} {
			for _, col := range []int{0, scene.Cols - 1} {
				if r := slantRange(x, row, col, p); r > rmax {
					rmax = r
				}
			}
		}
	}
	bins := int(rmax/p.CellSpacing) + 2
	p.RangeBins = bins

	raw, err := s.Append(NameRawImage)
	if err != nil {
		return err
	}
	if err := raw.Alloc(p.AperturePositions, bins); err != nil {
		return err
	}

	phaseK := -4 * math.Pi / p.Wavelength
	for j, x := range track {
		profile := raw.Row(j)
		for row := 0; row < scene.Rows; row++ {
			for col := 0; col < scene.Cols; col++ {
				v := scene.At(row, col)
				if v == 0 {
					continue
				}
				r := slantRange(x, row, col, p)
				if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
					return fmt.Errorf("scan simulation: degenerate range %g at aperture %d cell (%d,%d)", r, j, row, col)
				}
				bin := int(r/p.CellSpacing + 0.5)
				if bin >= bins {
					continue
				}
				profile[bin] += v * cmplx.Exp(complex(0, phaseK*r))
			}
		}
	}
	return nil
}
