// Package monitor renders diagnostic views of pipeline output.
package monitor

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/aperture.report/internal/sar"
)

// floor for the dB scale so zero pixels don't blow out the palette range.
const dbFloor = -120.0

// magnitudeGrid adapts a complex matrix to plotter.GridXYZ, exposing pixel
// magnitude in dB. Rows map to Y, columns to X.
type magnitudeGrid struct {
	m *sar.Matrix
}

func (g magnitudeGrid) Dims() (c, r int) { return g.m.Cols, g.m.Rows }

func (g magnitudeGrid) X(c int) float64 { return float64(c) }

func (g magnitudeGrid) Y(r int) float64 { return float64(r) }

func (g magnitudeGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	mag := math.Hypot(real(v), imag(v))
	if mag <= 0 {
		return dbFloor
	}
	db := 20 * math.Log10(mag)
	if db < dbFloor {
		return dbFloor
	}
	return db
}

// SaveMagnitudePNG writes a heatmap of the matrix magnitude (dB) to path.
func SaveMagnitudePNG(m *sar.Matrix, title, path string) error {
	if m == nil || m.Data == nil {
		return fmt.Errorf("plot: matrix not populated")
	}

	h := plotter.NewHeatMap(magnitudeGrid{m: m}, palette.Heat(16, 1))
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Range (pixels)"
	p.Y.Label.Text = "Azimuth (pixels)"
	p.Add(h)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save magnitude plot: %w", err)
	}
	return nil
}
