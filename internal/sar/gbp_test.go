package sar

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageArgmax(m *Matrix) (row, col int) {
	bestMag := -1.0
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if mag := cmplx.Abs(m.At(r, c)); mag > bestMag {
				bestMag = mag
				row, col = r, c
			}
		}
	}
	return row, col
}

// pointTargetStore builds a store holding a scene with a single unit
// scatterer and the raw scan data it produces.
func pointTargetStore(t *testing.T, p *Params, row, col int) *Store {
	t.Helper()
	s := NewStore()
	scene, err := s.Append(NameScene)
	require.NoError(t, err)
	require.NoError(t, scene.Alloc(p.SceneRows, p.SceneCols))
	scene.Set(row, col, 1)
	require.NoError(t, SimulateScan(s, p))
	return s
}

func TestBackprojectPointTarget(t *testing.T) {
	t.Parallel()

	p := &Params{
		Mode:              ModeSimulate,
		SceneRows:         64,
		SceneCols:         64,
		AperturePositions: 32,
		Standoff:          200,
		Resolution:        3,
		Wavelength:        12,
	}
	const wantRow, wantCol = 40, 24
	s := pointTargetStore(t, p, wantRow, wantCol)

	require.NoError(t, Backproject(s, p))
	img, ok := s.Find(NameSARImage)
	require.True(t, ok)
	assert.Equal(t, p.SceneRows, img.Rows)
	assert.Equal(t, p.SceneCols, img.Cols)
	assert.Equal(t, p.SceneRows, p.Nrows)
	assert.Equal(t, p.SceneCols, p.Ncols)

	// Peak magnitude within one pixel of the scatterer.
	row, col := imageArgmax(img)
	assert.InDelta(t, wantRow, row, 1)
	assert.InDelta(t, wantCol, col, 1)
}

func TestBackprojectZeroApertures(t *testing.T) {
	t.Parallel()

	p := &Params{SceneRows: 8, SceneCols: 8, Standoff: 100, Resolution: 3, Wavelength: 12}
	s := NewStore()
	raw, err := s.Append(NameRawImage)
	require.NoError(t, err)
	require.NoError(t, raw.Alloc(4, 32))

	p.AperturePositions = 0
	err = Backproject(s, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aperture positions")
}

func TestBackprojectDimensionMismatch(t *testing.T) {
	t.Parallel()

	p := &Params{
		SceneRows: 8, SceneCols: 8,
		AperturePositions: 4, RangeBins: 64,
		Standoff: 100, Resolution: 3, Wavelength: 12, CellSpacing: 3,
	}
	s := NewStore()
	raw, err := s.Append(NameRawImage)
	require.NoError(t, err)
	require.NoError(t, raw.Alloc(4, 32)) // geometry declares 64 bins

	err = Backproject(s, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geometry declares")
}

func TestBackprojectConsumesCompressedImage(t *testing.T) {
	t.Parallel()

	p := &Params{
		Mode:              ModeSimulate,
		SceneRows:         32,
		SceneCols:         32,
		AperturePositions: 8,
		Standoff:          200,
		Resolution:        3,
		Wavelength:        12,
	}
	s := pointTargetStore(t, p, 16, 16)
	raw, _ := s.Find(NameRawImage)

	// A compressed image that zeroes everything starves the formed image.
	comp, err := s.Append(NameCompressedImage)
	require.NoError(t, err)
	require.NoError(t, comp.Alloc(raw.Rows, raw.Cols))

	require.NoError(t, Backproject(s, p))
	img, _ := s.Find(NameSARImage)
	assert.Zero(t, energyOf(img.Data))
}

func TestSpectrumImage(t *testing.T) {
	t.Parallel()

	p := &Params{
		Mode:              ModeSimulate,
		SceneRows:         32,
		SceneCols:         32,
		AperturePositions: 16,
		Standoff:          200,
		Resolution:        3,
		Wavelength:        12,
	}
	s := pointTargetStore(t, p, 16, 16)
	require.NoError(t, Backproject(s, p))
	require.NoError(t, SpectrumImage(s, p))

	img, _ := s.Find(NameSARImage)
	spec, ok := s.Find(NameSARFFT)
	require.True(t, ok)
	assert.Equal(t, img.Rows, spec.Rows)
	assert.Equal(t, img.Cols, spec.Cols)

	// Parseval: the unnormalized 2D transform scales energy by rows*cols.
	want := energyOf(img.Data) * float64(img.Rows*img.Cols)
	assert.InDelta(t, want, energyOf(spec.Data), want*1e-9)
}

func TestSpectrumImageRequiresFormedImage(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, SpectrumImage(NewStore(), simParams()), ErrNotFound)
}
