package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/aperture.report/internal/sar"
)

func TestSaveMagnitudePNG(t *testing.T) {
	t.Parallel()

	m := &sar.Matrix{Name: sar.NameSARImage}
	data := make([]complex128, 8*8)
	data[27] = 5 + 5i
	require.NoError(t, m.SetData(8, 8, data))

	path := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, SaveMagnitudePNG(m, "test image", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveMagnitudePNGUnpopulated(t *testing.T) {
	t.Parallel()

	err := SaveMagnitudePNG(&sar.Matrix{Name: "empty"}, "t", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
