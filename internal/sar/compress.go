package sar

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// correlate convolves sig with the matched filter via zero-padded DFTs and
// returns the central len(sig) samples of the full linear convolution. For a
// matched chirp/filter pair the correlation peak lands at the centre of the
// returned slice. Frequency-domain multiplication keeps long waveforms off
// the O(N^2) direct path.
func correlate(sig, filt []complex128) []complex128 {
	n := len(sig) + len(filt) - 1
	fft := fourier.NewCmplxFFT(n)

	pad := func(src []complex128) []complex128 {
		dst := make([]complex128, n)
		copy(dst, src)
		return dst
	}
	fa := fft.Coefficients(nil, pad(sig))
	fb := fft.Coefficients(nil, pad(filt))
	for i := range fa {
		fa[i] *= fb[i]
	}
	full := fft.Sequence(nil, fa)
	scale := complex(1/float64(n), 0)
	for i := range full {
		full[i] *= scale
	}

	start := (len(filt) - 1) / 2
	return full[start : start+len(sig)]
}

// CompressPulse correlates the synthesized chirp against its matched filter,
// producing the compressed pulse whose peak width sets the range resolution.
// The resolution c/(2B) is recorded in the params and returned.
func CompressPulse(s *Store, p *Params) (float64, error) {
	chirp, ok := s.Find(NameChirp)
	if !ok {
		return 0, fmt.Errorf("pulse compression: %w: %s", ErrNotFound, NameChirp)
	}
	match, ok := s.Find(NameMatch)
	if !ok {
		return 0, fmt.Errorf("pulse compression: %w: %s", ErrNotFound, NameMatch)
	}

	out := correlate(chirp.Data, match.Data)
	m, err := s.Append(NameCompressedPulse)
	if err != nil {
		return 0, err
	}
	if err := m.SetData(1, len(out), out); err != nil {
		return 0, err
	}

	p.Resolution = SpeedOfLight / (2 * p.Bandwidth)
	return p.Resolution, nil
}

// CompressImage applies the matched-filter correlation independently along
// the range dimension (columns) of the raw image, preserving dimensions.
// Used in process mode when the ingested data has not been compressed.
func CompressImage(s *Store, p *Params) error {
	raw, ok := s.Find(NameRawImage)
	if !ok {
		return fmt.Errorf("image compression: %w: %s", ErrNotFound, NameRawImage)
	}
	match, ok := s.Find(NameMatch)
	if !ok {
		return fmt.Errorf("image compression requested but no matched filter present: %w", ErrNotFound)
	}

	out := make([]complex128, len(raw.Data))
	for r := 0; r < raw.Rows; r++ {
		copy(out[r*raw.Cols:(r+1)*raw.Cols], correlate(raw.Row(r), match.Data))
	}
	m, err := s.Append(NameCompressedImage)
	if err != nil {
		return err
	}
	return m.SetData(raw.Rows, raw.Cols, out)
}
