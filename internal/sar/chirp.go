package sar

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Buffer names produced and consumed by the pipeline stages.
const (
	NameChirp           = "chirp"
	NameMatch           = "match"
	NameChirpFFT        = "chirp_fft"
	NameMatchFFT        = "match_fft"
	NameCompressedPulse = "compressed_pulse"
	NameScene           = "scene"
	NameRawImage        = "raw_image"
	NameCompressedImage = "compressed_image"
	NameSARImage        = "sar_image"
	NameSARFFT          = "sar_fft"
)

// SynthesizeWaveforms generates the transmitted linear FM chirp and its
// matched filter (conjugate time-reverse, scaled for unit-energy correlation)
// as 1xN buffers. The sample rate is chosen at four times the highest swept
// frequency and the pulse duration follows from the time-bandwidth product.
func SynthesizeWaveforms(s *Store, p *Params) error {
	fs := 4 * (p.StartFreq + p.Bandwidth)
	duration := p.TimeBandwidth / p.Bandwidth
	n := int(duration * fs)
	if n <= 0 {
		return fmt.Errorf("waveform synthesis: duration %gs at %gHz yields %d samples", duration, fs, n)
	}

	// Chirp rate in Hz/s.
	k := p.Bandwidth / duration
	chirp := make([]complex128, n)
	for i := range chirp {
		t := float64(i) / fs
		phase := 2 * math.Pi * (p.StartFreq*t + 0.5*k*t*t)
		chirp[i] = cmplx.Exp(complex(0, phase))
	}

	var energy float64
	for _, v := range chirp {
		energy += real(v)*real(v) + imag(v)*imag(v)
	}
	scale := complex(1/math.Sqrt(energy), 0)
	match := make([]complex128, n)
	for i := range match {
		match[i] = cmplx.Conj(chirp[n-1-i]) * scale
	}

	mc, err := s.Append(NameChirp)
	if err != nil {
		return err
	}
	if err := mc.SetData(1, n, chirp); err != nil {
		return err
	}
	mm, err := s.Append(NameMatch)
	if err != nil {
		return err
	}
	if err := mm.SetData(1, n, match); err != nil {
		return err
	}

	p.SampleRate = fs
	p.ChirpSamples = n
	p.Wavelength = SpeedOfLight / (p.StartFreq + p.Bandwidth/2)
	return nil
}

// WaveformSpectra stores the DFTs of the chirp and matched filter alongside
// the waveforms themselves, as the original processing chain did.
func WaveformSpectra(s *Store, p *Params) error {
	chirp, ok := s.Find(NameChirp)
	if !ok {
		return fmt.Errorf("waveform spectra: %w: %s", ErrNotFound, NameChirp)
	}
	match, ok := s.Find(NameMatch)
	if !ok {
		return fmt.Errorf("waveform spectra: %w: %s", ErrNotFound, NameMatch)
	}
	for _, w := range []struct {
		name string
		src  *Matrix
	}{
		{NameChirpFFT, chirp},
		{NameMatchFFT, match},
	} {
		m, err := s.Append(w.name)
		if err != nil {
			return err
		}
		if err := m.SetData(w.src.Rows, w.src.Cols, fftForward(w.src.Data)); err != nil {
			return err
		}
	}
	return nil
}
