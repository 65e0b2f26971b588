// Package sar forms synthetic-aperture-radar images from simulated or
// ingested raw radar returns and applies image-domain post-processing.
// Stages communicate through an insertion-ordered store of named complex
// matrices; the chain runs strictly sequentially.
package sar

import (
	"fmt"

	"github.com/banshee-data/aperture.report/internal/monitoring"
)

// Run executes the full processing chain against the store. Simulate mode
// synthesizes the waveforms, scene and raw scan data; process mode expects
// the store to already hold raw range profiles and geometry (typically via
// DatasetStore.LoadDataset). Both modes then share the processing chain:
// optional filter hooks, optional image pulse compression, backprojection,
// optional apodization and the always-computed 2D spectrum. The caller
// serializes the store afterwards.
func Run(s *Store, p *Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	switch p.Mode {
	case ModeSimulate:
		if err := simulate(s, p); err != nil {
			return err
		}
	case ModeProcess:
		if _, ok := s.Find(NameRawImage); !ok {
			return fmt.Errorf("process mode: %w: %s", ErrNotFound, NameRawImage)
		}
	}
	return process(s, p)
}

func simulate(s *Store, p *Params) error {
	if err := SynthesizeWaveforms(s, p); err != nil {
		return err
	}
	monitoring.Logf("[Pipeline] Synthesized chirp: %d samples at %.3g Hz", p.ChirpSamples, p.SampleRate)
	if err := WaveformSpectra(s, p); err != nil {
		return err
	}
	res, err := CompressPulse(s, p)
	if err != nil {
		return err
	}
	monitoring.Logf("[Pipeline] Compressed pulse resolution: %.2f m", res)
	if err := BuildScene(s, p); err != nil {
		return err
	}
	if err := SimulateScan(s, p); err != nil {
		return err
	}
	monitoring.Logf("[Pipeline] Simulated scan: %d aperture positions, %d range bins", p.AperturePositions, p.RangeBins)
	return nil
}

func process(s *Store, p *Params) error {
	if p.FilterCinSnow || p.FilterRFI {
		raw, ok := s.Find(NameRawImage)
		if !ok {
			return fmt.Errorf("filtering: %w: %s", ErrNotFound, NameRawImage)
		}
		if p.FilterCinSnow {
			if err := applyFilter(FilterCinSnow, raw, p); err != nil {
				return err
			}
		}
		if p.FilterRFI {
			if err := applyFilter(FilterRFI, raw, p); err != nil {
				return err
			}
		}
	}

	if p.PulseCompressImage {
		if err := CompressImage(s, p); err != nil {
			return err
		}
		monitoring.Logf("[Pipeline] Pulse-compressed raw image")
	}

	if err := Backproject(s, p); err != nil {
		return err
	}
	monitoring.Logf("[Pipeline] Formed %dx%d image by global backprojection", p.Nrows, p.Ncols)

	if p.Window != WindowNone && p.Window != "" && !p.ApodizeAfterFFT {
		img, _ := s.Find(NameSARImage)
		if err := Apodize(img, p.Window); err != nil {
			return err
		}
	}
	if err := SpectrumImage(s, p); err != nil {
		return err
	}
	if p.Window != WindowNone && p.Window != "" && p.ApodizeAfterFFT {
		spec, _ := s.Find(NameSARFFT)
		if err := Apodize(spec, p.Window); err != nil {
			return err
		}
	}
	return nil
}
