package sar

import "fmt"

// SpeedOfLight in metres per second.
const SpeedOfLight = 299792458.0

// Mode selects how the store is populated before image formation.
type Mode string

const (
	// ModeSimulate synthesizes waveforms and a scene, then simulates the scan.
	ModeSimulate Mode = "simulate"
	// ModeProcess expects raw range profiles and geometry loaded from a dataset.
	ModeProcess Mode = "process"
)

// WindowKind names an apodization window.
type WindowKind string

const (
	WindowNone    WindowKind = "none"
	WindowHamming WindowKind = "hamming"
	WindowHann    WindowKind = "hann"
)

// Params carries the operating parameters for one pipeline run. It is passed
// by pointer through every stage; selection fields (mode, filenames, toggles)
// are caller-owned, derived fields are written only by the stage that owns
// them and consumed downstream.
type Params struct {
	Mode       Mode   `json:"mode"`
	InputFile  string `json:"input_file,omitempty"`
	OutputFile string `json:"output_file,omitempty"`

	// Waveform synthesis inputs.
	StartFreq     float64 `json:"start_freq_hz"`
	Bandwidth     float64 `json:"bandwidth_hz"`
	TimeBandwidth float64 `json:"time_bandwidth"`

	// Scene and aperture geometry inputs.
	SceneRows         int     `json:"scene_rows"`
	SceneCols         int     `json:"scene_cols"`
	AperturePositions int     `json:"aperture_positions"`
	Standoff          float64 `json:"standoff_m"`

	// Stage toggles.
	FilterCinSnow      bool       `json:"filter_cinsnow"`
	FilterRFI          bool       `json:"filter_rfi"`
	PulseCompressImage bool       `json:"pulse_compress_image"`
	Window             WindowKind `json:"window"`
	ApodizeAfterFFT    bool       `json:"apodize_after_fft"`

	// Derived by waveform synthesis.
	SampleRate   float64 `json:"sample_rate_hz,omitempty"`
	ChirpSamples int     `json:"chirp_samples,omitempty"`
	Wavelength   float64 `json:"wavelength_m,omitempty"`

	// Derived by pulse compression.
	Resolution float64 `json:"resolution_m,omitempty"`

	// Derived by scene simulation (or loaded with a raw dataset).
	CellSpacing float64 `json:"cell_spacing_m,omitempty"`
	RangeBins   int     `json:"range_bins,omitempty"`

	// Derived by image formation.
	Nrows int `json:"nrows,omitempty"`
	Ncols int `json:"ncols,omitempty"`
}

// Validate checks the caller-owned fields before any stage runs.
func (p *Params) Validate() error {
	switch p.Mode {
	case ModeSimulate, ModeProcess:
	default:
		return fmt.Errorf("params: unknown mode %q", p.Mode)
	}
	switch p.Window {
	case WindowNone, WindowHamming, WindowHann, "":
	default:
		return fmt.Errorf("params: unknown window %q", p.Window)
	}
	if p.Mode == ModeSimulate {
		if p.Bandwidth <= 0 {
			return fmt.Errorf("params: bandwidth must be positive, got %g", p.Bandwidth)
		}
		if p.StartFreq < 0 {
			return fmt.Errorf("params: start frequency must be non-negative, got %g", p.StartFreq)
		}
		if p.TimeBandwidth <= 0 {
			return fmt.Errorf("params: time-bandwidth product must be positive, got %g", p.TimeBandwidth)
		}
		if p.SceneRows <= 0 || p.SceneCols <= 0 {
			return fmt.Errorf("params: scene must have positive dimensions, got %dx%d", p.SceneRows, p.SceneCols)
		}
		if p.AperturePositions <= 0 {
			return fmt.Errorf("params: aperture positions must be positive, got %d", p.AperturePositions)
		}
		if p.Standoff <= 0 {
			return fmt.Errorf("params: standoff must be positive, got %g", p.Standoff)
		}
	}
	return nil
}
