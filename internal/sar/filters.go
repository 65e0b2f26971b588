package sar

import (
	"fmt"
	"sync"

	"github.com/banshee-data/aperture.report/internal/monitoring"
)

// Filter hook names the pipeline knows about.
const (
	FilterCinSnow = "cinsnow"
	FilterRFI     = "rfi"
)

// ImageFilter is an opaque transform over a named image buffer. It may
// modify the payload in place or replace it, but must preserve dimensions.
type ImageFilter func(m *Matrix, p *Params) error

var (
	filterMu sync.RWMutex
	filters  = map[string]ImageFilter{}
)

// RegisterFilter installs a named filter hook. Registration normally happens
// at init time, before any pipeline run.
func RegisterFilter(name string, f ImageFilter) {
	filterMu.Lock()
	defer filterMu.Unlock()
	filters[name] = f
}

// applyFilter runs the named hook over the matrix if one is registered.
// An unregistered hook is skipped, leaving the buffer untouched; a hook that
// changes dimensions is a defect surfaced as an error.
func applyFilter(name string, m *Matrix, p *Params) error {
	filterMu.RLock()
	f, ok := filters[name]
	filterMu.RUnlock()
	if !ok {
		monitoring.Logf("[Pipeline] No %s filter registered, skipping", name)
		return nil
	}

	rows, cols := m.Rows, m.Cols
	if err := f(m, p); err != nil {
		return fmt.Errorf("%s filter: %w", name, err)
	}
	if m.Rows != rows || m.Cols != cols {
		return fmt.Errorf("%s filter changed dimensions from %dx%d to %dx%d", name, rows, cols, m.Rows, m.Cols)
	}
	return nil
}
