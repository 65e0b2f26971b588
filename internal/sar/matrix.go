package sar

import (
	"errors"
	"fmt"
)

// MetadataName is the reserved name of the head matrix in every Store.
// Its payload is the dataset directory, built once the buffer count is final.
const MetadataName = "metadata"

// Sentinel errors callers branch on.
var (
	ErrNotFound = errors.New("matrix not found")
	ErrClosed   = errors.New("store closed")
)

// Matrix is a single named complex-valued buffer. A 1xN matrix represents a
// waveform, an MxN matrix an image. Data is row-major and exclusively owned
// by the matrix; it stays nil until the buffer is populated.
type Matrix struct {
	Name string
	Rows int
	Cols int
	Data []complex128
}

// SetData populates the matrix, enforcing rows*cols == len(data) at the
// mutation site rather than by convention.
func (m *Matrix) SetData(rows, cols int, data []complex128) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("matrix %q: non-positive dimensions %dx%d", m.Name, rows, cols)
	}
	if len(data) != rows*cols {
		return fmt.Errorf("matrix %q: %dx%d needs %d elements, got %d", m.Name, rows, cols, rows*cols, len(data))
	}
	m.Rows = rows
	m.Cols = cols
	m.Data = data
	return nil
}

// Alloc populates the matrix with a zeroed payload of the given dimensions.
func (m *Matrix) Alloc(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("matrix %q: non-positive dimensions %dx%d", m.Name, rows, cols)
	}
	return m.SetData(rows, cols, make([]complex128, rows*cols))
}

// At returns the element at (row, col). No bounds checking beyond the slice's own.
func (m *Matrix) At(row, col int) complex128 { return m.Data[row*m.Cols+col] }

// Set writes the element at (row, col).
func (m *Matrix) Set(row, col int, v complex128) { m.Data[row*m.Cols+col] = v }

// Row returns the row'th row as a subslice of the payload.
func (m *Matrix) Row(row int) []complex128 {
	return m.Data[row*m.Cols : (row+1)*m.Cols]
}

// Store is the insertion-ordered, append-only collection of named matrices
// through which pipeline stages communicate. The head entry is the reserved
// metadata matrix; its payload (the directory) is built last. The store is
// not safe for concurrent mutation; the pipeline is strictly sequential.
type Store struct {
	matrices []*Matrix
	dirBuilt bool
	closed   bool
}

// NewStore returns a store holding only the unpopulated metadata head.
func NewStore() *Store {
	return &Store{matrices: []*Matrix{{Name: MetadataName}}}
}

// Append creates a zero-initialized matrix at the tail and returns it for the
// caller to populate. Names need not be unique; Find returns the first match.
func (s *Store) Append(name string) (*Matrix, error) {
	if s.closed {
		return nil, fmt.Errorf("append %q: %w", name, ErrClosed)
	}
	m := &Matrix{Name: name}
	s.matrices = append(s.matrices, m)
	return m, nil
}

// Find scans from the head and returns the first matrix with the given name.
// Absence is not fatal; callers check the bool before dereferencing.
func (s *Store) Find(name string) (*Matrix, bool) {
	for _, m := range s.matrices {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Head returns the reserved metadata matrix.
func (s *Store) Head() *Matrix { return s.matrices[0] }

// Len returns the number of matrices including the metadata head.
func (s *Store) Len() int { return len(s.matrices) }

// Matrices returns the matrices in insertion order, head first. The slice is
// shared with the store; callers must not reorder it.
func (s *Store) Matrices() []*Matrix { return s.matrices }

// BuildDirectory populates the metadata head with one summary value per
// matrix following it, complex(rows, cols) in insertion order. It must be
// called exactly once, after the buffer count is final.
func (s *Store) BuildDirectory() error {
	if s.closed {
		return fmt.Errorf("build directory: %w", ErrClosed)
	}
	if s.dirBuilt {
		return errors.New("build directory: already built")
	}
	n := len(s.matrices) - 1
	if n == 0 {
		return errors.New("build directory: store holds no matrices beyond the head")
	}
	dir := make([]complex128, n)
	for i, m := range s.matrices[1:] {
		dir[i] = complex(float64(m.Rows), float64(m.Cols))
	}
	head := s.matrices[0]
	head.Rows = 1
	head.Cols = n
	head.Data = dir
	s.dirBuilt = true
	return nil
}

// Close releases every payload and marks the store closed. Further appends
// fail with ErrClosed. Closing twice is a no-op; the original simulator never
// released on the success path, here the lifecycle is explicit.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	for _, m := range s.matrices {
		m.Data = nil
		m.Rows = 0
		m.Cols = 0
	}
	s.closed = true
	return nil
}
