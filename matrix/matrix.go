// Package matrix provides row-major float32 matrices whose storage lives in a
// vmarena.Arena.
//
// A Matrix is only valid while its arena is open and the arena cursor has not
// been rolled back past the matrix's storage.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/vmarena"
)

// ErrInvalidShape is returned for negative or overflowing dimensions.
var ErrInvalidShape = errors.New("matrix: invalid shape")

// Source produces values in [0, 1]. *pcg.PCG32 implements it.
type Source interface {
	Float32() float32
}

// Matrix is a dense rows x cols matrix of float32.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// New allocates a zeroed rows x cols matrix from a.
func New(a *vmarena.Arena, rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 || (cols > 0 && rows > math.MaxInt/cols) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}

	data, err := vmarena.AllocSliceZeroed[float32](a, rows*cols)
	if err != nil {
		return nil, fmt.Errorf("matrix %dx%d: %w", rows, cols, err)
	}

	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Data returns the row-major backing storage.
func (m *Matrix) Data() []float32 { return m.data }

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) float32 {
	return m.data[m.index(r, c)]
}

// Set stores v at row r, column c.
func (m *Matrix) Set(r, c int, v float32) {
	m.data[m.index(r, c)] = v
}

// Row returns row r as a slice sharing the matrix storage.
func (m *Matrix) Row(r int) []float32 {
	if r < 0 || r >= m.rows {
		panic(fmt.Sprintf("matrix: row %d out of range [0, %d)", r, m.rows))
	}
	return m.data[r*m.cols : (r+1)*m.cols : (r+1)*m.cols]
}

// Fill sets every element to lo + (hi-lo)*src.Float32().
func (m *Matrix) Fill(src Source, lo, hi float32) {
	for i := range m.data {
		m.data[i] = lo + (hi-lo)*src.Float32()
	}
}

func (m *Matrix) index(r, c int) int {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range %dx%d", r, c, m.rows, m.cols))
	}
	return r*m.cols + c
}
