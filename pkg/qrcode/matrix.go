package qrcode

import "fmt"

// Matrix is an immutable square grid of QR modules without the quiet zone.
type Matrix struct {
	size    int
	modules []bool
}

// NewMatrix copies a square bitmap, where true marks a dark module.
func NewMatrix(bitmap [][]bool) (*Matrix, error) {
	size := len(bitmap)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty bitmap", ErrInvalidMatrix)
	}

	modules := make([]bool, 0, size*size)
	for y, row := range bitmap {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d modules, want %d", ErrInvalidMatrix, y, len(row), size)
		}
		modules = append(modules, row...)
	}

	return &Matrix{size: size, modules: modules}, nil
}

// Size returns the number of modules along one side.
func (m *Matrix) Size() int {
	return m.size
}

// Dark reports whether the module at column x, row y is dark.
// Coordinates outside the grid are light, which is how the quiet zone reads.
func (m *Matrix) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return false
	}
	return m.modules[y*m.size+x]
}
