package matrix

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotSquare is returned by operations that require a square matrix.
var ErrNotSquare = errors.New("matrix: not square")

// ErrShapeMismatch is returned when a matrix/vector operation is given
// operands of incompatible dimensions.
var ErrShapeMismatch = errors.New("matrix: shape mismatch")

// Matrix is a dense, row-major rectangular container of field symbols. The
// backing slice is a single flat buffer indexed as row*n_cols+col; callers
// that care about cache behavior (inversion, multiplication) depend on that
// layout.
type Matrix struct {
	rows, cols int
	cells      []int
}

// New allocates a zeroed rows x cols Matrix.
func New(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, cells: make([]int, rows*cols)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the symbol at (row, col).
func (m *Matrix) At(row, col int) int {
	return m.cells[row*m.cols+col]
}

// Set stores val at (row, col).
func (m *Matrix) Set(row, col, val int) {
	m.cells[row*m.cols+col] = val
}

// Zero resets every cell to 0.
func (m *Matrix) Zero() {
	for i := range m.cells {
		m.cells[i] = 0
	}
}

// Row returns the symbols of row r as a freshly allocated slice.
func (m *Matrix) Row(r int) []int {
	out := make([]int, m.cols)
	copy(out, m.cells[r*m.cols:(r+1)*m.cols])
	return out
}

// SetRow overwrites row r with the contents of vals, which must have length
// m.cols.
func (m *Matrix) SetRow(r int, vals []int) {
	if len(vals) != m.cols {
		panic(ErrShapeMismatch)
	}
	copy(m.cells[r*m.cols:(r+1)*m.cols], vals)
}

// IsRowIdentity reports whether row r equals the r-th standard basis row,
// i.e. 1 at column r and 0 elsewhere.
func (m *Matrix) IsRowIdentity(row int) bool {
	for j := 0; j < m.cols; j++ {
		want := 0
		if j == row {
			want = 1
		}
		if m.At(row, j) != want {
			return false
		}
	}
	return true
}

// SubMatrix extracts the rows×cols block starting at (rowOff, colOff).
func (m *Matrix) SubMatrix(rowOff, colOff, rows, cols int) (*Matrix, error) {
	if rowOff < 0 || colOff < 0 || rowOff+rows > m.rows || colOff+cols > m.cols {
		return nil, errors.Wrap(ErrShapeMismatch, "submatrix out of bounds")
	}
	out := New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, m.At(rowOff+i, colOff+j))
		}
	}
	return out, nil
}

// Dump renders the matrix as decimal rows separated by newlines, matching
// the reference implementation's verbose (-v) dump format.
func (m *Matrix) Dump() string {
	var buf bytes.Buffer
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%d", m.At(i, j))
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Dump renders the vector as one decimal symbol per line.
func (v *Vector) Dump() string {
	var buf bytes.Buffer
	for i := range v.cells {
		fmt.Fprintf(&buf, "%d\n", v.cells[i])
	}
	return buf.String()
}
