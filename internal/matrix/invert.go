package matrix

import (
	"github.com/pkg/errors"

	"lukechampine.com/erasure/internal/gf"
)

// ErrSingular is returned by Invert when the Gauss-Jordan elimination
// selects a zero pivot, indicating the matrix has no inverse. For the
// MDS matrices this package constructs, this should only happen if the
// caller assembled a survivor matrix from fewer than k surviving shards.
var ErrSingular = errors.New("matrix: singular matrix")

// Invert returns the inverse of the square matrix m over the field
// described by tb, using Gauss-Jordan elimination on an augmented
// [m | I] matrix. It does not modify m.
func Invert(tb *gf.Tables, m *Matrix) (*Matrix, error) {
	if m.rows != m.cols {
		return nil, ErrNotSquare
	}
	dim := m.rows
	aug := New(dim, 2*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			aug.Set(i, j, m.At(i, j))
		}
		aug.Set(i, dim+i, 1)
	}

	for j := 0; j < dim; j++ {
		pivot := j
		for i := j + 1; i < dim; i++ {
			if aug.At(i, j) > aug.At(pivot, j) {
				pivot = i
			}
		}
		if pivot != j {
			swapRows(aug, j, pivot)
		}
		if aug.At(j, j) == 0 {
			return nil, ErrSingular
		}

		for i := 0; i < dim; i++ {
			if i == j {
				r := aug.At(i, j)
				for k := 0; k < 2*dim; k++ {
					aug.Set(i, k, tb.Div(aug.At(i, k), r))
				}
				continue
			}
			r := aug.At(i, j)
			if r == 0 {
				continue
			}
			for k := 0; k < 2*dim; k++ {
				aug.Set(i, k, aug.At(i, k)^tb.Mul(tb.Div(aug.At(j, k), aug.At(j, j)), r))
			}
		}
	}

	inv, err := aug.SubMatrix(0, dim, dim, dim)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func swapRows(m *Matrix, a, b int) {
	for k := 0; k < m.cols; k++ {
		va, vb := m.At(a, k), m.At(b, k)
		m.Set(a, k, vb)
		m.Set(b, k, va)
	}
}
