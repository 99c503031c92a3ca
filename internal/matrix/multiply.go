package matrix

import "lukechampine.com/erasure/internal/gf"

// Multiply computes output = a * b, where b is a column vector of length
// a.Cols() and output has length a.Rows(). It does not allocate: output
// must already be sized by the caller.
func Multiply(tb *gf.Tables, output *Vector, a *Matrix, b *Vector) error {
	if b.Len() != a.cols {
		return ErrShapeMismatch
	}
	if output.Len() != a.rows {
		return ErrShapeMismatch
	}
	for i := 0; i < a.rows; i++ {
		sum := tb.Mul(a.At(i, 0), b.At(0))
		for j := 1; j < a.cols; j++ {
			sum ^= tb.Mul(a.At(i, j), b.At(j))
		}
		output.Set(i, sum)
	}
	return nil
}
