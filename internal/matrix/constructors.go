package matrix

import "lukechampine.com/erasure/internal/gf"

// Vandermonde builds the raw rows×cols Vandermonde matrix G[i][j] = (j+1)^i
// over the field described by tb. It is not itself MDS when used directly
// as a distribution matrix (its top block is not the identity); see
// VandermondeCorrected.
func Vandermonde(tb *gf.Tables, rows, cols int) *Matrix {
	m := New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, tb.Exp(j+1, i))
		}
	}
	return m
}

// VandermondeCorrected builds the nRows×nCols bottom block of the corrected
// (k+m)×k Vandermonde construction: the enclosing (nRows+nCols)×nCols matrix
// has an identity top block after column normalization, which guarantees
// that [I ; D] is MDS. Only the bottom nRows rows (the distribution matrix
// D) are returned.
func VandermondeCorrected(tb *gf.Tables, nRows, nCols int) *Matrix {
	dim := nRows + nCols
	tmp := New(dim, nCols)
	for i := 0; i < dim; i++ {
		for j := 0; j < nCols; j++ {
			tmp.Set(i, j, tb.Exp(i, j))
		}
	}

	for i := 0; i < nCols; i++ {
		if tmp.IsRowIdentity(i) {
			continue
		}
		if tmp.At(i, i) != 1 {
			transformScaleColumn(tb, tmp, i)
		}
		for j := 0; j < tmp.cols; j++ {
			if j != i && tmp.At(i, j) != 0 {
				transformCancelColumn(tb, tmp, i, j)
			}
		}
	}

	out := New(nRows, nCols)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			out.Set(i, j, tmp.At(nCols+i, j))
		}
	}
	return out
}

// transformScaleColumn rescales column i by 1/tmp[i][i] so that the pivot
// cell becomes 1.
func transformScaleColumn(tb *gf.Tables, tmp *Matrix, i int) {
	fInv := tb.Div(1, tmp.At(i, i))
	for k := 0; k < tmp.rows; k++ {
		tmp.Set(k, i, tb.Mul(fInv, tmp.At(k, i)))
	}
}

// transformCancelColumn replaces column j with column j minus (tmp[i][j]
// times column i), zeroing cell (i, j) while the pivot column i is already
// normalized to 1 at row i.
func transformCancelColumn(tb *gf.Tables, tmp *Matrix, i, j int) {
	fij := tmp.At(i, j)
	for k := 0; k < tmp.rows; k++ {
		tmp.Set(k, j, tmp.At(k, j)^tb.Mul(fij, tmp.At(k, i)))
	}
}

// Cauchy builds an nRows×nCols Cauchy distribution matrix:
// D[i][j] = 1/(i XOR (j+nRows)), normalized so the first row and first
// column are all-ones.
func Cauchy(tb *gf.Tables, nRows, nCols int) *Matrix {
	m := New(nRows, nCols)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			m.Set(i, j, tb.Div(1, i^(j+nRows)))
		}
	}

	// normalize the first row to all ones
	for j := 0; j < nCols; j++ {
		top := m.At(0, j)
		for i := 0; i < nRows; i++ {
			m.Set(i, j, tb.Div(m.At(i, j), top))
		}
	}
	// normalize the first column of each row to 1
	for i := 1; i < nRows; i++ {
		first := m.At(i, 0)
		for j := 0; j < nCols; j++ {
			m.Set(i, j, tb.Div(m.At(i, j), first))
		}
	}

	return m
}
