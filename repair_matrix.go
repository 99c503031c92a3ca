package erasure

import "lukechampine.com/erasure/internal/matrix"

// survivorSource names where one row of the survivor matrix A' came from:
// either the identity row for a surviving data shard, or a distribution
// row for a surviving coding shard.
type survivorSource struct {
	isData bool
	index  int
}

// buildSurvivorMatrix assembles A' (k x k) from identity rows for
// surviving data shards (ascending index) followed by distribution rows
// for surviving coding shards (ascending index), stopping as soon as k
// rows are collected. It returns ErrTooManyLosses if fewer than k shards
// survive in total.
func buildSurvivorMatrix(dist *matrix.Matrix, dataPresent, codePresent []bool) (*matrix.Matrix, []survivorSource, error) {
	k := dist.Cols()
	m := dist.Rows()

	order := make([]survivorSource, 0, k)
	for r := 0; r < k && len(order) < k; r++ {
		if dataPresent[r] {
			order = append(order, survivorSource{isData: true, index: r})
		}
	}
	for c := 0; c < m && len(order) < k; c++ {
		if codePresent[c] {
			order = append(order, survivorSource{isData: false, index: c})
		}
	}
	if len(order) < k {
		return nil, nil, ErrTooManyLosses
	}

	aPrime := matrix.New(k, k)
	for row, src := range order {
		if src.isData {
			aPrime.Set(row, src.index, 1)
		} else {
			for col := 0; col < k; col++ {
				aPrime.Set(row, col, dist.At(src.index, col))
			}
		}
	}
	return aPrime, order, nil
}
