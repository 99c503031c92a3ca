/**
 * Reed-Solomon Coding over 8-bit values.
 *
 * Adapted from the byte-oriented Reed-Solomon coder distributed with
 * klauspost/reedsolomon (Copyright 2015, Klaus Post; Copyright 2015,
 * Backblaze, Inc.), generalized here to build its distribution matrix from
 * the width-parametric GF(2^w) tables in internal/gf rather than a private
 * GF(2^8) table, and restricted to w=8 operation.
 */

// Package reedsolomon provides a whole-shard-in-memory Reed-Solomon coder
// for GF(2^8). Codec.Encode/Repair use it as the bulk fast path whenever
// the field width is 8, reading every shard whole into memory; operating on
// a byte slice at a time amortizes the per-symbol overhead of the generic,
// width-agnostic streaming driver.
package reedsolomon

import (
	"sync"

	"github.com/pkg/errors"

	"lukechampine.com/erasure/internal/gf"
	"lukechampine.com/erasure/internal/matrix"
)

// ErrInvShardNum is returned by New if dataShards or parityShards is zero
// or negative.
var ErrInvShardNum = errors.New("reedsolomon: data and parity shard counts must be positive")

// ErrMaxShardNum is returned by New if dataShards+parityShards exceeds 256,
// the order of GF(2^8).
var ErrMaxShardNum = errors.New("reedsolomon: more than 256 total shards")

// ErrTooFewShards is returned by Encode/Reconstruct if the shards slice
// doesn't match the shard count the Codec was built with, or if too few
// shards are present to reconstruct.
var ErrTooFewShards = errors.New("reedsolomon: too few shards")

// ErrShardSize is returned if shards disagree on length.
var ErrShardSize = errors.New("reedsolomon: shard sizes do not match")

// ErrDistShape is returned by New if the supplied distribution matrix's
// dimensions don't match parityShards x dataShards.
var ErrDistShape = errors.New("reedsolomon: distribution matrix shape does not match shard counts")

const maxGoroutines = 384
const minSplitSize = 1024

// Codec holds the GF(2^8) distribution for one (dataShards, parityShards)
// configuration, built so that the top k rows of the encoding matrix are
// the identity (data shards pass through Encode unchanged).
type Codec struct {
	DataShards   int
	ParityShards int
	Shards       int

	tb     *gf.Tables
	full   *matrix.Matrix // (k+m) x k, identity on top
	parity [][]int        // m rows pulled from full, one per parity shard
}

// New builds a Codec for the given shard counts. dist is the caller's
// parityShards x dataShards distribution matrix — the same matrix the
// caller's Codec.Distribution() reports — so that the bulk encoding matrix
// [I ; dist] this Codec actually codes with is always the one the caller
// believes it is using, regardless of which constructor (Vandermonde,
// Cauchy, ...) produced dist.
func New(dataShards, parityShards int, dist *matrix.Matrix) (*Codec, error) {
	if dataShards <= 0 || parityShards <= 0 {
		return nil, ErrInvShardNum
	}
	total := dataShards + parityShards
	if total > 256 {
		return nil, ErrMaxShardNum
	}
	if dist.Rows() != parityShards || dist.Cols() != dataShards {
		return nil, ErrDistShape
	}

	tb, err := gf.New(8)
	if err != nil {
		return nil, err
	}

	full := matrix.New(total, dataShards)
	for i := 0; i < dataShards; i++ {
		full.Set(i, i, 1)
	}
	for j := 0; j < parityShards; j++ {
		full.SetRow(dataShards+j, dist.Row(j))
	}

	c := &Codec{
		DataShards:   dataShards,
		ParityShards: parityShards,
		Shards:       total,
		tb:           tb,
		full:         full,
	}
	c.parity = make([][]int, parityShards)
	for i := range c.parity {
		c.parity[i] = full.Row(dataShards + i)
	}
	return c, nil
}

// Encode computes parity for a set of data shards. shards must have length
// c.Shards: the first DataShards entries are input, the remaining
// ParityShards entries are overwritten with the computed parity. All shards
// must be the same length.
func (c *Codec) Encode(shards [][]byte) error {
	if len(shards) != c.Shards {
		return ErrTooFewShards
	}
	if err := checkShards(shards); err != nil {
		return err
	}
	output := shards[c.DataShards:]
	c.codeSomeShards(c.parity, shards[:c.DataShards], output, len(shards[0]))
	return nil
}

// Reconstruct recreates any missing shards (data and/or parity). A shard is
// considered missing if it is nil or zero-length. If fewer than DataShards
// shards are present, Reconstruct returns ErrTooFewShards.
func (c *Codec) Reconstruct(shards [][]byte) error {
	if len(shards) != c.Shards {
		return ErrTooFewShards
	}

	present := 0
	for _, s := range shards {
		if len(s) != 0 {
			present++
		}
	}
	if present < c.DataShards {
		return ErrTooFewShards
	}
	if err := checkShardsAllowMissing(shards); err != nil {
		return err
	}
	shardLen := shardSize(shards)
	if present == c.Shards {
		return nil
	}

	subShards := make([][]byte, c.DataShards)
	validIdx := make([]int, c.DataShards)
	sub := 0
	for row := 0; row < c.Shards && sub < c.DataShards; row++ {
		if len(shards[row]) != 0 {
			subShards[sub] = shards[row]
			validIdx[sub] = row
			sub++
		}
	}

	subMatrix := matrix.New(c.DataShards, c.DataShards)
	for r, validRow := range validIdx {
		for col := 0; col < c.DataShards; col++ {
			subMatrix.Set(r, col, c.full.At(validRow, col))
		}
	}
	decodeMatrix, err := matrix.Invert(c.tb, subMatrix)
	if err != nil {
		return err
	}

	outputs := make([][]byte, c.Shards)
	matrixRows := make([][]int, c.Shards)
	outputCount := 0
	for i := 0; i < c.Shards; i++ {
		if len(shards[i]) == 0 {
			if cap(shards[i]) >= shardLen {
				shards[i] = shards[i][:shardLen]
			} else {
				shards[i] = make([]byte, shardLen)
			}
			outputs[outputCount] = shards[i]
			if i < c.DataShards {
				matrixRows[outputCount] = decodeMatrix.Row(i)
			} else {
				// parity = P · data = (P · decodeMatrix) · subShards
				prow := c.parity[i-c.DataShards]
				row := make([]int, c.DataShards)
				for col := range row {
					for l := 0; l < c.DataShards; l++ {
						row[col] ^= c.tb.Mul(prow[l], decodeMatrix.At(l, col))
					}
				}
				matrixRows[outputCount] = row
			}
			outputCount++
		}
	}
	c.codeSomeShards(matrixRows[:outputCount], subShards, outputs[:outputCount], shardLen)
	return nil
}

// codeSomeShards multiplies the rows in matrixRows against the DataShards
// input shards to produce outputs, splitting the byte range across
// goroutines the way the teacher's codeSomeShardsP does. There is no SIMD
// dispatch here: accelerated GF multiply is out of scope.
func (c *Codec) codeSomeShards(matrixRows [][]int, inputs, outputs [][]byte, byteCount int) {
	var wg sync.WaitGroup
	do := byteCount / maxGoroutines
	if do < minSplitSize {
		do = minSplitSize
	}
	start := 0
	for start < byteCount {
		if start+do > byteCount {
			do = byteCount - start
		}
		stop := start + do
		if stop > byteCount {
			stop = byteCount
		}
		wg.Add(1)
		go func(start, stop int) {
			defer wg.Done()
			for col := 0; col < c.DataShards; col++ {
				in := inputs[col][start:stop]
				for row := range matrixRows {
					coeff := matrixRows[row][col]
					out := outputs[row][start:stop]
					if col == 0 {
						for b := range in {
							out[b] = byte(c.tb.Mul(coeff, int(in[b])))
						}
					} else {
						for b := range in {
							out[b] ^= byte(c.tb.Mul(coeff, int(in[b])))
						}
					}
				}
			}
		}(start, stop)
		start += do
	}
	wg.Wait()
}

func checkShards(shards [][]byte) error {
	size := shardSize(shards)
	if size == 0 {
		return ErrShardSize
	}
	for _, s := range shards {
		if len(s) != size {
			return ErrShardSize
		}
	}
	return nil
}

func checkShardsAllowMissing(shards [][]byte) error {
	size := shardSize(shards)
	if size == 0 {
		return ErrShardSize
	}
	for _, s := range shards {
		if len(s) != 0 && len(s) != size {
			return ErrShardSize
		}
	}
	return nil
}

func shardSize(shards [][]byte) int {
	for _, s := range shards {
		if len(s) != 0 {
			return len(s)
		}
	}
	return 0
}
