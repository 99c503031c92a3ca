// Package erasure implements a Reed-Solomon erasure code for RAID-like
// fault tolerance over a bank of fixed-size data shards: given k data
// shards of equal length, it produces m coding shards such that any k of
// the k+m shards suffice to reconstruct the original k data shards.
package erasure

import (
	"github.com/pkg/errors"

	"lukechampine.com/erasure/internal/gf"
	"lukechampine.com/erasure/internal/matrix"
	"lukechampine.com/erasure/internal/reedsolomon"
)

// MatrixKind selects which construction is used for the distribution
// matrix D.
type MatrixKind int

// The two supported distribution-matrix constructions.
const (
	CorrectedVandermonde MatrixKind = iota
	Cauchy
)

// Config describes one codec instance: the shard counts, the field width,
// and which distribution matrix construction to use. A Config is only
// valid once passed to New.
type Config struct {
	DataShards   int
	ParityShards int
	Width        uint // one of 4, 8, 16
	Kind         MatrixKind
}

// Codec holds the field tables and distribution matrix for one (k, m, w,
// kind) configuration. Build once with New and reuse across any number of
// Encode/Repair calls; a Codec is safe for concurrent use by multiple
// goroutines as long as those goroutines don't share shard streams.
type Codec struct {
	cfg  Config
	tb   *gf.Tables
	dist *matrix.Matrix // m x k distribution matrix D

	// bulk is non-nil only for Width==8 (any Kind), where Encode/Repair
	// can delegate whole shards to the byte-oriented fast path in
	// internal/reedsolomon instead of driving the generic symbol-at-a-time
	// loop. It is built directly from dist, so it always codes with the
	// same matrix Distribution() reports.
	bulk *reedsolomon.Codec
}

// New builds the field tables and the distribution matrix for cfg. It
// rejects a non-positive DataShards or ParityShards, an unsupported Width,
// and any configuration where DataShards+ParityShards exceeds the field's
// order (2^Width).
func New(cfg Config) (*Codec, error) {
	if cfg.DataShards <= 0 || cfg.ParityShards <= 0 {
		return nil, errors.Wrap(ErrConfig, "data and parity shard counts must be positive")
	}

	tb, err := gf.New(cfg.Width)
	if err != nil {
		return nil, errors.Wrap(ErrConfig, err.Error())
	}
	if cfg.DataShards+cfg.ParityShards > tb.Order() {
		return nil, errors.Wrapf(ErrConfig, "k+m=%d exceeds field order %d", cfg.DataShards+cfg.ParityShards, tb.Order())
	}

	var dist *matrix.Matrix
	switch cfg.Kind {
	case Cauchy:
		dist = matrix.Cauchy(tb, cfg.ParityShards, cfg.DataShards)
	default:
		dist = matrix.VandermondeCorrected(tb, cfg.ParityShards, cfg.DataShards)
	}

	c := &Codec{cfg: cfg, tb: tb, dist: dist}
	if cfg.Width == 8 {
		// Built from the same dist the Codec reports via Distribution(),
		// so the bulk path's matrix is never a different parameterization
		// than the one callers can inspect. Errors here just mean the
		// fast path is unavailable; the caller's bad dimensions would
		// already have failed above.
		c.bulk, _ = reedsolomon.New(cfg.DataShards, cfg.ParityShards, dist)
	}
	return c, nil
}

// Distribution returns the m x k distribution matrix D. Rows of D applied
// to a length-k data vector yield the m coding symbols.
func (c *Codec) Distribution() *matrix.Matrix { return c.dist }
