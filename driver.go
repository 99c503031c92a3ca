package erasure

import (
	"io"

	"github.com/pkg/errors"

	"lukechampine.com/erasure/internal/matrix"
)

// Encode reads one symbol at a time from each of the k dataShards, applies
// the distribution matrix, and writes the resulting m symbols to the
// respective codeShards, in lockstep until every data shard is exhausted.
//
// All data shards must carry the same byte length; Encode determines that
// length from the first data shard's Size and fails with ErrShardSize if a
// later shard reports a different one. Every data shard's Closer, if
// non-nil, is closed before Encode returns, on every exit path; the coding
// shard writers are not closed by Encode.
func (c *Codec) Encode(dataShards []Shard, codeShards []io.Writer) (err error) {
	k, m := c.cfg.DataShards, c.cfg.ParityShards
	defer closeShards(dataShards)

	if len(dataShards) != k {
		return errors.Wrapf(ErrShardMissing, "got %d data shards, want %d", len(dataShards), k)
	}
	if len(codeShards) != m {
		return errors.Wrapf(ErrConfig, "got %d coding shards, want %d", len(codeShards), m)
	}

	size := -1
	readers := make([]*symbolReader, k)
	for i, ds := range dataShards {
		if ds.R == nil {
			return errors.Wrapf(ErrShardMissing, "data shard %d", i)
		}
		if size == -1 {
			size = ds.Size
		} else if ds.Size != size {
			return errors.Wrapf(ErrShardSize, "data shard %d", i)
		}
		readers[i] = newSymbolReader(ds.R, c.cfg.Width)
	}

	if c.bulk != nil {
		return c.bulkEncode(dataShards, codeShards, size)
	}

	writers := make([]*symbolWriter, m)
	for j, w := range codeShards {
		writers[j] = newSymbolWriter(w, c.cfg.Width)
	}

	input := matrix.NewVector(k)
	output := matrix.NewVector(m)

	n := symbolsPerShard(c.cfg.Width, size)
	for s := 0; s < n; s++ {
		for i := 0; i < k; i++ {
			sym, err := readers[i].ReadSymbol()
			if err != nil {
				return errors.Wrapf(err, "data shard %d", i)
			}
			input.Set(i, sym)
		}
		if err := matrix.Multiply(c.tb, output, c.dist, input); err != nil {
			return err
		}
		for j := 0; j < m; j++ {
			if err := writers[j].WriteSymbol(output.At(j)); err != nil {
				return errors.Wrapf(err, "coding shard %d", j)
			}
		}
	}
	return nil
}

// Shard describes one shard slot as seen by Encode or Repair: R is set
// when the shard is present and readable, Size is its byte length (valid
// whenever R is non-nil), and Closer, if non-nil, is closed by Encode and
// Repair on every exit path.
type Shard struct {
	R      io.Reader
	Size   int
	Closer io.Closer
}

func closeShards(shards []Shard) {
	for _, s := range shards {
		if s.Closer != nil {
			s.Closer.Close()
		}
	}
}
