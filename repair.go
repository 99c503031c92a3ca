package erasure

import (
	"io"

	"github.com/pkg/errors"

	"lukechampine.com/erasure/internal/matrix"
)

// DataSlot describes one of the k data-shard positions for Repair. Exactly
// one of R or Dest should be set: R (with Size) for a surviving shard,
// Dest for a missing shard that Repair should restore. Closer, if
// non-nil, is closed on every exit path.
type DataSlot struct {
	R      io.Reader
	Size   int
	Dest   io.Writer
	Closer io.Closer
}

func (d DataSlot) present() bool { return d.R != nil }

// Repair reconstructs any missing data shards from the surviving data and
// coding shards. dataShards must have length k (Codec's DataShards); each
// element is either present (R set) or missing with a restore destination
// (Dest set). codeShards must have length m (Codec's ParityShards); an
// entry whose R is nil marks a missing coding shard.
//
// If every data shard is already present, Repair returns nil immediately
// without reading or writing anything (the state machine's S1 -> S2
// trivial-success transition). If fewer than k shards (data plus coding)
// survive, Repair returns ErrTooManyLosses. Repair never writes to a
// present data shard's slot — only Dest destinations receive output.
//
// Every shard stream (data and coding) is closed, via its Closer, on
// every exit path.
func (c *Codec) Repair(dataShards []DataSlot, codeShards []Shard) (err error) {
	k, m := c.cfg.DataShards, c.cfg.ParityShards
	defer func() {
		for _, d := range dataShards {
			if d.Closer != nil {
				d.Closer.Close()
			}
		}
		closeShards(codeShards)
	}()

	if len(dataShards) != k {
		return errors.Wrapf(ErrConfig, "got %d data slots, want %d", len(dataShards), k)
	}
	if len(codeShards) != m {
		return errors.Wrapf(ErrConfig, "got %d coding slots, want %d", len(codeShards), m)
	}

	dataPresent := make([]bool, k)
	codePresent := make([]bool, m)
	size := -1
	missing := 0

	for i, d := range dataShards {
		if d.present() {
			dataPresent[i] = true
			if size == -1 {
				size = d.Size
			} else if d.Size != size {
				return errors.Wrapf(ErrShardSize, "data shard %d", i)
			}
		} else {
			missing++
		}
	}
	for j, cShard := range codeShards {
		if cShard.R != nil {
			codePresent[j] = true
			if size == -1 {
				size = cShard.Size
			} else if cShard.Size != size {
				return errors.Wrapf(ErrShardSize, "coding shard %d", j)
			}
		}
	}

	if missing == 0 {
		return nil
	}

	if c.bulk != nil {
		return c.bulkRepair(dataShards, codeShards, size)
	}

	aPrime, order, err := buildSurvivorMatrix(c.dist, dataPresent, codePresent)
	if err != nil {
		return err
	}
	aInv, err := matrix.Invert(c.tb, aPrime)
	if err != nil {
		return err
	}

	readers := make([]*symbolReader, len(order))
	for i, src := range order {
		if src.isData {
			readers[i] = newSymbolReader(dataShards[src.index].R, c.cfg.Width)
		} else {
			readers[i] = newSymbolReader(codeShards[src.index].R, c.cfg.Width)
		}
	}

	writers := make([]*symbolWriter, k)
	for i, d := range dataShards {
		if d.Dest != nil && !d.present() {
			writers[i] = newSymbolWriter(d.Dest, c.cfg.Width)
		}
	}

	input := matrix.NewVector(k)
	output := matrix.NewVector(k)
	n := symbolsPerShard(c.cfg.Width, size)
	for s := 0; s < n; s++ {
		for i, r := range readers {
			sym, err := r.ReadSymbol()
			if err != nil {
				return errors.Wrapf(err, "survivor %d", i)
			}
			input.Set(i, sym)
		}
		if err := matrix.Multiply(c.tb, output, aInv, input); err != nil {
			return err
		}
		for i, w := range writers {
			if w == nil {
				continue
			}
			if err := w.WriteSymbol(output.At(i)); err != nil {
				return errors.Wrapf(err, "restored data shard %d", i)
			}
		}
	}
	return nil
}
