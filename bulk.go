package erasure

import (
	stderrors "errors"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"

	"lukechampine.com/erasure/internal/reedsolomon"
)

// mapBulkErr translates an internal/reedsolomon sentinel into the matching
// erasure sentinel, so a caller checking errors.Is(err, erasure.Err...)
// gets the same answer regardless of whether the bulk or generic path
// handled the request.
func mapBulkErr(err error, op string) error {
	switch {
	case stderrors.Is(err, reedsolomon.ErrTooFewShards):
		return errors.Wrapf(ErrTooManyLosses, "%s: %v", op, err)
	case stderrors.Is(err, reedsolomon.ErrShardSize):
		return errors.Wrapf(ErrShardSize, "%s: %v", op, err)
	default:
		return errors.Wrap(err, op)
	}
}

// bulkEncode delegates to the internal/reedsolomon whole-shard fast path.
// It is only reachable when c.bulk is non-nil (Width==8, any Kind).
func (c *Codec) bulkEncode(dataShards []Shard, codeShards []io.Writer, size int) error {
	k, m := c.cfg.DataShards, c.cfg.ParityShards
	buffers := make([][]byte, k+m)
	for i, ds := range dataShards {
		buf, err := ioutil.ReadAll(io.LimitReader(ds.R, int64(size)))
		if err != nil {
			return errors.Wrapf(ErrShortIO, "data shard %d: %v", i, err)
		}
		if len(buf) != size {
			return errors.Wrapf(ErrShortIO, "data shard %d: short read", i)
		}
		buffers[i] = buf
	}
	for j := 0; j < m; j++ {
		buffers[k+j] = make([]byte, size)
	}

	if err := c.bulk.Encode(buffers); err != nil {
		return mapBulkErr(err, "bulk encode")
	}

	for j, w := range codeShards {
		if _, err := w.Write(buffers[k+j]); err != nil {
			return errors.Wrapf(ErrShortIO, "coding shard %d: %v", j, err)
		}
	}
	return nil
}

// bulkRepair delegates to internal/reedsolomon's Reconstruct. present and
// dest mirror the dataShards/codeShards slots passed to Repair.
func (c *Codec) bulkRepair(dataShards []DataSlot, codeShards []Shard, size int) error {
	k, m := c.cfg.DataShards, c.cfg.ParityShards
	buffers := make([][]byte, k+m)

	for i, d := range dataShards {
		if !d.present() {
			continue
		}
		buf, err := ioutil.ReadAll(io.LimitReader(d.R, int64(size)))
		if err != nil || len(buf) != size {
			return errors.Wrapf(ErrShortIO, "data shard %d", i)
		}
		buffers[i] = buf
	}
	for j, cs := range codeShards {
		if cs.R == nil {
			continue
		}
		buf, err := ioutil.ReadAll(io.LimitReader(cs.R, int64(size)))
		if err != nil || len(buf) != size {
			return errors.Wrapf(ErrShortIO, "coding shard %d", j)
		}
		buffers[k+j] = buf
	}

	if err := c.bulk.Reconstruct(buffers); err != nil {
		return mapBulkErr(err, "bulk repair")
	}

	for i, d := range dataShards {
		if d.Dest == nil || d.present() {
			continue
		}
		if _, err := d.Dest.Write(buffers[i]); err != nil {
			return errors.Wrapf(ErrShortIO, "restored data shard %d: %v", i, err)
		}
	}
	return nil
}
