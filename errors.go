package erasure

import "github.com/pkg/errors"

// Error kinds returned by the codec. All are fatal to the current call;
// nothing inside the codec retries. Partial outputs (shards already
// written before a fatal error was detected) are left on disk as-is — the
// caller must treat any error as "outputs are indeterminate" and retry the
// whole call.
var (
	// ErrConfig is returned by New for a bad field width, k+m exceeding
	// the field's order, or a non-positive k or m.
	ErrConfig = errors.New("erasure: invalid configuration")

	// ErrShardMissing is returned by Encode when a data shard is absent.
	ErrShardMissing = errors.New("erasure: data shard missing")

	// ErrShardOpen names the failure to open a shard stream for reading or
	// writing. Encode and Repair receive already-open streams and do not
	// return it.
	ErrShardOpen = errors.New("erasure: cannot open shard")

	// ErrShardSize is returned when shard streams disagree on length.
	ErrShardSize = errors.New("erasure: shard sizes do not match")

	// ErrShortIO is returned when a symbol read or write transfers fewer
	// than one full symbol before the declared shard length is reached.
	ErrShortIO = errors.New("erasure: short symbol read or write")

	// ErrTooManyLosses is returned by Repair when fewer than k shards
	// (data plus coding) survive.
	ErrTooManyLosses = errors.New("erasure: too many losses to repair")
)
