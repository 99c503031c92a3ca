package main

import (
	"fmt"
	"io"
	"os"

	"gitlab.com/NebulousLabs/log"

	"lukechampine.com/erasure"
)

type distKind int

const (
	vandermondeKind distKind = iota
	cauchyKind
)

// cliConfig collects everything a run needs to know, independent of
// whether it's doing an encode or a repair pass.
type cliConfig struct {
	DataShards   int
	ParityShards int
	Width        uint
	Kind         distKind
	Prefix       string
	Manifest     *manifest
	Logger       *log.Logger
	Verbose      bool
}

func (c cliConfig) codec() (*erasure.Codec, error) {
	kind := erasure.CorrectedVandermonde
	if c.Kind == cauchyKind {
		kind = erasure.Cauchy
	}
	codec, err := erasure.New(erasure.Config{
		DataShards:   c.DataShards,
		ParityShards: c.ParityShards,
		Width:        c.Width,
		Kind:         kind,
	})
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		c.Logger.Print(codec.Distribution().Dump())
	}
	return codec, nil
}

func dataShardPath(prefix string, i int) string { return fmt.Sprintf("%s.d%d", prefix, i) }
func codeShardPath(prefix string, j int) string { return fmt.Sprintf("%s.c%d", prefix, j) }

// runEncode opens prefix.d0..d(k-1) for reading and writes prefix.c0..c(m-1),
// matching main.c's create_coding_files.
func runEncode(cfg cliConfig) error {
	c, err := cfg.codec()
	if err != nil {
		return err
	}

	dataShards := make([]erasure.Shard, cfg.DataShards)
	for i := range dataShards {
		path := dataShardPath(cfg.Prefix, i)
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return fmt.Errorf("stat %s: %w", path, err)
		}
		dataShards[i] = erasure.Shard{R: f, Size: int(info.Size()), Closer: f}
	}

	codeFiles := make([]*os.File, cfg.ParityShards)
	codeWriters := make([]io.Writer, cfg.ParityShards)
	for j := range codeFiles {
		path := codeShardPath(cfg.Prefix, j)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		codeFiles[j] = f
		codeWriters[j] = f
	}
	defer func() {
		for _, f := range codeFiles {
			f.Close()
		}
	}()

	if err := c.Encode(dataShards, codeWriters); err != nil {
		return err
	}

	if cfg.Manifest != nil {
		for i := range dataShards {
			cfg.Manifest.markPresent(dataShardPath(cfg.Prefix, i))
		}
		for j := range codeFiles {
			cfg.Manifest.markPresent(codeShardPath(cfg.Prefix, j))
		}
	}
	return nil
}

// runRepair inspects prefix.d* and prefix.c* for existence, restores any
// missing data shards in place, and leaves present shards untouched.
// Existence is the sole survival signal (§6 file naming convention); a
// manifest, when supplied, never overrides that, but its presentHint is
// compared against the real os.Open result and any disagreement is logged,
// since that means a shard was removed or added since the last -c/-r pass.
func runRepair(cfg cliConfig) error {
	c, err := cfg.codec()
	if err != nil {
		return err
	}

	dataSlots := make([]erasure.DataSlot, cfg.DataShards)
	for i := range dataSlots {
		path := dataShardPath(cfg.Prefix, i)
		f, err := os.Open(path)
		if cfg.Manifest != nil && cfg.Manifest.presentHint(path) != (err == nil) {
			cfg.Logger.Printf("manifest disagrees with disk state for %s", path)
		}
		if err == nil {
			info, statErr := f.Stat()
			if statErr != nil {
				f.Close()
				return fmt.Errorf("stat %s: %w", path, statErr)
			}
			dataSlots[i] = erasure.DataSlot{R: f, Size: int(info.Size()), Closer: f}
			continue
		}
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		dataSlots[i] = erasure.DataSlot{Dest: out, Closer: out}
	}

	codeShards := make([]erasure.Shard, cfg.ParityShards)
	codeFiles := make([]*os.File, cfg.ParityShards)
	for j := range codeShards {
		path := codeShardPath(cfg.Prefix, j)
		f, err := os.Open(path)
		if err != nil {
			continue // missing coding shard: leave the Shard zero-valued
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return fmt.Errorf("stat %s: %w", path, err)
		}
		codeFiles[j] = f
		codeShards[j] = erasure.Shard{R: f, Size: int(info.Size()), Closer: f}
	}

	if err := c.Repair(dataSlots, codeShards); err != nil {
		return err
	}

	if cfg.Manifest != nil {
		for i := range dataSlots {
			cfg.Manifest.markPresent(dataShardPath(cfg.Prefix, i))
		}
	}
	return nil
}
