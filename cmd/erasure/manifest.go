package main

import (
	"time"

	"go.etcd.io/bbolt"
)

var shardBucket = []byte("shards")

// manifest is a small bbolt-backed record of which shard paths a previous
// run of this tool found present or wrote. It is pure record-keeping: every
// shard path is still opened on every run, with or without a manifest.
// Existence of the file on disk remains the sole authority on survival;
// the manifest is only ever used as a hint (see presentHint).
type manifest struct {
	db *bbolt.DB
}

func openManifest(path string) (*manifest, error) {
	db, err := bbolt.Open(path, 0644, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(shardBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &manifest{db: db}, nil
}

func (m *manifest) Close() error { return m.db.Close() }

// markPresent records that path was present (read or written) at the end
// of this run.
func (m *manifest) markPresent(path string) {
	m.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(shardBucket).Put([]byte(path), []byte{1})
	})
}

// presentHint reports whether the manifest believes path survived. The
// caller opens path regardless and only logs a disagreement between this
// hint and the result of the open; the hint never decides survival.
func (m *manifest) presentHint(path string) bool {
	present := false
	m.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(shardBucket).Get([]byte(path))
		present = v != nil
		return nil
	})
	return present
}
