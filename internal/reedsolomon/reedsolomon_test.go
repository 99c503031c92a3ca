package reedsolomon

import (
	"bytes"
	"testing"

	"lukechampine.com/frand"

	"lukechampine.com/erasure/internal/gf"
	"lukechampine.com/erasure/internal/matrix"
)

func TestEncodeReconstruct(t *testing.T) {
	const dataShards, parityShards, shardSize = 3, 3, 1024

	tb, err := gf.New(8)
	if err != nil {
		t.Fatal(err)
	}
	dist := matrix.VandermondeCorrected(tb, parityShards, dataShards)

	c, err := New(dataShards, parityShards, dist)
	if err != nil {
		t.Fatal(err)
	}

	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	shards := make([][]byte, dataShards+parityShards)
	for i := 0; i < dataShards; i++ {
		shards[i] = rng.Bytes(shardSize)
	}
	originals := make([][]byte, dataShards)
	for i := range originals {
		originals[i] = append([]byte(nil), shards[i]...)
	}
	for i := dataShards; i < len(shards); i++ {
		shards[i] = make([]byte, shardSize)
	}

	if err := c.Encode(shards); err != nil {
		t.Fatal(err)
	}

	// drop three of the six shards and repair
	lost := []int{0, 2, 4}
	saved := make([][]byte, len(lost))
	for i, idx := range lost {
		saved[i] = shards[idx]
		shards[idx] = nil
	}

	if err := c.Reconstruct(shards); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < dataShards; i++ {
		if !bytes.Equal(shards[i], originals[i]) {
			t.Fatalf("data shard %d not restored correctly", i)
		}
	}
}

func TestNewRejectsBadShardCounts(t *testing.T) {
	if _, err := New(0, 1, nil); err == nil {
		t.Fatal("expected error for zero data shards")
	}
	if _, err := New(1, 0, nil); err == nil {
		t.Fatal("expected error for zero parity shards")
	}
	if _, err := New(200, 100, nil); err == nil {
		t.Fatal("expected error for total shards > 256")
	}
}
