package erasure

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"lukechampine.com/frand"
)

// roundTrip encodes k random data shards, loses exactly m of the k+m total
// shards (chosen by lostData/lostCode), repairs, and checks the restored
// data shards match the originals.
func roundTrip(t *testing.T, cfg Config, shardSize int, lostData, lostCode []int) {
	t.Helper()

	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	k, m := cfg.DataShards, cfg.ParityShards
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	originals := make([][]byte, k)
	for i := range originals {
		originals[i] = rng.Bytes(shardSize)
	}

	dataIn := make([]Shard, k)
	for i, buf := range originals {
		dataIn[i] = Shard{R: bytes.NewReader(buf), Size: shardSize}
	}
	codeBufs := make([]*bytes.Buffer, m)
	codeOut := make([]io.Writer, m)
	for j := range codeBufs {
		codeBufs[j] = new(bytes.Buffer)
		codeOut[j] = codeBufs[j]
	}

	if err := c.Encode(dataIn, codeOut); err != nil {
		t.Fatalf("encode: %v", err)
	}

	isLostData := make(map[int]bool)
	for _, i := range lostData {
		isLostData[i] = true
	}
	isLostCode := make(map[int]bool)
	for _, j := range lostCode {
		isLostCode[j] = true
	}

	dataSlots := make([]DataSlot, k)
	restored := make([]*bytes.Buffer, k)
	for i := range dataSlots {
		if isLostData[i] {
			restored[i] = new(bytes.Buffer)
			dataSlots[i] = DataSlot{Dest: restored[i]}
		} else {
			dataSlots[i] = DataSlot{R: bytes.NewReader(originals[i]), Size: shardSize}
		}
	}
	codeSlots := make([]Shard, m)
	for j := range codeSlots {
		if !isLostCode[j] {
			codeSlots[j] = Shard{R: bytes.NewReader(codeBufs[j].Bytes()), Size: shardSize}
		}
	}

	if err := c.Repair(dataSlots, codeSlots); err != nil {
		t.Fatalf("repair: %v", err)
	}

	for i, buf := range restored {
		if buf == nil {
			continue
		}
		if !bytes.Equal(buf.Bytes(), originals[i]) {
			t.Fatalf("data shard %d not restored correctly", i)
		}
	}
}

func TestRoundTripBulkPath(t *testing.T) {
	cfg := Config{DataShards: 3, ParityShards: 3, Width: 8, Kind: CorrectedVandermonde}
	roundTrip(t, cfg, 1024, []int{0, 2}, []int{1})
}

func TestRoundTripGenericPathWidth16(t *testing.T) {
	cfg := Config{DataShards: 3, ParityShards: 3, Width: 16, Kind: CorrectedVandermonde}
	roundTrip(t, cfg, 1024, []int{1}, []int{0, 2})
}

func TestRoundTripCauchy(t *testing.T) {
	cfg := Config{DataShards: 4, ParityShards: 2, Width: 8, Kind: Cauchy}
	roundTrip(t, cfg, 512, []int{0, 3}, nil)
}

func TestRoundTripWidth4(t *testing.T) {
	cfg := Config{DataShards: 3, ParityShards: 2, Width: 4, Kind: CorrectedVandermonde}
	roundTrip(t, cfg, 64, []int{1}, []int{0})
}

func TestRepairNoLossIsNoop(t *testing.T) {
	cfg := Config{DataShards: 3, ParityShards: 2, Width: 8, Kind: CorrectedVandermonde}
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	dataSlots := make([]DataSlot, 3)
	for i := range dataSlots {
		dataSlots[i] = DataSlot{R: bytes.NewReader(frand.Bytes(16)), Size: 16}
	}
	codeSlots := make([]Shard, 2)
	for j := range codeSlots {
		codeSlots[j] = Shard{R: bytes.NewReader(frand.Bytes(16)), Size: 16}
	}
	if err := c.Repair(dataSlots, codeSlots); err != nil {
		t.Fatalf("expected trivial success, got %v", err)
	}
}

func TestRepairTooManyLosses(t *testing.T) {
	cfg := Config{DataShards: 3, ParityShards: 2, Width: 8, Kind: CorrectedVandermonde}
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	dataSlots := []DataSlot{
		{R: bytes.NewReader(frand.Bytes(16)), Size: 16},
		{Dest: new(bytes.Buffer)},
		{Dest: new(bytes.Buffer)},
	}
	codeSlots := []Shard{{}, {}}
	if err := c.Repair(dataSlots, codeSlots); !errors.Is(err, ErrTooManyLosses) {
		t.Fatalf("expected ErrTooManyLosses, got %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{DataShards: 0, ParityShards: 1, Width: 8}); err == nil {
		t.Fatal("expected error for zero data shards")
	}
	if _, err := New(Config{DataShards: 1, ParityShards: 1, Width: 3}); err == nil {
		t.Fatal("expected error for unsupported width")
	}
	if _, err := New(Config{DataShards: 200, ParityShards: 100, Width: 8}); err == nil {
		t.Fatal("expected error for k+m exceeding field order")
	}
}
