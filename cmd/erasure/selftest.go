package main

import (
	"bytes"
	"fmt"
	"io"

	"lukechampine.com/erasure"
	"lukechampine.com/erasure/internal/gf"
	"lukechampine.com/erasure/internal/matrix"
	"lukechampine.com/frand"
)

// selfTest reproduces the concrete scenarios from the field and matrix
// design notes, plus one end-to-end encode/repair round trip. It returns
// the first failing assertion, wrapped with enough context to locate it.
func selfTest() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"gf4 scenarios", checkGF4},
		{"gf8 scenarios", checkGF8},
		{"vandermonde scenarios", checkVandermonde},
		{"inversion scenario", checkInversion},
		{"end-to-end round trip", checkRoundTrip},
	}
	for _, c := range checks {
		if err := c.fn(); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}

func checkGF4() error {
	tb, err := gf.New(4)
	if err != nil {
		return err
	}
	cases := []struct{ a, b, mul, div int }{
		{3, 7, 9, 10},
		{13, 10, 11, 3},
	}
	for _, c := range cases {
		if got := tb.Mul(c.a, c.b); got != c.mul {
			return fmt.Errorf("mul(%d,%d)=%d, want %d", c.a, c.b, got, c.mul)
		}
	}
	if got := tb.Div(13, 10); got != 3 {
		return fmt.Errorf("div(13,10)=%d, want 3", got)
	}
	if got := tb.Div(3, 7); got != 10 {
		return fmt.Errorf("div(3,7)=%d, want 10", got)
	}
	return nil
}

func checkGF8() error {
	tb, err := gf.New(8)
	if err != nil {
		return err
	}
	if got := tb.Mul(3, 7); got != 9 {
		return fmt.Errorf("mul(3,7)=%d, want 9", got)
	}
	if got := tb.Mul(13, 10); got != 114 {
		return fmt.Errorf("mul(13,10)=%d, want 114", got)
	}
	if got := tb.Div(13, 10); got != 40 {
		return fmt.Errorf("div(13,10)=%d, want 40", got)
	}
	if got := tb.Div(3, 7); got != 211 {
		return fmt.Errorf("div(3,7)=%d, want 211", got)
	}
	return nil
}

func checkVandermonde() error {
	tb, err := gf.New(4)
	if err != nil {
		return err
	}
	vm := matrix.Vandermonde(tb, 3, 3)

	apply := func(v []int) ([]int, error) {
		in := matrix.NewVector(3)
		for i, x := range v {
			in.Set(i, x)
		}
		out := matrix.NewVector(3)
		if err := matrix.Multiply(tb, out, vm, in); err != nil {
			return nil, err
		}
		return []int{out.At(0), out.At(1), out.At(2)}, nil
	}

	got, err := apply([]int{3, 13, 9})
	if err != nil {
		return err
	}
	if want := []int{7, 2, 9}; !equalInts(got, want) {
		return fmt.Errorf("vandermonde([3,13,9])=%v, want %v", got, want)
	}

	got, err = apply([]int{3, 1, 9})
	if err != nil {
		return err
	}
	if want := []int{11, 9, 12}; !equalInts(got, want) {
		return fmt.Errorf("vandermonde([3,1,9])=%v, want %v", got, want)
	}
	return nil
}

func checkInversion() error {
	tb, err := gf.New(4)
	if err != nil {
		return err
	}
	m := matrix.New(3, 3)
	rows := [][]int{{1, 0, 0}, {1, 1, 1}, {1, 2, 3}}
	for r, row := range rows {
		for col, v := range row {
			m.Set(r, col, v)
		}
	}
	inv, err := matrix.Invert(tb, m)
	if err != nil {
		return err
	}
	in := matrix.NewVector(3)
	in.Set(0, 3)
	in.Set(1, 11)
	in.Set(2, 9)
	out := matrix.NewVector(3)
	if err := matrix.Multiply(tb, out, inv, in); err != nil {
		return err
	}
	if out.At(1) != 1 || out.At(2) != 9 {
		return fmt.Errorf("M^-1 * [3,11,9] = [%d,%d,%d], want [_,1,9]", out.At(0), out.At(1), out.At(2))
	}
	return nil
}

func checkRoundTrip() error {
	const k, m, size = 3, 3, 1024
	c, err := erasure.New(erasure.Config{DataShards: k, ParityShards: m, Width: 8, Kind: erasure.CorrectedVandermonde})
	if err != nil {
		return err
	}

	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	originals := make([][]byte, k)
	for i := range originals {
		originals[i] = rng.Bytes(size)
	}
	dataIn := make([]erasure.Shard, k)
	for i, buf := range originals {
		dataIn[i] = erasure.Shard{R: bytes.NewReader(buf), Size: size}
	}
	codeBufs := make([]*bytes.Buffer, m)
	codeOut := make([]io.Writer, m)
	for j := range codeBufs {
		codeBufs[j] = new(bytes.Buffer)
		codeOut[j] = codeBufs[j]
	}
	if err := c.Encode(dataIn, codeOut); err != nil {
		return err
	}

	// delete three of the six shards: two data, one coding
	dataSlots := make([]erasure.DataSlot, k)
	restored := make([]*bytes.Buffer, k)
	for i := range dataSlots {
		if i < 2 {
			restored[i] = new(bytes.Buffer)
			dataSlots[i] = erasure.DataSlot{Dest: restored[i]}
		} else {
			dataSlots[i] = erasure.DataSlot{R: bytes.NewReader(originals[i]), Size: size}
		}
	}
	codeSlots := make([]erasure.Shard, m)
	for j := 1; j < m; j++ {
		codeSlots[j] = erasure.Shard{R: bytes.NewReader(codeBufs[j].Bytes()), Size: size}
	}

	if err := c.Repair(dataSlots, codeSlots); err != nil {
		return err
	}
	for i, buf := range restored {
		if buf == nil {
			continue
		}
		if !bytes.Equal(buf.Bytes(), originals[i]) {
			return fmt.Errorf("data shard %d not restored correctly", i)
		}
	}
	return nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
