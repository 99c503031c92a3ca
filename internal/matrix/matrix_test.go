package matrix

import (
	"testing"

	"lukechampine.com/erasure/internal/gf"
)

func mustTables(t *testing.T, w uint) *gf.Tables {
	t.Helper()
	tb, err := gf.New(w)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestVandermondeRawMultiply(t *testing.T) {
	tb := mustTables(t, 4)
	m := Vandermonde(tb, 3, 3)

	v := NewVector(3)
	v.Set(0, 3)
	v.Set(1, 13)
	v.Set(2, 9)
	out := NewVector(3)
	if err := Multiply(tb, out, m, v); err != nil {
		t.Fatal(err)
	}
	want := []int{7, 2, 9}
	for i, w := range want {
		if out.At(i) != w {
			t.Errorf("out[%d] = %d, want %d", i, out.At(i), w)
		}
	}

	v.Set(0, 3)
	v.Set(1, 1)
	v.Set(2, 9)
	if err := Multiply(tb, out, m, v); err != nil {
		t.Fatal(err)
	}
	want = []int{11, 9, 12}
	for i, w := range want {
		if out.At(i) != w {
			t.Errorf("out[%d] = %d, want %d", i, out.At(i), w)
		}
	}
}

func TestInvert(t *testing.T) {
	tb := mustTables(t, 4)
	m := New(3, 3)
	rows := [][]int{
		{1, 0, 0},
		{1, 1, 1},
		{1, 2, 3},
	}
	for i, row := range rows {
		m.SetRow(i, row)
	}

	inv, err := Invert(tb, m)
	if err != nil {
		t.Fatal(err)
	}

	v := NewVector(3)
	v.Set(0, 3)
	v.Set(1, 11)
	v.Set(2, 9)
	out := NewVector(3)
	if err := Multiply(tb, out, inv, v); err != nil {
		t.Fatal(err)
	}
	if out.At(1) != 1 {
		t.Errorf("out[1] = %d, want 1", out.At(1))
	}
	if out.At(2) != 9 {
		t.Errorf("out[2] = %d, want 9", out.At(2))
	}
}

func TestVandermondeCorrectedShape(t *testing.T) {
	for _, tc := range []struct{ k, m int }{{3, 3}, {1, 5}, {6, 1}, {4, 4}} {
		tb := mustTables(t, 8)
		d := VandermondeCorrected(tb, tc.m, tc.k)
		if d.Rows() != tc.m || d.Cols() != tc.k {
			t.Fatalf("k=%d m=%d: shape = %dx%d, want %dx%d", tc.k, tc.m, d.Rows(), d.Cols(), tc.m, tc.k)
		}

		// [I ; D] must have an identity top block and every k-subset of
		// its k+m rows must be invertible (MDS).
		full := New(tc.k+tc.m, tc.k)
		for i := 0; i < tc.k; i++ {
			full.Set(i, i, 1)
		}
		for i := 0; i < tc.m; i++ {
			for j := 0; j < tc.k; j++ {
				full.Set(tc.k+i, j, d.At(i, j))
			}
		}
		assertMDS(t, tb, full, tc.k)
	}
}

func TestCauchyIsMDSAndNormalized(t *testing.T) {
	tb := mustTables(t, 4)
	d := Cauchy(tb, 3, 3)

	for j := 0; j < d.Cols(); j++ {
		if d.At(0, j) != 1 {
			t.Errorf("first row not all-ones at col %d: %d", j, d.At(0, j))
		}
	}
	for i := 0; i < d.Rows(); i++ {
		if d.At(i, 0) != 1 {
			t.Errorf("first col not all-ones at row %d: %d", i, d.At(i, 0))
		}
	}

	full := New(3+3, 3)
	for i := 0; i < 3; i++ {
		full.Set(i, i, 1)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			full.Set(3+i, j, d.At(i, j))
		}
	}
	assertMDS(t, tb, full, 3)
}

// assertMDS checks that every k-row subset of full (which has k+m rows and
// k columns) is invertible.
func assertMDS(t *testing.T, tb *gf.Tables, full *Matrix, k int) {
	t.Helper()
	n := full.Rows()
	var combinations func(start int, chosen []int)
	combinations = func(start int, chosen []int) {
		if len(chosen) == k {
			sub := New(k, k)
			for i, row := range chosen {
				for j := 0; j < k; j++ {
					sub.Set(i, j, full.At(row, j))
				}
			}
			if _, err := Invert(tb, sub); err != nil {
				t.Fatalf("subset %v is not invertible: %v", chosen, err)
			}
			return
		}
		for i := start; i < n; i++ {
			combinations(i+1, append(chosen, i))
		}
	}
	combinations(0, nil)
}
