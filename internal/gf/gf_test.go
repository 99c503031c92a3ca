package gf

import "testing"

func TestUnsupportedWidth(t *testing.T) {
	if _, err := New(5); err == nil {
		t.Fatal("expected error for w=5")
	}
}

func TestTableCoverage(t *testing.T) {
	for _, w := range []uint{4, 8, 16} {
		tb, err := New(w)
		if err != nil {
			t.Fatalf("w=%d: %v", w, err)
		}
		seen := make(map[uint16]bool, tb.nw-1)
		for log := 0; log < tb.nw-1; log++ {
			v := tb.ilog[log]
			if v == 0 || seen[v] {
				t.Fatalf("w=%d: ilog is not a bijection on nonzero elements at log=%d", w, log)
			}
			seen[v] = true
		}
		if len(seen) != tb.nw-1 {
			t.Fatalf("w=%d: expected %d distinct nonzero elements, got %d", w, tb.nw-1, len(seen))
		}
	}
}

func TestFieldLaws(t *testing.T) {
	for _, w := range []uint{4, 8, 16} {
		tb, _ := New(w)
		for a := 1; a < tb.nw; a++ {
			inv := tb.Div(1, a)
			if tb.Mul(a, inv) != 1 {
				t.Fatalf("w=%d: mul(%d, div(1,%d)) != 1", w, a, a)
			}
		}
		if tb.Mul(3, 0) != 0 {
			t.Fatalf("w=%d: mul(a,0) != 0", w)
		}
		a, b := 11, 201%tb.nw
		if tb.Mul(a, b) != tb.Mul(b, a) {
			t.Fatalf("w=%d: mul not commutative", w)
		}
		if Add(a, b) != a^b {
			t.Fatalf("add is not XOR")
		}
	}
}

func TestGF4Scenarios(t *testing.T) {
	tb, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	if got := tb.Mul(3, 7); got != 9 {
		t.Errorf("mul(3,7) = %d, want 9", got)
	}
	if got := tb.Mul(13, 10); got != 11 {
		t.Errorf("mul(13,10) = %d, want 11", got)
	}
	if got := tb.Div(13, 10); got != 3 {
		t.Errorf("div(13,10) = %d, want 3", got)
	}
	if got := tb.Div(3, 7); got != 10 {
		t.Errorf("div(3,7) = %d, want 10", got)
	}
}

func TestGF8Scenarios(t *testing.T) {
	tb, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	if got := tb.Mul(3, 7); got != 9 {
		t.Errorf("mul(3,7) = %d, want 9", got)
	}
	if got := tb.Mul(13, 10); got != 114 {
		t.Errorf("mul(13,10) = %d, want 114", got)
	}
	if got := tb.Div(13, 10); got != 40 {
		t.Errorf("div(13,10) = %d, want 40", got)
	}
	if got := tb.Div(3, 7); got != 211 {
		t.Errorf("div(3,7) = %d, want 211", got)
	}
}

func TestCheckedDivByZero(t *testing.T) {
	tb, _ := New(8)
	if _, err := tb.CheckedDiv(5, 0); err == nil {
		t.Fatal("expected ErrDivideByZero")
	}
}
