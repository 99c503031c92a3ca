// Package gf implements arithmetic over the Galois fields GF(2^4), GF(2^8)
// and GF(2^16), built from log/antilog tables the way James S. Plank's
// Reed-Solomon note describes.
package gf

import "github.com/pkg/errors"

// ErrUnsupportedWidth is returned by New for any w not in {4, 8, 16}.
var ErrUnsupportedWidth = errors.New("gf: unsupported field width")

// primitive polynomials, by field width, in octal as the reference
// implementation states them.
const (
	primPoly4  = 023
	primPoly8  = 0435
	primPoly16 = 0210013
)

// Tables holds the log/antilog tables for one field width. A Tables value
// is immutable once built and safe for concurrent reads from any number of
// codec calls.
type Tables struct {
	w     uint
	nw    int // 2^w
	log   []uint16
	ilog  []uint16
}

// New builds the log/antilog tables for GF(2^w). w must be 4, 8, or 16.
func New(w uint) (*Tables, error) {
	var primPoly uint
	switch w {
	case 4:
		primPoly = primPoly4
	case 8:
		primPoly = primPoly8
	case 16:
		primPoly = primPoly16
	default:
		return nil, errors.Wrapf(ErrUnsupportedWidth, "w=%d", w)
	}

	nw := 1 << w
	t := &Tables{
		w:    w,
		nw:   nw,
		log:  make([]uint16, nw),
		ilog: make([]uint16, nw),
	}

	b := uint(1)
	for log := 0; log < nw-1; log++ {
		t.log[b] = uint16(log)
		t.ilog[log] = uint16(b)
		b <<= 1
		if b&uint(nw) != 0 {
			b ^= primPoly
		}
	}
	return t, nil
}

// Width returns the field width w this Tables was built for.
func (t *Tables) Width() uint { return t.w }

// Order returns 2^w, the number of elements in the field (including zero).
func (t *Tables) Order() int { return t.nw }

// Add returns a XOR b, the field's addition (and subtraction) operator.
func Add(a, b int) int { return a ^ b }

// Mul returns a*b in GF(2^w).
func (t *Tables) Mul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	sum := int(t.log[a]) + int(t.log[b])
	if sum >= t.nw-1 {
		sum -= t.nw - 1
	}
	return int(t.ilog[sum])
}

// Div returns a/b in GF(2^w). Div panics if b is zero; the core never
// divides by zero in normal operation (CheckedDiv is the variant that
// returns gf.ErrDivideByZero instead).
func (t *Tables) Div(a, b int) int {
	v, err := t.div(a, b)
	if err != nil {
		panic(err)
	}
	return v
}

// ErrDivideByZero is returned by CheckedDiv when dividing by the zero
// element, which has no multiplicative inverse.
var ErrDivideByZero = errors.New("gf: division by zero")

// CheckedDiv is Div, but returns an error instead of panicking when b is
// zero. The matrix constructors call Div, not CheckedDiv.
func (t *Tables) CheckedDiv(a, b int) (int, error) {
	return t.div(a, b)
}

func (t *Tables) div(a, b int) (int, error) {
	if a == 0 {
		return 0, nil
	}
	if b == 0 {
		return 0, ErrDivideByZero
	}
	diff := int(t.log[a]) - int(t.log[b])
	if diff < 0 {
		diff += t.nw - 1
	}
	return int(t.ilog[diff]), nil
}

// Exp returns a^b in GF(2^w), computed by repeated multiplication.
// It is used only during matrix construction, never on the hot path.
func (t *Tables) Exp(a, b int) int {
	if b == 0 {
		return 1
	}
	r := a
	for i := 1; i < b; i++ {
		r = t.Mul(r, a)
	}
	return r
}
