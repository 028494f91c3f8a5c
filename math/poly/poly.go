// Package poly implements polynomial arithmetic modulo X^N+1 for the
// two flavors used throughout the scheme: plain integer/torus
// coefficient polynomials, and their negacyclic-transform (Fourier)
// representation used for fast multiplication.
package poly

import "github.com/latticegate/tfhe-go/math/num"

// Poly is a length-N polynomial with int32 coefficients modulo X^N+1.
// The same representation serves torus-valued ciphertext polynomials
// and small-integer decomposition polynomials; which one a given Poly
// holds is a matter of context, not of the type.
type Poly struct {
	Coeffs []int32
}

// NewPoly returns a zero polynomial of degree N.
func NewPoly(n int) Poly {
	return Poly{Coeffs: make([]int32, n)}
}

// Degree returns N.
func (p Poly) Degree() int {
	return len(p.Coeffs)
}

// Copy returns a deep copy of p.
func (p Poly) Copy() Poly {
	q := NewPoly(len(p.Coeffs))
	copy(q.Coeffs, p.Coeffs)
	return q
}

// CopyFrom overwrites p's coefficients with src's.
func (p Poly) CopyFrom(src Poly) {
	copy(p.Coeffs, src.Coeffs)
}

// Clear zeroes every coefficient.
func (p Poly) Clear() {
	for i := range p.Coeffs {
		p.Coeffs[i] = 0
	}
}

// AddAssign computes p = a + b.
func (p Poly) AddAssign(a, b Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = a.Coeffs[i] + b.Coeffs[i]
	}
}

// SubAssign computes p = a - b.
func (p Poly) SubAssign(a, b Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = a.Coeffs[i] - b.Coeffs[i]
	}
}

// NegAssign computes p = -a.
func (p Poly) NegAssign(a Poly) {
	for i := range p.Coeffs {
		p.Coeffs[i] = -a.Coeffs[i]
	}
}

// ScalarMulAssign computes p = c * a (coefficientwise, mod 2^32).
func (p Poly) ScalarMulAssign(a Poly, c int32) {
	for i := range p.Coeffs {
		p.Coeffs[i] = a.Coeffs[i] * c
	}
}

// MulXaiMinusOneAssign computes p = (X^a - 1) * src modulo X^N+1, the
// anticyclic monomial shift used by CMux: for a < N the negacyclic wrap
// folds the top a coefficients back in negated, for a in [N, 2N) the
// extra half-turn flips the overall sign once more. a must be in [0, 2N).
func (p Poly) MulXaiMinusOneAssign(src Poly, a int) {
	n := len(src.Coeffs)
	if a < 0 || a >= 2*n {
		panic("poly: shift amount out of [0, 2N) range")
	}

	if a < n {
		for i := 0; i < a; i++ {
			p.Coeffs[i] = -src.Coeffs[n-a+i] - src.Coeffs[i]
		}
		for i := a; i < n; i++ {
			p.Coeffs[i] = src.Coeffs[i-a] - src.Coeffs[i]
		}
		return
	}

	aa := a - n
	for i := 0; i < aa; i++ {
		p.Coeffs[i] = src.Coeffs[n-aa+i] - src.Coeffs[i]
	}
	for i := aa; i < n; i++ {
		p.Coeffs[i] = -src.Coeffs[i-aa] - src.Coeffs[i]
	}
}

// MonomialMulAssign computes p = X^a * src modulo X^N+1, for a in
// [0, 2N). Derived from the X^a-1 shift: X^a*src = (X^a-1)*src + src.
func (p Poly) MonomialMulAssign(src Poly, a int) {
	p.MulXaiMinusOneAssign(src, a)
	p.AddAssign(p, src)
}

// ModSwitch maps a torus coefficient to one of 2N rotation positions:
// round(x * 2N / 2^32) mod 2N, computed as a right shift with a
// pre-added rounding offset (spec §4.1's mod_switch_from_torus).
func ModSwitch(x int32, twoN int) int {
	logTwoN := num.Log2(twoN)
	shift := uint(32 - logTwoN)
	rounded := num.RoundShift(int64(x), shift)
	return int(((rounded % int64(twoN)) + int64(twoN)) % int64(twoN))
}
