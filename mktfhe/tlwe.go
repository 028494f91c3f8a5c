package mktfhe

import (
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
)

// MKTLWESample is a multi-key ring-LWE ciphertext: one mask polynomial
// per party plus a shared body, with b − Σₚ aₚ·sₚ approximating a
// plaintext polynomial (spec §4.8).
type MKTLWESample struct {
	A []poly.Poly // length Parties
	B poly.Poly
}

// NewMKTLWESample returns a zeroed MKTLWESample for params.
func NewMKTLWESample(params Parameters) MKTLWESample {
	a := make([]poly.Poly, params.Parties())
	for i := range a {
		a[i] = poly.NewPoly(params.PolyDegree())
	}
	return MKTLWESample{A: a, B: poly.NewPoly(params.PolyDegree())}
}

// Copy returns a deep copy of ct.
func (ct MKTLWESample) Copy() MKTLWESample {
	a := make([]poly.Poly, len(ct.A))
	for i := range a {
		a[i] = ct.A[i].Copy()
	}
	return MKTLWESample{A: a, B: ct.B.Copy()}
}

// MKNoiselessTrivial returns the trivial, zero-noise MK-TLWE encryption
// of the plaintext polynomial mu: every party's mask is zero.
func MKNoiselessTrivial(mu poly.Poly, params Parameters) MKTLWESample {
	ct := NewMKTLWESample(params)
	ct.B.CopyFrom(mu)
	return ct
}

// PhaseAssign computes out = b − Σₚ aₚ·sₚ, using ev for the negacyclic
// multiplications and ringKeys for the parties' ring secret keys.
func PhaseAssign(ct MKTLWESample, ringKeys []tfhe.TLWEKey, ev *poly.Evaluator, out poly.Poly) {
	out.CopyFrom(ct.B)
	term := poly.NewPoly(ct.B.Degree())
	for p, s := range ringKeys {
		ringMulAssign(ev, s.Value, ct.A[p], term)
		out.SubAssign(out, term)
	}
}

// AddAssign computes out = a + b, componentwise over every party's mask
// and the shared body.
func AddAssign(a, b, out MKTLWESample) {
	for p := range out.A {
		out.A[p].AddAssign(a.A[p], b.A[p])
	}
	out.B.AddAssign(a.B, b.B)
}

// SubAssign computes out = a - b.
func SubAssign(a, b, out MKTLWESample) {
	for p := range out.A {
		out.A[p].SubAssign(a.A[p], b.A[p])
	}
	out.B.SubAssign(a.B, b.B)
}

// MulXaiMinusOneAssign applies the anticyclic shift (X^a − 1) to every
// mask polynomial and to the body of ct, writing the result to ctOut.
func MulXaiMinusOneAssign(ct MKTLWESample, a int, ctOut MKTLWESample) {
	for p := range ctOut.A {
		ctOut.A[p].MulXaiMinusOneAssign(ct.A[p], a)
	}
	ctOut.B.MulXaiMinusOneAssign(ct.B, a)
}

// MKLWESample is a multi-key LWE ciphertext: one mask vector per party
// plus a shared body, with b − Σₚ⟨aₚ,sₚ⟩ approximating the message
// (spec §4.8's multi-key analogue of tfhe.LWESample). The per-party
// mask dimension is whatever the ciphertext's current key space is: N
// right after extraction, n after a multi-key key switch.
type MKLWESample struct {
	A []([]int32)
	B int32

	CurrentVariance float64
}

// NewMKLWESample returns a zeroed MKLWESample with per-party masks of
// the given dimension.
func NewMKLWESample(parties, dim int) MKLWESample {
	a := make([][]int32, parties)
	for p := range a {
		a[p] = make([]int32, dim)
	}
	return MKLWESample{A: a}
}

// ExtractSampleAssign converts an MK-TLWE sample into the MK-LWE sample
// whose phase equals the constant coefficient of ct's phase polynomial,
// applying the single-key sample-extraction coefficient reversal to
// each party's mask independently.
func ExtractSampleAssign(ct MKTLWESample, ctOut MKLWESample) {
	for p := range ct.A {
		n := ct.A[p].Degree()
		ctOut.A[p][0] = ct.A[p].Coeffs[0]
		for i := 1; i < n; i++ {
			ctOut.A[p][i] = -ct.A[p].Coeffs[n-i]
		}
	}
	ctOut.B = ct.B.Coeffs[0]
}
