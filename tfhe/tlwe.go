package tfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
)

// TLWEKey is the ring-LWE secret key: a single degree-N polynomial with
// {0, 1} coefficients.
//
// The mask size k is fixed to 1 throughout this package (spec §9 open
// question (i): rather than copy a k-derived formula and leave it
// unverified, every TLWE/TGSW formula below is written directly for
// k=1 and Compile-time parameters never expose a k knob).
type TLWEKey struct {
	Value poly.Poly
}

// NewTLWEKey returns a zeroed TLWEKey for params.
func NewTLWEKey(params Parameters) TLWEKey {
	return TLWEKey{Value: poly.NewPoly(params.PolyDegree())}
}

// TLWESample is a ring-LWE ciphertext (a, b) with b − a·s ≈ message
// polynomial.
type TLWESample struct {
	A poly.Poly
	B poly.Poly

	CurrentVariance float64
}

// NewTLWESample returns a zeroed TLWESample for params.
func NewTLWESample(params Parameters) TLWESample {
	return TLWESample{A: poly.NewPoly(params.PolyDegree()), B: poly.NewPoly(params.PolyDegree())}
}

// Copy returns a deep copy of ct.
func (ct TLWESample) Copy() TLWESample {
	return TLWESample{A: ct.A.Copy(), B: ct.B.Copy(), CurrentVariance: ct.CurrentVariance}
}

// PhaseAssign computes out = b − a·s (the encoded plaintext polynomial,
// plus noise), using ev for the negacyclic multiplication.
func PhaseAssign(ct TLWESample, key TLWEKey, ev *poly.Evaluator, out poly.Poly) {
	fa := ev.ToFourierPoly(ct.A, 0.5)
	fs := ev.ToFourierPoly(key.Value, 0.5)
	prod := poly.NewFourierPoly(ct.A.Degree())
	prod.MulAssign(fa, fs)
	as := ev.ToPoly(prod, 2)
	out.SubAssign(ct.B, as)
}

// NoiselessTrivial returns the trivial, zero-noise TLWE encryption of
// the plaintext polynomial mu.
func NoiselessTrivial(mu poly.Poly, params Parameters) TLWESample {
	ct := NewTLWESample(params)
	ct.B.CopyFrom(mu)
	return ct
}

// EncryptAssign encrypts the plaintext polynomial mu into ctOut under key.
func EncryptAssign(mu poly.Poly, key TLWEKey, params Parameters, ev *poly.Evaluator, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler, ctOut TLWESample) {
	unif.SampleSliceAssign(ctOut.A.Coeffs)
	gauss.SamplePolyAssign(params.GLWEStdDev(), ctOut.B.Coeffs)

	fa := ev.ToFourierPoly(ctOut.A, 0.5)
	fs := ev.ToFourierPoly(key.Value, 0.5)
	prod := poly.NewFourierPoly(params.PolyDegree())
	prod.MulAssign(fa, fs)
	as := ev.ToPoly(prod, 2)

	ctOut.B.AddAssign(ctOut.B, as)
	ctOut.B.AddAssign(ctOut.B, mu)
	ctOut.CurrentVariance = params.GLWEStdDev() * params.GLWEStdDev()
}

// EncryptZeroAssign encrypts the zero polynomial, i.e. produces a fresh
// TLWE encryption of the additive identity — the building block for
// TGSW row encryption.
func EncryptZeroAssign(key TLWEKey, params Parameters, ev *poly.Evaluator, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler, ctOut TLWESample) {
	EncryptAssign(poly.NewPoly(params.PolyDegree()), key, params, ev, unif, gauss, ctOut)
}

// ExtractKey concatenates the TLWE key's coefficients into an LWE key of
// dimension N (spec §4.4, tlwe_extract_key with k=1).
func ExtractKey(key TLWEKey) LWEKey {
	out := LWEKey{Value: make([]int32, len(key.Value.Coeffs))}
	copy(out.Value, key.Value.Coeffs)
	return out
}

// ExtractSampleAssign converts a TLWE sample into the LWE sample whose
// phase equals the constant coefficient of the TLWE sample's phase
// polynomial (spec §4.4 sample extraction): aLWE[i] = coefficient i of
// the reversed mask polynomial, b = constant coefficient of B.
func ExtractSampleAssign(ct TLWESample, ctOut LWESample) {
	n := ct.A.Degree()
	ctOut.A[0] = ct.A.Coeffs[0]
	for i := 1; i < n; i++ {
		ctOut.A[i] = -ct.A.Coeffs[n-i]
	}
	ctOut.B = ct.B.Coeffs[0]
	ctOut.CurrentVariance = ct.CurrentVariance
}

// ExtractSample is the allocating counterpart of ExtractSampleAssign.
func ExtractSample(ct TLWESample, params Parameters) LWESample {
	out := LWESample{A: make([]int32, ct.A.Degree())}
	ExtractSampleAssign(ct, out)
	return out
}

// MulXaiMinusOneAssign applies the anticyclic monomial shift (X^a − 1)
// to every polynomial of ct, writing the result to ctOut.
func MulXaiMinusOneAssign(ct TLWESample, a int, ctOut TLWESample) {
	ctOut.A.MulXaiMinusOneAssign(ct.A, a)
	ctOut.B.MulXaiMinusOneAssign(ct.B, a)
}

// TLWEAddAssign computes out = a + b.
func TLWEAddAssign(a, b, out TLWESample) {
	out.A.AddAssign(a.A, b.A)
	out.B.AddAssign(a.B, b.B)
	out.CurrentVariance = a.CurrentVariance + b.CurrentVariance
}
