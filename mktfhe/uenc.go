package mktfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
)

// UniEncSample is a single party's uni-encryption of a bit m: six
// ℓ-vectors of torus polynomials (spec §3, §4.8). It is the building
// block [ExpandAssign] turns into a sample every party can use in a CMux.
type UniEncSample struct {
	C0, C1 []poly.Poly
	D0, D1 []poly.Poly
	F0, F1 []poly.Poly
}

// NewUniEncSample returns a zeroed UniEncSample for params.
func NewUniEncSample(params Parameters) UniEncSample {
	level := params.UniEncParameters().Level()
	n := params.PolyDegree()
	newVec := func() []poly.Poly {
		v := make([]poly.Poly, level)
		for i := range v {
			v[i] = poly.NewPoly(n)
		}
		return v
	}
	return UniEncSample{
		C0: newVec(), C1: newVec(),
		D0: newVec(), D1: newVec(),
		F0: newVec(), F1: newVec(),
	}
}

// ringMulAssign computes out = a * b mod X^N+1, where a carries small
// (typically {0,1}) integer coefficients and b is a torus polynomial —
// the same forward-scale-0.5/2^-33, inverse-scale-2^33 transform
// pattern tfhe's TLWE encryption and external product use.
func ringMulAssign(ev *poly.Evaluator, a, b poly.Poly, out poly.Poly) {
	fa := ev.ToFourierPoly(a, 0.5)
	fb := ev.ToFourierPoly(b, 1.0/(1<<33))
	prod := poly.NewFourierPoly(a.Degree())
	prod.MulAssign(fa, fb)
	ev.ToPolyAssign(prod, 1<<33, out)
}

// scaledBitPoly returns the degree-N polynomial equal to m*gi in its
// constant coefficient and zero elsewhere — the same "encrypt a bit as
// a constant polynomial" trick tfhe's EncryptConstantAssign uses.
func scaledBitPoly(n int, m int32, gi int32) poly.Poly {
	p := poly.NewPoly(n)
	p.Coeffs[0] = m * gi
	return p
}

// UniEncryptAssign encrypts the bit m under party p's ring secret key
// sk.RingKey, using the parties' shared randomness and p's own public
// key, writing the result into out (spec §4.8 UniEnc).
func UniEncryptAssign(
	m int32,
	sk SecretKey,
	shared SharedKey,
	pub PublicKey,
	params Parameters,
	ev *poly.Evaluator,
	unif *csprng.UniformSampler,
	gauss *csprng.GaussianSampler,
	out UniEncSample,
) {
	n := params.PolyDegree()
	gp := params.UniEncParameters()
	stdDev := params.RingStdDev()

	r := poly.NewPoly(n)
	binaryCoeffsAssign(unif, r.Coeffs)

	tmp := poly.NewPoly(n)
	e := poly.NewPoly(n)

	for i := 0; i < gp.Level(); i++ {
		gi := gp.GadgetValue(i)
		mg := scaledBitPoly(n, m, gi)

		unif.SampleSliceAssign(out.C1[i].Coeffs)
		ringMulAssign(ev, sk.RingKey.Value, out.C1[i], tmp)
		gauss.SamplePolyAssign(stdDev, e.Coeffs)
		out.C0[i].AddAssign(tmp, e)
		out.C0[i].AddAssign(out.C0[i], mg)

		unif.SampleSliceAssign(out.F1[i].Coeffs)
		ringMulAssign(ev, sk.RingKey.Value, out.F1[i], tmp)
		gauss.SamplePolyAssign(stdDev, e.Coeffs)
		out.F0[i].AddAssign(tmp, e)
		rg := poly.NewPoly(n)
		rg.ScalarMulAssign(r, gi)
		out.F0[i].AddAssign(out.F0[i], rg)

		ringMulAssign(ev, r, shared.Value[i], tmp)
		gauss.SamplePolyAssign(stdDev, e.Coeffs)
		out.D1[i].AddAssign(tmp, e)
		out.D1[i].AddAssign(out.D1[i], mg)

		ringMulAssign(ev, r, pub.Value[i], tmp)
		gauss.SamplePolyAssign(stdDev, e.Coeffs)
		out.D0[i].AddAssign(tmp, e)
	}
}

// binaryCoeffsAssign fills dst with independent uniform bits, drawn
// from the top bit of a uniform torus sample (r's coefficients need no
// cryptographic torus range, just {0,1}).
func binaryCoeffsAssign(unif *csprng.UniformSampler, dst []int32) {
	for i := range dst {
		dst[i] = int32(uint32(unif.Sample()) >> 31)
	}
}
