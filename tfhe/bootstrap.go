package tfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
)

// BootstrapKey is the array of n transformed TGSW samples driving blind
// rotation, sample i encrypting secret-key bit sᵢ under the TLWE key
// (spec §3).
type BootstrapKey struct {
	Value []TransformedTGSWSample
}

// NewBootstrapKey returns a zeroed BootstrapKey for params.
func NewBootstrapKey(params Parameters) BootstrapKey {
	gp := params.BlindRotateParameters()
	bk := BootstrapKey{Value: make([]TransformedTGSWSample, params.LWEDimension())}
	for i := range bk.Value {
		bk.Value[i] = NewTransformedTGSWSample(params, gp)
	}
	return bk
}

// GenBootstrapKeyAssign encrypts every bit of lweKey as a TGSW sample
// under tlweKey, transforms it, and writes the result into bkOut.
func GenBootstrapKeyAssign(lweKey LWEKey, tlweKey TLWEKey, params Parameters, ev *poly.Evaluator, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler, bkOut BootstrapKey) {
	gp := params.BlindRotateParameters()
	tmp := NewTGSWSample(params, gp)
	for i, bit := range lweKey.Value {
		EncryptConstantAssign(bit, tlweKey, params, gp, ev, unif, gauss, tmp)
		ToFourierTGSWAssign(tmp, ev, bkOut.Value[i])
	}
}

// bootstrapBuffer holds the scratch storage BlindRotateAssign and
// BootstrapWithoutKeySwitchAssign reuse across calls.
type bootstrapBuffer struct {
	shifted    TLWESample
	product    TLWESample
	extProduct []poly.Poly
}

// NewBootstrapBuffer allocates scratch storage for the given parameters.
func NewBootstrapBuffer(params Parameters) *bootstrapBuffer {
	gp := params.BlindRotateParameters()
	return &bootstrapBuffer{
		shifted:    NewTLWESample(params),
		product:    NewTLWESample(params),
		extProduct: NewExternalProductBuffer(params, gp),
	}
}

// CMuxAssign computes acc += bki ⊠ ((X^ai − 1)·acc), writing the result
// into accOut (which may alias acc). ai == 0 is a no-op copy, matching
// spec §4.6's "If ā_i = 0 skip" pragma.
func CMuxAssign(acc TLWESample, bki TransformedTGSWSample, ai int, gp GadgetParameters, ev *poly.Evaluator, buf *bootstrapBuffer, accOut TLWESample) {
	if ai == 0 {
		accOut.A.CopyFrom(acc.A)
		accOut.B.CopyFrom(acc.B)
		accOut.CurrentVariance = acc.CurrentVariance
		return
	}

	buf.shifted.A.MulXaiMinusOneAssign(acc.A, ai)
	buf.shifted.B.MulXaiMinusOneAssign(acc.B, ai)

	ExternalProductAssign(bki, buf.shifted, gp, ev, buf.extProduct, buf.product)
	TLWEAddAssign(acc, buf.product, accOut)
}

// BlindRotateAssign rotates acc by sum_i s_i * barA[i] positions,
// iterating CMux over every secret-key bit (spec §4.6). acc is both the
// initial accumulator and the output.
func BlindRotateAssign(bk BootstrapKey, barA []int, params Parameters, ev *poly.Evaluator, buf *bootstrapBuffer, acc TLWESample) {
	gp := params.BlindRotateParameters()
	for i, ai := range barA {
		CMuxAssign(acc, bk.Value[i], ai, gp, ev, buf, acc)
	}
}

// BlindRotateAndExtractAssign starts from ACC = trivial TLWE encrypting
// X^(2N − barB) · v, blind-rotates by barA, and extracts the resulting
// LWE sample (spec §4.6).
func BlindRotateAndExtractAssign(v poly.Poly, bk BootstrapKey, barB int, barA []int, params Parameters, ev *poly.Evaluator, buf *bootstrapBuffer, ctOut LWESample) {
	n := params.PolyDegree()
	twoN := 2 * n

	shiftedV := poly.NewPoly(n)
	shiftedV.MonomialMulAssign(v, (twoN-barB)%twoN)

	acc := NoiselessTrivial(shiftedV, params)
	BlindRotateAssign(bk, barA, params, ev, buf, acc)
	ExtractSampleAssign(acc, ctOut)
}

// BootstrapWithoutKeySwitchAssign computes the bootstrap-without-
// keyswitch step: builds the test polynomial of mu everywhere, maps x's
// mask/body to rotation amounts via ModSwitch, and blind-rotates +
// extracts (spec §4.6, bootstrap_wo_ks).
func BootstrapWithoutKeySwitchAssign(bk BootstrapKey, mu int32, x LWESample, params Parameters, ev *poly.Evaluator, buf *bootstrapBuffer, ctOut LWESample) {
	n := params.PolyDegree()
	twoN := params.LookUpTableSize()

	v := poly.NewPoly(n)
	for i := range v.Coeffs {
		v.Coeffs[i] = mu
	}

	barB := poly.ModSwitch(x.B, twoN)
	barA := make([]int, len(x.A))
	for i, ai := range x.A {
		barA[i] = poly.ModSwitch(ai, twoN)
	}

	BlindRotateAndExtractAssign(v, bk, barB, barA, params, ev, buf, ctOut)
}
