package mktfhe

import (
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
)

// bootstrapBuffer holds scratch storage MKBlindRotateAssign reuses
// across CMux calls, mirroring tfhe's bootstrapBuffer.
type bootstrapBuffer struct {
	shifted MKTLWESample
	product MKTLWESample
}

// NewBootstrapBuffer allocates scratch storage for the given parameters.
func NewBootstrapBuffer(params Parameters) *bootstrapBuffer {
	return &bootstrapBuffer{
		shifted: NewMKTLWESample(params),
		product: NewMKTLWESample(params),
	}
}

// CMuxAssign computes acc += BK[j][i] ⊠ ((X^ai − 1)·acc), the
// multi-key analogue of tfhe.CMuxAssign: ai == 0 is a no-op copy
// (spec §4.6's pragma carries over unchanged to the multi-key case).
func CMuxAssign(acc MKTLWESample, bki TransformedExpandedSample, owner int, ai int, gp tfhe.GadgetParameters, ev *poly.Evaluator, buf *bootstrapBuffer, accOut MKTLWESample) {
	if ai == 0 {
		for p := range accOut.A {
			accOut.A[p].CopyFrom(acc.A[p])
		}
		accOut.B.CopyFrom(acc.B)
		return
	}

	MulXaiMinusOneAssign(acc, ai, buf.shifted)
	ExternalProductAssign(bki, buf.shifted, owner, gp, ev, buf.product)
	AddAssign(acc, buf.product, accOut)
}

// BlindRotateAssign rotates acc by Σᵢⱼ sᵢⱼ·barA[j][i] positions,
// iterating CMux over every position j and every party i (spec §4.8:
// "iterates parties i=1..P and positions j=1..n").
func BlindRotateAssign(bk [][]TransformedExpandedSample, barA [][]int, gp tfhe.GadgetParameters, ev *poly.Evaluator, buf *bootstrapBuffer, acc MKTLWESample) {
	n := len(bk)
	parties := len(acc.A)
	for j := 0; j < n; j++ {
		for i := 0; i < parties; i++ {
			CMuxAssign(acc, bk[j][i], i, barA[j][i], gp, ev, buf, acc)
		}
	}
}

// BlindRotateAndExtractAssign starts from ACC = trivial MK-TLWE
// encrypting X^(2N−barB)·v, blind-rotates by barA, and extracts the
// resulting MK-LWE sample.
func BlindRotateAndExtractAssign(v poly.Poly, bk [][]TransformedExpandedSample, barB int, barA [][]int, params Parameters, ev *poly.Evaluator, buf *bootstrapBuffer, ctOut MKLWESample) {
	n := params.PolyDegree()
	twoN := 2 * n

	shiftedV := poly.NewPoly(n)
	shiftedV.MonomialMulAssign(v, (twoN-barB)%twoN)

	acc := MKNoiselessTrivial(shiftedV, params)
	BlindRotateAssign(bk, barA, params.UniEncParameters(), ev, buf, acc)
	ExtractSampleAssign(acc, ctOut)
}

// BootstrapWithoutKeySwitchAssign computes the multi-key
// bootstrap-without-keyswitch step: builds the test polynomial of mu
// everywhere, mod-switches x's masks/body to rotation amounts, and
// blind-rotates + extracts (spec §4.8).
func BootstrapWithoutKeySwitchAssign(ck MKCloudKey, mu int32, x MKLWESample, params Parameters, ev *poly.Evaluator, buf *bootstrapBuffer, ctOut MKLWESample) {
	n := params.PolyDegree()
	twoN := 2 * n

	v := poly.NewPoly(n)
	for i := range v.Coeffs {
		v.Coeffs[i] = mu
	}

	barB := poly.ModSwitch(x.B, twoN)
	parties := len(x.A)
	lweDim := params.Base().LWEDimension()
	barA := make([][]int, lweDim)
	for j := 0; j < lweDim; j++ {
		barA[j] = make([]int, parties)
		for i := 0; i < parties; i++ {
			barA[j][i] = poly.ModSwitch(x.A[i][j], twoN)
		}
	}

	BlindRotateAndExtractAssign(v, ck.BootstrapKey, barB, barA, params, ev, buf, ctOut)
}
