package tfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func setupTestKeys(t *testing.T) (tfhe.Parameters, *poly.Evaluator, tfhe.LWEKey, tfhe.TLWEKey, tfhe.BootstrapKey) {
	t.Helper()
	params := tfhe.Params128
	ev := poly.NewEvaluator(params.PolyDegree())
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()

	lweKey := tfhe.NewLWEKey(params)
	binary.SampleSliceAssign(lweKey.Value)
	tlweKey := tfhe.NewTLWEKey(params)
	binary.SampleSliceAssign(tlweKey.Value.Coeffs)

	bk := tfhe.NewBootstrapKey(params)
	tfhe.GenBootstrapKeyAssign(lweKey, tlweKey, params, ev, unif, gauss, bk)

	return params, ev, lweKey, tlweKey, bk
}

func TestExternalProductZeroBitGivesZero(t *testing.T) {
	params, ev, _, tlweKey, _ := setupTestKeys(t)
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	gp := params.BlindRotateParameters()

	bit := tfhe.NewTGSWSample(params, gp)
	tfhe.EncryptConstantAssign(0, tlweKey, params, gp, ev, unif, gauss, bit)
	tbit := tfhe.NewTransformedTGSWSample(params, gp)
	tfhe.ToFourierTGSWAssign(bit, ev, tbit)

	mu := poly.NewPoly(params.PolyDegree())
	mu.Coeffs[0] = 1 << 29
	ct := tfhe.NoiselessTrivial(mu, params)

	buf := tfhe.NewExternalProductBuffer(params, gp)
	out := tfhe.NewTLWESample(params)
	tfhe.ExternalProductAssign(tbit, ct, gp, ev, buf, out)

	phase := poly.NewPoly(params.PolyDegree())
	tfhe.PhaseAssign(out, tlweKey, ev, phase)
	assert.InDelta(t, int32(0), phase.Coeffs[0], 1<<20)
}

func TestExternalProductOneBitPreservesMessage(t *testing.T) {
	params, ev, _, tlweKey, _ := setupTestKeys(t)
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	gp := params.BlindRotateParameters()

	bit := tfhe.NewTGSWSample(params, gp)
	tfhe.EncryptConstantAssign(1, tlweKey, params, gp, ev, unif, gauss, bit)
	tbit := tfhe.NewTransformedTGSWSample(params, gp)
	tfhe.ToFourierTGSWAssign(bit, ev, tbit)

	mu := poly.NewPoly(params.PolyDegree())
	mu.Coeffs[0] = 1 << 29
	ct := tfhe.NoiselessTrivial(mu, params)

	buf := tfhe.NewExternalProductBuffer(params, gp)
	out := tfhe.NewTLWESample(params)
	tfhe.ExternalProductAssign(tbit, ct, gp, ev, buf, out)

	phase := poly.NewPoly(params.PolyDegree())
	tfhe.PhaseAssign(out, tlweKey, ev, phase)
	assert.InDelta(t, int32(1<<29), phase.Coeffs[0], 1<<20)
}

func TestCMuxZeroRotationIsNoOp(t *testing.T) {
	params, ev, _, tlweKey, _ := setupTestKeys(t)
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	gp := params.BlindRotateParameters()
	buf := tfhe.NewBootstrapBuffer(params)

	muOne := poly.NewPoly(params.PolyDegree())
	for i := range muOne.Coeffs {
		muOne.Coeffs[i] = 1 << 28
	}

	acc := tfhe.NoiselessTrivial(muOne, params)

	bitZero := tfhe.NewTGSWSample(params, gp)
	tfhe.EncryptConstantAssign(0, tlweKey, params, gp, ev, unif, gauss, bitZero)
	tBitZero := tfhe.NewTransformedTGSWSample(params, gp)
	tfhe.ToFourierTGSWAssign(bitZero, ev, tBitZero)

	out := tfhe.NewTLWESample(params)
	tfhe.CMuxAssign(acc, tBitZero, 0, gp, ev, buf, out)
	phase := poly.NewPoly(params.PolyDegree())
	tfhe.PhaseAssign(out, tlweKey, ev, phase)
	for i := range phase.Coeffs {
		assert.InDelta(t, muOne.Coeffs[i], phase.Coeffs[i], 1<<20)
	}
}

func TestBootstrapWithoutKeySwitchRefreshesMessage(t *testing.T) {
	params, ev, lweKey, tlweKey, bk := setupTestKeys(t)
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	extractedKey := tfhe.ExtractKey(tlweKey)

	noisy := tfhe.Encrypt(1<<29, lweKey, params, unif, gauss)
	buf := tfhe.NewBootstrapBuffer(params)
	out := tfhe.LWESample{A: make([]int32, params.PolyDegree())}
	tfhe.BootstrapWithoutKeySwitchAssign(bk, 1<<29, noisy, params, ev, buf, out)

	assert.True(t, tfhe.Decrypt(out, extractedKey))
}
