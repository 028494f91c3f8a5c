package tfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func TestTLWEEncryptDecryptRoundTrip(t *testing.T) {
	params := tfhe.Params128
	ev := poly.NewEvaluator(params.PolyDegree())
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()

	key := tfhe.NewTLWEKey(params)
	binary.SampleSliceAssign(key.Value.Coeffs)

	mu := poly.NewPoly(params.PolyDegree())
	for i := range mu.Coeffs {
		mu.Coeffs[i] = int32(1) << 29
	}

	ct := tfhe.NewTLWESample(params)
	tfhe.EncryptAssign(mu, key, params, ev, unif, gauss, ct)

	phase := poly.NewPoly(params.PolyDegree())
	tfhe.PhaseAssign(ct, key, ev, phase)

	for i := range mu.Coeffs {
		assert.InDelta(t, mu.Coeffs[i], phase.Coeffs[i], 1<<20)
	}
}

func TestExtractSample(t *testing.T) {
	params := tfhe.Params128
	ev := poly.NewEvaluator(params.PolyDegree())
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()

	key := tfhe.NewTLWEKey(params)
	binary.SampleSliceAssign(key.Value.Coeffs)
	lweKey := tfhe.ExtractKey(key)

	mu := poly.NewPoly(params.PolyDegree())
	mu.Coeffs[0] = 1 << 29

	ct := tfhe.NewTLWESample(params)
	tfhe.EncryptAssign(mu, key, params, ev, unif, gauss, ct)

	extracted := tfhe.ExtractSample(ct, params)
	assert.True(t, tfhe.Decrypt(extracted, lweKey))
}

func TestTLWEMulXaiMinusOneZeroShiftGivesZero(t *testing.T) {
	params := tfhe.Params128
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()
	ev := poly.NewEvaluator(params.PolyDegree())

	key := tfhe.NewTLWEKey(params)
	binary.SampleSliceAssign(key.Value.Coeffs)

	mu := poly.NewPoly(params.PolyDegree())
	mu.Coeffs[3] = 1 << 28

	ct := tfhe.NewTLWESample(params)
	tfhe.EncryptAssign(mu, key, params, ev, unif, gauss, ct)

	shifted := tfhe.NewTLWESample(params)
	tfhe.MulXaiMinusOneAssign(ct, 0, shifted)

	for i := range shifted.A.Coeffs {
		assert.Equal(t, int32(0), shifted.A.Coeffs[i])
	}
	for i := range shifted.B.Coeffs {
		assert.Equal(t, int32(0), shifted.B.Coeffs[i])
	}
}
