package mktfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/mktfhe"
	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func threePartySetup(t *testing.T) (mktfhe.Parameters, mktfhe.SharedKey, []mktfhe.SecretKey, []mktfhe.PublicKey, *poly.Evaluator) {
	t.Helper()
	lit := mktfhe.ParametersLiteral{
		Base:       tfhe.Params128.Literal(),
		Parties:    3,
		RingStdDev: 3.29e-10,
		UniEncParameters: tfhe.GadgetParametersLiteral{
			Base:  1 << 7,
			Level: 4,
		},
	}
	params := lit.Compile()
	ev := poly.NewEvaluator(params.PolyDegree())
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()

	shared := mktfhe.NewSharedKey(params)
	mktfhe.GenSharedKeyAssign(params, unif, shared)

	secrets := make([]mktfhe.SecretKey, params.Parties())
	publics := make([]mktfhe.PublicKey, params.Parties())
	for i := range secrets {
		secrets[i] = mktfhe.NewSecretKey(params)
		mktfhe.GenSecretKeyAssign(binary, secrets[i])

		publics[i] = mktfhe.NewPublicKey(params)
		mktfhe.GenPublicKeyAssign(params, secrets[i].RingKey, shared, ev, gauss, publics[i])
	}

	return params, shared, secrets, publics, ev
}

func TestExpandedCMuxZeroBitLeavesAccumulatorUnchanged(t *testing.T) {
	params, shared, secrets, publics, ev := threePartySetup(t)
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()

	owner := 0
	ue := mktfhe.NewUniEncSample(params)
	mktfhe.UniEncryptAssign(0, secrets[owner], shared, publics[owner], params, ev, unif, gauss, ue)

	expanded := mktfhe.ExpandAssign(owner, ue, publics, params, ev)
	transformed := mktfhe.ToFourierExpandedSample(expanded, ev)

	mu := poly.NewPoly(params.PolyDegree())
	for i := range mu.Coeffs {
		mu.Coeffs[i] = 1 << 28
	}
	acc := mktfhe.MKNoiselessTrivial(mu, params)

	buf := mktfhe.NewBootstrapBuffer(params)
	out := mktfhe.NewMKTLWESample(params)
	mktfhe.CMuxAssign(acc, transformed, owner, 17, params.UniEncParameters(), ev, buf, out)

	ringKeys := make([]tfhe.TLWEKey, len(secrets))
	for i, sk := range secrets {
		ringKeys[i] = sk.RingKey
	}
	phase := poly.NewPoly(params.PolyDegree())
	mktfhe.PhaseAssign(out, ringKeys, ev, phase)

	for i := range mu.Coeffs {
		assert.InDelta(t, mu.Coeffs[i], phase.Coeffs[i], 1<<20)
	}
}

func TestExpandedCMuxOneBitRotates(t *testing.T) {
	params, shared, secrets, publics, ev := threePartySetup(t)
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()

	owner := 0
	ue := mktfhe.NewUniEncSample(params)
	mktfhe.UniEncryptAssign(1, secrets[owner], shared, publics[owner], params, ev, unif, gauss, ue)

	expanded := mktfhe.ExpandAssign(owner, ue, publics, params, ev)
	transformed := mktfhe.ToFourierExpandedSample(expanded, ev)

	mu := poly.NewPoly(params.PolyDegree())
	mu.Coeffs[0] = 1 << 28
	acc := mktfhe.MKNoiselessTrivial(mu, params)

	rotatedMu := poly.NewPoly(params.PolyDegree())
	rotatedMu.MonomialMulAssign(mu, 17)

	buf := mktfhe.NewBootstrapBuffer(params)
	out := mktfhe.NewMKTLWESample(params)
	mktfhe.CMuxAssign(acc, transformed, owner, 17, params.UniEncParameters(), ev, buf, out)

	ringKeys := make([]tfhe.TLWEKey, len(secrets))
	for i, sk := range secrets {
		ringKeys[i] = sk.RingKey
	}
	phase := poly.NewPoly(params.PolyDegree())
	mktfhe.PhaseAssign(out, ringKeys, ev, phase)

	for i := range rotatedMu.Coeffs {
		assert.InDelta(t, rotatedMu.Coeffs[i], phase.Coeffs[i], 1<<20)
	}
}
