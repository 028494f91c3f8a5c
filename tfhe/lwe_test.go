package tfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func TestLWEEncryptDecryptRoundTrip(t *testing.T) {
	params := tfhe.Params128
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()

	key := tfhe.NewLWEKey(params)
	binary.SampleSliceAssign(key.Value)

	for _, m := range []bool{true, false} {
		for i := 0; i < 20; i++ {
			ct := tfhe.Encrypt(tfhe.EncodeBool(m), key, params, unif, gauss)
			assert.Equal(t, m, tfhe.Decrypt(ct, key))
		}
	}
}

func TestLWENoiselessTrivial(t *testing.T) {
	params := tfhe.Params128
	key := tfhe.NewLWEKey(params)

	ct := tfhe.NoiselessTrivial(tfhe.EncodeBool(true), params)
	assert.True(t, tfhe.Decrypt(ct, key))
}

func TestLWEAddSubNeg(t *testing.T) {
	params := tfhe.Params128
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()

	key := tfhe.NewLWEKey(params)
	binary.SampleSliceAssign(key.Value)

	a := tfhe.Encrypt(1<<28, key, params, unif, gauss)
	b := tfhe.Encrypt(1<<28, key, params, unif, gauss)

	sum := tfhe.NewLWESample(params)
	tfhe.AddAssign(a, b, sum)
	assert.InDelta(t, int32(1<<29), tfhe.Phase(sum, key), 1<<20)

	diff := tfhe.NewLWESample(params)
	tfhe.SubAssign(a, b, diff)
	assert.InDelta(t, int32(0), tfhe.Phase(diff, key), 1<<20)

	neg := tfhe.NewLWESample(params)
	tfhe.NegAssign(a, neg)
	assert.InDelta(t, -int32(1<<28), tfhe.Phase(neg, key), 1<<20)
}
