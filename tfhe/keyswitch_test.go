package tfhe_test

import (
	"testing"

	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/tfhe"
	"github.com/stretchr/testify/assert"
)

func TestKeySwitchPreservesMessage(t *testing.T) {
	params := tfhe.Params128
	unif := csprng.NewUniformSampler()
	gauss := csprng.NewGaussianSampler()
	binary := csprng.NewBinarySampler()

	inParamsLiteral := params.Literal()
	inParamsLiteral.LWEDimension = params.PolyDegree()
	inParams := inParamsLiteral.Compile()

	inKey := tfhe.NewLWEKey(inParams)
	binary.SampleSliceAssign(inKey.Value)

	outKey := tfhe.NewLWEKey(params)
	binary.SampleSliceAssign(outKey.Value)

	ksk := tfhe.NewKeySwitchKey(params.PolyDegree(), params)
	tfhe.GenKeySwitchKeyAssign(inKey.Value, outKey, params, unif, gauss, ksk)

	ct := tfhe.Encrypt(1<<29, inKey, inParams, unif, gauss)

	out := tfhe.NewLWESample(params)
	tfhe.KeySwitchAssign(ksk, ct, out)

	assert.True(t, tfhe.Decrypt(out, outKey))
}
