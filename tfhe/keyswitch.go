package tfhe

import "github.com/latticegate/tfhe-go/math/csprng"

// KeySwitchKey reduces an LWE sample from an n'-dimensional key space to
// the n-dimensional key space of OutParams. ks[h][j][i] encrypts
// h·s'ᵢ·2^(32 − j·Bₖₛ_bits) under the output key; h=0 is omitted since it
// would encrypt a noiseless zero (spec §3).
type KeySwitchKey struct {
	InputDimension int
	OutParams      Parameters
	KSParams       GadgetParameters

	// Value[i][j][h-1] for i in [0,InputDimension), j in [0,Level),
	// h in [1,Base).
	Value [][][]LWESample
}

// NewKeySwitchKey returns a zeroed KeySwitchKey reducing from inputDim
// down to outParams' dimension.
func NewKeySwitchKey(inputDim int, outParams Parameters) KeySwitchKey {
	gp := outParams.KeySwitchParameters()
	ksk := KeySwitchKey{
		InputDimension: inputDim,
		OutParams:      outParams,
		KSParams:       gp,
		Value:          make([][][]LWESample, inputDim),
	}
	base := int(gp.Base())
	for i := range ksk.Value {
		ksk.Value[i] = make([][]LWESample, gp.Level())
		for j := range ksk.Value[i] {
			ksk.Value[i][j] = make([]LWESample, base-1)
			for h := range ksk.Value[i][j] {
				ksk.Value[i][j][h] = NewLWESample(outParams)
			}
		}
	}
	return ksk
}

// GenKeySwitchKeyAssign encrypts every h·s'ᵢ·2^(32−j·Bₖₛ_bits) under
// skOut, using the key-switching standard deviation of OutParams.
func GenKeySwitchKeyAssign(skIn []int32, skOut LWEKey, outParams Parameters, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler, kskOut KeySwitchKey) {
	gp := outParams.KeySwitchParameters()
	base := int(gp.Base())

	ksParams := outParams
	ksParams.lweStdDev = outParams.keySwitchStdDev

	for i, si := range skIn {
		for j := 0; j < gp.Level(); j++ {
			shift := uint(32 - (j+1)*gp.LogBase())
			for h := 1; h < base; h++ {
				m := int32(h) * si
				m = int32(uint32(m) << shift)
				EncryptAssign(m, skOut, ksParams, unif, gauss, kskOut.Value[i][j][h-1])
				kskOut.Value[i][j][h-1].CurrentVariance = outParams.KeySwitchStdDev() * outParams.KeySwitchStdDev()
			}
		}
	}
}

// keySwitchDecomposeAssign decomposes a into ksp.Level() unsigned
// base-Bₖₛ digits in [0, Bₖₛ), per spec §4.7.
func keySwitchDecomposeAssign(a int32, ksp GadgetParameters, digitsOut []int32) {
	level := ksp.Level()
	logBase := ksp.LogBase()

	offset := uint32(1) << uint(31-level*logBase)
	u := uint32(a) + offset
	base := uint32(ksp.Base())

	for j := 0; j < level; j++ {
		shift := uint(32 - (j+1)*logBase)
		digitsOut[j] = int32((u >> shift) & (base - 1))
	}
}

// KeySwitchAssign reduces ct (encrypted under the ksk.InputDimension-
// sized key) to ctOut (encrypted under ksk.OutParams' key), per spec
// §4.7: ctOut = trivial(ct.B) − Σᵢ Σⱼ ks[digitᵢⱼ, j, i], skipping zero
// digits.
func KeySwitchAssign(ksk KeySwitchKey, ct LWESample, ctOut LWESample) {
	for i := range ctOut.A {
		ctOut.A[i] = 0
	}
	ctOut.B = ct.B
	ctOut.CurrentVariance = ct.CurrentVariance

	digits := make([]int32, ksk.KSParams.Level())
	for i := 0; i < ksk.InputDimension; i++ {
		keySwitchDecomposeAssign(ct.A[i], ksk.KSParams, digits)
		for j, h := range digits {
			if h == 0 {
				continue
			}
			SubAssign(ctOut, ksk.Value[i][j][h-1], ctOut)
		}
	}
}
