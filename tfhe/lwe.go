package tfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/vec"
)

// LWEKey is a secret LWE key: n bits in {0, 1}.
type LWEKey struct {
	Value []int32
}

// NewLWEKey returns a zeroed LWEKey of the given parameters' dimension.
func NewLWEKey(params Parameters) LWEKey {
	return LWEKey{Value: make([]int32, params.LWEDimension())}
}

// LWESample is a pair (a, b) with b ≈ <a, s> + message + noise.
type LWESample struct {
	A []int32
	B int32

	// CurrentVariance records the noise variance for diagnostics: it is
	// set at fresh encryption and summed by the linear operations; the
	// external product, bootstrapping and key switching do not add
	// their own noise growth to it.
	CurrentVariance float64
}

// NewLWESample returns a zeroed LWESample sized for params.
func NewLWESample(params Parameters) LWESample {
	return LWESample{A: make([]int32, params.LWEDimension())}
}

// Copy returns a deep copy of ct.
func (ct LWESample) Copy() LWESample {
	out := LWESample{A: make([]int32, len(ct.A)), B: ct.B, CurrentVariance: ct.CurrentVariance}
	copy(out.A, ct.A)
	return out
}

// Phase computes b − <a, s>, the raw (noisy) encoded message.
func Phase(ct LWESample, key LWEKey) int32 {
	return ct.B - vec.Dot(ct.A, key.Value)
}

// NoiselessTrivial returns the trivial, zero-noise LWE encryption of m
// under any key of the given dimension: a = 0, b = m.
func NoiselessTrivial(m int32, params Parameters) LWESample {
	ct := NewLWESample(params)
	ct.B = m
	return ct
}

// Encrypt returns a fresh LWE encryption of m under key, with Gaussian
// noise of the key's LWEStdDev.
func Encrypt(m int32, key LWEKey, params Parameters, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler) LWESample {
	ct := NewLWESample(params)
	EncryptAssign(m, key, params, unif, gauss, ct)
	return ct
}

// EncryptAssign is the Assign-form of Encrypt, writing into ctOut.
func EncryptAssign(m int32, key LWEKey, params Parameters, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler, ctOut LWESample) {
	unif.SampleSliceAssign(ctOut.A)
	e := gauss.Sample(params.LWEStdDev())
	ctOut.B = m + e + vec.Dot(ctOut.A, key.Value)
	ctOut.CurrentVariance = params.LWEStdDev() * params.LWEStdDev()
}

// Decrypt recovers the Boolean encoded by ct: true when the phase's
// sign indicates the positive half of the torus (spec §6 message
// encoding: true -> +1/8, false -> -1/8).
func Decrypt(ct LWESample, key LWEKey) bool {
	return Phase(ct, key) > 0
}

// AddAssign computes out = a + b componentwise (mask and body), adding
// variances.
func AddAssign(a, b, out LWESample) {
	vec.AddAssign(a.A, b.A, out.A)
	out.B = a.B + b.B
	out.CurrentVariance = a.CurrentVariance + b.CurrentVariance
}

// SubAssign computes out = a - b componentwise, adding variances.
func SubAssign(a, b, out LWESample) {
	vec.SubAssign(a.A, b.A, out.A)
	out.B = a.B - b.B
	out.CurrentVariance = a.CurrentVariance + b.CurrentVariance
}

// NegAssign computes out = -a.
func NegAssign(a, out LWESample) {
	vec.NegAssign(a.A, out.A)
	out.B = -a.B
	out.CurrentVariance = a.CurrentVariance
}

// AddConstAssign computes out = a + trivial(c).
func AddConstAssign(a LWESample, c int32, out LWESample) {
	vec.CopyAssign(a.A, out.A)
	out.B = a.B + c
	out.CurrentVariance = a.CurrentVariance
}
