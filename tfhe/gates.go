package tfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
)

// messageEncodeTrue is the torus encoding of the Boolean true, +1/8 of
// the torus, i.e. 2^29 (spec §6).
const messageEncodeTrue int32 = 1 << 29

// EncodeBool maps a Boolean to its torus encoding: +1/8 for true, −1/8
// for false.
func EncodeBool(m bool) int32 {
	if m {
		return messageEncodeTrue
	}
	return -messageEncodeTrue
}

// DecodeBool maps a phase back to a Boolean by its sign (spec §6:
// "Decryption thresholds on sign of phase").
func DecodeBool(phase int32) bool {
	return phase > 0
}

// RNG bundles the three explicit random sources every randomised routine
// in this package takes, per spec §5 ("The PRNG is an explicit
// parameter... it is never implicit process state").
type RNG struct {
	Uniform  *csprng.UniformSampler
	Binary   *csprng.BinarySampler
	Gaussian *csprng.GaussianSampler
}

// NewRNG returns a freshly-seeded RNG.
func NewRNG() *RNG {
	return &RNG{
		Uniform:  csprng.NewUniformSampler(),
		Binary:   csprng.NewBinarySampler(),
		Gaussian: csprng.NewGaussianSampler(),
	}
}

// SecretKey holds the client-side secrets: the n-dimensional LWE key
// gate ciphertexts live in, and the TLWE ring key the bootstrapping key
// is built under.
type SecretKey struct {
	LWEKey  LWEKey
	TLWEKey TLWEKey
}

// CloudKey holds everything needed to evaluate gates without the secret
// key: the bootstrapping key and the key-switching key.
type CloudKey struct {
	Params       Parameters
	BootstrapKey BootstrapKey
	KeySwitchKey KeySwitchKey
}

// MakeKeyPair samples a fresh secret key and derives its cloud key
// (spec §6: make_key_pair).
func MakeKeyPair(rng *RNG, params Parameters) (SecretKey, CloudKey) {
	sk := SecretKey{
		LWEKey:  NewLWEKey(params),
		TLWEKey: NewTLWEKey(params),
	}
	rng.Binary.SampleSliceAssign(sk.LWEKey.Value)
	rng.Binary.SampleSliceAssign(sk.TLWEKey.Value.Coeffs)

	ev := poly.NewEvaluator(params.PolyDegree())

	bk := NewBootstrapKey(params)
	GenBootstrapKeyAssign(sk.LWEKey, sk.TLWEKey, params, ev, rng.Uniform, rng.Gaussian, bk)

	extracted := ExtractKey(sk.TLWEKey)
	ksk := NewKeySwitchKey(params.PolyDegree(), params)
	GenKeySwitchKeyAssign(extracted.Value, sk.LWEKey, params, rng.Uniform, rng.Gaussian, ksk)

	return sk, CloudKey{Params: params, BootstrapKey: bk, KeySwitchKey: ksk}
}

// EncryptBool returns a fresh encryption of m under the secret key
// (spec §6's encrypt, specialised to the Boolean message space).
func EncryptBool(rng *RNG, sk SecretKey, params Parameters, m bool) LWESample {
	return Encrypt(EncodeBool(m), sk.LWEKey, params, rng.Uniform, rng.Gaussian)
}

// DecryptBool recovers the Boolean encrypted in ct under the secret key
// (spec §6). Decryption never fails (spec §7): it may return the wrong
// bit if noise exceeded budget.
func DecryptBool(sk SecretKey, ct LWESample) bool {
	return DecodeBool(Phase(ct, sk.LWEKey))
}

// Evaluator evaluates Boolean gates using a CloudKey. It is not safe for
// concurrent use; call [Evaluator.ShallowCopy] for a concurrent-safe copy.
type Evaluator struct {
	CloudKey CloudKey
	Params   Parameters

	ev  *poly.Evaluator
	buf *bootstrapBuffer

	extracted LWESample
}

// NewEvaluator returns an Evaluator for ck.
func NewEvaluator(ck CloudKey) *Evaluator {
	params := ck.Params
	return &Evaluator{
		CloudKey:  ck,
		Params:    params,
		ev:        poly.NewEvaluator(params.PolyDegree()),
		buf:       NewBootstrapBuffer(params),
		extracted: LWESample{A: make([]int32, params.PolyDegree())},
	}
}

// ShallowCopy returns an Evaluator with its own scratch buffers, safe to
// use concurrently with the receiver; CloudKey is shared read-only.
func (g *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(g.CloudKey)
}

// bootstrap runs bootstrap-without-keyswitch on bias, then key-switches
// the result back to the input LWE key space, writing into ctOut (spec
// §2's control flow: combine -> bootstrap_wo_ks -> keyswitch).
func (g *Evaluator) bootstrap(bias LWESample, ctOut LWESample) {
	BootstrapWithoutKeySwitchAssign(g.CloudKey.BootstrapKey, messageEncodeTrue, bias, g.Params, g.ev, g.buf, g.extracted)
	KeySwitchAssign(g.CloudKey.KeySwitchKey, g.extracted, ctOut)
}

// combine2 builds trivial(bias) + xCoeff*x + yCoeff*y into dst.
func combine2(x, y LWESample, xCoeff, yCoeff, bias int32, dst LWESample) {
	for i := range dst.A {
		dst.A[i] = xCoeff*x.A[i] + yCoeff*y.A[i]
	}
	dst.B = xCoeff*x.B + yCoeff*y.B + bias
	dst.CurrentVariance = x.CurrentVariance + y.CurrentVariance
}

// GateNAND computes NOT(x AND y).
func (g *Evaluator) GateNAND(x, y LWESample) LWESample {
	out := NewLWESample(g.Params)
	bias := NewLWESample(g.Params)
	combine2(x, y, -1, -1, messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateAND computes x AND y.
func (g *Evaluator) GateAND(x, y LWESample) LWESample {
	out := NewLWESample(g.Params)
	bias := NewLWESample(g.Params)
	combine2(x, y, 1, 1, -messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateOR computes x OR y.
func (g *Evaluator) GateOR(x, y LWESample) LWESample {
	out := NewLWESample(g.Params)
	bias := NewLWESample(g.Params)
	combine2(x, y, 1, 1, messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateXOR computes x XOR y.
func (g *Evaluator) GateXOR(x, y LWESample) LWESample {
	out := NewLWESample(g.Params)
	bias := NewLWESample(g.Params)
	combine2(x, y, 2, 2, 2*messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateXNOR computes NOT(x XOR y).
func (g *Evaluator) GateXNOR(x, y LWESample) LWESample {
	out := NewLWESample(g.Params)
	bias := NewLWESample(g.Params)
	combine2(x, y, -2, -2, -2*messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateNOT computes NOT x. This needs no bootstrap: negation doesn't
// grow the noise budget (spec §6: NOT is a linear combine only).
func (g *Evaluator) GateNOT(x LWESample) LWESample {
	out := NewLWESample(g.Params)
	NegAssign(x, out)
	return out
}

// GateMUX computes cond ? a : b, by composing AND/OR/NOT (spec §6: "by
// composition... MUX").
func (g *Evaluator) GateMUX(cond, a, b LWESample) LWESample {
	notCond := g.GateNOT(cond)
	left := g.GateAND(cond, a)
	right := g.GateAND(notCond, b)
	return g.GateOR(left, right)
}
