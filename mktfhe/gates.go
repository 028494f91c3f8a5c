package mktfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
)

// messageEncodeTrue is the torus encoding of Boolean true under the
// multi-key message space M=8 (spec §4.8: "message-space M = 8 and
// μ = encode(1, 8)"), i.e. +1/8 of the torus — numerically identical to
// the single-key encoding, carried over unchanged.
const messageEncodeTrue int32 = 1 << 29

// Setup bundles the per-party secrets and the resulting public
// evaluation key for a completed multi-key ceremony.
type Setup struct {
	Params   Parameters
	Shared   SharedKey
	Secrets  []SecretKey
	CloudKey MKCloudKey
}

// MakeSetup runs the full multi-key ceremony: every party samples a
// SecretKey, derives a CloudKeyPart against the common SharedKey, and
// the parts are combined into one MKCloudKey (spec §6's make_key_pair,
// generalised to P parties).
func MakeSetup(rngs []*tfhe.RNG, params Parameters) Setup {
	p := params.Parties()
	if len(rngs) != p {
		panic("mktfhe: one RNG required per party")
	}

	shared := NewSharedKey(params)
	GenSharedKeyAssign(params, rngs[0].Uniform, shared)

	secrets := make([]SecretKey, p)
	parts := make([]CloudKeyPart, p)
	ev := poly.NewEvaluator(params.PolyDegree())
	for i := 0; i < p; i++ {
		secrets[i] = NewSecretKey(params)
		GenSecretKeyAssign(rngs[i].Binary, secrets[i])
		parts[i] = GenCloudKeyPart(params, secrets[i], shared, ev, rngs[i].Uniform, rngs[i].Gaussian)
	}

	ck := GenMKCloudKey(params, shared, parts, ev)
	return Setup{Params: params, Shared: shared, Secrets: secrets, CloudKey: ck}
}

// Encrypt returns a fresh MK-LWE encryption of m under party `party`'s
// GateKey: their own mask slot carries real randomness, every other
// party's slot is zero (spec §6's encrypt, generalised: a freshly
// encrypted ciphertext only "belongs" to its author until a gate joins
// it with another party's ciphertext).
func Encrypt(rng *csprng.UniformSampler, gauss *csprng.GaussianSampler, sk SecretKey, party int, params Parameters, m bool) MKLWESample {
	base := params.Base()
	ct := NewMKLWESample(params.Parties(), base.LWEDimension())

	single := tfhe.Encrypt(encodeBool(m), sk.GateKey, base, rng, gauss)
	ct.A[party] = single.A
	ct.B = single.B
	ct.CurrentVariance = single.CurrentVariance
	return ct
}

func encodeBool(m bool) int32 {
	if m {
		return messageEncodeTrue
	}
	return -messageEncodeTrue
}

// Decrypt recovers the Boolean encrypted in ct, given every party's
// secret key, by summing each party's contribution to the phase (spec
// §6 decrypt, generalised to P parties).
func Decrypt(secrets []SecretKey, ct MKLWESample) bool {
	phase := ct.B
	for p, sk := range secrets {
		var dot int32
		for i, ai := range ct.A[p] {
			dot += ai * sk.GateKey.Value[i]
		}
		phase -= dot
	}
	return phase > 0
}

// Evaluator evaluates multi-key Boolean gates using an MKCloudKey. Not
// safe for concurrent use; see [Evaluator.ShallowCopy].
type Evaluator struct {
	CloudKey MKCloudKey
	Params   Parameters

	ev  *poly.Evaluator
	buf *bootstrapBuffer

	extracted MKLWESample
}

// NewEvaluator returns an Evaluator for ck.
func NewEvaluator(ck MKCloudKey) *Evaluator {
	params := ck.Params
	return &Evaluator{
		CloudKey:  ck,
		Params:    params,
		ev:        poly.NewEvaluator(params.PolyDegree()),
		buf:       NewBootstrapBuffer(params),
		extracted: NewMKLWESample(params.Parties(), params.PolyDegree()),
	}
}

// ShallowCopy returns an Evaluator with its own scratch buffers, safe
// to use concurrently with the receiver; CloudKey is shared read-only.
func (g *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(g.CloudKey)
}

func (g *Evaluator) bootstrap(bias MKLWESample, ctOut MKLWESample) {
	BootstrapWithoutKeySwitchAssign(g.CloudKey, messageEncodeTrue, bias, g.Params, g.ev, g.buf, g.extracted)
	KeySwitchAssign(g.CloudKey.KeySwitchKeys, g.extracted, ctOut)
}

// combine builds trivial(bias) + coeff*(x+y) into dst, componentwise
// over every party's mask.
func combine(x, y MKLWESample, coeff, bias int32, dst MKLWESample) {
	for p := range dst.A {
		for i := range dst.A[p] {
			dst.A[p][i] = coeff * (x.A[p][i] + y.A[p][i])
		}
	}
	dst.B = coeff*(x.B+y.B) + bias
}

func (g *Evaluator) newSample() MKLWESample {
	return NewMKLWESample(g.Params.Parties(), g.Params.Base().LWEDimension())
}

// GateNAND computes NOT(x AND y) (spec §4.8: NAND(x,y) = bootstrap(CK,
// μ, trivial(1/8) − x − y)).
func (g *Evaluator) GateNAND(x, y MKLWESample) MKLWESample {
	out := g.newSample()
	bias := g.newSample()
	combine(x, y, -1, messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateAND computes x AND y.
func (g *Evaluator) GateAND(x, y MKLWESample) MKLWESample {
	out := g.newSample()
	bias := g.newSample()
	combine(x, y, 1, -messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateOR computes x OR y.
func (g *Evaluator) GateOR(x, y MKLWESample) MKLWESample {
	out := g.newSample()
	bias := g.newSample()
	combine(x, y, 1, messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateXOR computes x XOR y.
func (g *Evaluator) GateXOR(x, y MKLWESample) MKLWESample {
	out := g.newSample()
	bias := g.newSample()
	combine(x, y, 2, 2*messageEncodeTrue, bias)
	g.bootstrap(bias, out)
	return out
}

// GateNOT computes NOT x, a linear negation needing no bootstrap.
func (g *Evaluator) GateNOT(x MKLWESample) MKLWESample {
	out := g.newSample()
	for p := range out.A {
		for i := range out.A[p] {
			out.A[p][i] = -x.A[p][i]
		}
	}
	out.B = -x.B
	return out
}

// GateMUX computes cond ? a : b by composing AND/OR/NOT.
func (g *Evaluator) GateMUX(cond, a, b MKLWESample) MKLWESample {
	notCond := g.GateNOT(cond)
	left := g.GateAND(cond, a)
	right := g.GateAND(notCond, b)
	return g.GateOR(left, right)
}
