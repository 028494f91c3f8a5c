package mktfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
)

// SharedKey is the public randomness common to every party: ℓ uniform
// torus polynomials (spec §3).
type SharedKey struct {
	Value []poly.Poly
}

// NewSharedKey returns a zeroed SharedKey for params.
func NewSharedKey(params Parameters) SharedKey {
	level := params.UniEncParameters().Level()
	v := make([]poly.Poly, level)
	for i := range v {
		v[i] = poly.NewPoly(params.PolyDegree())
	}
	return SharedKey{Value: v}
}

// GenSharedKeyAssign samples fresh public randomness into out. All
// parties must agree on the same SharedKey before generating public
// keys or uni-encryptions.
func GenSharedKeyAssign(params Parameters, unif *csprng.UniformSampler, out SharedKey) {
	for i := range out.Value {
		unif.SampleSliceAssign(out.Value[i].Coeffs)
	}
}

// PublicKey is one party's public commitment to their ring secret key:
// ℓ torus polynomials bᵢ = s·aᵢ + eᵢ (spec §3).
type PublicKey struct {
	Value []poly.Poly
}

// NewPublicKey returns a zeroed PublicKey for params.
func NewPublicKey(params Parameters) PublicKey {
	level := params.UniEncParameters().Level()
	v := make([]poly.Poly, level)
	for i := range v {
		v[i] = poly.NewPoly(params.PolyDegree())
	}
	return PublicKey{Value: v}
}

// GenPublicKeyAssign derives a party's PublicKey from their ring secret
// key and the SharedKey.
func GenPublicKeyAssign(params Parameters, key tfhe.TLWEKey, shared SharedKey, ev *poly.Evaluator, gauss *csprng.GaussianSampler, out PublicKey) {
	gp := params.UniEncParameters()
	e := poly.NewPoly(params.PolyDegree())
	for i := 0; i < gp.Level(); i++ {
		ringMulAssign(ev, key.Value, shared.Value[i], out.Value[i])
		gauss.SamplePolyAssign(params.RingStdDev(), e.Coeffs)
		out.Value[i].AddAssign(out.Value[i], e)
	}
}

// SecretKey is one party's secret material: the ring key used for
// uni-encryption, and the LWE key the party's gate-level ciphertexts
// are ultimately switched down to (spec §6's per-party SecretKey,
// mirroring the single-key SecretKey of tfhe but kept per party).
type SecretKey struct {
	RingKey tfhe.TLWEKey
	GateKey tfhe.LWEKey
}

// NewSecretKey returns a zeroed SecretKey for params.
func NewSecretKey(params Parameters) SecretKey {
	return SecretKey{
		RingKey: tfhe.NewTLWEKey(params.Base()),
		GateKey: tfhe.NewLWEKey(params.Base()),
	}
}

// GenSecretKeyAssign samples a fresh SecretKey's bits into out.
func GenSecretKeyAssign(binary *csprng.BinarySampler, out SecretKey) {
	binary.SampleSliceAssign(out.RingKey.Value.Coeffs)
	binary.SampleSliceAssign(out.GateKey.Value)
}

// CloudKeyPart is everything one party publishes for others to fold
// into an [MKCloudKey]: their public key, a uni-encryption of every bit
// of their gate-level LWE key (the raw material [ExpandAssign] turns into
// bootstrapping-key rows), and their key-switching key (reducing their
// own extracted ring key down to their own GateKey, exactly as in the
// single-key scheme).
type CloudKeyPart struct {
	Public           PublicKey
	BootstrapSamples []UniEncSample
	KeySwitchKey     tfhe.KeySwitchKey
}

// GenCloudKeyPart builds the public contribution of one party from
// their SecretKey and the common SharedKey.
func GenCloudKeyPart(
	params Parameters,
	sk SecretKey,
	shared SharedKey,
	ev *poly.Evaluator,
	unif *csprng.UniformSampler,
	gauss *csprng.GaussianSampler,
) CloudKeyPart {
	base := params.Base()

	pub := NewPublicKey(params)
	GenPublicKeyAssign(params, sk.RingKey, shared, ev, gauss, pub)

	samples := make([]UniEncSample, base.LWEDimension())
	for j, bit := range sk.GateKey.Value {
		samples[j] = NewUniEncSample(params)
		UniEncryptAssign(bit, sk, shared, pub, params, ev, unif, gauss, samples[j])
	}

	extracted := tfhe.ExtractKey(sk.RingKey)
	ksk := tfhe.NewKeySwitchKey(base.PolyDegree(), base)
	tfhe.GenKeySwitchKeyAssign(extracted.Value, sk.GateKey, base, unif, gauss, ksk)

	return CloudKeyPart{Public: pub, BootstrapSamples: samples, KeySwitchKey: ksk}
}

// MKCloudKey is the fully-expanded, public evaluation key combining
// every party's CloudKeyPart: a bootstrapping key usable in multi-key
// blind rotation, and one key-switching key per party (spec §3/§4.8).
type MKCloudKey struct {
	Params Parameters
	Shared SharedKey

	// BootstrapKey[j][p] is the transformed expanded sample for LWE-key
	// position j, owned by party p (spec §4.8's multi-key blind rotate:
	// "calling CMux with BK[j,i]").
	BootstrapKey [][]TransformedExpandedSample

	KeySwitchKeys []tfhe.KeySwitchKey
}

// GenMKCloudKey combines shared randomness and every party's
// CloudKeyPart into the evaluation key used by multi-key bootstrapping.
func GenMKCloudKey(params Parameters, shared SharedKey, parts []CloudKeyPart, ev *poly.Evaluator) MKCloudKey {
	p := params.Parties()
	if len(parts) != p {
		panic("mktfhe: CloudKeyPart count does not match Parties")
	}

	publics := make([]PublicKey, p)
	ksks := make([]tfhe.KeySwitchKey, p)
	for i, part := range parts {
		publics[i] = part.Public
		ksks[i] = part.KeySwitchKey
	}

	n := params.Base().LWEDimension()
	bk := make([][]TransformedExpandedSample, n)
	for j := 0; j < n; j++ {
		bk[j] = make([]TransformedExpandedSample, p)
		for owner := 0; owner < p; owner++ {
			expanded := ExpandAssign(owner, parts[owner].BootstrapSamples[j], publics, params, ev)
			bk[j][owner] = ToFourierExpandedSample(expanded, ev)
		}
	}

	return MKCloudKey{Params: params, Shared: shared, BootstrapKey: bk, KeySwitchKeys: ksks}
}
