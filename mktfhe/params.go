// Package mktfhe implements the Chen–Chillotti–Song multi-key extension
// of the tfhe package: a shared public randomness, per-party public
// keys, uni-encryption and expansion of bootstrapping-key material, and
// the multi-key TLWE/external-product/blind-rotate/key-switch machinery
// that lets P parties jointly evaluate a Boolean circuit over
// ciphertexts encrypted under their own, independent secret keys.
//
// # Errors
//
// As in tfhe, every failure here is a programming error — party-count
// mismatch, wrong-length slices — reported by panicking. There is no
// recoverable error path (spec §7).
package mktfhe

import (
	"github.com/latticegate/tfhe-go/tfhe"
)

// ParametersLiteral configures a multi-key parameter set: a base
// single-key Parameters (supplying n, N, the key-switch gadget, and the
// per-party LWE/GLWE noise), the number of parties, and the ring
// gadget used for uni-encryption/expansion (spec §6: ℓ_bs=4, Bg_bits=7
// for the multi-key variant, distinct from the single-key bootstrap
// gadget).
type ParametersLiteral struct {
	Base    tfhe.ParametersLiteral
	Parties int

	// RingStdDev is σ_rlwe, the noise used for uni-encryption samples.
	RingStdDev float64

	// UniEncParameters is the gadget used by UniEnc/Expand (ℓ_bs, Bg_bits).
	UniEncParameters tfhe.GadgetParametersLiteral
}

// Compile validates the literal and derives the immutable Parameters.
func (l ParametersLiteral) Compile() Parameters {
	switch {
	case l.Parties < 2:
		panic("mktfhe: Parties must be at least 2")
	case l.RingStdDev <= 0:
		panic("mktfhe: RingStdDev must be positive")
	}
	return Parameters{
		base:             l.Base.Compile(),
		parties:          l.Parties,
		ringStdDev:       l.RingStdDev,
		uniEncParameters: l.UniEncParameters.Compile(),
	}
}

// Parameters is the compiled, immutable form of ParametersLiteral,
// safe to share read-only across goroutines (spec §5).
type Parameters struct {
	base    tfhe.Parameters
	parties int

	ringStdDev       float64
	uniEncParameters tfhe.GadgetParameters
}

// Base returns the underlying single-key Parameters (n, N, key-switch
// gadget, fresh-LWE/GLWE noise).
func (p Parameters) Base() tfhe.Parameters { return p.base }

// Parties returns P, the number of parties.
func (p Parameters) Parties() int { return p.parties }

// RingStdDev returns σ_rlwe.
func (p Parameters) RingStdDev() float64 { return p.ringStdDev }

// UniEncParameters returns the gadget parameters used by UniEnc/Expand.
func (p Parameters) UniEncParameters() tfhe.GadgetParameters { return p.uniEncParameters }

// PolyDegree returns N, the shared ring degree.
func (p Parameters) PolyDegree() int { return p.base.PolyDegree() }

// Literal returns a ParametersLiteral equivalent to p.
func (p Parameters) Literal() ParametersLiteral {
	return ParametersLiteral{
		Base:             p.base.Literal(),
		Parties:          p.parties,
		RingStdDev:       p.ringStdDev,
		UniEncParameters: p.uniEncParameters.Literal(),
	}
}

// Params128x2 is a two-party instantiation of the fixed parameter set
// from spec §6, reusing tfhe.Params128 for the single-key primitives
// and adding the multi-key ring gadget (ℓ_bs=4, Bg_bits=7, σ_rlwe=3.29e-10).
var Params128x2 = ParametersLiteral{
	Base:       tfhe.Params128.Literal(),
	Parties:    2,
	RingStdDev: 3.29e-10,
	UniEncParameters: tfhe.GadgetParametersLiteral{
		Base:  1 << 7,
		Level: 4,
	},
}.Compile()
