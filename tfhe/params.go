// Package tfhe implements the single-key TFHE gate-bootstrapping
// scheme: LWE/TLWE/TGSW ciphertext algebras, gadget decomposition,
// external product, CMux/blind-rotate, sample extraction, key
// switching, and the Boolean gate API built on top of them.
//
// # Errors
//
// Every failure in this package is a programming error — mismatched
// parameter sets, wrong-length slices, a non power-of-two degree — and
// is reported by panicking with a descriptive message. There is no
// recoverable error path (spec §7): callers are expected to construct
// parameters once, validate them at that point, and never again worry
// about dimension mismatches at the call site.
package tfhe

import (
	"math"

	"github.com/latticegate/tfhe-go/math/num"
)

// GadgetParametersLiteral configures a gadget decomposition: base‑B
// signed balanced decomposition into Level digits.
//
// # Warning
//
// Unless you are a cryptographic expert, do not set these yourself —
// use one of the predefined Parameters (Params128, mktfhe.Params128x2).
type GadgetParametersLiteral struct {
	// Base is the decomposition base. Must be a power of two.
	Base int32
	// Level is the number of digits kept (ℓ in spec §3/§4.5).
	Level int
}

// Compile validates the literal and derives the read-only
// GadgetParameters, panicking on any violated invariant.
func (l GadgetParametersLiteral) Compile() GadgetParameters {
	switch {
	case l.Base < 2:
		panic("tfhe: gadget base smaller than two")
	case !num.IsPowerOfTwo(l.Base):
		panic("tfhe: gadget base not a power of two")
	case l.Level <= 0:
		panic("tfhe: gadget level not positive")
	case num.Log2(l.Base)*l.Level >= 32:
		panic("tfhe: gadget base^level does not fit in the torus")
	}
	return GadgetParameters{
		base:    l.Base,
		logBase: num.Log2(l.Base),
		level:   l.Level,
	}
}

// GadgetParameters is the compiled, read-only form of
// GadgetParametersLiteral: the gadget vector g with gᵢ = 2^(32 − i·logBase).
type GadgetParameters struct {
	base    int32
	logBase int
	level   int
}

// Base returns the decomposition base.
func (p GadgetParameters) Base() int32 { return p.base }

// LogBase returns log2(Base).
func (p GadgetParameters) LogBase() int { return p.logBase }

// Level returns ℓ, the number of digits kept.
func (p GadgetParameters) Level() int { return p.level }

// GadgetValue returns gᵢ = 2^(32 − (i+1)·logBase) for i in [0, Level).
func (p GadgetParameters) GadgetValue(i int) int32 {
	return int32(uint32(1) << uint(32-(i+1)*p.logBase))
}

// Literal returns a GadgetParametersLiteral equivalent to p.
func (p GadgetParameters) Literal() GadgetParametersLiteral {
	return GadgetParametersLiteral{Base: p.base, Level: p.level}
}

// ParametersLiteral is the uncompiled, human-authored form of a full
// TFHE parameter set (spec §3, §6).
//
// # Warning
//
// Unless you are a cryptographic expert, do not set these yourself —
// use one of the predefined Parameters (Params128, mktfhe.Params128x2).
type ParametersLiteral struct {
	// LWEDimension is n, the LWE lattice dimension.
	LWEDimension int
	// PolyDegree is N, the ring degree (power of two).
	PolyDegree int

	// LWEStdDev is σ_max, the standard deviation used for fresh LWE
	// encryption noise (normalized, a fraction of the torus).
	LWEStdDev float64
	// GLWEStdDev is σ_bs, the standard deviation used for TLWE/TGSW
	// encryption noise (bootstrapping key, fresh TLWE samples).
	GLWEStdDev float64
	// KeySwitchStdDev is σ_ks, the standard deviation used for
	// key-switching key encryption noise.
	KeySwitchStdDev float64

	// BlindRotateParameters is the gadget used by the bootstrapping key
	// (TGSW samples), ℓ=2, Bg=2^10 in the default parameter set.
	BlindRotateParameters GadgetParametersLiteral
	// KeySwitchParameters is the gadget used by the key-switching key,
	// ℓ=8, B=2^2 in the default parameter set.
	KeySwitchParameters GadgetParametersLiteral
}

// Compile validates the literal and derives the immutable, read-only
// Parameters, panicking on any violated invariant.
func (l ParametersLiteral) Compile() Parameters {
	switch {
	case l.LWEDimension <= 0:
		panic("tfhe: LWEDimension not positive")
	case !num.IsPowerOfTwo(l.PolyDegree):
		panic("tfhe: PolyDegree not a power of two")
	case l.LWEStdDev <= 0 || l.GLWEStdDev <= 0 || l.KeySwitchStdDev <= 0:
		panic("tfhe: standard deviations must be positive")
	}

	return Parameters{
		lweDimension: l.LWEDimension,
		polyDegree:   l.PolyDegree,

		lweStdDev:       l.LWEStdDev,
		glweStdDev:      l.GLWEStdDev,
		keySwitchStdDev: l.KeySwitchStdDev,

		blindRotateParameters: l.BlindRotateParameters.Compile(),
		keySwitchParameters:   l.KeySwitchParameters.Compile(),
	}
}

// Parameters is the compiled, immutable form of ParametersLiteral.
// It is safe to share read-only across goroutines (spec §5).
type Parameters struct {
	lweDimension int
	polyDegree   int

	lweStdDev       float64
	glweStdDev      float64
	keySwitchStdDev float64

	blindRotateParameters GadgetParameters
	keySwitchParameters   GadgetParameters
}

// LWEDimension returns n.
func (p Parameters) LWEDimension() int { return p.lweDimension }

// PolyDegree returns N.
func (p Parameters) PolyDegree() int { return p.polyDegree }

// LookUpTableSize returns 2N, the number of rotation positions a blind
// rotation can address.
func (p Parameters) LookUpTableSize() int { return 2 * p.polyDegree }

// LWEStdDev returns σ_max.
func (p Parameters) LWEStdDev() float64 { return p.lweStdDev }

// GLWEStdDev returns σ_bs.
func (p Parameters) GLWEStdDev() float64 { return p.glweStdDev }

// KeySwitchStdDev returns σ_ks.
func (p Parameters) KeySwitchStdDev() float64 { return p.keySwitchStdDev }

// BlindRotateParameters returns the bootstrapping-key gadget parameters.
func (p Parameters) BlindRotateParameters() GadgetParameters { return p.blindRotateParameters }

// KeySwitchParameters returns the key-switching-key gadget parameters.
func (p Parameters) KeySwitchParameters() GadgetParameters { return p.keySwitchParameters }

// Literal returns a ParametersLiteral equivalent to p.
func (p Parameters) Literal() ParametersLiteral {
	return ParametersLiteral{
		LWEDimension:          p.lweDimension,
		PolyDegree:            p.polyDegree,
		LWEStdDev:             p.lweStdDev,
		GLWEStdDev:            p.glweStdDev,
		KeySwitchStdDev:       p.keySwitchStdDev,
		BlindRotateParameters: p.blindRotateParameters.Literal(),
		KeySwitchParameters:   p.keySwitchParameters.Literal(),
	}
}

// sigmaUnit is the common (2/π)^0.5 factor shared by every standard
// deviation in the 128-bit parameter set (spec §6).
var sigmaUnit = math.Sqrt(2 / math.Pi)

// Params128 is the fixed, ~128-bit-security parameter set from spec §6:
// n=500, N=1024, k=1 (k is implicit — this package only ever
// implements the k=1 case, see SPEC_FULL.md §7.1), bootstrap gadget
// (ℓ=2, Bg=2^10), key-switch gadget (ℓ=8, B=2^2).
var Params128 = ParametersLiteral{
	LWEDimension: 500,
	PolyDegree:   1024,

	LWEStdDev:       math.Exp2(-6) * sigmaUnit,
	GLWEStdDev:      9e-9 * sigmaUnit,
	KeySwitchStdDev: math.Exp2(-15) * sigmaUnit,

	BlindRotateParameters: GadgetParametersLiteral{
		Base:  1 << 10,
		Level: 2,
	},
	KeySwitchParameters: GadgetParametersLiteral{
		Base:  1 << 2,
		Level: 8,
	},
}.Compile()
