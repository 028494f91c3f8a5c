package tfhe

import "github.com/latticegate/tfhe-go/math/poly"

// DecomposeAssign performs signed balanced base-B decomposition of a
// single torus coefficient x into gp.Level() digits, each in
// [-Base/2, Base/2), writing digit i into out[i] (spec §4.5).
//
// The rounding offset sum_{i=0..Level} 2^(31 - i*logBase) (Base/2 in
// every digit position, plus half of the last gadget value) is added
// before peeling off digits from the top bits, so that a digit that
// rounds up past
// Base/2 correctly carries into the next-more-significant digit (spec
// §9 design note on signed decomposition edge cases) rather than
// silently wrapping.
func DecomposeAssign(x int32, gp GadgetParameters, out []int32) {
	logBase := gp.LogBase()
	level := gp.Level()

	var offset uint32
	for i := 0; i <= level; i++ {
		offset += uint32(1) << uint(31-i*logBase)
	}

	u := uint32(x) + offset
	base := uint32(gp.Base())
	half := int32(base / 2)

	for i := 0; i < level; i++ {
		shift := uint(32 - (i+1)*logBase)
		digit := int32((u>>shift)&(base-1)) - half
		out[i] = digit
	}
}

// DecomposePolyAssign applies DecomposeAssign coefficientwise to a
// torus polynomial p, writing ℓ integer polynomials into out (which
// must have length gp.Level(), each of degree p.Degree()).
func DecomposePolyAssign(p poly.Poly, gp GadgetParameters, out []poly.Poly) {
	n := p.Degree()
	level := gp.Level()
	digits := make([]int32, level)
	for j := 0; j < n; j++ {
		DecomposeAssign(p.Coeffs[j], gp, digits)
		for i := 0; i < level; i++ {
			out[i].Coeffs[j] = digits[i]
		}
	}
}

// Recompose reconstructs (an approximation of) x from its decomposed
// digits: sum_i digits[i] * g_i. Used by the gadget round-trip property
// (spec §8 property 5) and nowhere on the hot encrypt/bootstrap path.
func Recompose(digits []int32, gp GadgetParameters) int32 {
	var acc int32
	for i, d := range digits {
		acc += d * gp.GadgetValue(i)
	}
	return acc
}
