package mktfhe

import (
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
)

// mkExternalProductScale is the reciprocal of the combined forward
// scale of an integer decomposition digit (0.5) times a torus row
// (2^-33), doubled for the antisymmetric transform embedding's extra
// factor of 2 on a pointwise product — the same constant tfhe's TGSW
// external product uses.
const mkExternalProductScale = 1 << 33

// ExternalProductAssign computes ctOut = expanded ⊠ ct, the multi-key
// external product of an expanded transformed sample owned by `owner`
// against the multi-key TLWE sample ct, following the newer of the two
// summation patterns in the source material (spec §4.8, §9 open
// question (iii)):
//
//	ctOut.a[i != owner] = Σₗ u_aᵢ[l] · y[l, owner]
//	ctOut.a[owner]      = Σᵢ Σₗ u_aᵢ[l] · y[l, i]  +  Σₗ u_b[l] · c1[l]
//	ctOut.b             = Σᵢ Σₗ u_aᵢ[l] · x[l, i]  +  Σₗ u_b[l] · c0[l]
//
// Per spec's instruction, each dot-product term is inverse-transformed
// individually and accumulated in the integer domain, rather than
// summed in Fourier space first, to keep the dynamic range within
// float64 precision when many terms accumulate.
func ExternalProductAssign(expanded TransformedExpandedSample, ct MKTLWESample, owner int, gp tfhe.GadgetParameters, ev *poly.Evaluator, ctOut MKTLWESample) {
	n := ct.B.Degree()
	level := gp.Level()
	parties := len(ct.A)

	digitsA := make([][]poly.Poly, parties)
	for i := 0; i < parties; i++ {
		digitsA[i] = make([]poly.Poly, level)
		for l := range digitsA[i] {
			digitsA[i][l] = poly.NewPoly(n)
		}
		tfhe.DecomposePolyAssign(ct.A[i], gp, digitsA[i])
	}
	digitsB := make([]poly.Poly, level)
	for l := range digitsB {
		digitsB[l] = poly.NewPoly(n)
	}
	tfhe.DecomposePolyAssign(ct.B, gp, digitsB)

	for p := 0; p < parties; p++ {
		ctOut.A[p].Clear()
	}
	ctOut.B.Clear()

	term := poly.NewPoly(n)
	fd := poly.NewFourierPoly(n)
	fterm := poly.NewFourierPoly(n)

	accumulate := func(u poly.Poly, row poly.FourierPoly, dst poly.Poly) {
		ev.ToFourierPolyAssign(u, 0.5, fd)
		fterm.MulAssign(fd, row)
		ev.ToPolyAssign(fterm, mkExternalProductScale, term)
		dst.AddAssign(dst, term)
	}

	for i := 0; i < parties; i++ {
		for l := 0; l < level; l++ {
			// Every party's digits contribute to a[owner] and b via
			// column i (spec's Σᵢ Σₗ term).
			accumulate(digitsA[i][l], expanded.Y[l][i], ctOut.A[owner])
			accumulate(digitsA[i][l], expanded.X[l][i], ctOut.B)

			// Non-owner slots instead take the owner's column of y,
			// with no cross-party sum (spec's a[i != owner] term).
			if i != owner {
				accumulate(digitsA[i][l], expanded.Y[l][owner], ctOut.A[i])
			}
		}
	}

	for l := 0; l < level; l++ {
		accumulate(digitsB[l], expanded.C1[l], ctOut.A[owner])
		accumulate(digitsB[l], expanded.C0[l], ctOut.B)
	}
}
