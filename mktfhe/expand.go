package mktfhe

import (
	"github.com/latticegate/tfhe-go/math/poly"
	"github.com/latticegate/tfhe-go/tfhe"
)

// ExpandedSample is the result of [ExpandAssign]: a CMux-ready sample
// for one LWE-key bit, usable against the multi-key TLWE ciphertext of
// every party, owned by a single party (spec §3, §4.8).
type ExpandedSample struct {
	// X, Y are ℓ×P matrices of torus polynomials.
	X, Y [][]poly.Poly
	// C0, C1 are length-ℓ vectors, carried over from the owner's UniEnc.
	C0, C1 []poly.Poly
}

// TransformedExpandedSample is ExpandedSample with every polynomial
// replaced by its negacyclic transform, the form the bootstrapping key
// is stored in.
type TransformedExpandedSample struct {
	X, Y   [][]poly.FourierPoly
	C0, C1 []poly.FourierPoly
}

// ExpandAssign builds the expanded sample for LWE-key position j owned
// by party `owner`, from that party's uni-encryption of the
// corresponding secret-key bit and the public keys of every party
// (spec §4.8 Expand).
func ExpandAssign(owner int, ue UniEncSample, publics []PublicKey, params Parameters, ev *poly.Evaluator) ExpandedSample {
	gp := params.UniEncParameters()
	level := gp.Level()
	p := params.Parties()
	n := params.PolyDegree()

	x := make([][]poly.Poly, level)
	y := make([][]poly.Poly, level)
	for j := 0; j < level; j++ {
		x[j] = make([]poly.Poly, p)
		y[j] = make([]poly.Poly, p)
		for q := 0; q < p; q++ {
			x[j][q] = poly.NewPoly(n)
			y[j][q] = poly.NewPoly(n)
		}
	}

	diff := poly.NewPoly(n)
	u := make([]poly.Poly, level)
	for l := range u {
		u[l] = poly.NewPoly(n)
	}
	term := poly.NewPoly(n)

	for j := 0; j < level; j++ {
		for q := 0; q < p; q++ {
			if q == owner {
				x[j][q].CopyFrom(ue.D0[j])
				y[j][q].CopyFrom(ue.D1[j])
				continue
			}

			diff.SubAssign(publics[q].Value[j], publics[owner].Value[j])
			tfhe.DecomposePolyAssign(diff, gp, u)

			x[j][q].CopyFrom(ue.D0[j])
			y[j][q].Clear()
			for l := 0; l < level; l++ {
				ringMulAssign(ev, u[l], ue.F0[l], term)
				x[j][q].AddAssign(x[j][q], term)

				ringMulAssign(ev, u[l], ue.F1[l], term)
				y[j][q].AddAssign(y[j][q], term)
			}
		}
	}

	c0 := make([]poly.Poly, level)
	c1 := make([]poly.Poly, level)
	for j := 0; j < level; j++ {
		c0[j] = ue.C0[j].Copy()
		c1[j] = ue.C1[j].Copy()
	}

	return ExpandedSample{X: x, Y: y, C0: c0, C1: c1}
}

// ToFourierExpandedSample forward-transforms every polynomial of es.
func ToFourierExpandedSample(es ExpandedSample, ev *poly.Evaluator) TransformedExpandedSample {
	const torusScale = 1.0 / (1 << 33)

	level := len(es.C0)
	parties := 0
	if level > 0 {
		parties = len(es.X[0])
	}

	t := TransformedExpandedSample{
		X:  make([][]poly.FourierPoly, level),
		Y:  make([][]poly.FourierPoly, level),
		C0: make([]poly.FourierPoly, level),
		C1: make([]poly.FourierPoly, level),
	}
	for j := 0; j < level; j++ {
		t.X[j] = make([]poly.FourierPoly, parties)
		t.Y[j] = make([]poly.FourierPoly, parties)
		for q := 0; q < parties; q++ {
			t.X[j][q] = ev.ToFourierPoly(es.X[j][q], torusScale)
			t.Y[j][q] = ev.ToFourierPoly(es.Y[j][q], torusScale)
		}
		t.C0[j] = ev.ToFourierPoly(es.C0[j], torusScale)
		t.C1[j] = ev.ToFourierPoly(es.C1[j], torusScale)
	}
	return t
}
