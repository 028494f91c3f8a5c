package mktfhe

import "github.com/latticegate/tfhe-go/tfhe"

// KeySwitchAssign reduces ct (one MK-LWE sample per party, each mask at
// the party's extracted ring-key dimension N) down to the gate-level
// key space (dimension n per party), by applying each party's own
// key-switch key to their own slice and summing the results — linear,
// since Σₚ⟨aₚ,sₚ⟩ decomposes party-by-party (spec §4.8's multi-key
// key switch).
func KeySwitchAssign(ksks []tfhe.KeySwitchKey, ct MKLWESample, ctOut MKLWESample) {
	parties := len(ct.A)

	ctOut.B = ct.B
	for p := range ctOut.A {
		for i := range ctOut.A[p] {
			ctOut.A[p][i] = 0
		}
	}

	partial := tfhe.NewLWESample(ksks[0].OutParams)
	for p := 0; p < parties; p++ {
		single := tfhe.LWESample{A: ct.A[p], B: 0}
		tfhe.KeySwitchAssign(ksks[p], single, partial)

		for i := range ctOut.A[p] {
			ctOut.A[p][i] = partial.A[i]
		}
		ctOut.B += partial.B
	}
}
