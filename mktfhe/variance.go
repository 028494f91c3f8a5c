package mktfhe

// Variance bookkeeping for the multi-key path was left incomplete and
// marked TODO in the source material (spec §9 open question (ii)); the
// formulas below are derived from first principles rather than copied,
// by extending the single-key key-switch bound (spec §4.7: noise
// inflates by ℓₖₛ·n·Bₖₛ·σₖₛ²) additively across parties, since each
// party's key-switch contribution is statistically independent.

// KeySwitchVarianceBound returns the variance a multi-key key switch
// adds, given the per-party key-switch parameters (level ℓₖₛ, base
// Bₖₛ, and noise σₖₛ), the LWE dimension n, and the party count P:
// each of the P independent per-party switches contributes its own
// single-key bound, and independent variances add.
func KeySwitchVarianceBound(parties, lweDimension, ksLevel int, ksBase float64, ksStdDev float64) float64 {
	perParty := float64(ksLevel) * float64(lweDimension) * ksBase * ksStdDev * ksStdDev
	return float64(parties) * perParty
}

// ExternalProductVarianceBound returns an upper bound on the variance a
// single multi-key external product adds to an MK-TLWE sample: each of
// the (P+1)·level decompose-transform-dot terms (P·level from the
// masks, level from the body) contributes independent digit error
// (Bg/2)²/12, scaled by the ring dimension N (the number of
// coefficients the error is independent across), plus the expanded
// sample's own encryption noise ringStdDev² carried through the same
// number of terms.
func ExternalProductVarianceBound(parties, level int, gadgetBase float64, ringStdDev float64, polyDegree int) float64 {
	terms := float64(parties*level + level) // Σᵢ,ₗ term plus the b-side Σₗ term
	roundingPerTerm := (gadgetBase / 2) * (gadgetBase / 2) / 12
	return terms * float64(polyDegree) * (roundingPerTerm + ringStdDev*ringStdDev)
}

// BlindRotateVarianceBound returns an upper bound on the variance
// accumulated by one full multi-key blind rotation: n*P independent
// CMux steps, each adding at most one external product's worth of
// variance (CMux's own anticyclic shift is variance-preserving).
func BlindRotateVarianceBound(lweDimension, parties, level int, gadgetBase, ringStdDev float64, polyDegree int) float64 {
	perCMux := ExternalProductVarianceBound(parties, level, gadgetBase, ringStdDev, polyDegree)
	return float64(lweDimension*parties) * perCMux
}
