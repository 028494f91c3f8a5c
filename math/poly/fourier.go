package poly

import (
	"math"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FourierPoly is the negacyclic-transform representation of a length-N
// polynomial modulo X^N+1: N/2 complex bins, carrying exactly the
// degrees of freedom of the N real coefficients (spec §4.2).
type FourierPoly struct {
	Coeffs []complex128
}

// NewFourierPoly returns a zero transformed polynomial sized for degree n.
func NewFourierPoly(n int) FourierPoly {
	return FourierPoly{Coeffs: make([]complex128, n/2)}
}

// AddAssign computes f = a + b.
func (f FourierPoly) AddAssign(a, b FourierPoly) {
	for i := range f.Coeffs {
		f.Coeffs[i] = a.Coeffs[i] + b.Coeffs[i]
	}
}

// SubAssign computes f = a - b.
func (f FourierPoly) SubAssign(a, b FourierPoly) {
	for i := range f.Coeffs {
		f.Coeffs[i] = a.Coeffs[i] - b.Coeffs[i]
	}
}

// MulAssign computes the pointwise product f = a * b, which corresponds
// to negacyclic polynomial multiplication in the coefficient domain.
func (f FourierPoly) MulAssign(a, b FourierPoly) {
	for i := range f.Coeffs {
		f.Coeffs[i] = a.Coeffs[i] * b.Coeffs[i]
	}
}

// MulAddAssign computes f += a * b.
func (f FourierPoly) MulAddAssign(a, b FourierPoly) {
	for i := range f.Coeffs {
		f.Coeffs[i] += a.Coeffs[i] * b.Coeffs[i]
	}
}

// Clear zeroes every bin.
func (f FourierPoly) Clear() {
	for i := range f.Coeffs {
		f.Coeffs[i] = 0
	}
}

// transformPlan is the process-wide cached, read-only context for degree-N
// transforms. It holds nothing but N itself: go-dsp's fft.FFT/fft.IFFT
// recompute their own twiddle factors per call, so the "plan" here exists
// to (a) validate N once, and (b) give every Evaluator sharing that N a
// single, reusable identity to look up in the cache rather than
// re-validating on every transform. Plans are immutable and therefore
// safe to share read-only across Evaluators/goroutines; each Evaluator
// keeps its own mutable scratch buffers (see Evaluator) so concurrent
// callers never contend on shared state beyond this cache's mutex.
type transformPlan struct {
	n int
}

var (
	planCacheMu sync.Mutex
	planCache   = map[int]*transformPlan{}
)

// getPlan returns the cached plan for degree n, constructing it under an
// exclusive lock on a cache miss.
func getPlan(n int) *transformPlan {
	if n <= 0 || n&(n-1) != 0 {
		panic("poly: polynomial degree must be a power of two")
	}

	planCacheMu.Lock()
	defer planCacheMu.Unlock()

	if p, ok := planCache[n]; ok {
		return p
	}
	p := &transformPlan{n: n}
	planCache[n] = p
	return p
}

// CacheStats reports the polynomial degrees with a live transform plan,
// in ascending order, and how many are cached. It exists purely for
// observability of the one piece of process-wide shared state the design
// calls out (spec §5, §9).
func CacheStats() (degrees []int, count int) {
	planCacheMu.Lock()
	defer planCacheMu.Unlock()

	degrees = maps.Keys(planCache)
	slices.Sort(degrees)
	return degrees, len(planCache)
}

// Evaluator performs negacyclic transforms for a fixed polynomial degree.
//
// Evaluator is not safe for concurrent use: it owns scratch buffers that
// every transform call overwrites. Use [Evaluator.ShallowCopy] to hand a
// goroutine its own independent copy; the underlying plan (N only) is
// shared and read-only.
type Evaluator struct {
	plan *transformPlan
	n    int

	padded   []complex128 // length 2N, forward-transform scratch
	spectrum []complex128 // length 2N, inverse-transform scratch
}

// NewEvaluator returns an Evaluator for degree-n polynomials.
func NewEvaluator(n int) *Evaluator {
	return &Evaluator{
		plan:     getPlan(n),
		n:        n,
		padded:   make([]complex128, 2*n),
		spectrum: make([]complex128, 2*n),
	}
}

// ShallowCopy returns an Evaluator with its own scratch buffers, safe to
// use concurrently with the receiver.
func (e *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(e.n)
}

// ToFourierPolyAssign forward-transforms p into fp. scale is applied to
// each coefficient before embedding: use 0.5 for integer (decomposition)
// polynomials and 2^-33 for torus polynomials, per spec §4.2.
func (e *Evaluator) ToFourierPolyAssign(p Poly, scale float64, fp FourierPoly) {
	n := e.n
	for i := 0; i < n; i++ {
		v := float64(p.Coeffs[i]) * scale
		e.padded[i] = complex(v, 0)
		e.padded[n+i] = complex(-v, 0)
	}

	spectrum := fft.FFT(e.padded)

	for k := 0; k < n/2; k++ {
		fp.Coeffs[k] = spectrum[2*k+1]
	}
}

// ToPolyAssign inverse-transforms fp into p.
//
// For a plain round-trip of a single ToFourierPolyAssign call with no
// intervening multiply, outScale is the reciprocal of that one forward
// scale (e.g. 2 for an integer embed at scale 0.5, 2^33 for a torus
// embed at scale 2^-33): the antisymmetric embedding's even-bin zeros
// and conjugate symmetry reconstruct the padded array exactly, so the
// forward and inverse scales simply cancel.
//
// For fp holding the pointwise product of two transformed operands
// (the case used everywhere downstream of a MulAssign/MulAddAssign —
// external product, CMux, TLWE phase, uni-encryption), the antisymmetric
// embedding contributes an extra factor of 2 per operand, so outScale
// must be 1/(2 * scaleA * scaleB), not 1/(scaleA * scaleB): 2 for a
// 0.5-by-0.5 integer product, 2^33 for a 0.5-by-2^-33
// integer-times-torus product as used by the external product — see
// the gadget/TGSW layer for the concrete values used at each call site.
func (e *Evaluator) ToPolyAssign(fp FourierPoly, outScale float64, p Poly) {
	n := e.n

	for i := range e.spectrum {
		e.spectrum[i] = 0
	}
	for k := 0; k < n/2; k++ {
		idx := 2*k + 1
		e.spectrum[idx] = fp.Coeffs[k]
		e.spectrum[(2*n-idx)%(2*n)] = complex(real(fp.Coeffs[k]), -imag(fp.Coeffs[k]))
	}

	out := fft.IFFT(e.spectrum)

	for i := 0; i < n; i++ {
		p.Coeffs[i] = int32(int64(math.Round(real(out[i]) * outScale)))
	}
}

// ToFourierPoly is the allocating counterpart of ToFourierPolyAssign.
func (e *Evaluator) ToFourierPoly(p Poly, scale float64) FourierPoly {
	fp := NewFourierPoly(e.n)
	e.ToFourierPolyAssign(p, scale, fp)
	return fp
}

// ToPoly is the allocating counterpart of ToPolyAssign.
func (e *Evaluator) ToPoly(fp FourierPoly, outScale float64) Poly {
	p := NewPoly(e.n)
	e.ToPolyAssign(fp, outScale, p)
	return p
}

// MulPoly returns the negacyclic product of two integer polynomials,
// computed via the transform (forward scale 0.5 each side; the
// antisymmetric embedding doubles each operand's spectrum, so the
// pointwise product needs outScale 1/(2*0.5*0.5) = 2, not the naive
// 1/(0.5*0.5) = 4). This is the schoolbook-equivalent convolution used
// to cross-check the transform.
func (e *Evaluator) MulPoly(a, b Poly) Poly {
	fa := e.ToFourierPoly(a, 0.5)
	fb := e.ToFourierPoly(b, 0.5)
	prod := NewFourierPoly(e.n)
	prod.MulAssign(fa, fb)
	return e.ToPoly(prod, 2)
}
