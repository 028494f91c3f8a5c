package tfhe

import (
	"github.com/latticegate/tfhe-go/math/csprng"
	"github.com/latticegate/tfhe-go/math/poly"
)

// TGSWSample is a (k+1)×ℓ array of TLWE samples encrypting m·gᵢ, with
// row 0 carrying the offset in the mask (A) polynomial and row 1
// carrying it in the body (B) polynomial — the k=1 case of spec §3's
// TGswSample (see the k=1 note on [TLWEKey]).
type TGSWSample struct {
	// Row 0 (length Level): TLWE(0) with m*g_i added into A.
	// Row 1 (length Level): TLWE(0) with m*g_i added into B.
	Rows [2][]TLWESample
}

// NewTGSWSample returns a zeroed TGSWSample for the given gadget/ring parameters.
func NewTGSWSample(params Parameters, gp GadgetParameters) TGSWSample {
	s := TGSWSample{}
	for j := 0; j < 2; j++ {
		s.Rows[j] = make([]TLWESample, gp.Level())
		for i := range s.Rows[j] {
			s.Rows[j][i] = NewTLWESample(params)
		}
	}
	return s
}

// EncryptTGSWAssign encrypts the integer plaintext polynomial m into ctOut.
func EncryptTGSWAssign(m poly.Poly, key TLWEKey, params Parameters, gp GadgetParameters, ev *poly.Evaluator, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler, ctOut TGSWSample) {
	scaled := poly.NewPoly(params.PolyDegree())
	for i := 0; i < gp.Level(); i++ {
		gi := gp.GadgetValue(i)
		scaled.ScalarMulAssign(m, gi)

		EncryptZeroAssign(key, params, ev, unif, gauss, ctOut.Rows[0][i])
		ctOut.Rows[0][i].A.AddAssign(ctOut.Rows[0][i].A, scaled)

		EncryptZeroAssign(key, params, ev, unif, gauss, ctOut.Rows[1][i])
		ctOut.Rows[1][i].B.AddAssign(ctOut.Rows[1][i].B, scaled)
	}
}

// EncryptConstantAssign encrypts the scalar constant bit (or any small
// integer) m as the TGSW message m (the constant polynomial equal to m),
// the form used to build bootstrapping-key rows from secret-key bits.
func EncryptConstantAssign(m int32, key TLWEKey, params Parameters, gp GadgetParameters, ev *poly.Evaluator, unif *csprng.UniformSampler, gauss *csprng.GaussianSampler, ctOut TGSWSample) {
	mp := poly.NewPoly(params.PolyDegree())
	mp.Coeffs[0] = m
	EncryptTGSWAssign(mp, key, params, gp, ev, unif, gauss, ctOut)
}

// FourierTLWESample is a TLWE sample in the negacyclic-transform domain.
type FourierTLWESample struct {
	A poly.FourierPoly
	B poly.FourierPoly
}

// TransformedTGSWSample is a TGSWSample with every polynomial replaced
// by its negacyclic transform — the representation the bootstrapping
// key is stored in, so that blind rotation never re-transforms it.
type TransformedTGSWSample struct {
	Rows [2][]FourierTLWESample
}

// NewTransformedTGSWSample returns a zeroed TransformedTGSWSample.
func NewTransformedTGSWSample(params Parameters, gp GadgetParameters) TransformedTGSWSample {
	t := TransformedTGSWSample{}
	n := params.PolyDegree()
	for j := 0; j < 2; j++ {
		t.Rows[j] = make([]FourierTLWESample, gp.Level())
		for i := range t.Rows[j] {
			t.Rows[j][i] = FourierTLWESample{A: poly.NewFourierPoly(n), B: poly.NewFourierPoly(n)}
		}
	}
	return t
}

// ToFourierTGSWAssign forward-transforms every polynomial of ct (torus
// scale 2^-33) into ctOut.
func ToFourierTGSWAssign(ct TGSWSample, ev *poly.Evaluator, ctOut TransformedTGSWSample) {
	const torusScale = 1.0 / (1 << 33)
	for j := 0; j < 2; j++ {
		for i := range ct.Rows[j] {
			ev.ToFourierPolyAssign(ct.Rows[j][i].A, torusScale, ctOut.Rows[j][i].A)
			ev.ToFourierPolyAssign(ct.Rows[j][i].B, torusScale, ctOut.Rows[j][i].B)
		}
	}
}

// externalProductScale is 1/(2 * 0.5 * 2^-33) = 2^33: the reciprocal of
// the combined forward scale of an integer decomposition digit (0.5)
// times a torus TGSW row (2^-33), with the extra factor of 2 the
// antisymmetric transform embedding contributes to a pointwise product
// of two transformed operands.
const externalProductScale = 1 << 33

// ExternalProductAssign computes ctOut = bk ⊠ ct, the TGSW×TLWE external
// product: decompose every polynomial of ct with gp, transform each
// digit, dot with bk's transformed rows, and inverse-transform the sum
// (spec §4.5). buf must hold 2*gp.Level() scratch integer polynomials of
// degree ct.A.Degree() (the digits of A, then those of B), reused across
// calls; see NewExternalProductBuffer.
func ExternalProductAssign(bk TransformedTGSWSample, ct TLWESample, gp GadgetParameters, ev *poly.Evaluator, buf []poly.Poly, ctOut TLWESample) {
	n := ct.A.Degree()
	level := gp.Level()

	decomposedA := buf[:level]
	decomposedB := buf[level : 2*level]

	DecomposePolyAssign(ct.A, gp, decomposedA)
	DecomposePolyAssign(ct.B, gp, decomposedB)

	accA := poly.NewFourierPoly(n)
	accB := poly.NewFourierPoly(n)
	fd := poly.NewFourierPoly(n)

	for i := 0; i < level; i++ {
		ev.ToFourierPolyAssign(decomposedA[i], 0.5, fd)
		accA.MulAddAssign(fd, bk.Rows[0][i].A)
		accB.MulAddAssign(fd, bk.Rows[0][i].B)

		ev.ToFourierPolyAssign(decomposedB[i], 0.5, fd)
		accA.MulAddAssign(fd, bk.Rows[1][i].A)
		accB.MulAddAssign(fd, bk.Rows[1][i].B)
	}

	ev.ToPolyAssign(accA, externalProductScale, ctOut.A)
	ev.ToPolyAssign(accB, externalProductScale, ctOut.B)
	ctOut.CurrentVariance = ct.CurrentVariance
}

// NewExternalProductBuffer returns scratch storage sized for
// ExternalProductAssign's buf argument.
func NewExternalProductBuffer(params Parameters, gp GadgetParameters) []poly.Poly {
	buf := make([]poly.Poly, 2*gp.Level())
	for i := range buf {
		buf[i] = poly.NewPoly(params.PolyDegree())
	}
	return buf
}
