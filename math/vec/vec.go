// Package vec implements flat vector arithmetic over torus-valued
// (int32, wrapping mod 2^32) and plain integer slices.
//
// Functions either write into a caller-supplied destination (Assign) or
// modify their argument in place (InPlace), following the teacher's
// buffer-reuse convention; Dot returns a scalar.
package vec

import "golang.org/x/sys/cpu"

// hasAVX2 is probed once at init; Dot uses it to pick a 4-wide unrolled
// accumulation loop on CPUs that can retire it efficiently, or a plain
// loop otherwise. Both paths compute the identical wrapping-arithmetic
// result — this only changes instruction scheduling, never semantics.
var hasAVX2 = cpu.X86.HasAVX2

// AddAssign computes dst[i] = a[i] + b[i] for torus-valued slices.
func AddAssign(a, b, dst []int32) {
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

// SubAssign computes dst[i] = a[i] - b[i] for torus-valued slices.
func SubAssign(a, b, dst []int32) {
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

// NegAssign computes dst[i] = -a[i].
func NegAssign(a, dst []int32) {
	for i := range a {
		dst[i] = -a[i]
	}
}

// Dot computes the torus dot product sum(a[i]*s[i]) with 32-bit wraparound,
// matching LWE phase computation b - <a,s>.
func Dot(a []int32, s []int32) int32 {
	if len(a) != len(s) {
		panic("vec.Dot: length mismatch")
	}
	if hasAVX2 {
		return dotUnrolled(a, s)
	}
	return dotPlain(a, s)
}

func dotPlain(a, s []int32) int32 {
	var acc int32
	for i := range a {
		acc += a[i] * s[i]
	}
	return acc
}

// dotUnrolled computes the same sum as dotPlain, four lanes at a time.
func dotUnrolled(a, s []int32) int32 {
	n := len(a)
	var acc0, acc1, acc2, acc3 int32
	i := 0
	for ; i+4 <= n; i += 4 {
		acc0 += a[i] * s[i]
		acc1 += a[i+1] * s[i+1]
		acc2 += a[i+2] * s[i+2]
		acc3 += a[i+3] * s[i+3]
	}
	acc := acc0 + acc1 + acc2 + acc3
	for ; i < n; i++ {
		acc += a[i] * s[i]
	}
	return acc
}

// RotateInPlace cyclically rotates x by k positions (positive k rotates
// towards higher indices), wrapping on len(x).
func RotateInPlace(x []int32, k int) {
	n := len(x)
	if n == 0 {
		return
	}
	k = ((k % n) + n) % n
	if k == 0 {
		return
	}
	tmp := make([]int32, n)
	for i := 0; i < n; i++ {
		tmp[(i+k)%n] = x[i]
	}
	copy(x, tmp)
}

// ReverseAssign writes dst[i] = src[n-i] for i>0 and dst[0] = src[0],
// i.e. the coefficient-reversal used by TLWE sample extraction
// (reversing the secret-key polynomial before reading off coefficients).
func ReverseAssign(src, dst []int32) {
	n := len(src)
	dst[0] = src[0]
	for i := 1; i < n; i++ {
		dst[i] = src[n-i]
	}
}

// CopyAssign writes dst[i] = src[i].
func CopyAssign(src, dst []int32) {
	copy(dst, src)
}
