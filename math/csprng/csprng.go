// Package csprng provides the random-number sources used by encryption
// and key generation: uniform torus draws, binary key-bit draws, and
// discrete Gaussian torus noise.
//
// Per the design's concurrency model, a PRNG is never implicit process
// state — every sampler here is a value the caller constructs and
// threads explicitly through Encryptor-style types. None of these
// types are safe for concurrent use; call [UniformSampler.ShallowCopy]
// (and friends) to hand each goroutine its own independently-seeded copy.
//
// The cryptographic strength of the byte source itself is treated as an
// external concern (see spec §1): we seed a fast stream cipher from
// crypto/rand once at construction and never touch process-global state
// afterwards.
package csprng

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/crypto/chacha20"
	"gonum.org/v1/gonum/stat/distuv"
)

// newKeystream returns a chacha20 stream cipher keyed and nonced from
// crypto/rand, used as the uniform byte source for every sampler below.
func newKeystream() *chacha20.Cipher {
	var key [chacha20.KeySize]byte
	var nonce [chacha20.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		panic("csprng: failed to seed from crypto/rand: " + err.Error())
	}
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		panic("csprng: failed to seed from crypto/rand: " + err.Error())
	}
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic("csprng: " + err.Error())
	}
	return c
}

// keystreamReader draws raw uniform bytes by XOR-ing the chacha20
// keystream over a zero buffer.
type keystreamReader struct {
	cipher *chacha20.Cipher
}

func (k *keystreamReader) read(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	k.cipher.XORKeyStream(buf, buf)
}

// UniformSampler draws uniform samples from the discretized torus,
// i.e. uniform int32 values with wraparound.
type UniformSampler struct {
	src *keystreamReader
}

// NewUniformSampler returns a freshly-seeded UniformSampler.
func NewUniformSampler() *UniformSampler {
	return &UniformSampler{src: &keystreamReader{cipher: newKeystream()}}
}

// Sample draws a single uniform torus value.
func (s *UniformSampler) Sample() int32 {
	var buf [4]byte
	s.src.read(buf[:])
	return int32(binary.LittleEndian.Uint32(buf[:]))
}

// SampleSliceAssign fills dst with independent uniform torus values.
func (s *UniformSampler) SampleSliceAssign(dst []int32) {
	for i := range dst {
		dst[i] = s.Sample()
	}
}

// ShallowCopy returns an independently-seeded UniformSampler, safe to
// hand to another goroutine.
func (s *UniformSampler) ShallowCopy() *UniformSampler {
	return NewUniformSampler()
}

// BinarySampler draws secret-key bits, each uniform in {0, 1}.
type BinarySampler struct {
	src *keystreamReader
}

// NewBinarySampler returns a freshly-seeded BinarySampler.
func NewBinarySampler() *BinarySampler {
	return &BinarySampler{src: &keystreamReader{cipher: newKeystream()}}
}

// Sample draws a single bit in {0, 1}.
func (s *BinarySampler) Sample() int32 {
	var buf [1]byte
	s.src.read(buf[:])
	return int32(buf[0] & 1)
}

// SampleSliceAssign fills dst with independent bits in {0, 1}.
func (s *BinarySampler) SampleSliceAssign(dst []int32) {
	var buf [1]byte
	bitsLeft := 0
	var cur byte
	for i := range dst {
		if bitsLeft == 0 {
			s.src.read(buf[:])
			cur = buf[0]
			bitsLeft = 8
		}
		dst[i] = int32(cur & 1)
		cur >>= 1
		bitsLeft--
	}
}

// ShallowCopy returns an independently-seeded BinarySampler.
func (s *BinarySampler) ShallowCopy() *BinarySampler {
	return NewBinarySampler()
}

// int63Source adapts the keystream to gonum's rand.Source interface
// (a single Int63 method), so distuv.Normal can draw from it.
type int63Source struct {
	src *keystreamReader
}

func (s *int63Source) Int63() int64 {
	var buf [8]byte
	s.src.read(buf[:])
	return int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
}

func (s *int63Source) Seed(int64) {
	// Re-seeding is intentionally a no-op: this source is already seeded
	// from crypto/rand at construction and is never reused across processes.
}

// GaussianSampler draws discretized-torus Gaussian noise with a given
// normalized standard deviation (a fraction of the torus, i.e. alpha in
// [0, 1)).
type GaussianSampler struct {
	normal distuv.Normal
}

// NewGaussianSampler returns a freshly-seeded GaussianSampler.
func NewGaussianSampler() *GaussianSampler {
	return &GaussianSampler{
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   &int63Source{src: &keystreamReader{cipher: newKeystream()}},
		},
	}
}

// Sample draws a single torus error term: a standard normal float64,
// scaled by stdDev, then truncated toward zero to an int32 lattice point
// of the torus (i.e. d*2^32 truncated to i32, per spec §4.1).
func (s *GaussianSampler) Sample(stdDev float64) int32 {
	d := s.normal.Rand() * stdDev
	return int32(int64(d * math.Exp2(32)))
}

// SamplePolyAssign fills dst with independent Gaussian torus samples.
func (s *GaussianSampler) SamplePolyAssign(stdDev float64, dst []int32) {
	for i := range dst {
		dst[i] = s.Sample(stdDev)
	}
}

// ShallowCopy returns an independently-seeded GaussianSampler.
func (s *GaussianSampler) ShallowCopy() *GaussianSampler {
	return NewGaussianSampler()
}
