package scalar

import (
	"errors"

	"golang.org/x/crypto/sha3"
)

// ErrNonCanonical is returned by UnmarshalBinary when the input is not
// the canonical encoding of a value in the 0..n-1 range.
var ErrNonCanonical = errors.New("scalar: encoding is not canonical")

// decodeTrunc unpacks little-endian bytes into 15-bit limbs. At most 32
// bytes are read and, in the 32nd byte, only the low 4 bits are used;
// higher bits and any further bytes are ignored, truncating the value
// modulo 2^252. Unfilled limbs are zeroed.
// Output is lower than 2^252, hence lower than 1.14*n.
func decodeTrunc(c *[numLimbs]uint32, src []byte) {
	i := 0
	acc := uint32(0)
	accLen := 0
	for u := 0; u < len(src); u++ {
		if u == 31 {
			// 31 bytes filled 16 limbs and left 8 bits in acc;
			// the low 4 bits of the 32nd byte complete the top
			// 12-bit limb.
			acc |= uint32(src[31]&0x0F) << 8
			c[16] = acc
			return
		}
		acc |= uint32(src[u]) << accLen
		accLen += 8
		if accLen >= 15 {
			c[i] = acc & 0x7FFF
			i++
			acc >>= 15
			accLen -= 15
		}
	}
	if accLen > 0 {
		c[i] = acc
		i++
	}
	for i < numLimbs {
		c[i] = 0
		i++
	}
}

// DecodeStrict decodes src as a canonical scalar. The scalar is always
// written (truncated modulo 2^252, then normalized), and the returned
// flag reports validity: true when src is at most 31 bytes (the value
// is below 2^248 and so necessarily canonical), or when src is 32
// bytes or longer and the top 4 bits of byte 31 are zero, every byte
// past index 31 is zero, and the decoded value is below n.
//
// The output is computed identically whether or not src is valid;
// callers handling untrusted input must check the flag before using
// the scalar. Validity is accumulated with bitwise operations, not
// short-circuit logic, so the check itself does not branch on the
// decoded value.
func (s *Scalar) DecodeStrict(src []byte) bool {
	decodeTrunc(&s.v, src)
	if len(src) < 32 {
		return true
	}
	r := uint32(src[31] >> 4)
	for _, b := range src[32:] {
		r |= uint32(b)
	}
	// r == 0 iff no stray bits were set.
	r = (r - 1) >> 31
	r &= limbsNormalize(&s.v, &s.v)
	return r == 1
}

// DecodeReduce decodes an arbitrary-length little-endian buffer and
// reduces it modulo n, returning s. The result is below 1.27*n, which
// is the admissible input bound of every arithmetic operation; this is
// the entry point for hashing-to-scalar uses.
func (s *Scalar) DecodeReduce(src []byte) *Scalar {
	if len(src) <= 31 {
		decodeTrunc(&s.v, src)
		return s
	}

	// Process 31-byte chunks from most to least significant: multiply
	// the accumulator by 2^248 and add the next chunk. The multiply
	// is a Montgomery multiplication by sD = 2^248 * sR mod n, whose
	// implicit division by sR leaves a plain multiply by 2^248.
	u := 0
	for u+31 < len(src) {
		u += 31
	}
	decodeTrunc(&s.v, src[u:])

	// At the top of each iteration the accumulator is below 1.27*n:
	// the Montgomery multiplication returns a value below 1.18*n and
	// the decoded chunk is below 2^248 < 0.072*n, so the addition
	// stays below 1.27*n, re-establishing the invariant.
	for u > 0 {
		u -= 31
		var t [numLimbs]uint32
		montyMul(&s.v, &s.v, &sD)
		decodeTrunc(&t, src[u:u+31])
		limbsAdd(&s.v, &s.v, &t)
	}
	return s
}

// Bytes returns the canonical encoding of s: the unique value in the
// 0..n-1 range, bit-packed little-endian into exactly 32 bytes. This
// is the only externally visible binary format.
func (s *Scalar) Bytes() [32]byte {
	var t [numLimbs]uint32
	limbsNormalize(&t, &s.v)

	var out [32]byte
	u := 0
	acc := uint32(0)
	accLen := 0
	for i := 0; i < numLimbs; i++ {
		acc |= t[i] << accLen
		accLen += 15
		for accLen >= 8 {
			out[u] = byte(acc)
			u++
			acc >>= 8
			accLen -= 8
		}
	}
	// 17 limbs carry 255 bits; the last 7 land in byte 31.
	out[31] = byte(acc)
	return out
}

// MarshalBinary returns the canonical 32-byte encoding of s. It never
// fails.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	b := s.Bytes()
	return b[:], nil
}

// UnmarshalBinary decodes data via DecodeStrict. On a non-canonical
// encoding it returns ErrNonCanonical; the scalar still holds the
// normalized decode of data, per the DecodeStrict contract.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	if !s.DecodeStrict(data) {
		return ErrNonCanonical
	}
	return nil
}

// HashToScalar derives a scalar from the given data with SHAKE256,
// using domain to separate unrelated uses. It squeezes 64 bytes and
// reduces them modulo n, so the output is within negligible distance
// of uniform over the 0..n-1 range.
func HashToScalar(domain string, data ...[]byte) Scalar {
	xof := sha3.NewShake256()
	xof.Write([]byte(domain))
	for _, d := range data {
		xof.Write(d)
	}
	var buf [64]byte
	xof.Read(buf[:])

	var s Scalar
	s.DecodeReduce(buf[:])
	return s
}
