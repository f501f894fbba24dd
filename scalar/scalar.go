// Package scalar implements constant-time arithmetic modulo the order
// of the curve9767 group, a 252-bit prime n. It provides the four ring
// operations, equality and zero tests, a masked conditional copy, and
// the canonical 32-byte little-endian wire encoding, for use by point
// arithmetic and signature layers.
//
// A Scalar is a plain value type: it is produced by decoding or by an
// arithmetic operation and copied wholesale, never partially mutated.
// Operations never branch on scalar contents; all data-dependent
// selection is done with arithmetic masks so that execution time does
// not depend on secret values.
package scalar

import "encoding/hex"

// Scalar is an integer modulo the curve9767 group order n. The zero
// value is the scalar 0 and is ready to use.
//
// Internal values may exceed n by the bounded amounts documented on
// the arithmetic primitives; the canonical representative is produced
// by Bytes.
type Scalar struct {
	v [numLimbs]uint32
}

// Named scalar values. These are working values, not pointers into
// shared state: copy them freely.
var (
	Zero = Scalar{}
	One  = Scalar{v: [numLimbs]uint32{1}}
)

// Set copies a into s and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.v = a.v
	return s
}

// SetUint64 sets s to the integer x, which is necessarily canonical
// since 2^64 < n. Returns s.
func (s *Scalar) SetUint64(x uint64) *Scalar {
	s.v = [numLimbs]uint32{}
	for i := 0; i < 5; i++ {
		s.v[i] = uint32(x) & 0x7FFF
		x >>= 15
	}
	return s
}

// Add sets s = a + b mod n and returns s. Operands may exceed n by the
// usual operation bounds (anything below 1.56*n is accepted); the
// result is below 2^252. The receiver may alias either operand.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	limbsAdd(&s.v, &a.v, &b.v)
	return s
}

// Sub sets s = a - b mod n and returns s. Operands must be below 2*n.
// The receiver may alias either operand.
func (s *Scalar) Sub(a, b *Scalar) *Scalar {
	limbsSub(&s.v, &a.v, &b.v)
	return s
}

// Neg sets s = -a mod n and returns s.
func (s *Scalar) Neg(a *Scalar) *Scalar {
	limbsSub(&s.v, &Zero.v, &a.v)
	return s
}

// Mul sets s = a * b mod n and returns s. Operands must be below
// 1.27*n; the result is below 1.18*n (use Bytes for the canonical
// form). The receiver may alias either operand.
func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	// Montgomery-multiplying a by sR2 yields a*sR mod n, the
	// Montgomery representation of a; multiplying that by b divides
	// the sR back out, leaving a*b mod n in plain representation.
	var t [numLimbs]uint32
	montyMul(&t, &a.v, &sR2)
	montyMul(&s.v, &t, &b.v)
	return s
}

// IsZero reports whether s is 0 mod n, for any admissible
// representation of s below 2*n.
func (s *Scalar) IsZero() bool {
	var t [numLimbs]uint32
	limbsNormalize(&t, &s.v)
	r := uint32(0)
	for i := 0; i < numLimbs; i++ {
		r |= t[i]
	}
	return r == 0
}

// Equal reports whether s and a represent the same value mod n. Neither
// operand needs to be canonical: the comparison goes through a
// subtraction and a zero test, both of which are representation
// independent.
func (s *Scalar) Equal(a *Scalar) bool {
	var d Scalar
	d.Sub(s, a)
	return d.IsZero()
}

// CondCopy copies a into s if ctl is 1 and leaves s unchanged if ctl
// is 0, in time independent of ctl and of the operand values. Any
// other ctl value is a caller contract violation with unspecified
// effect.
func (s *Scalar) CondCopy(a *Scalar, ctl uint32) {
	m := -ctl
	for i := 0; i < numLimbs; i++ {
		s.v[i] ^= m & (s.v[i] ^ a.v[i])
	}
}

// String returns the lowercase hex of the canonical encoding. Intended
// for diagnostics; it normalizes the value first.
func (s *Scalar) String() string {
	b := s.Bytes()
	return hex.EncodeToString(b[:])
}
