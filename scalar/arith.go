package scalar

// Limb-level arithmetic modulo the curve9767 group order n.
//
// A scalar is a sequence of 17 limbs of 15 bits each, in little-endian
// order (base 2^15, least significant limb first). Limbs live in uint32
// slots; outside of transient carry computation the top 17 bits of every
// slot are zero. Montgomery multiplication uses sR = 2^255 mod n: the
// Montgomery representation of x is x*sR mod n. Scalars are not kept in
// Montgomery representation, because encoding and decoding are expected
// to be more frequent than chained multiplications.
//
// Every function below states the range it accepts for its inputs and
// the range it guarantees for its output, expressed as a multiple of n.
// These bounds compose across call chains and are the correctness
// argument of the package: a caller must satisfy the callee's input
// bound, and may assume no more than the callee's output bound. Values
// crossing the package API stay below 1.27*n.
//
// No function branches on limb values. Every data-dependent choice is a
// masked select, with the mask derived from a carry, borrow or sign bit
// by shifting, so that execution time does not depend on scalar values.

const numLimbs = 17

// order is the group order n in base 2^15, little-endian:
//
//	n = 0x0e204b002e7bdf539f8b2e0ed634742d33527e75417be49bfb31f1a665275e71
var order = [numLimbs]uint32{
	24177, 19022, 18073, 22927, 18879, 12156, 7504, 10559, 11571,
	26856, 15192, 22896, 14840, 31722, 2974, 9600, 3616,
}

// sR2 = 2^510 mod n, the Montgomery representation of sR.
var sR2 = [numLimbs]uint32{
	14755, 1449, 7175, 1324, 11384, 15866, 31249, 13920, 17944,
	6728, 3858, 5900, 25302, 432, 5554, 29779, 1646,
}

// sD = 2^503 mod n, the Montgomery representation of 2^248.
var sD = [numLimbs]uint32{
	167, 1579, 26634, 10886, 24646, 12845, 32322, 7660, 8304,
	12054, 20731, 3487, 26407, 9107, 22337, 7191, 1284,
}

const (
	// n0 = n mod 2^15
	n0 = 24177
	// n0i = -1/n mod 2^15
	n0i = 23919
)

// limbsAdd computes c = a + b with partial reduction.
// Inputs must each be lower than 1.56*n.
// Output is lower than 2^252, hence lower than 1.14*n.
func limbsAdd(c, a, b *[numLimbs]uint32) {
	var d [numLimbs]uint32

	// a + b < 3.12*n. We subtract n conditionally on the sum being
	// at least 2^252; since 3.12*n < 2^252 + 2*n, two rounds are
	// enough, and 2^252 < 1.14*n puts the result in range.
	cc := uint32(0)
	for i := 0; i < numLimbs; i++ {
		w := a[i] + b[i] + cc
		d[i] = w & 0x7FFF
		cc = w >> 15
	}

	// cc = 0 here: 3.12*n < 2^255.
	for j := 0; j < 2; j++ {
		// d / 2^252 is 0, 1 or 2. Map nonzero to an all-ones mask.
		m := d[numLimbs-1] >> 12
		m = -(-m >> 31)

		cc = 0
		for i := 0; i < numLimbs; i++ {
			w := d[i] - (m & order[i]) - cc
			d[i] = w & 0x7FFF
			cc = w >> 31
		}
	}

	*c = d
}

// limbsSub computes c = a - b with partial reduction.
// Inputs must each be lower than 2*n.
// Output is nonnegative and lower than a.
func limbsSub(c, a, b *[numLimbs]uint32) {
	var d [numLimbs]uint32

	cc := uint32(0)
	for i := 0; i < numLimbs; i++ {
		w := a[i] - b[i] - cc
		d[i] = w & 0x7FFF
		cc = w >> 31
	}

	// The difference is negative exactly when the top bit of the top
	// limb is set. Since b < 2*n, adding n back at most twice makes
	// the value nonnegative.
	for j := 0; j < 2; j++ {
		m := -(d[numLimbs-1] >> 14)
		cc = 0
		for i := 0; i < numLimbs; i++ {
			w := d[i] + (m & order[i]) + cc
			d[i] = w & 0x7FFF
			cc = w >> 15
		}
	}

	*c = d
}

// limbsNormalize reduces a into the canonical 0..n-1 range.
// Input must be lower than 2*n.
// Returns 1 if a was already canonical, 0 otherwise.
func limbsNormalize(c, a *[numLimbs]uint32) uint32 {
	var d [numLimbs]uint32

	// Subtract n; keep the difference if nonnegative, the source
	// value otherwise.
	cc := uint32(0)
	for i := 0; i < numLimbs; i++ {
		w := a[i] - order[i] - cc
		d[i] = w & 0x7FFF
		cc = w >> 31
	}

	// cc = 1 iff the difference went negative, i.e. a was already
	// below n. Select with a masked XOR, not a branch.
	cc = -cc
	for i := 0; i < numLimbs; i++ {
		wa := a[i]
		wd := d[i]
		c[i] = wd ^ (cc & (wa ^ wd))
	}

	return -cc
}

// montyMul computes c = (a*b)/sR mod n using word-oriented Montgomery
// reduction.
// Inputs must each be lower than 1.27*n.
// Output is lower than 1.18*n.
func montyMul(c, a, b *[numLimbs]uint32) {
	var d [numLimbs]uint32
	var dh uint32

	for i := 0; i < numLimbs; i++ {
		f := a[i]
		t := d[0] + f*b[0]

		// g is the multiple of n that clears the low limb of the
		// accumulator; n0i = -1/n mod 2^15.
		g := (t * n0i) & 0x7FFF
		cc := (t + g*n0) >> 15
		for j := 1; j < numLimbs; j++ {
			// With cc <= 2^16 on entry,
			//   h <= 2^15-1 + 2*(2^15-1)^2 + 2^16 < (2^15+1)*2^16
			// so cc stays at most 2^16 on exit.
			h := d[j] + f*b[j] + g*order[j] + cc
			d[j-1] = h & 0x7FFF
			cc = h >> 15
		}

		// dh is 0 or 1, so dh+cc < 2^17 and the next dh is again
		// 0 or 1.
		dh += cc
		d[numLimbs-1] = dh & 0x7FFF
		dh >>= 15
	}

	// The loop computed d = (a*b + k*n) / 2^255 with k < 2^255 (the
	// successive g values are the base-2^15 limbs of k). With both
	// inputs below 1.27*n,
	//   d < ((1.27*n)^2 + 2^255*n) / 2^255
	// which is below 1.18*n. In particular dh = 0 and no extra
	// reduction pass is needed. Call sites relying on a tighter
	// bound must establish the 1.27*n precondition themselves.
	*c = d
}
