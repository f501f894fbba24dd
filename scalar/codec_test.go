package scalar

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// leValue interprets buf as a little-endian integer.
func leValue(buf []byte) *big.Int {
	be := make([]byte, len(buf))
	for i := range buf {
		be[len(buf)-1-i] = buf[i]
	}
	return new(big.Int).SetBytes(be)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for i := 0; i < 2000; i++ {
		x := randInt(orderBig)
		s := fromBig(t, x)
		enc := s.Bytes()

		var d Scalar
		require.True(t, d.DecodeStrict(enc[:]), "canonical encoding rejected")
		require.True(t, d.Equal(&s))
		require.Equal(t, enc, d.Bytes())

		d = Scalar{}
		d.DecodeReduce(enc[:])
		require.True(t, d.Equal(&s))
	}
}

func TestEncodingOfOne(t *testing.T) {
	expected := make([]byte, 32)
	expected[0] = 1

	enc := One.Bytes()
	require.Equal(t, expected, enc[:])
}

func TestDecodeShortBuffers(t *testing.T) {
	// For lengths up to 31 the value is below 2^248: strict and
	// reducing decode agree, no reduction happens, and strict decode
	// always reports valid.
	for l := 0; l <= 31; l++ {
		buf := make([]byte, l)
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}

		var s, r Scalar
		require.True(t, s.DecodeStrict(buf), "len=%d", l)
		r.DecodeReduce(buf)
		require.True(t, s.Equal(&r), "len=%d", l)
		require.Zero(t, toBig(&s).Cmp(leValue(buf)), "len=%d", l)
	}

	// All-ones is the largest 31-byte input and still canonical.
	buf := bytes.Repeat([]byte{0xFF}, 31)
	var s Scalar
	require.True(t, s.DecodeStrict(buf))
	require.Zero(t, toBig(&s).Cmp(leValue(buf)))
}

func TestDecodeStrictBoundaries(t *testing.T) {
	var s Scalar

	// The order itself is the smallest non-canonical 252-bit value.
	nEnc := le32(orderBig)
	require.False(t, s.DecodeStrict(nEnc[:]))
	require.True(t, s.IsZero(), "output must still be written (n mod n = 0)")

	nMinus1 := le32(new(big.Int).Sub(orderBig, big.NewInt(1)))
	require.True(t, s.DecodeStrict(nMinus1[:]))

	// A bit above position 251 invalidates an otherwise canonical
	// encoding, and the decoded value must ignore it.
	oneEnc := One.Bytes()
	oneEnc[31] |= 0x10
	require.False(t, s.DecodeStrict(oneEnc[:]))
	require.True(t, s.Equal(&One))

	// Trailing bytes past index 31 must all be zero.
	long := make([]byte, 40)
	long[0] = 1
	require.True(t, s.DecodeStrict(long))
	require.True(t, s.Equal(&One))
	long[39] = 1
	require.False(t, s.DecodeStrict(long))
	require.True(t, s.Equal(&One), "trailing bytes are ignored by the decode itself")
}

func TestDecodeReduceAgainstRef(t *testing.T) {
	// Lengths spanning the 31-byte chunk boundaries.
	for _, l := range []int{0, 1, 30, 31, 32, 61, 62, 63, 93, 100} {
		for i := 0; i < 200; i++ {
			buf := make([]byte, l)
			if _, err := rand.Read(buf); err != nil {
				panic(err)
			}

			var s Scalar
			s.DecodeReduce(buf)
			expected := new(big.Int).Mod(leValue(buf), orderBig)
			require.Zero(t, toBig(&s).Cmp(expected), "len=%d buf=%x", l, buf)
		}
	}
}

func TestMarshalBinary(t *testing.T) {
	v := fromBig(t, randInt(orderBig))
	data, err := v.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 32)

	var d Scalar
	require.NoError(t, d.UnmarshalBinary(data))
	require.True(t, d.Equal(&v))

	nEnc := le32(orderBig)
	require.ErrorIs(t, d.UnmarshalBinary(nEnc[:]), ErrNonCanonical)
}

func TestHashToScalar(t *testing.T) {
	msg := []byte("test message")

	a := HashToScalar("tag-a", msg)
	b := HashToScalar("tag-a", msg)
	require.True(t, a.Equal(&b), "must be deterministic")

	c := HashToScalar("tag-b", msg)
	require.False(t, a.Equal(&c), "domains must separate")

	d := HashToScalar("tag-a", []byte("other message"))
	require.False(t, a.Equal(&d))

	// Output is canonical: its encoding strict-decodes as valid.
	enc := a.Bytes()
	var e Scalar
	require.True(t, e.DecodeStrict(enc[:]))
}

func FuzzDecodeReduce(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{1})
	f.Add(bytes.Repeat([]byte{0xFF}, 31))
	f.Add(bytes.Repeat([]byte{0xFF}, 32))
	f.Add(bytes.Repeat([]byte{0xAA}, 63))
	f.Add(bytes.Repeat([]byte{0x55}, 100))

	f.Fuzz(func(t *testing.T, buf []byte) {
		var s Scalar
		s.DecodeReduce(buf)
		expected := new(big.Int).Mod(leValue(buf), orderBig)
		if toBig(&s).Cmp(expected) != 0 {
			t.Fatalf("DecodeReduce(%x) = %v, want %x", buf, &s, expected)
		}
	})
}

func FuzzDecodeStrict(f *testing.F) {
	nEnc := le32(orderBig)
	f.Add([]byte{})
	f.Add(nEnc[:])
	f.Add(bytes.Repeat([]byte{0xFF}, 32))
	f.Add(bytes.Repeat([]byte{0xFF}, 31))
	f.Add(make([]byte, 40))

	f.Fuzz(func(t *testing.T, buf []byte) {
		var s Scalar
		valid := s.DecodeStrict(buf)

		// Independent model: the decoded value is the low 252 bits
		// of the first 32 bytes; validity additionally requires no
		// bit above position 251 and no nonzero trailing byte.
		trunc := buf
		if len(trunc) > 32 {
			trunc = trunc[:32]
		}
		val := leValue(trunc)
		expValid := true
		if len(buf) >= 32 {
			val.And(val, new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 252), big.NewInt(1)))
			if buf[31]>>4 != 0 {
				expValid = false
			}
			for _, b := range buf[32:] {
				if b != 0 {
					expValid = false
				}
			}
			if val.Cmp(orderBig) >= 0 {
				expValid = false
			}
		}

		if valid != expValid {
			t.Fatalf("DecodeStrict(%x) valid = %v, want %v", buf, valid, expValid)
		}
		val.Mod(val, orderBig)
		if toBig(&s).Cmp(val) != 0 {
			t.Fatalf("DecodeStrict(%x) = %v, want %x", buf, &s, val)
		}
	})
}
