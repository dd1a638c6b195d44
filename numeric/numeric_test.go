package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitIndex(t *testing.T) {
	assert.True(t, BitIndex(0b0000_0001, 0))
	assert.False(t, BitIndex(0b0000_0001, 1))
	assert.True(t, BitIndex(0b1000_0000, 7))
}

func TestWordBytesRoundTrip(t *testing.T) {
	for _, v := range []uint16{0x0000, 0x00FF, 0xFF00, 0xABCD, 0xFFFF} {
		hi, lo := Bytes(v)
		assert.Equal(t, v, Word(hi, lo))
	}
	assert.Equal(t, uint16(0x0100), Word(0x01, 0x00))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, uint32(0xFF), Truncate(0x1FF, 8))
	assert.Equal(t, uint32(0xFFFF), Truncate(0x1FFFF, 16))
	assert.Equal(t, uint32(0), Truncate(0x100, 8))
}

// intN_to_number(number_to_intN(v, b), b) == v, within the representable
// range -- the Word/Bytes round trip above covers the 16-bit case; this
// covers Truncate/SignExtend acting as the N-bit encode/decode pair.
func TestTruncateSignExtendRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0x7F, 0x80, 0xFF} {
		truncated := Truncate(v, 8)
		extended := SignExtend(truncated, 8)
		// re-truncating the sign-extended value to 8 bits must recover v
		assert.Equal(t, truncated, Truncate(uint32(extended), 8))
	}
}

func TestTwosComplement(t *testing.T) {
	// truncate(two's_complement(v, b), b) + truncate(v, b) == 0 (mod 2^b)
	for _, v := range []uint32{0, 1, 0x7F, 0x80, 0xFF} {
		tc := TwosComplement(v, 8)
		sum := tc + Truncate(v, 8)
		assert.Equal(t, uint32(0), Truncate(sum, 8))
	}
}

func TestSignExtend(t *testing.T) {
	assert.Equal(t, uint16(0x007F), SignExtend(0x7F, 8))
	assert.Equal(t, uint16(0xFF80), SignExtend(0x80, 8))
	assert.Equal(t, uint16(0xFFFF), SignExtend(0xFF, 8))
	assert.Equal(t, uint16(0x0005), SignExtend(0x05, 5))
	assert.Equal(t, uint16(0xFFF5), SignExtend(0x15, 5)) // bit 4 set -> negative
}
