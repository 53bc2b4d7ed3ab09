package md5

import (
	"encoding/binary"
	"math/bits"
)

// State is the MD5 chain value (A, B, C, D)
type State [4]uint32

// mix applies the nonlinear function of the given round (0..3) to x, y, z
func mix(round int, x, y, z uint32) uint32 {
	switch round {
	case 0:
		// F
		return (x & y) | (^x & z)
	case 1:
		// G
		return (x & z) | (y &^ z)
	case 2:
		// H
		return x ^ y ^ z
	default:
		// I
		return y ^ (x | ^z)
	}
}

// messageIndex returns which of the sixteen block words step i consumes
func messageIndex(i int) int {
	switch i >> 4 {
	case 0:
		return i
	case 1:
		return (5*i + 1) & 15
	case 2:
		return (3*i + 5) & 15
	default:
		return (7 * i) & 15
	}
}

// Compress runs the 64 step compression function over one block and returns the new chain value.
func Compress(s State, block *[BlockSize]byte) State {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	a, b, c, d := s[0], s[1], s[2], s[3]

	for i := 0; i < 64; i++ {
		f := mix(i>>4, b, c, d) + a + table[i] + m[messageIndex(i)]
		// the accumulator role moves a -> d -> c -> b every step
		a, b, c, d = d, b+bits.RotateLeft32(f, int(shifts[i])), b, c
	}

	return State{s[0] + a, s[1] + b, s[2] + c, s[3] + d}
}

// block feeds every whole block in p to the digest state
func block(d *Digest, p []byte) {
	for len(p) >= BlockSize {
		d.s = Compress(d.s, (*[BlockSize]byte)(p[:BlockSize]))
		p = p[BlockSize:]
	}
}
