package md5

import "encoding/binary"

// Pad builds the final one or two blocks for a message whose unprocessed tail is tail
// and whose full length is bitLength bits.
// tail must be shorter than BlockSize: whole blocks are expected to have been compressed already.
// The result is BlockSize bytes long, or 2*BlockSize when tail is longer than 55 bytes.
func Pad(tail []byte, bitLength uint64) []byte {
	var buf [BlockSize * 2]byte
	n := padInto(&buf, tail, bitLength)
	return buf[:n:n]
}

func padInto(dst *[BlockSize * 2]byte, tail []byte, bitLength uint64) int {
	if len(tail) >= BlockSize {
		panic("padding failed: tail is not shorter than a block")
	}

	n := BlockSize
	// 0x80 marker plus the 8 byte length must fit after the tail
	if len(tail) > BlockSize-9 {
		n = BlockSize * 2
	}

	clear(dst[:n])
	copy(dst[:], tail)
	dst[len(tail)] = 0x80
	binary.LittleEndian.PutUint64(dst[n-8:n], bitLength)

	return n
}
