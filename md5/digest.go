// Package md5 implements the MD5 message digest (RFC 1321) from scratch:
// padding, the 64 step compression function and a streaming driver that hashes
// buffers, readers and files in bounded memory.
//
// MD5 is cryptographically broken. It is implemented to reproduce legacy digests bit for bit.
package md5

import (
	"encoding/binary"
	"hash"

	"git.gammaspectra.live/P2Pool/md5sum/types"
	"lukechampine.com/uint128"
)

// Digest is the running state of one MD5 computation.
// The zero value is not ready for use, call Reset or use New.
type Digest struct {
	s   State           // current chain value
	x   [BlockSize]byte // buffer for data not yet compressed
	nx  int             // number of bytes in buffer
	len uint64          // message bytes written so far
}

var _ hash.Hash = (*Digest)(nil)

func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

func (d *Digest) Reset() {
	d.s = InitialState
	d.nx = 0
	d.len = 0
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

// Len returns the number of message bytes written so far
func (d *Digest) Len() uint64 { return d.len }

// State returns the chain value after the last compressed block
func (d *Digest) State() State { return d.s }

// Write adds p to the running message. Whole blocks are compressed directly
// from p, at most BlockSize-1 bytes are kept buffered.
// It returns ErrInputTooLarge without consuming anything if the total message
// length would exceed MaxInputSize.
func (d *Digest) Write(p []byte) (nn int, err error) {
	if !fitsLengthField(d.len, uint64(len(p))) {
		return 0, ErrInputTooLarge
	}

	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			block(d, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		block(d, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// fitsLengthField reports whether a message of written+extra bytes still has its bit length below 2^64
func fitsLengthField(written, extra uint64) bool {
	return uint128.From64(written).Add64(extra).Mul64(8).Hi == 0
}

// Sum appends the checksum to in. It does not change the running state.
func (d *Digest) Sum(in []byte) []byte {
	sum := d.Checksum()
	return append(in, sum[:]...)
}

// Checksum finalizes a copy of the digest and returns its checksum
func (d *Digest) Checksum() types.Digest {
	d0 := *d
	return d0.checkSum()
}

func (d *Digest) checkSum() types.Digest {
	var tail [BlockSize * 2]byte
	n := padInto(&tail, d.x[:d.nx], d.len<<3)

	block(d, tail[:n])
	d.nx = 0

	return d.s.Digest()
}

// Digest serializes the chain value, each word little-endian in A, B, C, D order
func (s State) Digest() (out types.Digest) {
	for i, w := range s {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// Hex returns the 32 character lowercase hex form of the serialized chain value
func (s State) Hex() string {
	return s.Digest().String()
}
