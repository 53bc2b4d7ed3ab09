package types

import (
	"bytes"
	"database/sql/driver"
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

const DigestSize = 16

// Digest is an MD5 checksum in its canonical byte order:
// state words A, B, C, D, each serialized little-endian.
//
//nolint:recvcheck
type Digest [DigestSize]byte

var ZeroDigest Digest

var errWrongSize = errors.New("wrong digest size")

func (d Digest) MarshalJSON() ([]byte, error) {
	var buf [DigestSize*2 + 2]byte
	buf[0] = '"'
	buf[DigestSize*2+1] = '"'
	fasthex.Encode(buf[1:], d[:])
	return buf[:], nil
}

func (d *Digest) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != DigestSize*2+2 {
		return errWrongSize
	}

	if _, err := fasthex.Decode(d[:], b[1:len(b)-1]); err != nil {
		return err
	}

	return nil
}

func MustDigestFromString(s string) Digest {
	if d, err := DigestFromString(s); err != nil {
		panic(err)
	} else {
		return d
	}
}

// DigestFromString parses 32 hex characters. Either case is accepted.
func DigestFromString(s string) (Digest, error) {
	var d Digest
	if len(s) != DigestSize*2 {
		return d, errWrongSize
	}
	if _, err := fasthex.Decode(d[:], []byte(s)); err != nil {
		return d, err
	}
	return d, nil
}

func DigestFromBytes(buf []byte) (d Digest) {
	if len(buf) != DigestSize {
		return
	}
	copy(d[:], buf)
	return
}

func (d Digest) Equals(other Digest) bool {
	return d == other
}

func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

func (d Digest) Slice() []byte {
	return d[:]
}

// String returns the 32 character lowercase hex form
func (d Digest) String() string {
	return fasthex.EncodeToString(d[:])
}

// AppendHex appends the lowercase hex form to buf
func (d Digest) AppendHex(buf []byte) []byte {
	var out [DigestSize * 2]byte
	fasthex.Encode(out[:], d[:])
	return append(buf, out[:]...)
}

func (d *Digest) Scan(src any) error {
	if src == nil {
		return nil
	} else if buf, ok := src.([]byte); ok {
		if len(buf) == 0 {
			return nil
		}
		if len(buf) != DigestSize {
			return errWrongSize
		}
		copy((*d)[:], buf)

		return nil
	}
	return errors.New("invalid type")
}

func (d *Digest) Value() (driver.Value, error) {
	if *d == ZeroDigest {
		return nil, nil //nolint:nilnil
	}
	return (*d)[:], nil
}

// Bytes is a byte slice that encodes to JSON as a hex string
//
//nolint:recvcheck
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	buf := make([]byte, len(b)*2+2)
	buf[0] = '"'
	buf[len(buf)-1] = '"'
	fasthex.Encode(buf[1:], b)
	return buf, nil
}

func (b Bytes) String() string {
	return fasthex.EncodeToString(b)
}

func (b *Bytes) UnmarshalJSON(buf []byte) error {
	if len(buf) < 2 || (len(buf)%2) != 0 || buf[0] != '"' || buf[len(buf)-1] != '"' {
		return errors.New("invalid bytes")
	}

	*b = make(Bytes, (len(buf)-2)/2)

	if _, err := fasthex.Decode(*b, buf[1:len(buf)-1]); err != nil {
		return err
	}

	return nil
}
