package utils

import (
	"errors"
	"io"
)

// ReadChunks reads r into buf until EOF, calling do for every filled region.
// Every call but the last receives exactly len(buf) bytes; the last may be
// shorter, or empty when the input length is a multiple of len(buf).
// Memory use is bounded by buf regardless of the input size.
func ReadChunks(r io.Reader, buf []byte, do func(chunk []byte, last bool) error) (total uint64, err error) {
	if len(buf) == 0 {
		return 0, io.ErrShortBuffer
	}
	for {
		n, err := ReadFullNoEscape(r, buf)
		total += uint64(n)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return total, do(buf[:n], true)
		} else if err != nil {
			return total, err
		}
		if err = do(buf[:n], false); err != nil {
			return total, err
		}
	}
}
