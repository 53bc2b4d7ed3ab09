package utils

import (
	"fmt"
	"io"
)

// Buffers passed in are owned by the caller and not retained.

func AppendfNoEscape(buf []byte, format string, v ...any) []byte {
	return fmt.Appendf(buf, format, v...)
}

func SprintfNoEscape(format string, v ...any) string {
	return fmt.Sprintf(format, v...)
}

// ReadFullNoEscape reads exactly len(buf) bytes, see io.ReadFull
func ReadFullNoEscape(reader io.Reader, buf []byte) (n int, err error) {
	return io.ReadFull(reader, buf)
}
