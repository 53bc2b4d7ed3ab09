package md5

import "errors"

var ErrInputTooLarge = errors.New("md5: message length overflows the 64-bit length field")

var ErrInvalidChunkSize = errors.New("md5: chunk size must be a positive multiple of the block size")

// IOError is returned when a file cannot be opened or read while hashing.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return "md5: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
