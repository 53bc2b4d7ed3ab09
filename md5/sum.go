package md5

import (
	"errors"
	"io"
	"os"

	"git.gammaspectra.live/P2Pool/md5sum/types"
	"git.gammaspectra.live/P2Pool/md5sum/utils"
)

// DefaultChunkSize read buffer size used for files, a multiple of BlockSize
const DefaultChunkSize = 4096

// Sum returns the MD5 checksum of data.
// It panics if data is longer than MaxInputSize, use a Digest to get ErrInputTooLarge instead.
func Sum(data []byte) types.Digest {
	var d Digest
	d.Reset()
	return d.finish(data)
}

// finish writes the last of the message and returns its checksum, panicking if it does not fit
func (d *Digest) finish(data []byte) types.Digest {
	if _, err := d.Write(data); err != nil {
		panic(err)
	}
	return d.checkSum()
}

// HashBytes returns the 32 character lowercase hex MD5 of data
func HashBytes(data []byte) string {
	return Sum(data).String()
}

func HashString(s string) string {
	return HashBytes([]byte(s))
}

// SumReader hashes everything read from r through a single buffer of chunkSize bytes.
// It returns the checksum and the number of bytes hashed.
func SumReader(r io.Reader, chunkSize int) (types.Digest, uint64, error) {
	if chunkSize <= 0 || chunkSize%BlockSize != 0 {
		return types.ZeroDigest, 0, ErrInvalidChunkSize
	}

	var d Digest
	d.Reset()

	buf := make([]byte, chunkSize)
	var chunks int
	total, err := utils.ReadChunks(r, buf, func(chunk []byte, last bool) error {
		chunks++
		_, err := d.Write(chunk)
		return err
	})
	if err != nil {
		return types.ZeroDigest, total, err
	}

	utils.Debugf("MD5", "hashed %d bytes in %d chunks of %d", total, chunks, chunkSize)

	return d.checkSum(), total, nil
}

// SumFile hashes the file at path, reading it in chunks of chunkSize bytes.
// It returns the checksum and the number of bytes hashed.
func SumFile(path string, chunkSize int) (types.Digest, uint64, error) {
	if chunkSize <= 0 || chunkSize%BlockSize != 0 {
		return types.ZeroDigest, 0, ErrInvalidChunkSize
	}

	f, err := os.Open(path)
	if err != nil {
		utils.Errorf("MD5", "can not open file %s: %s", path, err)
		return types.ZeroDigest, 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	sum, total, err := SumReader(f, chunkSize)
	if err != nil {
		if errors.Is(err, ErrInputTooLarge) {
			return types.ZeroDigest, total, err
		}
		utils.Errorf("MD5", "can not read file %s: %s", path, err)
		return types.ZeroDigest, total, &IOError{Op: "read", Path: path, Err: err}
	}
	return sum, total, nil
}

// HashFile returns the lowercase hex MD5 of the file at path.
// On failure the error is logged and an empty string is returned with it.
func HashFile(path string) (string, error) {
	sum, _, err := SumFile(path, DefaultChunkSize)
	if err != nil {
		return "", err
	}
	return sum.String(), nil
}
