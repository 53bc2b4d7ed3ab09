package md5_test

import (
	"bytes"
	stdmd5 "crypto/md5"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"git.gammaspectra.live/P2Pool/md5sum/md5"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func testData(n int) []byte {
	buf := make([]byte, n)
	rng := rand.New(rand.NewSource(int64(n)))
	_, _ = rng.Read(buf)
	return buf
}

func writeTemp(t *testing.T, data []byte) string {
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// nolint:funlen
func TestFileHashing(t *testing.T) {
	spec.Run(t, "HashFile", func(t *testing.T, when spec.G, it spec.S) {
		when("the file exists", func() {
			sizes := []int{
				0, 1, 55, 56, 57, 63, 64, 65,
				md5.DefaultChunkSize - 1, md5.DefaultChunkSize, md5.DefaultChunkSize + 1,
				md5.DefaultChunkSize + 56, 2 * md5.DefaultChunkSize, 3*md5.DefaultChunkSize + 100,
			}

			it("matches hashing the content in memory", func() {
				for _, size := range sizes {
					data := testData(size)
					path := writeTemp(t, data)

					result, err := md5.HashFile(path)
					require.NoError(t, err, "size %d", size)
					require.Equal(t, md5.HashBytes(data), result, "size %d", size)
					require.Equal(t, fmt.Sprintf("%x", stdmd5.Sum(data)), result, "size %d", size)
				}
			})

			it("does not depend on the chunk size", func() {
				data := testData(10000)
				path := writeTemp(t, data)
				expected := md5.Sum(data)

				for _, chunkSize := range []int{md5.BlockSize, 2 * md5.BlockSize, 640, md5.DefaultChunkSize, 16384} {
					result, size, err := md5.SumFile(path, chunkSize)
					require.NoError(t, err, "chunk size %d", chunkSize)
					require.Equal(t, expected, result, "chunk size %d", chunkSize)
					require.Equal(t, uint64(len(data)), size, "chunk size %d", chunkSize)
				}
			})
		})

		when("the file cannot be opened", func() {
			it("returns an empty digest and an IOError", func() {
				path := filepath.Join(t.TempDir(), "missing.bin")

				result, err := md5.HashFile(path)
				require.Empty(t, result)
				require.Error(t, err)

				var ioErr *md5.IOError
				require.True(t, errors.As(err, &ioErr))
				require.Equal(t, "open", ioErr.Op)
				require.Equal(t, path, ioErr.Path)
				require.True(t, errors.Is(err, os.ErrNotExist))
			})
		})

		when("the chunk size is not a multiple of the block size", func() {
			it("rejects it", func() {
				path := writeTemp(t, testData(10))
				for _, chunkSize := range []int{0, -64, 1, 63, 100} {
					_, _, err := md5.SumFile(path, chunkSize)
					require.ErrorIs(t, err, md5.ErrInvalidChunkSize, "chunk size %d", chunkSize)
				}
			})
		})
	}, spec.Report(report.Terminal{}), spec.Parallel(), spec.Random())
}

func TestSumReader_ChunkingInvariance(t *testing.T) {
	for _, size := range []int{0, 1, 63, 64, 65, 127, 128, 1000, 4096, 5000} {
		data := testData(size)
		expected := md5.Sum(data)

		for _, chunkSize := range []int{64, 128, 192, 512, 4096} {
			result, n, err := md5.SumReader(bytes.NewReader(data), chunkSize)
			require.NoError(t, err)
			require.Equal(t, uint64(size), n)
			require.Equal(t, expected, result, "size %d, chunk size %d", size, chunkSize)

			// short reads from the source must not shift block boundaries
			result, n, err = md5.SumReader(iotest.OneByteReader(bytes.NewReader(data)), chunkSize)
			require.NoError(t, err)
			require.Equal(t, uint64(size), n)
			require.Equal(t, expected, result, "one byte reader, size %d, chunk size %d", size, chunkSize)
		}
	}
}

func TestSumReader_Error(t *testing.T) {
	readErr := errors.New("broken pipe")
	r := io.MultiReader(bytes.NewReader(testData(100)), iotest.ErrReader(readErr))

	_, _, err := md5.SumReader(r, md5.DefaultChunkSize)
	require.ErrorIs(t, err, readErr)
}

func TestSumReader_XZ(t *testing.T) {
	data := bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog\n"), 500)

	var compressed bytes.Buffer
	w, err := xz.NewWriter(&compressed)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := xz.NewReader(&compressed)
	require.NoError(t, err)

	result, n, err := md5.SumReader(r, md5.DefaultChunkSize)
	require.NoError(t, err)
	require.Equal(t, uint64(len(data)), n)
	require.Equal(t, md5.Sum(data), result)
}
