package preimage

import (
	"slices"

	"git.gammaspectra.live/P2Pool/md5sum/md5"
)

// FindPreimage tries candidates 0 up to bound-1 in order and returns the first
// whose hex MD5 equals targetHex exactly. Comparison is case-sensitive, so
// targetHex is expected in lowercase.
// Exhausting the bound is not an error: found is false and candidate is nil.
func FindPreimage(targetHex string, bound uint64) (candidate []byte, found bool) {
	buf := make([]byte, 0, 8)
	for i := uint64(0); i < bound; i++ {
		buf = AppendCandidate(buf[:0], i)
		if md5.HashBytes(buf) == targetHex {
			return slices.Clone(buf), true
		}
	}
	return nil, false
}
