// Package preimage recovers short MD5 preimages by exhaustive enumeration.
//
// Candidates are indexed by a non-negative integer: candidate i is the base 256
// representation of i, least significant byte first, in as few bytes as needed.
// Candidate 0 is the single byte 0x00. Since the mapping is a pure function of
// the index, any index range can be searched independently of the others.
package preimage

// Candidate returns the candidate byte string for index i
func Candidate(i uint64) []byte {
	return AppendCandidate(make([]byte, 0, 8), i)
}

// AppendCandidate appends the candidate byte string for index i to dst
func AppendCandidate(dst []byte, i uint64) []byte {
	dst = append(dst, byte(i))
	for i >>= 8; i > 0; i >>= 8 {
		dst = append(dst, byte(i))
	}
	return dst
}

// Index is the inverse of Candidate. ok is false when buf is not a canonical candidate.
func Index(buf []byte) (i uint64, ok bool) {
	if len(buf) == 0 || len(buf) > 8 || (len(buf) > 1 && buf[len(buf)-1] == 0) {
		return 0, false
	}
	for j := len(buf) - 1; j >= 0; j-- {
		i = i<<8 | uint64(buf[j])
	}
	return i, true
}
