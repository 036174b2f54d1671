package project

import "crypto/sha256"

// Digest is a SHA-256 sum, the same shape as source.File.Hash.
type Digest [32]byte

// HashString digests s.
func HashString(s string) Digest { return sha256.Sum256([]byte(s)) }

// Combine digests content followed by parts. Order matters, so callers must
// pass parts in a fixed order.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
