package render

import "fmt"

// fingerprintSeed is the classic djb2 starting value. Kept as-is so stored
// checksums remain stable across releases.
const fingerprintSeed uint64 = 5381

// Fingerprint computes a short content-sensitive digest of the canonical
// markup. It is a seeded djb2-style multiplicative accumulator over the full
// string, formatted as a fixed-width hex value.
//
// This is an integrity hint for humans and tests, not a security control:
// djb2 is non-cryptographic and collision-prone at scale. Do not swap it for
// a cryptographic hash without versioning the stored checksums, since every
// persisted value would change.
//
// The empty string hashes to the seed itself, not an error.
func Fingerprint(markup string) string {
	h := fingerprintSeed
	for i := 0; i < len(markup); i++ {
		h = h*33 + uint64(markup[i])
	}
	return fmt.Sprintf("%016x", h)
}

// Verify recomputes the fingerprint of markup and reports whether it matches
// the stored checksum. Callers treat a mismatch as data corruption.
func Verify(markup, checksum string) bool {
	return Fingerprint(markup) == checksum
}
