package hashsig

import "github.com/cespare/xxhash"

// fingerprint returns a short, non-cryptographic digest of b, suitable
// for log lines and in-memory cache-integrity checks. It must never be
// used in place of the constant-time comparisons required by §7 for
// accepting a signature or OTP.
func fingerprint(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// cacheChecksum summarizes an UpdatableMSS cache for logging: the
// on-disk subtree format the cache layout is modelled on appends a
// trailing checksum so a corrupted cache is caught early (see
// container.go's CachedSubTreeSize in the originating design); here,
// with no persistence, the same checksum is only ever logged, never
// trusted for correctness.
func cacheChecksum(cache [][]byte) uint64 {
	h := uint64(0xcbf29ce484222325) // arbitrary non-zero seed
	for _, node := range cache {
		h ^= fingerprint(node)
	}
	return h
}
