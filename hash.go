package eos

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // EOSIO's own checksum scheme, no substitute
)

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// Sha256Twice returns SHA-256(SHA-256(data)), used by WIF and Base58Check
// checksums.
func Sha256Twice(data []byte) []byte {
	return Sha256(Sha256(data))
}

// Ripemd160 returns the RIPEMD-160 digest of data, used for public-key and
// signature checksums.
func Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}
