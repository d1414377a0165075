package eos

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const checksumLen = 4

// base58Encode encodes raw bytes, no checksum attached.
func base58Encode(input []byte) string {
	return base58.Encode(input)
}

// base58Decode decodes a plain Base58 string, no checksum check.
func base58Decode(input string) ([]byte, error) {
	out, err := base58.Decode(input)
	return out, errors.WithStack(err)
}

/*
base58EncodeCheckRipemd160 appends a 4-byte RIPEMD-160(payload || suffix)[0:4]
checksum and Base58-encodes the result. EOSIO uses this for public keys and
signatures, keying the checksum with a type suffix ("", "K1", "R1", ...)
instead of Bitcoin's double-SHA256.
*/
func base58EncodeCheckRipemd160(payload []byte, suffix string) string {
	sum := Ripemd160(append(append([]byte{}, payload...), suffix...))
	return base58Encode(append(payload, sum[:checksumLen]...))
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
