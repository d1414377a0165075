package eos

import (
	"regexp"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const wifVersion = 0x80
const wifLen = 1 + 32 + 4 // version || secret || checksum

var authReg = regexp.MustCompile(`^\w+@\w+$`)

/*
PrivateKey is the raw 32-byte secp256k1 scalar recovered from a WIF string.
Keychain.Lookup hands it out; Client passes it only to Sign.
*/
type PrivateKey [32]byte

/*
PublicKey is a compressed secp256k1 point, 33 bytes: a 0x02/0x03 prefix byte
followed by the X coordinate. It is computed on demand and never cached.
*/
type PublicKey [33]byte

// String renders the EOS address form: "EOS" || Base58(point || checksum[0:4]).
func (self PublicKey) String() string {
	return "EOS" + base58EncodeCheckRipemd160(append([]byte{}, self[:]...), "")
}

/*
Keychain maps "actor@permission" authorizations to private keys. It is the
only mutable shared state in this package; AddKey, Remove, Lookup, and
PublicKey are all safe for concurrent use.
*/
type Keychain struct {
	lock sync.RWMutex
	keys map[string]PrivateKey
}

// NewKeychain returns an empty Keychain, ready for AddKey.
func NewKeychain() *Keychain {
	return &Keychain{keys: map[string]PrivateKey{}}
}

/*
AddKey decodes a WIF-encoded private key and associates it with the given
"actor@permission" authorization, overwriting any previous association.
*/
func (self *Keychain) AddKey(authorization string, wif string) error {
	secret, err := decodeWif(wif)
	if err != nil {
		return err
	}
	if !authReg.MatchString(authorization) {
		return newErr(KindMalformedAuthorization, "malformed authorization %q", authorization)
	}

	self.lock.Lock()
	self.keys[authorization] = secret
	self.lock.Unlock()
	return nil
}

// Remove deletes the key associated with the given authorization, if any.
func (self *Keychain) Remove(authorization string) {
	self.lock.Lock()
	delete(self.keys, authorization)
	self.lock.Unlock()
}

// Authorizations returns the set of authorizations currently held, in no
// particular order.
func (self *Keychain) Authorizations() []string {
	self.lock.RLock()
	defer self.lock.RUnlock()

	out := make([]string, 0, len(self.keys))
	for auth := range self.keys {
		out = append(out, auth)
	}
	return out
}

// Lookup returns the private key for the given authorization.
func (self *Keychain) Lookup(authorization string) (PrivateKey, error) {
	self.lock.RLock()
	secret, ok := self.keys[authorization]
	self.lock.RUnlock()

	if !ok {
		return PrivateKey{}, newErr(KindUnknownAuthorization, "unknown authorization %q", authorization)
	}
	return secret, nil
}

// PublicKey derives the compressed public key for the key stored under the
// given authorization.
func (self *Keychain) PublicKey(authorization string) (PublicKey, error) {
	secret, err := self.Lookup(authorization)
	if err != nil {
		return PublicKey{}, err
	}
	return derivePublicKey(secret), nil
}

func derivePublicKey(secret PrivateKey) PublicKey {
	priv := secp256k1.PrivKeyFromBytes(secret[:])
	var out PublicKey
	copy(out[:], priv.PubKey().SerializeCompressed())
	return out
}

/*
decodeWif implements the validation pipeline from the WIF decoding spec:
length, version byte, double-SHA256 checksum, in that order. Each failure
mode has a distinct Kind so callers can tell a malformed key from a
tampered one.
*/
func decodeWif(wif string) (PrivateKey, error) {
	raw, err := base58Decode(wif)
	if err != nil {
		return PrivateKey{}, wrapErr(KindInvalidKey, err, "failed to base58-decode WIF")
	}
	if len(raw) != wifLen {
		return PrivateKey{}, newErr(KindInvalidKey, "WIF decodes to %d bytes, want %d", len(raw), wifLen)
	}

	version := raw[0]
	secret := raw[1:33]
	checksum := raw[33:37]

	if version != wifVersion {
		return PrivateKey{}, newErr(KindInvalidKeyVersion, "WIF version byte is 0x%02x, want 0x%02x", version, wifVersion)
	}

	expected := Sha256Twice(raw[:33])[:4]
	if !bytesEqual(checksum, expected) {
		return PrivateKey{}, newErr(KindInvalidChecksum, "WIF checksum mismatch")
	}

	var out PrivateKey
	copy(out[:], secret)
	return out, nil
}
