package eos

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// signRetryCap bounds the canonical-form retry loop. In practice a
// canonical signature is found within a handful of attempts.
const signRetryCap = 64

/*
Signature is the logical (recoveryID, r, s) triple produced by Sign. R and S
are fixed-width 32-byte big-endian encodings, matching the wire/text form.
*/
type Signature struct {
	RecoveryID byte
	R          [32]byte
	S          [32]byte
}

/*
String renders the "SIG_K1_..." textual form:

	header = max(recoveryID+27, recoveryID+31)
	raw    = header || r || s
	text   = "SIG_K1_" || Base58(raw || RIPEMD160(raw || "K1")[0:4])
*/
func (self Signature) String() string {
	header := self.RecoveryID + 31
	if alt := self.RecoveryID + 27; alt > header {
		header = alt
	}

	raw := make([]byte, 0, 65)
	raw = append(raw, header)
	raw = append(raw, self.R[:]...)
	raw = append(raw, self.S[:]...)

	return "SIG_K1_" + base58EncodeCheckRipemd160(raw, "K1")
}

/*
Sign computes a canonical secp256k1 signature over a 32-byte digest, per the
EOSIO "low-byte" canonicalness rule. It repeatedly derives a deterministic
RFC6979 nonce, perturbed by an attempt counter used as personalization data,
until the resulting (r, s) satisfies the canonicalness predicate. Returns
SigningFailed if no canonical signature is found within signRetryCap
attempts — in practice this never happens.
*/
func Sign(digest [32]byte, secret PrivateKey) (Signature, error) {
	privKey := secp256k1.PrivKeyFromBytes(secret[:])
	secretBytes := secret[:]

	for attempt := 1; attempt <= signRetryCap; attempt++ {
		sig, ok := signAttempt(privKey, secretBytes, digest[:], byte(attempt))
		if ok {
			return sig, nil
		}
	}
	return Signature{}, newErr(KindSigningFailed, "no canonical signature found within %d attempts", signRetryCap)
}

// personalization pads the attempt counter to the 32 bytes NonceRFC6979
// expects for its "extra entropy" input, varying the nonce per attempt
// without touching the digest being signed.
func personalization(attempt byte) []byte {
	var out [32]byte
	out[0] = attempt
	return out[:]
}

func signAttempt(privKey *secp256k1.PrivateKey, secretBytes, digest []byte, attempt byte) (Signature, bool) {
	k := secp256k1.NonceRFC6979(secretBytes, digest, personalization(attempt), nil, 0)
	if k.IsZero() {
		return Signature{}, false
	}

	var point secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &point)
	point.ToAffine()

	rBytes := point.X.Bytes()
	var r secp256k1.ModNScalar
	rOverflow := r.SetByteSlice(rBytes[:])
	if r.IsZero() {
		return Signature{}, false
	}

	var z secp256k1.ModNScalar
	z.SetByteSlice(digest)

	var rd secp256k1.ModNScalar
	rd.Mul2(&r, &privKey.Key)

	var e secp256k1.ModNScalar
	e.Add2(&z, &rd)

	kInv := new(secp256k1.ModNScalar).InverseValNonConst(k)

	var s secp256k1.ModNScalar
	s.Mul2(kInv, &e)
	if s.IsZero() {
		return Signature{}, false
	}

	recoveryID := byte(0)
	if point.Y.IsOdd() {
		recoveryID |= 1
	}
	if rOverflow {
		recoveryID |= 2
	}

	// Normalize to low-S; negating s flips the point used for recovery,
	// so the recovery ID's parity bit flips with it.
	if s.IsOverHalfOrder() {
		s.Negate()
		recoveryID ^= 1
	}

	sig := Signature{RecoveryID: recoveryID, R: r.Bytes(), S: s.Bytes()}
	if !sig.isCanonical() {
		return Signature{}, false
	}
	return sig, true
}

/*
isCanonical implements the EOSIO "low-byte" predicate: neither r nor s may
have a leading byte with its high bit set, and neither may be "negatively
padded" (a leading zero byte whose following byte also has its high bit
clear, which would have been representable in one fewer byte).
*/
func (self Signature) isCanonical() bool {
	b1, b2 := self.R[0], self.R[1]
	b3, b4 := self.S[0], self.S[1]

	return (b1&0x80) == 0 &&
		!(b1 == 0 && (b2&0x80) == 0) &&
		(b3&0x80) == 0 &&
		!(b3 == 0 && (b4&0x80) == 0)
}
