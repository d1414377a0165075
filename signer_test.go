package eos

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestSignProducesCanonicalSignature(t *testing.T) {
	secret, err := decodeWif(testWif)
	if err != nil {
		t.Fatalf("decodeWif failed: %v", err)
	}

	var digest [32]byte
	for i := range digest {
		digest[i] = byte(i)
	}

	sig, err := Sign(digest, secret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !sig.isCanonical() {
		t.Fatalf("Sign returned a non-canonical signature: %+v", sig)
	}
}

func TestSignIsDeterministic(t *testing.T) {
	secret, err := decodeWif(testWif)
	if err != nil {
		t.Fatalf("decodeWif failed: %v", err)
	}

	var digest [32]byte
	for i := range digest {
		digest[i] = byte(i * 7)
	}

	first, err := Sign(digest, secret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	second, err := Sign(digest, secret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if first.String() != second.String() {
		t.Fatalf("Sign is not deterministic: %v != %v", first.String(), second.String())
	}
}

/*
TestSignRetriesPastNonCanonicalFirstAttempt drives the for-loop in Sign past
its first iteration: it searches for a digest whose attempt-1 signature is
non-canonical, then checks that Sign still returns a canonical signature for
that digest (necessarily produced by a later attempt, since isCanonical on
attempt 1 is reconfirmed false below).
*/
func TestSignRetriesPastNonCanonicalFirstAttempt(t *testing.T) {
	secret, err := decodeWif(testWif)
	if err != nil {
		t.Fatalf("decodeWif failed: %v", err)
	}
	privKey := secp256k1.PrivKeyFromBytes(secret[:])

	var digest [32]byte
	found := false
	for seed := 0; seed < 256; seed++ {
		for i := range digest {
			digest[i] = byte(seed + i*31)
		}
		if _, ok := signAttempt(privKey, secret[:], digest[:], 1); !ok {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("couldn't find a digest whose first signing attempt is non-canonical")
	}

	if _, ok := signAttempt(privKey, secret[:], digest[:], 1); ok {
		t.Fatal("expected attempt 1 to be non-canonical for this digest")
	}

	sig, err := Sign(digest, secret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !sig.isCanonical() {
		t.Fatalf("Sign returned a non-canonical signature: %+v", sig)
	}
}

func TestIsCanonicalRejectsHighBitR(t *testing.T) {
	sig := Signature{}
	sig.R[0] = 0x80 // high bit set: not canonical
	if sig.isCanonical() {
		t.Fatal("expected non-canonical signature with R[0] high bit set")
	}
}

func TestIsCanonicalRejectsNegativelyPaddedR(t *testing.T) {
	sig := Signature{}
	sig.R[0] = 0x00
	sig.R[1] = 0x01 // high bit of R[1] clear: would fit in one fewer byte
	if sig.isCanonical() {
		t.Fatal("expected non-canonical signature with negatively padded R")
	}
}

func TestIsCanonicalAcceptsWellFormedSignature(t *testing.T) {
	sig := Signature{}
	sig.R[0] = 0x01
	sig.S[0] = 0x01
	if !sig.isCanonical() {
		t.Fatal("expected canonical signature")
	}
}
