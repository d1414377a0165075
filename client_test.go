package eos

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

/*
stubEosioServer answers get_info, get_abi, and push_transaction with fixed
data, enough to exercise Client.PushTransaction end to end: a fixed chain_id
and block id for TAPOS, and an ABI covering one struct whose fields fall
within this library's supported packing grammar (two names; EOSIO's real
"eosio::bidname" action additionally uses "asset", a type Pack does not
support).
*/
func stubEosioServer(capturedPackedTrx *[]byte, capturedSigs *[]string) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/chain/get_info", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ChainInfo{
			ChainID:                  mustHex32("aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e9"),
			LastIrreversibleBlockNum: 100,
			LastIrreversibleBlockID:   mustHex32("00000064aabbccdd00112233445566778899aabbccddeeff0011223344556677"),
			LastIrreversibleBlockTime: "2026-08-06T00:00:00",
			HeadBlockTime:             "2026-08-06T00:05:00",
		})
	})

	mux.HandleFunc("/v1/chain/get_abi", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"abi": Abi{Structs: []AbiStruct{
				{
					Name: "bidname",
					Fields: []AbiField{
						{Name: "bidname", Type: "name"},
						{Name: "bidder", Type: "name"},
					},
				},
			}},
		})
	})

	mux.HandleFunc("/v1/chain/push_transaction", func(w http.ResponseWriter, r *http.Request) {
		// t.Fatal must run on the test's own goroutine, not this handler's, so
		// decode failures here are reported via the HTTP response instead and
		// surfaced through the PushTransaction error the test goroutine checks.
		var req struct {
			Signatures []string `json:"signatures"`
			PackedTrx  string   `json:"packed_trx"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(RpcError{Message: err.Error()})
			return
		}
		packed, err := hex.DecodeString(req.PackedTrx)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(RpcError{Message: err.Error()})
			return
		}
		*capturedPackedTrx = packed
		*capturedSigs = req.Signatures

		_ = json.NewEncoder(w).Encode(PushTransactionResult{TransactionID: "deadbeef"})
	})

	return httptest.NewServer(mux)
}

// mustHex32 decodes s as hex, padding or truncating to exactly 32 bytes so
// fixture constants don't need to be counted by hand.
func mustHex32(s string) HexBytes {
	for len(s) < 64 {
		s += "00"
	}
	out, err := hex.DecodeString(s[:64])
	if err != nil {
		panic(err)
	}
	return out
}

func TestClientPushTransactionEndToEnd(t *testing.T) {
	var packedTrx []byte
	var signatures []string
	server := stubEosioServer(&packedTrx, &signatures)
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.AddKey("alice@active", testSecretWif()); err != nil {
		t.Fatalf("AddKey failed: %v", err)
	}

	action := Action{
		Account:       "eosio",
		Name:          "bidname",
		Authorization: []PermissionLevel{{Actor: "alice", Permission: "active"}},
		Data: map[string]interface{}{
			"bidname": "myname",
			"bidder":  "alice",
		},
	}

	result, err := client.PushTransaction([]Action{action}, 30*time.Second)
	if err != nil {
		t.Fatalf("PushTransaction failed: %v", err)
	}
	if result.TransactionID != "deadbeef" {
		t.Fatalf("unexpected transaction id %q", result.TransactionID)
	}

	// Header layout: expiration(4) || ref_block_num(2) || ref_block_prefix(4).
	if len(packedTrx) < 10 {
		t.Fatalf("packed_trx too short: %d bytes", len(packedTrx))
	}

	if len(signatures) != 1 {
		t.Fatalf("expected exactly one signature, got %d", len(signatures))
	}
	if !strings.HasPrefix(signatures[0], "SIG_K1_") {
		t.Fatalf("signature %q missing SIG_K1_ prefix", signatures[0])
	}
	// A 69-byte (header || r || s || checksum) payload whose leading header
	// byte is 31..34 base58-encodes to 94 characters; the check below
	// accepts a wider range around that figure.
	base58Len := len(signatures[0]) - len("SIG_K1_")
	if base58Len < 90 || base58Len > 105 {
		t.Fatalf("signature %q has an implausible base58 length %d", signatures[0], base58Len)
	}
}

// testSecretWif returns testWif, reused from the keychain test fixtures.
func testSecretWif() string { return testWif }
