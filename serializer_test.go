package eos

import (
	"bytes"
	"testing"
)

func TestPackVaruint32Vectors(t *testing.T) {
	cases := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, c := range cases {
		got := packVaruint32(c.value)
		if !bytes.Equal(got, c.want) {
			t.Fatalf("packVaruint32(%d) = % x, want % x", c.value, got, c.want)
		}

		decoded, n, err := UnpackVaruint32(got)
		if err != nil {
			t.Fatalf("UnpackVaruint32 failed on % x: %v", got, err)
		}
		if decoded != c.value || n != len(got) {
			t.Fatalf("UnpackVaruint32(% x) = (%d, %d), want (%d, %d)", got, decoded, n, c.value, len(got))
		}
	}
}

func TestPackPrimitiveOutOfRange(t *testing.T) {
	if _, err := Pack(256, "uint8", PackArgs{}); !As(err, KindOutOfRange) {
		t.Fatalf("expected KindOutOfRange, got %v", err)
	}
	if _, err := Pack(-1, "uint8", PackArgs{}); !As(err, KindOutOfRange) {
		t.Fatalf("expected KindOutOfRange, got %v", err)
	}
}

func TestPackArrayLargeRegression(t *testing.T) {
	const count = 257 // past the old single-byte cap of 255; its varuint32 prefix takes 2 bytes
	values := make([]interface{}, count)
	for i := range values {
		values[i] = uint32(i)
	}

	packed, err := Pack(values, "uint32[]", PackArgs{})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	n, consumed, err := UnpackVaruint32(packed)
	if err != nil {
		t.Fatalf("failed to read back length prefix: %v", err)
	}
	if n != count {
		t.Fatalf("length prefix decoded to %d, want %d", n, count)
	}
	if len(packed) != consumed+count*4 {
		t.Fatalf("packed length %d, want %d", len(packed), consumed+count*4)
	}
}

func TestPackStructMissingField(t *testing.T) {
	fields := []AbiField{{Name: "from", Type: "name"}, {Name: "to", Type: "name"}}
	_, err := Pack(map[string]interface{}{"from": "alice"}, "struct", PackArgs{Fields: fields})
	if !As(err, KindMissingField) {
		t.Fatalf("expected KindMissingField, got %v", err)
	}
}

func TestPackStructBytesWrapped(t *testing.T) {
	fields := []AbiField{{Name: "from", Type: "name"}, {Name: "to", Type: "name"}}
	value := map[string]interface{}{"from": "alice", "to": "bob"}

	packed, err := Pack(value, "struct", PackArgs{Fields: fields, Bytes: true})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	length, n, err := UnpackVaruint32(packed)
	if err != nil {
		t.Fatalf("failed to read length prefix: %v", err)
	}
	if int(length) != 16 { // two 8-byte names
		t.Fatalf("wrapped struct length %d, want 16", length)
	}
	if len(packed) != n+16 {
		t.Fatalf("packed length %d, want %d", len(packed), n+16)
	}
}

func TestPackPairEmptyAndFull(t *testing.T) {
	empty, err := Pack([]interface{}{}, "pair", PackArgs{Elems: [2]string{"uint16", "bytes"}})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if !bytes.Equal(empty, []byte{0x00}) {
		t.Fatalf("empty pair packed to % x, want [00]", empty)
	}

	full, err := Pack([]interface{}{uint32(1), []byte{0xaa, 0xbb}}, "pair", PackArgs{Elems: [2]string{"uint16", "bytes"}})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	want := []byte{0x02, 0x01, 0x00, 0x02, 0xaa, 0xbb}
	if !bytes.Equal(full, want) {
		t.Fatalf("full pair packed to % x, want % x", full, want)
	}
}

type fakeAbiProvider map[string]Abi

func (self fakeAbiProvider) GetAbi(account string) (Abi, error) {
	abi, ok := self[account]
	if !ok {
		return Abi{}, newErr(KindUnknownAction, "no ABI for %q in test fixture", account)
	}
	return abi, nil
}

func transferAbi() Abi {
	return Abi{Structs: []AbiStruct{
		{
			Name: "transfer",
			Fields: []AbiField{
				{Name: "from", Type: "name"},
				{Name: "to", Type: "name"},
				{Name: "quantity", Type: "uint32"},
				{Name: "memo", Type: "bytes"},
			},
		},
	}}
}

func TestPackActionUnknownAction(t *testing.T) {
	provider := fakeAbiProvider{"eosio.token": transferAbi()}
	action := Action{
		Account:       "eosio.token",
		Name:          "nonexistent",
		Authorization: []PermissionLevel{{Actor: "alice", Permission: "active"}},
		Data:          map[string]interface{}{},
	}

	_, err := Pack(action, "action", PackArgs{Provider: provider})
	if !As(err, KindUnknownAction) {
		t.Fatalf("expected KindUnknownAction, got %v", err)
	}
}

func TestPackActionRoundTripShape(t *testing.T) {
	provider := fakeAbiProvider{"eosio.token": transferAbi()}
	action := Action{
		Account:       "eosio.token",
		Name:          "transfer",
		Authorization: []PermissionLevel{{Actor: "alice", Permission: "active"}},
		Data: map[string]interface{}{
			"from":     "alice",
			"to":       "bob",
			"quantity": uint32(100),
			"memo":     []byte("hi"),
		},
	}

	packed, err := Pack(action, "action", PackArgs{Provider: provider})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	// account(8) + name(8) + auth_count(1) + actor(8) + permission(8) = 33
	// bytes before the length-prefixed data blob.
	const headerLen = 33
	if len(packed) < headerLen+1 {
		t.Fatalf("packed action too short: %d bytes", len(packed))
	}

	dataLen, n, err := UnpackVaruint32(packed[headerLen:])
	if err != nil {
		t.Fatalf("failed to read data length prefix: %v", err)
	}
	// from(8) + to(8) + quantity(4) + memo_len_prefix(1) + memo(2) = 23
	if int(dataLen) != 23 {
		t.Fatalf("data blob length %d, want 23", dataLen)
	}
	if len(packed) != headerLen+n+int(dataLen) {
		t.Fatalf("packed action length %d, want %d", len(packed), headerLen+n+int(dataLen))
	}
}

func TestPackTransactionEmptyExtensions(t *testing.T) {
	provider := fakeAbiProvider{}
	tx := Transaction{
		TxHeader: TxHeader{
			Expiration:     "2026-08-06T00:00:00",
			RefBlockNum:    1,
			RefBlockPrefix: 2,
		},
	}

	packed, err := Pack(tx, "transaction", PackArgs{Provider: provider})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	// Last byte is the transaction_extensions pair count, always zero.
	if packed[len(packed)-1] != 0x00 {
		t.Fatalf("expected trailing zero byte for empty extensions, got %v", packed[len(packed)-1])
	}
}
