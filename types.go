package eos

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
)

/*
HexBytes is a []byte that JSON-encodes and decodes as a plain hex string,
without the "0x" prefix EOSIO's Ethereum cousins use. The chain uses this
convention for chain_id, block ids, and packed_trx.
*/
type HexBytes []byte

func (self HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(self))
}

func (self *HexBytes) UnmarshalJSON(input []byte) error {
	var str string
	if err := json.Unmarshal(input, &str); err != nil {
		return errors.WithStack(err)
	}
	out, err := hex.DecodeString(str)
	if err != nil {
		return errors.Wrapf(err, "failed to hex-decode %q", str)
	}
	*self = HexBytes(out)
	return nil
}

func (self HexBytes) String() string { return hex.EncodeToString(self) }

// ChainInfo is the subset of "/v1/chain/get_info" this library consumes.
type ChainInfo struct {
	ChainID                   HexBytes `json:"chain_id"`
	LastIrreversibleBlockNum  uint32   `json:"last_irreversible_block_num"`
	LastIrreversibleBlockID   HexBytes `json:"last_irreversible_block_id"`
	LastIrreversibleBlockTime string   `json:"last_irreversible_block_time"`
	HeadBlockTime             string   `json:"head_block_time"`
}

// AbiField is one field of an AbiStruct: a name and a type-grammar string
// as understood by Pack/UnpackRow.
type AbiField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// AbiStruct describes the payload schema of a single contract struct —
// usually, but not always, an action.
type AbiStruct struct {
	Name   string     `json:"name"`
	Base   string     `json:"base"`
	Fields []AbiField `json:"fields"`
}

/*
Abi is the subset of "/v1/chain/get_abi" this library consumes: just the
struct definitions used for packing action data and unpacking table rows.
*/
type Abi struct {
	Structs []AbiStruct `json:"structs"`
}

// StructNames lists every struct name in the ABI, used to build a helpful
// UnknownAction error.
func (self Abi) StructNames() []string {
	out := make([]string, len(self.Structs))
	for i, s := range self.Structs {
		out[i] = s.Name
	}
	return out
}

// Struct finds a struct definition by name.
func (self Abi) Struct(name string) (AbiStruct, bool) {
	for _, s := range self.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return AbiStruct{}, false
}

/*
RpcError is the JSON body an EOSIO node sends back alongside a non-200
status: an outer code/message pair plus the chain's own structured error
info. It implements error so it can travel as the cause of a KindRpcError.
*/
type RpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details struct {
		Code int    `json:"code"`
		Name string `json:"name"`
		What string `json:"what"`
	} `json:"error"`
}

func (self *RpcError) Error() string {
	if self.Details.What != "" {
		return self.Details.What
	}
	return self.Message
}

// PermissionLevel is the actor/permission pair attached to every action.
type PermissionLevel struct {
	Actor      string `json:"actor"`
	Permission string `json:"permission"`
}

/*
Action is a single transaction action: an account and action name, its
authorizing permission levels, and a data payload whose shape is described
by the named struct in the account's ABI.
*/
type Action struct {
	Account       string                 `json:"account"`
	Name          string                 `json:"name"`
	Authorization []PermissionLevel      `json:"authorization"`
	Data          map[string]interface{} `json:"data"`
}

// TxHeader holds the six header fields at the front of a packed
// transaction; MaxNetUsageWords and DelaySec pack as varuint32.
type TxHeader struct {
	Expiration       string `json:"expiration"`
	RefBlockNum      uint16 `json:"ref_block_num"`
	RefBlockPrefix   uint32 `json:"ref_block_prefix"`
	MaxNetUsageWords uint32 `json:"max_net_usage_words"`
	MaxCpuUsageMs    uint8  `json:"max_cpu_usage_ms"`
	DelaySec         uint32 `json:"delay_sec"`
}

// Transaction is the logical shape packed by Pack(tx, "transaction", ...).
type Transaction struct {
	TxHeader
	ContextFreeActions    []Action      `json:"context_free_actions"`
	Actions               []Action      `json:"actions"`
	TransactionExtensions []interface{} `json:"transaction_extensions"`
}
