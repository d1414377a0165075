package eos

import (
	"context"

	"github.com/pkg/errors"
)

// GetInfo calls "/v1/chain/get_info".
func GetInfo(ctx context.Context, trans Trans) (ChainInfo, error) {
	var out ChainInfo
	err := trans.Call(ctx, "/v1/chain/get_info", nil, &out)
	return out, errors.Wrap(err, `error in "get_info"`)
}

// GetAbi calls "/v1/chain/get_abi" for the given account.
func GetAbi(ctx context.Context, trans Trans, account string) (Abi, error) {
	var out struct {
		Abi Abi `json:"abi"`
	}
	body := map[string]interface{}{"account_name": account}
	err := trans.Call(ctx, "/v1/chain/get_abi", body, &out)
	return out.Abi, errors.Wrapf(err, `error in "get_abi" for %q`, account)
}

/*
GetTableRowsOpts mirrors the subset of "get_table_rows" parameters this
library exposes. Scope is "json": false only — row decoding goes through
UnpackRow, not the node's own (and looser) JSON-ABI decoding.
*/
type GetTableRowsOpts struct {
	Code       string `json:"code"`
	Scope      string `json:"scope"`
	Table      string `json:"table"`
	LowerBound string `json:"lower_bound,omitempty"`
	UpperBound string `json:"upper_bound,omitempty"`
	Limit      uint32 `json:"limit,omitempty"`
}

type getTableRowsResult struct {
	Rows []HexBytes `json:"rows"`
	More bool       `json:"more"`
}

// GetTableRows calls "/v1/chain/get_table_rows" with json=false and returns
// the raw packed rows, undecoded. Pair with UnpackRow and the table's ABI
// struct to decode them.
func GetTableRows(ctx context.Context, trans Trans, opts GetTableRowsOpts) ([]HexBytes, bool, error) {
	body := struct {
		GetTableRowsOpts
		Json           bool   `json:"json"`
		EncodeType     string `json:"encode_type,omitempty"`
	}{GetTableRowsOpts: opts, Json: false}

	var out getTableRowsResult
	err := trans.Call(ctx, "/v1/chain/get_table_rows", body, &out)
	if err != nil {
		return nil, false, errors.Wrap(err, `error in "get_table_rows"`)
	}
	return out.Rows, out.More, nil
}

type pushTransactionRequest struct {
	Signatures            []string `json:"signatures"`
	Compression           string   `json:"compression"`
	PackedContextFreeData string   `json:"packed_context_free_data"`
	PackedTrx             HexBytes `json:"packed_trx"`
}

// PushTransactionResult is the subset of "push_transaction"'s response this
// library surfaces to callers.
type PushTransactionResult struct {
	TransactionID string `json:"transaction_id"`
}

func pushTransaction(ctx context.Context, trans Trans, packedTrx []byte, signatures []Signature) (PushTransactionResult, error) {
	sigStrings := make([]string, len(signatures))
	for i, sig := range signatures {
		sigStrings[i] = sig.String()
	}

	req := pushTransactionRequest{
		Signatures:            sigStrings,
		Compression:           "none",
		PackedContextFreeData: "",
		PackedTrx:             packedTrx,
	}

	var out PushTransactionResult
	err := trans.Call(ctx, "/v1/chain/push_transaction", req, &out)
	return out, errors.Wrap(err, `error in "push_transaction"`)
}
