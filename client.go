package eos

import (
	"context"
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

/*
Client composes a Trans, a Keychain, and the ABI-driven serializer into the
full "sign and push a transaction" workflow described by this package: fetch
chain info, build a Transaction, pack it, sign its digest, and push it.

A Client is safe for concurrent use; its own state is just the embedded
Keychain, which already guards itself.
*/
type Client struct {
	trans    Trans
	keychain *Keychain
	logger   zerolog.Logger
}

// ClientOption configures a Client built by NewClient.
type ClientOption func(*Client)

// WithHTTPClient overrides the *http.Client used for RPC requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(self *Client) {
		if trans, ok := self.trans.(*HttpTrans); ok {
			trans.Client = client
		}
	}
}

// WithTimeout sets the RPC request timeout. Ignored if WithHTTPClient is
// also passed after it, since that replaces the client wholesale.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(self *Client) {
		if trans, ok := self.trans.(*HttpTrans); ok {
			trans.Client.Timeout = timeout
		}
	}
}

// WithLogger attaches a zerolog.Logger used for request-level diagnostics.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(self *Client) {
		self.logger = logger
		if trans, ok := self.trans.(*HttpTrans); ok {
			trans.Logger = logger
		}
	}
}

// NewClient builds a Client against the given EOSIO node endpoint (e.g.
// "https://eos.greymass.com"), with an empty Keychain ready for AddKey.
func NewClient(rpcEndpoint string, opts ...ClientOption) *Client {
	self := &Client{
		trans:    NewHttpTrans(rpcEndpoint),
		keychain: NewKeychain(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(self)
	}
	return self
}

// AddKey decodes a WIF-encoded private key and associates it with the given
// "actor@permission" authorization.
func (self *Client) AddKey(authorization, wif string) error {
	return self.keychain.AddKey(authorization, wif)
}

// Keychain exposes the Client's underlying Keychain, for callers that need
// PublicKey/Authorizations/Remove directly.
func (self *Client) Keychain() *Keychain { return self.keychain }

// GetInfo calls "/v1/chain/get_info".
func (self *Client) GetInfo() (ChainInfo, error) { return self.GetInfoCtx(context.Background()) }

func (self *Client) GetInfoCtx(ctx context.Context) (ChainInfo, error) {
	return GetInfo(ctx, self.trans)
}

// GetAbi calls "/v1/chain/get_abi" for the given account.
func (self *Client) GetAbi(account string) (Abi, error) {
	return self.GetAbiCtx(context.Background(), account)
}

func (self *Client) GetAbiCtx(ctx context.Context, account string) (Abi, error) {
	return GetAbi(ctx, self.trans, account)
}

// GetTableRows calls "/v1/chain/get_table_rows" and returns raw packed rows.
func (self *Client) GetTableRows(opts GetTableRowsOpts) ([]HexBytes, bool, error) {
	return self.GetTableRowsCtx(context.Background(), opts)
}

func (self *Client) GetTableRowsCtx(ctx context.Context, opts GetTableRowsOpts) ([]HexBytes, bool, error) {
	return GetTableRows(ctx, self.trans, opts)
}

var _ AbiProvider = (*cachingAbiProvider)(nil)

/*
cachingAbiProvider wraps a Client's GetAbiCtx, memoizing each account's ABI
for the lifetime of a single PushTransaction call: a transaction with
several actions against the same contract should not re-fetch its ABI.
*/
type cachingAbiProvider struct {
	ctx    context.Context
	client *Client
	cache  map[string]Abi
}

func (self *cachingAbiProvider) GetAbi(account string) (Abi, error) {
	if abi, ok := self.cache[account]; ok {
		return abi, nil
	}
	abi, err := self.client.GetAbiCtx(self.ctx, account)
	if err != nil {
		return Abi{}, err
	}
	self.cache[account] = abi
	return abi, nil
}

// DefaultExpiration is the transaction expiration window used when a caller
// doesn't need a different one.
const DefaultExpiration = 30 * time.Second

/*
PushTransaction signs and pushes a transaction built from the given actions,
expiring expireAfter past the last irreversible block's time. It signs with
one key per distinct "actor@permission" authorization attached to the
actions.

The sequence: look up every authorizing key in the Keychain (an unknown one
fails before any network call), fetch chain info for the TAPOS (transaction
as proof of stake) fields, build the transaction body, pack it under the
"transaction" type, sign chain_id || packed || 32 zero bytes once per
authorizing key, then push.
*/
func (self *Client) PushTransaction(actions []Action, expireAfter time.Duration) (PushTransactionResult, error) {
	return self.PushTransactionCtx(context.Background(), actions, expireAfter)
}

func (self *Client) PushTransactionCtx(ctx context.Context, actions []Action, expireAfter time.Duration) (PushTransactionResult, error) {
	authorizations := collectAuthorizations(actions)
	secrets := make([]PrivateKey, 0, len(authorizations))
	for _, auth := range authorizations {
		secret, err := self.keychain.Lookup(auth)
		if err != nil {
			return PushTransactionResult{}, err
		}
		secrets = append(secrets, secret)
	}

	info, err := self.GetInfoCtx(ctx)
	if err != nil {
		return PushTransactionResult{}, err
	}

	tx, err := buildTransaction(info, actions, expireAfter)
	if err != nil {
		return PushTransactionResult{}, err
	}

	provider := &cachingAbiProvider{ctx: ctx, client: self, cache: map[string]Abi{}}
	packed, err := Pack(tx, "transaction", PackArgs{Provider: provider})
	if err != nil {
		return PushTransactionResult{}, err
	}

	digest := signingDigest(info.ChainID, packed)

	signatures := make([]Signature, 0, len(secrets))
	for _, secret := range secrets {
		sig, err := Sign(digest, secret)
		if err != nil {
			return PushTransactionResult{}, err
		}
		signatures = append(signatures, sig)
	}

	return pushTransaction(ctx, self.trans, packed, signatures)
}

// buildTransaction derives the TAPOS header fields from ChainInfo and
// assembles the Transaction value that Pack(..., "transaction", ...) expects.
func buildTransaction(info ChainInfo, actions []Action, expireAfter time.Duration) (Transaction, error) {
	blockID := info.LastIrreversibleBlockID
	if len(blockID) < 12 {
		return Transaction{}, errors.New("get_info returned a malformed block id")
	}

	refBlockNum := uint16(info.LastIrreversibleBlockNum & 0xffff)
	// ref_block_prefix is the little-endian uint32 at byte offset 8 of the
	// 32-byte block id.
	refBlockPrefix := uint32(blockID[8]) | uint32(blockID[9])<<8 |
		uint32(blockID[10])<<16 | uint32(blockID[11])<<24

	expiration, err := time.Parse(time.RFC3339, info.LastIrreversibleBlockTime)
	if err != nil {
		expiration, err = time.Parse("2006-01-02T15:04:05", info.LastIrreversibleBlockTime)
	}
	if err != nil {
		return Transaction{}, errors.Wrap(err, "failed to parse last_irreversible_block_time")
	}
	expiration = expiration.Add(expireAfter)

	return Transaction{
		TxHeader: TxHeader{
			Expiration:       expiration.UTC().Format("2006-01-02T15:04:05"),
			RefBlockNum:      refBlockNum,
			RefBlockPrefix:   refBlockPrefix,
			MaxNetUsageWords: 0,
			MaxCpuUsageMs:    0,
			DelaySec:         0,
		},
		ContextFreeActions:    nil,
		Actions:               actions,
		TransactionExtensions: nil,
	}, nil
}

// signingDigest computes sha256(chainID || packedTrx || 32 zero bytes), the
// digest EOSIO signs instead of the packed transaction bytes directly.
func signingDigest(chainID []byte, packedTrx []byte) [32]byte {
	var zeros [32]byte
	buf := make([]byte, 0, len(chainID)+len(packedTrx)+32)
	buf = append(buf, chainID...)
	buf = append(buf, packedTrx...)
	buf = append(buf, zeros[:]...)
	return sha256.Sum256(buf)
}

// collectAuthorizations returns the distinct "actor@permission" strings
// referenced by actions, in first-seen order.
func collectAuthorizations(actions []Action) []string {
	seen := map[string]bool{}
	var out []string
	for _, action := range actions {
		for _, level := range action.Authorization {
			auth := level.Actor + "@" + level.Permission
			if !seen[auth] {
				seen[auth] = true
				out = append(out, auth)
			}
		}
	}
	return out
}
