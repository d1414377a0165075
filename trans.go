package eos

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

/*
Trans is the transport this library calls through for every RPC request.
EOSIO nodes expose a plain POST-a-path, decode-the-body HTTP API — there is
no JSON-RPC 2.0 envelope and no method multiplexing, so unlike a websocket
JSON-RPC transport there's nothing here worth abstracting over but the HTTP
client itself. Kept as an interface anyway so tests can substitute a stub.
*/
type Trans interface {
	// Call POSTs body (marshaled as JSON) to path and decodes the response
	// into out, which must be a pointer. A non-2xx response is decoded as an
	// RpcError and returned as a KindRpcError.
	Call(ctx context.Context, path string, body interface{}, out interface{}) error
}

/*
HttpTrans is the only Trans implementation this library ships. EOSIO has no
standard subscription or streaming API, so unlike an Ethereum client there's
no persistent counterpart to maintain.
*/
type HttpTrans struct {
	BaseURL string
	Client  *http.Client
	Logger  zerolog.Logger
}

// NewHttpTrans builds an HttpTrans pointed at endpoint, with a default
// client timeout and a disabled logger. Use ClientOption via Client to
// customize either.
func NewHttpTrans(endpoint string) *HttpTrans {
	return &HttpTrans{
		BaseURL: strings.TrimSuffix(endpoint, "/"),
		Client:  &http.Client{Timeout: defaultTimeout},
		Logger:  zerolog.Nop(),
	}
}

func (self *HttpTrans) Call(ctx context.Context, path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return wrapErr(KindTransportError, err, "failed to encode request body for %v", path)
		}
	}

	url := self.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return wrapErr(KindTransportError, err, "failed to build request for %v", path)
	}
	req.Header.Set("Content-Type", "application/json")

	self.Logger.Debug().Str("url", url).Msg("eos: sending request")

	res, err := self.Client.Do(req)
	if err != nil {
		return wrapErr(KindTransportError, err, "request to %v failed", path)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return wrapErr(KindTransportError, err, "failed to read response body from %v", path)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		rpcErr := &RpcError{}
		if jsonErr := json.Unmarshal(payload, rpcErr); jsonErr != nil {
			return &Error{Kind: KindRpcError, msg: errors.Errorf("%v returned status %v", path, res.Status).Error(), Body: payload}
		}
		return &Error{Kind: KindRpcError, msg: errors.WithStack(rpcErr).Error(), Body: payload}
	}

	// A 2xx status alone isn't success: nodes sitting behind a reverse proxy
	// may report a chain error in the body without changing the status
	// code, so every response is peeked for an "error" key before out is
	// touched, mirroring the teacher's unconditional envelope check.
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if jsonErr := json.Unmarshal(payload, &envelope); jsonErr == nil && len(envelope.Error) > 0 && string(envelope.Error) != "null" {
		rpcErr := &RpcError{}
		if jsonErr := json.Unmarshal(payload, rpcErr); jsonErr != nil {
			return &Error{Kind: KindRpcError, msg: errors.Errorf("%v returned an error body with status %v", path, res.Status).Error(), Body: payload}
		}
		return &Error{Kind: KindRpcError, msg: errors.WithStack(rpcErr).Error(), Body: payload}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return wrapErr(KindTransportError, err, "failed to decode response from %v", path)
	}
	return nil
}
