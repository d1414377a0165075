package eos

import "github.com/pkg/errors"

// Kind classifies an Error without tying callers to its message text,
// which is explicitly not part of any stability contract.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidKey
	KindInvalidKeyVersion
	KindInvalidChecksum
	KindMalformedAuthorization
	KindUnknownAuthorization
	KindUnknownAction
	KindMissingField
	KindOutOfRange
	KindUnsupportedType
	KindSigningFailed
	KindRpcError
	KindTransportError
)

func (self Kind) String() string {
	switch self {
	case KindInvalidKey:
		return "InvalidKey"
	case KindInvalidKeyVersion:
		return "InvalidKeyVersion"
	case KindInvalidChecksum:
		return "InvalidChecksum"
	case KindMalformedAuthorization:
		return "MalformedAuthorization"
	case KindUnknownAuthorization:
		return "UnknownAuthorization"
	case KindUnknownAction:
		return "UnknownAction"
	case KindMissingField:
		return "MissingField"
	case KindOutOfRange:
		return "OutOfRange"
	case KindUnsupportedType:
		return "UnsupportedType"
	case KindSigningFailed:
		return "SigningFailed"
	case KindRpcError:
		return "RpcError"
	case KindTransportError:
		return "TransportError"
	default:
		return "Unknown"
	}
}

/*
Error is the error type behind every failure that has a Kind, possibly
wrapped with added context. A few failures with no matching Kind (a malformed
block id or block time from get_info, a missing AbiProvider, the errors of
HexBytes.UnmarshalJSON itself) are returned as plain errors. The Kind tells a caller what
went wrong programmatically; the message is for humans and is not stable
across versions.
*/
type Error struct {
	Kind Kind
	msg  string
	// Body carries the raw RPC response for Kind == KindRpcError.
	Body []byte
}

func (self *Error) Error() string {
	if len(self.Body) > 0 {
		return self.msg + ": " + string(self.Body)
	}
	return self.msg
}

func newErr(kind Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, msg: errors.Errorf(format, args...).Error()})
}

func wrapErr(kind Kind, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return newErr(kind, format, args...)
	}
	return errors.WithStack(&Error{
		Kind: kind,
		msg:  errors.Wrapf(cause, format, args...).Error(),
	})
}

// As reports whether err (or anything it wraps) is an *Error of the given Kind.
func As(err error, kind Kind) bool {
	var target *Error
	return errors.As(err, &target) && target.Kind == kind
}
