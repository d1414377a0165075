package eos

import (
	"encoding/binary"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"
)

/*
AbiProvider resolves an account's ABI on demand. The orchestrator (Client)
implements this by calling "get_abi" over RPC; keeping it as an interface,
per the design note in the originating spec, lets the serializer stay free
of any transport dependency.
*/
type AbiProvider interface {
	GetAbi(account string) (Abi, error)
}

/*
PackArgs carries whatever extra context a composite type needs beyond its
value and type string: an explicit field list for "struct", element types
for "pair", and an AbiProvider for "action"/"transaction". Primitive types
(uint8, varuint32, name, bytes, time_point_sec, and T[] of any of those)
need none of this and ignore it.
*/
type PackArgs struct {
	// Bytes wraps a "struct" result as a length-prefixed blob.
	Bytes bool
	// Fields is the field list for type == "struct".
	Fields []AbiField
	// Elems holds the two element type names for type == "pair".
	Elems [2]string
	// Provider resolves ABIs for type == "action" / "transaction".
	Provider AbiProvider
}

/*
Pack is the single recursive entry point for EOSIO's binary serialization.
The type string is a small DSL: a "T[]" suffix recurses into an array of T;
"struct", "pair", "action", and "transaction" are composite dispatches that
consult args; everything else is a primitive.
*/
func Pack(value interface{}, typ string, args PackArgs) ([]byte, error) {
	switch {
	case strings.HasSuffix(typ, "[]"):
		return packArray(value, strings.TrimSuffix(typ, "[]"), args)
	case typ == "struct":
		return packStruct(value, args)
	case typ == "pair":
		return packPair(value, args)
	case typ == "action":
		return packAction(value, args)
	case typ == "transaction":
		return packTransaction(value, args)
	default:
		return packPrimitive(value, typ)
	}
}

func packArray(value interface{}, elemType string, args PackArgs) ([]byte, error) {
	elems, err := toSlice(value)
	if err != nil {
		return nil, err
	}

	out := packVaruint32(uint32(len(elems)))
	for _, elem := range elems {
		chunk, err := Pack(elem, elemType, args)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func packPrimitive(value interface{}, typ string) ([]byte, error) {
	switch typ {
	case "uint8":
		n, err := toUint64(value)
		if err != nil {
			return nil, err
		}
		if n > 0xff {
			return nil, newErr(KindOutOfRange, "%d does not fit in uint8", n)
		}
		return []byte{byte(n)}, nil

	case "uint16":
		n, err := toUint64(value)
		if err != nil {
			return nil, err
		}
		if n > 0xffff {
			return nil, newErr(KindOutOfRange, "%d does not fit in uint16", n)
		}
		out := make([]byte, 2)
		binary.LittleEndian.PutUint16(out, uint16(n))
		return out, nil

	case "uint32":
		n, err := toUint64(value)
		if err != nil {
			return nil, err
		}
		if n > 0xffffffff {
			return nil, newErr(KindOutOfRange, "%d does not fit in uint32", n)
		}
		out := make([]byte, 4)
		binary.LittleEndian.PutUint32(out, uint32(n))
		return out, nil

	case "varuint32":
		n, err := toUint64(value)
		if err != nil {
			return nil, err
		}
		if n > 0xffffffff {
			return nil, newErr(KindOutOfRange, "%d does not fit in a varuint32", n)
		}
		return packVaruint32(uint32(n)), nil

	case "time_point_sec":
		return packTimePointSec(value)

	case "bytes":
		return packBytesField(value)

	case "name":
		return packName(value)

	default:
		return nil, newErr(KindUnsupportedType, "unsupported type %q", typ)
	}
}

func packTimePointSec(value interface{}) ([]byte, error) {
	str, ok := value.(string)
	if !ok {
		return nil, newErr(KindOutOfRange, "time_point_sec expects an ISO-8601 string, got %T", value)
	}
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05", str)
	}
	if err != nil {
		return nil, wrapErr(KindOutOfRange, err, "failed to parse time_point_sec %q", str)
	}

	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(t.Unix()))
	return out, nil
}

// packBytesField packs a raw-bytes value as varuint32(len) || raw.
func packBytesField(value interface{}) ([]byte, error) {
	raw, err := toBytes(value)
	if err != nil {
		return nil, err
	}
	out := packVaruint32(uint32(len(raw)))
	return append(out, raw...), nil
}

func packName(value interface{}) ([]byte, error) {
	var name Name
	switch v := value.(type) {
	case Name:
		name = v
	case string:
		parsed, err := ParseName(v)
		if err != nil {
			return nil, err
		}
		name = parsed
	default:
		return nil, newErr(KindOutOfRange, "name expects a string or Name, got %T", value)
	}

	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, uint64(name))
	return out, nil
}

/*
packStruct concatenates each of args.Fields, in declaration order, serialized
under its declared type. value must be a map[string]interface{}; a missing
key is MissingField. If args.Bytes, the concatenation is wrapped as a
length-prefixed blob.
*/
func packStruct(value interface{}, args PackArgs) ([]byte, error) {
	data, ok := value.(map[string]interface{})
	if !ok {
		return nil, newErr(KindOutOfRange, "struct expects a map[string]interface{}, got %T", value)
	}

	var out []byte
	for _, field := range args.Fields {
		fieldVal, ok := data[field.Name]
		if !ok {
			return nil, newErr(KindMissingField, "missing field %q", field.Name)
		}
		chunk, err := Pack(fieldVal, field.Type, PackArgs{})
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}

	if args.Bytes {
		wrapped := packVaruint32(uint32(len(out)))
		return append(wrapped, out...), nil
	}
	return out, nil
}

/*
packPair emits varuint32(count) followed by each element serialized under
its corresponding args.Elems type. count must be 0 or 2; EOSIO uses this
shape exclusively for transaction_extensions, which this library always
emits empty.
*/
func packPair(value interface{}, args PackArgs) ([]byte, error) {
	elems, err := toSlice(value)
	if err != nil {
		return nil, err
	}
	if len(elems) != 0 && len(elems) != 2 {
		return nil, newErr(KindOutOfRange, "pair count must be 0 or 2, got %d", len(elems))
	}

	out := packVaruint32(uint32(len(elems)))
	for i, elem := range elems {
		chunk, err := Pack(elem, args.Elems[i], PackArgs{})
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

/*
packAction resolves value.Name against value.Account's ABI, then packs
account:name, name:name, authorization:permission_level[], and data as a
length-prefixed struct blob using the resolved schema.
*/
func packAction(value interface{}, args PackArgs) ([]byte, error) {
	action, ok := value.(Action)
	if !ok {
		return nil, newErr(KindOutOfRange, "action expects an Action, got %T", value)
	}
	if args.Provider == nil {
		return nil, errors.New("packing an action requires an AbiProvider")
	}

	abi, err := args.Provider.GetAbi(action.Account)
	if err != nil {
		return nil, err
	}

	structDef, ok := abi.Struct(action.Name)
	if !ok {
		return nil, newErr(KindUnknownAction, "action %q not found in ABI for %q; known structs: %v",
			action.Name, action.Account, abi.StructNames())
	}

	accountBytes, err := packName(action.Account)
	if err != nil {
		return nil, err
	}
	nameBytes, err := packName(action.Name)
	if err != nil {
		return nil, err
	}
	authBytes, err := packAuthorization(action.Authorization)
	if err != nil {
		return nil, err
	}
	dataBytes, err := packStruct(action.Data, PackArgs{Fields: structDef.Fields, Bytes: true})
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(accountBytes)+len(nameBytes)+len(authBytes)+len(dataBytes))
	out = append(out, accountBytes...)
	out = append(out, nameBytes...)
	out = append(out, authBytes...)
	out = append(out, dataBytes...)
	return out, nil
}

func packAuthorization(levels []PermissionLevel) ([]byte, error) {
	out := packVaruint32(uint32(len(levels)))
	for _, level := range levels {
		actorBytes, err := packName(level.Actor)
		if err != nil {
			return nil, err
		}
		permBytes, err := packName(level.Permission)
		if err != nil {
			return nil, err
		}
		out = append(out, actorBytes...)
		out = append(out, permBytes...)
	}
	return out, nil
}

/*
packTransaction emits the header (6 fixed fields) then the body
(context_free_actions[], actions[], and an always-empty
transaction_extensions pair).
*/
func packTransaction(value interface{}, args PackArgs) ([]byte, error) {
	tx, ok := value.(Transaction)
	if !ok {
		return nil, newErr(KindOutOfRange, "transaction expects a Transaction, got %T", value)
	}

	expBytes, err := packTimePointSec(tx.Expiration)
	if err != nil {
		return nil, err
	}
	refNumBytes, err := packPrimitive(uint64(tx.RefBlockNum), "uint16")
	if err != nil {
		return nil, err
	}
	refPrefixBytes, err := packPrimitive(uint64(tx.RefBlockPrefix), "uint32")
	if err != nil {
		return nil, err
	}
	maxNetBytes, err := packPrimitive(uint64(tx.MaxNetUsageWords), "varuint32")
	if err != nil {
		return nil, err
	}
	maxCpuBytes, err := packPrimitive(uint64(tx.MaxCpuUsageMs), "uint8")
	if err != nil {
		return nil, err
	}
	delayBytes, err := packPrimitive(uint64(tx.DelaySec), "varuint32")
	if err != nil {
		return nil, err
	}

	cfaBytes, err := packActionArray(tx.ContextFreeActions, args.Provider)
	if err != nil {
		return nil, err
	}
	actionsBytes, err := packActionArray(tx.Actions, args.Provider)
	if err != nil {
		return nil, err
	}

	var out []byte
	out = append(out, expBytes...)
	out = append(out, refNumBytes...)
	out = append(out, refPrefixBytes...)
	out = append(out, maxNetBytes...)
	out = append(out, maxCpuBytes...)
	out = append(out, delayBytes...)
	out = append(out, cfaBytes...)
	out = append(out, actionsBytes...)
	// transaction_extensions is always empty: a bare zero count, per
	// packPair's semantics for a zero-length pair.
	out = append(out, packVaruint32(0)...)
	return out, nil
}

func packActionArray(actions []Action, provider AbiProvider) ([]byte, error) {
	out := packVaruint32(uint32(len(actions)))
	for _, action := range actions {
		chunk, err := Pack(action, "action", PackArgs{Provider: provider})
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// packVaruint32 encodes value using the standard LEB128-style 7-bit-group,
// continuation-bit scheme EOSIO uses for all varuint32 fields.
func packVaruint32(value uint32) []byte {
	out := make([]byte, 0, 5)
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if value != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if value == 0 {
			return out
		}
	}
}

// UnpackVaruint32 decodes a varuint32 from the front of input, returning the
// value and the number of bytes consumed.
func UnpackVaruint32(input []byte) (uint32, int, error) {
	var result uint32
	var shift uint

	for i, b := range input {
		if shift >= 35 {
			return 0, 0, newErr(KindOutOfRange, "varuint32 is too long")
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, newErr(KindOutOfRange, "truncated varuint32")
}

func toSlice(value interface{}) ([]interface{}, error) {
	if slice, ok := value.([]interface{}); ok {
		return slice, nil
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, newErr(KindOutOfRange, "expected a slice, got %T", value)
	}

	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func toBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case HexBytes:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, newErr(KindOutOfRange, "bytes expects []byte, got %T", value)
	}
}

// toUint64 accepts the numeric Go kinds that can appear in hand-built
// transaction values or in data decoded from JSON (where numbers surface as
// float64).
func toUint64(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint:
		return uint64(v), nil
	case int:
		return checkNonNegative(int64(v))
	case int64:
		return checkNonNegative(v)
	case int32:
		return checkNonNegative(int64(v))
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, newErr(KindOutOfRange, "%v is not a non-negative integer", v)
		}
		return uint64(v), nil
	case Name:
		return uint64(v), nil
	default:
		return 0, newErr(KindOutOfRange, "expected an integer, got %T", value)
	}
}

func checkNonNegative(v int64) (uint64, error) {
	if v < 0 {
		return 0, newErr(KindOutOfRange, "%d is negative", v)
	}
	return uint64(v), nil
}
