package eos

import "encoding/binary"

/*
UnpackRow decodes a single raw row from "get_table_rows" (with json=false)
against a field list from the table's ABI struct. Supported field types are
name, uint64, int64, uint32, uint16, uint8, and varuint32; anything else is
UnsupportedType.
*/
func UnpackRow(input []byte, fields []AbiField) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields))
	rest := input

	for _, field := range fields {
		value, tail, err := unpackValue(rest, field.Type)
		if err != nil {
			return nil, err
		}
		out[field.Name] = value
		rest = tail
	}
	return out, nil
}

func unpackValue(input []byte, typ string) (interface{}, []byte, error) {
	switch typ {
	case "name":
		if len(input) < 8 {
			return nil, nil, newErr(KindOutOfRange, "truncated name")
		}
		name := Name(binary.LittleEndian.Uint64(input[:8]))
		return name.String(), input[8:], nil

	case "uint64":
		if len(input) < 8 {
			return nil, nil, newErr(KindOutOfRange, "truncated uint64")
		}
		return binary.LittleEndian.Uint64(input[:8]), input[8:], nil

	case "int64":
		if len(input) < 8 {
			return nil, nil, newErr(KindOutOfRange, "truncated int64")
		}
		return int64(binary.LittleEndian.Uint64(input[:8])), input[8:], nil

	case "uint32":
		if len(input) < 4 {
			return nil, nil, newErr(KindOutOfRange, "truncated uint32")
		}
		return binary.LittleEndian.Uint32(input[:4]), input[4:], nil

	case "uint16":
		if len(input) < 2 {
			return nil, nil, newErr(KindOutOfRange, "truncated uint16")
		}
		return binary.LittleEndian.Uint16(input[:2]), input[2:], nil

	case "uint8":
		if len(input) < 1 {
			return nil, nil, newErr(KindOutOfRange, "truncated uint8")
		}
		return input[0], input[1:], nil

	case "varuint32":
		value, n, err := UnpackVaruint32(input)
		if err != nil {
			return nil, nil, err
		}
		return value, input[n:], nil

	default:
		return nil, nil, newErr(KindUnsupportedType, "unsupported type %q", typ)
	}
}
