// Package wiretype details the logical Thrift types and their compact-protocol
// wire tags used throughout this module.
package wiretype

import "fmt"

// TType is the logical type of a Thrift value, independent of how it is
// tagged on the wire.
type TType uint8

const (
	STOP   TType = 0
	VOID   TType = 1
	BOOL   TType = 2
	BYTE   TType = 3
	I08    TType = 3 // alias: BYTE and I08 share a wire representation
	DOUBLE TType = 4
	I16    TType = 6
	I32    TType = 8
	I64    TType = 10
	STRING TType = 11
	STRUCT TType = 12
	MAP    TType = 13
	SET    TType = 14
	LIST   TType = 15
)

func (t TType) String() string {
	switch t {
	case STOP:
		return "STOP"
	case VOID:
		return "VOID"
	case BOOL:
		return "BOOL"
	case BYTE: // == I08
		return "BYTE"
	case DOUBLE:
		return "DOUBLE"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case STRING:
		return "STRING"
	case STRUCT:
		return "STRUCT"
	case MAP:
		return "MAP"
	case SET:
		return "SET"
	case LIST:
		return "LIST"
	default:
		return fmt.Sprintf("TType(%d)", uint8(t))
	}
}

// CType is the 4-bit compact-protocol wire tag. It is distinct from TType
// because BOOL maps to one of two tags (TRUE/FALSE) depending on whether the
// value is packed into a field header, and STRING is carried as BINARY.
type CType uint8

const (
	CTStop   CType = 0x00
	CTTrue   CType = 0x01
	CTFalse  CType = 0x02
	CTByte   CType = 0x03
	CTI16    CType = 0x04
	CTI32    CType = 0x05
	CTI64    CType = 0x06
	CTDouble CType = 0x07
	CTBinary CType = 0x08
	CTList   CType = 0x09
	CTSet    CType = 0x0A
	CTMap    CType = 0x0B
	CTStruct CType = 0x0C
)

func (c CType) String() string {
	switch c {
	case CTStop:
		return "STOP"
	case CTTrue:
		return "TRUE"
	case CTFalse:
		return "FALSE"
	case CTByte:
		return "BYTE"
	case CTI16:
		return "I16"
	case CTI32:
		return "I32"
	case CTI64:
		return "I64"
	case CTDouble:
		return "DOUBLE"
	case CTBinary:
		return "BINARY"
	case CTList:
		return "LIST"
	case CTSet:
		return "SET"
	case CTMap:
		return "MAP"
	case CTStruct:
		return "STRUCT"
	default:
		return fmt.Sprintf("CType(%d)", uint8(c))
	}
}

// ErrInvalidCType is returned (wrapped) when a CType byte on the wire carries
// a value outside the 13 defined tags.
type ErrInvalidCType struct {
	Got uint8
}

func (e *ErrInvalidCType) Error() string {
	return fmt.Sprintf("invalid compact-protocol type tag: %#x", e.Got)
}

// CTypeOf returns the wire tag used when writing a field or list of type t.
// STOP and VOID must never be requested here: there is no wire body for
// either, and callers that reach this with one of them have a logic bug.
func CTypeOf(t TType) (CType, error) {
	switch t {
	case BOOL:
		// Bool fields choose TRUE/FALSE from the value itself; list elements
		// of type BOOL also use TRUE as their list-header tag per the
		// reference encoding. Callers needing the field-header tag for a
		// specific bool value should use CTypeOfBool instead.
		return CTTrue, nil
	case BYTE:
		return CTByte, nil
	case DOUBLE:
		return CTDouble, nil
	case I16:
		return CTI16, nil
	case I32:
		return CTI32, nil
	case I64:
		return CTI64, nil
	case STRING:
		return CTBinary, nil
	case STRUCT:
		return CTStruct, nil
	case MAP:
		return CTMap, nil
	case SET:
		return CTSet, nil
	case LIST:
		return CTList, nil
	default:
		return 0, fmt.Errorf("wiretype: cannot map ttype %s to a wire tag", t)
	}
}

// CTypeOfBool returns the field-header tag for a boolean value: TRUE or
// FALSE, chosen by the value itself.
func CTypeOfBool(v bool) CType {
	if v {
		return CTTrue
	}
	return CTFalse
}

// TTypeOf returns the logical type signified by a wire tag read from a field
// or list header.
func TTypeOf(c CType) (TType, error) {
	switch c {
	case CTStop:
		return STOP, nil
	case CTTrue, CTFalse:
		return BOOL, nil
	case CTByte:
		return BYTE, nil
	case CTI16:
		return I16, nil
	case CTI32:
		return I32, nil
	case CTI64:
		return I64, nil
	case CTDouble:
		return DOUBLE, nil
	case CTBinary:
		return STRING, nil
	case CTList:
		return LIST, nil
	case CTSet:
		return SET, nil
	case CTMap:
		return MAP, nil
	case CTStruct:
		return STRUCT, nil
	default:
		return 0, &ErrInvalidCType{Got: uint8(c)}
	}
}
