// Package binding is the schema-driven serializer/deserializer: it drives
// package compact's operation vocabulary recursively over a
// schema.StructDescriptor to encode and decode in-memory Go aggregates.
package binding

import (
	"github.com/gostdlib/base/context"

	"github.com/aleloi/thrift/compact"
	"github.com/aleloi/thrift/errs"
	"github.com/aleloi/thrift/schema"
	"github.com/aleloi/thrift/wiretype"
)

// Encode writes obj (a pointer to the Go type desc was built for) to w as a
// compact-protocol struct.
//
// Write path: emit StructBegin, then for each field in descriptor order, if
// present (always for required, non-nil for optional) emit FieldBegin, the
// value, and FieldEnd; finally FieldStop and StructEnd. A union descriptor
// is written identically except exactly one field is expected to be
// present.
func Encode(ctx context.Context, w *compact.Writer, desc *schema.StructDescriptor, obj any) error {
	if err := w.WriteStructBegin(ctx); err != nil {
		return err
	}
	written := 0
	for _, f := range desc.Fields {
		val, present := f.Get(obj)
		if !present {
			if f.Required {
				return errs.Newf(ctx, errs.CatUser, errs.KindRequiredFieldMissing,
					"binding: %s.%s is required but not set", desc.Name, f.Name)
			}
			continue
		}
		if err := w.WriteFieldBegin(ctx, f.Type, f.ID); err != nil {
			return err
		}
		if err := encodeValue(ctx, w, f, val); err != nil {
			return err
		}
		if err := w.WriteFieldEnd(ctx); err != nil {
			return err
		}
		written++
	}
	if desc.IsUnion && written != 1 {
		return errs.Newf(ctx, errs.CatUser, errs.KindCantParseUnion,
			"binding: union %s must have exactly one variant set, got %d", desc.Name, written)
	}
	return w.WriteStructEnd(ctx)
}

func encodeValue(ctx context.Context, w *compact.Writer, f *schema.FieldDescriptor, val any) error {
	switch f.Type {
	case wiretype.BOOL:
		return w.WriteBool(ctx, val.(bool))
	case wiretype.BYTE:
		return w.WriteByte(ctx, val.(int8))
	case wiretype.I16:
		return w.WriteI16(ctx, val.(int16))
	case wiretype.I32:
		return w.WriteI32(ctx, val.(int32))
	case wiretype.I64:
		return w.WriteI64(ctx, val.(int64))
	case wiretype.DOUBLE:
		return w.WriteDouble(ctx, val.(float64))
	case wiretype.STRING:
		switch v := val.(type) {
		case string:
			return w.WriteString(ctx, v)
		case []byte:
			return w.WriteBinary(ctx, v)
		default:
			return errs.Newf(ctx, errs.CatInternal, errs.KindInvalidCType, "binding: %s: unsupported string-ish value %T", f.Name, val)
		}
	case wiretype.STRUCT:
		return Encode(ctx, w, f.Struct, val)
	case wiretype.LIST, wiretype.SET:
		return encodeList(ctx, w, f.Element, val)
	default:
		return errs.Newf(ctx, errs.CatInternal, errs.KindNotImplemented, "binding: %s: ttype %s not supported", f.Name, f.Type)
	}
}

func encodeList(ctx context.Context, w *compact.Writer, ld *schema.ListDescriptor, val any) error {
	n, get := listAccessor(val)
	if err := w.WriteListBegin(ctx, ld.Elem, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		elem := get(i)
		if err := encodeElement(ctx, w, ld, elem); err != nil {
			return err
		}
	}
	return w.WriteListEnd(ctx)
}

func encodeElement(ctx context.Context, w *compact.Writer, ld *schema.ListDescriptor, elem any) error {
	switch ld.Elem {
	case wiretype.BOOL:
		return w.WriteBool(ctx, elem.(bool))
	case wiretype.BYTE:
		return w.WriteByte(ctx, elem.(int8))
	case wiretype.I16:
		return w.WriteI16(ctx, elem.(int16))
	case wiretype.I32:
		return w.WriteI32(ctx, elem.(int32))
	case wiretype.I64:
		return w.WriteI64(ctx, elem.(int64))
	case wiretype.DOUBLE:
		return w.WriteDouble(ctx, elem.(float64))
	case wiretype.STRING:
		switch v := elem.(type) {
		case string:
			return w.WriteString(ctx, v)
		case []byte:
			return w.WriteBinary(ctx, v)
		default:
			return errs.Newf(ctx, errs.CatInternal, errs.KindInvalidCType, "binding: unsupported list element value %T", elem)
		}
	case wiretype.STRUCT:
		return Encode(ctx, w, ld.ElemStruct, elem)
	default:
		return errs.Newf(ctx, errs.CatInternal, errs.KindNotImplemented, "binding: list element ttype %s not supported", ld.Elem)
	}
}

// listAccessor adapts the handful of slice types the binding layer supports
// into a (length, index) pair, so encodeList does not need one branch per
// element kind at the container level.
func listAccessor(val any) (int, func(int) any) {
	switch v := val.(type) {
	case []bool:
		return len(v), func(i int) any { return v[i] }
	case []int8:
		return len(v), func(i int) any { return v[i] }
	case []int16:
		return len(v), func(i int) any { return v[i] }
	case []int32:
		return len(v), func(i int) any { return v[i] }
	case []int64:
		return len(v), func(i int) any { return v[i] }
	case []float64:
		return len(v), func(i int) any { return v[i] }
	case []string:
		return len(v), func(i int) any { return v[i] }
	case [][]byte:
		return len(v), func(i int) any { return v[i] }
	case []any:
		return len(v), func(i int) any { return v[i] }
	default:
		panic("binding: unsupported list representation, add a case to listAccessor")
	}
}
