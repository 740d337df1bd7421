package binding

import (
	"github.com/gostdlib/base/context"

	"github.com/aleloi/thrift/compact"
	"github.com/aleloi/thrift/errs"
	"github.com/aleloi/thrift/schema"
	"github.com/aleloi/thrift/wiretype"
)

// Decode reads a compact-protocol struct from r into obj (a pointer to the
// Go type desc was built for).
//
// Read path: enter the struct, loop reading field headers until STOP. For
// each header, an id absent from the descriptor, or present with an
// incompatible wire type, is skipped; a compatible field is read and marked
// present. After STOP, every required field must be present or
// RequiredFieldMissing is raised and the fields already set on obj are
// cleared in reverse order before the error propagates (this module's
// analogue of releasing a partial allocation's owned memory: Go's GC
// reclaims the memory itself, but obj is left in a well-defined, fully-unset
// state rather than a half-populated one).
//
// A union descriptor uses latest-wins semantics instead: every successful
// read overwrites any prior variant, and an empty union is CantParseUnion.
func Decode(ctx context.Context, r *compact.Reader, desc *schema.StructDescriptor, obj any) error {
	if err := r.ReadStructBegin(ctx); err != nil {
		return err
	}

	var set []*schema.FieldDescriptor // acquisition order, for unwind-on-error
	clearOnErr := func() {
		for i := len(set) - 1; i >= 0; i-- {
			set[i].Set(obj, nil)
		}
	}

	for {
		field, err := r.ReadFieldBegin(ctx)
		if err != nil {
			clearOnErr()
			return err
		}
		if field.Stop {
			break
		}

		fd, ok := desc.ByID(field.ID)
		if !ok || !schema.CompatibleWire(fd.Type, field.TType) {
			if err := r.Skip(ctx, field.TType); err != nil {
				clearOnErr()
				return err
			}
			if err := r.ReadFieldEnd(ctx); err != nil {
				clearOnErr()
				return err
			}
			continue
		}

		val, err := decodeValue(ctx, r, fd)
		if err != nil {
			clearOnErr()
			return err
		}
		if desc.IsUnion {
			// latest-wins: an earlier variant on the wire is not just
			// forgotten by the bookkeeping, it is rolled back on obj too.
			for _, prev := range set {
				prev.Set(obj, nil)
			}
			set = set[:0]
		}
		fd.Set(obj, val)
		set = append(set, fd)

		if err := r.ReadFieldEnd(ctx); err != nil {
			clearOnErr()
			return err
		}
	}

	if err := r.ReadStructEnd(ctx); err != nil {
		clearOnErr()
		return err
	}

	if desc.IsUnion {
		if len(set) == 0 {
			return errs.Newf(ctx, errs.CatUser, errs.KindCantParseUnion,
				"binding: union %s had no variant set on the wire", desc.Name)
		}
		return nil
	}

	for _, f := range desc.Fields {
		if !f.Required {
			continue
		}
		if !wasSet(set, f) {
			clearOnErr()
			return errs.Newf(ctx, errs.CatUser, errs.KindRequiredFieldMissing,
				"binding: %s.%s is required but missing from the wire", desc.Name, f.Name)
		}
	}
	return nil
}

func wasSet(set []*schema.FieldDescriptor, f *schema.FieldDescriptor) bool {
	for _, s := range set {
		if s == f {
			return true
		}
	}
	return false
}

func decodeValue(ctx context.Context, r *compact.Reader, fd *schema.FieldDescriptor) (any, error) {
	switch fd.Type {
	case wiretype.BOOL:
		return r.ReadBool(ctx)
	case wiretype.BYTE:
		return r.ReadByte(ctx)
	case wiretype.I16:
		return r.ReadI16(ctx)
	case wiretype.I32:
		// Enums are carried as a plain I32 wire code; an unrecognized
		// code is preserved as-is (open-enum policy) rather than rejected.
		// Callers wanting strict enums can check fd.Enum.ByValue themselves.
		return r.ReadI32(ctx)
	case wiretype.I64:
		return r.ReadI64(ctx)
	case wiretype.DOUBLE:
		return r.ReadDouble(ctx)
	case wiretype.STRING:
		return r.ReadBinary(ctx)
	case wiretype.STRUCT:
		nested := fd.Struct.New()
		if err := Decode(ctx, r, fd.Struct, nested); err != nil {
			return nil, err
		}
		return nested, nil
	case wiretype.LIST, wiretype.SET:
		return decodeList(ctx, r, fd.Element)
	default:
		return nil, errs.Newf(ctx, errs.CatInternal, errs.KindNotImplemented, "binding: %s: ttype %s not supported", fd.Name, fd.Type)
	}
}

func decodeList(ctx context.Context, r *compact.Reader, ld *schema.ListDescriptor) (any, error) {
	hdr, err := r.ReadListBegin(ctx)
	if err != nil {
		return nil, err
	}
	if !schema.CompatibleWire(ld.Elem, hdr.Elem) {
		// Element type mismatch: skip the whole list body rather than
		// attempting to coerce, then surface as an empty-but-valid result.
		for i := 0; i < hdr.Size; i++ {
			if err := r.Skip(ctx, hdr.Elem); err != nil {
				return nil, err
			}
		}
		return nil, r.ReadListEnd(ctx)
	}

	out, appendElem := listBuilder(ld.Elem, hdr.Size)
	for i := 0; i < hdr.Size; i++ {
		elem, err := decodeElement(ctx, r, ld)
		if err != nil {
			return nil, err
		}
		appendElem(elem)
	}
	if err := r.ReadListEnd(ctx); err != nil {
		return nil, err
	}
	return out(), nil
}

func decodeElement(ctx context.Context, r *compact.Reader, ld *schema.ListDescriptor) (any, error) {
	switch ld.Elem {
	case wiretype.BOOL:
		return r.ReadBool(ctx)
	case wiretype.BYTE:
		return r.ReadByte(ctx)
	case wiretype.I16:
		return r.ReadI16(ctx)
	case wiretype.I32:
		return r.ReadI32(ctx)
	case wiretype.I64:
		return r.ReadI64(ctx)
	case wiretype.DOUBLE:
		return r.ReadDouble(ctx)
	case wiretype.STRING:
		return r.ReadBinary(ctx)
	case wiretype.STRUCT:
		nested := ld.ElemStruct.New()
		if err := Decode(ctx, r, ld.ElemStruct, nested); err != nil {
			return nil, err
		}
		return nested, nil
	default:
		return nil, errs.Newf(ctx, errs.CatInternal, errs.KindNotImplemented, "binding: list element ttype %s not supported", ld.Elem)
	}
}

// listBuilder returns a typed accumulator for a list of the given element
// ttype plus a function to finalize it into the any-typed slice the
// Setter for that field expects.
func listBuilder(elem wiretype.TType, size int) (finish func() any, appendFn func(any)) {
	switch elem {
	case wiretype.BOOL:
		s := make([]bool, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v.(bool)) }
	case wiretype.BYTE:
		s := make([]int8, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v.(int8)) }
	case wiretype.I16:
		s := make([]int16, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v.(int16)) }
	case wiretype.I32:
		s := make([]int32, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v.(int32)) }
	case wiretype.I64:
		s := make([]int64, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v.(int64)) }
	case wiretype.DOUBLE:
		s := make([]float64, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v.(float64)) }
	case wiretype.STRING:
		s := make([][]byte, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v.([]byte)) }
	default:
		s := make([]any, 0, size)
		return func() any { return s }, func(v any) { s = append(s, v) }
	}
}
