package compact

import (
	"io"
	"math"

	"github.com/gostdlib/base/context"

	"github.com/aleloi/thrift/errs"
	"github.com/aleloi/thrift/internal/binary"
	"github.com/aleloi/thrift/internal/bits"
	"github.com/aleloi/thrift/internal/varint"
	"github.com/aleloi/thrift/wiretype"
)

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

// WithWriterMaxDepth overrides the struct/list nesting bound (default
// DefaultMaxDepth).
func WithWriterMaxDepth(n int) WriterOption {
	return func(w *Writer) { w.maxDepth = n }
}

// Writer emits Thrift compact-protocol bytes from a sequence of operation
// calls, enforcing the protocol state machine as it goes. A Writer is
// not safe for concurrent use and is not reentrant: each call must complete
// before the next begins.
type Writer struct {
	machine
	w       io.Writer
	scratch [1]byte
}

// NewWriter returns a Writer that writes to w. w is borrowed: Writer never
// closes it.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	wr := &Writer{w: w}
	wr.machine = newMachine(0, 0)
	for _, o := range opts {
		o(wr)
	}
	if wr.maxDepth <= 0 {
		wr.maxDepth = DefaultMaxDepth
	}
	return wr
}

func (w *Writer) writeByte(ctx context.Context, b byte) error {
	if bw, ok := w.w.(io.ByteWriter); ok {
		if err := bw.WriteByte(b); err != nil {
			return errs.E(ctx, errs.CatInternal, errs.KindTransport, err)
		}
		return nil
	}
	w.scratch[0] = b
	if _, err := w.w.Write(w.scratch[:1]); err != nil {
		return errs.E(ctx, errs.CatInternal, errs.KindTransport, err)
	}
	return nil
}

func (w *Writer) writeRaw(ctx context.Context, b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		return errs.E(ctx, errs.CatInternal, errs.KindTransport, err)
	}
	return nil
}

type byteWriterAdapter struct {
	ctx context.Context
	w   *Writer
	err error
}

func (a *byteWriterAdapter) WriteByte(b byte) error {
	if a.err != nil {
		return a.err
	}
	a.err = a.w.writeByte(a.ctx, b)
	return a.err
}

func (w *Writer) writeUvarint(ctx context.Context, u uint64) error {
	a := &byteWriterAdapter{ctx: ctx, w: w}
	if err := varint.WriteUvarint(a, u); err != nil {
		return err
	}
	return a.err
}

// WriteStructBegin pushes the enclosing last_fid/state and begins a new
// field-id delta scope. No bytes are emitted: the compact protocol has no
// struct-begin marker on the wire.
func (w *Writer) WriteStructBegin(ctx context.Context) error {
	return w.enterStruct(ctx)
}

// WriteStructEnd emits the STOP byte (0x00) and restores the enclosing
// last_fid/state.
func (w *Writer) WriteStructEnd(ctx context.Context) error {
	if err := w.WriteFieldStop(ctx); err != nil {
		return err
	}
	return w.exitStruct(ctx)
}

// WriteFieldStop emits the field-list terminator 0x00. Callers normally do
// not call this directly; WriteStructEnd does it for them.
func (w *Writer) WriteFieldStop(ctx context.Context) error {
	if err := w.fieldStop(ctx); err != nil {
		return err
	}
	return w.writeByte(ctx, byte(wiretype.CTStop))
}

// WriteFieldBegin starts a field of the given logical type and id. For
// wiretype.BOOL, the header byte is not emitted yet: it is delayed until the
// paired WriteBool call, which supplies the TRUE/FALSE tag.
func (w *Writer) WriteFieldBegin(ctx context.Context, t wiretype.TType, fid int16) error {
	isBool := t == wiretype.BOOL
	if err := w.beginField(ctx, isBool); err != nil {
		return err
	}
	if isBool {
		w.boolArmed = true
		w.boolFID = fid
		return nil
	}
	ct, err := wiretype.CTypeOf(t)
	if err != nil {
		return errs.E(ctx, errs.CatInternal, errs.KindInvalidCType, err)
	}
	return w.writeFieldHeader(ctx, fid, ct)
}

func (w *Writer) writeFieldHeader(ctx context.Context, fid int16, ct wiretype.CType) error {
	delta := int32(fid) - int32(w.lastFID)
	if delta > 0 && delta <= 15 {
		if err := w.writeByte(ctx, bits.PackNibbles(uint8(delta), uint8(ct))); err != nil {
			return err
		}
	} else {
		if err := w.writeByte(ctx, bits.PackNibbles(0, uint8(ct))); err != nil {
			return err
		}
		if err := w.writeUvarint(ctx, uint64(varint.ZigzagEncode16(fid))); err != nil {
			return err
		}
	}
	w.lastFID = fid
	return nil
}

// WriteFieldEnd closes the current field.
func (w *Writer) WriteFieldEnd(ctx context.Context) error {
	return w.endField(ctx)
}

// WriteBool writes a boolean value. Inside a field (the BOOL state, armed by
// WriteFieldBegin), the value is packed into the field header with no body
// byte. Inside a list (CONTAINER state), it is a single 0/1 body byte.
func (w *Writer) WriteBool(ctx context.Context, v bool) error {
	if w.state == stateBool && w.boolArmed {
		ct := wiretype.CTypeOfBool(v)
		if err := w.writeFieldHeader(ctx, w.boolFID, ct); err != nil {
			return err
		}
		w.boolArmed = false
		return nil
	}
	if err := w.scalarOK(ctx, "WriteBool"); err != nil {
		return err
	}
	if v {
		return w.writeByte(ctx, 1)
	}
	return w.writeByte(ctx, 0)
}

// WriteByte writes a raw signed byte (TType BYTE/I08).
func (w *Writer) WriteByte(ctx context.Context, v int8) error {
	if err := w.scalarOK(ctx, "WriteByte"); err != nil {
		return err
	}
	return w.writeByte(ctx, byte(v))
}

// WriteI16 writes a zig-zag varint-encoded 16-bit integer.
func (w *Writer) WriteI16(ctx context.Context, v int16) error {
	if err := w.scalarOK(ctx, "WriteI16"); err != nil {
		return err
	}
	return w.writeUvarint(ctx, uint64(varint.ZigzagEncode16(v)))
}

// WriteI32 writes a zig-zag varint-encoded 32-bit integer.
func (w *Writer) WriteI32(ctx context.Context, v int32) error {
	if err := w.scalarOK(ctx, "WriteI32"); err != nil {
		return err
	}
	return w.writeUvarint(ctx, uint64(varint.ZigzagEncode32(v)))
}

// WriteI64 writes a zig-zag varint-encoded 64-bit integer.
func (w *Writer) WriteI64(ctx context.Context, v int64) error {
	if err := w.scalarOK(ctx, "WriteI64"); err != nil {
		return err
	}
	return w.writeUvarint(ctx, varint.ZigzagEncode64(v))
}

// WriteDouble writes the little-endian IEEE-754 bit pattern of v.
func (w *Writer) WriteDouble(ctx context.Context, v float64) error {
	if err := w.scalarOK(ctx, "WriteDouble"); err != nil {
		return err
	}
	var b [8]byte
	binary.Put(b[:], math.Float64bits(v))
	return w.writeRaw(ctx, b[:])
}

// WriteBinary writes b as a varint length followed by the raw bytes. Used
// for both STRING and opaque BINARY fields.
func (w *Writer) WriteBinary(ctx context.Context, b []byte) error {
	if err := w.scalarOK(ctx, "WriteBinary"); err != nil {
		return err
	}
	if err := w.writeUvarint(ctx, uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return w.writeRaw(ctx, b)
}

// WriteString writes s as a length-prefixed UTF-8 BINARY value, without
// copying s (see internal/conversions): the bytes are only read here, before
// this call returns.
func (w *Writer) WriteString(ctx context.Context, s string) error {
	return w.WriteBinary(ctx, stringBytes(s))
}

// WriteListBegin starts a list/set of size elements of logical type elem.
func (w *Writer) WriteListBegin(ctx context.Context, elem wiretype.TType, size int) error {
	if err := w.enterContainer(ctx); err != nil {
		return err
	}
	if size < 0 {
		return errs.Newf(ctx, errs.CatUser, errs.KindOverflow, "compact: negative list size %d", size)
	}
	if uint64(size) > w.maxCollectionSize {
		return errs.Newf(ctx, errs.CatUser, errs.KindOverflow,
			"compact: list size %d exceeds configured maximum %d", size, w.maxCollectionSize)
	}
	ct, err := wiretype.CTypeOf(elem)
	if err != nil {
		return errs.E(ctx, errs.CatInternal, errs.KindInvalidCType, err)
	}
	if size <= 14 {
		return w.writeByte(ctx, bits.PackNibbles(uint8(size), uint8(ct)))
	}
	if err := w.writeByte(ctx, bits.PackNibbles(0x0F, uint8(ct))); err != nil {
		return err
	}
	return w.writeUvarint(ctx, uint64(size))
}

// WriteListEnd closes the current list/set.
func (w *Writer) WriteListEnd(ctx context.Context) error {
	return w.exitContainer(ctx)
}
