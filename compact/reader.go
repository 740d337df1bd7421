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

// ReaderOption configures a Reader at construction time.
type ReaderOption func(*Reader)

// WithReaderMaxDepth overrides the struct/list nesting bound (default
// DefaultMaxDepth).
func WithReaderMaxDepth(n int) ReaderOption {
	return func(r *Reader) { r.maxDepth = n }
}

// WithMaxCollectionSize overrides the defensive cap applied to list/set
// sizes and BINARY/STRING lengths read from the wire (default
// DefaultMaxCollectionSize).
func WithMaxCollectionSize(n uint64) ReaderOption {
	return func(r *Reader) { r.maxCollectionSize = n }
}

// Reader parses a Thrift compact-protocol byte stream into a sequence of
// operation events and scalar values, enforcing the protocol state machine
// as it goes. A Reader is not safe for concurrent use.
type Reader struct {
	machine
	r  io.Reader
	br io.ByteReader
}

// NewReader returns a Reader that reads from r. r is borrowed: Reader never
// closes it.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	rd := &Reader{r: r}
	rd.machine = newMachine(0, 0)
	if br, ok := r.(io.ByteReader); ok {
		rd.br = br
	} else {
		rd.br = &byteReaderAdapter{r: r}
	}
	for _, o := range opts {
		o(rd)
	}
	if rd.maxDepth <= 0 {
		rd.maxDepth = DefaultMaxDepth
	}
	if rd.maxCollectionSize == 0 {
		rd.maxCollectionSize = DefaultMaxCollectionSize
	}
	return rd
}

// byteReaderAdapter adapts an io.Reader lacking ReadByte to io.ByteReader.
type byteReaderAdapter struct {
	r   io.Reader
	buf [1]byte
}

func (a *byteReaderAdapter) ReadByte() (byte, error) {
	if _, err := io.ReadFull(a.r, a.buf[:]); err != nil {
		return 0, err
	}
	return a.buf[0], nil
}

func (r *Reader) readByte(ctx context.Context) (byte, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, transportErr(ctx, err)
	}
	return b, nil
}

func (r *Reader) readRaw(ctx context.Context, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, transportErr(ctx, err)
	}
	return buf, nil
}

func (r *Reader) readUvarint(ctx context.Context, width int) (uint64, error) {
	u, err := varint.ReadUvarint(r.br, width)
	if err != nil {
		if _, ok := err.(*varint.ErrOverflow); ok {
			return 0, errs.E(ctx, errs.CatUser, errs.KindOverflow, err)
		}
		return 0, transportErr(ctx, err)
	}
	return u, nil
}

func transportErr(ctx context.Context, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errs.E(ctx, errs.CatUser, errs.KindEndOfStream, err)
	}
	return errs.E(ctx, errs.CatInternal, errs.KindTransport, err)
}

// ReadStructBegin pushes the enclosing last_fid/state and begins a new
// field-id delta scope.
func (r *Reader) ReadStructBegin(ctx context.Context) error {
	return r.enterStruct(ctx)
}

// ReadStructEnd restores the enclosing last_fid/state. Callers must have
// already consumed the STOP field header via ReadFieldBegin.
func (r *Reader) ReadStructEnd(ctx context.Context) error {
	return r.exitStruct(ctx)
}

// Field describes a decoded field header.
type Field struct {
	ID    int16
	TType wiretype.TType
	// Stop is true when the header was a STOP marker; ID/TType are
	// meaningless in that case and the caller should proceed to
	// ReadStructEnd.
	Stop bool
}

// ReadFieldBegin reads one field header. A STOP byte returns {Stop: true}
// without changing state, mirroring the design's "STOP leaves FIELD in
// FIELD" rule.
func (r *Reader) ReadFieldBegin(ctx context.Context) (Field, error) {
	if err := r.requireField(ctx, "FieldBegin"); err != nil {
		return Field{}, err
	}
	b, err := r.readByte(ctx)
	if err != nil {
		return Field{}, err
	}
	ct := wiretype.CType(bits.LowNibble(b))
	if ct == wiretype.CTStop {
		return Field{Stop: true}, nil
	}
	delta := bits.HighNibble(b)
	var fid int16
	if delta == 0 {
		u, err := r.readUvarint(ctx, 16)
		if err != nil {
			return Field{}, err
		}
		fid = varint.ZigzagDecode16(uint16(u))
	} else {
		fid = r.lastFID + int16(delta)
	}
	r.lastFID = fid

	t, err := wiretype.TTypeOf(ct)
	if err != nil {
		return Field{}, errs.E(ctx, errs.CatUser, errs.KindInvalidCType, err)
	}
	isBool := ct == wiretype.CTTrue || ct == wiretype.CTFalse
	if err := r.beginField(ctx, isBool); err != nil {
		return Field{}, err
	}
	if isBool {
		r.boolArmed = true
		r.boolValue = ct == wiretype.CTTrue
	}
	return Field{ID: fid, TType: t}, nil
}

// ReadFieldEnd closes the current field.
func (r *Reader) ReadFieldEnd(ctx context.Context) error {
	return r.endField(ctx)
}

// ReadBool reads a boolean. If armed from a field header (the value was
// already packed into the tag), it is returned without consuming a body
// byte; otherwise (list element) one body byte is read.
func (r *Reader) ReadBool(ctx context.Context) (bool, error) {
	if r.state == stateBool && r.boolArmed {
		r.boolArmed = false
		return r.boolValue, nil
	}
	if err := r.scalarOK(ctx, "ReadBool"); err != nil {
		return false, err
	}
	b, err := r.readByte(ctx)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadByte reads a raw signed byte (TType BYTE/I08).
func (r *Reader) ReadByte(ctx context.Context) (int8, error) {
	if err := r.scalarOK(ctx, "ReadByte"); err != nil {
		return 0, err
	}
	b, err := r.readByte(ctx)
	if err != nil {
		return 0, err
	}
	return int8(b), nil
}

// ReadI16 reads a zig-zag varint-encoded 16-bit integer.
func (r *Reader) ReadI16(ctx context.Context) (int16, error) {
	if err := r.scalarOK(ctx, "ReadI16"); err != nil {
		return 0, err
	}
	u, err := r.readUvarint(ctx, 16)
	if err != nil {
		return 0, err
	}
	return varint.ZigzagDecode16(uint16(u)), nil
}

// ReadI32 reads a zig-zag varint-encoded 32-bit integer.
func (r *Reader) ReadI32(ctx context.Context) (int32, error) {
	if err := r.scalarOK(ctx, "ReadI32"); err != nil {
		return 0, err
	}
	u, err := r.readUvarint(ctx, 32)
	if err != nil {
		return 0, err
	}
	return varint.ZigzagDecode32(uint32(u)), nil
}

// ReadI64 reads a zig-zag varint-encoded 64-bit integer.
func (r *Reader) ReadI64(ctx context.Context) (int64, error) {
	if err := r.scalarOK(ctx, "ReadI64"); err != nil {
		return 0, err
	}
	u, err := r.readUvarint(ctx, 64)
	if err != nil {
		return 0, err
	}
	return varint.ZigzagDecode64(u), nil
}

// ReadDouble reads a little-endian IEEE-754 double.
func (r *Reader) ReadDouble(ctx context.Context) (float64, error) {
	if err := r.scalarOK(ctx, "ReadDouble"); err != nil {
		return 0, err
	}
	b, err := r.readRaw(ctx, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.Get[uint64](b)), nil
}

// ReadBinary reads a varint length followed by that many raw bytes. The
// returned slice is a fresh allocation owned by the caller: this module
// never hands back a view into internal buffers for decoded data.
func (r *Reader) ReadBinary(ctx context.Context) ([]byte, error) {
	if err := r.scalarOK(ctx, "ReadBinary"); err != nil {
		return nil, err
	}
	u, err := r.readUvarint(ctx, 64)
	if err != nil {
		return nil, err
	}
	if u > r.maxCollectionSize {
		return nil, errs.Newf(ctx, errs.CatUser, errs.KindOverflow,
			"compact: binary length %d exceeds configured maximum %d", u, r.maxCollectionSize)
	}
	return r.readRaw(ctx, int(u))
}

// ReadString is ReadBinary with the result interpreted (and copied) as a
// string.
func (r *Reader) ReadString(ctx context.Context) (string, error) {
	b, err := r.ReadBinary(ctx)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// List describes a decoded list/set header.
type List struct {
	Elem wiretype.TType
	Size int
}

// ReadListBegin reads a list/set header.
func (r *Reader) ReadListBegin(ctx context.Context) (List, error) {
	if err := r.enterContainer(ctx); err != nil {
		return List{}, err
	}
	b, err := r.readByte(ctx)
	if err != nil {
		return List{}, err
	}
	ct := wiretype.CType(bits.LowNibble(b))
	size := int(bits.HighNibble(b))
	if size == 0x0F {
		u, err := r.readUvarint(ctx, 32)
		if err != nil {
			return List{}, err
		}
		if u > r.maxCollectionSize {
			return List{}, errs.Newf(ctx, errs.CatUser, errs.KindOverflow,
				"compact: list size %d exceeds configured maximum %d", u, r.maxCollectionSize)
		}
		size = int(u)
	}
	t, err := wiretype.TTypeOf(ct)
	if err != nil {
		return List{}, errs.E(ctx, errs.CatUser, errs.KindInvalidCType, err)
	}
	return List{Elem: t, Size: size}, nil
}

// ReadListEnd closes the current list/set.
func (r *Reader) ReadListEnd(ctx context.Context) error {
	return r.exitContainer(ctx)
}

// Skip advances past one well-formed value of logical type t, discarding its
// contents. It is total over well-formed input: scalars consume a fixed or
// length-prefixed number of bytes, STRUCT recurses field by field until
// STOP, LIST/SET recurses per element. MAP is not supported and returns
// NotImplemented. Recursion is bounded by the same maxDepth as StructBegin.
func (r *Reader) Skip(ctx context.Context, t wiretype.TType) error {
	return r.skip(ctx, t, r.maxDepth)
}

func (r *Reader) skip(ctx context.Context, t wiretype.TType, depthBudget int) error {
	if depthBudget <= 0 {
		return errs.Newf(ctx, errs.CatUser, errs.KindStackDepth, "compact: skip nesting exceeds max depth %d", r.maxDepth)
	}
	switch t {
	case wiretype.BOOL:
		_, err := r.ReadBool(ctx)
		return err
	case wiretype.BYTE:
		_, err := r.ReadByte(ctx)
		return err
	case wiretype.I16:
		_, err := r.ReadI16(ctx)
		return err
	case wiretype.I32:
		_, err := r.ReadI32(ctx)
		return err
	case wiretype.I64:
		_, err := r.ReadI64(ctx)
		return err
	case wiretype.DOUBLE:
		_, err := r.ReadDouble(ctx)
		return err
	case wiretype.STRING:
		_, err := r.ReadBinary(ctx)
		return err
	case wiretype.STRUCT:
		if err := r.ReadStructBegin(ctx); err != nil {
			return err
		}
		for {
			f, err := r.ReadFieldBegin(ctx)
			if err != nil {
				return err
			}
			if f.Stop {
				break
			}
			if err := r.skip(ctx, f.TType, depthBudget-1); err != nil {
				return err
			}
			if err := r.ReadFieldEnd(ctx); err != nil {
				return err
			}
		}
		return r.ReadStructEnd(ctx)
	case wiretype.LIST, wiretype.SET:
		l, err := r.ReadListBegin(ctx)
		if err != nil {
			return err
		}
		for i := 0; i < l.Size; i++ {
			if err := r.skip(ctx, l.Elem, depthBudget-1); err != nil {
				return err
			}
		}
		return r.ReadListEnd(ctx)
	case wiretype.MAP:
		return errs.Newf(ctx, errs.CatUser, errs.KindNotImplemented, "compact: MAP is not implemented")
	default:
		return errs.Newf(ctx, errs.CatUser, errs.KindInvalidCType, "compact: cannot skip ttype %s", t)
	}
}
