package compact

import (
	"bytes"
	"testing"

	"github.com/gostdlib/base/context"
	"github.com/kylelemons/godebug/pretty"

	"github.com/aleloi/thrift/wiretype"
)

func TestRoundTripScalarFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteStructBegin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldBegin(ctx, wiretype.BOOL, 1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteBool(ctx, true); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteFieldBegin(ctx, wiretype.I64, 2); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteI64(ctx, -123456789); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteFieldBegin(ctx, wiretype.STRING, 10); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteString(ctx, "hello thrift"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteFieldBegin(ctx, wiretype.DOUBLE, 11); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteDouble(ctx, 3.140625); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteStructEnd(ctx); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&buf)
	if err := r.ReadStructBegin(ctx); err != nil {
		t.Fatal(err)
	}

	f, err := r.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f.ID != 1 || f.TType != wiretype.BOOL {
		t.Fatalf("field 1: got %+v", f)
	}
	b, err := r.ReadBool(ctx)
	if err != nil || !b {
		t.Fatalf("ReadBool: %v, %v", b, err)
	}
	if err := r.ReadFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	f, err = r.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f.ID != 2 || f.TType != wiretype.I64 {
		t.Fatalf("field 2: got %+v", f)
	}
	i, err := r.ReadI64(ctx)
	if err != nil || i != -123456789 {
		t.Fatalf("ReadI64: %v, %v", i, err)
	}
	if err := r.ReadFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	f, err = r.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f.ID != 10 || f.TType != wiretype.STRING {
		t.Fatalf("field 10: got %+v", f)
	}
	s, err := r.ReadString(ctx)
	if err != nil || s != "hello thrift" {
		t.Fatalf("ReadString: %q, %v", s, err)
	}
	if err := r.ReadFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	f, err = r.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f.ID != 11 || f.TType != wiretype.DOUBLE {
		t.Fatalf("field 11: got %+v", f)
	}
	d, err := r.ReadDouble(ctx)
	if err != nil || d != 3.140625 {
		t.Fatalf("ReadDouble: %v, %v", d, err)
	}
	if err := r.ReadFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}

	f, err = r.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Stop {
		t.Fatalf("expected STOP, got %+v", f)
	}
	if err := r.ReadStructEnd(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestRoundTripListOfBool(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var buf bytes.Buffer
	w := NewWriter(&buf)

	vals := []bool{true, false, true, true, false}
	if err := w.WriteStructBegin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldBegin(ctx, wiretype.LIST, 1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteListBegin(ctx, wiretype.BOOL, len(vals)); err != nil {
		t.Fatal(err)
	}
	for _, v := range vals {
		if err := w.WriteBool(ctx, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.WriteListEnd(ctx); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&buf)
	if err := r.ReadStructBegin(ctx); err != nil {
		t.Fatal(err)
	}
	if f, err := r.ReadFieldBegin(ctx); err != nil || f.TType != wiretype.LIST {
		t.Fatalf("list field: %+v, %v", f, err)
	}
	l, err := r.ReadListBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if l.Elem != wiretype.BOOL || l.Size != len(vals) {
		t.Fatalf("got %+v", l)
	}
	var got []bool
	for i := 0; i < l.Size; i++ {
		v, err := r.ReadBool(ctx)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if err := r.ReadListEnd(ctx); err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Compare(vals, got); diff != "" {
		t.Errorf("list of bool round trip diff:\n%s", diff)
	}
}

func TestRoundTripNestedStruct(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteStructBegin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldBegin(ctx, wiretype.STRUCT, 1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteStructBegin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldBegin(ctx, wiretype.I32, 1); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteI32(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteStructEnd(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteStructEnd(ctx); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&buf)
	if err := r.ReadStructBegin(ctx); err != nil {
		t.Fatal(err)
	}
	f, err := r.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if f.TType != wiretype.STRUCT {
		t.Fatalf("got %+v", f)
	}
	if err := r.ReadStructBegin(ctx); err != nil {
		t.Fatal(err)
	}
	inner, err := r.ReadFieldBegin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	v, err := r.ReadI32(ctx)
	if err != nil || v != 7 || inner.ID != 1 {
		t.Fatalf("inner field: %+v, v=%d, err=%v", inner, v, err)
	}
	if err := r.ReadFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}
	stop, err := r.ReadFieldBegin(ctx)
	if err != nil || !stop.Stop {
		t.Fatalf("expected inner STOP, got %+v, %v", stop, err)
	}
	if err := r.ReadStructEnd(ctx); err != nil {
		t.Fatal(err)
	}
	if err := r.ReadFieldEnd(ctx); err != nil {
		t.Fatal(err)
	}
	outerStop, err := r.ReadFieldBegin(ctx)
	if err != nil || !outerStop.Stop {
		t.Fatalf("expected outer STOP, got %+v, %v", outerStop, err)
	}
	if err := r.ReadStructEnd(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestSkipIsIdempotentAcrossShapes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Each case is encoded as the sole element of a one-item list inside a
	// LIST field, so Skip runs in the list's CONTAINER state; the buffer
	// must be empty afterwards, so Skip consumed exactly the encoded value.
	cases := []struct {
		name string
		t    wiretype.TType
		enc  func(w *Writer) error
	}{
		{"scalar", wiretype.I64, func(w *Writer) error { return w.WriteI64(ctx, -9) }},
		{"string", wiretype.STRING, func(w *Writer) error { return w.WriteString(ctx, "skip me") }},
		{"struct", wiretype.STRUCT, func(w *Writer) error {
			if err := w.WriteStructBegin(ctx); err != nil {
				return err
			}
			if err := w.WriteFieldBegin(ctx, wiretype.I32, 1); err != nil {
				return err
			}
			if err := w.WriteI32(ctx, 5); err != nil {
				return err
			}
			if err := w.WriteFieldEnd(ctx); err != nil {
				return err
			}
			return w.WriteStructEnd(ctx)
		}},
		{"list", wiretype.LIST, func(w *Writer) error {
			if err := w.WriteListBegin(ctx, wiretype.I16, 2); err != nil {
				return err
			}
			if err := w.WriteI16(ctx, 1); err != nil {
				return err
			}
			if err := w.WriteI16(ctx, 2); err != nil {
				return err
			}
			return w.WriteListEnd(ctx)
		}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			w := NewWriter(&buf)
			if err := w.WriteStructBegin(ctx); err != nil {
				t.Fatal(err)
			}
			if err := w.WriteFieldBegin(ctx, wiretype.LIST, 1); err != nil {
				t.Fatal(err)
			}
			if err := w.WriteListBegin(ctx, c.t, 1); err != nil {
				t.Fatal(err)
			}
			if err := c.enc(w); err != nil {
				t.Fatal(err)
			}
			if err := w.WriteListEnd(ctx); err != nil {
				t.Fatal(err)
			}

			r := NewReader(&buf)
			if err := r.ReadStructBegin(ctx); err != nil {
				t.Fatal(err)
			}
			if _, err := r.ReadFieldBegin(ctx); err != nil {
				t.Fatal(err)
			}
			l, err := r.ReadListBegin(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if err := r.Skip(ctx, l.Elem); err != nil {
				t.Fatalf("Skip: %v", err)
			}
			if err := r.ReadListEnd(ctx); err != nil {
				t.Fatalf("ReadListEnd after Skip: %v", err)
			}
			if buf.Len() != 0 {
				t.Errorf("Skip left %d unread bytes", buf.Len())
			}
		})
	}
}
