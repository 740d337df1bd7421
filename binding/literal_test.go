package binding

import (
	"bytes"
	"testing"

	"github.com/gostdlib/base/context"
	"github.com/kylelemons/godebug/pretty"

	"github.com/aleloi/thrift/compact"
	"github.com/aleloi/thrift/schema"
	"github.com/aleloi/thrift/wiretype"
)

// These decode fixed byte sequences rather than round-tripping, pinning the
// binding driver to the wire format itself instead of only to the writer.

type onlyID struct {
	ID int64
}

func TestDecodeLiteralRequiredI64(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	desc := schema.NewStructDescriptor("OnlyID", false, func() any { return &onlyID{} },
		&schema.FieldDescriptor{
			Name: "ID", ID: 1, Type: wiretype.I64, Required: true,
			Get: func(obj any) (any, bool) { return obj.(*onlyID).ID, true },
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*onlyID).ID = 0
					return
				}
				obj.(*onlyID).ID = v.(int64)
			},
		},
	)

	// field header (delta=1, I64), zigzag varint of 1234567890, STOP.
	wire := []byte{0x16, 0xA4, 0x8B, 0xB0, 0x99, 0x09, 0x00}
	dst := &onlyID{}
	r := compact.NewReader(bytes.NewReader(wire))
	if err := Decode(ctx, r, desc, dst); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dst.ID != 1234567890 {
		t.Errorf("ID = %d, want 1234567890", dst.ID)
	}
}

type userProfile struct {
	UserName       string
	FavoriteNumber *int64
	Interests      []string
}

func userProfileDescriptor() *schema.StructDescriptor {
	return schema.NewStructDescriptor("UserProfile", false, func() any { return &userProfile{} },
		&schema.FieldDescriptor{
			Name: "UserName", ID: 1, Type: wiretype.STRING, Required: true,
			Get: func(obj any) (any, bool) { return obj.(*userProfile).UserName, true },
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*userProfile).UserName = ""
					return
				}
				obj.(*userProfile).UserName = string(v.([]byte))
			},
		},
		&schema.FieldDescriptor{
			Name: "FavoriteNumber", ID: 2, Type: wiretype.I64, Optional: true,
			Get: func(obj any) (any, bool) {
				p := obj.(*userProfile)
				if p.FavoriteNumber == nil {
					return nil, false
				}
				return *p.FavoriteNumber, true
			},
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*userProfile).FavoriteNumber = nil
					return
				}
				n := v.(int64)
				obj.(*userProfile).FavoriteNumber = &n
			},
		},
		&schema.FieldDescriptor{
			Name: "Interests", ID: 3, Type: wiretype.LIST, Optional: true,
			Element: &schema.ListDescriptor{Elem: wiretype.STRING},
			Get: func(obj any) (any, bool) {
				p := obj.(*userProfile)
				if p.Interests == nil {
					return nil, false
				}
				return p.Interests, true
			},
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*userProfile).Interests = nil
					return
				}
				bs := v.([][]byte)
				out := make([]string, len(bs))
				for i, b := range bs {
					out[i] = string(b)
				}
				obj.(*userProfile).Interests = out
			},
		},
	)
}

func TestDecodeLiteralUserProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var wire []byte
	wire = append(wire, 0x18, 0x05)
	wire = append(wire, "Alice"...)
	wire = append(wire, 0x16, 0xA4, 0x8B, 0xB0, 0x99, 0x09)
	wire = append(wire, 0x19, 0x38)
	wire = append(wire, 0x0B)
	wire = append(wire, "programming"...)
	wire = append(wire, 0x05)
	wire = append(wire, "music"...)
	wire = append(wire, 0x06)
	wire = append(wire, "travel"...)
	wire = append(wire, 0x00)

	dst := &userProfile{}
	r := compact.NewReader(bytes.NewReader(wire))
	if err := Decode(ctx, r, userProfileDescriptor(), dst); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	favorite := int64(1234567890)
	want := &userProfile{
		UserName:       "Alice",
		FavoriteNumber: &favorite,
		Interests:      []string{"programming", "music", "travel"},
	}
	if diff := pretty.Compare(want, dst); diff != "" {
		t.Errorf("decode diff:\n%s", diff)
	}
}

type mixedScalars struct {
	X int32
	Y bool
	Z int8
	S string
}

func mixedScalarsDescriptor() *schema.StructDescriptor {
	return schema.NewStructDescriptor("MixedScalars", false, func() any { return &mixedScalars{} },
		&schema.FieldDescriptor{
			Name: "X", ID: 1, Type: wiretype.I32, Required: true,
			Get: func(obj any) (any, bool) { return obj.(*mixedScalars).X, true },
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*mixedScalars).X = 0
					return
				}
				obj.(*mixedScalars).X = v.(int32)
			},
		},
		&schema.FieldDescriptor{
			Name: "Y", ID: 2, Type: wiretype.BOOL, Required: true,
			Get: func(obj any) (any, bool) { return obj.(*mixedScalars).Y, true },
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*mixedScalars).Y = false
					return
				}
				obj.(*mixedScalars).Y = v.(bool)
			},
		},
		&schema.FieldDescriptor{
			Name: "Z", ID: 3, Type: wiretype.BYTE, Required: true,
			Get: func(obj any) (any, bool) { return obj.(*mixedScalars).Z, true },
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*mixedScalars).Z = 0
					return
				}
				obj.(*mixedScalars).Z = v.(int8)
			},
		},
		&schema.FieldDescriptor{
			Name: "S", ID: 4, Type: wiretype.STRING, Required: true,
			Get: func(obj any) (any, bool) { return obj.(*mixedScalars).S, true },
			Set: func(obj any, v any) {
				if v == nil {
					obj.(*mixedScalars).S = ""
					return
				}
				obj.(*mixedScalars).S = string(v.([]byte))
			},
		},
	)
}

// A bool field (value packed into the header, no body byte), a zero byte (a
// single 0x00 body byte), and an empty string (a zero-length body) in one
// struct, round-tripped through the binding driver.
func TestMixedScalarsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	desc := mixedScalarsDescriptor()
	src := &mixedScalars{X: 10, Y: true, Z: 0, S: ""}

	var buf bytes.Buffer
	w := compact.NewWriter(&buf)
	if err := Encode(ctx, w, desc, src); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dst := &mixedScalars{X: -1, Y: false, Z: -1, S: "stale"}
	r := compact.NewReader(&buf)
	if err := Decode(ctx, r, desc, dst); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := pretty.Compare(src, dst); diff != "" {
		t.Errorf("round trip diff:\n%s", diff)
	}
}

func TestEncodeLiteralUserProfileMatchesWire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	favorite := int64(1234567890)
	src := &userProfile{
		UserName:       "Alice",
		FavoriteNumber: &favorite,
		Interests:      []string{"programming", "music", "travel"},
	}

	var buf bytes.Buffer
	w := compact.NewWriter(&buf)
	if err := Encode(ctx, w, userProfileDescriptor(), src); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var want []byte
	want = append(want, 0x18, 0x05)
	want = append(want, "Alice"...)
	want = append(want, 0x16, 0xA4, 0x8B, 0xB0, 0x99, 0x09)
	want = append(want, 0x19, 0x38)
	want = append(want, 0x0B)
	want = append(want, "programming"...)
	want = append(want, 0x05)
	want = append(want, "music"...)
	want = append(want, 0x06)
	want = append(want, "travel"...)
	want = append(want, 0x00)

	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("encoded bytes:\ngot  % x\nwant % x", buf.Bytes(), want)
	}
}
