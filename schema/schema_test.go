package schema

import (
	"testing"

	"github.com/aleloi/thrift/wiretype"
)

func TestStructDescriptorByID(t *testing.T) {
	t.Parallel()
	d := NewStructDescriptor("Point", false, nil,
		&FieldDescriptor{Name: "X", ID: 1, Type: wiretype.I32},
		&FieldDescriptor{Name: "Y", ID: 2, Type: wiretype.I32},
	)
	f, ok := d.ByID(1)
	if !ok || f.Name != "X" {
		t.Fatalf("ByID(1) = %+v, %v", f, ok)
	}
	f, ok = d.ByID(2)
	if !ok || f.Name != "Y" {
		t.Fatalf("ByID(2) = %+v, %v", f, ok)
	}
	if _, ok := d.ByID(99); ok {
		t.Fatal("ByID(99) should not be found")
	}
}

func TestEnumDescriptorLookups(t *testing.T) {
	t.Parallel()
	d := NewEnumDescriptor("Compression",
		EnumValue{Name: "UNCOMPRESSED", Value: 0},
		EnumValue{Name: "SNAPPY", Value: 1},
		EnumValue{Name: "GZIP", Value: 2},
	)
	v, ok := d.ByValue(1)
	if !ok || v.Name != "SNAPPY" {
		t.Fatalf("ByValue(1) = %+v, %v", v, ok)
	}
	v, ok = d.ByName("GZIP")
	if !ok || v.Value != 2 {
		t.Fatalf("ByName(GZIP) = %+v, %v", v, ok)
	}
	if _, ok := d.ByValue(99); ok {
		t.Fatal("ByValue(99) should not be found")
	}
}

func TestCompatibleWireIsStrict(t *testing.T) {
	t.Parallel()
	if !CompatibleWire(wiretype.I32, wiretype.I32) {
		t.Error("I32/I32 should be compatible")
	}
	if CompatibleWire(wiretype.I32, wiretype.I64) {
		t.Error("I32/I64 should not be compatible")
	}
	// BYTE and I08 are the same constant, so this is strict equality in
	// practice, not a special case.
	if !CompatibleWire(wiretype.BYTE, wiretype.I08) {
		t.Error("BYTE/I08 should be compatible (they are the same TType)")
	}
}
