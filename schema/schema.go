// Package schema describes, for a statically-typed Go aggregate, the wire
// schema the binding layer (package binding) needs to drive the compact
// protocol codec: field identifiers, requiredness, and element types.
//
// Descriptors are built once (package-level vars, constructed at program
// init) and never mutated afterwards; the binding driver only reads them.
// Field access goes through small accessor closures rather than reflection,
// the same way Thrift-generated code pairs a struct with hand (or
// generator) written marshal/unmarshal logic — this module writes both by
// hand, since the IDL parser/codegen that would normally produce them is out
// of scope.
package schema

import "github.com/aleloi/thrift/wiretype"

// Getter reads a field's value out of obj. present is false for an absent
// optional field (the caller should then skip writing it). obj is always the
// pointer type the descriptor was built for.
type Getter func(obj any) (value any, present bool)

// Setter writes a decoded value into the field of obj.
type Setter func(obj any, value any)

// FieldDescriptor describes one field of a struct or union.
type FieldDescriptor struct {
	Name     string
	ID       int16
	Type     wiretype.TType
	Required bool
	Optional bool

	// Element describes list/set elements when Type is LIST or SET.
	Element *ListDescriptor
	// Struct describes the nested type when Type is STRUCT.
	Struct *StructDescriptor
	// Enum describes the enum domain when this field's wire representation
	// is an I32 enum code.
	Enum *EnumDescriptor

	Get Getter
	Set Setter
}

// ListDescriptor describes a LIST/SET field's element type.
type ListDescriptor struct {
	Elem       wiretype.TType
	ElemStruct *StructDescriptor
	ElemEnum   *EnumDescriptor
}

// StructDescriptor describes a struct's fields in wire order. Unknown
// fields encountered on read are always skipped.
type StructDescriptor struct {
	Name   string
	Fields []*FieldDescriptor
	// IsUnion marks this descriptor as describing a tagged union: exactly
	// one field must be set (Encode rejects zero or several, Decode rejects
	// an empty union), and the binding driver applies latest-wins semantics
	// on read instead of per-field requiredness checks.
	IsUnion bool
	// New constructs a fresh zero-value instance of the Go type this
	// descriptor describes, used by the binding driver when decoding a
	// nested struct or list-of-struct element. Required whenever this
	// descriptor is reachable as a nested/element descriptor.
	New func() any

	byID map[int16]*FieldDescriptor
}

// NewStructDescriptor builds and indexes a StructDescriptor. Field ids must
// be unique within fields. newFn may be nil for a top-level descriptor the
// binding driver will only ever Encode, never use to allocate a nested
// value.
func NewStructDescriptor(name string, union bool, newFn func() any, fields ...*FieldDescriptor) *StructDescriptor {
	d := &StructDescriptor{
		Name:    name,
		Fields:  fields,
		IsUnion: union,
		New:     newFn,
		byID:    make(map[int16]*FieldDescriptor, len(fields)),
	}
	for _, f := range fields {
		d.byID[f.ID] = f
	}
	return d
}

// ByID looks up a field by its wire id. ok is false for unknown fields,
// which the binding driver skips.
func (d *StructDescriptor) ByID(id int16) (*FieldDescriptor, bool) {
	f, ok := d.byID[id]
	return f, ok
}

// EnumValue is one named, numbered member of an enum.
type EnumValue struct {
	Name  string
	Value int32
}

// EnumDescriptor maps between an enum's wire code (I32) and its Go
// representation. The binding driver carries enum fields as plain I32 codes
// and never rejects an unknown code; ByValue reports ok=false for a code not
// in Values, which callers wanting strict behavior can turn into an error.
type EnumDescriptor struct {
	Name   string
	Values []EnumValue

	byValue map[int32]EnumValue
	byName  map[string]EnumValue
}

// NewEnumDescriptor builds and indexes an EnumDescriptor.
func NewEnumDescriptor(name string, values ...EnumValue) *EnumDescriptor {
	d := &EnumDescriptor{
		Name:    name,
		Values:  values,
		byValue: make(map[int32]EnumValue, len(values)),
		byName:  make(map[string]EnumValue, len(values)),
	}
	for _, v := range values {
		d.byValue[v.Value] = v
		d.byName[v.Name] = v
	}
	return d
}

// ByValue looks up an enum member by its wire code.
func (d *EnumDescriptor) ByValue(v int32) (EnumValue, bool) {
	ev, ok := d.byValue[v]
	return ev, ok
}

// ByName looks up an enum member by name.
func (d *EnumDescriptor) ByName(name string) (EnumValue, bool) {
	ev, ok := d.byName[name]
	return ev, ok
}

// CompatibleWire reports whether a wire ttype is acceptable where want is
// expected. Per the design's Open Question resolution, the only relaxation
// is BYTE/I08 (which share a single wiretype.TType already, so in practice
// this is strict equality); every other mismatch is a skip-as-unknown.
func CompatibleWire(want, got wiretype.TType) bool {
	return want == got
}
