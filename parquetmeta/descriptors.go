package parquetmeta

import (
	"github.com/aleloi/thrift/schema"
	"github.com/aleloi/thrift/wiretype"
)

// Enum descriptors. These are consulted by callers wanting strict
// validation of a decoded wire code (fd.Enum.ByValue); the binding driver
// itself treats every enum field as a plain I32 and never rejects an
// unrecognized code.

var TypeEnum = schema.NewEnumDescriptor("Type",
	schema.EnumValue{Name: "BOOLEAN", Value: int32(TypeBoolean)},
	schema.EnumValue{Name: "INT32", Value: int32(TypeInt32)},
	schema.EnumValue{Name: "INT64", Value: int32(TypeInt64)},
	schema.EnumValue{Name: "INT96", Value: int32(TypeInt96)},
	schema.EnumValue{Name: "FLOAT", Value: int32(TypeFloat)},
	schema.EnumValue{Name: "DOUBLE", Value: int32(TypeDouble)},
	schema.EnumValue{Name: "BYTE_ARRAY", Value: int32(TypeByteArray)},
	schema.EnumValue{Name: "FIXED_LEN_BYTE_ARRAY", Value: int32(TypeFixedLenByteArray)},
)

var FieldRepetitionTypeEnum = schema.NewEnumDescriptor("FieldRepetitionType",
	schema.EnumValue{Name: "REQUIRED", Value: int32(RepetitionRequired)},
	schema.EnumValue{Name: "OPTIONAL", Value: int32(RepetitionOptional)},
	schema.EnumValue{Name: "REPEATED", Value: int32(RepetitionRepeated)},
)

var CompressionCodecEnum = schema.NewEnumDescriptor("CompressionCodec",
	schema.EnumValue{Name: "UNCOMPRESSED", Value: int32(CompressionUncompressed)},
	schema.EnumValue{Name: "SNAPPY", Value: int32(CompressionSnappy)},
	schema.EnumValue{Name: "GZIP", Value: int32(CompressionGzip)},
	schema.EnumValue{Name: "LZO", Value: int32(CompressionLZO)},
	schema.EnumValue{Name: "BROTLI", Value: int32(CompressionBrotli)},
	schema.EnumValue{Name: "LZ4", Value: int32(CompressionLZ4)},
	schema.EnumValue{Name: "ZSTD", Value: int32(CompressionZstd)},
	schema.EnumValue{Name: "LZ4_RAW", Value: int32(CompressionLZ4Raw)},
)

var EncodingEnum = schema.NewEnumDescriptor("Encoding",
	schema.EnumValue{Name: "PLAIN", Value: int32(EncodingPlain)},
	schema.EnumValue{Name: "PLAIN_DICTIONARY", Value: int32(EncodingPlainDictionary)},
	schema.EnumValue{Name: "RLE", Value: int32(EncodingRLE)},
	schema.EnumValue{Name: "DELTA_BINARY_PACKED", Value: int32(EncodingDeltaBinaryPacked)},
	schema.EnumValue{Name: "DELTA_LENGTH_BYTE_ARRAY", Value: int32(EncodingDeltaLengthByteArray)},
	schema.EnumValue{Name: "DELTA_BYTE_ARRAY", Value: int32(EncodingDeltaByteArray)},
	schema.EnumValue{Name: "RLE_DICTIONARY", Value: int32(EncodingRLEDictionary)},
	schema.EnumValue{Name: "BYTE_STREAM_SPLIT", Value: int32(EncodingByteStreamSplit)},
)

// optI32Field/optI64Field build the Get/Set pair shared by every "*int32"
// or "*int64" optional scalar field below; there are enough of them in a
// Parquet footer (NumChildren, FieldID, IndexPageOffset, ...) that writing
// the nil-check by hand at each call site would just be repetition, not a
// different field.
func optI32Field(get func(any) *int32, set func(any, *int32)) (schema.Getter, schema.Setter) {
	return func(obj any) (any, bool) {
			p := get(obj)
			if p == nil {
				return nil, false
			}
			return *p, true
		}, func(obj any, v any) {
			if v == nil {
				set(obj, nil)
				return
			}
			n := v.(int32)
			set(obj, &n)
		}
}

func optI64Field(get func(any) *int64, set func(any, *int64)) (schema.Getter, schema.Setter) {
	return func(obj any) (any, bool) {
			p := get(obj)
			if p == nil {
				return nil, false
			}
			return *p, true
		}, func(obj any, v any) {
			if v == nil {
				set(obj, nil)
				return
			}
			n := v.(int64)
			set(obj, &n)
		}
}

// SchemaElementDescriptor describes one flattened schema-tree node.
var SchemaElementDescriptor = schema.NewStructDescriptor("SchemaElement", false,
	func() any { return &SchemaElement{} },
	&schema.FieldDescriptor{
		Name: "Type", ID: 1, Type: wiretype.I32, Optional: true, Enum: TypeEnum,
		Get: func(obj any) (any, bool) {
			p := obj.(*SchemaElement)
			if p.Type == nil {
				return nil, false
			}
			return int32(*p.Type), true
		},
		Set: func(obj any, v any) {
			p := obj.(*SchemaElement)
			if v == nil {
				p.Type = nil
				return
			}
			t := Type(v.(int32))
			p.Type = &t
		},
	},
	&schema.FieldDescriptor{
		Name: "RepetitionType", ID: 3, Type: wiretype.I32, Optional: true, Enum: FieldRepetitionTypeEnum,
		Get: func(obj any) (any, bool) {
			p := obj.(*SchemaElement)
			if p.RepetitionType == nil {
				return nil, false
			}
			return int32(*p.RepetitionType), true
		},
		Set: func(obj any, v any) {
			p := obj.(*SchemaElement)
			if v == nil {
				p.RepetitionType = nil
				return
			}
			rt := FieldRepetitionType(v.(int32))
			p.RepetitionType = &rt
		},
	},
	&schema.FieldDescriptor{
		Name: "Name", ID: 4, Type: wiretype.STRING, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*SchemaElement).Name, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*SchemaElement).Name = ""
				return
			}
			obj.(*SchemaElement).Name = string(v.([]byte))
		},
	},
	func() *schema.FieldDescriptor {
		get, set := optI32Field(
			func(obj any) *int32 { return obj.(*SchemaElement).NumChildren },
			func(obj any, v *int32) { obj.(*SchemaElement).NumChildren = v },
		)
		return &schema.FieldDescriptor{Name: "NumChildren", ID: 5, Type: wiretype.I32, Optional: true, Get: get, Set: set}
	}(),
	func() *schema.FieldDescriptor {
		get, set := optI32Field(
			func(obj any) *int32 { return obj.(*SchemaElement).FieldID },
			func(obj any, v *int32) { obj.(*SchemaElement).FieldID = v },
		)
		return &schema.FieldDescriptor{Name: "FieldID", ID: 9, Type: wiretype.I32, Optional: true, Get: get, Set: set}
	}(),
)

// StatisticsDescriptor describes the optional per-column summary stats.
var StatisticsDescriptor = schema.NewStructDescriptor("Statistics", false,
	func() any { return &Statistics{} },
	&schema.FieldDescriptor{
		Name: "Max", ID: 5, Type: wiretype.STRING, Optional: true,
		Get: func(obj any) (any, bool) {
			p := obj.(*Statistics)
			if p.Max == nil {
				return nil, false
			}
			return p.Max, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*Statistics).Max = nil
				return
			}
			obj.(*Statistics).Max = v.([]byte)
		},
	},
	&schema.FieldDescriptor{
		Name: "Min", ID: 6, Type: wiretype.STRING, Optional: true,
		Get: func(obj any) (any, bool) {
			p := obj.(*Statistics)
			if p.Min == nil {
				return nil, false
			}
			return p.Min, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*Statistics).Min = nil
				return
			}
			obj.(*Statistics).Min = v.([]byte)
		},
	},
	func() *schema.FieldDescriptor {
		get, set := optI64Field(
			func(obj any) *int64 { return obj.(*Statistics).NullCount },
			func(obj any, v *int64) { obj.(*Statistics).NullCount = v },
		)
		return &schema.FieldDescriptor{Name: "NullCount", ID: 3, Type: wiretype.I64, Optional: true, Get: get, Set: set}
	}(),
	func() *schema.FieldDescriptor {
		get, set := optI64Field(
			func(obj any) *int64 { return obj.(*Statistics).DistinctCount },
			func(obj any, v *int64) { obj.(*Statistics).DistinctCount = v },
		)
		return &schema.FieldDescriptor{Name: "DistinctCount", ID: 4, Type: wiretype.I64, Optional: true, Get: get, Set: set}
	}(),
)

var encodingListDescriptor = &schema.ListDescriptor{Elem: wiretype.I32, ElemEnum: EncodingEnum}
var pathInSchemaListDescriptor = &schema.ListDescriptor{Elem: wiretype.STRING}

// ColumnMetaDataDescriptor describes one column chunk's physical layout.
var ColumnMetaDataDescriptor = schema.NewStructDescriptor("ColumnMetaData", false,
	func() any { return &ColumnMetaData{} },
	&schema.FieldDescriptor{
		Name: "Type", ID: 1, Type: wiretype.I32, Required: true, Enum: TypeEnum,
		Get: func(obj any) (any, bool) { return int32(obj.(*ColumnMetaData).Type), true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).Type = 0
				return
			}
			obj.(*ColumnMetaData).Type = Type(v.(int32))
		},
	},
	&schema.FieldDescriptor{
		Name: "Encodings", ID: 2, Type: wiretype.LIST, Required: true, Element: encodingListDescriptor,
		Get: func(obj any) (any, bool) {
			es := obj.(*ColumnMetaData).Encodings
			out := make([]int32, len(es))
			for i, e := range es {
				out[i] = int32(e)
			}
			return out, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).Encodings = nil
				return
			}
			is := v.([]int32)
			out := make([]Encoding, len(is))
			for i, n := range is {
				out[i] = Encoding(n)
			}
			obj.(*ColumnMetaData).Encodings = out
		},
	},
	&schema.FieldDescriptor{
		Name: "PathInSchema", ID: 3, Type: wiretype.LIST, Required: true, Element: pathInSchemaListDescriptor,
		Get: func(obj any) (any, bool) { return obj.(*ColumnMetaData).PathInSchema, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).PathInSchema = nil
				return
			}
			ss := v.([][]byte)
			out := make([]string, len(ss))
			for i, b := range ss {
				out[i] = string(b)
			}
			obj.(*ColumnMetaData).PathInSchema = out
		},
	},
	&schema.FieldDescriptor{
		Name: "Codec", ID: 4, Type: wiretype.I32, Required: true, Enum: CompressionCodecEnum,
		Get: func(obj any) (any, bool) { return int32(obj.(*ColumnMetaData).Codec), true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).Codec = 0
				return
			}
			obj.(*ColumnMetaData).Codec = CompressionCodec(v.(int32))
		},
	},
	&schema.FieldDescriptor{
		Name: "NumValues", ID: 5, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*ColumnMetaData).NumValues, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).NumValues = 0
				return
			}
			obj.(*ColumnMetaData).NumValues = v.(int64)
		},
	},
	&schema.FieldDescriptor{
		Name: "TotalUncompressedSize", ID: 6, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*ColumnMetaData).TotalUncompressedSize, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).TotalUncompressedSize = 0
				return
			}
			obj.(*ColumnMetaData).TotalUncompressedSize = v.(int64)
		},
	},
	&schema.FieldDescriptor{
		Name: "TotalCompressedSize", ID: 7, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*ColumnMetaData).TotalCompressedSize, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).TotalCompressedSize = 0
				return
			}
			obj.(*ColumnMetaData).TotalCompressedSize = v.(int64)
		},
	},
	&schema.FieldDescriptor{
		Name: "DataPageOffset", ID: 9, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*ColumnMetaData).DataPageOffset, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).DataPageOffset = 0
				return
			}
			obj.(*ColumnMetaData).DataPageOffset = v.(int64)
		},
	},
	func() *schema.FieldDescriptor {
		get, set := optI64Field(
			func(obj any) *int64 { return obj.(*ColumnMetaData).IndexPageOffset },
			func(obj any, v *int64) { obj.(*ColumnMetaData).IndexPageOffset = v },
		)
		return &schema.FieldDescriptor{Name: "IndexPageOffset", ID: 10, Type: wiretype.I64, Optional: true, Get: get, Set: set}
	}(),
	func() *schema.FieldDescriptor {
		get, set := optI64Field(
			func(obj any) *int64 { return obj.(*ColumnMetaData).DictionaryPageOffset },
			func(obj any, v *int64) { obj.(*ColumnMetaData).DictionaryPageOffset = v },
		)
		return &schema.FieldDescriptor{Name: "DictionaryPageOffset", ID: 11, Type: wiretype.I64, Optional: true, Get: get, Set: set}
	}(),
	&schema.FieldDescriptor{
		Name: "Statistics", ID: 12, Type: wiretype.STRUCT, Optional: true, Struct: StatisticsDescriptor,
		Get: func(obj any) (any, bool) {
			p := obj.(*ColumnMetaData).Statistics
			if p == nil {
				return nil, false
			}
			return p, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnMetaData).Statistics = nil
				return
			}
			obj.(*ColumnMetaData).Statistics = v.(*Statistics)
		},
	},
)

// ColumnChunkDescriptor locates one column's metadata.
var ColumnChunkDescriptor = schema.NewStructDescriptor("ColumnChunk", false,
	func() any { return &ColumnChunk{} },
	&schema.FieldDescriptor{
		Name: "FilePath", ID: 1, Type: wiretype.STRING, Optional: true,
		Get: func(obj any) (any, bool) {
			p := obj.(*ColumnChunk)
			if p.FilePath == nil {
				return nil, false
			}
			return *p.FilePath, true
		},
		Set: func(obj any, v any) {
			p := obj.(*ColumnChunk)
			if v == nil {
				p.FilePath = nil
				return
			}
			s := string(v.([]byte))
			p.FilePath = &s
		},
	},
	&schema.FieldDescriptor{
		Name: "FileOffset", ID: 2, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*ColumnChunk).FileOffset, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnChunk).FileOffset = 0
				return
			}
			obj.(*ColumnChunk).FileOffset = v.(int64)
		},
	},
	&schema.FieldDescriptor{
		Name: "MetaData", ID: 3, Type: wiretype.STRUCT, Required: true, Struct: ColumnMetaDataDescriptor,
		Get: func(obj any) (any, bool) {
			p := obj.(*ColumnChunk).MetaData
			if p == nil {
				return nil, false
			}
			return p, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*ColumnChunk).MetaData = nil
				return
			}
			obj.(*ColumnChunk).MetaData = v.(*ColumnMetaData)
		},
	},
)

var columnChunkListDescriptor = &schema.ListDescriptor{Elem: wiretype.STRUCT, ElemStruct: ColumnChunkDescriptor}

// RowGroupDescriptor describes one horizontal partition of rows.
var RowGroupDescriptor = schema.NewStructDescriptor("RowGroup", false,
	func() any { return &RowGroup{} },
	&schema.FieldDescriptor{
		Name: "Columns", ID: 1, Type: wiretype.LIST, Required: true, Element: columnChunkListDescriptor,
		Get: func(obj any) (any, bool) {
			cs := obj.(*RowGroup).Columns
			out := make([]any, len(cs))
			for i, c := range cs {
				out[i] = c
			}
			return out, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*RowGroup).Columns = nil
				return
			}
			vs := v.([]any)
			out := make([]*ColumnChunk, len(vs))
			for i, e := range vs {
				out[i] = e.(*ColumnChunk)
			}
			obj.(*RowGroup).Columns = out
		},
	},
	&schema.FieldDescriptor{
		Name: "TotalByteSize", ID: 2, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*RowGroup).TotalByteSize, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*RowGroup).TotalByteSize = 0
				return
			}
			obj.(*RowGroup).TotalByteSize = v.(int64)
		},
	},
	&schema.FieldDescriptor{
		Name: "NumRows", ID: 3, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*RowGroup).NumRows, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*RowGroup).NumRows = 0
				return
			}
			obj.(*RowGroup).NumRows = v.(int64)
		},
	},
)

var schemaElementListDescriptor = &schema.ListDescriptor{Elem: wiretype.STRUCT, ElemStruct: SchemaElementDescriptor}
var rowGroupListDescriptor = &schema.ListDescriptor{Elem: wiretype.STRUCT, ElemStruct: RowGroupDescriptor}

// FileMetaDataDescriptor describes the Parquet footer itself.
var FileMetaDataDescriptor = schema.NewStructDescriptor("FileMetaData", false,
	func() any { return &FileMetaData{} },
	&schema.FieldDescriptor{
		Name: "Version", ID: 1, Type: wiretype.I32, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*FileMetaData).Version, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*FileMetaData).Version = 0
				return
			}
			obj.(*FileMetaData).Version = v.(int32)
		},
	},
	&schema.FieldDescriptor{
		Name: "Schema", ID: 2, Type: wiretype.LIST, Required: true, Element: schemaElementListDescriptor,
		Get: func(obj any) (any, bool) {
			ss := obj.(*FileMetaData).Schema
			out := make([]any, len(ss))
			for i, s := range ss {
				out[i] = s
			}
			return out, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*FileMetaData).Schema = nil
				return
			}
			vs := v.([]any)
			out := make([]*SchemaElement, len(vs))
			for i, e := range vs {
				out[i] = e.(*SchemaElement)
			}
			obj.(*FileMetaData).Schema = out
		},
	},
	&schema.FieldDescriptor{
		Name: "NumRows", ID: 3, Type: wiretype.I64, Required: true,
		Get: func(obj any) (any, bool) { return obj.(*FileMetaData).NumRows, true },
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*FileMetaData).NumRows = 0
				return
			}
			obj.(*FileMetaData).NumRows = v.(int64)
		},
	},
	&schema.FieldDescriptor{
		Name: "RowGroups", ID: 4, Type: wiretype.LIST, Required: true, Element: rowGroupListDescriptor,
		Get: func(obj any) (any, bool) {
			rs := obj.(*FileMetaData).RowGroups
			out := make([]any, len(rs))
			for i, r := range rs {
				out[i] = r
			}
			return out, true
		},
		Set: func(obj any, v any) {
			if v == nil {
				obj.(*FileMetaData).RowGroups = nil
				return
			}
			vs := v.([]any)
			out := make([]*RowGroup, len(vs))
			for i, e := range vs {
				out[i] = e.(*RowGroup)
			}
			obj.(*FileMetaData).RowGroups = out
		},
	},
	&schema.FieldDescriptor{
		Name: "CreatedBy", ID: 6, Type: wiretype.STRING, Optional: true,
		Get: func(obj any) (any, bool) {
			p := obj.(*FileMetaData)
			if p.CreatedBy == nil {
				return nil, false
			}
			return *p.CreatedBy, true
		},
		Set: func(obj any, v any) {
			p := obj.(*FileMetaData)
			if v == nil {
				p.CreatedBy = nil
				return
			}
			s := string(v.([]byte))
			p.CreatedBy = &s
		},
	},
)
