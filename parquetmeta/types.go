// Package parquetmeta is a worked example of the binding layer end to end:
// hand-written schema.StructDescriptors for a realistic subset of Parquet's
// FileMetaData, the motivating use case named in the top-level design
// ("reading and writing Apache Parquet file footers"). Consuming the result
// as actual Parquet column data is out of scope; this package only round
// trips the footer structure itself through package binding.
//
// The descriptors here are hand-written rather than generated from Thrift
// IDL, since the IDL parser/code generator is explicitly out of scope:
// package schema's doc comment describes this as the normal shape of
// Thrift-generated Go code, written by hand instead of by a generator.
package parquetmeta

// Type is Parquet's physical column encoding, a plain I32 enum on the wire.
type Type int32

const (
	TypeBoolean           Type = 0
	TypeInt32             Type = 1
	TypeInt64             Type = 2
	TypeInt96             Type = 3
	TypeFloat             Type = 4
	TypeDouble            Type = 5
	TypeByteArray         Type = 6
	TypeFixedLenByteArray Type = 7
)

// FieldRepetitionType is whether a schema element is required, optional, or
// repeated within its parent.
type FieldRepetitionType int32

const (
	RepetitionRequired FieldRepetitionType = 0
	RepetitionOptional FieldRepetitionType = 1
	RepetitionRepeated FieldRepetitionType = 2
)

// CompressionCodec is the page-level compression applied to a column chunk.
type CompressionCodec int32

const (
	CompressionUncompressed CompressionCodec = 0
	CompressionSnappy       CompressionCodec = 1
	CompressionGzip         CompressionCodec = 2
	CompressionLZO          CompressionCodec = 3
	CompressionBrotli       CompressionCodec = 4
	CompressionLZ4          CompressionCodec = 5
	CompressionZstd         CompressionCodec = 6
	CompressionLZ4Raw       CompressionCodec = 7
)

// Encoding is how values within a page are packed.
type Encoding int32

const (
	EncodingPlain                Encoding = 0
	EncodingPlainDictionary      Encoding = 2
	EncodingRLE                  Encoding = 3
	EncodingDeltaBinaryPacked    Encoding = 5
	EncodingDeltaLengthByteArray Encoding = 6
	EncodingDeltaByteArray       Encoding = 7
	EncodingRLEDictionary        Encoding = 8
	EncodingByteStreamSplit      Encoding = 9
)

// SchemaElement describes one node of the flattened schema tree (the parent
// links implied by NumChildren, per real Parquet footers).
type SchemaElement struct {
	Type           *Type // nil for group (non-leaf) nodes
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	FieldID        *int32
}

// Statistics carries optional per-column summary statistics. Min/Max are the
// raw Parquet-encoded bytes of the bound value, not a typed value: the
// physical Type (on the enclosing ColumnMetaData) is needed to interpret
// them, which this package's scope does not attempt.
type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     *int64
	DistinctCount *int64
}

// ColumnMetaData describes one column chunk's physical layout.
type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	DataPageOffset        int64
	IndexPageOffset       *int64
	DictionaryPageOffset  *int64
	Statistics            *Statistics
}

// ColumnChunk locates a column's metadata, optionally in a separate file
// from the footer that references it.
type ColumnChunk struct {
	FilePath   *string
	FileOffset int64
	MetaData   *ColumnMetaData
}

// RowGroup is one horizontal partition of rows, one ColumnChunk per column.
type RowGroup struct {
	Columns       []*ColumnChunk
	TotalByteSize int64
	NumRows       int64
}

// FileMetaData is the Parquet footer.
type FileMetaData struct {
	Version   int32
	Schema    []*SchemaElement
	NumRows   int64
	RowGroups []*RowGroup
	CreatedBy *string
}
