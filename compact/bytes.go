package compact

import "github.com/aleloi/thrift/internal/conversions"

// stringBytes views s's bytes without copying, for the write path only: the
// bytes are read and copied onto the wire before this call returns. Decoded
// strings are never produced this way; see reader.go.
func stringBytes(s string) []byte {
	return conversions.UnsafeGetBytes(s)
}
