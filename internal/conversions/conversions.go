// Package conversions holds the one unsafe conversion this module allows:
// viewing a string's bytes without copying, for use only on the write path.
// Decoded STRING/BINARY values are never produced this way (see package
// compact): the wire format's non-goal of zero-copy borrowed reads means
// ByteSlice2String-style decode shortcuts are intentionally absent here.
package conversions

import (
	"reflect"
	"unsafe"
)

// UnsafeGetBytes retrieves the underlying []byte held in string s without
// doing a copy. The caller must not modify the returned slice, and must not
// use it beyond the lifetime of s. Safe for write-side use, where the bytes
// are only read and copied onto the wire before the call returns.
func UnsafeGetBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return (*[0x7fff0000]byte)(unsafe.Pointer(
		(*reflect.StringHeader)(unsafe.Pointer(&s)).Data),
	)[:len(s):len(s)]
}
