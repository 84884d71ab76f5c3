package utils

import (
	"unsafe"
)

// PointerToBytes exposes the memory of *val as a byte slice of the given
// length. The slice aliases val and is only valid while val is alive.
func PointerToBytes[T any](val *T, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(val)), length)
}
