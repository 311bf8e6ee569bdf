package common

import (
	"encoding/binary"
	"math"
)

// SliceToBytes reinterprets a float32 slice as little-endian bytes for GPU buffer uploads.
//
// Parameters:
//   - data: source slice
//
// Returns:
//   - []byte: a new byte slice, or nil if data is empty
func SliceToBytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, 0, len(data)*4)
	for _, f := range data {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
	}
	return out
}

// Uint32SliceToBytes reinterprets a uint32 slice as little-endian bytes for index buffer uploads.
//
// Parameters:
//   - data: source slice
//
// Returns:
//   - []byte: a new byte slice, or nil if data is empty
func Uint32SliceToBytes(data []uint32) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, 0, len(data)*4)
	for _, v := range data {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}
