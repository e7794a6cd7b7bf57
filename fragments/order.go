package fragments

import "encoding/binary"

// ByteOrder is the byte order used for multi-byte fragment values.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var (
	BigEndian    ByteOrder = binary.BigEndian
	LittleEndian ByteOrder = binary.LittleEndian
	NativeEndian ByteOrder = binary.NativeEndian
)
