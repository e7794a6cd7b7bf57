package fragments

import "math"

// An Encoder provides utilities to write packed instrument payload
// fragments to a byte slice.
//
// Methods append bytes verbatim with no alignment padding. If Order
// is nil, [LittleEndian] is used.
type Encoder struct {
	// Order is the byte order to use when encoding multi-byte values.
	Order ByteOrder
	// Out is the encoded output.
	Out []byte
}

func (e *Encoder) order() ByteOrder {
	if e.Order == nil {
		return LittleEndian
	}
	return e.Order
}

// Write writes bs as-is to the output.
func (e *Encoder) Write(bs []byte) {
	e.Out = append(e.Out, bs...)
}

// Uint8 writes a uint8.
func (e *Encoder) Uint8(u8 uint8) {
	e.Out = append(e.Out, u8)
}

// Uint16 writes a uint16.
func (e *Encoder) Uint16(u16 uint16) {
	e.Out = e.order().AppendUint16(e.Out, u16)
}

// Uint32 writes a uint32.
func (e *Encoder) Uint32(u32 uint32) {
	e.Out = e.order().AppendUint32(e.Out, u32)
}

// Uint64 writes a uint64.
func (e *Encoder) Uint64(u64 uint64) {
	e.Out = e.order().AppendUint64(e.Out, u64)
}

// Float32 writes a float32 as its IEEE 754 bit pattern.
func (e *Encoder) Float32(f float32) {
	e.Uint32(math.Float32bits(f))
}

// Float64 writes a float64 as its IEEE 754 bit pattern.
func (e *Encoder) Float64(f float64) {
	e.Uint64(math.Float64bits(f))
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.Out)
}
