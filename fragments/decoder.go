package fragments

import (
	"fmt"
	"math"
)

// A Decoder provides utilities to read packed instrument payload
// fragments from a byte slice.
//
// Methods advance the read cursor with no alignment padding. If Order
// is nil, [LittleEndian] is used.
type Decoder struct {
	// Order is the byte order to use when reading multi-byte values.
	Order ByteOrder
	// In is the input to read.
	In []byte

	offset int
}

func (d *Decoder) order() ByteOrder {
	if d.Order == nil {
		return LittleEndian
	}
	return d.Order
}

// Read reads n bytes. The returned slice aliases the input.
func (d *Decoder) Read(n int) ([]byte, error) {
	if n < 0 || d.offset+n > len(d.In) {
		return nil, fmt.Errorf("short fragment: need %d bytes at offset %d, have %d", n, d.offset, len(d.In)-d.offset)
	}
	ret := d.In[d.offset : d.offset+n]
	d.offset += n
	return ret, nil
}

// Skip discards n bytes. Skipping past the end of the input consumes
// the remainder and reports no error.
func (d *Decoder) Skip(n int) {
	if n < 0 {
		return
	}
	d.offset = min(d.offset+n, len(d.In))
}

// Rest returns all unread bytes, consuming them.
func (d *Decoder) Rest() []byte {
	ret := d.In[d.offset:]
	d.offset = len(d.In)
	return ret
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.In) - d.offset
}

// Uint8 reads a uint8.
func (d *Decoder) Uint8() (uint8, error) {
	bs, err := d.Read(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

// Uint16 reads a uint16.
func (d *Decoder) Uint16() (uint16, error) {
	bs, err := d.Read(2)
	if err != nil {
		return 0, err
	}
	return d.order().Uint16(bs), nil
}

// Uint32 reads a uint32.
func (d *Decoder) Uint32() (uint32, error) {
	bs, err := d.Read(4)
	if err != nil {
		return 0, err
	}
	return d.order().Uint32(bs), nil
}

// Uint64 reads a uint64.
func (d *Decoder) Uint64() (uint64, error) {
	bs, err := d.Read(8)
	if err != nil {
		return 0, err
	}
	return d.order().Uint64(bs), nil
}

// Float32 reads a float32 from its IEEE 754 bit pattern.
func (d *Decoder) Float32() (float32, error) {
	u, err := d.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// Float64 reads a float64 from its IEEE 754 bit pattern.
func (d *Decoder) Float64() (float64, error) {
	u, err := d.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}
