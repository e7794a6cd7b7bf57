package nodewire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// An ElementType identifies the element type of a numeric vector as
// declared by the wire framing.
type ElementType uint8

const (
	Uint8Element ElementType = iota
	Uint16Element
	Uint32Element
	Uint64Element
	Float32Element
	Float64Element
	StringElement
	Int8Element
	Int16Element
	Int32Element
	Int64Element
)

// Size returns the width of one element in bytes. String elements
// have no fixed width and report 1, the granularity of the raw UTF-8
// payload.
func (t ElementType) Size() int {
	switch t {
	case Int8Element, Uint8Element, StringElement:
		return 1
	case Int16Element, Uint16Element:
		return 2
	case Int32Element, Uint32Element, Float32Element:
		return 4
	case Int64Element, Uint64Element, Float64Element:
		return 8
	}
	return 0
}

// IsFloat reports whether the element type is a floating point type.
func (t ElementType) IsFloat() bool {
	return t == Float32Element || t == Float64Element
}

// IsSigned reports whether the element type is a signed integer type.
func (t ElementType) IsSigned() bool {
	switch t {
	case Int8Element, Int16Element, Int32Element, Int64Element:
		return true
	}
	return false
}

func (t ElementType) String() string {
	switch t {
	case Int8Element:
		return "int8"
	case Uint8Element:
		return "uint8"
	case Int16Element:
		return "int16"
	case Uint16Element:
		return "uint16"
	case Int32Element:
		return "int32"
	case Uint32Element:
		return "uint32"
	case Int64Element:
		return "int64"
	case Uint64Element:
		return "uint64"
	case Float32Element:
		return "float32"
	case Float64Element:
		return "float64"
	case StringElement:
		return "string"
	}
	return fmt.Sprintf("ElementType(%d)", uint8(t))
}

// A Vector is a numeric array node value. Data holds the raw element
// bytes in native layout, so that a vector received from the wire
// round-trips bit for bit. Type declares how the bytes are to be
// interpreted; width and signedness/floatness are exact, with no
// implicit widening or narrowing.
type Vector struct {
	Type ElementType
	Data []byte
}

// Len returns the number of elements.
func (v Vector) Len() int {
	if s := v.Type.Size(); s > 0 {
		return len(v.Data) / s
	}
	return 0
}

// VectorElement constrains the Go element types a [Vector] can be
// built from or converted to.
type VectorElement interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// VectorOf builds a Vector from a typed slice. The element type tag
// is derived from T.
func VectorOf[T VectorElement](xs []T) Vector {
	var zero T
	t := elementTypeOf(zero)
	data := make([]byte, 0, len(xs)*t.Size())
	for _, x := range xs {
		data = appendElement(data, x)
	}
	return Vector{Type: t, Data: data}
}

// VectorData reinterprets v's raw bytes as a []T. It fails if T does
// not exactly match v's declared element type, or if the payload is
// not a whole number of elements.
func VectorData[T VectorElement](v Vector) ([]T, error) {
	var zero T
	t := elementTypeOf(zero)
	if t != v.Type {
		return nil, fmt.Errorf("vector holds %s elements, not %s", v.Type, t)
	}
	size := t.Size()
	if len(v.Data)%size != 0 {
		return nil, fmt.Errorf("vector payload of %d bytes is not a whole number of %s elements", len(v.Data), t)
	}
	ret := make([]T, 0, len(v.Data)/size)
	for off := 0; off < len(v.Data); off += size {
		ret = append(ret, readElement[T](v.Data[off:off+size]))
	}
	return ret, nil
}

func elementTypeOf(zero any) ElementType {
	switch zero.(type) {
	case int8:
		return Int8Element
	case uint8:
		return Uint8Element
	case int16:
		return Int16Element
	case uint16:
		return Uint16Element
	case int32:
		return Int32Element
	case uint32:
		return Uint32Element
	case int64:
		return Int64Element
	case uint64:
		return Uint64Element
	case float32:
		return Float32Element
	case float64:
		return Float64Element
	}
	panic(fmt.Sprintf("unhandled vector element type %T", zero))
}

func appendElement[T VectorElement](data []byte, x T) []byte {
	switch x := any(x).(type) {
	case int8:
		return append(data, byte(x))
	case uint8:
		return append(data, x)
	case int16:
		return binary.NativeEndian.AppendUint16(data, uint16(x))
	case uint16:
		return binary.NativeEndian.AppendUint16(data, x)
	case int32:
		return binary.NativeEndian.AppendUint32(data, uint32(x))
	case uint32:
		return binary.NativeEndian.AppendUint32(data, x)
	case int64:
		return binary.NativeEndian.AppendUint64(data, uint64(x))
	case uint64:
		return binary.NativeEndian.AppendUint64(data, x)
	case float32:
		return binary.NativeEndian.AppendUint32(data, math.Float32bits(x))
	case float64:
		return binary.NativeEndian.AppendUint64(data, math.Float64bits(x))
	}
	panic("unreachable")
}

func readElement[T VectorElement](bs []byte) T {
	var ret any
	var zero T
	switch any(zero).(type) {
	case int8:
		ret = int8(bs[0])
	case uint8:
		ret = bs[0]
	case int16:
		ret = int16(binary.NativeEndian.Uint16(bs))
	case uint16:
		ret = binary.NativeEndian.Uint16(bs)
	case int32:
		ret = int32(binary.NativeEndian.Uint32(bs))
	case uint32:
		ret = binary.NativeEndian.Uint32(bs)
	case int64:
		ret = int64(binary.NativeEndian.Uint64(bs))
	case uint64:
		ret = binary.NativeEndian.Uint64(bs)
	case float32:
		ret = math.Float32frombits(binary.NativeEndian.Uint32(bs))
	case float64:
		ret = math.Float64frombits(binary.NativeEndian.Uint64(bs))
	}
	return ret.(T)
}
