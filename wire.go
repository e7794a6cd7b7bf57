package nodewire

import "github.com/creachadair/mds/value"

// A WireKind is the top-level tag of a wire value union.
type WireKind uint16

const (
	WireInt64 WireKind = iota
	WireDouble
	WireComplex
	WireString
	WireVectorData
	WireCounterSample
	WireTriggerSample
	WireNone
)

func (k WireKind) String() string {
	switch k {
	case WireInt64:
		return "int64"
	case WireDouble:
		return "double"
	case WireComplex:
		return "complex"
	case WireString:
		return "string"
	case WireVectorData:
		return "vectorData"
	case WireCounterSample:
		return "cntSample"
	case WireTriggerSample:
		return "triggerSample"
	case WireNone:
		return "none"
	}
	return "unknown"
}

// A VectorKind is the framing tag of a vector payload. ByteArray and
// VectorData are the generic kinds; every other kind implies a
// subsystem-specific extra header prefixed to the element bytes.
type VectorKind uint32

const (
	ByteArrayVector          VectorKind = 7
	VectorDataVector         VectorKind = 67
	ResultLoggerVectorKind   VectorKind = 68
	WaveformVectorKind       VectorKind = 69
	ScopeVectorKind          VectorKind = 70
	DemodulatorVectorKind    VectorKind = 71
)

// IsGeneric reports whether k carries no extra header.
func (k VectorKind) IsGeneric() bool {
	return k == ByteArrayVector || k == VectorDataVector
}

// A WireVector is the vector arm of a wire value: raw element bytes
// plus the framing metadata needed to interpret them.
type WireVector struct {
	// Kind is the framing tag.
	Kind VectorKind
	// ExtraHeaderInfo encodes the header layout version in its upper
	// 16 bits and the header length in 32-bit words in its lower 16
	// bits. Zero for generic kinds.
	ExtraHeaderInfo uint32
	// ElementType declares how the element bytes after any header are
	// to be interpreted.
	ElementType ElementType
	// Data is the header (if any) followed by the raw element bytes.
	Data []byte
}

// HeaderLen returns the extra header length in bytes.
func (v *WireVector) HeaderLen() int {
	return int(v.ExtraHeaderInfo&0xffff) * 4
}

// HeaderVersion returns the extra header layout version.
func (v *WireVector) HeaderVersion() uint16 {
	return uint16(v.ExtraHeaderInfo >> 16)
}

func headerInfo(version uint16, lengthBytes int) uint32 {
	return uint32(version)<<16 | uint32(lengthBytes/4)
}

// A WireValue is one deframed value from the transport: a tagged
// union with exactly one arm populated, selected by Kind.
type WireValue struct {
	Kind WireKind

	Int64   int64
	Double  float64
	Complex Complex
	String  string
	Vector  *WireVector
	Counter *CounterSample
	Trigger *TriggerSample
}

// A WireMessage is a wire value together with its metadata, as
// received from or handed to the transport layer.
type WireMessage struct {
	// Value is the tagged value union.
	Value *WireValue
	// Path is the absolute node path the value belongs to.
	Path NodePath
	// Timestamp is the instrument clock value in microseconds.
	// Present on received messages, absent on outbound ones.
	Timestamp value.Maybe[uint64]
}
