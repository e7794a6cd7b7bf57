package nodewire

import (
	"github.com/creachadair/mds/value"
)

// A Value is one typed node value. It is a closed union: exactly the
// types in this package implement it, and the codec dispatches on the
// concrete type with an exhaustive switch. New kinds are added by
// extending the union, not by implementing the interface elsewhere.
type Value interface {
	isValue()
}

// Int64 is a signed integer node value. Boolean and all integral
// values travel the wire as Int64.
type Int64 int64

// Float64 is a floating point node value. All floating point values
// travel the wire as Float64.
type Float64 float64

// Complex is a complex scalar node value, carried on the wire as two
// float64 components.
type Complex complex128

// Text is a string node value.
type Text string

// Bytes is an opaque binary node value, carried as a generic byte
// array vector.
type Bytes []byte

// Empty is the value of a node that has no value, and the wire
// representation of "none".
type Empty struct{}

// A TriggerSample is a single hardware trigger event snapshot.
type TriggerSample struct {
	// Timestamp is the device clock tick at which the values were
	// measured.
	Timestamp uint64
	// SampleTick is the sample tick at which the values were measured.
	SampleTick uint64
	// Trigger holds the trigger bits.
	Trigger uint64
	// MissedTriggers holds the missed trigger bits.
	MissedTriggers uint64
	// AWGTrigger holds the AWG trigger values at the time of trigger.
	AWGTrigger uint64
	// DIO holds the DIO values at the time of trigger.
	DIO uint64
	// SequenceIndex is the AWG sequencer index at the time of trigger.
	SequenceIndex uint64
}

// A CounterSample is a single counter sample.
type CounterSample struct {
	// Timestamp is the device clock tick at which the value was
	// measured.
	Timestamp uint64
	// Counter is the counter value.
	Counter uint64
	// Trigger holds the trigger bits.
	Trigger uint64
}

// A DemodSample is a demodulator vector sample: two parallel real
// arrays, one per quadrature component. The arrays are never
// interleaved complex pairs, because parallel arrays are the
// instrument's native sample shape.
type DemodSample struct {
	I Vector
	Q Vector
}

func (Int64) isValue()         {}
func (Float64) isValue()       {}
func (Complex) isValue()       {}
func (Text) isValue()          {}
func (Bytes) isValue()         {}
func (Empty) isValue()         {}
func (TriggerSample) isValue() {}
func (CounterSample) isValue() {}
func (DemodSample) isValue()   {}
func (Vector) isValue()        {}

// Bool returns the Int64 encoding of a boolean (0 or 1).
func Bool(b bool) Int64 {
	if b {
		return 1
	}
	return 0
}

// An AnnotatedValue is a node value together with the node path it
// belongs to and, for values received from the instrument, the time
// at which the instrument sent it.
type AnnotatedValue struct {
	// Value is the node value.
	Value Value
	// Path uniquely identifies the addressed node. It is immutable
	// once constructed.
	Path NodePath
	// Timestamp is the instrument clock value in microseconds at
	// which the value was sent. Absent on values a caller is about to
	// send.
	Timestamp value.Maybe[uint64]
	// ExtraHeader carries subsystem-specific vector metadata. Present
	// only when the value was framed with a device-specific vector
	// kind.
	ExtraHeader value.Maybe[ExtraHeader]
}
