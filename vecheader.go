package nodewire

import (
	"fmt"

	"github.com/halverson/nodewire/fragments"
)

// An ExtraHeader is subsystem-specific metadata prefixed to the
// element bytes of a device-specific vector payload. Each variant is
// a fixed-layout little-endian record; the framing word of the
// surrounding vector carries the layout version and the total header
// length in 32-bit words.
//
// The set of variants is closed, one per instrument subsystem that
// frames vectors with a non-generic kind.
type ExtraHeader interface {
	// VectorKind returns the framing tag this header belongs to.
	VectorKind() VectorKind

	version() uint16
	appendTo(e *fragments.Encoder)
}

// A ScopeVectorHeader carries the acquisition context of an
// oscilloscope vector.
type ScopeVectorHeader struct {
	// Timestamp is the device clock tick of the first sample.
	Timestamp uint64
	// TimestampDiff is the clock ticks between adjacent samples.
	TimestampDiff uint32
	// Flags holds acquisition status bits.
	Flags uint32
	// Scaling converts raw sample values to volts.
	Scaling float64
	// CenterFrequency is the RF center frequency in Hz.
	CenterFrequency float64
	// TriggerTimestamp is the device clock tick of the trigger event.
	TriggerTimestamp uint64
	// InputSelect identifies the signal input the data was taken from.
	InputSelect uint32
	// AverageCount is the number of acquisitions averaged into the
	// vector.
	AverageCount uint32
}

func (ScopeVectorHeader) VectorKind() VectorKind { return ScopeVectorKind }
func (ScopeVectorHeader) version() uint16        { return 1 }

func (h ScopeVectorHeader) appendTo(e *fragments.Encoder) {
	e.Uint64(h.Timestamp)
	e.Uint32(h.TimestampDiff)
	e.Uint32(h.Flags)
	e.Float64(h.Scaling)
	e.Float64(h.CenterFrequency)
	e.Uint64(h.TriggerTimestamp)
	e.Uint32(h.InputSelect)
	e.Uint32(h.AverageCount)
}

func parseScopeVectorHeader(d *fragments.Decoder) (h ScopeVectorHeader, err error) {
	read(&h.Timestamp, d.Uint64, &err)
	read(&h.TimestampDiff, d.Uint32, &err)
	read(&h.Flags, d.Uint32, &err)
	read(&h.Scaling, d.Float64, &err)
	read(&h.CenterFrequency, d.Float64, &err)
	read(&h.TriggerTimestamp, d.Uint64, &err)
	read(&h.InputSelect, d.Uint32, &err)
	read(&h.AverageCount, d.Uint32, &err)
	return h, err
}

// A DemodVectorHeader carries the acquisition context of a
// demodulator sample vector.
type DemodVectorHeader struct {
	// Timestamp is the device clock tick of the first sample.
	Timestamp uint64
	// TimestampDiff is the clock ticks between adjacent samples.
	TimestampDiff uint32
	// Flags holds acquisition status bits.
	Flags uint32
	// CenterFrequency is the demodulation frequency in Hz.
	CenterFrequency float64
	// Scaling converts raw sample values to volts.
	Scaling float64
}

func (DemodVectorHeader) VectorKind() VectorKind { return DemodulatorVectorKind }
func (DemodVectorHeader) version() uint16        { return 1 }

func (h DemodVectorHeader) appendTo(e *fragments.Encoder) {
	e.Uint64(h.Timestamp)
	e.Uint32(h.TimestampDiff)
	e.Uint32(h.Flags)
	e.Float64(h.CenterFrequency)
	e.Float64(h.Scaling)
}

func parseDemodVectorHeader(d *fragments.Decoder) (h DemodVectorHeader, err error) {
	read(&h.Timestamp, d.Uint64, &err)
	read(&h.TimestampDiff, d.Uint32, &err)
	read(&h.Flags, d.Uint32, &err)
	read(&h.CenterFrequency, d.Float64, &err)
	read(&h.Scaling, d.Float64, &err)
	return h, err
}

// A ResultLoggerVectorHeader carries the acquisition context of a
// result logger vector.
type ResultLoggerVectorHeader struct {
	// Timestamp is the device clock tick the result batch completed.
	Timestamp uint64
	// TimestampDiff is the clock ticks between adjacent results.
	TimestampDiff uint32
	// Flags holds acquisition status bits.
	Flags uint32
	// JobID identifies the measurement job the results belong to.
	JobID uint32
	// RepetitionID is the repetition counter within the job.
	RepetitionID uint32
	// Scaling converts raw result values to volts.
	Scaling float64
	// CenterFrequency is the RF center frequency in Hz.
	CenterFrequency float64
}

func (ResultLoggerVectorHeader) VectorKind() VectorKind { return ResultLoggerVectorKind }
func (ResultLoggerVectorHeader) version() uint16        { return 1 }

func (h ResultLoggerVectorHeader) appendTo(e *fragments.Encoder) {
	e.Uint64(h.Timestamp)
	e.Uint32(h.TimestampDiff)
	e.Uint32(h.Flags)
	e.Uint32(h.JobID)
	e.Uint32(h.RepetitionID)
	e.Float64(h.Scaling)
	e.Float64(h.CenterFrequency)
}

func parseResultLoggerVectorHeader(d *fragments.Decoder) (h ResultLoggerVectorHeader, err error) {
	read(&h.Timestamp, d.Uint64, &err)
	read(&h.TimestampDiff, d.Uint32, &err)
	read(&h.Flags, d.Uint32, &err)
	read(&h.JobID, d.Uint32, &err)
	read(&h.RepetitionID, d.Uint32, &err)
	read(&h.Scaling, d.Float64, &err)
	read(&h.CenterFrequency, d.Float64, &err)
	return h, err
}

// read assigns the result of step to out unless a previous step
// already failed.
func read[T any](out *T, step func() (T, error), err *error) {
	if *err != nil {
		return
	}
	v, e := step()
	if e != nil {
		*err = e
		return
	}
	*out = v
}

// encodeExtraHeader serializes h and returns the header bytes plus
// the framing word describing them. The header is padded to a whole
// number of 32-bit words.
func encodeExtraHeader(h ExtraHeader) (bs []byte, info uint32) {
	e := fragments.Encoder{Order: fragments.LittleEndian}
	h.appendTo(&e)
	for e.Len()%4 != 0 {
		e.Uint8(0)
	}
	return e.Out, headerInfo(h.version(), e.Len())
}

// parseExtraHeader decodes the extra header of a device-specific
// vector. The full declared header length is consumed even when the
// known record is shorter, so that newer layout versions with
// trailing additions still parse.
func parseExtraHeader(wv *WireVector) (ExtraHeader, error) {
	hlen := wv.HeaderLen()
	if hlen > len(wv.Data) {
		return nil, fmt.Errorf("declared header length %d exceeds payload of %d bytes", hlen, len(wv.Data))
	}
	d := fragments.Decoder{Order: fragments.LittleEndian, In: wv.Data[:hlen]}
	switch wv.Kind {
	case ScopeVectorKind:
		h, err := parseScopeVectorHeader(&d)
		return h, err
	case DemodulatorVectorKind:
		h, err := parseDemodVectorHeader(&d)
		return h, err
	case ResultLoggerVectorKind:
		h, err := parseResultLoggerVectorHeader(&d)
		return h, err
	}
	return nil, fmt.Errorf("unrecognized vector framing kind %d", uint32(wv.Kind))
}
