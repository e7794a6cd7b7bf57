package nodewire

import (
	"log/slog"

	"github.com/creachadair/mds/value"
	"github.com/halverson/nodewire/fragments"
)

// Decode converts a deframed wire value into a typed node value,
// along with the extra header if the vector framing carried one.
//
// Decoding a vector with an unrecognized device-specific framing kind
// does not fail: the condition is logged, the declared header length
// is skipped, and the remaining bytes decode as a plain numeric
// vector with no extra header. The only fatal decode error is an
// unknown top-level tag, reported as [UnknownWireTypeError].
func Decode(wv *WireValue) (Value, value.Maybe[ExtraHeader], error) {
	none := value.Absent[ExtraHeader]()
	switch wv.Kind {
	case WireInt64:
		return Int64(wv.Int64), none, nil
	case WireDouble:
		return Float64(wv.Double), none, nil
	case WireComplex:
		return wv.Complex, none, nil
	case WireString:
		return Text(wv.String), none, nil
	case WireNone:
		return Empty{}, none, nil
	case WireCounterSample:
		return *wv.Counter, none, nil
	case WireTriggerSample:
		return *wv.Trigger, none, nil
	case WireVectorData:
		return decodeVector(wv.Vector)
	}
	return nil, none, UnknownWireTypeError{Kind: wv.Kind}
}

// DecodeAnnotated converts a full wire message, carrying the path and
// timestamp metadata over to the annotated value.
func DecodeAnnotated(msg *WireMessage) (AnnotatedValue, error) {
	v, hdr, err := Decode(msg.Value)
	if err != nil {
		return AnnotatedValue{}, err
	}
	return AnnotatedValue{
		Value:       v,
		Path:        msg.Path,
		Timestamp:   msg.Timestamp,
		ExtraHeader: hdr,
	}, nil
}

func decodeVector(wv *WireVector) (Value, value.Maybe[ExtraHeader], error) {
	none := value.Absent[ExtraHeader]()

	if wv.Kind.IsGeneric() {
		if wv.ElementType == StringElement {
			// Strings are sent as byte arrays of UTF-8 text.
			return Text(wv.Data), none, nil
		}
		if wv.Kind == ByteArrayVector {
			return Bytes(wv.Data), none, nil
		}
		return Vector{Type: wv.ElementType, Data: wv.Data}, none, nil
	}

	hdr, err := parseExtraHeader(wv)
	if err != nil {
		// Unable to untangle the device-specific framing. Still
		// return the data, without the extra header info.
		slog.Warn("unrecognized vector framing, decoding without extra header",
			"kind", uint32(wv.Kind), "err", err)
		d := fragments.Decoder{In: wv.Data}
		d.Skip(wv.HeaderLen())
		return Vector{Type: wv.ElementType, Data: d.Rest()}, none, nil
	}

	payload := wv.Data[wv.HeaderLen():]
	if wv.Kind == DemodulatorVectorKind {
		i, q := deinterleave(payload, wv.ElementType.Size())
		sample := DemodSample{
			I: Vector{Type: wv.ElementType, Data: i},
			Q: Vector{Type: wv.ElementType, Data: q},
		}
		return sample, value.Just(hdr), nil
	}
	return Vector{Type: wv.ElementType, Data: payload}, value.Just(hdr), nil
}

// deinterleave splits alternating fixed-width elements into two
// parallel byte strings. Operating on raw bytes keeps the split
// bit-exact for any element type.
func deinterleave(data []byte, size int) (a, b []byte) {
	a = make([]byte, 0, len(data)/2)
	b = make([]byte, 0, len(data)/2)
	for off := 0; off+size <= len(data); off += size {
		if (off/size)%2 == 0 {
			a = append(a, data[off:off+size]...)
		} else {
			b = append(b, data[off:off+size]...)
		}
	}
	return a, b
}

func interleave(a, b []byte, size int) []byte {
	ret := make([]byte, 0, len(a)+len(b))
	for off := 0; off < len(a) || off < len(b); off += size {
		if off+size <= len(a) {
			ret = append(ret, a[off:off+size]...)
		}
		if off+size <= len(b) {
			ret = append(ret, b[off:off+size]...)
		}
	}
	return ret
}
