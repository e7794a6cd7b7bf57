package nodewire

import (
	"fmt"

	"github.com/creachadair/mds/value"
)

// Encode converts a typed node value into its wire representation,
// the inverse of [Decode].
//
// Values outside the supported union fail with
// [UnsupportedValueTypeError]. A [DemodSample] requires an extra
// header, since the demodulator framing is the only framing that
// carries its shape.
func Encode(v Value, hdr value.Maybe[ExtraHeader]) (*WireValue, error) {
	switch v := v.(type) {
	case Int64:
		return &WireValue{Kind: WireInt64, Int64: int64(v)}, nil
	case Float64:
		return &WireValue{Kind: WireDouble, Double: float64(v)}, nil
	case Complex:
		return &WireValue{Kind: WireComplex, Complex: v}, nil
	case Text:
		return &WireValue{Kind: WireString, String: string(v)}, nil
	case Empty:
		return &WireValue{Kind: WireNone}, nil
	case CounterSample:
		return &WireValue{Kind: WireCounterSample, Counter: &v}, nil
	case TriggerSample:
		return &WireValue{Kind: WireTriggerSample, Trigger: &v}, nil
	case Bytes:
		return &WireValue{Kind: WireVectorData, Vector: &WireVector{
			Kind:        ByteArrayVector,
			ElementType: Uint8Element,
			Data:        v,
		}}, nil
	case Vector:
		return &WireValue{Kind: WireVectorData, Vector: encodeVector(v, hdr)}, nil
	case DemodSample:
		h, ok := hdr.GetOK()
		if !ok {
			return nil, UnsupportedValueTypeError{
				Type:   fmt.Sprintf("%T", v),
				Reason: "demodulator samples require an extra header",
			}
		}
		if h.VectorKind() != DemodulatorVectorKind {
			return nil, UnsupportedValueTypeError{
				Type:   fmt.Sprintf("%T", v),
				Reason: fmt.Sprintf("extra header is for framing kind %d, need demodulator framing", uint32(h.VectorKind())),
			}
		}
		hb, info := encodeExtraHeader(h)
		data := append(hb, interleave(v.I.Data, v.Q.Data, v.I.Type.Size())...)
		return &WireValue{Kind: WireVectorData, Vector: &WireVector{
			Kind:            DemodulatorVectorKind,
			ExtraHeaderInfo: info,
			ElementType:     v.I.Type,
			Data:            data,
		}}, nil
	case nil:
		return nil, UnsupportedValueTypeError{Type: "nil"}
	}
	return nil, UnsupportedValueTypeError{Type: fmt.Sprintf("%T", v)}
}

func encodeVector(v Vector, hdr value.Maybe[ExtraHeader]) *WireVector {
	h, ok := hdr.GetOK()
	if !ok {
		return &WireVector{
			Kind:        VectorDataVector,
			ElementType: v.Type,
			Data:        v.Data,
		}
	}
	hb, info := encodeExtraHeader(h)
	return &WireVector{
		Kind:            h.VectorKind(),
		ExtraHeaderInfo: info,
		ElementType:     v.Type,
		Data:            append(hb, v.Data...),
	}
}

// EncodeAnnotated packs an annotated value for a set request. Only
// the value, extra header and path are relevant; the timestamp is
// assigned by the instrument and left absent.
func EncodeAnnotated(av AnnotatedValue) (*WireMessage, error) {
	wv, err := Encode(av.Value, av.ExtraHeader)
	if err != nil {
		return nil, err
	}
	return &WireMessage{
		Value: wv,
		Path:  av.Path,
	}, nil
}
