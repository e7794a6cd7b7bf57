package fragments

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncoder(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Encoder)
		want  []byte
	}{
		{
			name:  "empty",
			build: func(e *Encoder) {},
			want:  nil,
		},
		{
			name: "uint8",
			build: func(e *Encoder) {
				e.Uint8(0xab)
			},
			want: []byte{0xab},
		},
		{
			name: "uint16",
			build: func(e *Encoder) {
				e.Uint16(0x1234)
			},
			want: []byte{0x34, 0x12},
		},
		{
			name: "uint32",
			build: func(e *Encoder) {
				e.Uint32(0x12345678)
			},
			want: []byte{0x78, 0x56, 0x34, 0x12},
		},
		{
			name: "uint64",
			build: func(e *Encoder) {
				e.Uint64(0x0123456789abcdef)
			},
			want: []byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01},
		},
		{
			name: "float32",
			build: func(e *Encoder) {
				e.Float32(1.5)
			},
			want: []byte{0x00, 0x00, 0xc0, 0x3f},
		},
		{
			name: "float64",
			build: func(e *Encoder) {
				e.Float64(-2.5)
			},
			want: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0xc0},
		},
		{
			name: "write",
			build: func(e *Encoder) {
				e.Write([]byte{1, 2, 3})
			},
			want: []byte{1, 2, 3},
		},
		{
			name: "no padding between fields",
			build: func(e *Encoder) {
				e.Uint8(1)
				e.Uint32(2)
				e.Uint16(3)
			},
			want: []byte{1, 2, 0, 0, 0, 3, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var e Encoder
			tc.build(&e)
			if diff := cmp.Diff(e.Out, tc.want); diff != "" {
				t.Errorf("wrong encoding (-got+want):\n%s", diff)
			}
			if got, want := e.Len(), len(tc.want); got != want {
				t.Errorf("wrong Len: got %d, want %d", got, want)
			}
		})
	}
}

func TestEncoderBigEndian(t *testing.T) {
	e := Encoder{Order: BigEndian}
	e.Uint16(0x1234)
	e.Uint32(0x56789abc)
	want := []byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc}
	if diff := cmp.Diff(e.Out, want); diff != "" {
		t.Errorf("wrong encoding (-got+want):\n%s", diff)
	}
}

func TestDecoder(t *testing.T) {
	d := Decoder{In: []byte{
		0xab,
		0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01,
		0x00, 0x00, 0xc0, 0x3f,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0xc0,
		1, 2, 3,
	}}

	if got, err := d.Uint8(); err != nil || got != 0xab {
		t.Errorf("Uint8: got %v, %v, want 0xab", got, err)
	}
	if got, err := d.Uint16(); err != nil || got != 0x1234 {
		t.Errorf("Uint16: got %v, %v, want 0x1234", got, err)
	}
	if got, err := d.Uint32(); err != nil || got != 0x12345678 {
		t.Errorf("Uint32: got %v, %v, want 0x12345678", got, err)
	}
	if got, err := d.Uint64(); err != nil || got != 0x0123456789abcdef {
		t.Errorf("Uint64: got %v, %v, want 0x0123456789abcdef", got, err)
	}
	if got, err := d.Float32(); err != nil || got != 1.5 {
		t.Errorf("Float32: got %v, %v, want 1.5", got, err)
	}
	if got, err := d.Float64(); err != nil || got != -2.5 {
		t.Errorf("Float64: got %v, %v, want -2.5", got, err)
	}
	if got, want := d.Remaining(), 3; got != want {
		t.Errorf("Remaining: got %d, want %d", got, want)
	}
	if got := d.Rest(); !cmp.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("Rest: got %v, want [1 2 3]", got)
	}
	if got, want := d.Remaining(), 0; got != want {
		t.Errorf("Remaining after Rest: got %d, want %d", got, want)
	}
}

func TestDecoderShortInput(t *testing.T) {
	d := Decoder{In: []byte{1, 2}}
	if _, err := d.Uint32(); err == nil {
		t.Error("Uint32 on 2-byte input: got nil error, want short fragment error")
	}
	// A failed read must not consume input.
	if got, want := d.Remaining(), 2; got != want {
		t.Errorf("Remaining after failed read: got %d, want %d", got, want)
	}
	if got, err := d.Uint16(); err != nil || got != 0x0201 {
		t.Errorf("Uint16: got %v, %v, want 0x0201", got, err)
	}
}

func TestDecoderSkip(t *testing.T) {
	d := Decoder{In: []byte{1, 2, 3, 4}}
	d.Skip(2)
	if got, want := d.Remaining(), 2; got != want {
		t.Errorf("Remaining after Skip(2): got %d, want %d", got, want)
	}
	// Skipping past the end clamps without error.
	d.Skip(100)
	if got, want := d.Remaining(), 0; got != want {
		t.Errorf("Remaining after over-long Skip: got %d, want %d", got, want)
	}
	d.Skip(-1)
	if got, want := d.Remaining(), 0; got != want {
		t.Errorf("Remaining after negative Skip: got %d, want %d", got, want)
	}
}

func TestDecoderBigEndian(t *testing.T) {
	d := Decoder{Order: BigEndian, In: []byte{0x12, 0x34}}
	if got, err := d.Uint16(); err != nil || got != 0x1234 {
		t.Errorf("Uint16: got %v, %v, want 0x1234", got, err)
	}
}
