package raster

import (
	"fmt"
	"math"
)

// Kind identifies the element type of a Buffer's samples.
type Kind int

const (
	Uint8 Kind = iota
	Uint16
	Float32
	Float64
)

func (k Kind) String() string {
	switch k {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Max returns the top of the valid sample range for the kind.
// Integer kinds span [0, Max]; float kinds span [0, 1].
func (k Kind) Max() float64 {
	switch k {
	case Uint8:
		return 255
	case Uint16:
		return 65535
	default:
		return 1
	}
}

// Levels returns the number of quantization levels histogram-based
// operations use for the kind.
func (k Kind) Levels() int {
	switch k {
	case Uint16:
		return 65536
	default:
		return 256
	}
}

// Buffer is a dense channel-last intensity array with a declared element
// type. Operations never mutate a Buffer in place; they read samples out,
// compute in float64, and build a fresh Buffer of the same shape and kind.
type Buffer struct {
	kind     Kind
	height   int
	width    int
	channels int

	u8  []uint8
	u16 []uint16
	f32 []float32
	f64 []float64
}

// New allocates a zeroed Buffer. Channels is 1 for grayscale data.
func New(kind Kind, height, width, channels int) (*Buffer, error) {
	if height < 1 || width < 1 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}

	b := &Buffer{kind: kind, height: height, width: width, channels: channels}
	n := height * width * channels
	switch kind {
	case Uint8:
		b.u8 = make([]uint8, n)
	case Uint16:
		b.u16 = make([]uint16, n)
	case Float32:
		b.f32 = make([]float32, n)
	case Float64:
		b.f64 = make([]float64, n)
	default:
		return nil, fmt.Errorf("unsupported sample kind %v", kind)
	}
	return b, nil
}

func (b *Buffer) Kind() Kind    { return b.kind }
func (b *Buffer) Height() int   { return b.height }
func (b *Buffer) Width() int    { return b.width }
func (b *Buffer) Channels() int { return b.channels }

// Len returns the total sample count (height * width * channels).
func (b *Buffer) Len() int { return b.height * b.width * b.channels }

// SameShape reports whether other has identical shape and element kind.
func (b *Buffer) SameShape(other *Buffer) bool {
	return other != nil &&
		b.kind == other.kind &&
		b.height == other.height &&
		b.width == other.width &&
		b.channels == other.channels
}

// Clone returns an independent deep copy.
func (b *Buffer) Clone() *Buffer {
	dup := &Buffer{kind: b.kind, height: b.height, width: b.width, channels: b.channels}
	switch b.kind {
	case Uint8:
		dup.u8 = append([]uint8(nil), b.u8...)
	case Uint16:
		dup.u16 = append([]uint16(nil), b.u16...)
	case Float32:
		dup.f32 = append([]float32(nil), b.f32...)
	case Float64:
		dup.f64 = append([]float64(nil), b.f64...)
	}
	return dup
}

// At returns the sample at (y, x, ch) upcast to float64.
func (b *Buffer) At(y, x, ch int) float64 {
	return b.sample((y*b.width+x)*b.channels + ch)
}

func (b *Buffer) sample(i int) float64 {
	switch b.kind {
	case Uint8:
		return float64(b.u8[i])
	case Uint16:
		return float64(b.u16[i])
	case Float32:
		return float64(b.f32[i])
	default:
		return b.f64[i]
	}
}

func (b *Buffer) setSample(i int, v float64) {
	switch b.kind {
	case Uint8:
		b.u8[i] = uint8(v)
	case Uint16:
		b.u16[i] = uint16(v)
	case Float32:
		b.f32[i] = float32(v)
	default:
		b.f64[i] = v
	}
}

// Samples returns a float64 copy of all samples in channel-last order.
func (b *Buffer) Samples() []float64 {
	out := make([]float64, b.Len())
	for i := range out {
		out[i] = b.sample(i)
	}
	return out
}

// Plane extracts channel ch as a float64 plane of height*width samples.
func (b *Buffer) Plane(ch int) []float64 {
	n := b.height * b.width
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = b.sample(i*b.channels + ch)
	}
	return out
}

// WithSamples builds a new Buffer of the same shape and kind from float64
// working samples. Values are clamped to the kind's valid range; integer
// kinds are rounded to nearest. This is the single cast-back point every
// stage exits through.
func (b *Buffer) WithSamples(samples []float64) (*Buffer, error) {
	if len(samples) != b.Len() {
		return nil, fmt.Errorf("sample count mismatch: got %d, want %d", len(samples), b.Len())
	}

	out, err := New(b.kind, b.height, b.width, b.channels)
	if err != nil {
		return nil, err
	}
	hi := b.kind.Max()
	round := b.kind == Uint8 || b.kind == Uint16
	for i, v := range samples {
		if v < 0 {
			v = 0
		} else if v > hi {
			v = hi
		}
		if round {
			v = math.Round(v)
		}
		out.setSample(i, v)
	}
	return out, nil
}

// WithPlanes builds a new Buffer from per-channel planes, clamping and
// casting back as WithSamples does. len(planes) must equal Channels().
func (b *Buffer) WithPlanes(planes [][]float64) (*Buffer, error) {
	if len(planes) != b.channels {
		return nil, fmt.Errorf("plane count mismatch: got %d, want %d", len(planes), b.channels)
	}
	n := b.height * b.width
	samples := make([]float64, b.Len())
	for ch, plane := range planes {
		if len(plane) != n {
			return nil, fmt.Errorf("plane %d length mismatch: got %d, want %d", ch, len(plane), n)
		}
		for i, v := range plane {
			samples[i*b.channels+ch] = v
		}
	}
	return b.WithSamples(samples)
}
