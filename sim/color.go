package sim

import "github.com/TheBitDrifter/verlet/vmath"

// Color is a linear RGBA colour with channels in [0, 1].
type Color struct {
	R float32 `yaml:"r" json:"r"`
	G float32 `yaml:"g" json:"g"`
	B float32 `yaml:"b" json:"b"`
	A float32 `yaml:"a" json:"a"`
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// HSV is hue, saturation and value, each in [0, 1].
type HSV struct {
	H, S, V float32
}

// FromHSV converts an opaque HSV colour to RGB. Hue wraps.
func FromHSV(h, s, v float32) Color {
	h = vmath.Repeat(h, 1) * 6
	i := int(h)
	f := h - float32(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch i % 6 {
	case 0:
		return Color{v, t, p, 1}
	case 1:
		return Color{q, v, p, 1}
	case 2:
		return Color{p, v, t, 1}
	case 3:
		return Color{p, q, v, 1}
	case 4:
		return Color{t, p, v, 1}
	default:
		return Color{v, p, q, 1}
	}
}

func (c Color) ToHSV() HSV {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	d := hi - lo

	out := HSV{V: hi}
	if hi > 0 {
		out.S = d / hi
	}
	if d == 0 {
		return out
	}

	switch hi {
	case c.R:
		out.H = (c.G - c.B) / d
		if out.H < 0 {
			out.H += 6
		}
	case c.G:
		out.H = (c.B-c.R)/d + 2
	default:
		out.H = (c.R-c.G)/d + 4
	}
	out.H /= 6
	return out
}

// RenderColor is the per-particle colour component read by Snapshot.
type RenderColor struct {
	Value Color
}
