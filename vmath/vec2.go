// Package vmath holds the small float32 vector math shared by the solver,
// the partitioning grid and the authoring layer.
package vmath

import "math"

// Vec2 is a 2D vector. It is plain data and safe to store in component columns.
type Vec2 struct {
	X float32 `yaml:"x" json:"x" toml:"x"`
	Y float32 `yaml:"y" json:"y" toml:"y"`
}

var (
	Zero = Vec2{}
	One  = Vec2{1, 1}
)

const degToRad = math.Pi / 180

func New(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Div(s float32) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) SqrLength() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Length() float32 {
	return Sqrt(v.SqrLength())
}

// Normalized returns the unit vector of v, or Zero when v has no length.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return v.Div(l)
}

// Rotate rotates v counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float32) Vec2 {
	s, c := math.Sincos(float64(deg) * degToRad)
	sin, cos := float32(s), float32(c)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vec2) PerpCW() Vec2 {
	return Vec2{v.Y, -v.X}
}

func (v Vec2) PerpCCW() Vec2 {
	return Vec2{-v.Y, v.X}
}

func Distance(a, b Vec2) float32 {
	return a.Sub(b).Length()
}

func Lerp(a, b Vec2, t float32) Vec2 {
	t = Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Scale(t))
}

func Min(a, b Vec2) Vec2 {
	return Vec2{min(a.X, b.X), min(a.Y, b.Y)}
}

func Max(a, b Vec2) Vec2 {
	return Vec2{max(a.X, b.X), max(a.Y, b.Y)}
}

// FromAngle returns the unit vector pointing deg degrees counter-clockwise from +X.
func FromAngle(deg float32) Vec2 {
	s, c := math.Sincos(float64(deg) * degToRad)
	return Vec2{float32(c), float32(s)}
}
