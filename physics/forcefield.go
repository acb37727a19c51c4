package physics

import (
	"strings"

	"github.com/TheBitDrifter/verlet/vmath"
)

type ForceFieldShape int

const (
	FieldCircle ForceFieldShape = iota
	FieldRect
)

type Falloff int

const (
	FalloffLinear Falloff = iota
	FalloffQuadratic
	FalloffCubic
	FalloffInverse
	FalloffSmoothstep
	FalloffNone
)

type Direction int

const (
	FromCenter Direction = iota
	DirectionUp
	DirectionLeft
	DirectionDown
	DirectionRight
	DirectionCustom
)

var (
	fieldShapeNames = []string{"circle", "rect"}
	falloffNames    = []string{"linear", "quadratic", "cubic", "inverse", "smoothstep", "none"}
	directionNames  = []string{"from_center", "up", "left", "down", "right", "custom"}
)

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "unknown"
	}
	return names[v]
}

func parseEnum(kind string, names []string, text []byte) (int, error) {
	key := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range names {
		if name == key {
			return i, nil
		}
	}
	return 0, UnknownNameError{Kind: kind, Name: string(text)}
}

func (s ForceFieldShape) String() string { return enumName(fieldShapeNames, int(s)) }
func (f Falloff) String() string { return enumName(falloffNames, int(f)) }
func (d Direction) String() string { return enumName(directionNames, int(d)) }

func (s ForceFieldShape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (f Falloff) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (s *ForceFieldShape) UnmarshalText(text []byte) error {
	v, err := parseEnum("force field shape", fieldShapeNames, text)
	*s = ForceFieldShape(v)
	return err
}

func (f *Falloff) UnmarshalText(text []byte) error {
	v, err := parseEnum("falloff", falloffNames, text)
	*f = Falloff(v)
	return err
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := parseEnum("direction", directionNames, text)
	*d = Direction(v)
	return err
}

// Apply maps closeness t in [0, 1] onto the falloff curve.
func (f Falloff) Apply(t float32) float32 {
	switch f {
	case FalloffQuadratic:
		return t * t
	case FalloffCubic:
		return t * t * t
	case FalloffInverse:
		return 1 - (1-t)*(1-t)
	case FalloffSmoothstep:
		return t * t * (3 - 2*t)
	case FalloffNone:
		return 1
	}
	return t
}

// ForceFieldSettings describes a field. Force is an acceleration at full
// strength; negative values pull.
type ForceFieldSettings struct {
	Force           float32         `yaml:"force" json:"force"`
	MassDependent   bool            `yaml:"mass_dependent" json:"mass_dependent"`
	Falloff         Falloff         `yaml:"falloff" json:"falloff"`
	Shape           ForceFieldShape `yaml:"shape" json:"shape"`
	Range           float32         `yaml:"range" json:"range"`
	RectSize        vmath.Vec2      `yaml:"rect_size" json:"rect_size"`
	RectRotation    float32         `yaml:"rect_rotation" json:"rect_rotation"`
	Direction       Direction       `yaml:"direction" json:"direction"`
	CustomDirection float32         `yaml:"custom_direction" json:"custom_direction"`
}

func DefaultForceFieldSettings() ForceFieldSettings {
	return ForceFieldSettings{
		Force:     100,
		Falloff:   FalloffLinear,
		Shape:     FieldCircle,
		Range:     100,
		RectSize:  vmath.New(200, 200),
		Direction: FromCenter,
	}
}

// DirVector is the field's fixed direction, or Zero for FromCenter.
func (s ForceFieldSettings) DirVector() vmath.Vec2 {
	switch s.Direction {
	case DirectionUp:
		return vmath.New(0, 1)
	case DirectionLeft:
		return vmath.New(-1, 0)
	case DirectionDown:
		return vmath.New(0, -1)
	case DirectionRight:
		return vmath.New(1, 0)
	case DirectionCustom:
		return vmath.FromAngle(s.CustomDirection)
	}
	return vmath.Zero
}

// minFieldDistance is the distance below which FromCenter has no direction.
const minFieldDistance = 1e-5

// closeness is 1 at the field's centre and 0 at its edge; ok is false
// outside the field.
func (f ForceField) closeness(pos vmath.Vec2) (t float32, ok bool) {
	local := pos.Sub(f.Position)
	switch f.Settings.Shape {
	case FieldRect:
		local = local.Rotate(-f.Settings.RectRotation)
		half := f.Settings.RectSize.Scale(0.5)
		if half.X <= 0 || half.Y <= 0 {
			return 0, false
		}
		ax, ay := vmath.Abs(local.X)/half.X, vmath.Abs(local.Y)/half.Y
		if ax > 1 || ay > 1 {
			return 0, false
		}
		return 1 - max(ax, ay), true
	default:
		if f.Settings.Range <= 0 {
			return 0, false
		}
		d := local.Length()
		if d > f.Settings.Range {
			return 0, false
		}
		return 1 - d/f.Settings.Range, true
	}
}

// Contains reports whether pos lies inside the field.
func (f ForceField) Contains(pos vmath.Vec2) bool {
	_, ok := f.closeness(pos)
	return ok
}

// Direction returns the unit direction the field pushes a particle at pos.
func (f ForceField) Direction(pos vmath.Vec2) vmath.Vec2 {
	if f.Settings.Direction == FromCenter {
		local := pos.Sub(f.Position)
		if local.Length() < minFieldDistance {
			return vmath.Zero
		}
		return local.Normalized()
	}
	dir := f.Settings.DirVector()
	if f.Settings.Shape == FieldRect {
		dir = dir.Rotate(f.Settings.RectRotation)
	}
	return dir
}

// AccelerationAt is the acceleration the field adds to p at pos.
func (f ForceField) AccelerationAt(pos vmath.Vec2, p *Particle) vmath.Vec2 {
	t, ok := f.closeness(pos)
	if !ok {
		return vmath.Zero
	}
	dir := f.Direction(pos)
	if dir == vmath.Zero {
		return vmath.Zero
	}
	strength := f.Settings.Force * f.Settings.Falloff.Apply(t)
	if f.Settings.MassDependent {
		strength *= p.InvMass()
	}
	return dir.Scale(strength)
}
