package physics

import "github.com/TheBitDrifter/verlet/vmath"

// Shape is the world boundary. Constrain projects an escaping particle back
// inside and reflects its implicit velocity; Bounds sizes the broad phase grid.
type Shape interface {
	Constrain(pos *vmath.Vec2, p *Particle)
	Bounds() (min, max vmath.Vec2)
	Contains(point vmath.Vec2) bool
	Center() vmath.Vec2
}

var (
	_ Shape = RectShape{}
	_ Shape = CircleShape{}
)

// RectShape is an axis-aligned box.
type RectShape struct {
	Centre vmath.Vec2
	Size   vmath.Vec2
}

func NewRectShape(center, size vmath.Vec2) RectShape {
	return RectShape{Centre: center, Size: size}
}

func (r RectShape) extents() vmath.Vec2 {
	return r.Size.Scale(0.5)
}

func (r RectShape) Center() vmath.Vec2 {
	return r.Centre
}

func (r RectShape) Bounds() (min, max vmath.Vec2) {
	ext := r.extents()
	return r.Centre.Sub(ext), r.Centre.Add(ext)
}

func (r RectShape) Contains(point vmath.Vec2) bool {
	lo, hi := r.Bounds()
	return lo.X < point.X && hi.X > point.X && lo.Y < point.Y && hi.Y > point.Y
}

// Constrain clamps each axis separately. The normal velocity component is
// reversed and scaled by bounciness, the tangential one is kept.
func (r RectShape) Constrain(pos *vmath.Vec2, p *Particle) {
	ext := r.extents()

	xDiff := pos.X - r.Centre.X
	extX := ext.X - p.Radius
	if vmath.Abs(xDiff) > extX {
		vel := pos.Sub(p.PrevPos)
		pos.X = r.Centre.X + vmath.Sgn(xDiff)*extX
		p.PrevPos = pos.Add(vmath.New(vel.X*p.Bounciness, -vel.Y))
	}

	yDiff := pos.Y - r.Centre.Y
	extY := ext.Y - p.Radius
	if vmath.Abs(yDiff) > extY {
		vel := pos.Sub(p.PrevPos)
		pos.Y = r.Centre.Y + vmath.Sgn(yDiff)*extY
		p.PrevPos = pos.Add(vmath.New(-vel.X, vel.Y*p.Bounciness))
	}
}

// CircleShape is a disc.
type CircleShape struct {
	Centre vmath.Vec2
	Radius float32
}

func NewCircleShape(center vmath.Vec2, radius float32) CircleShape {
	return CircleShape{Centre: center, Radius: radius}
}

func (c CircleShape) Center() vmath.Vec2 {
	return c.Centre
}

func (c CircleShape) Bounds() (min, max vmath.Vec2) {
	r := vmath.New(c.Radius, c.Radius)
	return c.Centre.Sub(r), c.Centre.Add(r)
}

func (c CircleShape) Contains(point vmath.Vec2) bool {
	return point.Sub(c.Centre).SqrLength() < c.Radius*c.Radius
}

// Constrain clamps radially and reflects the radial velocity component.
func (c CircleShape) Constrain(pos *vmath.Vec2, p *Particle) {
	dir := pos.Sub(c.Centre)
	dst := dir.Length()
	if dst+p.Radius <= c.Radius || dst == 0 {
		return
	}
	n := dir.Div(dst)
	vel := pos.Sub(p.PrevPos)
	*pos = c.Centre.Add(n.Scale(c.Radius - p.Radius))

	vn := vel.Dot(n)
	tangential := vel.Sub(n.Scale(vn))
	reflected := tangential.Sub(n.Scale(vn * p.Bounciness))
	p.PrevPos = pos.Sub(reflected)
}
