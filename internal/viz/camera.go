package viz

import (
	"math"

	"github.com/san-kum/papergraph/internal/layout"
)

const (
	defaultDistance = 3.0
	minZoom         = 0.1
	maxZoom         = 10.0
)

// Camera orbits the origin. Points are scaled by 1/Radius, rotated, and
// projected with the eye Distance radii away on the +Z axis.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Radius           float64
	Distance         float64
	Near             float64
}

func NewCamera() *Camera {
	return &Camera{RotX: 0.35, RotY: 0.6, Zoom: 1, Radius: layout.DefaultInitRange, Distance: defaultDistance, Near: 0.1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

// Fit sets Radius to the largest distance of a finite point from the
// origin, so the whole layout fills the view at zoom 1.
func (c *Camera) Fit(points []layout.Vec3) {
	r := 0.0
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		r = math.Max(r, p.Length())
	}
	if r < 1 {
		r = 1
	}
	c.Radius = r
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p layout.Vec3) layout.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world position to screen coordinates on an sw x sh
// surface. It returns x, y, depth (larger is closer to the eye) and whether
// the point lands on screen in front of the eye.
func (c *Camera) Project(p layout.Vec3, sw, sh int) (int, int, float64, bool) {
	x, y, depth, front := c.project(p, sw, sh)
	return x, y, depth, front && x >= 0 && x < sw && y >= 0 && y < sh
}

// project is Project without the screen bounds check.
func (c *Camera) project(p layout.Vec3, sw, sh int) (int, int, float64, bool) {
	radius := c.Radius
	if radius <= 0 {
		radius = 1
	}
	rot := c.RotatePoint(p).Scale(1 / radius)
	dist := c.Distance
	if dist <= 0 {
		dist = defaultDistance
	}
	if !rot.IsFinite() || rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z) * c.Zoom
	pScale := math.Min(float64(sw), float64(sh)) / 3
	sx := int(math.Round(rot.X*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y*scale*pScale)) + sh/2
	return sx, sy, rot.Z, true
}
