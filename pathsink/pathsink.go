// seehuhn.de/go/mapview - a morphing globe and map renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package pathsink implements the renderer's Sink interface on top of
// seehuhn.de/go/geom path data. Circular arcs are converted to cubic
// Bézier segments, so recorded paths can be handed directly to a path
// rasteriser.
package pathsink

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/mapview"
)

// PaintOp distinguishes fill from stroke snapshots.
type PaintOp int

const (
	OpFill PaintOp = iota
	OpStroke
)

// Painted is one paint instruction: the path as it stood when Fill or
// Stroke was called, plus the style. A path filled and then stroked
// appears twice, sharing the same path data.
type Painted struct {
	Path  *path.Data
	Op    PaintOp
	Style *mapview.Style
}

// Recorder implements mapview.Sink by recording path construction into
// path.Data and collecting paint instructions. The zero value is not
// usable; call New.
//
// A Recorder is not safe for concurrent use.
type Recorder struct {
	// Painted accumulates the paint instructions in emission order.
	Painted []Painted

	cur    *path.Data
	pos    vec.Vec2 // current point
	start  vec.Vec2 // current subpath start
	hasPos bool
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{cur: &path.Data{}}
}

// Reset discards all recorded paths and paint instructions.
func (r *Recorder) Reset() {
	r.Painted = r.Painted[:0]
	r.cur = &path.Data{}
	r.hasPos = false
}

// BeginPath starts a new path, discarding the unpainted current one.
func (r *Recorder) BeginPath() {
	r.cur = &path.Data{}
	r.hasPos = false
}

// MoveTo starts a new subpath.
func (r *Recorder) MoveTo(x, y float64) {
	p := vec.Vec2{X: x, Y: y}
	r.cur.MoveTo(p)
	r.pos = p
	r.start = p
	r.hasPos = true
}

// LineTo appends a straight segment. Without a current point it starts a
// subpath instead.
func (r *Recorder) LineTo(x, y float64) {
	if !r.hasPos {
		r.MoveTo(x, y)
		return
	}
	p := vec.Vec2{X: x, Y: y}
	r.cur.LineTo(p)
	r.pos = p
}

// ClosePath closes the current subpath.
func (r *Recorder) ClosePath() {
	if !r.hasPos {
		return
	}
	r.cur.Close()
	r.pos = r.start
}

// Fill records a fill of the current path.
func (r *Recorder) Fill(style *mapview.Style) {
	r.Painted = append(r.Painted, Painted{Path: r.cur, Op: OpFill, Style: style})
}

// Stroke records a stroke of the current path.
func (r *Recorder) Stroke(style *mapview.Style) {
	r.Painted = append(r.Painted, Painted{Path: r.cur, Op: OpStroke, Style: style})
}

// Arc appends a circular arc around (cx, cy) from startAngle to endAngle,
// approximated by cubic Bézier segments of at most a quarter turn each.
// With a current point a straight segment leads to the arc start.
func (r *Recorder) Arc(cx, cy, radius, startAngle, endAngle float64, clockwise bool) {
	sweep := endAngle - startAngle
	if clockwise {
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
		if sweep < -2*math.Pi {
			sweep = -2 * math.Pi
		}
	} else {
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
		if sweep > 2*math.Pi {
			sweep = 2 * math.Pi
		}
	}

	center := vec.Vec2{X: cx, Y: cy}
	start := arcPoint(center, radius, startAngle)
	if r.hasPos {
		r.LineTo(start.X, start.Y)
	} else {
		r.MoveTo(start.X, start.Y)
	}

	r.arcSegments(center, radius, startAngle, sweep)
}

// ArcTo appends a straight segment to the first tangent point of the
// circle with the given radius inscribed in the corner formed by the
// current point, (x1, y1), and (x2, y2), followed by the arc to the
// second tangent point. Degenerate corners (collinear points or zero
// radius) collapse to a straight segment to (x1, y1).
func (r *Recorder) ArcTo(x1, y1, x2, y2, radius float64) {
	p1 := vec.Vec2{X: x1, Y: y1}
	p2 := vec.Vec2{X: x2, Y: y2}
	if !r.hasPos {
		r.MoveTo(x1, y1)
		return
	}
	p0 := r.pos

	v1 := p0.Sub(p1)
	v2 := p2.Sub(p1)
	l1 := v1.Length()
	l2 := v2.Length()
	cross := v1.X*v2.Y - v1.Y*v2.X
	if radius <= 0 || l1 < degenerateLength || l2 < degenerateLength ||
		math.Abs(cross) < degenerateLength {
		r.LineTo(x1, y1)
		return
	}

	u1 := v1.Mul(1 / l1)
	u2 := v2.Mul(1 / l2)

	// half the corner angle; tangent points sit d = radius/tan(half)
	// from the corner along each ray
	cosA := u1.X*u2.X + u1.Y*u2.Y
	if cosA > 1 {
		cosA = 1
	} else if cosA < -1 {
		cosA = -1
	}
	half := math.Acos(cosA) / 2
	d := radius / math.Tan(half)

	t1 := p1.Add(u1.Mul(d))
	t2 := p1.Add(u2.Mul(d))

	// circle center along the angle bisector
	bis := u1.Add(u2)
	bis = bis.Mul(1 / bis.Length())
	center := p1.Add(bis.Mul(radius / math.Sin(half)))

	a1 := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	a2 := math.Atan2(t2.Y-center.Y, t2.X-center.X)
	sweep := math.Mod(a2-a1, 2*math.Pi)
	if sweep > math.Pi {
		sweep -= 2 * math.Pi
	} else if sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	r.LineTo(t1.X, t1.Y)
	r.arcSegments(center, radius, a1, sweep)
}

// arcSegments emits cubic Bézier segments approximating the arc starting
// at angle a0 (where the current point must lie) sweeping by the given
// signed angle. Each segment covers at most a quarter turn, using the
// standard k = 4/3·tan(δ/4) control-point construction.
func (r *Recorder) arcSegments(center vec.Vec2, radius, a0, sweep float64) {
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	delta := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(delta/4)

	theta := a0
	for range n {
		next := theta + delta

		sin0, cos0 := math.Sincos(theta)
		sin1, cos1 := math.Sincos(next)

		c1 := vec.Vec2{
			X: center.X + radius*(cos0-k*sin0),
			Y: center.Y + radius*(sin0+k*cos0),
		}
		c2 := vec.Vec2{
			X: center.X + radius*(cos1+k*sin1),
			Y: center.Y + radius*(sin1-k*cos1),
		}
		end := arcPoint(center, radius, next)

		r.cur.CubeTo(c1, c2, end)
		r.pos = end
		theta = next
	}
}

func arcPoint(center vec.Vec2, radius, angle float64) vec.Vec2 {
	sin, cos := math.Sincos(angle)
	return vec.Vec2{X: center.X + radius*cos, Y: center.Y + radius*sin}
}

// degenerateLength is the threshold below which ArcTo corner vectors are
// treated as zero.
const degenerateLength = 1e-12

// Rasterize renders the path into an alpha mask of the given size using
// the x/image/vector rasteriser, filling with the nonzero winding rule.
func Rasterize(p *path.Data, width, height int) *image.Alpha {
	ras := vector.NewRasterizer(width, height)

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			c := p.Coords[coordIdx]
			ras.MoveTo(float32(c.X), float32(c.Y))
			coordIdx++
		case path.CmdLineTo:
			c := p.Coords[coordIdx]
			ras.LineTo(float32(c.X), float32(c.Y))
			coordIdx++
		case path.CmdQuadTo:
			c1, c2 := p.Coords[coordIdx], p.Coords[coordIdx+1]
			ras.QuadTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y))
			coordIdx += 2
		case path.CmdCubeTo:
			c1, c2, c3 := p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2]
			ras.CubeTo(float32(c1.X), float32(c1.Y), float32(c2.X), float32(c2.Y),
				float32(c3.X), float32(c3.Y))
			coordIdx += 3
		case path.CmdClose:
			ras.ClosePath()
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	ras.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})
	return dst
}
