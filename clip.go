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

package mapview

import (
	"math"

	"github.com/paulmach/orb"

	"seehuhn.de/go/geom/vec"
)

// Clipper specialises the traversal to draw collections through a
// Projection into a Sink. It tracks visible-span gaps per ring and line:
// gaps in closed rings are bridged with arcs along the clip circle, gaps
// in open lines become true path breaks. When the active mixer preset
// stitches the cylindrical seam, each geometry is re-traversed with the
// translation shifted one map width right and left, so features crossing
// the antimeridian render contiguously.
//
// A Clipper is bound to one Projection and must not be shared between
// concurrent renders.
type Clipper struct {
	NopVisitor

	Proj *Projection
	Sink Sink

	// Filter disqualifies geometries before any path output.
	Filter Filter

	// StyleFor selects the paint style per geometry. Nil selects
	// DefaultStyle for everything; returning nil skips the geometry.
	StyleFor func(g *Geometry) *Style

	// ForcePoints renders every coordinate as a point marker instead of
	// a path segment.
	ForcePoints bool

	// PointRadius is the marker radius in pixels for point geometries
	// and ForcePoints mode.
	PointRadius float64

	style *Style
	drew  bool
	span  spanState
}

// spanState is the per-ring/per-line gap tracking state, reset at ring or
// line start.
type spanState struct {
	closed bool // ring (true) or open line (false)
	total  int  // coordinates in the ring/line
	seen   int  // coordinates visited so far

	visible  int      // count of visible points
	first    vec.Vec2 // first visible point
	hasFirst bool
	last     vec.Vec2 // last visible point

	beforeGap vec.Vec2 // last visible point before the pending gap
	hasGap    bool     // a gap is pending (beforeGap is set)

	gapAtStart bool
	gapAtEnd   bool

	prev    vec.Vec2 // previous point, cleared while invisible
	hasPrev bool

	started bool // a move instruction has been emitted
}

// NewClipper returns a Clipper drawing through proj into sink.
func NewClipper(proj *Projection, sink Sink) *Clipper {
	return &Clipper{
		Proj:        proj,
		Sink:        sink,
		PointRadius: DefaultStyle.PointRadius,
	}
}

// Render traverses the collection and draws it. It returns false if a
// nested traversal aborted.
func (c *Clipper) Render(coll *Collection) bool {
	var ctx Context
	return Traverse(c, &ctx, coll)
}

// GeometryStart qualifies the geometry, selects its style, and opens a
// fresh path.
func (c *Clipper) GeometryStart(ctx *Context, g *Geometry) Signal {
	if !c.Filter.Match(g) {
		return Skip
	}
	c.style = DefaultStyle
	if c.StyleFor != nil {
		s := c.StyleFor(g)
		if s == nil {
			return Skip
		}
		c.style = s
	}
	c.drew = false
	c.Sink.BeginPath()
	return Continue
}

func (c *Clipper) RingStart(ctx *Context, ring orb.Ring) Signal {
	c.span = spanState{closed: true, total: len(ring)}
	return Continue
}

func (c *Clipper) LineStart(ctx *Context, line orb.LineString) Signal {
	c.span = spanState{total: len(line)}
	return Continue
}

// Coordinate projects one coordinate and advances the gap state machine.
func (c *Clipper) Coordinate(ctx *Context, coord orb.Point) Signal {
	bare := ctx.Ring == nil && ctx.Line == nil
	if bare || c.ForcePoints {
		c.marker(coord)
		return Continue
	}

	s := &c.span
	s.seen++

	pt, visible := c.Proj.Project(coord)
	if !visible {
		if s.seen == 1 {
			s.gapAtStart = true
		}
		if !s.hasGap && s.hasPrev {
			s.beforeGap = s.prev
			s.hasGap = true
		}
		s.hasPrev = false
		return Continue
	}

	if s.visible == 0 {
		s.first = pt
		s.hasFirst = true
	}
	if s.hasGap {
		if s.closed {
			if c.Proj.orthographic() {
				c.bridge(s.beforeGap, pt)
			}
			// under rectangle clipping the straight segment suffices
		} else {
			// a gap in a line is a true break, not an arc
			s.started = false
		}
		s.hasGap = false
	}

	// The ring-closing coordinate repeats the first one; the close
	// instruction draws that segment.
	closing := s.closed && s.seen == s.total && s.hasFirst && pt == s.first
	if !closing {
		if !s.started {
			c.Sink.MoveTo(pt.X, pt.Y)
			s.started = true
		} else {
			c.Sink.LineTo(pt.X, pt.Y)
		}
		c.drew = true
	}

	s.visible++
	s.last = pt
	s.prev = pt
	s.hasPrev = true
	return Continue
}

// RingEnd closes the ring, bridging back to the first visible point when
// the ring ended or started inside a gap.
func (c *Clipper) RingEnd(ctx *Context, ring orb.Ring) Signal {
	s := &c.span
	if !s.hasPrev {
		s.gapAtEnd = true
	}
	if s.visible > 0 {
		if (s.gapAtStart || s.gapAtEnd) && c.Proj.orthographic() {
			c.bridge(s.last, s.first)
		}
		c.Sink.ClosePath()
	}
	return Continue
}

// GeometryEnd paints the accumulated path and, for stitching presets,
// re-traverses the geometry shifted one map width to the right and to the
// left. The shift/traverse/shift-back order is load-bearing: the
// projection must end up with its original translation even if a nested
// pass aborts. Stitching only triggers on the primary pass.
func (c *Clipper) GeometryEnd(ctx *Context, g *Geometry) Signal {
	if c.drew {
		c.paint(g)
	}

	if c.Proj.stitching() && ctx.Pass == 1 {
		w := c.Proj.mapWidth

		c.Proj.shiftX(w) // draw again to the right
		okRight := TraverseGeometry(c, ctx, g)

		c.Proj.shiftX(-2 * w) // and again to the left
		okLeft := okRight && TraverseGeometry(c, ctx, g)

		c.Proj.shiftX(w) // restore the original translation
		if !okRight || !okLeft {
			return Abort
		}
	}
	return Continue
}

func (c *Clipper) paint(g *Geometry) {
	if c.ForcePoints {
		c.Sink.Fill(c.style)
		return
	}
	switch g.Geom.(type) {
	case orb.Point, orb.MultiPoint:
		c.Sink.Fill(c.style)
	case orb.LineString, orb.MultiLineString:
		c.Sink.Stroke(c.style)
	default:
		c.Sink.Fill(c.style)
		if c.style.Stroke != nil {
			c.Sink.Stroke(c.style)
		}
	}
}

// marker draws a filled circle at the coordinate's projected position.
func (c *Clipper) marker(coord orb.Point) {
	pt, visible := c.Proj.Project(coord)
	if !visible {
		return
	}
	r := c.PointRadius
	c.Sink.MoveTo(pt.X+r, pt.Y)
	c.Sink.Arc(pt.X, pt.Y, r, 0, 2*math.Pi, false)
	c.drew = true
}

// bridge spans a visibility gap between two points of a closed ring with
// boundary geometry along the clip circle: both points are extended
// radially from the projection center to the circumference (avoiding a
// tangle of overlapping segments at the boundary), then a straight
// segment runs to the first extended point and a circular arc through
// the tangent point at the angular midpoint reaches the second.
func (c *Clipper) bridge(from, to vec.Vec2) {
	ctr := c.Proj.center
	r := c.Proj.radius

	e1 := extendToCircle(from, ctr, r)
	e2 := extendToCircle(to, ctr, r)

	a1 := math.Atan2(e1.Y-ctr.Y, e1.X-ctr.X)
	a2 := math.Atan2(e2.Y-ctr.Y, e2.X-ctr.X)

	// angular midpoint along the shorter way around
	d := math.Mod(a2-a1, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	mid := a1 + d/2
	tx := ctr.X + r*math.Cos(mid)
	ty := ctr.Y + r*math.Sin(mid)

	c.Sink.LineTo(e1.X, e1.Y)
	c.Sink.ArcTo(tx, ty, e2.X, e2.Y, r)
	c.drew = true
}

// extendToCircle projects p radially from the center onto the circle of
// the given radius. A point at the exact center extends to the right.
func extendToCircle(p, center vec.Vec2, radius float64) vec.Vec2 {
	d := p.Sub(center)
	length := d.Length()
	if length == 0 {
		return vec.Vec2{X: center.X + radius, Y: center.Y}
	}
	return center.Add(d.Mul(radius / length))
}
