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
	"cmp"
	"math"
	"slices"

	"github.com/paulmach/orb"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/mapview/sphere"
)

// hitTolerance is the maximum screen distance, in pixels, between the
// query point and a geometry for the geometry to count as hit.
const hitTolerance = 10.0

// HitTest returns the geometry of the collection closest to the screen
// pixel px under proj, or nil if no qualifying geometry comes within the
// hit tolerance. Candidates are ordered by ascending minimum distance;
// the filter disqualifies geometries by scale rank and validity time.
func HitTest(coll *Collection, proj *Projection, px vec.Vec2, f Filter) *Geometry {
	h := &hitTester{proj: proj, px: px, filter: f}

	var ctx Context
	Traverse(h, &ctx, coll)

	if len(h.candidates) == 0 {
		return nil
	}
	slices.SortFunc(h.candidates, func(a, b hitCandidate) int {
		return cmp.Compare(a.dist, b.dist)
	})
	return h.candidates[0].g
}

type hitCandidate struct {
	g    *Geometry
	dist float64
}

// hitTester accumulates the minimum screen distance per geometry.
type hitTester struct {
	NopVisitor

	proj   *Projection
	px     vec.Vec2
	filter Filter

	candidates []hitCandidate

	cur     float64 // minimum distance for the current geometry
	prev    vec.Vec2
	hasPrev bool
}

func (h *hitTester) GeometryStart(ctx *Context, g *Geometry) Signal {
	if !h.filter.Match(g) {
		return Skip
	}
	h.cur = math.Inf(1)
	h.hasPrev = false
	return Continue
}

func (h *hitTester) RingStart(*Context, orb.Ring) Signal {
	h.hasPrev = false
	return Continue
}

func (h *hitTester) LineStart(*Context, orb.LineString) Signal {
	h.hasPrev = false
	return Continue
}

func (h *hitTester) Coordinate(ctx *Context, c orb.Point) Signal {
	pt, visible := h.proj.Project(c)
	if !visible {
		h.hasPrev = false
		return Continue
	}

	var d float64
	if h.hasPrev {
		d = sphere.DistancePointToSegment(h.px, h.prev, pt)
	} else {
		d = h.px.Sub(pt).Length()
	}
	if d < h.cur {
		h.cur = d
	}

	h.prev = pt
	h.hasPrev = true
	return Continue
}

func (h *hitTester) GeometryEnd(ctx *Context, g *Geometry) Signal {
	if h.cur <= hitTolerance {
		h.candidates = append(h.candidates, hitCandidate{g: g, dist: h.cur})
	}
	return Continue
}
