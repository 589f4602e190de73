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
	"fmt"

	"github.com/paulmach/orb"
)

// Signal is the return value of every Visitor hook. The zero value is
// Continue, so hooks that never skip or abort can simply return 0 values.
type Signal int

const (
	// Continue proceeds with the traversal.
	Continue Signal = iota

	// Skip abandons the current item but continues with its siblings.
	Skip

	// Abort unwinds the entire traversal immediately.
	Abort
)

// Context carries the transient state of one traversal invocation. It is
// owned by a single call to Traverse; the same Context travels through
// nested stitch re-entries, where Pass counts the nesting depth.
//
// Ring and Line identify the structural level of Coordinate callbacks:
// inside a polygon ring Ring is non-nil, inside a line Line is non-nil,
// and for point geometries both are nil.
type Context struct {
	Collection *Collection
	Geometry   *Geometry
	Ring       orb.Ring
	Line       orb.LineString

	// Pass is the geometry traversal depth: 1 for the primary pass,
	// 2 for a stitch re-entry.
	Pass int
}

// Visitor receives per-structural-level callbacks during traversal.
// Hooks are dispatched in document order: collection, each geometry, each
// ring or line, each coordinate. Embed [NopVisitor] to implement only the
// levels of interest.
type Visitor interface {
	CollectionStart(ctx *Context, coll *Collection) Signal
	CollectionEnd(ctx *Context, coll *Collection) Signal
	GeometryStart(ctx *Context, g *Geometry) Signal
	GeometryEnd(ctx *Context, g *Geometry) Signal
	RingStart(ctx *Context, ring orb.Ring) Signal
	RingEnd(ctx *Context, ring orb.Ring) Signal
	LineStart(ctx *Context, line orb.LineString) Signal
	LineEnd(ctx *Context, line orb.LineString) Signal
	Coordinate(ctx *Context, c orb.Point) Signal
}

// NopVisitor implements Visitor with hooks that do nothing and always
// continue. The base traversal therefore visits every coordinate but
// performs no action; it exists to be specialised by embedding.
type NopVisitor struct{}

func (NopVisitor) CollectionStart(*Context, *Collection) Signal { return Continue }
func (NopVisitor) CollectionEnd(*Context, *Collection) Signal   { return Continue }
func (NopVisitor) GeometryStart(*Context, *Geometry) Signal     { return Continue }
func (NopVisitor) GeometryEnd(*Context, *Geometry) Signal       { return Continue }
func (NopVisitor) RingStart(*Context, orb.Ring) Signal          { return Continue }
func (NopVisitor) RingEnd(*Context, orb.Ring) Signal            { return Continue }
func (NopVisitor) LineStart(*Context, orb.LineString) Signal    { return Continue }
func (NopVisitor) LineEnd(*Context, orb.LineString) Signal      { return Continue }
func (NopVisitor) Coordinate(*Context, orb.Point) Signal        { return Continue }

// Traverse walks the collection in declared order, dispatching v's hooks.
// It returns false if a hook aborted the traversal, true otherwise
// (including when hooks skipped items).
func Traverse(v Visitor, ctx *Context, coll *Collection) bool {
	prev := ctx.Collection
	ctx.Collection = coll
	defer func() { ctx.Collection = prev }()

	switch v.CollectionStart(ctx, coll) {
	case Abort:
		return false
	case Skip:
		return true
	}

	for i := range coll.Geometries {
		if !TraverseGeometry(v, ctx, &coll.Geometries[i]) {
			return false
		}
	}

	return v.CollectionEnd(ctx, coll) != Abort
}

// TraverseGeometry walks a single geometry. It is the re-entry point for
// stitch duplication: a specialisation may call it from its GeometryEnd
// hook on the same geometry with mutated projection state. Loop counters
// are local to each call frame, so nested invocations cannot corrupt an
// outer traversal; the shared Context tracks the nesting depth in Pass.
//
// A geometry with an unrecognised payload type, or a polygon without
// rings, is a contract violation in the data-preparation layer and
// panics.
func TraverseGeometry(v Visitor, ctx *Context, g *Geometry) bool {
	ctx.Pass++
	prev := ctx.Geometry
	ctx.Geometry = g
	defer func() {
		ctx.Geometry = prev
		ctx.Pass--
	}()

	switch v.GeometryStart(ctx, g) {
	case Abort:
		return false
	case Skip:
		return true
	}

	ok := true
	switch geom := g.Geom.(type) {
	case orb.Point:
		ok = v.Coordinate(ctx, geom) != Abort
	case orb.MultiPoint:
		for _, c := range geom {
			if v.Coordinate(ctx, c) == Abort {
				ok = false
				break
			}
		}
	case orb.LineString:
		ok = traverseLine(v, ctx, geom)
	case orb.MultiLineString:
		for _, line := range geom {
			if !traverseLine(v, ctx, line) {
				ok = false
				break
			}
		}
	case orb.Polygon:
		ok = traverseRing(v, ctx, outerRing(geom))
	case orb.MultiPolygon:
		for _, poly := range geom {
			if !traverseRing(v, ctx, outerRing(poly)) {
				ok = false
				break
			}
		}
	default:
		panic(fmt.Sprintf("mapview: unsupported geometry type %T", geom))
	}
	if !ok {
		return false
	}

	return v.GeometryEnd(ctx, g) != Abort
}

// outerRing returns the single drawn ring of a polygon. Additional rings
// are ignored; hole removal is a data-preparation decision.
func outerRing(poly orb.Polygon) orb.Ring {
	if len(poly) == 0 {
		panic("mapview: polygon without rings")
	}
	return poly[0]
}

func traverseRing(v Visitor, ctx *Context, ring orb.Ring) bool {
	prev := ctx.Ring
	ctx.Ring = ring
	defer func() { ctx.Ring = prev }()

	switch v.RingStart(ctx, ring) {
	case Abort:
		return false
	case Skip:
		return true
	}

	for _, c := range ring {
		if v.Coordinate(ctx, c) == Abort {
			return false
		}
	}

	return v.RingEnd(ctx, ring) != Abort
}

func traverseLine(v Visitor, ctx *Context, line orb.LineString) bool {
	prev := ctx.Line
	ctx.Line = line
	defer func() { ctx.Line = prev }()

	switch v.LineStart(ctx, line) {
	case Abort:
		return false
	case Skip:
		return true
	}

	for _, c := range line {
		if v.Coordinate(ctx, c) == Abort {
			return false
		}
	}

	return v.LineEnd(ctx, line) != Abort
}
