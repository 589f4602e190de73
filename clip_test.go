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
	"slices"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

// recordingSink captures sink instructions as a tape of strings.
type recordingSink struct {
	ops []string
}

func (s *recordingSink) BeginPath() {
	s.ops = append(s.ops, "begin")
}

func (s *recordingSink) MoveTo(x, y float64) {
	s.ops = append(s.ops, fmt.Sprintf("move %g %g", x, y))
}

func (s *recordingSink) LineTo(x, y float64) {
	s.ops = append(s.ops, fmt.Sprintf("line %g %g", x, y))
}

func (s *recordingSink) Arc(cx, cy, r, a0, a1 float64, clockwise bool) {
	s.ops = append(s.ops, fmt.Sprintf("arc %g %g %g", cx, cy, r))
}

func (s *recordingSink) ArcTo(x1, y1, x2, y2, r float64) {
	s.ops = append(s.ops, "arcto")
}

func (s *recordingSink) ClosePath() {
	s.ops = append(s.ops, "close")
}

func (s *recordingSink) Fill(style *Style) {
	s.ops = append(s.ops, "fill")
}

func (s *recordingSink) Stroke(style *Style) {
	s.ops = append(s.ops, "stroke")
}

func (s *recordingSink) count(prefix string) int {
	n := 0
	for _, op := range s.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func squareCollection() *Collection {
	return &Collection{
		Name: "square",
		Kind: "Polygon",
		Geometries: []Geometry{
			{Geom: orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}},
		},
	}
}

// TestSquareEmission checks the exact instruction tape for a fully
// visible square under the pure cylindrical preset at unit scale.
func TestSquareEmission(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect)

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	if !clip.Render(squareCollection()) {
		t.Fatal("render aborted")
	}

	want := []string{
		"begin",
		"move 0 0",
		"line 10 0",
		"line 10 10",
		"line 0 10",
		"close",
		"fill",
	}
	if !slices.Equal(sink.ops, want) {
		t.Errorf("got tape %v, want %v", sink.ops, want)
	}
}

// TestGapBridge forces one contiguous invisible span mid-ring under the
// orthographic preset and expects exactly one bridging arc, with normal
// emission resuming after the gap.
func TestGapBridge(t *testing.T) {
	proj := NewProjection() // globe preset, no rotation: |lng| < 90 visible

	coll := &Collection{
		Kind: "Polygon",
		Geometries: []Geometry{
			{Geom: orb.Polygon{{
				{-40, -20}, {40, -20}, {120, 0}, {40, 20}, {-40, 20}, {-40, -20},
			}}},
		},
	}

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	if !clip.Render(coll) {
		t.Fatal("render aborted")
	}

	if n := sink.count("arcto"); n != 1 {
		t.Fatalf("emitted %d bridging arcs, want 1; tape %v", n, sink.ops)
	}

	// extend-to-circumference segment, then the arc, then normal line
	// emission resumes
	idx := slices.Index(sink.ops, "arcto")
	if !strings.HasPrefix(sink.ops[idx-1], "line") {
		t.Errorf("op before arc is %q, want a line to the extended point", sink.ops[idx-1])
	}
	if !strings.HasPrefix(sink.ops[idx+1], "line") {
		t.Errorf("op after arc is %q, want resumed line emission", sink.ops[idx+1])
	}
	if sink.ops[len(sink.ops)-2] != "close" || sink.ops[len(sink.ops)-1] != "fill" {
		t.Errorf("tape does not end with close+fill: %v", sink.ops)
	}
}

// TestGapAtEdges starts and ends the ring inside the invisible region;
// the closing bridge is synthesized at ring end.
func TestGapAtEdges(t *testing.T) {
	proj := NewProjection()

	coll := &Collection{
		Kind: "Polygon",
		Geometries: []Geometry{
			{Geom: orb.Polygon{{{120, 0}, {30, -10}, {30, 10}, {120, 0}}}},
		},
	}

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	clip.Render(coll)

	if n := sink.count("arcto"); n != 1 {
		t.Fatalf("emitted %d bridging arcs, want 1; tape %v", n, sink.ops)
	}
	if n := sink.count("close"); n != 1 {
		t.Errorf("emitted %d close instructions, want 1", n)
	}
}

// TestLineBreak checks that a gap in an open line is a true break: the
// path resumes with a move, and no arc is synthesized.
func TestLineBreak(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect) // center extent: |lng| <= 180 visible

	coll := &Collection{
		Kind: "LineString",
		Geometries: []Geometry{
			{Geom: orb.LineString{{0, 0}, {200, 0}, {10, 10}}},
		},
	}

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	clip.Render(coll)

	want := []string{
		"begin",
		"move 0 0",
		"move 10 10",
		"stroke",
	}
	if !slices.Equal(sink.ops, want) {
		t.Errorf("got tape %v, want %v", sink.ops, want)
	}
}

// TestStitch checks the antimeridian duplication: a stitching preset
// draws the geometry three times, shifted by the map width, and restores
// the projection's translation afterwards.
func TestStitch(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirectWide) // stitching preset, map width 360px

	before, _ := proj.Project(orb.Point{0, 0})

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	if !clip.Render(squareCollection()) {
		t.Fatal("render aborted")
	}

	if n := sink.count("begin"); n != 3 {
		t.Errorf("drew %d passes, want 3", n)
	}
	if n := sink.count("fill"); n != 3 {
		t.Errorf("filled %d passes, want 3", n)
	}
	if !slices.Contains(sink.ops, "move 360 0") {
		t.Errorf("no right-shifted copy in tape %v", sink.ops)
	}
	if !slices.Contains(sink.ops, "move -360 0") {
		t.Errorf("no left-shifted copy in tape %v", sink.ops)
	}

	after, _ := proj.Project(orb.Point{0, 0})
	if before != after {
		t.Errorf("translation not restored: %v before, %v after", before, after)
	}
}

func TestPointMarkers(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect)

	coll := &Collection{
		Kind: "MultiPoint",
		Geometries: []Geometry{
			{Geom: orb.MultiPoint{{0, 0}, {10, 0}}},
		},
	}

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	clip.PointRadius = 2
	clip.Render(coll)

	want := []string{
		"begin",
		"move 2 0",
		"arc 0 0 2",
		"move 12 0",
		"arc 10 0 2",
		"fill",
	}
	if !slices.Equal(sink.ops, want) {
		t.Errorf("got tape %v, want %v", sink.ops, want)
	}
}

func TestForcePoints(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect)

	coll := &Collection{
		Kind: "LineString",
		Geometries: []Geometry{
			{Geom: orb.LineString{{0, 0}, {10, 0}}},
		},
	}

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	clip.ForcePoints = true
	clip.PointRadius = 3
	clip.Render(coll)

	if n := sink.count("arc "); n != 2 {
		t.Errorf("emitted %d markers, want 2; tape %v", n, sink.ops)
	}
	if n := sink.count("line"); n != 0 {
		t.Errorf("emitted %d path segments in point mode", n)
	}
	if sink.ops[len(sink.ops)-1] != "fill" {
		t.Errorf("point markers not filled: %v", sink.ops)
	}
}

func TestInvisibleGeometryEmitsNothing(t *testing.T) {
	proj := NewProjection() // globe: back hemisphere invisible

	coll := &Collection{
		Kind: "Polygon",
		Geometries: []Geometry{
			{Geom: orb.Polygon{{{120, 0}, {160, 0}, {160, 20}, {120, 0}}}},
		},
	}

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	clip.Render(coll)

	want := []string{"begin"}
	if !slices.Equal(sink.ops, want) {
		t.Errorf("got tape %v, want %v", sink.ops, want)
	}
}

func TestClipperFilter(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect)

	coll := &Collection{
		Kind: "LineString",
		Geometries: []Geometry{
			{Geom: orb.LineString{{0, 0}, {10, 0}}, ScaleRank: 5},
			{Geom: orb.LineString{{0, 5}, {10, 5}}, ScaleRank: 1},
		},
	}

	sink := &recordingSink{}
	clip := NewClipper(proj, sink)
	clip.Filter = Filter{ZoomRank: 2}
	clip.Render(coll)

	// only the rank-1 geometry qualifies
	if n := sink.count("begin"); n != 1 {
		t.Errorf("drew %d geometries, want 1; tape %v", n, sink.ops)
	}
	if !slices.Contains(sink.ops, "move 0 5") {
		t.Errorf("wrong geometry drawn: %v", sink.ops)
	}
}
