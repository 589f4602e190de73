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
	"testing"
	"time"

	"github.com/paulmach/orb"

	"seehuhn.de/go/geom/vec"
)

// hitTestCollection holds two horizontal lines, at y=0 and y=5 in screen
// space under the pure cylindrical preset at unit scale.
func hitTestCollection() *Collection {
	return &Collection{
		Kind: "LineString",
		Geometries: []Geometry{
			{Geom: orb.LineString{{0, 0}, {10, 0}}, ScaleRank: 5},
			{Geom: orb.LineString{{0, 5}, {10, 5}}, ScaleRank: 1},
		},
	}
}

func TestHitTest(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect)
	coll := hitTestCollection()

	// closest to the first line (distance 1 vs 4)
	got := HitTest(coll, proj, vec.Vec2{X: 5, Y: 1}, Filter{})
	if got != &coll.Geometries[0] {
		t.Errorf("got %v, want the first line", got)
	}

	// closest to the second line
	got = HitTest(coll, proj, vec.Vec2{X: 5, Y: 4}, Filter{})
	if got != &coll.Geometries[1] {
		t.Errorf("got %v, want the second line", got)
	}

	// beyond the tolerance of both
	got = HitTest(coll, proj, vec.Vec2{X: 5, Y: 30}, Filter{})
	if got != nil {
		t.Errorf("got %v, want nil for a far query point", got)
	}

	// interior of a segment, not near any vertex
	got = HitTest(coll, proj, vec.Vec2{X: 5, Y: 0}, Filter{})
	if got != &coll.Geometries[0] {
		t.Errorf("got %v, want the first line for an on-segment query", got)
	}
}

func TestHitTestFilter(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect)
	coll := hitTestCollection()

	// rank filtering excludes the otherwise-nearer first line
	got := HitTest(coll, proj, vec.Vec2{X: 5, Y: 1}, Filter{ZoomRank: 2})
	if got != &coll.Geometries[1] {
		t.Errorf("got %v, want the rank-1 line under rank filtering", got)
	}
}

func TestHitTestTimeWindow(t *testing.T) {
	proj := NewProjection()
	proj.SetMix(MixEquirect)

	coll := &Collection{
		Kind: "LineString",
		Geometries: []Geometry{
			{
				Geom:  orb.LineString{{0, 0}, {10, 0}},
				Begin: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	inside := Filter{When: time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC)}
	if got := HitTest(coll, proj, vec.Vec2{X: 5, Y: 0}, inside); got == nil {
		t.Error("geometry not hit inside its validity window")
	}

	outside := Filter{When: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
	if got := HitTest(coll, proj, vec.Vec2{X: 5, Y: 0}, outside); got != nil {
		t.Error("geometry hit outside its validity window")
	}
}

func TestHitTestInvisible(t *testing.T) {
	proj := NewProjection() // globe: back hemisphere invisible

	coll := &Collection{
		Kind: "LineString",
		Geometries: []Geometry{
			{Geom: orb.LineString{{120, 0}, {160, 0}}},
		},
	}

	// the query point coincides with where the line would project, but
	// every coordinate is clipped away
	px, _ := proj.Project(orb.Point{120, 0})
	if got := HitTest(coll, proj, px, Filter{}); got != nil {
		t.Errorf("got %v, want nil for a fully clipped geometry", got)
	}
}
