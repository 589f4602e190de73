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
	"time"

	"github.com/paulmach/orb"
)

// Geometry is one drawable feature: an orb geometry payload plus the
// metadata used for styling and qualification. Coordinates are degrees,
// longitude east-positive and latitude north-positive.
//
// Polygons are treated as single-ring: only the outer ring of each
// orb.Polygon is drawn, any further rings are ignored. Rings are expected
// to be closed (first coordinate equals last); this is a property of the
// prepared data, not checked at runtime.
type Geometry struct {
	Geom orb.Geometry

	// ScaleRank is the minimum zoom rank at which the geometry renders.
	ScaleRank int

	// Begin and End bound the validity time. A zero value means
	// unbounded on that side.
	Begin, End time.Time

	// Class names the color class used by external palette selection.
	Class string
}

// Kind returns the GeoJSON type name of the payload.
func (g *Geometry) Kind() string {
	return g.Geom.GeoJSONType()
}

// ActiveAt reports whether the geometry is valid at the given time.
func (g *Geometry) ActiveAt(when time.Time) bool {
	if !g.Begin.IsZero() && when.Before(g.Begin) {
		return false
	}
	if !g.End.IsZero() && when.After(g.End) {
		return false
	}
	return true
}

// Collection is a named, ordered sequence of geometries of one kind.
// Collections are built once at load time and are read-only during
// traversal. Homogeneity is a loader responsibility.
type Collection struct {
	Name       string
	Kind       string
	Geometries []Geometry
}

// Filter qualifies geometries by scale rank and validity time.
// The zero value matches everything.
type Filter struct {
	// ZoomRank is the rank derived from the current zoom level.
	// Geometries with a larger ScaleRank are excluded. Zero disables
	// rank filtering.
	ZoomRank int

	// When excludes geometries outside their validity window.
	// Zero disables time filtering.
	When time.Time
}

// Match reports whether g passes the filter.
func (f Filter) Match(g *Geometry) bool {
	if f.ZoomRank > 0 && g.ScaleRank > f.ZoomRank {
		return false
	}
	if !f.When.IsZero() && !g.ActiveAt(f.When) {
		return false
	}
	return true
}
