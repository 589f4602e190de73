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

package geodata

import (
	"math"

	"github.com/paulmach/orb"

	"seehuhn.de/go/mapview"
	"seehuhn.de/go/mapview/sphere"
)

// graticuleLatLimit keeps graticule lines away from the poles, where
// meridians converge to a point.
const graticuleLatLimit = 80.0

// Graticule builds the grid of meridians and parallels as a single
// MultiLineString collection. Lines are spaced stepDeg degrees apart and
// densified to roughly densifyDeg degrees between consecutive points, so
// the renderer's per-coordinate clipping stays accurate on long spans.
// Meridians run along great circles; parallels are stepped directly in
// longitude.
func Graticule(stepDeg, densifyDeg float64) *mapview.Collection {
	if stepDeg <= 0 {
		stepDeg = 10
	}
	if densifyDeg <= 0 {
		densifyDeg = 2.5
	}

	var grid orb.MultiLineString

	// meridians
	for lng := -180.0; lng < 180; lng += stepDeg {
		south := orb.Point{lng, -graticuleLatLimit}
		north := orb.Point{lng, graticuleLatLimit}
		n := int(math.Ceil(2 * graticuleLatLimit / densifyDeg))
		line := make(orb.LineString, 0, n+1)
		for i := 0; i <= n; i++ {
			line = append(line, sphere.InterpolateGreatCircle(south, north, float64(i)/float64(n)))
		}
		grid = append(grid, line)
	}

	// parallels
	for lat := -graticuleLatLimit; lat <= graticuleLatLimit; lat += stepDeg {
		n := int(math.Ceil(360 / densifyDeg))
		line := make(orb.LineString, 0, n+1)
		for i := 0; i <= n; i++ {
			line = append(line, orb.Point{-180 + 360*float64(i)/float64(n), lat})
		}
		grid = append(grid, line)
	}

	return &mapview.Collection{
		Name:       "graticule",
		Kind:       grid.GeoJSONType(),
		Geometries: []mapview.Geometry{{Geom: grid}},
	}
}
