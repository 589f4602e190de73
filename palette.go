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
	"image/color"

	"seehuhn.de/go/pdf/graphics"
)

// Style is one palette entry: the paint values for filled shapes, stroked
// paths, and point markers.
type Style struct {
	Fill   color.Color
	Stroke color.Color

	PenWidth  float64
	Dash      []float64
	DashPhase float64
	Cap       graphics.LineCapStyle
	Join      graphics.LineJoinStyle

	PointRadius float64
	PointFill   color.Color
	PointStroke color.Color
}

// DefaultStyle is used when no palette is configured. Its Stroke is nil,
// so polygons are filled but not outlined by default.
var DefaultStyle = &Style{
	Fill:        color.Gray{Y: 200},
	PenWidth:    1,
	Cap:         graphics.LineCapRound,
	Join:        graphics.LineJoinRound,
	PointRadius: 2,
	PointFill:   color.Gray{Y: 0},
}

// Palette groups styles by scale rank and selects one entry per geometry
// from the geometry's rank and the zoom-derived rank. Every group must
// contain at least two entries; a smaller group is a styling
// misconfiguration and a fatal assertion, not a runtime condition.
type Palette struct {
	// MaxRank is the largest scale rank used by the data set.
	MaxRank int

	// Groups holds the style entries per scale rank, ordered from most
	// to least prominent.
	Groups map[int][]*Style
}

// Index computes the palette index for a geometry of the given scale rank
// at the given zoom rank. The result may fall outside a group's bounds;
// StyleFor clamps it.
func (p *Palette) Index(geometryRank, zoomRank int) int {
	return geometryRank + (p.MaxRank - zoomRank) - 1
}

// StyleFor returns the style entry for g at the given zoom rank. It
// panics if g's scale-rank group has fewer than two entries.
func (p *Palette) StyleFor(g *Geometry, zoomRank int) *Style {
	group := p.Groups[g.ScaleRank]
	if len(group) < 2 {
		panic(fmt.Sprintf("mapview: palette group for scale rank %d has %d entries, need at least 2",
			g.ScaleRank, len(group)))
	}
	idx := p.Index(g.ScaleRank, zoomRank)
	if idx < 0 {
		idx = 0
	} else if idx >= len(group) {
		idx = len(group) - 1
	}
	return group[idx]
}
