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

// Sink is the abstract path/paint surface the renderer draws into.
// The renderer issues only these primitive calls and owns no canvas or
// device state. Coordinates are device pixels; angles are radians.
//
// Package mapview/pathsink provides an implementation recording into
// seehuhn.de/go/geom/path data.
type Sink interface {
	// BeginPath starts a new path, discarding the current one.
	BeginPath()

	// MoveTo starts a new subpath at (x, y).
	MoveTo(x, y float64)

	// LineTo appends a straight segment from the current point.
	LineTo(x, y float64)

	// Arc appends a circular arc around (cx, cy) from startAngle to
	// endAngle. If the path has a current point a straight segment
	// connects it to the arc's start.
	Arc(cx, cy, r, startAngle, endAngle float64, clockwise bool)

	// ArcTo appends a straight segment to the tangent point of the
	// circle with the given radius touching the rays from the current
	// point through (x1, y1) and from (x1, y1) through (x2, y2),
	// followed by the arc to the second tangent point.
	ArcTo(x1, y1, x2, y2, r float64)

	// ClosePath closes the current subpath back to its starting point.
	ClosePath()

	// Fill fills the current path using style's fill settings.
	Fill(style *Style)

	// Stroke strokes the current path using style's stroke settings.
	Stroke(style *Style)
}
