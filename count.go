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

import "github.com/paulmach/orb"

// Count is a diagnostic visitor tallying the structural elements of a
// traversal.
type Count struct {
	NopVisitor

	Collections int
	Geometries  int
	Rings       int
	Lines       int
	Coordinates int
}

func (c *Count) CollectionStart(*Context, *Collection) Signal {
	c.Collections++
	return Continue
}

func (c *Count) GeometryStart(*Context, *Geometry) Signal {
	c.Geometries++
	return Continue
}

func (c *Count) RingStart(*Context, orb.Ring) Signal {
	c.Rings++
	return Continue
}

func (c *Count) LineStart(*Context, orb.LineString) Signal {
	c.Lines++
	return Continue
}

func (c *Count) Coordinate(*Context, orb.Point) Signal {
	c.Coordinates++
	return Continue
}
