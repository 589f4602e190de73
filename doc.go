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

// Package mapview renders geographic vector data onto a 2D raster surface
// under a projection that morphs continuously between a rotating
// orthographic globe and a cylindrical flat map.
//
// The package has three moving parts. A [Projection] maps spherical
// coordinates to screen pixels and back, and decides point visibility
// under the clipping regime of the active mixer preset. A generic
// traversal engine ([Traverse], [Visitor]) walks a [Collection] down to
// individual coordinates. The [Clipper] specialises the traversal to emit
// path instructions to a [Sink], tracking visible-span gaps, synthesising
// boundary arcs where the globe's clip circle cuts a ring, and drawing
// duplicate offset copies when the cylindrical seam requires stitching.
package mapview
