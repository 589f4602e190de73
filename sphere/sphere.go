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

// Package sphere provides the spherical and planar math used by the map
// renderer: great-circle distance and interpolation, point-to-segment
// distance in pixel space, and containment tests.
//
// All functions are pure and deterministic. Geographic coordinates are
// orb.Point values in degrees, longitude first.
package sphere

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"seehuhn.de/go/geom/vec"
)

// EarthRadiusKm converts angular distances to kilometers.
const EarthRadiusKm = 6371.0

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AsinClamped is arcsine with the argument clamped to [-1, 1].
// Rotation composition routinely produces values fractionally outside
// the domain; clamping keeps NaN out of downstream computation.
func AsinClamped(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return math.Asin(x)
}

// Distance returns the great-circle angular distance between a and b,
// computed with the haversine formula. Multiply by [EarthRadiusKm] for
// kilometers, or by a pixel scale for screen distances.
func Distance(a, b orb.Point) s1.Angle {
	phi1 := Radians(a[1])
	phi2 := Radians(b[1])
	dPhi := Radians(b[1] - a[1])
	dLng := Radians(b[0] - a[0])

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return s1.Angle(2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)))
}

// InterpolateGreatCircle returns the point a fraction t along the great
// circle from a to b. t outside [0, 1] extrapolates along the circle.
func InterpolateGreatCircle(a, b orb.Point, t float64) orb.Point {
	pa := s2.PointFromLatLng(s2.LatLngFromDegrees(a[1], a[0]))
	pb := s2.PointFromLatLng(s2.LatLngFromDegrees(b[1], b[0]))
	ll := s2.LatLngFromPoint(s2.Interpolate(t, pa, pb))
	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}
}

// segmentEps is the minimum segment length for perpendicular distance.
// Shorter segments fall back to endpoint distance.
const segmentEps = 1e-12

// DistancePointToSegment returns the distance from p to the segment ab in
// pixel space. If the foot of the perpendicular from p lies strictly
// between the endpoints the perpendicular distance is returned, otherwise
// the smaller of the two endpoint distances. Degenerate segments (a == b)
// use the endpoint distance.
func DistancePointToSegment(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	length := d.Length()
	if length < segmentEps {
		return p.Sub(a).Length()
	}

	// Rotate p into the segment frame: u along ab, v perpendicular.
	// The foot lies strictly between the endpoints exactly when p falls
	// inside the infinite rectangle spanned by the rotated segment.
	t := d.Mul(1 / length)
	r := p.Sub(a)
	u := r.X*t.X + r.Y*t.Y
	if u > 0 && u < length {
		return math.Abs(t.X*r.Y - t.Y*r.X)
	}

	return min(p.Sub(a).Length(), p.Sub(b).Length())
}

// PointInRect reports whether p lies within the bound (inclusive).
func PointInRect(p orb.Point, b orb.Bound) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1]
}

// PointInPolygon reports whether p lies inside the ring, using even-odd
// ray casting over consecutive edges. The ring is expected to be closed,
// no implicit closing edge is added.
func PointInPolygon(p orb.Point, ring orb.Ring) bool {
	inside := false
	for i := 1; i < len(ring); i++ {
		a, b := ring[i-1], ring[i]
		if (a[1] > p[1]) != (b[1] > p[1]) &&
			p[0] < (b[0]-a[0])*(p[1]-a[1])/(b[1]-a[1])+a[0] {
			inside = !inside
		}
	}
	return inside
}
