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
	"math"

	"github.com/paulmach/orb"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/mapview/sphere"
)

// mixer selects which projection family and sub-variant is active at one
// blend position. The eight entries below encode the qualitative morph
// stages: upright globe, soupcan unroll, equirectangular, Mercator
// stretch. Each entry activates exactly one of the two families.
type mixer struct {
	name         string
	orthographic bool
	cylindrical  bool
	mercator     bool
	soupcan      bool
	stitch       bool
}

var mixers = [...]mixer{
	{name: "globe", orthographic: true},
	{name: "globe upright", orthographic: true},
	{name: "soupcan", cylindrical: true, soupcan: true},
	{name: "soupcan open", cylindrical: true, soupcan: true},
	{name: "equirectangular", cylindrical: true},
	{name: "equirectangular wide", cylindrical: true, stitch: true},
	{name: "mercator blend", cylindrical: true, mercator: true, stitch: true},
	{name: "mercator", cylindrical: true, mercator: true, stitch: true},
}

// Mix positions whose preset is a pure family member.
const (
	MixGlobe        = 0.0
	MixSoupcan      = 2.0 / 7
	MixEquirect     = 4.0 / 7
	MixEquirectWide = 5.0 / 7
	MixMercator     = 1.0
)

// Blend-range hints. The preset table above decides which transforms are
// active; these ranges only smooth the transform strength across
// neighbouring presets.
const (
	soupcanMixStart  = 2.0 / 7
	soupcanMixEnd    = 4.0 / 7
	mercatorMixStart = 5.0 / 7
	mercatorMixEnd   = 1.0

	// soupcanEps is the smallest unroll factor that still bends the
	// map; below this the transform is the identity limit.
	soupcanEps = 1e-9
)

// maxMercatorLat is the latitude clamp for the Mercator stretch, the
// standard web-map cutoff where the stretched map becomes square.
const maxMercatorLat = 85.05113

// Projection maps geographic coordinates (degrees) to screen pixels under
// a continuously blendable orthographic/cylindrical projection. Configure
// it with [Projection.Rotate], [Projection.Scale], [Projection.Translate]
// and [Projection.SetMix], then call [Projection.Project] and
// [Projection.Invert].
//
// Internally latitude runs with the screen's y axis (downwards), so the
// cylindrical center derived from the rotation angles is sign-flipped.
//
// A Projection is not safe for concurrent use; one traversal, including
// its nested stitch passes, owns the instance for the duration of a
// render.
type Projection struct {
	yaw, pitch, roll float64 // degrees

	// caches recomputed by Rotate
	sinPitch, cosPitch float64 // of the flipped pitch
	sinRoll, cosRoll   float64
	centerLng          float64 // cylindrical center, = -yaw
	centerLat          float64 // cylindrical center, = -pitch

	// caches recomputed by Scale/Translate
	zoom     float64
	radius   float64 // orthographic globe radius in pixels
	pxPerDeg float64 // cylindrical pixels per degree
	mapWidth float64 // full cylindrical map extent in pixels

	center       vec.Vec2 // translation origin (viewport center)
	halfW, halfH float64

	mix    float64
	preset int

	// clipCos is the small-circle clip threshold, fixed at cos 90°:
	// only the strictly front hemisphere is visible.
	clipCos float64
}

// NewProjection returns a Projection centered on an empty viewport,
// showing the upright globe at zoom 0. With an empty viewport one degree
// maps to 2^zoom pixels; call Translate to establish a real viewport.
func NewProjection() *Projection {
	p := &Projection{clipCos: math.Cos(math.Pi / 2)}
	p.Rotate(0, 0, 0)
	p.Translate(vec.Vec2{})
	return p
}

// Rotate sets the three-axis rotation in degrees and recomputes the
// cached pitch/roll trigonometry and the sign-flipped cylindrical center.
// Angles are reduced modulo 360; no other normalization is applied.
func (p *Projection) Rotate(yaw, pitch, roll float64) {
	p.yaw = math.Mod(yaw, 360)
	p.pitch = math.Mod(pitch, 360)
	p.roll = math.Mod(roll, 360)

	p.centerLng = -p.yaw
	p.centerLat = -p.pitch
	p.sinPitch, p.cosPitch = math.Sincos(sphere.Radians(p.centerLat))
	p.sinRoll, p.cosRoll = math.Sincos(sphere.Radians(p.roll))
}

// Scale sets the orthographic radius and cylindrical pixels-per-degree
// from 2^zoom and the viewport's shorter dimension, and recomputes the
// map extent used for stitching. An empty viewport uses a 360 pixel
// reference size, so one degree maps to 2^zoom pixels.
func (p *Projection) Scale(zoom float64) {
	p.zoom = zoom

	ref := 2 * min(p.halfW, p.halfH)
	if ref <= 0 {
		ref = 360
	}
	s := math.Exp2(zoom)
	p.radius = s * ref / 2
	p.pxPerDeg = s * ref / 360
	p.mapWidth = 360 * p.pxPerDeg
}

// Translate sets the viewport center pixel and the derived half-extents,
// then recomputes the scale caches, which depend on the viewport size.
func (p *Projection) Translate(center vec.Vec2) {
	p.center = center
	p.halfW = center.X
	p.halfH = center.Y
	p.Scale(p.zoom)
}

// SetMix selects a blend position along the orthographic-to-cylindrical
// morph, clamped to [0, 1]. It reports whether the position changed;
// an unchanged value is a no-op.
func (p *Projection) SetMix(mix float64) bool {
	if mix < 0 {
		mix = 0
	} else if mix > 1 {
		mix = 1
	}
	if mix == p.mix {
		return false
	}
	p.mix = mix
	p.preset = int(math.Round(mix * float64(len(mixers)-1)))
	p.Translate(p.center)
	return true
}

// Mixer returns the name of the active mixer preset.
func (p *Projection) Mixer() string {
	return mixers[p.preset].name
}

func (p *Projection) orthographic() bool { return mixers[p.preset].orthographic }
func (p *Projection) stitching() bool    { return mixers[p.preset].stitch }

// shiftX moves the translation origin horizontally without touching the
// viewport extent. The stitch passes use this to draw offset map copies;
// the caller must restore the original shift afterwards.
func (p *Projection) shiftX(dx float64) {
	p.center.X += dx
}

// soupcanBlend returns the unroll factor for the current mix: 1 at the
// fully rolled soupcan stage, falling to 0 as the map flattens.
func soupcanBlend(mix float64) float64 {
	t := (mix - soupcanMixStart) / (soupcanMixEnd - soupcanMixStart)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return 1 - t
}

// mercatorBlend returns the Mercator stretch strength for the current
// mix: 0 at the equirectangular stage, 1 at full Mercator.
func mercatorBlend(mix float64) float64 {
	t := (mix - mercatorMixStart) / (mercatorMixEnd - mercatorMixStart)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t
}

// Project maps a geographic coordinate to a screen pixel. The boolean
// reports visibility: the strictly front hemisphere for orthographic
// presets, a center-based longitude extent for cylindrical ones. When the
// point is invisible under an orthographic preset the returned pixel is
// meaningless and must not be used.
func (p *Projection) Project(c orb.Point) (vec.Vec2, bool) {
	if mixers[p.preset].cylindrical {
		return p.projectCylindrical(c)
	}
	return p.projectOrthographic(c)
}

func (p *Projection) projectCylindrical(c orb.Point) (vec.Vec2, bool) {
	m := &mixers[p.preset]
	lng, lat := c[0], c[1]

	if m.mercator {
		if lat > maxMercatorLat {
			lat = maxMercatorLat
		} else if lat < -maxMercatorLat {
			lat = -maxMercatorLat
		}
		t := mercatorBlend(p.mix)
		stretched := sphere.Degrees(math.Log(math.Tan(math.Pi/4 + sphere.Radians(lat)/2)))
		lat = (1-t)*lat + t*stretched
	}
	if m.soupcan {
		if s := soupcanBlend(p.mix); s > soupcanEps {
			lat = sphere.Degrees(math.Sin(sphere.Radians(lat)*s)) / s
		}
	}

	pt := vec.Vec2{
		X: p.center.X + (lng-p.centerLng)*p.pxPerDeg,
		Y: p.center.Y + (lat-p.centerLat)*p.pxPerDeg,
	}
	visible := math.Abs(lng-p.centerLng) <= 180
	return pt, visible
}

func (p *Projection) projectOrthographic(c orb.Point) (vec.Vec2, bool) {
	lambda := sphere.Radians(c[0] - p.centerLng)
	phi := sphere.Radians(c[1])
	sinPhi, cosPhi := math.Sincos(phi)
	sinLambda, cosLambda := math.Sincos(lambda)

	// cos of the angle to the view axis; the small-circle clip keeps
	// only the strictly front hemisphere.
	cosC := p.sinPitch*sinPhi + p.cosPitch*cosPhi*cosLambda
	if cosC <= p.clipCos {
		return vec.Vec2{}, false
	}

	x := cosPhi * sinLambda
	y := p.cosPitch*sinPhi - p.sinPitch*cosPhi*cosLambda

	// roll rotates within the screen plane
	xr := x*p.cosRoll - y*p.sinRoll
	yr := x*p.sinRoll + y*p.cosRoll

	return vec.Vec2{
		X: p.center.X + p.radius*xr,
		Y: p.center.Y + p.radius*yr,
	}, true
}

// IsVisible reports whether the coordinate is visible under the active
// preset's clipping regime.
func (p *Projection) IsVisible(c orb.Point) bool {
	_, visible := p.Project(c)
	return visible
}

// Invert maps a screen pixel back to a geographic coordinate. For
// cylindrical presets visibility is containment in the viewport
// rectangle; for orthographic presets it is containment in the projected
// globe's pixel circle. The Mercator blend inverse is exact at the pure
// equirectangular and pure Mercator positions and approximate in between.
func (p *Projection) Invert(px vec.Vec2) (orb.Point, bool) {
	if mixers[p.preset].cylindrical {
		return p.invertCylindrical(px)
	}
	return p.invertOrthographic(px)
}

func (p *Projection) invertCylindrical(px vec.Vec2) (orb.Point, bool) {
	m := &mixers[p.preset]

	visible := px.X >= p.center.X-p.halfW && px.X <= p.center.X+p.halfW &&
		px.Y >= p.center.Y-p.halfH && px.Y <= p.center.Y+p.halfH

	lng := p.centerLng + (px.X-p.center.X)/p.pxPerDeg
	lat := p.centerLat + (px.Y-p.center.Y)/p.pxPerDeg

	if m.soupcan {
		if s := soupcanBlend(p.mix); s > soupcanEps {
			lat = sphere.Degrees(sphere.AsinClamped(sphere.Radians(lat)*s) / s)
		}
	}
	if m.mercator {
		if t := mercatorBlend(p.mix); t > 0 {
			unstretched := sphere.Degrees(math.Atan(math.Sinh(sphere.Radians(lat))))
			lat = (1-t)*lat + t*unstretched
		}
	}

	return orb.Point{lng, lat}, visible
}

func (p *Projection) invertOrthographic(px vec.Vec2) (orb.Point, bool) {
	dx := (px.X - p.center.X) / p.radius
	dy := (px.Y - p.center.Y) / p.radius

	// undo the roll rotation
	x := dx*p.cosRoll + dy*p.sinRoll
	y := -dx*p.sinRoll + dy*p.cosRoll

	rho := math.Hypot(x, y)
	visible := rho <= 1
	if rho == 0 {
		return orb.Point{p.centerLng, p.centerLat}, visible
	}

	c := sphere.AsinClamped(rho)
	sinC, cosC := math.Sincos(c)

	phi := sphere.AsinClamped(cosC*p.sinPitch + y*sinC*p.cosPitch/rho)
	lambda := math.Atan2(x*sinC, rho*cosC*p.cosPitch-y*sinC*p.sinPitch)

	return orb.Point{p.centerLng + sphere.Degrees(lambda), sphere.Degrees(phi)}, visible
}
