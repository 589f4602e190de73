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

// Package geodata builds mapview collections: it loads GeoJSON feature
// collections and generates synthetic geometry such as graticules.
//
// The loader enforces the invariants the renderer assumes: every feature
// has a geometry, and all features of a collection share one geometry
// kind. Validation lives here, in the data-preparation layer, so the
// renderer can treat violations as programming errors.
package geodata

import (
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb/geojson"

	"seehuhn.de/go/mapview"
)

// LoadCollection reads a GeoJSON feature collection and converts it into
// a named mapview collection. The optional feature properties
// "scalerank" (number), "class" (string), and "begin"/"end" (RFC 3339
// strings) populate the geometry metadata.
func LoadCollection(r io.Reader, name string) (*mapview.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("geodata: reading %s: %w", name, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geodata: decoding %s: %w", name, err)
	}

	coll := &mapview.Collection{
		Name:       name,
		Geometries: make([]mapview.Geometry, 0, len(fc.Features)),
	}
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return nil, fmt.Errorf("geodata: %s: feature %d has no geometry", name, i)
		}
		kind := f.Geometry.GeoJSONType()
		if coll.Kind == "" {
			coll.Kind = kind
		} else if kind != coll.Kind {
			return nil, fmt.Errorf("geodata: %s: feature %d is %s, collection is %s",
				name, i, kind, coll.Kind)
		}

		g := mapview.Geometry{
			Geom:      f.Geometry,
			ScaleRank: f.Properties.MustInt("scalerank", 0),
			Class:     f.Properties.MustString("class", ""),
		}
		if g.Begin, err = parseTime(f.Properties.MustString("begin", "")); err != nil {
			return nil, fmt.Errorf("geodata: %s: feature %d: %w", name, i, err)
		}
		if g.End, err = parseTime(f.Properties.MustString("end", "")); err != nil {
			return nil, fmt.Errorf("geodata: %s: feature %d: %w", name, i, err)
		}

		coll.Geometries = append(coll.Geometries, g)
	}
	return coll, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
