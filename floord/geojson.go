package floord

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PolygonFeatures converts polygons into a GeoJSON feature collection in
// world units, with each feature's layer, area, and buffering recorded as
// properties.
func PolygonFeatures(polys []*Polygon) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range polys {
		f := geojson.NewFeature(orb.Polygon{append(orb.Ring{}, p.Ring...)})
		f.Properties["layer"] = string(p.Layer)
		f.Properties["area"] = p.Area
		f.Properties["buffered"] = p.Buffered
		fc.Append(f)
	}
	return fc
}

// ContourFeatures converts traced contours into GeoJSON line strings in
// pixel coordinates.
func ContourFeatures(contours []*Contour) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, c := range contours {
		ls := make(orb.LineString, 0, len(c.Points)+1)
		for _, p := range c.Points {
			ls = append(ls, orb.Point{p.X, p.Y})
		}
		if c.Closed && len(c.Points) > 0 {
			ls = append(ls, ls[0])
		}
		f := geojson.NewFeature(ls)
		f.Properties["index"] = i
		f.Properties["closed"] = c.Closed
		fc.Append(f)
	}
	return fc
}
