// Package geojson renders solver results as GeoJSON features.
package geojson

import "github.com/tidwall/vincenty"

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]any `json:"properties" yaml:"properties"`
	Type       string         `json:"type" yaml:"type"`
	Geometry   Geometry       `json:"geometry" yaml:"geometry"`
}

// Geometry is a Point ([lon, lat]) or a LineString ([[lon, lat], ...]).
type Geometry struct {
	Type        string `json:"type" yaml:"type"`
	Coordinates any    `json:"coordinates" yaml:"coordinates"`
}

// NewCollection returns an empty feature collection.
func NewCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// Position returns p as a GeoJSON position in degrees, longitude first.
func Position(p vincenty.Point) []float64 {
	lat, lon := p.Degrees()
	return []float64{lon, lat}
}

// AddPoint appends a Point feature.
func (fc *FeatureCollection) AddPoint(p vincenty.Point, props map[string]any) {
	fc.Features = append(fc.Features, Feature{
		Type:       "Feature",
		Properties: props,
		Geometry:   Geometry{Type: "Point", Coordinates: Position(p)},
	})
}

// AddLine appends a LineString feature through points.
func (fc *FeatureCollection) AddLine(points []vincenty.Point, props map[string]any) {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = Position(p)
	}
	fc.Features = append(fc.Features, Feature{
		Type:       "Feature",
		Properties: props,
		Geometry:   Geometry{Type: "LineString", Coordinates: coords},
	})
}
