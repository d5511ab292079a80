package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ============================================================
// GeoJSON decoding
// ============================================================

// FeatureCollection is the subset of GeoJSON the campus data uses.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry keeps coordinates raw so each geometry type can decode its
// own shape. GeoJSON positions are [lng, lat].
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func toCoord(pos [2]float64) Coord {
	return Coord{Lat: pos[1], Lng: pos[0]}
}

// Point decodes a Point geometry.
func (g Geometry) Point() (Coord, error) {
	var pos [2]float64
	if err := json.Unmarshal(g.Coordinates, &pos); err != nil {
		return Coord{}, fmt.Errorf("decode point: %w", err)
	}
	return toCoord(pos), nil
}

// LineString decodes a LineString geometry.
func (g Geometry) LineString() ([]Coord, error) {
	var raw [][2]float64
	if err := json.Unmarshal(g.Coordinates, &raw); err != nil {
		return nil, fmt.Errorf("decode linestring: %w", err)
	}
	out := make([]Coord, len(raw))
	for i, pos := range raw {
		out[i] = toCoord(pos)
	}
	return out, nil
}

// OuterRing decodes the outer ring of a Polygon geometry.
func (g Geometry) OuterRing() ([]Coord, error) {
	var raw [][][2]float64
	if err := json.Unmarshal(g.Coordinates, &raw); err != nil {
		return nil, fmt.Errorf("decode polygon: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode polygon: no rings")
	}
	out := make([]Coord, len(raw[0]))
	for i, pos := range raw[0] {
		out[i] = toCoord(pos)
	}
	return out, nil
}

// ============================================================
// Campus layers
// ============================================================

// Entrance is a labelled point of interest on the campus map.
type Entrance struct {
	Name string
	Type string
	At   Coord
}

// Campus is the immutable obstacle/boundary configuration loaded once
// at startup.
type Campus struct {
	Boundary  []Coord
	Obstacles [][]Coord
	Entrances []Entrance
}

func propString(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

// CampusFromCollection classifies the campus FeatureCollection into a
// boundary ring, non-walkable obstacle rings and entrance points.
// Buildings, gardens and restricted zones count as obstacles, matched
// by their type or name.
func CampusFromCollection(fc FeatureCollection) (*Campus, error) {
	campus := &Campus{}

	for _, f := range fc.Features {
		name := propString(f.Properties, "name")
		typ := strings.ToLower(propString(f.Properties, "type"))
		lname := strings.ToLower(name)

		switch {
		case name == "Univ_boarders" && f.Geometry.Type == "Polygon":
			ring, err := f.Geometry.OuterRing()
			if err != nil {
				return nil, err
			}
			campus.Boundary = ring

		case f.Geometry.Type == "Point":
			entranceType := propString(f.Properties, "entrance_type")
			if entranceType == "" {
				continue
			}
			at, err := f.Geometry.Point()
			if err != nil {
				return nil, err
			}
			campus.Entrances = append(campus.Entrances, Entrance{
				Name: name,
				Type: entranceType,
				At:   at,
			})

		case f.Geometry.Type == "Polygon" && isObstacle(typ, lname):
			ring, err := f.Geometry.OuterRing()
			if err != nil {
				return nil, err
			}
			campus.Obstacles = append(campus.Obstacles, ring)
		}
	}

	return campus, nil
}

func isObstacle(typ, name string) bool {
	for _, kind := range []string{"building", "garden", "restricted"} {
		if typ == kind || strings.Contains(name, kind) {
			return true
		}
	}
	return false
}

// WalkwaysFromCollection extracts the walkway polylines. Polygon
// features are converted to LineStrings by taking their outer ring.
func WalkwaysFromCollection(fc FeatureCollection) ([][]Coord, error) {
	var lines [][]Coord
	for _, f := range fc.Features {
		switch f.Geometry.Type {
		case "LineString":
			line, err := f.Geometry.LineString()
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		case "Polygon":
			ring, err := f.Geometry.OuterRing()
			if err != nil {
				return nil, err
			}
			lines = append(lines, ring)
		}
	}
	return lines, nil
}

// ============================================================
// File loading
// ============================================================

func readCollection(path string) (FeatureCollection, error) {
	var fc FeatureCollection
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read geojson: %w", err)
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse geojson %s: %w", path, err)
	}
	return fc, nil
}

// LoadCampus reads and classifies the campus geometry file.
func LoadCampus(path string) (*Campus, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}
	return CampusFromCollection(fc)
}

// LoadWalkways reads the walkway geometry file.
func LoadWalkways(path string) ([][]Coord, error) {
	fc, err := readCollection(path)
	if err != nil {
		return nil, err
	}
	return WalkwaysFromCollection(fc)
}
