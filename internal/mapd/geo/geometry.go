package geo

import "math"

// ============================================================
// Geometry primitives
// ============================================================

// earthRadiusM is the Earth radius used by the haversine formula.
const earthRadiusM = 6371000.0

// Coord is a WGS84 position. JSON payloads carry it as [lat, lng],
// matching what the map client draws.
type Coord struct {
	Lat float64
	Lng float64
}

// Haversine returns the great-circle distance between two coordinates
// in meters.
func Haversine(p1, p2 Coord) float64 {
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p1.Lat*math.Pi/180)*math.Cos(p2.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// ProjectOntoSegment returns the point of segment a-b closest to p: the
// perpendicular projection clamped to the segment. The projection is
// computed in plain degree space, which is fine at campus scale.
func ProjectOntoSegment(p, a, b Coord) Coord {
	dLat := b.Lat - a.Lat
	dLng := b.Lng - a.Lng

	lenSq := dLat*dLat + dLng*dLng
	if lenSq == 0 {
		return a
	}

	t := ((p.Lat-a.Lat)*dLat + (p.Lng-a.Lng)*dLng) / lenSq
	t = math.Max(0, math.Min(1, t))

	return Coord{
		Lat: a.Lat + t*dLat,
		Lng: a.Lng + t*dLng,
	}
}

// PointInPolygon runs a ray cast against the polygon's outer ring.
// The ring may be open or closed; both are handled.
func PointInPolygon(p Coord, ring []Coord) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		vi, vj := ring[i], ring[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			cross := (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lng
			if p.Lng < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// sameCoord reports coordinate equality within the dedup epsilon.
func sameCoord(a, b Coord) bool {
	const eps = 1e-9
	return math.Abs(a.Lat-b.Lat) < eps && math.Abs(a.Lng-b.Lng) < eps
}
