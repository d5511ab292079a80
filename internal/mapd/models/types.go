package models

import "fmt"

// ============================================================
// Floor graph records
// ============================================================

// Vertex is a location marker on one floor's SVG coordinate plane.
// ObjectName is nil for unnamed markers (stored as NULL, never "").
type Vertex struct {
	ID         string  `json:"id"`
	FloorID    int     `json:"floor_id"`
	ObjectName *string `json:"object_name"`
	CX         float64 `json:"cx"`
	CY         float64 `json:"cy"`
}

// Edge is a directed link between two vertices of the same floor.
// Its ID is always derived from the endpoints, see EdgeID.
type Edge struct {
	ID      string `json:"id"`
	FloorID int    `json:"floor_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// GraphData bundles one floor's vertex and edge sets the way the
// points API returns them.
type GraphData struct {
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges"`
}

// Floor is the floor metadata plus its graph, as served to clients.
type Floor struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ShortName   string    `json:"shortName"`
	Description string    `json:"description"`
	SVGPath     string    `json:"svgPath"`
	SVGObject   string    `json:"-"`
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	GraphData   GraphData `json:"graphData"`
}

// EdgeID derives the deterministic edge id for a from→to connection.
func EdgeID(from, to string) string {
	return fmt.Sprintf("%s_to_%s", from, to)
}

// ReverseEdgeID derives the id of the opposite direction.
func ReverseEdgeID(from, to string) string {
	return EdgeID(to, from)
}

// Reverse returns the opposite-direction edge of e.
func (e Edge) Reverse() Edge {
	return Edge{
		ID:      EdgeID(e.To, e.From),
		FloorID: e.FloorID,
		From:    e.To,
		To:      e.From,
	}
}

// NameOrNil normalizes a user-entered vertex name: blank becomes nil.
func NameOrNil(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}
