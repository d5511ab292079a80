package graph

import (
	"sort"
	"strconv"
	"strings"

	"smartcart/internal/mapd/models"
)

// ============================================================
// Graph Store
// ============================================================

// pairKey identifies an unordered endpoint pair.
type pairKey struct {
	a, b string
}

func keyFor(from, to string) pairKey {
	if from < to {
		return pairKey{from, to}
	}
	return pairKey{to, from}
}

// Graph holds the vertex and edge sets for exactly one floor. It is a
// pure in-memory structure: durability belongs to the repository, and
// the routers treat it as read-only input.
//
// Directionality is derived, not stored: a connection is bidirectional
// iff both directed edges exist. The store keeps an index from the
// unordered endpoint pair to the directed edge ids so that check does
// not scan the edge set.
type Graph struct {
	floorID  int
	vertices map[string]models.Vertex
	edges    map[string]models.Edge
	pairs    map[pairKey]map[string]struct{}
}

// New returns an empty store for one floor.
func New(floorID int) *Graph {
	return &Graph{
		floorID:  floorID,
		vertices: make(map[string]models.Vertex),
		edges:    make(map[string]models.Edge),
		pairs:    make(map[pairKey]map[string]struct{}),
	}
}

// Load builds a store from a persisted graph. Edges referencing unknown
// or cross-floor vertices are rejected.
func Load(floorID int, data models.GraphData) (*Graph, error) {
	g := New(floorID)
	for _, v := range data.Vertices {
		if err := g.AddVertex(v); err != nil {
			return nil, err
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) FloorID() int { return g.floorID }

// ============================================================
// Mutations
// ============================================================

// AddVertex inserts or replaces a vertex. Id uniqueness is the
// authoring flow's job; the store takes the last write.
func (g *Graph) AddVertex(v models.Vertex) error {
	if v.ID == "" {
		return models.ErrValidation
	}
	if v.FloorID != g.floorID {
		return models.ErrInvalidReference
	}
	g.vertices[v.ID] = v
	return nil
}

// ReferencingEdgeIDs returns every edge id referencing the vertex, by
// endpoint or by id substring (ids like "v16_to_v26" embed both
// endpoints), in ascending order.
func (g *Graph) ReferencingEdgeIDs(id string) []string {
	var out []string
	for edgeID, e := range g.edges {
		if e.From == id || e.To == id || strings.Contains(edgeID, id) {
			out = append(out, edgeID)
		}
	}
	sort.Strings(out)
	return out
}

// RemoveVertex deletes a vertex and cascades every edge referencing it.
// Unknown ids are a no-op. Returns the removed edge ids.
func (g *Graph) RemoveVertex(id string) []string {
	if _, ok := g.vertices[id]; !ok {
		return nil
	}
	delete(g.vertices, id)

	removed := g.ReferencingEdgeIDs(id)
	for _, edgeID := range removed {
		g.RemoveEdge(edgeID)
	}
	return removed
}

// RenameVertex sets the display name of an existing vertex. A blank
// name clears it (stored as null, never empty string).
func (g *Graph) RenameVertex(id, name string) error {
	v, ok := g.vertices[id]
	if !ok {
		return models.ErrNotFound
	}
	v.ObjectName = models.NameOrNil(name)
	g.vertices[id] = v
	return nil
}

// AddEdge inserts a directed edge. Both endpoints must already exist in
// this floor's vertex set.
func (g *Graph) AddEdge(e models.Edge) error {
	if e.ID == "" || e.From == "" || e.To == "" {
		return models.ErrValidation
	}
	if e.FloorID != g.floorID {
		return models.ErrInvalidReference
	}
	if _, ok := g.vertices[e.From]; !ok {
		return models.ErrInvalidReference
	}
	if _, ok := g.vertices[e.To]; !ok {
		return models.ErrInvalidReference
	}
	if _, ok := g.edges[e.ID]; ok {
		return models.ErrDuplicateEdge
	}

	g.edges[e.ID] = e
	key := keyFor(e.From, e.To)
	if g.pairs[key] == nil {
		g.pairs[key] = make(map[string]struct{}, 2)
	}
	g.pairs[key][e.ID] = struct{}{}
	return nil
}

// RemoveEdge deletes a directed edge. Unknown ids are a no-op.
func (g *Graph) RemoveEdge(id string) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	delete(g.edges, id)

	key := keyFor(e.From, e.To)
	if set := g.pairs[key]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(g.pairs, key)
		}
	}
}

// ============================================================
// Queries
// ============================================================

// FindVertex looks a vertex up by id.
func (g *Graph) FindVertex(id string) (models.Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// HasEdge reports whether the exact directed edge id exists.
func (g *Graph) HasEdge(id string) bool {
	_, ok := g.edges[id]
	return ok
}

// IsConnected reports whether any edge joins the two endpoints, in
// either direction.
func (g *Graph) IsConnected(a, b string) bool {
	return len(g.pairs[keyFor(a, b)]) > 0
}

// IsBidirectional reports whether the reverse counterpart of e exists.
func (g *Graph) IsBidirectional(e models.Edge) bool {
	return g.HasEdge(models.ReverseEdgeID(e.From, e.To))
}

// Neighbors returns every edge incident to the vertex, sorted by id.
func (g *Graph) Neighbors(id string) []models.Edge {
	var out []models.Edge
	for _, e := range g.edges {
		if e.From == id || e.To == id {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Vertices returns a snapshot of the vertex set in ascending id order.
func (g *Graph) Vertices() []models.Vertex {
	out := make([]models.Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns a snapshot of the edge set in ascending id order.
func (g *Graph) Edges() []models.Edge {
	out := make([]models.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NextVertexID picks the next "v<n>" token after the highest number
// currently in the store.
func (g *Graph) NextVertexID() string {
	max := 0
	for id := range g.vertices {
		n, err := strconv.Atoi(strings.TrimPrefix(id, "v"))
		if err == nil && n > max {
			max = n
		}
	}
	return "v" + strconv.Itoa(max+1)
}
