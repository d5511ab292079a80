package geo

import (
	"container/heap"
	"math"
	"sort"
)

// ============================================================
// Geo Router
// ============================================================

// Connections carries the two synthetic connector coordinates so the
// client can animate the off-network legs distinctly.
type Connections struct {
	Start Coord
	End   Coord
}

// Route is a successful outdoor pathfinding result.
type Route struct {
	Path        []Coord
	Connections Connections
	Distance    float64 // meters, rounded
}

// Router snaps arbitrary points onto the walkway network and finds a
// route between them, validated against the campus obstacle layer.
// Campus and network are loaded once and never mutated afterwards.
type Router struct {
	campus  *Campus
	network *Network
}

// NewRouter builds a router from the loaded layers. Either argument
// may be nil; the router then degrades to a no-op.
func NewRouter(campus *Campus, walkways [][]Coord) *Router {
	r := &Router{campus: campus}
	if len(walkways) > 0 {
		r.network = BuildNetwork(walkways)
	}
	return r
}

// Ready reports whether all input layers are loaded.
func (r *Router) Ready() bool {
	return r.campus != nil && len(r.campus.Boundary) >= 3 && !r.network.Empty()
}

// Entrances exposes the campus entrance markers.
func (r *Router) Entrances() []Entrance {
	if r.campus == nil {
		return nil
	}
	return r.campus.Entrances
}

// FindPath routes from user to dest across the walkway network.
//
// Each endpoint is projected onto its nearest network segment; a
// projection landing inside an obstacle or outside the boundary is
// rejected in favor of the next-nearest segment. Nil means no route:
// missing layers, no valid connector, or a disconnected network. That
// is a normal outcome, not an error.
func (r *Router) FindPath(user, dest Coord) *Route {
	if !r.Ready() {
		return nil
	}

	start, ok := r.connectorFor(user)
	if !ok {
		return nil
	}
	end, ok := r.connectorFor(dest)
	if !ok {
		return nil
	}

	nodePath, ok := r.routeAugmented(start, end)
	if !ok {
		return nil
	}

	coords := make([]Coord, 0, len(nodePath)+4)
	coords = append(coords, user, start.at)
	for _, idx := range nodePath {
		coords = append(coords, r.network.nodes[idx])
	}
	coords = append(coords, end.at, dest)
	coords = dedupConsecutive(coords)

	total := 0.0
	for i := 0; i+1 < len(coords); i++ {
		total += Haversine(coords[i], coords[i+1])
	}

	return &Route{
		Path:        coords,
		Connections: Connections{Start: start.at, End: end.at},
		Distance:    math.Round(total),
	}
}

// ============================================================
// Connector synthesis
// ============================================================

type connector struct {
	seg  int
	at   Coord
	dist float64
}

// connectorFor projects p onto every network segment and returns the
// nearest projection that is walkable. Candidates are tried in
// ascending distance order; ties break by segment index.
func (r *Router) connectorFor(p Coord) (connector, bool) {
	candidates := make([]connector, 0, len(r.network.segments))
	for i, seg := range r.network.segments {
		at := ProjectOntoSegment(p, r.network.nodes[seg.a], r.network.nodes[seg.b])
		candidates = append(candidates, connector{seg: i, at: at, dist: Haversine(p, at)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].seg < candidates[j].seg
	})

	for _, c := range candidates {
		if r.walkable(c.at) {
			return c, true
		}
	}
	return connector{}, false
}

// walkable checks a point against the boundary and every obstacle ring.
func (r *Router) walkable(p Coord) bool {
	if !PointInPolygon(p, r.campus.Boundary) {
		return false
	}
	for _, ring := range r.campus.Obstacles {
		if PointInPolygon(p, ring) {
			return false
		}
	}
	return true
}

// ============================================================
// Augmented shortest path
// ============================================================

// routeAugmented runs Dijkstra over the network plus two synthetic
// projection nodes, each wired to the endpoints of the segment it lies
// on. Returns the network node indices between the projections (which
// may be none when both lie on one segment) and whether the end was
// reached at all.
func (r *Router) routeAugmented(start, end connector) ([]int, bool) {
	n := len(r.network.nodes)
	startNode, endNode := n, n+1

	coordOf := func(i int) Coord {
		switch i {
		case startNode:
			return start.at
		case endNode:
			return end.at
		default:
			return r.network.nodes[i]
		}
	}

	extra := make(map[int][]arc)
	link := func(u, v int) {
		w := Haversine(coordOf(u), coordOf(v))
		extra[u] = append(extra[u], arc{to: v, w: w})
		extra[v] = append(extra[v], arc{to: u, w: w})
	}

	segStart := r.network.segments[start.seg]
	link(startNode, segStart.a)
	link(startNode, segStart.b)

	segEnd := r.network.segments[end.seg]
	link(endNode, segEnd.a)
	link(endNode, segEnd.b)

	// Both projections on one segment route directly along it.
	if start.seg == end.seg {
		link(startNode, endNode)
	}

	dist := map[int]float64{startNode: 0}
	prev := make(map[int]int)
	done := make(map[int]bool)

	pq := &nodeHeap{{id: startNode, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(nodeItem)
		if done[cur.id] {
			continue
		}
		if cur.id == endNode {
			break
		}
		done[cur.id] = true

		neighbors := append([]arc{}, r.network.adj[cur.id]...)
		neighbors = append(neighbors, extra[cur.id]...)
		for _, a := range neighbors {
			if done[a.to] {
				continue
			}
			alt := cur.dist + a.w
			old, seen := dist[a.to]
			if !seen || alt < old {
				dist[a.to] = alt
				prev[a.to] = cur.id
				heap.Push(pq, nodeItem{id: a.to, dist: alt})
			}
		}
	}

	if _, reached := prev[endNode]; !reached {
		return nil, false
	}

	var nodes []int
	for cur := prev[endNode]; cur != startNode; cur = prev[cur] {
		nodes = append([]int{cur}, nodes...)
	}
	return nodes, true
}

func dedupConsecutive(coords []Coord) []Coord {
	if len(coords) == 0 {
		return coords
	}
	out := coords[:1]
	for _, c := range coords[1:] {
		if !sameCoord(c, out[len(out)-1]) {
			out = append(out, c)
		}
	}
	return out
}

// ============================================================
// Node heap
// ============================================================

type nodeItem struct {
	id   int
	dist float64
}

type nodeHeap []nodeItem

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].id < h[j].id
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(nodeItem)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
