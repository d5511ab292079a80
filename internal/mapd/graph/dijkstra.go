package graph

import (
	"container/heap"
	"math"

	"smartcart/internal/mapd/models"
)

// ============================================================
// Indoor Router (Dijkstra)
// ============================================================

// ShortestPath runs Dijkstra over the floor graph from startID to endID
// and returns the vertex sequence plus its total Euclidean length.
//
// Edges are traversed in both directions regardless of their stored
// direction: routing works on incident edges, direction only matters to
// the editor. Weights are the Euclidean distance between the endpoint
// coordinates, so they are never negative.
//
// Ties in tentative distance break by ascending vertex id, which makes
// the result deterministic for a given graph. Unreachable endpoints
// yield an empty sequence. startID == endID yields a single-vertex
// sequence; callers treat anything shorter than two vertices as "no
// route".
func ShortestPath(g *Graph, startID, endID string) ([]models.Vertex, float64) {
	start, ok := g.FindVertex(startID)
	if !ok {
		return nil, 0
	}
	if _, ok := g.FindVertex(endID); !ok {
		return nil, 0
	}
	if startID == endID {
		return []models.Vertex{start}, 0
	}

	dist := map[string]float64{startID: 0}
	prev := make(map[string]string)
	done := make(map[string]bool)

	pq := &frontier{{id: startID, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierItem)
		if done[cur.id] {
			// Stale entry from a lazy decrease-key.
			continue
		}
		if cur.id == endID {
			break
		}
		done[cur.id] = true

		for _, e := range g.Neighbors(cur.id) {
			next := e.To
			if next == cur.id {
				next = e.From
			}
			if done[next] {
				continue
			}

			from, _ := g.FindVertex(e.From)
			to, _ := g.FindVertex(e.To)
			w := math.Hypot(from.CX-to.CX, from.CY-to.CY)

			alt := cur.dist + w
			old, seen := dist[next]
			if !seen || alt < old {
				dist[next] = alt
				prev[next] = cur.id
				heap.Push(pq, frontierItem{id: next, dist: alt})
			}
		}
	}

	if _, reached := prev[endID]; !reached {
		return nil, 0
	}

	// Walk the predecessor chain back to the start.
	var path []models.Vertex
	for cur := endID; ; cur = prev[cur] {
		v, _ := g.FindVertex(cur)
		path = append([]models.Vertex{v}, path...)
		if cur == startID {
			break
		}
	}
	return path, dist[endID]
}

// ============================================================
// Frontier heap
// ============================================================

type frontierItem struct {
	id   string
	dist float64
}

type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].id < f[j].id
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
