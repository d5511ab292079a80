package geo

// ============================================================
// Walkway network
// ============================================================

// segment is one routable piece of walkway between two network nodes.
type segment struct {
	a, b int
}

type arc struct {
	to int
	w  float64
}

// Network is the routable graph derived from the walkway polylines:
// every segment between consecutive polyline coordinates becomes an
// undirected edge, endpoints dedup to shared nodes by coordinate
// equality.
type Network struct {
	nodes    []Coord
	segments []segment
	adj      map[int][]arc
}

// BuildNetwork assembles the network from walkway polylines.
func BuildNetwork(lines [][]Coord) *Network {
	n := &Network{adj: make(map[int][]arc)}
	for _, line := range lines {
		for i := 0; i+1 < len(line); i++ {
			a := n.nodeAt(line[i])
			b := n.nodeAt(line[i+1])
			if a == b {
				continue
			}
			n.segments = append(n.segments, segment{a: a, b: b})
			w := Haversine(n.nodes[a], n.nodes[b])
			n.adj[a] = append(n.adj[a], arc{to: b, w: w})
			n.adj[b] = append(n.adj[b], arc{to: a, w: w})
		}
	}
	return n
}

// nodeAt finds the node for a coordinate, creating one when no
// existing node is within epsilon. Linear scan; walkway networks stay
// in the low hundreds of nodes.
func (n *Network) nodeAt(c Coord) int {
	for i, existing := range n.nodes {
		if sameCoord(existing, c) {
			return i
		}
	}
	n.nodes = append(n.nodes, c)
	return len(n.nodes) - 1
}

// Empty reports whether the network has no routable segments.
func (n *Network) Empty() bool {
	return n == nil || len(n.segments) == 0
}
