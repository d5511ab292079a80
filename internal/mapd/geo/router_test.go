package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixture: a square campus with an L-shaped walkway.
//
//	boundary: (0,0)..(0.01,0.01)
//	walkway A: (0.002,0.002) -> (0.008,0.002)  vertical leg
//	walkway B: (0.008,0.002) -> (0.008,0.008)  horizontal leg
func testCampus(obstacles ...[]Coord) *Campus {
	return &Campus{
		Boundary:  []Coord{{0, 0}, {0, 0.01}, {0.01, 0.01}, {0.01, 0}},
		Obstacles: obstacles,
	}
}

func testWalkways() [][]Coord {
	return [][]Coord{
		{{Lat: 0.002, Lng: 0.002}, {Lat: 0.008, Lng: 0.002}},
		{{Lat: 0.008, Lng: 0.002}, {Lat: 0.008, Lng: 0.008}},
	}
}

func TestFindPathConnectorLegs(t *testing.T) {
	r := NewRouter(testCampus(), testWalkways())
	require.True(t, r.Ready())

	user := Coord{Lat: 0.004, Lng: 0.001}
	dest := Coord{Lat: 0.007, Lng: 0.0075}

	route := r.FindPath(user, dest)
	require.NotNil(t, route)
	require.GreaterOrEqual(t, len(route.Path), 4)

	// First and last legs are the synthetic connectors.
	assert.Equal(t, user, route.Path[0])
	assert.Equal(t, route.Connections.Start, route.Path[1])
	assert.Equal(t, route.Connections.End, route.Path[len(route.Path)-2])
	assert.Equal(t, dest, route.Path[len(route.Path)-1])

	// The user snapped onto the vertical leg, the destination onto the
	// horizontal one.
	assert.InDelta(t, 0.004, route.Connections.Start.Lat, 1e-9)
	assert.InDelta(t, 0.002, route.Connections.Start.Lng, 1e-9)
	assert.InDelta(t, 0.008, route.Connections.End.Lat, 1e-9)
	assert.InDelta(t, 0.0075, route.Connections.End.Lng, 1e-9)

	assert.Greater(t, route.Distance, 0.0)
}

func TestFindPathDistanceMonotonic(t *testing.T) {
	r := NewRouter(testCampus(), testWalkways())
	dest := Coord{Lat: 0.007, Lng: 0.0075}

	near := r.FindPath(Coord{Lat: 0.004, Lng: 0.0015}, dest)
	far := r.FindPath(Coord{Lat: 0.004, Lng: 0.0005}, dest)
	require.NotNil(t, near)
	require.NotNil(t, far)

	assert.LessOrEqual(t, near.Distance, far.Distance)
}

func TestFindPathSameSegment(t *testing.T) {
	r := NewRouter(testCampus(), testWalkways())

	route := r.FindPath(Coord{Lat: 0.003, Lng: 0.001}, Coord{Lat: 0.007, Lng: 0.001})
	require.NotNil(t, route)

	// user -> connector -> connector -> dest, no interior network nodes.
	assert.Len(t, route.Path, 4)
	assert.Greater(t, route.Distance, 0.0)
}

func TestConnectorRejectedInsideObstacle(t *testing.T) {
	// An obstacle sits over the nearest projection; the router must fall
	// back to the next-nearest valid segment point.
	blocked := []Coord{
		{Lat: 0.003, Lng: 0.0015},
		{Lat: 0.005, Lng: 0.0015},
		{Lat: 0.005, Lng: 0.0025},
		{Lat: 0.003, Lng: 0.0025},
	}
	r := NewRouter(testCampus(blocked), testWalkways())

	user := Coord{Lat: 0.004, Lng: 0.001}
	route := r.FindPath(user, Coord{Lat: 0.007, Lng: 0.0075})
	require.NotNil(t, route)

	// The naive projection (0.004, 0.002) is inside the obstacle.
	assert.False(t, r.walkable(Coord{Lat: 0.004, Lng: 0.002}))
	notNaive := route.Connections.Start.Lat != 0.004 || route.Connections.Start.Lng != 0.002
	assert.True(t, notNaive)
}

func TestFindPathNoValidConnector(t *testing.T) {
	// One obstacle swallowing the whole walkway leaves nowhere to snap.
	everything := []Coord{
		{Lat: 0.001, Lng: 0.001},
		{Lat: 0.009, Lng: 0.001},
		{Lat: 0.009, Lng: 0.009},
		{Lat: 0.001, Lng: 0.009},
	}
	r := NewRouter(testCampus(everything), testWalkways())

	assert.Nil(t, r.FindPath(Coord{Lat: 0.004, Lng: 0.001}, Coord{Lat: 0.007, Lng: 0.0075}))
}

func TestFindPathMissingLayers(t *testing.T) {
	assert.Nil(t, NewRouter(nil, nil).FindPath(Coord{}, Coord{}))
	assert.Nil(t, NewRouter(testCampus(), nil).FindPath(Coord{}, Coord{}))
	assert.Nil(t, NewRouter(nil, testWalkways()).FindPath(Coord{}, Coord{}))
}

func TestBuildNetworkDedupsSharedNodes(t *testing.T) {
	n := BuildNetwork(testWalkways())

	// Corner node (0.008, 0.002) is shared by both legs.
	assert.Len(t, n.nodes, 3)
	assert.Len(t, n.segments, 2)
}
