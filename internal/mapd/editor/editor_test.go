package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcart/internal/mapd/graph"
	"smartcart/internal/mapd/models"
)

// fakeStore records persistence calls and can fail selected ones.
type fakeStore struct {
	insertedVertices []models.Vertex
	updatedVertices  []models.Vertex
	insertedEdges    []models.Edge
	deletedVertices  []string
	deletedEdges     []string

	failInsertEdgeAfter int // fail the nth InsertEdge call (1-based), 0 = never
	failAll             bool
}

var errBackend = errors.New("backend down")

func (f *fakeStore) InsertVertex(_ context.Context, v models.Vertex) error {
	if f.failAll {
		return errBackend
	}
	f.insertedVertices = append(f.insertedVertices, v)
	return nil
}

func (f *fakeStore) UpdateVertex(_ context.Context, v models.Vertex) error {
	if f.failAll {
		return errBackend
	}
	f.updatedVertices = append(f.updatedVertices, v)
	return nil
}

func (f *fakeStore) DeleteVertex(_ context.Context, _ int, id string) error {
	if f.failAll {
		return errBackend
	}
	f.deletedVertices = append(f.deletedVertices, id)
	return nil
}

func (f *fakeStore) InsertEdge(_ context.Context, e models.Edge) error {
	if f.failAll {
		return errBackend
	}
	if f.failInsertEdgeAfter > 0 && len(f.insertedEdges)+1 >= f.failInsertEdgeAfter {
		return errBackend
	}
	f.insertedEdges = append(f.insertedEdges, e)
	return nil
}

func (f *fakeStore) DeleteEdge(_ context.Context, _ int, id string) error {
	if f.failAll {
		return errBackend
	}
	f.deletedEdges = append(f.deletedEdges, id)
	return nil
}

func session(t *testing.T, ids ...string) (*Editor, *fakeStore) {
	t.Helper()
	g := graph.New(1)
	for i, id := range ids {
		require.NoError(t, g.AddVertex(models.Vertex{ID: id, FloorID: 1, CX: float64(i), CY: 0}))
	}
	store := &fakeStore{}
	return New(g, store), store
}

func TestClickCanvasCreatesVertexAndOpensEditor(t *testing.T) {
	ed, store := session(t)

	v, err := ed.ClickCanvas(context.Background(), 10.6, 20.2)
	require.NoError(t, err)

	assert.Equal(t, "v1", v.ID)
	assert.Equal(t, 11.0, v.CX) // coordinates are rounded
	assert.Equal(t, 20.0, v.CY)
	assert.Nil(t, v.ObjectName)
	assert.Equal(t, ModeEditingName, ed.Mode())
	require.Len(t, store.insertedVertices, 1)

	_, ok := ed.Graph().FindVertex("v1")
	assert.True(t, ok)
}

func TestClickCanvasNoLocalVertexOnBackendFailure(t *testing.T) {
	ed, store := session(t)
	store.failAll = true

	_, err := ed.ClickCanvas(context.Background(), 1, 1)
	require.ErrorIs(t, err, errBackend)

	// Local state must not imply success, and the editor stays usable.
	assert.Empty(t, ed.Graph().Vertices())
	assert.Equal(t, ModeIdle, ed.Mode())

	store.failAll = false
	_, err = ed.ClickCanvas(context.Background(), 1, 1)
	assert.NoError(t, err)
}

func TestClickCanvasIgnoredInConnectMode(t *testing.T) {
	ed, store := session(t)
	ed.ToggleConnectMode()

	v, err := ed.ClickCanvas(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, v.ID)
	assert.Empty(t, store.insertedVertices)
}

func TestConnectBidirectionalCreatesBothEdges(t *testing.T) {
	ed, store := session(t, "v1", "v2")
	ed.ToggleConnectMode()

	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	assert.Equal(t, ModeConnectAwaitingSecond, ed.Mode())
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))

	assert.Equal(t, ModeConnectAwaitingFirst, ed.Mode())
	require.Len(t, store.insertedEdges, 2)
	assert.Equal(t, "v1_to_v2", store.insertedEdges[0].ID)
	assert.Equal(t, "v2_to_v1", store.insertedEdges[1].ID)
	assert.True(t, ed.Graph().HasEdge("v1_to_v2"))
	assert.True(t, ed.Graph().HasEdge("v2_to_v1"))
}

func TestConnectUnidirectional(t *testing.T) {
	ed, store := session(t, "v1", "v2")
	ed.ToggleBidirectional()
	ed.ToggleConnectMode()

	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))

	require.Len(t, store.insertedEdges, 1)
	assert.True(t, ed.Graph().HasEdge("v1_to_v2"))
	assert.False(t, ed.Graph().HasEdge("v2_to_v1"))
}

func TestConnectSelfLoopRejected(t *testing.T) {
	ed, store := session(t, "v1")
	ed.ToggleConnectMode()

	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))

	// Still waiting for a second endpoint, nothing persisted.
	assert.Equal(t, ModeConnectAwaitingSecond, ed.Mode())
	assert.Empty(t, store.insertedEdges)
}

func TestConnectDuplicateSuppressed(t *testing.T) {
	ed, store := session(t, "v1", "v2")
	ed.ToggleConnectMode()

	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))
	require.Len(t, store.insertedEdges, 2)

	// Same pair again, and again in reverse order: zero new edges.
	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))

	assert.Len(t, store.insertedEdges, 2)
	assert.Len(t, ed.Graph().Edges(), 2)
}

func TestConnectReverseFailureKeepsLocalStateClean(t *testing.T) {
	ed, store := session(t, "v1", "v2")
	store.failInsertEdgeAfter = 2
	ed.ToggleConnectMode()

	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	err := ed.ClickVertex(context.Background(), "v2")
	require.ErrorIs(t, err, errBackend)

	// The backend kept the forward edge (no compensation), but locally
	// neither direction appears.
	assert.Len(t, store.insertedEdges, 1)
	assert.Empty(t, ed.Graph().Edges())

	// The editor stays interactive in connect mode.
	assert.Equal(t, ModeConnectAwaitingFirst, ed.Mode())
}

func TestSaveNamePersistsThenApplies(t *testing.T) {
	ed, store := session(t, "v1")

	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	assert.Equal(t, ModeEditingName, ed.Mode())

	require.NoError(t, ed.SaveName(context.Background(), "Checkout"))
	assert.Equal(t, ModeIdle, ed.Mode())

	require.Len(t, store.updatedVertices, 1)
	require.NotNil(t, store.updatedVertices[0].ObjectName)
	assert.Equal(t, "Checkout", *store.updatedVertices[0].ObjectName)

	v, _ := ed.Graph().FindVertex("v1")
	require.NotNil(t, v.ObjectName)
	assert.Equal(t, "Checkout", *v.ObjectName)
}

func TestSaveNameBlankStoresNull(t *testing.T) {
	ed, store := session(t, "v1")
	require.NoError(t, ed.Graph().RenameVertex("v1", "Old"))

	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	require.NoError(t, ed.SaveName(context.Background(), ""))

	require.Len(t, store.updatedVertices, 1)
	assert.Nil(t, store.updatedVertices[0].ObjectName)
	v, _ := ed.Graph().FindVertex("v1")
	assert.Nil(t, v.ObjectName)
}

func TestDeleteSelectedVertexCascades(t *testing.T) {
	ed, store := session(t, "v1", "v2", "v3")
	ed.ToggleConnectMode()
	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v3"))
	ed.ToggleConnectMode()

	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))
	require.NoError(t, ed.DeleteSelected(context.Background()))

	assert.Equal(t, ModeIdle, ed.Mode())
	assert.Equal(t, []string{"v2"}, store.deletedVertices)
	assert.ElementsMatch(t,
		[]string{"v1_to_v2", "v2_to_v1", "v2_to_v3", "v3_to_v2"},
		store.deletedEdges)

	_, ok := ed.Graph().FindVertex("v2")
	assert.False(t, ok)
	assert.Empty(t, ed.Graph().Edges())
}

func TestDeleteSelectedEdgeOnly(t *testing.T) {
	ed, store := session(t, "v1", "v2")
	ed.ToggleConnectMode()
	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	require.NoError(t, ed.ClickVertex(context.Background(), "v2"))
	ed.ToggleConnectMode()

	ed.SelectEdge("v1_to_v2")
	require.NoError(t, ed.DeleteSelected(context.Background()))

	assert.Equal(t, []string{"v1_to_v2"}, store.deletedEdges)
	assert.False(t, ed.Graph().HasEdge("v1_to_v2"))
	assert.True(t, ed.Graph().HasEdge("v2_to_v1"))
	// Vertices are untouched.
	assert.Len(t, ed.Graph().Vertices(), 2)
}

func TestToggleConnectModeDropsPendingEndpoint(t *testing.T) {
	ed, _ := session(t, "v1")
	ed.ToggleConnectMode()
	require.NoError(t, ed.ClickVertex(context.Background(), "v1"))
	assert.Equal(t, ModeConnectAwaitingSecond, ed.Mode())

	ed.ToggleConnectMode()
	assert.Equal(t, ModeIdle, ed.Mode())

	ed.ToggleConnectMode()
	assert.Equal(t, ModeConnectAwaitingFirst, ed.Mode())
}
