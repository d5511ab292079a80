package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"smartcart/internal/mapd/models"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "map.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background(), "../../../migrations/001_init_map.sql"))
	return repo
}

func seedFloor(t *testing.T, repo *Repository) {
	t.Helper()
	require.NoError(t, repo.InsertFloor(context.Background(), models.Floor{
		ID:        1,
		Name:      "Ground Floor",
		ShortName: "G",
		SVGPath:   "http://localhost:3003/maps/floor-1/plan.svg",
		SVGObject: "floor-1/plan.svg",
	}))
}

func TestGetFloorAssemblesGraph(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	seedFloor(t, repo)

	name := "Dairy"
	require.NoError(t, repo.InsertVertex(ctx, models.Vertex{ID: "v1", FloorID: 1, CX: 10, CY: 20}))
	require.NoError(t, repo.InsertVertex(ctx, models.Vertex{ID: "v2", FloorID: 1, ObjectName: &name, CX: 30, CY: 40}))
	require.NoError(t, repo.InsertEdge(ctx, models.Edge{ID: "v1_to_v2", FloorID: 1, From: "v1", To: "v2"}))

	f, err := repo.GetFloor(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "Ground Floor", f.Name)
	require.Len(t, f.GraphData.Vertices, 2)
	assert.Nil(t, f.GraphData.Vertices[0].ObjectName)
	require.NotNil(t, f.GraphData.Vertices[1].ObjectName)
	assert.Equal(t, "Dairy", *f.GraphData.Vertices[1].ObjectName)
	require.Len(t, f.GraphData.Edges, 1)
	assert.Equal(t, "v1", f.GraphData.Edges[0].From)
}

func TestGetFloorNotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetFloor(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestVertexScopedByFloor(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	seedFloor(t, repo)
	require.NoError(t, repo.InsertFloor(ctx, models.Floor{ID: 2, Name: "First Floor"}))

	// Same vertex id on two floors is two rows.
	require.NoError(t, repo.InsertVertex(ctx, models.Vertex{ID: "v1", FloorID: 1, CX: 1, CY: 1}))
	require.NoError(t, repo.InsertVertex(ctx, models.Vertex{ID: "v1", FloorID: 2, CX: 2, CY: 2}))

	require.NoError(t, repo.DeleteVertex(ctx, 1, "v1"))

	f1, err := repo.GetFloor(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, f1.GraphData.Vertices)

	f2, err := repo.GetFloor(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, f2.GraphData.Vertices, 1)
}

func TestUpdateVertexName(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	seedFloor(t, repo)
	require.NoError(t, repo.InsertVertex(ctx, models.Vertex{ID: "v1", FloorID: 1, CX: 1, CY: 1}))

	name := "Bakery"
	require.NoError(t, repo.UpdateVertex(ctx, models.Vertex{ID: "v1", FloorID: 1, ObjectName: &name, CX: 1, CY: 1}))

	f, err := repo.GetFloor(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, f.GraphData.Vertices[0].ObjectName)
	assert.Equal(t, "Bakery", *f.GraphData.Vertices[0].ObjectName)

	// Clearing goes back to NULL.
	require.NoError(t, repo.UpdateVertex(ctx, models.Vertex{ID: "v1", FloorID: 1, CX: 1, CY: 1}))
	f, err = repo.GetFloor(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, f.GraphData.Vertices[0].ObjectName)

	err = repo.UpdateVertex(ctx, models.Vertex{ID: "missing", FloorID: 1})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteFloorCascades(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	seedFloor(t, repo)
	require.NoError(t, repo.InsertVertex(ctx, models.Vertex{ID: "v1", FloorID: 1, CX: 1, CY: 1}))
	require.NoError(t, repo.InsertVertex(ctx, models.Vertex{ID: "v2", FloorID: 1, CX: 2, CY: 2}))
	require.NoError(t, repo.InsertEdge(ctx, models.Edge{ID: "v1_to_v2", FloorID: 1, From: "v1", To: "v2"}))

	obj, err := repo.DeleteFloor(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "floor-1/plan.svg", obj)

	_, err = repo.GetFloor(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	floors, err := repo.ListFloors(ctx)
	require.NoError(t, err)
	assert.Empty(t, floors)
}

func TestListFloors(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	seedFloor(t, repo)
	require.NoError(t, repo.InsertFloor(ctx, models.Floor{ID: 2, Name: "First Floor", ShortName: "1"}))

	floors, err := repo.ListFloors(ctx)
	require.NoError(t, err)
	require.Len(t, floors, 2)
	assert.Equal(t, []int{1, 2}, []int{floors[0].ID, floors[1].ID})
}
