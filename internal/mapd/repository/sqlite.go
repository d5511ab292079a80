package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"smartcart/internal/mapd/models"
)

// ============================================================
// SQLite Repository
// ============================================================

// Repository persists floors, vertices (points) and edges. It is the
// durability side of the Graph Store: the editor writes here first and
// mutates its in-memory graph only after a call succeeds.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init runs the schema migration.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// ============================================================
// Floors
// ============================================================

const floorColumns = "id, name, short_name, description, svg_path, svg_object, width, height"

func scanFloor(row interface{ Scan(...any) error }) (models.Floor, error) {
	var f models.Floor
	err := row.Scan(&f.ID, &f.Name, &f.ShortName, &f.Description,
		&f.SVGPath, &f.SVGObject, &f.Width, &f.Height)
	return f, err
}

// GetFloor assembles one floor record with its full graph.
func (r *Repository) GetFloor(ctx context.Context, id int) (models.Floor, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+floorColumns+" FROM floors WHERE id = ?", id)

	f, err := scanFloor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Floor{}, models.ErrNotFound
		}
		return models.Floor{}, err
	}

	f.GraphData.Vertices, err = r.floorVertices(ctx, id)
	if err != nil {
		return models.Floor{}, err
	}
	f.GraphData.Edges, err = r.floorEdges(ctx, id)
	if err != nil {
		return models.Floor{}, err
	}
	return f, nil
}

// ListFloors returns floor metadata without graph data.
func (r *Repository) ListFloors(ctx context.Context) ([]models.Floor, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+floorColumns+" FROM floors ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	floors := []models.Floor{}
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		floors = append(floors, f)
	}
	return floors, rows.Err()
}

func (r *Repository) InsertFloor(ctx context.Context, f models.Floor) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO floors (id, name, short_name, description, svg_path, svg_object, width, height)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, f.ID, f.Name, f.ShortName, f.Description, f.SVGPath, f.SVGObject, f.Width, f.Height)
	if err != nil {
		return fmt.Errorf("insert floor: %w", err)
	}
	return nil
}

func (r *Repository) UpdateFloor(ctx context.Context, f models.Floor) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE floors
        SET name = ?, short_name = ?, description = ?, svg_path = ?, svg_object = ?, width = ?, height = ?
        WHERE id = ?
    `, f.Name, f.ShortName, f.Description, f.SVGPath, f.SVGObject, f.Width, f.Height, f.ID)
	if err != nil {
		return fmt.Errorf("update floor: %w", err)
	}
	return requireRows(res)
}

// DeleteFloor removes the floor and cascades its vertices and edges in
// one transaction. Returns the floor's stored image object so the
// caller can clean it up; graph data and the image have independent
// lifecycles everywhere else.
func (r *Repository) DeleteFloor(ctx context.Context, id int) (string, error) {
	f, err := r.GetFloor(ctx, id)
	if err != nil {
		return "", err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM edges WHERE floor_id = ?",
		"DELETE FROM vertices WHERE floor_id = ?",
		"DELETE FROM floors WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return "", fmt.Errorf("delete floor %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return f.SVGObject, nil
}

// ============================================================
// Vertices
// ============================================================

func (r *Repository) floorVertices(ctx context.Context, floorID int) ([]models.Vertex, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, floor_id, object_name, cx, cy
        FROM vertices WHERE floor_id = ? ORDER BY id
    `, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vertices := []models.Vertex{}
	for rows.Next() {
		var v models.Vertex
		if err := rows.Scan(&v.ID, &v.FloorID, &v.ObjectName, &v.CX, &v.CY); err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}
	return vertices, rows.Err()
}

func (r *Repository) InsertVertex(ctx context.Context, v models.Vertex) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO vertices (id, floor_id, object_name, cx, cy)
        VALUES (?, ?, ?, ?, ?)
    `, v.ID, v.FloorID, v.ObjectName, v.CX, v.CY)
	if err != nil {
		return fmt.Errorf("insert vertex: %w", err)
	}
	return nil
}

func (r *Repository) UpdateVertex(ctx context.Context, v models.Vertex) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE vertices SET object_name = ?, cx = ?, cy = ?
        WHERE id = ? AND floor_id = ?
    `, v.ObjectName, v.CX, v.CY, v.ID, v.FloorID)
	if err != nil {
		return fmt.Errorf("update vertex: %w", err)
	}
	return requireRows(res)
}

func (r *Repository) DeleteVertex(ctx context.Context, floorID int, vertexID string) error {
	_, err := r.db.ExecContext(ctx, `
        DELETE FROM vertices WHERE id = ? AND floor_id = ?
    `, vertexID, floorID)
	if err != nil {
		return fmt.Errorf("delete vertex: %w", err)
	}
	return nil
}

// ============================================================
// Edges
// ============================================================

func (r *Repository) floorEdges(ctx context.Context, floorID int) ([]models.Edge, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, floor_id, from_id, to_id
        FROM edges WHERE floor_id = ? ORDER BY id
    `, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	edges := []models.Edge{}
	for rows.Next() {
		var e models.Edge
		if err := rows.Scan(&e.ID, &e.FloorID, &e.From, &e.To); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func (r *Repository) InsertEdge(ctx context.Context, e models.Edge) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO edges (id, floor_id, from_id, to_id)
        VALUES (?, ?, ?, ?)
    `, e.ID, e.FloorID, e.From, e.To)
	if err != nil {
		return fmt.Errorf("insert edge: %w", err)
	}
	return nil
}

func (r *Repository) DeleteEdge(ctx context.Context, floorID int, edgeID string) error {
	_, err := r.db.ExecContext(ctx, `
        DELETE FROM edges WHERE id = ? AND floor_id = ?
    `, edgeID, floorID)
	if err != nil {
		return fmt.Errorf("delete edge: %w", err)
	}
	return nil
}

// ============================================================
// Helpers
// ============================================================

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// OpenSQLite opens the map database at the given path, creating the
// parent directory when needed.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
