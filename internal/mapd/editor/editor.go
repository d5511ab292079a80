package editor

import (
	"context"
	"fmt"
	"math"

	"smartcart/internal/mapd/graph"
	"smartcart/internal/mapd/models"
)

// ============================================================
// Authoring state machine
// ============================================================

// Persistence is the backend the editor writes through. Local graph
// state only changes after the matching call here succeeds.
type Persistence interface {
	InsertVertex(ctx context.Context, v models.Vertex) error
	UpdateVertex(ctx context.Context, v models.Vertex) error
	DeleteVertex(ctx context.Context, floorID int, vertexID string) error
	InsertEdge(ctx context.Context, e models.Edge) error
	DeleteEdge(ctx context.Context, floorID int, edgeID string) error
}

// Mode is the editor's interaction mode, a single state value
// instead of scattered boolean flags.
type Mode int

const (
	// ModeIdle: canvas clicks place vertices, vertex clicks open the
	// name editor.
	ModeIdle Mode = iota
	// ModeConnectAwaitingFirst: the next vertex click picks the first
	// endpoint of a connection.
	ModeConnectAwaitingFirst
	// ModeConnectAwaitingSecond: the next vertex click picks the second
	// endpoint and creates the connection.
	ModeConnectAwaitingSecond
	// ModeEditingName: a vertex name editor is open.
	ModeEditingName
)

// Editor drives a single floor's authoring session over its Graph
// Store. Single-editor assumption: no locking against concurrent
// sessions.
type Editor struct {
	graph *graph.Graph
	store Persistence

	mode           Mode
	connectFrom    string
	editing        string
	selectedVertex string
	selectedEdge   string
	bidirectional  bool
}

// New opens an authoring session. Bidirectional connection creation
// starts enabled.
func New(g *graph.Graph, store Persistence) *Editor {
	return &Editor{
		graph:         g,
		store:         store,
		bidirectional: true,
	}
}

func (ed *Editor) Graph() *graph.Graph { return ed.graph }
func (ed *Editor) Mode() Mode          { return ed.mode }
func (ed *Editor) Bidirectional() bool { return ed.bidirectional }
func (ed *Editor) Editing() string     { return ed.editing }

// ============================================================
// Toggles and selection
// ============================================================

// ToggleConnectMode switches between placing vertices and drawing
// connections. Entering or leaving connect mode always drops a pending
// first endpoint.
func (ed *Editor) ToggleConnectMode() {
	ed.connectFrom = ""
	if ed.mode == ModeConnectAwaitingFirst || ed.mode == ModeConnectAwaitingSecond {
		ed.mode = ModeIdle
		return
	}
	ed.mode = ModeConnectAwaitingFirst
	ed.editing = ""
}

// ToggleBidirectional flips whether new connections get a reverse edge.
func (ed *Editor) ToggleBidirectional() {
	ed.bidirectional = !ed.bidirectional
}

// SelectEdge marks a connection for deletion.
func (ed *Editor) SelectEdge(id string) {
	if !ed.graph.HasEdge(id) {
		return
	}
	ed.selectedEdge = id
	ed.selectedVertex = ""
}

// ============================================================
// Events
// ============================================================

// ClickCanvas places a new vertex at the clicked floor coordinate and
// opens its name editor. Outside idle mode this is a no-op.
func (ed *Editor) ClickCanvas(ctx context.Context, cx, cy float64) (models.Vertex, error) {
	if ed.mode != ModeIdle {
		return models.Vertex{}, nil
	}

	v := models.Vertex{
		ID:      ed.graph.NextVertexID(),
		FloorID: ed.graph.FloorID(),
		CX:      math.Round(cx),
		CY:      math.Round(cy),
	}

	if err := ed.store.InsertVertex(ctx, v); err != nil {
		return models.Vertex{}, fmt.Errorf("save point: %w", err)
	}
	if err := ed.graph.AddVertex(v); err != nil {
		return models.Vertex{}, err
	}

	ed.mode = ModeEditingName
	ed.editing = v.ID
	ed.selectedVertex = v.ID
	ed.selectedEdge = ""
	return v, nil
}

// ClickVertex handles a click on an existing vertex. In connect mode it
// records or completes a connection; otherwise it selects the vertex
// and opens its name editor.
func (ed *Editor) ClickVertex(ctx context.Context, id string) error {
	if _, ok := ed.graph.FindVertex(id); !ok {
		return models.ErrNotFound
	}

	switch ed.mode {
	case ModeConnectAwaitingFirst:
		ed.connectFrom = id
		ed.mode = ModeConnectAwaitingSecond
		return nil

	case ModeConnectAwaitingSecond:
		if id == ed.connectFrom {
			// Self-loops are rejected; keep waiting for a second endpoint.
			return nil
		}
		err := ed.connect(ctx, ed.connectFrom, id)
		ed.connectFrom = ""
		ed.mode = ModeConnectAwaitingFirst
		return err

	default:
		v, _ := ed.graph.FindVertex(id)
		ed.selectedVertex = v.ID
		ed.selectedEdge = ""
		ed.editing = v.ID
		ed.mode = ModeEditingName
		return nil
	}
}

// connect creates the directed edge(s) between two endpoints. An
// existing connection in either direction suppresses creation. With
// bidirectional on, the reverse call is issued only after the forward
// one succeeds, and local state updates only after both; if the
// reverse call fails the backend keeps the forward edge alone. That
// inconsistency is accepted and fixed manually, not rolled back.
func (ed *Editor) connect(ctx context.Context, from, to string) error {
	if ed.graph.IsConnected(from, to) {
		return nil
	}

	forward := models.Edge{
		ID:      models.EdgeID(from, to),
		FloorID: ed.graph.FloorID(),
		From:    from,
		To:      to,
	}
	pending := []models.Edge{forward}
	if ed.bidirectional {
		pending = append(pending, forward.Reverse())
	}

	for _, e := range pending {
		if err := ed.store.InsertEdge(ctx, e); err != nil {
			return fmt.Errorf("save connection %s: %w", e.ID, err)
		}
	}
	for _, e := range pending {
		if err := ed.graph.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}

// SaveName persists the pending vertex name and closes the editor.
// Blank names are stored as null.
func (ed *Editor) SaveName(ctx context.Context, name string) error {
	if ed.mode != ModeEditingName || ed.editing == "" {
		return nil
	}

	v, ok := ed.graph.FindVertex(ed.editing)
	if !ok {
		return models.ErrNotFound
	}
	v.ObjectName = models.NameOrNil(name)

	if err := ed.store.UpdateVertex(ctx, v); err != nil {
		return fmt.Errorf("update point: %w", err)
	}
	if err := ed.graph.RenameVertex(v.ID, name); err != nil {
		return err
	}

	ed.mode = ModeIdle
	ed.editing = ""
	return nil
}

// CancelEdit closes the name editor without saving.
func (ed *Editor) CancelEdit() {
	if ed.mode == ModeEditingName {
		ed.mode = ModeIdle
	}
	ed.editing = ""
}

// DeleteSelected removes the selected vertex (cascading its edges) or
// the selected edge, and returns the editor to idle from any state.
func (ed *Editor) DeleteSelected(ctx context.Context) error {
	defer func() {
		ed.mode = ModeIdle
		ed.connectFrom = ""
		ed.editing = ""
		ed.selectedVertex = ""
		ed.selectedEdge = ""
	}()

	floorID := ed.graph.FloorID()

	switch {
	case ed.selectedVertex != "":
		if err := ed.store.DeleteVertex(ctx, floorID, ed.selectedVertex); err != nil {
			return fmt.Errorf("delete point: %w", err)
		}
		// Cascade the referencing edges through the backend, then locally.
		for _, edgeID := range ed.graph.ReferencingEdgeIDs(ed.selectedVertex) {
			if err := ed.store.DeleteEdge(ctx, floorID, edgeID); err != nil {
				return fmt.Errorf("delete connection %s: %w", edgeID, err)
			}
		}
		ed.graph.RemoveVertex(ed.selectedVertex)
		return nil

	case ed.selectedEdge != "":
		if err := ed.store.DeleteEdge(ctx, floorID, ed.selectedEdge); err != nil {
			return fmt.Errorf("delete connection: %w", err)
		}
		ed.graph.RemoveEdge(ed.selectedEdge)
		return nil
	}
	return nil
}
