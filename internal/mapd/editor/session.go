package editor

import (
	"context"
	"sync"

	"smartcart/internal/mapd/graph"
	"smartcart/internal/mapd/models"
)

// ============================================================
// Session Manager
// ============================================================

// FloorLoader fetches a floor with its persisted graph.
type FloorLoader interface {
	GetFloor(ctx context.Context, id int) (models.Floor, error)
}

// SessionManager keeps one authoring session per floor. Sessions are
// created lazily from the persisted graph and live until closed.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[int]*Editor
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[int]*Editor),
	}
}

// Session returns the floor's editor, loading its graph on first use.
func (m *SessionManager) Session(ctx context.Context, floorID int, loader FloorLoader, store Persistence) (*Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ed, ok := m.sessions[floorID]; ok {
		return ed, nil
	}

	f, err := loader.GetFloor(ctx, floorID)
	if err != nil {
		return nil, err
	}
	g, err := graph.Load(floorID, f.GraphData)
	if err != nil {
		return nil, err
	}

	ed := New(g, store)
	m.sessions[floorID] = ed
	return ed, nil
}

// Close drops the floor's session, forcing a reload on next use.
func (m *SessionManager) Close(floorID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, floorID)
}
