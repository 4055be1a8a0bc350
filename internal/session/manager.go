package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager holds one State per active session. Sessions are fully
// independent; the manager only serializes access to its own map.
type Manager struct {
	mu                sync.RWMutex
	states            map[string]*State
	preserveApplicant bool
	logger            *zap.Logger
}

// NewManager creates a new session manager
func NewManager(preserveApplicant bool, logger *zap.Logger) *Manager {
	return &Manager{
		states:            make(map[string]*State),
		preserveApplicant: preserveApplicant,
		logger:            logger,
	}
}

// Open creates a new empty session and returns its ID
func (m *Manager) Open() (string, *State) {
	id := uuid.NewString()
	state := NewState(m.preserveApplicant)

	m.mu.Lock()
	m.states[id] = state
	m.mu.Unlock()

	m.logger.Info("Session opened", zap.String("session_id", id))
	return id, state
}

// Get returns the state for a session ID
func (m *Manager) Get(id string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[id]
	if !ok {
		return nil, ErrNotFound
	}
	return state, nil
}

// Close discards a session. Abandoning an unsent submission has no side
// effects to roll back.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.states, id)
	m.mu.Unlock()

	m.logger.Info("Session closed", zap.String("session_id", id))
}
