package pos

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/shared"
)

// SessionService owns the session registry: the set of open customer
// sessions and which of them is active. All mutations are persisted to
// the session store before they return, so a terminal restart picks up
// exactly where it left off.
type SessionService struct {
	mu       sync.RWMutex
	store    pos.SessionStore
	sessions []*pos.CustomerSession
	activeID *uuid.UUID
}

// NewSessionService creates a session service backed by the given store
func NewSessionService(store pos.SessionStore) *SessionService {
	return &SessionService{
		store:    store,
		sessions: make([]*pos.CustomerSession, 0),
	}
}

// Restore loads the last persisted registry snapshot. Call once at startup.
func (s *SessionService) Restore(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make([]*pos.CustomerSession, 0, len(snapshot.Sessions))
	s.sessions = append(s.sessions, snapshot.Sessions...)
	s.activeID = nil
	if snapshot.ActiveSessionID != nil {
		for _, session := range s.sessions {
			if session.ID == *snapshot.ActiveSessionID {
				id := session.ID
				s.activeID = &id
				break
			}
		}
	}
	return nil
}

// Start opens a new session and makes it the active one
func (s *SessionService) Start(ctx context.Context, req StartSessionRequest) (*SessionResponse, error) {
	session, err := pos.NewCustomerSession(req.CustomerName)
	if err != nil {
		return nil, err
	}
	session.ClearDomainEvents()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)
	id := session.ID
	s.activeID = &id

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	response := ToSessionResponse(session, true)
	return &response, nil
}

// End closes a session. When the active session ends and other sessions
// remain open, the first remaining one becomes active.
func (s *SessionService) End(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, session := range s.sessions {
		if session.ID == sessionID {
			index = i
			break
		}
	}
	if index < 0 {
		return shared.NewDomainError("SESSION_NOT_FOUND", "No session exists with this ID")
	}

	s.sessions = append(s.sessions[:index], s.sessions[index+1:]...)

	if s.activeID != nil && *s.activeID == sessionID {
		s.activeID = nil
		if len(s.sessions) > 0 {
			id := s.sessions[0].ID
			s.activeID = &id
		}
	}

	return s.persistLocked(ctx)
}

// SetActive switches which open session receives scans
func (s *SessionService) SetActive(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		if session.ID == sessionID {
			id := session.ID
			s.activeID = &id
			return s.persistLocked(ctx)
		}
	}
	return shared.NewDomainError("SESSION_NOT_FOUND", "No session exists with this ID")
}

// GetActive returns the active session view
func (s *SessionService) GetActive(ctx context.Context) (*SessionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.activeLocked()
	if session == nil {
		return nil, shared.ErrNoActiveSession
	}
	response := ToSessionResponse(session, true)
	return &response, nil
}

// List returns all open sessions in creation order
func (s *SessionService) List(ctx context.Context) (*RegistryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	response := &RegistryResponse{
		Sessions:        make([]SessionResponse, 0, len(s.sessions)),
		ActiveSessionID: s.activeID,
	}
	for _, session := range s.sessions {
		active := s.activeID != nil && *s.activeID == session.ID
		response.Sessions = append(response.Sessions, ToSessionResponse(session, active))
	}
	return response, nil
}

// AddItemToActive puts a resolved item into the active session's cart
func (s *SessionService) AddItemToActive(ctx context.Context, item pos.ResolvedItem) (*SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.activeLocked()
	if session == nil {
		return nil, shared.ErrNoActiveSession
	}

	session.AddItem(item)
	session.ClearDomainEvents()

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	response := ToSessionResponse(session, true)
	return &response, nil
}

// RemoveItemFromActive removes a whole cart line from the active session
func (s *SessionService) RemoveItemFromActive(ctx context.Context, productID string) (*SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.activeLocked()
	if session == nil {
		return nil, shared.ErrNoActiveSession
	}

	if err := session.RemoveItem(productID); err != nil {
		return nil, err
	}
	session.ClearDomainEvents()

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	response := ToSessionResponse(session, true)
	return &response, nil
}

// ActiveSession returns the active session aggregate for checkout.
// Callers must not mutate the returned session directly.
func (s *SessionService) ActiveSession() (*pos.CustomerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.activeLocked()
	if session == nil {
		return nil, shared.ErrNoActiveSession
	}
	return session, nil
}

// HasActive reports whether any session is currently active
func (s *SessionService) HasActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked() != nil
}

func (s *SessionService) activeLocked() *pos.CustomerSession {
	if s.activeID == nil {
		return nil
	}
	for _, session := range s.sessions {
		if session.ID == *s.activeID {
			return session
		}
	}
	return nil
}

func (s *SessionService) persistLocked(ctx context.Context) error {
	snapshot := &pos.RegistrySnapshot{
		Sessions:        s.sessions,
		ActiveSessionID: s.activeID,
	}
	return s.store.Save(ctx, snapshot)
}
