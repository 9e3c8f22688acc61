package session

import (
	"context"
	"sync"
)

// Listener receives auth state changes. Events are delivered asynchronously
// and can fire at any time after process start, including before the
// application finished booting.
type Listener func(ctx context.Context, event EventType, session *Session)

type Manager struct {
	store Store

	mu        sync.RWMutex
	current   *Session
	listeners []Listener
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) OnAuthStateChange(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Recover loads the persisted session without firing any event. It returns
// nil for a guest.
func (m *Manager) Recover() (*Session, error) {
	session, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	return session, nil
}

func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) SignIn(ctx context.Context, session *Session) error {
	if err := m.store.Save(session); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	m.dispatch(ctx, SignedIn, session)
	return nil
}

func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.store.Clear(); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	m.dispatch(ctx, SignedOut, nil)
	return nil
}

// Refresh replaces the access token of the current session, keeping the
// identity untouched.
func (m *Manager) Refresh(ctx context.Context, accessToken string) error {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}

	refreshed := *m.current
	refreshed.AccessToken = accessToken
	m.current = &refreshed
	m.mu.Unlock()

	if err := m.store.Save(&refreshed); err != nil {
		return err
	}

	m.dispatch(ctx, TokenRefreshed, &refreshed)
	return nil
}

func (m *Manager) dispatch(ctx context.Context, event EventType, session *Session) {
	m.mu.RLock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, l := range listeners {
		go l(ctx, event, session)
	}
}
