// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session holds the bearer token for the current watcher session.
// It mirrors the dashboard's two-tier storage: a session-scoped token held
// in memory, and an optional remember-me token persisted to the durable
// store so a restart can resume without re-authenticating. A 401 from the
// API tears both down and notifies registered listeners.
package session

import (
	"log/slog"
	"sync"
)

// TokenStore is the durable side of the session. stickystore.Store
// satisfies it.
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// Manager owns the session token. Safe for concurrent use; the API client's
// transport reads it from request goroutines.
type Manager struct {
	mu         sync.Mutex
	token      string
	store      TokenStore
	onTeardown []func()
}

// NewManager builds a manager, restoring a remembered token from the store
// when one exists. store may be nil for purely in-memory sessions.
func NewManager(store TokenStore) *Manager {
	m := &Manager{store: store}
	if store != nil {
		tok, err := store.LoadToken()
		if err != nil {
			slog.Warn("remembered token load failed", "error", err)
		} else {
			m.token = tok
		}
	}
	return m
}

// SetToken installs the session token. With remember set, the token is also
// persisted so the next run starts authenticated; persistence is
// best-effort.
func (m *Manager) SetToken(token string, remember bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token

	if m.store == nil {
		return
	}
	if remember {
		if err := m.store.SaveToken(token); err != nil {
			slog.Warn("token persist failed", "error", err)
		}
	} else if err := m.store.ClearToken(); err != nil {
		slog.Warn("token clear failed", "error", err)
	}
}

// Token returns the current session token, or "" after teardown.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// OnTeardown registers a callback fired when the session is torn down.
// The dashboard's analogue is the redirect to the login view.
func (m *Manager) OnTeardown(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTeardown = append(m.onTeardown, fn)
}

// Teardown clears the token from memory and from the durable store, then
// fires the registered callbacks. Called by the transport on a 401.
func (m *Manager) Teardown() {
	m.mu.Lock()
	m.token = ""
	if m.store != nil {
		if err := m.store.ClearToken(); err != nil {
			slog.Warn("token clear failed during teardown", "error", err)
		}
	}
	callbacks := append([]func(){}, m.onTeardown...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
