// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionMode is the conversational mode of a session.
type SessionMode string

const (
	ModeCustomer SessionMode = "customer"
	ModeAdmin    SessionMode = "admin"
)

// ChatSession is the owned, mutable state of one conversation: mode and
// transcript. The websocket connection only holds a reference to it, so
// transport lifetime and business-state lifetime stay independent.
//
// All methods are safe for concurrent use. The internal mutex is held
// only for the read/copy/append itself, never across a backend call.
type ChatSession struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	mode       SessionMode
	transcript []Message
	attached   bool
}

// Mode returns the current session mode.
func (s *ChatSession) Mode() SessionMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// EnterAdminMode flips the session from customer to admin mode.
//
// The transition is one-way and happens at most once; the return value
// reports whether this call performed it.
func (s *ChatSession) EnterAdminMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeAdmin {
		return false
	}
	s.mode = ModeAdmin
	return true
}

// Append adds a message to the transcript. Insertion order is the
// relevance order used for history windows.
func (s *ChatSession) Append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, m)
}

// History returns a copy of the full transcript in insertion order.
func (s *ChatSession) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Attach claims the session's single connection slot. It returns false
// if another live connection already holds it; a second join against a
// live session is rejected, not replaced.
func (s *ChatSession) Attach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return false
	}
	s.attached = true
	return true
}

// Detach releases the connection slot.
func (s *ChatSession) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
}

// SessionRegistry issues session ids and owns the live sessions, indexed
// by id. A join is only valid for an id this registry issued.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*ChatSession
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*ChatSession)}
}

// Issue creates a new customer-mode session with a server-generated id.
func (r *SessionRegistry) Issue() *ChatSession {
	s := &ChatSession{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		mode:      ModeCustomer,
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Lookup returns the session for an issued id.
func (r *SessionRegistry) Lookup(id string) (*ChatSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove drops a session. Called when its connection closes; the
// transcript and mode are discarded with it.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
