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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_IssueAndLookup(t *testing.T) {
	registry := NewSessionRegistry()

	s := registry.Issue()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, ModeCustomer, s.Mode())

	found, ok := registry.Lookup(s.ID)
	require.True(t, ok)
	assert.Same(t, s, found)

	_, ok = registry.Lookup("never-issued")
	assert.False(t, ok)
}

func TestSessionRegistry_Remove(t *testing.T) {
	registry := NewSessionRegistry()
	s := registry.Issue()

	registry.Remove(s.ID)

	_, ok := registry.Lookup(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestChatSession_EnterAdminModeIsOneWayAndOnce(t *testing.T) {
	s := NewSessionRegistry().Issue()

	assert.True(t, s.EnterAdminMode(), "first transition performs the flip")
	assert.Equal(t, ModeAdmin, s.Mode())
	assert.False(t, s.EnterAdminMode(), "second transition is a no-op")
	assert.Equal(t, ModeAdmin, s.Mode())
}

func TestChatSession_AttachSingleConnection(t *testing.T) {
	s := NewSessionRegistry().Issue()

	assert.True(t, s.Attach())
	assert.False(t, s.Attach(), "second attach is rejected")

	s.Detach()
	assert.True(t, s.Attach(), "slot is reusable after detach")
}

func TestChatSession_HistoryIsOrderedCopy(t *testing.T) {
	s := NewSessionRegistry().Issue()
	s.Append(NewMessage(s.ID, SenderUser, "first"))
	s.Append(NewMessage(s.ID, SenderViolet, "second"))

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[1].Content)

	// Mutating the copy must not touch the transcript.
	history[0].Content = "mutated"
	assert.Equal(t, "first", s.History()[0].Content)
}

func TestChatSession_ConcurrentAppends(t *testing.T) {
	s := NewSessionRegistry().Issue()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(NewMessage(s.ID, SenderUser, "hi"))
		}()
	}
	wg.Wait()

	assert.Len(t, s.History(), 50)
}
