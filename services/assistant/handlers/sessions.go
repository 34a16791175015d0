// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/shopglow/services/assistant/datatypes"
)

// CreateSessionResponse is the body returned by the session-creation
// endpoint. The id is what the client presents in its join event.
type CreateSessionResponse struct {
	SessionID string    `json:"sessionId"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateChatSession issues a new chat session id.
func CreateChatSession(registry *datatypes.SessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := registry.Issue()
		slog.Info("Created new chat session", "sessionId", s.ID)
		c.JSON(http.StatusCreated, CreateSessionResponse{
			SessionID: s.ID,
			Mode:      string(s.Mode()),
			CreatedAt: s.CreatedAt,
		})
	}
}
