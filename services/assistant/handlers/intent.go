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

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/shopglow/services/assistant/observability"
	"github.com/AleutianAI/shopglow/services/violet"
)

// IntentRequest is the body for intent classification.
type IntentRequest struct {
	Message string `json:"message"`
}

// HandleIntentAnalysis classifies a customer message into an intent
// with extracted entities and a confidence score. Classification always
// answers 200: backend problems degrade to the default intent.
func HandleIntentAnalysis(responder *violet.Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IntentRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("Failed to parse the intent request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no message provided"})
			return
		}

		result := responder.ClassifyIntent(c.Request.Context(), req.Message)
		if m := observability.DefaultMetrics; m != nil {
			m.IntentRequestsTotal.WithLabelValues(result.Intent).Inc()
		}
		c.JSON(http.StatusOK, result)
	}
}
