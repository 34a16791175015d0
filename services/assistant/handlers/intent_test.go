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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/shopglow/services/llm"
	"github.com/AleutianAI/shopglow/services/violet"
)

func newIntentRouter(client llm.LLMClient) *gin.Engine {
	responder := violet.NewResponder(client, violet.NewContextAssembler(nil))
	router := gin.New()
	router.POST("/v1/chat/intent", HandleIntentAnalysis(responder))
	return router
}

func postIntent(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/intent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleIntentAnalysis_ClassifiesMessage(t *testing.T) {
	router := newIntentRouter(&mockLLMClient{
		ChatResponse: `{"intent":"product_search","entities":["serum"],"confidence":0.9}`,
	})

	w := postIntent(router, `{"message":"do you sell face serum?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result violet.IntentResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, violet.IntentProductSearch, result.Intent)
	assert.Equal(t, []string{"serum"}, result.Entities)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestHandleIntentAnalysis_NoBackendDefaults(t *testing.T) {
	router := newIntentRouter(nil)

	w := postIntent(router, `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result violet.IntentResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, violet.IntentGeneralInquiry, result.Intent)
	assert.Equal(t, []string{}, result.Entities)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestHandleIntentAnalysis_RejectsBadRequests(t *testing.T) {
	router := newIntentRouter(nil)

	w := postIntent(router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postIntent(router, `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
