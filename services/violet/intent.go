// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package violet

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/AleutianAI/shopglow/services/llm"
)

// Customer intents recognized by the classifier.
const (
	IntentProductSearch  = "product_search"
	IntentSupport        = "support"
	IntentPurchaseHelp   = "purchase_help"
	IntentGeneralInquiry = "general_inquiry"
)

// intentClassificationPrompt instructs the backend to classify a
// customer message and extract entities as a JSON object.
const intentClassificationPrompt = `Analyze the customer's message and identify their intent. Respond with JSON in this format:
{
  "intent": "product_search" | "support" | "purchase_help" | "general_inquiry",
  "entities": ["extracted", "keywords", "or", "product", "names"],
  "confidence": 0.85
}

Intent definitions:
- product_search: Looking for specific products or browsing
- support: Need help with orders, account, or technical issues
- purchase_help: Ready to buy but needs guidance through process
- general_inquiry: General questions about the store, policies, etc.`

// IntentResult is the classification of one customer message.
type IntentResult struct {
	Intent     string   `json:"intent"`
	Entities   []string `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// defaultIntentResult is returned whenever classification cannot run:
// no backend, backend failure, or malformed structured output.
func defaultIntentResult() IntentResult {
	return IntentResult{
		Intent:     IntentGeneralInquiry,
		Entities:   []string{},
		Confidence: 0.5,
	}
}

// knownIntent reports whether the backend returned one of the four
// recognized intents.
func knownIntent(intent string) bool {
	switch intent {
	case IntentProductSearch, IntentSupport, IntentPurchaseHelp, IntentGeneralInquiry:
		return true
	}
	return false
}

// ClassifyIntent classifies a customer message into an intent with
// extracted entities and a confidence score.
//
// Failures never propagate: any backend or parse problem yields the
// fixed default result.
func (r *Responder) ClassifyIntent(ctx context.Context, message string) IntentResult {
	ctx, span := tracer.Start(ctx, "ClassifyIntent")
	defer span.End()

	if r.llm == nil {
		return defaultIntentResult()
	}

	callCtx, cancel := context.WithTimeout(ctx, backendTimeout)
	defer cancel()

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: intentClassificationPrompt},
		{Role: llm.RoleUser, Content: message},
	}
	raw, err := r.llm.Chat(callCtx, messages, llm.GenerationParams{JSONResponse: true})
	if err != nil {
		slog.Error("Intent classification backend call failed", "error", err)
		return defaultIntentResult()
	}

	var result IntentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		slog.Warn("Intent classification returned malformed JSON", "error", err)
		return defaultIntentResult()
	}
	if !knownIntent(result.Intent) {
		slog.Warn("Intent classification returned unknown intent", "intent", result.Intent)
		return defaultIntentResult()
	}
	if result.Entities == nil {
		result.Entities = []string{}
	}
	return result
}
