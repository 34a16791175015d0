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
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/shopglow/services/assistant/datatypes"
	"github.com/AleutianAI/shopglow/services/llm"
)

var tracer = otel.Tracer("shopglow.violet")

// Generation settings for the chat backend.
const (
	historyWindow       = 6
	responseMaxTokens   = 1000
	responseTemperature = float32(0.7)
	// backendTimeout bounds a single backend call. A timeout is treated
	// as a backend failure and takes the degraded-service reply path.
	backendTimeout = 30 * time.Second
)

// Fixed replies for the paths that never reach the backend.
const (
	adminActivationMessage = "🔐 Admin mode activated! Hello admin, I'm Violet, your Shop&Glow management assistant. I can help you with website analytics, product and inventory management, partner monitoring, and business optimization. How can I assist you with managing Shop&Glow today?"

	customerOfflineMessage = "Hi! I'm Violet, your Shop&Glow assistant. AI chat features are currently offline, but you can browse our premium beauty products, mother care items, and pet grooming supplies through the navigation menu!"

	adminOfflineMessage = "Admin mode is available, but AI features require a generation backend. You can still access all Shop&Glow management features through the interface."

	technicalDifficultiesMessage = "I'm experiencing technical difficulties. Please try again in a moment."

	emptyResponseMessage = "I'm having trouble responding right now. Please try again."
)

// GenerationResult is the outcome of one response-generation exchange.
type GenerationResult struct {
	Message              string `json:"message"`
	ShouldEnterAdminMode bool   `json:"shouldEnterAdminMode"`
}

// Responder orchestrates response generation: trigger check, context
// assembly, prompt build, bounded history, backend call and fallbacks.
//
// The backend capability is injected and may be nil; every failure mode
// resolves to a fixed reply, so GenerateResponse never returns an error.
type Responder struct {
	llm       llm.LLMClient // nil when no backend is configured
	assembler *ContextAssembler
}

// NewResponder creates a Responder. Pass a nil client to run without a
// generation backend.
func NewResponder(client llm.LLMClient, assembler *ContextAssembler) *Responder {
	return &Responder{llm: client, assembler: assembler}
}

// HasBackend reports whether a generation backend is configured.
func (r *Responder) HasBackend() bool {
	return r.llm != nil
}

// GenerateResponse produces the assistant's reply to one user message.
//
// The history slice is the session transcript before this message, in
// insertion order; only the trailing historyWindow entries are sent to
// the backend. The trigger check short-circuits in customer mode only;
// in admin mode trigger codes flow through as ordinary messages.
func (r *Responder) GenerateResponse(ctx context.Context, userText string,
	mode datatypes.SessionMode, history []datatypes.Message) GenerationResult {

	ctx, span := tracer.Start(ctx, "GenerateResponse")
	defer span.End()

	if mode == datatypes.ModeCustomer && DetectAdminTrigger(userText) {
		slog.Info("Admin trigger detected, activating admin mode")
		return GenerationResult{
			Message:              adminActivationMessage,
			ShouldEnterAdminMode: true,
		}
	}

	bc := r.assembler.Assemble(ctx, mode)
	systemPrompt := buildSystemPrompt(mode, bc)

	if r.llm == nil {
		msg := customerOfflineMessage
		if mode == datatypes.ModeAdmin {
			msg = adminOfflineMessage
		}
		return GenerationResult{Message: msg}
	}

	messages := assembleHistory(systemPrompt, history, userText)

	temperature := responseTemperature
	maxTokens := responseMaxTokens
	params := llm.GenerationParams{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}

	callCtx, cancel := context.WithTimeout(ctx, backendTimeout)
	defer cancel()

	answer, err := r.llm.Chat(callCtx, messages, params)
	if err != nil {
		slog.Error("Generation backend call failed", "error", err, "mode", mode)
		return GenerationResult{Message: technicalDifficultiesMessage}
	}
	if strings.TrimSpace(answer) == "" {
		slog.Warn("Generation backend returned empty content")
		return GenerationResult{Message: emptyResponseMessage}
	}
	return GenerationResult{Message: answer}
}

// assembleHistory builds the backend message list: system prompt, the
// last historyWindow transcript entries in original order, then the new
// user text. User and admin senders map to the user role; everything
// else (the assistant) maps to the assistant role.
func assembleHistory(systemPrompt string, history []datatypes.Message, userText string) []llm.Message {
	tail := history
	if len(tail) > historyWindow {
		tail = tail[len(tail)-historyWindow:]
	}

	messages := make([]llm.Message, 0, len(tail)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, m := range tail {
		role := llm.RoleAssistant
		if m.Sender == datatypes.SenderUser || m.Sender == datatypes.SenderAdmin {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userText})
	return messages
}
