// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides data structures for the assistant service.
//
// This file contains the chat message type and the websocket event
// envelopes exchanged with the browser client. For session state, see
// session.go.
package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// MaxMessageContentBytes is the maximum size of a single chat message.
	// Checked in bytes, not runes, to bound memory per message.
	MaxMessageContentBytes = 32 * 1024 // 32KB
)

// Message senders. SenderViolet is the assistant itself.
const (
	SenderUser   = "user"
	SenderViolet = "violet"
	SenderAdmin  = "admin"
)

// MessageTypeText is the default message type. Richer types (cards,
// product carousels) pass through the relay opaquely.
const MessageTypeText = "text"

// =============================================================================
// Shared Validator Instance
// =============================================================================

// chatValidate is the validator instance for chat datatypes.
// Initialized in init() with custom validators.
var chatValidate *validator.Validate

func init() {
	chatValidate = validator.New()
	_ = chatValidate.RegisterValidation("maxbytes", validateMaxBytes)
}

// validateMaxBytes validates that a string field does not exceed
// MaxMessageContentBytes.
func validateMaxBytes(fl validator.FieldLevel) bool {
	content := fl.Field().String()
	return len(content) <= MaxMessageContentBytes
}

// =============================================================================
// Chat Message
// =============================================================================

// Message is a single entry in a session transcript. Messages are
// immutable once created.
type Message struct {
	ID          string         `json:"id"`
	SessionID   string         `json:"sessionId"`
	Sender      string         `json:"sender"`
	Content     string         `json:"content"`
	MessageType string         `json:"messageType"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewMessage creates a text Message with a generated id and timestamp.
func NewMessage(sessionID, sender, content string) Message {
	return Message{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Sender:      sender,
		Content:     content,
		MessageType: MessageTypeText,
		CreatedAt:   time.Now().UTC(),
	}
}

// =============================================================================
// Client Events (browser -> relay)
// =============================================================================

// Client event types accepted by the websocket relay.
const (
	ClientEventJoin    = "join"
	ClientEventMessage = "message"
)

// ClientEvent is the inbound websocket event envelope.
//
// A "join" event carries SessionID; a "message" event carries Content.
// Anything else is answered with an error event and ignored.
type ClientEvent struct {
	Type      string `json:"type" validate:"required"`
	SessionID string `json:"sessionId,omitempty" validate:"omitempty,uuid4"`
	Content   string `json:"content,omitempty" validate:"omitempty,maxbytes"`
}

// Validate validates the ClientEvent fields.
func (e *ClientEvent) Validate() error {
	return chatValidate.Struct(e)
}

// =============================================================================
// Server Events (relay -> browser)
// =============================================================================

// ServerEventType enumerates every event the relay can emit. The relay
// dispatches over this fixed set; new variants need a constructor below.
type ServerEventType string

const (
	EventConnected          ServerEventType = "connected"
	EventJoined             ServerEventType = "joined"
	EventMessage            ServerEventType = "message"
	EventAdminModeActivated ServerEventType = "admin_mode_activated"
	EventError              ServerEventType = "error"
)

// ServerEvent is the outbound websocket event envelope.
//
// The Message field is polymorphic on the wire: a Message struct for
// "message" events, a plain string for "error" events, absent otherwise.
type ServerEvent struct {
	Type      ServerEventType `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Message   any             `json:"message,omitempty"`
}

// ConnectedEvent acknowledges a successful join. The client renders its
// one-time welcome message when it receives this.
func ConnectedEvent() ServerEvent {
	return ServerEvent{Type: EventConnected}
}

// JoinedEvent confirms which session the connection is bound to.
func JoinedEvent(sessionID string) ServerEvent {
	return ServerEvent{Type: EventJoined, SessionID: sessionID}
}

// MessageEvent carries an assistant message to the client.
func MessageEvent(m Message) ServerEvent {
	return ServerEvent{Type: EventMessage, Message: m}
}

// AdminModeActivatedEvent signals the one-way customer->admin transition.
func AdminModeActivatedEvent() ServerEvent {
	return ServerEvent{Type: EventAdminModeActivated}
}

// ErrorEvent reports a session-local error. The connection stays open.
func ErrorEvent(msg string) ServerEvent {
	return ServerEvent{Type: EventError, Message: msg}
}
