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
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/shopglow/services/assistant/datatypes"
	"github.com/AleutianAI/shopglow/services/assistant/observability"
	"github.com/AleutianAI/shopglow/services/violet"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,
}

// Per-connection inbound message rate limit.
const (
	messagesPerSecond = 2
	messageBurst      = 5
)

func sendEvent(ws *websocket.Conn, ev datatypes.ServerEvent) error {
	err := ws.WriteJSON(ev)
	if err != nil {
		slog.Warn("Failed to write WebSocket event", "type", ev.Type, "error", err)
	}
	return err
}

// isDecodeError reports whether a ReadJSON failure is a malformed frame
// rather than a transport or close error. Malformed frames are answered
// with an error event and the connection stays open; everything else
// ends the read loop.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func sendError(ws *websocket.Conn, reason, msg string) error {
	if m := observability.DefaultMetrics; m != nil {
		m.RelayErrorsTotal.WithLabelValues(reason).Inc()
	}
	return sendEvent(ws, datatypes.ErrorEvent(msg))
}

// HandleChatWebSocket relays chat events between one browser connection
// and the Violet responder.
//
// Connection state machine: a connection starts pending, becomes joined
// once a join event names a registry-issued session id, and the session
// is destroyed when the connection closes. Events on one connection are
// processed strictly in arrival order, so responses within a session
// are emitted in the order the user messages arrived. The registry is
// never locked across a backend call; a hung backend on one session
// cannot stall relay for others.
func HandleChatWebSocket(registry *datatypes.SessionRegistry,
	responder *violet.Responder) gin.HandlerFunc {

	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade the websocket", "error", err)
			return
		}
		defer ws.Close()
		slog.Info("Websocket client connected")

		// nil while the connection is pending (no join yet)
		var session *datatypes.ChatSession
		limiter := rate.NewLimiter(rate.Limit(messagesPerSecond), messageBurst)

		defer func() {
			if session != nil {
				session.Detach()
				registry.Remove(session.ID)
				if m := observability.DefaultMetrics; m != nil {
					m.ActiveConnections.Dec()
				}
				slog.Info("Session closed with connection", "sessionId", session.ID)
			}
		}()

		for {
			var ev datatypes.ClientEvent
			if err := ws.ReadJSON(&ev); err != nil {
				if isDecodeError(err) {
					slog.Warn("Dropping malformed websocket frame", "error", err)
					if sendError(ws, "invalid_event", "malformed event") != nil {
						return
					}
					continue
				}
				slog.Info("Websocket client disconnected", "error", err.Error())
				break
			}

			ctx := c.Request.Context()

			switch ev.Type {
			case datatypes.ClientEventJoin:
				session = handleJoin(ws, registry, session, ev)

			case datatypes.ClientEventMessage:
				if session == nil {
					if sendError(ws, "not_joined", "join a session before sending messages") != nil {
						return
					}
					continue
				}
				if !limiter.Allow() {
					if sendError(ws, "rate_limited", "too many messages, slow down") != nil {
						return
					}
					continue
				}
				if strings.TrimSpace(ev.Content) == "" {
					if sendError(ws, "invalid_event", "message content must not be empty") != nil {
						return
					}
					continue
				}
				if err := ev.Validate(); err != nil {
					slog.Warn("Rejected oversized or invalid message event", "error", err)
					if sendError(ws, "invalid_event", "invalid message event") != nil {
						return
					}
					continue
				}
				if relayMessage(ctx, ws, session, responder, ev.Content) != nil {
					return
				}

			default:
				slog.Warn("Received unsupported websocket event", "type", ev.Type)
				if sendError(ws, "unsupported_type", "unsupported event type") != nil {
					return
				}
			}
		}
	}
}

// handleJoin validates a join event and binds the connection to its
// session. It returns the (possibly unchanged) session binding.
func handleJoin(ws *websocket.Conn, registry *datatypes.SessionRegistry,
	current *datatypes.ChatSession, ev datatypes.ClientEvent) *datatypes.ChatSession {

	if current != nil {
		_ = sendError(ws, "duplicate_join", "connection already joined a session")
		return current
	}
	if err := ev.Validate(); err != nil || ev.SessionID == "" {
		_ = sendError(ws, "invalid_event", "join requires a valid session id")
		return nil
	}

	s, ok := registry.Lookup(ev.SessionID)
	if !ok {
		slog.Warn("Join rejected for unknown session", "sessionId", ev.SessionID)
		_ = sendError(ws, "unknown_session", "unknown session id")
		return nil
	}
	// One live connection per session: a second join is rejected, not
	// replaced.
	if !s.Attach() {
		slog.Warn("Join rejected, session already attached", "sessionId", ev.SessionID)
		_ = sendError(ws, "duplicate_join", "session already has an active connection")
		return nil
	}

	slog.Info("Websocket client joined session", "sessionId", s.ID)
	// A failed acknowledgement write means the connection never bound to
	// the session, so the deferred per-connection cleanup will not fire;
	// the session is removed here instead of lingering in the registry.
	if sendEvent(ws, datatypes.JoinedEvent(s.ID)) != nil {
		s.Detach()
		registry.Remove(s.ID)
		return nil
	}
	// The connected event triggers the client-side one-time welcome
	// message.
	if sendEvent(ws, datatypes.ConnectedEvent()) != nil {
		s.Detach()
		registry.Remove(s.ID)
		return nil
	}
	if m := observability.DefaultMetrics; m != nil {
		m.ActiveConnections.Inc()
	}
	return s
}

// relayMessage runs one user message through the responder and pushes
// the resulting events back to the connection.
func relayMessage(ctx context.Context, ws *websocket.Conn,
	session *datatypes.ChatSession, responder *violet.Responder, content string) error {

	mode := session.Mode()

	// Snapshot the transcript before appending the new message; the
	// responder appends the new text itself after windowing.
	history := session.History()

	sender := datatypes.SenderUser
	if mode == datatypes.ModeAdmin {
		sender = datatypes.SenderAdmin
	}
	userMsg := datatypes.NewMessage(session.ID, sender, content)
	session.Append(userMsg)
	if m := observability.DefaultMetrics; m != nil {
		m.MessagesTotal.WithLabelValues(sender).Inc()
	}

	start := time.Now()
	result := responder.GenerateResponse(ctx, content, mode, history)
	if m := observability.DefaultMetrics; m != nil {
		m.GenerationSeconds.Observe(time.Since(start).Seconds())
	}

	reply := datatypes.NewMessage(session.ID, datatypes.SenderViolet, result.Message)
	session.Append(reply)
	if m := observability.DefaultMetrics; m != nil {
		m.MessagesTotal.WithLabelValues(datatypes.SenderViolet).Inc()
	}

	if result.ShouldEnterAdminMode && session.EnterAdminMode() {
		slog.Info("Session entered admin mode", "sessionId", session.ID)
		if m := observability.DefaultMetrics; m != nil {
			m.AdminActivationsTotal.Inc()
		}
		if err := sendEvent(ws, datatypes.AdminModeActivatedEvent()); err != nil {
			return err
		}
	}

	return sendEvent(ws, datatypes.MessageEvent(reply))
}
