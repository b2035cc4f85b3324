package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/ai-bridge/backend/internal/engine"
	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/metrics"
	"github.com/ai-bridge/backend/internal/middleware/validation"
	"github.com/ai-bridge/backend/internal/session"
	"github.com/ai-bridge/backend/pkg/logger"
)

// WebSocketHandler drives the live wizard loop: the client sends answers as
// they are entered and receives a freshly recomputed snapshot after each
// one.
type WebSocketHandler struct {
	store      session.Store
	engine     *engine.Engine
	maxMatches int
}

func NewWebSocketHandler(store session.Store, eng *engine.Engine, maxMatches int) *WebSocketHandler {
	if maxMatches <= 0 {
		maxMatches = 20
	}
	return &WebSocketHandler{
		store:      store,
		engine:     eng,
		maxMatches: maxMatches,
	}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	sessionID := c.Params("id")
	log := logger.With(zap.String("session_id", sessionID))
	log.Info("WebSocket connection established")

	defer func() {
		c.Close()
		log.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			Type       string        `json:"type"`
			QuestionID string        `json:"question_id"`
			Value      answers.Value `json:"value"`
		}

		err := c.ReadJSON(&msg)
		if err != nil {
			log.Debug("WebSocket read ended", zap.Error(err))
			break
		}

		switch msg.Type {
		case "answer":
			err = h.handleAnswer(sessionID, msg.QuestionID, msg.Value, c)
		case "snapshot":
			err = h.pushSnapshot(sessionID, c)
		default:
			continue
		}

		if err != nil {
			log.Error("Failed to process WebSocket message", zap.Error(err))
			h.sendError(c, err)
		}
	}
}

func (h *WebSocketHandler) handleAnswer(sessionID, questionID string, value answers.Value, c *websocket.Conn) error {
	question, ok := answers.Lookup(questionID)
	if !ok {
		return errors.New("unknown question id")
	}
	if value.Kind != question.Kind {
		return errors.New("answer value does not match question kind")
	}
	if value.Kind == answers.KindText {
		value.Text = validation.SanitizeText(value.Text)
		if err := validation.CheckAnswerText(value.Text, 0); err != nil {
			return err
		}
	}

	ctx := context.Background()
	set, err := h.store.GetAnswers(ctx, sessionID)
	if err != nil {
		return err
	}

	set.Put(answers.Answer{
		QuestionID: questionID,
		Value:      value,
		AnsweredAt: time.Now().UTC(),
	})

	if err := h.store.SaveAnswers(ctx, sessionID, set); err != nil {
		return err
	}
	metrics.AnswersRecorded.WithLabelValues(questionID).Inc()

	return h.writeSnapshot(ctx, sessionID, set, c)
}

func (h *WebSocketHandler) pushSnapshot(sessionID string, c *websocket.Conn) error {
	ctx := context.Background()
	set, err := h.store.GetAnswers(ctx, sessionID)
	if err != nil {
		return err
	}
	return h.writeSnapshot(ctx, sessionID, set, c)
}

func (h *WebSocketHandler) writeSnapshot(ctx context.Context, sessionID string, set answers.Set, c *websocket.Conn) error {
	snapshot, err := h.engine.Snapshot(ctx, set)
	if err != nil {
		return err
	}

	matches := snapshot.Matches
	if len(matches) > h.maxMatches {
		matches = matches[:h.maxMatches]
	}

	return c.WriteJSON(map[string]interface{}{
		"type":       "snapshot",
		"session_id": sessionID,
		"estimate":   snapshot.Estimate,
		"matches":    matches,
		"document":   snapshot.Document,
		"latency_ms": snapshot.LatencyMS,
	})
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, err error) {
	msg := map[string]interface{}{
		"type":  "error",
		"error": "Failed to process message",
	}
	if errors.Is(err, session.ErrNotFound) {
		msg["error"] = "Session not found"
	}

	c.WriteJSON(msg)
}
