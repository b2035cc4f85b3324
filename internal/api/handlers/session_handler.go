package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ai-bridge/backend/internal/engine"
	"github.com/ai-bridge/backend/internal/engine/answers"
	"github.com/ai-bridge/backend/internal/export"
	"github.com/ai-bridge/backend/internal/metrics"
	"github.com/ai-bridge/backend/internal/middleware/validation"
	"github.com/ai-bridge/backend/internal/session"
	"github.com/ai-bridge/backend/pkg/logger"
)

type SessionHandler struct {
	store      session.Store
	engine     *engine.Engine
	maxMatches int
}

func NewSessionHandler(store session.Store, eng *engine.Engine, maxMatches int) *SessionHandler {
	if maxMatches <= 0 {
		maxMatches = 20
	}
	return &SessionHandler{
		store:      store,
		engine:     eng,
		maxMatches: maxMatches,
	}
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	id, err := h.store.Create(c.Context())
	if err != nil {
		logger.Error("Failed to create session", zap.Error(err))
		metrics.SessionStoreErrors.WithLabelValues("create").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	metrics.SessionsCreated.Inc()
	logger.Info("Session created", zap.String("session_id", id))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": id,
		"created_at": time.Now().Unix(),
	})
}

func (h *SessionHandler) GetSnapshot(c *fiber.Ctx) error {
	set, ok := h.loadAnswers(c)
	if !ok {
		return nil
	}
	return h.respondSnapshot(c, set)
}

func (h *SessionHandler) PutAnswer(c *fiber.Ctx) error {
	var req struct {
		QuestionID string        `json:"question_id"`
		Value      answers.Value `json:"value"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	question, ok := answers.Lookup(req.QuestionID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown question id",
		})
	}
	if req.Value.Kind != question.Kind {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Answer value does not match question kind",
		})
	}
	if req.Value.Kind == answers.KindText {
		req.Value.Text = validation.SanitizeText(req.Value.Text)
	}

	set, ok := h.loadAnswers(c)
	if !ok {
		return nil
	}

	set.Put(answers.Answer{
		QuestionID: req.QuestionID,
		Value:      req.Value,
		AnsweredAt: time.Now().UTC(),
	})

	if err := h.store.SaveAnswers(c.Context(), c.Params("id"), set); err != nil {
		return h.storeError(c, "save", err)
	}

	metrics.AnswersRecorded.WithLabelValues(req.QuestionID).Inc()

	return h.respondSnapshot(c, set)
}

func (h *SessionHandler) DeleteAnswer(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	if _, ok := answers.Lookup(questionID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown question id",
		})
	}

	set, ok := h.loadAnswers(c)
	if !ok {
		return nil
	}

	set.Remove(questionID)
	if err := h.store.SaveAnswers(c.Context(), c.Params("id"), set); err != nil {
		return h.storeError(c, "save", err)
	}

	return h.respondSnapshot(c, set)
}

func (h *SessionHandler) GetEstimate(c *fiber.Ctx) error {
	snapshot, ok := h.computeSnapshot(c)
	if !ok {
		return nil
	}
	return c.JSON(snapshot.Estimate)
}

func (h *SessionHandler) GetMatches(c *fiber.Ctx) error {
	snapshot, ok := h.computeSnapshot(c)
	if !ok {
		return nil
	}
	matches := snapshot.Matches
	if len(matches) > h.maxMatches {
		matches = matches[:h.maxMatches]
	}
	return c.JSON(fiber.Map{
		"matches": matches,
	})
}

func (h *SessionHandler) GetSpec(c *fiber.Ctx) error {
	snapshot, ok := h.computeSnapshot(c)
	if !ok {
		return nil
	}
	return c.JSON(snapshot.Document)
}

func (h *SessionHandler) ExportDocument(c *fiber.Ctx) error {
	snapshot, ok := h.computeSnapshot(c)
	if !ok {
		return nil
	}

	markdown := export.RenderMarkdown(snapshot, h.maxMatches)
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return c.SendString(markdown)
}

// loadAnswers fetches the session's answer set, writing the error response
// itself when the session is missing or the store fails.
func (h *SessionHandler) loadAnswers(c *fiber.Ctx) (answers.Set, bool) {
	sessionID := c.Params("id")
	if sessionID == "" {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session id is required",
		})
		return nil, false
	}

	set, err := h.store.GetAnswers(c.Context(), sessionID)
	if err != nil {
		h.storeError(c, "get", err)
		return nil, false
	}
	return set, true
}

func (h *SessionHandler) computeSnapshot(c *fiber.Ctx) (*engine.Snapshot, bool) {
	set, ok := h.loadAnswers(c)
	if !ok {
		return nil, false
	}

	snapshot, err := h.engine.Snapshot(c.Context(), set)
	if err != nil {
		logger.Error("Failed to compute snapshot", zap.Error(err))
		c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute snapshot",
		})
		return nil, false
	}
	return snapshot, true
}

// respondSnapshot recomputes the full snapshot for the given answer set and
// writes it with the answers echoed back, which is what the wizard renders
// after every change.
func (h *SessionHandler) respondSnapshot(c *fiber.Ctx, set answers.Set) error {
	snapshot, err := h.engine.Snapshot(c.Context(), set)
	if err != nil {
		logger.Error("Failed to compute snapshot", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute snapshot",
		})
	}

	matches := snapshot.Matches
	if len(matches) > h.maxMatches {
		matches = matches[:h.maxMatches]
	}

	return c.JSON(fiber.Map{
		"session_id": c.Params("id"),
		"answers":    set,
		"estimate":   snapshot.Estimate,
		"matches":    matches,
		"document":   snapshot.Document,
		"latency_ms": snapshot.LatencyMS,
	})
}

func (h *SessionHandler) storeError(c *fiber.Ctx, operation string, err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	logger.Error("Session store operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	metrics.SessionStoreErrors.WithLabelValues(operation).Inc()
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Session store unavailable",
	})
}
