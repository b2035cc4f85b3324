package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	ErrTextTooLong    = errors.New("answer text exceeds maximum length")
	ErrTextNotAllowed = errors.New("invalid answer content")
)

var (
	sessionIDPattern = regexp.MustCompile(`^[0-9a-fA-F-]{1,64}$`)
	xssPattern       = regexp.MustCompile(`(?i)(<script|<iframe|javascript:|onerror=|onload=|onclick=)`)
)

type Config struct {
	MaxAnswerTextLength int
	AllowedContentTypes []string
	Logger              *zap.Logger
}

// Middleware guards the answer-mutation endpoints: JSON content type, well
// formed session ids, bounded free-text answers, no markup injection.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxAnswerTextLength == 0 {
		cfg.MaxAnswerTextLength = 5000
	}
	if len(cfg.AllowedContentTypes) == 0 {
		cfg.AllowedContentTypes = []string{"application/json"}
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == "POST" || c.Method() == "PUT" {
			contentType := c.Get("Content-Type")
			if contentType != "" && c.Method() == "PUT" {
				allowed := false
				for _, allowedType := range cfg.AllowedContentTypes {
					if strings.Contains(contentType, allowedType) {
						allowed = true
						break
					}
				}
				if !allowed {
					return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
						"error": "Unsupported content type",
					})
				}
			}
		}

		if id := c.Params("id"); id != "" && !sessionIDPattern.MatchString(id) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid session id",
			})
		}

		if c.Method() == "PUT" && strings.HasSuffix(c.Path(), "/answers") {
			var req map[string]interface{}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid JSON format",
				})
			}

			questionID, ok := req["question_id"].(string)
			if !ok || questionID == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "question_id is required and must be a string",
				})
			}

			if value, ok := req["value"].(map[string]interface{}); ok {
				if text, ok := value["text"].(string); ok {
					switch err := CheckAnswerText(text, cfg.MaxAnswerTextLength); {
					case errors.Is(err, ErrTextTooLong):
						return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
							"error": "Answer text exceeds maximum length",
						})
					case errors.Is(err, ErrTextNotAllowed):
						if cfg.Logger != nil {
							cfg.Logger.Warn("Potential XSS attempt",
								zap.String("ip", c.IP()),
								zap.String("question_id", questionID),
							)
						}
						return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
							"error": "Invalid answer content",
						})
					}
				}
			}
		}

		return c.Next()
	}
}

// CheckAnswerText enforces the free-text limits shared by the HTTP and
// WebSocket answer paths. A non-positive maxLength falls back to the
// default cap.
func CheckAnswerText(text string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = 5000
	}
	if len(text) > maxLength {
		return ErrTextTooLong
	}
	if xssPattern.MatchString(text) {
		return ErrTextNotAllowed
	}
	return nil
}

// SanitizeText trims whitespace and strips NUL bytes from free-text input.
func SanitizeText(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
