package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/logging"
	"curriculo-generator/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StateReporter exposes the renderer lifecycle for the health check.
type StateReporter interface {
	State() string
}

// JobStats summarizes the generation audit log.
type JobStats interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type Handler struct {
	processor *usecase.Processor
	renderer  StateReporter
	stats     JobStats
	log       *zap.Logger
}

func NewHandler(p *usecase.Processor, renderer StateReporter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{processor: p, renderer: renderer, log: logger}
}

// WithJobStats adds audit log counts to the health response.
func (h *Handler) WithJobStats(s JobStats) *Handler {
	h.stats = s
	return h
}

// GenerateCurriculum returns the PDF as an attachment.
func (h *Handler) GenerateCurriculum(c *fiber.Ctx) error {
	raw, err := decodeBody(c.Body())
	if err != nil {
		return writeError(c, err)
	}

	res, err := h.processor.Generate(c.UserContext(), raw, requestID(c))
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, contentDisposition(res.ASCIIFileName, res.FileName))
	c.Set("X-Job-ID", res.JobID)
	return c.Status(fiber.StatusOK).Send(res.PDF)
}

// Preview returns the rendered HTML of the curriculum.
func (h *Handler) Preview(c *fiber.Ctx) error {
	raw, err := decodeBody(c.Body())
	if err != nil {
		return writeError(c, err)
	}

	_, html, err := h.processor.Preview(raw)
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			h.logInternal("preview failed", requestID(c), raw, err)
		}
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(html)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	state := "n/a"
	if h.renderer != nil {
		state = h.renderer.State()
	}
	body := fiber.Map{
		"status":   "ok",
		"renderer": state,
		"time":     time.Now().UTC().Format(time.RFC3339),
	}
	if h.stats != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		counts, err := h.stats.CountByStatus(ctx)
		if err != nil {
			h.log.Warn("job stats unavailable", zap.Error(err))
		} else {
			body["jobs"] = counts
		}
	}
	return c.JSON(body)
}

// logInternal logs an unexpected failure with the received payload, CPF and
// phones masked.
func (h *Handler) logInternal(msg, reqID string, raw interface{}, err error) {
	h.log.Error(msg,
		zap.String("request_id", reqID),
		zap.Error(err),
		zap.Any("payload", logging.MaskPayload(raw)),
	)
}

func decodeBody(body []byte) (interface{}, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.NewValidationError("", "request body is empty")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, domain.NewValidationError("", "request body is not valid JSON")
	}
	return raw, nil
}

// contentDisposition names the attachment with an ASCII fallback and the
// RFC 5987 UTF-8 form.
func contentDisposition(asciiName, utf8Name string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(utf8Name), "+", "%20")
	return `attachment; filename="` + asciiName + `"; filename*=UTF-8''` + encoded
}

func writeError(c *fiber.Ctx, err error) error {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		var ve *domain.ValidationError
		errors.As(err, &ve)
		body := fiber.Map{"error": string(domain.KindValidation), "message": ve.Message}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case domain.KindRender:
		msg := "pdf rendering failed"
		var re *domain.RenderError
		if errors.As(err, &re) {
			msg = re.Message
		}
		retryable := domain.IsRetryable(err)
		if retryable {
			c.Set(fiber.HeaderRetryAfter, "1")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":     string(domain.KindRender),
			"message":   msg,
			"retryable": retryable,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   string(domain.KindInternal),
			"message": "internal server error",
		})
	}
}
