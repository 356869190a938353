package usecase

import (
	"context"
	"time"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/model"
)

// Renderer is the HTML-to-PDF capability.
type Renderer interface {
	Render(ctx context.Context, html string, opts domain.RenderOptions) ([]byte, error)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(ctx context.Context, html string, opts domain.RenderOptions) ([]byte, error)

func (f RendererFunc) Render(ctx context.Context, html string, opts domain.RenderOptions) ([]byte, error) {
	return f(ctx, html, opts)
}

type JobsRepo interface {
	Save(ctx context.Context, j *domain.GenerationJob) error
}

// Options tune the render step.
type Options struct {
	Render domain.RenderOptions
	// Attempts is the number of renderer calls for retryable failures; 1
	// disables retrying.
	Attempts int
	// Backoff is the first retry delay, doubled on each further retry.
	Backoff time.Duration
}

// DefaultOptions renders A4 once.
func DefaultOptions() Options {
	return Options{Render: domain.DefaultRenderOptions(), Attempts: 1, Backoff: time.Second}
}

// Result is a generated curriculum.
type Result struct {
	JobID         string
	Record        model.ResumeRecord
	HTML          string
	PDF           []byte
	FileName      string
	ASCIIFileName string
	Attempts      int
}
