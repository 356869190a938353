package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/logging"
	"curriculo-generator/internal/metrics"
	"curriculo-generator/internal/model"
	"curriculo-generator/internal/normalize"
	"curriculo-generator/internal/templates"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var pdfSignature = []byte("%PDF")

// Processor runs normalize, template and render for one request. It holds no
// per-request state.
type Processor struct {
	normalizer *normalize.Normalizer
	templates  *templates.Renderer
	renderer   Renderer
	repo       JobsRepo
	log        *zap.Logger
	opts       Options
}

func NewProcessor(n *normalize.Normalizer, t *templates.Renderer, r Renderer, repo JobsRepo, logger *zap.Logger, opts Options) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &Processor{normalizer: n, templates: t, renderer: r, repo: repo, log: logger, opts: opts}
}

// Preview normalizes raw and renders its HTML without calling the renderer.
func (p *Processor) Preview(raw interface{}) (model.ResumeRecord, string, error) {
	rec, err := p.normalizer.Normalize(raw)
	if err != nil {
		return model.ResumeRecord{}, "", err
	}
	html, err := p.templates.Render(rec)
	if err != nil {
		return model.ResumeRecord{}, "", err
	}
	return rec, html, nil
}

// Generate produces the PDF for raw. Input errors surface before the
// renderer is called.
func (p *Processor) Generate(ctx context.Context, raw interface{}, requestID string) (*Result, error) {
	began := time.Now()
	job := &domain.GenerationJob{
		ID:        uuid.New(),
		RequestID: requestID,
		Status:    domain.JobPending,
		CreatedAt: began,
	}
	log := p.log.With(zap.String("request_id", requestID), zap.String("job_id", job.ID.String()))

	res, err := p.generate(ctx, raw, job, log)

	job.DurationMs = time.Since(began).Milliseconds()
	job.UpdatedAt = time.Now()
	if err != nil {
		kind := domain.KindOf(err)
		job.Status = domain.JobFailed
		job.ErrorKind = string(kind)
		metrics.Generations.WithLabelValues(string(kind)).Inc()
		switch kind {
		case domain.KindValidation:
			log.Info("curriculum rejected", zap.Error(err))
		case domain.KindRender:
			log.Warn("curriculum render failed", zap.Error(err), zap.Bool("retryable", domain.IsRetryable(err)), zap.Int("attempts", job.Attempts))
		default:
			log.Error("curriculum generation failed", zap.Error(err), zap.Any("payload", logging.MaskPayload(raw)))
		}
	} else {
		job.Status = domain.JobCompleted
		metrics.Generations.WithLabelValues("success").Inc()
		log.Info("curriculum generated", zap.Int("pdf_bytes", len(res.PDF)), zap.Int64("duration_ms", job.DurationMs))
	}

	if p.repo != nil {
		// detached: the audit row is written even when the client went away
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if serr := p.repo.Save(saveCtx, job); serr != nil {
			log.Warn("failed to save generation job", zap.Error(serr))
		}
	}
	return res, err
}

func (p *Processor) generate(ctx context.Context, raw interface{}, job *domain.GenerationJob, log *zap.Logger) (*Result, error) {
	rec, html, err := p.Preview(raw)
	if err != nil {
		return nil, err
	}
	job.HTMLBytes = len(html)

	pdf, attempts, err := p.render(ctx, html, log)
	job.Attempts = attempts
	if err != nil {
		return nil, err
	}
	job.PDFBytes = len(pdf)

	return &Result{
		JobID:         job.ID.String(),
		Record:        rec,
		HTML:          html,
		PDF:           pdf,
		FileName:      rec.FileName(),
		ASCIIFileName: rec.ASCIIFileName(),
		Attempts:      attempts,
	}, nil
}

// render calls the renderer, retrying retryable failures with exponential
// backoff up to opts.Attempts calls.
func (p *Processor) render(ctx context.Context, html string, log *zap.Logger) ([]byte, int, error) {
	var lastErr error
	for i := 0; i < p.opts.Attempts; i++ {
		began := time.Now()
		metrics.RenderAttempts.Inc()
		pdf, err := p.renderOnce(ctx, html)
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RenderDuration.WithLabelValues(status).Observe(time.Since(began).Seconds())
		if err == nil {
			return pdf, i + 1, nil
		}
		lastErr = err

		if !domain.IsRetryable(err) || i == p.opts.Attempts-1 || ctx.Err() != nil {
			return nil, i + 1, err
		}
		backoff := p.opts.Backoff << i
		log.Warn("render attempt failed, retrying", zap.Int("attempt", i+1), zap.Duration("backoff", backoff), zap.Error(err))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, i + 1, domain.NewRenderError("retry aborted", ctx.Err())
		}
	}
	return nil, p.opts.Attempts, lastErr
}

func (p *Processor) renderOnce(ctx context.Context, html string) ([]byte, error) {
	pdf, err := p.renderer.Render(ctx, html, p.opts.Render)
	if err != nil {
		var re *domain.RenderError
		var ie *domain.InternalError
		if errors.As(err, &re) || errors.As(err, &ie) {
			return nil, err
		}
		return nil, domain.NewRenderError("renderer failed", err)
	}
	if len(pdf) == 0 {
		return nil, domain.NewRenderError("renderer returned an empty buffer", nil)
	}
	if !bytes.HasPrefix(pdf, pdfSignature) {
		return nil, domain.NewRenderError(fmt.Sprintf("invalid PDF output (len=%d)", len(pdf)), nil)
	}
	return pdf, nil
}
