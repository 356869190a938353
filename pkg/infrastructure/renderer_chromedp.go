package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"curriculo-generator/internal/domain"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Renderer states reported by State.
const (
	StateIdle     = "idle"
	StateStarting = "starting"
	StateReady    = "ready"
	StateFailed   = "failed"
)

// ChromedpConfig configures the shared headless browser.
type ChromedpConfig struct {
	ExecPath       string
	PoolSize       int
	Timeout        time.Duration
	StartupTimeout time.Duration
}

// ChromedpRenderer prints HTML to PDF in tabs of one shared Chromium
// process. At most PoolSize tabs render at a time. A launch that failed or a
// browser that exited is replaced on the next WaitReady.
type ChromedpRenderer struct {
	cfg ChromedpConfig
	log *zap.Logger
	sem *semaphore.Weighted

	mu       sync.Mutex
	cur      *browserLaunch
	lastErr  error
	launches int
	closed   bool
}

// browserLaunch is one attempt at starting the browser. ready is closed once
// the attempt finished; err and the contexts are immutable afterwards.
type browserLaunch struct {
	ready chan struct{}
	err   error

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

var errRendererClosed = errors.New("renderer closed")

func NewChromedpRenderer(cfg ChromedpConfig, logger *zap.Logger) *ChromedpRenderer {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromedpRenderer{
		cfg: cfg,
		log: logger,
		sem: semaphore.NewWeighted(int64(cfg.PoolSize)),
	}
}

// Start launches the browser in the background unless a launch is already
// running or done. It returns immediately.
func (r *ChromedpRenderer) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

func (r *ChromedpRenderer) startLocked() *browserLaunch {
	if r.closed {
		return nil
	}
	if r.cur == nil {
		r.cur = &browserLaunch{ready: make(chan struct{})}
		r.launches++
		go r.launch(r.cur)
	}
	return r.cur
}

// Ready is closed when the current launch attempt has finished. It starts
// one if needed; after Close it returns an already closed channel.
func (r *ChromedpRenderer) Ready() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l := r.startLocked(); l != nil {
		return l.ready
	}
	done := make(chan struct{})
	close(done)
	return done
}

// WaitReady starts the browser if needed and blocks until it is usable,
// the launch failed, or ctx is done. A failed launch is dropped so the next
// call tries again.
func (r *ChromedpRenderer) WaitReady(ctx context.Context) error {
	_, err := r.waitLaunch(ctx)
	return err
}

func (r *ChromedpRenderer) waitLaunch(ctx context.Context) (*browserLaunch, error) {
	r.mu.Lock()
	l := r.startLocked()
	r.mu.Unlock()
	if l == nil {
		return nil, domain.NewRenderError("chromium unavailable", errRendererClosed)
	}

	select {
	case <-l.ready:
	case <-ctx.Done():
		return nil, domain.NewRenderError("chromium not ready", ctx.Err())
	}
	if l.err != nil {
		r.drop(l, l.err)
		return nil, l.err
	}
	return l, nil
}

// drop forgets l if it is still current, remembering why for State.
func (r *ChromedpRenderer) drop(l *browserLaunch, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cur == l {
		r.cur = nil
		r.lastErr = cause
	}
}

// State reports the browser lifecycle for health checks.
func (r *ChromedpRenderer) State() string {
	r.mu.Lock()
	l, lastErr := r.cur, r.lastErr
	r.mu.Unlock()

	if l == nil {
		if lastErr != nil {
			return StateFailed
		}
		return StateIdle
	}
	select {
	case <-l.ready:
		if l.err != nil {
			return StateFailed
		}
		return StateReady
	default:
		return StateStarting
	}
}

func (r *ChromedpRenderer) launch(l *browserLaunch) {
	defer close(l.ready)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// the first Run on browserCtx allocates the browser; a deadline on that
	// context would kill it, so the startup bound lives here instead
	done := make(chan error, 1)
	go func() { done <- chromedp.Run(browserCtx) }()

	timer := time.NewTimer(r.cfg.StartupTimeout)
	defer timer.Stop()

	began := time.Now()
	var err error
	select {
	case runErr := <-done:
		if runErr != nil {
			// a missing or broken binary fails the same way every time
			err = domain.NewRenderError("chromium start failed", runErr)
		}
	case <-timer.C:
		err = domain.NewRenderError("chromium start failed", context.DeadlineExceeded)
	}

	if err != nil {
		browserCancel()
		allocCancel()
		l.err = err
		r.log.Error("chromium launch failed", zap.Error(err))
		return
	}

	l.allocCancel, l.browserCtx, l.browserCancel = allocCancel, browserCtx, browserCancel
	r.mu.Lock()
	r.lastErr = nil
	r.mu.Unlock()
	go r.watch(l)
	r.log.Info("chromium ready", zap.Int("pool_size", r.cfg.PoolSize), zap.Duration("startup", time.Since(began)))
}

// watch drops l once its browser goes away, so the next request relaunches.
func (r *ChromedpRenderer) watch(l *browserLaunch) {
	<-l.browserCtx.Done()
	l.allocCancel()

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return
	}
	re := domain.NewRenderError("chromium exited", l.browserCtx.Err())
	re.Retryable = true
	r.drop(l, re)
	r.log.Warn("chromium exited, relaunching on next render")
}

// Render prints html to PDF. Exceeding Timeout or cancelling ctx aborts the
// tab and yields a retryable *domain.RenderError.
func (r *ChromedpRenderer) Render(ctx context.Context, html string, opts domain.RenderOptions) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	size, scale, err := resolvePage(opts)
	if err != nil {
		return nil, domain.NewInternalError("invalid render options", err)
	}
	l, err := r.waitLaunch(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, domain.NewRenderError("waiting for a free renderer", err)
	}
	defer r.sem.Release(1)

	tabCtx, cancelTab := chromedp.NewContext(l.browserCtx)
	defer cancelTab()

	// the tab derives from the browser, so tie it to the request by hand
	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if r.cfg.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, r.cfg.Timeout)
		defer cancelTimeout()
	}

	var pdf []byte
	err = chromedp.Run(execCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(opts.PrintBackground).
				WithPaperWidth(size.width).
				WithPaperHeight(size.height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithScale(scale).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, renderFailure(execCtx, ctx, err)
	}
	if len(pdf) == 0 {
		return nil, domain.NewRenderError("chromium produced an empty pdf", nil)
	}
	return pdf, nil
}

// renderFailure classifies a failed run. Context errors keep their identity
// so callers see timeouts; anything else is a browser fault worth retrying.
func renderFailure(execCtx, reqCtx context.Context, err error) error {
	if reqErr := reqCtx.Err(); reqErr != nil && !errors.Is(err, reqErr) {
		err = fmt.Errorf("%w: %v", reqErr, err)
	} else if execErr := execCtx.Err(); execErr != nil && !errors.Is(err, execErr) {
		err = fmt.Errorf("%w: %v", execErr, err)
	}
	re := domain.NewRenderError("chromium pdf render failed", err)
	re.Retryable = true
	return re
}

// Close shuts the browser down and stops relaunching. It waits for an
// in-flight launch.
func (r *ChromedpRenderer) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	l := r.cur
	r.cur = nil
	r.mu.Unlock()

	if l == nil {
		return nil
	}
	<-l.ready
	if l.browserCancel != nil {
		l.browserCancel()
		l.allocCancel()
	}
	r.log.Info("chromium closed")
	return nil
}
