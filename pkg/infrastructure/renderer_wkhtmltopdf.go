package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"curriculo-generator/internal/domain"
)

// WKHTMLToPDFRenderer converts through the wkhtmltopdf binary using
// stdin/stdout. Each call is a separate process.
type WKHTMLToPDFRenderer struct {
	Command string
	Timeout time.Duration
}

func (e WKHTMLToPDFRenderer) args(opts domain.RenderOptions) ([]string, error) {
	size, scale, err := resolvePage(opts)
	if err != nil {
		return nil, err
	}
	args := []string{
		"--quiet",
		"--encoding", "utf-8",
		"--page-size", size.name,
		"--zoom", strconv.FormatFloat(scale, 'f', -1, 64),
		"--margin-top", "0",
		"--margin-bottom", "0",
		"--margin-left", "0",
		"--margin-right", "0",
		"--disable-javascript",
	}
	if !opts.PrintBackground {
		args = append(args, "--no-background")
	}
	return append(args, "-", "-"), nil
}

func (e WKHTMLToPDFRenderer) command() string {
	if cmdPath := strings.TrimSpace(e.Command); cmdPath != "" {
		return cmdPath
	}
	return "wkhtmltopdf"
}

// State is ready when the binary can be found on PATH.
func (e WKHTMLToPDFRenderer) State() string {
	if _, err := exec.LookPath(e.command()); err != nil {
		return StateFailed
	}
	return StateReady
}

// Render runs wkhtmltopdf. A non-zero exit carries stderr in the error.
func (e WKHTMLToPDFRenderer) Render(ctx context.Context, html string, opts domain.RenderOptions) ([]byte, error) {
	cmdPath := e.command()
	if ctx == nil {
		ctx = context.Background()
	}
	args, err := e.args(opts)
	if err != nil {
		return nil, domain.NewInternalError("invalid render options", err)
	}

	cmdCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, cmdPath, args...)
	cmd.Stdin = strings.NewReader(html)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := cmdCtx.Err(); ctxErr != nil {
			return nil, domain.NewRenderError("wkhtmltopdf aborted", fmt.Errorf("%w: %v", ctxErr, err))
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			re := domain.NewRenderError(fmt.Sprintf("wkhtmltopdf exited with code %d: %s", exitErr.ExitCode(), msg), err)
			re.Retryable = true
			return nil, re
		}
		return nil, domain.NewRenderError("wkhtmltopdf failed to start", err)
	}
	if stdout.Len() == 0 {
		return nil, domain.NewRenderError("wkhtmltopdf produced an empty pdf", nil)
	}
	return stdout.Bytes(), nil
}
