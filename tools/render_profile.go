package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/normalize"
	"curriculo-generator/internal/templates"
	"curriculo-generator/pkg/infrastructure"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var outputDir = filepath.Join("resume-data", "generated")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	var (
		in      string
		out     string
		pdf     bool
		timeout time.Duration
		scale   float64
	)

	cmd := &cobra.Command{
		Use:   "render_profile",
		Short: "Render a curriculum JSON file to HTML or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			rec, err := normalize.New(normalize.DefaultOptions()).NormalizeJSON(b)
			if err != nil {
				return err
			}
			html, err := templates.MustNew().Render(rec)
			if err != nil {
				return err
			}

			if out == "" {
				ext := ".html"
				if pdf {
					ext = ".pdf"
				}
				out = defaultOutput(rec.FileName(), ext)
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if !pdf {
				return writeOut(cmd, out, []byte(html))
			}

			r := infrastructure.NewChromedpRenderer(infrastructure.ChromedpConfig{
				ExecPath: os.Getenv("CHROME_PATH"),
				PoolSize: 1,
				Timeout:  timeout,
			}, zap.NewNop())
			defer r.Close() //nolint:errcheck

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout+20*time.Second)
			defer cancel()
			opts := domain.DefaultRenderOptions()
			opts.Scale = scale
			data, err := r.Render(ctx, html, opts)
			if err != nil {
				return err
			}
			return writeOut(cmd, out, data)
		},
	}

	cmd.Flags().StringVar(&in, "in", "profile.json", "curriculum JSON input")
	cmd.Flags().StringVar(&out, "out", "", "output file (default resume-data/generated/<name>)")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "print to PDF through Chromium instead of writing HTML")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-render timeout")
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "PDF scale factor")
	return cmd
}

// defaultOutput places name under resume-data/generated. Path separators in
// the name are flattened so it cannot leave that directory.
func defaultOutput(name, ext string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == ".." {
		name = "curriculo"
	}
	return filepath.Join(outputDir, name+ext)
}

func writeOut(cmd *cobra.Command, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	cmd.Printf("wrote %s (%d bytes)\n", path, len(data))
	return nil
}
