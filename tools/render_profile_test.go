package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		name string
		file string
		ext  string
		want string
	}{
		{"plain", "Curriculo_Ana_Lima.pdf", ".html", "Curriculo_Ana_Lima.html"},
		{"pdf", "Curriculo_Ana_Lima.pdf", ".pdf", "Curriculo_Ana_Lima.pdf"},
		{"traversal", "Curriculo_../../etc/passwd.pdf", ".pdf", "Curriculo_.._.._etc_passwd.pdf"},
		{"backslash", `Curriculo_a\..\b.pdf`, ".html", "Curriculo_a_.._b.html"},
		{"dots only", "..", ".pdf", "curriculo.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultOutput(tt.file, tt.ext)
			assert.Equal(t, filepath.Join(outputDir, tt.want), got)

			rel, err := filepath.Rel(outputDir, got)
			assert.NoError(t, err)
			assert.False(t, strings.HasPrefix(rel, ".."), "escaped output dir: %s", got)
			assert.Equal(t, filepath.Base(got), rel)
		})
	}
}
