package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, RendererChromedp, cfg.Renderer)
	assert.Equal(t, 2, cfg.RenderPoolSize)
	assert.Equal(t, 30*time.Second, cfg.RenderTimeout)
	assert.Equal(t, 20*time.Second, cfg.RenderStartupTimeout)
	assert.Equal(t, 1, cfg.RenderAttempts)
	assert.Equal(t, 1.0, cfg.RenderScale)
	assert.Equal(t, 1<<20, cfg.MaxBodyBytes)
	assert.True(t, cfg.ValidateEmail)
	assert.True(t, cfg.ValidateNationalID)
	assert.True(t, cfg.FormatPhones)
	assert.Empty(t, cfg.JobsDatabaseURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("RENDERER", "WKHTMLTOPDF")
	t.Setenv("RENDER_POOL_SIZE", "4")
	t.Setenv("RENDER_TIMEOUT", "5s")
	t.Setenv("RENDER_ATTEMPTS", "3")
	t.Setenv("RENDER_SCALE", "0.8")
	t.Setenv("VALIDATE_NATIONAL_ID", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, RendererWKHTMLToPDF, cfg.Renderer)
	assert.Equal(t, 4, cfg.RenderPoolSize)
	assert.Equal(t, 5*time.Second, cfg.RenderTimeout)
	assert.Equal(t, 3, cfg.RenderAttempts)
	assert.Equal(t, 0.8, cfg.RenderScale)
	assert.False(t, cfg.ValidateNationalID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"RENDER_POOL_SIZE", "many"},
		{"RENDER_POOL_SIZE", "0"},
		{"RENDER_TIMEOUT", "soon"},
		{"RENDER_ATTEMPTS", "0"},
		{"RENDER_SCALE", "5"},
		{"RENDERER", "phantomjs"},
		{"VALIDATE_EMAIL", "maybe"},
		{"MAX_BODY_BYTES", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
