package infrastructure

import (
	"testing"

	"curriculo-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePage(t *testing.T) {
	size, scale, err := resolvePage(domain.DefaultRenderOptions())
	require.NoError(t, err)
	assert.Equal(t, "A4", size.name)
	assert.InDelta(t, 8.27, size.width, 0.001)
	assert.InDelta(t, 11.69, size.height, 0.001)
	assert.Equal(t, 1.0, scale)

	size, scale, err = resolvePage(domain.RenderOptions{PageSize: "letter", Scale: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "Letter", size.name)
	assert.Equal(t, 0.5, scale)

	size, _, err = resolvePage(domain.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "A4", size.name)

	_, _, err = resolvePage(domain.RenderOptions{PageSize: "B7"})
	assert.Error(t, err)
	_, _, err = resolvePage(domain.RenderOptions{Scale: 3})
	assert.Error(t, err)
	_, _, err = resolvePage(domain.RenderOptions{Scale: 0.05})
	assert.Error(t, err)
}
