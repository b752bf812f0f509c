package app

import (
	"context"
	"testing"

	"github.com/law-makers/toolscout/internal/config"
	"github.com/law-makers/toolscout/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SelectsRenderer(t *testing.T) {
	cfg := config.Default()
	cfg.CacheDir = t.TempDir()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "BrowserRenderer", a.Renderer.Name())
	assert.NotNil(t, a.Pipeline)
	assert.NotNil(t, a.Store)
	require.NoError(t, a.Close(context.Background()))

	cfg.Engine = config.EngineStatic
	a, err = New(context.Background(), cfg, WithProgress(engine.NopProgress{}))
	require.NoError(t, err)
	assert.Equal(t, "StaticRenderer", a.Renderer.Name())
	assert.Equal(t, engine.NopProgress{}, a.progress)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Engine = "selenium"
	_, err = New(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, engine.ErrCodeValidation, engine.CodeOf(err))
}
