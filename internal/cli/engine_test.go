package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flexmark/internal/config"
	"github.com/aretw0/flexmark/internal/logging"
)

func TestNewEngine_Defaults(t *testing.T) {
	eng, err := NewEngine(EngineOptions{})
	require.NoError(t, err)

	out, err := eng.RenderHTML([]byte("==x=="))
	require.NoError(t, err)
	assert.Contains(t, out, `<mark class="flexible-marker flexible-marker-default">x</mark>`)
}

func TestNewEngine_OverrideWins(t *testing.T) {
	base := &config.File{TagName: "span", Dictionary: map[string]string{"b": "brother"}}
	override := &config.File{TagName: "em"}

	eng, err := NewEngine(EngineOptions{Config: base, Override: override, Logger: logging.NewNop()})
	require.NoError(t, err)

	out, err := eng.RenderHTML([]byte("=b=x=="))
	require.NoError(t, err)
	assert.Contains(t, out, `<em class="flexible-marker flexible-marker-brother">x</em>`)
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	_, err := NewEngine(EngineOptions{Config: &config.File{Empty: "drop"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
