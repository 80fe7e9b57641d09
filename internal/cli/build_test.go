package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	loamlib "github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/internal/config"
	"github.com/aretw0/flexmark/internal/testutils"
	"github.com/aretw0/flexmark/pkg/adapters/loam"
	"github.com/aretw0/flexmark/pkg/marker"
)

func setupSource(t *testing.T, files map[string]string) *loam.Source {
	t.Helper()
	_, repo := testutils.SetupTestRepo(t, files)
	return loam.New(loamlib.NewTypedRepository[loam.DocumentMetadata](repo))
}

func TestBuild(t *testing.T) {
	src := setupSource(t, map[string]string{
		"index.md": "Here is ==marked==",
		"guide/colors.md": `---
flexmark:
  tag_name: span
---
=r=red== and =g=green==`,
	})
	out := t.TempDir()

	var marks int
	report, err := Build(context.Background(), src, BuildOptions{
		OutDir: out,
		Config: &config.File{ClassName: "hl"},
		Hooks:  marker.Hooks{OnMark: func(*marker.MarkEvent) { marks++ }},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Documents)
	assert.Equal(t, 3, report.Marks)
	assert.Equal(t, 3, marks)
	assert.Len(t, report.Files, 2)

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `<mark class="hl hl-default">marked</mark>`)

	colors, err := os.ReadFile(filepath.Join(out, "guide", "colors.html"))
	require.NoError(t, err)
	assert.Contains(t, string(colors), `<span class="hl hl-red">red</span>`)
	assert.Contains(t, string(colors), `<span class="hl hl-green">green</span>`)
}

func TestBuild_TreeFormat(t *testing.T) {
	src := setupSource(t, map[string]string{"a.md": "==x=="})
	out := t.TempDir()

	report, err := Build(context.Background(), src, BuildOptions{OutDir: out, Format: flexmark.FormatTree})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, filepath.Join(out, "a.json"), report.Files[0])

	data, err := os.ReadFile(report.Files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type": "mark"`)
}

func TestBuild_InvalidOverride(t *testing.T) {
	src := setupSource(t, map[string]string{
		"bad.md": `---
flexmark:
  empty: drop
---
x`,
	})

	_, err := Build(context.Background(), src, BuildOptions{OutDir: t.TempDir()})
	assert.Error(t, err)
}

func TestBuild_Cancelled(t *testing.T) {
	src := setupSource(t, map[string]string{"a.md": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, src, BuildOptions{OutDir: t.TempDir()})
	assert.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".html", extension(flexmark.FormatHTML))
	assert.Equal(t, ".json", extension(flexmark.FormatTree))
	assert.Equal(t, ".txt", extension(flexmark.FormatTerm))
}
