package loam

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flexmark/internal/testutils"
)

func setupSource(t *testing.T, files map[string]string) *Source {
	t.Helper()
	_, repo := testutils.SetupTestRepo(t, files)
	return New(loam.NewTypedRepository[DocumentMetadata](repo))
}

func TestSource_List(t *testing.T) {
	src := setupSource(t, map[string]string{
		"intro.md": `---
title: Intro
---
Here is ==marked content==`,
		"notes/colors.md": `---
title: Colors
flexmark:
  tag_name: span
  dictionary:
    b: brother
---
=b=sibling==`,
		"wip.md": `---
draft: true
---
not yet`,
	})

	docs, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "intro", docs[0].ID)
	assert.Equal(t, "Intro", docs[0].Title)
	assert.Equal(t, "Here is ==marked content==", strings.TrimSpace(docs[0].Markdown))
	assert.Nil(t, docs[0].Override)

	assert.Equal(t, "notes/colors", docs[1].ID)
	require.NotNil(t, docs[1].Override)
	assert.Equal(t, "span", docs[1].Override.TagName)
	assert.Equal(t, "brother", docs[1].Override.Dictionary["b"])
}

func TestSource_List_CarriesBodies(t *testing.T) {
	src := setupSource(t, map[string]string{
		"intro.md":      "Here is ==marked content==",
		"guide/deep.md": "---\ntitle: Deep\n---\n=r=red== text",
	})

	docs, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	for _, d := range docs {
		assert.NotEmpty(t, strings.TrimSpace(d.Markdown), d.ID)
	}
	assert.Equal(t, "=r=red== text", strings.TrimSpace(docs[0].Markdown))
	assert.Equal(t, "Here is ==marked content==", strings.TrimSpace(docs[1].Markdown))
}

func TestSource_List_InvalidOverride(t *testing.T) {
	src := setupSource(t, map[string]string{
		"bad.md": `---
flexmark:
  colour: red
---
text`,
	})

	_, err := src.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flexmark front matter")
}

func TestSource_List_DetectsCollisions(t *testing.T) {
	src := setupSource(t, map[string]string{
		"a.md": `---
id: same
---
A`,
		"same.md": `B`,
	})

	_, err := src.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestSource_Get(t *testing.T) {
	src := setupSource(t, map[string]string{
		"page.md": `---
title: Page
---
=r=hot==`,
	})

	doc, err := src.Get(context.Background(), "page")
	require.NoError(t, err)
	assert.Equal(t, "page", doc.ID)
	assert.Equal(t, "Page", doc.Title)
	assert.Equal(t, "=r=hot==", strings.TrimSpace(doc.Markdown))

	_, err = src.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "a/b", trimExtension("a/b.md"))
	assert.Equal(t, "plain", trimExtension("plain"))
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, isMarkdown("a.md"))
	assert.True(t, isMarkdown("a.MARKDOWN"))
	assert.True(t, isMarkdown("a"))
	assert.False(t, isMarkdown("a.json"))
}
