// Package loam reads Markdown documents from a loam repository for batch
// rendering.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/flexmark/internal/config"
)

// Document is a Markdown document ready to render.
type Document struct {
	// ID is the document path relative to the repository, without extension.
	ID       string
	Title    string
	Markdown string
	// Override is the document's own configuration, nil when it has none.
	Override *config.File
}

// Source adapts a loam repository to a list of documents.
type Source struct {
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a Source over repo.
func New(repo *loam.TypedRepository[DocumentMetadata]) *Source {
	return &Source{
		Repo: repo,
	}
}

// Open initializes a read-only repository rooted at dir.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[DocumentMetadata](repo)), nil
}

// Get retrieves one document by id.
func (s *Source) Get(ctx context.Context, id string) (Document, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Document{}, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return toDocument(doc.ID, doc.Data, doc.Content)
}

// List returns every Markdown document that is not a draft, sorted by ID.
// Two files resolving to the same ID are an error.
func (s *Source) List(ctx context.Context) ([]Document, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	out := make([]Document, 0, len(docs))

	for _, doc := range docs {
		if !isMarkdown(doc.ID) || doc.Data.Draft {
			continue
		}

		// List carries front matter only; the body needs a Get.
		full, err := s.Repo.Get(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
		}
		d, err := toDocument(full.ID, full.Data, full.Content)
		if err != nil {
			return nil, err
		}

		if existingPath, ok := seen[d.ID]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", d.ID, existingPath, doc.ID)
		}
		seen[d.ID] = doc.ID
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Watch emits the ID of every Markdown document that changes, until ctx
// is cancelled.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func toDocument(docID string, meta DocumentMetadata, content string) (Document, error) {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}

	d := Document{
		ID:       trimExtension(rawID),
		Title:    meta.Title,
		Markdown: content,
	}
	if len(meta.Flexmark) > 0 {
		override, err := config.Decode(meta.Flexmark)
		if err != nil {
			return Document{}, fmt.Errorf("document %s: invalid flexmark front matter: %w", docID, err)
		}
		d.Override = override
	}
	return d, nil
}

func isMarkdown(id string) bool {
	switch strings.ToLower(filepath.Ext(id)) {
	case "", ".md", ".markdown":
		return true
	}
	return false
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
