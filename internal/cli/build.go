package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/internal/config"
	"github.com/aretw0/flexmark/pkg/adapters/loam"
	"github.com/aretw0/flexmark/pkg/marker"
)

// BuildOptions configures a batch build.
type BuildOptions struct {
	OutDir string
	Format flexmark.Format
	Config *config.File
	Logger *slog.Logger
	Hooks  marker.Hooks
}

// BuildReport summarizes a build.
type BuildReport struct {
	Documents int
	Marks     int
	Files     []string
}

// extension maps an output format to a file extension.
func extension(f flexmark.Format) string {
	switch f {
	case flexmark.FormatTree:
		return ".json"
	case flexmark.FormatTerm:
		return ".txt"
	default:
		return ".html"
	}
}

// Build renders every document of src into opts.OutDir. Documents with a
// front-matter override get their own engine; the others share one.
func Build(ctx context.Context, src *loam.Source, opts BuildOptions) (BuildReport, error) {
	var report BuildReport
	if opts.Format == "" {
		opts.Format = flexmark.FormatHTML
	}

	docs, err := src.List(ctx)
	if err != nil {
		return report, err
	}

	shared, err := NewEngine(EngineOptions{Config: opts.Config, Logger: opts.Logger, Hooks: opts.Hooks})
	if err != nil {
		return report, err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		eng := shared
		if doc.Override != nil {
			eng, err = NewEngine(EngineOptions{
				Config:   opts.Config,
				Override: doc.Override,
				Logger:   opts.Logger,
				Hooks:    opts.Hooks,
			})
			if err != nil {
				return report, fmt.Errorf("document %s: %w", doc.ID, err)
			}
		}

		path, marks, err := writeDocument(eng, doc, opts)
		if err != nil {
			return report, err
		}
		report.Documents++
		report.Marks += marks
		report.Files = append(report.Files, path)
	}

	if opts.Logger != nil {
		opts.Logger.Info("build complete", "documents", report.Documents, "marks", report.Marks, "out", opts.OutDir)
	}
	return report, nil
}

func writeDocument(eng *flexmark.Engine, doc loam.Document, opts BuildOptions) (string, int, error) {
	source := []byte(doc.Markdown)
	root, stats := eng.Process(source)

	out, err := eng.RenderNode(root, opts.Format)
	if err != nil {
		return "", 0, fmt.Errorf("document %s: %w", doc.ID, err)
	}

	path := filepath.Join(opts.OutDir, filepath.FromSlash(doc.ID)+extension(opts.Format))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", 0, err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, stats.Marks(), nil
}

// Watch runs Build once and again whenever a document changes, until ctx
// is cancelled. Changes arriving within debounce of each other trigger a
// single rebuild.
func Watch(ctx context.Context, src *loam.Source, opts BuildOptions, debounce time.Duration) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if _, err := Build(ctx, src, opts); err != nil {
		logger.Error("build failed", "error", err)
	}

	changes, err := src.Watch(ctx)
	if err != nil {
		return err
	}

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("document changed", "id", id)
			timer = time.After(debounce)
		case <-timer:
			timer = nil
			if _, err := Build(ctx, src, opts); err != nil {
				logger.Error("build failed", "error", err)
			}
		}
	}
}
