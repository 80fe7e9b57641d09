package flexmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/termenv"

	gmadapter "github.com/aretw0/flexmark/pkg/adapters/goldmark"
	"github.com/aretw0/flexmark/pkg/marker"
	"github.com/aretw0/flexmark/pkg/mdast"
	"github.com/aretw0/flexmark/pkg/render/html"
	"github.com/aretw0/flexmark/pkg/render/term"
)

// Parser turns Markdown source into a document tree.
type Parser interface {
	Parse(source []byte) *mdast.Node
}

// Format is an output format.
type Format string

const (
	FormatHTML Format = "html"
	FormatTerm Format = "term"
	FormatTree Format = "tree"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatTerm, FormatTree:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (expected html, term or tree)", ErrUnknownFormat, s)
}

// Engine is the high-level entry point for the flexmark library.
// It parses Markdown, resolves mark spans and renders the result.
// An Engine is safe for concurrent use.
type Engine struct {
	parser      Parser
	transformer *marker.Transformer
	options     marker.Options
	config      *marker.Config
	hooks       marker.Hooks
	logger      *slog.Logger
	palette     term.Palette
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithOptions sets the marker configuration merged over the defaults.
func WithOptions(opts marker.Options) Option {
	return func(e *Engine) {
		e.options = opts
	}
}

// WithConfig uses an already merged marker configuration.
func WithConfig(cfg *marker.Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks marker.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithParser replaces the default goldmark parser.
func WithParser(p Parser) Option {
	return func(e *Engine) {
		e.parser = p
	}
}

// WithPalette adds colour name mappings for terminal output.
func WithPalette(p term.Palette) Option {
	return func(e *Engine) {
		e.palette = p
	}
}

// New initializes a new Engine. Configuration errors are reported here.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.parser == nil {
		eng.parser = gmadapter.NewParser()
	}

	mopts := []marker.Option{
		marker.WithLogger(eng.logger),
		marker.WithHooks(eng.hooks),
	}
	if eng.config != nil {
		mopts = append(mopts, marker.WithConfig(eng.config))
	} else {
		mopts = append(mopts, marker.WithOptions(eng.options))
	}

	t, err := marker.New(mopts...)
	if err != nil {
		return nil, fmt.Errorf("invalid marker configuration: %w", err)
	}
	eng.transformer = t
	eng.config = t.Config()

	return eng, nil
}

// Config returns the merged marker configuration.
func (e *Engine) Config() *marker.Config {
	return e.config
}

// Fingerprint identifies the engine's output: two engines with the same
// fingerprint render any source identically.
func (e *Engine) Fingerprint() string {
	return strings.TrimSpace(Version) + "|" + e.config.Fingerprint()
}

// Parse parses source without resolving marks.
func (e *Engine) Parse(source []byte) *mdast.Node {
	return e.parser.Parse(source)
}

// Transform resolves mark spans in root, in place.
func (e *Engine) Transform(root *mdast.Node) marker.Stats {
	return e.transformer.Transform(root)
}

// Process parses source and resolves its mark spans.
func (e *Engine) Process(source []byte) (*mdast.Node, marker.Stats) {
	root := e.Parse(source)
	stats := e.Transform(root)
	return root, stats
}

// RenderHTML processes source and serializes it to HTML.
func (e *Engine) RenderHTML(source []byte) (string, error) {
	return e.Render(source, FormatHTML)
}

// RenderTerminal processes source and renders it for a terminal with
// the given colour profile.
func (e *Engine) RenderTerminal(source []byte, profile termenv.Profile) (string, error) {
	root, _ := e.Process(source)
	var buf bytes.Buffer
	r := term.New(term.WithProfile(profile), term.WithPalette(e.palette))
	if err := r.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render processes source and writes it in format. Terminal output uses
// the profile detected on stdout.
func (e *Engine) Render(source []byte, format Format) (string, error) {
	start := time.Now()
	root, stats := e.Process(source)

	out, err := e.RenderNode(root, format)
	if err != nil {
		return "", err
	}

	e.logger.Debug("document rendered",
		"format", format,
		"bytes", len(source),
		"marks", stats.Marks(),
		"duration", time.Since(start),
	)
	return out, nil
}

// RenderNode writes an already processed tree in format.
func (e *Engine) RenderNode(root *mdast.Node, format Format) (string, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatHTML:
		err = html.Render(&buf, root)
	case FormatTree:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(root)
	case FormatTerm:
		err = term.New(term.WithPalette(e.palette)).Render(&buf, root)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
