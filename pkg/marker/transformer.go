package marker

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/flexmark/pkg/mdast"
)

// Transformer resolves mark spans in a document tree. It holds no per-run
// state and may be reused; a single Transform call is not safe to run
// concurrently on the same tree.
type Transformer struct {
	cfg     *Config
	options Options
	logger  *slog.Logger
	hooks   Hooks
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithOptions sets the partial configuration merged by New. Ignored when
// WithConfig is also given.
func WithOptions(opts Options) Option {
	return func(t *Transformer) {
		t.options = opts
	}
}

// WithConfig uses an already merged configuration.
func WithConfig(cfg *Config) Option {
	return func(t *Transformer) {
		t.cfg = cfg
	}
}

// WithLogger sets a structured logger. Pass statistics are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(t *Transformer) {
		t.hooks = hooks
	}
}

// New builds a Transformer. Configuration errors are returned here.
func New(opts ...Option) (*Transformer, error) {
	t := &Transformer{}
	for _, opt := range opts {
		opt(t)
	}

	if t.cfg == nil {
		cfg, err := NewConfig(t.options)
		if err != nil {
			return nil, err
		}
		t.cfg = cfg
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return t, nil
}

// Config returns the transformer's merged configuration.
func (t *Transformer) Config() *Config {
	return t.cfg
}

// Transform rewrites every mark span under root in place: single-run
// spans, then cross-run spans, then empty spans (unless the policy is
// keep), then the escape pattern (when configured). Each pass completes a
// full traversal before the next one starts.
func (t *Transformer) Transform(root *mdast.Node) Stats {
	r := &run{cfg: t.cfg, hooks: t.hooks}

	t.pass(PassSingle, root, r, r.resolveSingle)
	t.pass(PassCross, root, r, r.resolveCross)

	if t.cfg.emptyAction != EmptyKeep {
		t.pass(PassEmpty, root, r, r.resolveEmpty)
	}
	if t.cfg.escape != nil {
		t.pass(PassEscape, root, r, r.normalizeEscapes)
	}

	return r.stats
}

func (t *Transformer) pass(p Pass, root *mdast.Node, r *run, visit mdast.Visitor) {
	if t.hooks.OnPassStart != nil {
		t.hooks.OnPassStart(&PassEvent{Pass: p})
	}

	before := r.stats
	start := time.Now()
	mdast.WalkText(root, visit)
	elapsed := time.Since(start)

	changes := r.stats.changes(p) - before.changes(p)
	t.logger.Debug("marker pass complete", "pass", p, "changes", changes, "duration", elapsed)

	if t.hooks.OnPassEnd != nil {
		t.hooks.OnPassEnd(&PassEvent{Pass: p, Changes: changes, Duration: elapsed, Stats: r.stats})
	}
}

// run carries the counters of one Transform call.
type run struct {
	cfg   *Config
	hooks Hooks
	stats Stats
}

func (r *run) mark(p Pass, classification string, children []*mdast.Node) *mdast.Node {
	node := r.cfg.NewMark(classification, children)

	switch p {
	case PassEmpty:
		r.stats.Empty++
	case PassCross:
		r.stats.Cross++
	default:
		r.stats.Single++
	}

	if r.hooks.OnMark != nil {
		r.hooks.OnMark(&MarkEvent{
			Pass:           p,
			Classification: classification,
			Color:          r.cfg.Color(classification),
			Empty:          len(children) == 0,
		})
	}
	return node
}
