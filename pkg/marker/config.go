package marker

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dlclark/regexp2"
)

// Config is the merged, validated configuration. It is immutable once
// built and safe to share between transformers.
type Config struct {
	dictionary  Dictionary
	tagName     TagNameResolver
	className   ClassNameResolver
	properties  PropertiesResolver
	escape      *regexp2.Regexp
	escapeExpr  string
	emptyAction EmptyAction
	// nonce is set when a selector cannot describe itself.
	nonce uint64
}

var configSeq atomic.Uint64

// NewConfig merges opts over the defaults and validates the result.
// Every configuration error surfaces here, before any tree is walked.
func NewConfig(opts Options) (*Config, error) {
	cfg := &Config{
		dictionary:  DefaultDictionary(),
		tagName:     FixedTagName(DefaultTagName),
		className:   BaseClassName(DefaultClassName),
		properties:  opts.Properties,
		emptyAction: EmptyMark,
	}

	if len(opts.Dictionary) > 0 {
		if err := opts.Dictionary.Validate(); err != nil {
			return nil, err
		}
		cfg.dictionary = cfg.dictionary.Merge(opts.Dictionary)
	}
	if opts.TagName != nil {
		cfg.tagName = opts.TagName
	}
	if opts.ClassName != nil {
		cfg.className = opts.ClassName
	}

	action, err := ParseEmptyAction(string(opts.EmptyAction))
	if err != nil {
		return nil, err
	}
	cfg.emptyAction = action

	if opts.EscapePattern != "" {
		re, err := regexp2.Compile(opts.EscapePattern, regexp2.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidEscapePattern, opts.EscapePattern, err)
		}
		cfg.escape = re
		cfg.escapeExpr = opts.EscapePattern
	}

	if opaque(cfg.tagName) || opaque(cfg.className) || (cfg.properties != nil && opaque(cfg.properties)) {
		cfg.nonce = configSeq.Add(1)
	}

	return cfg, nil
}

// MustConfig is like NewConfig but panics on error.
func MustConfig(opts Options) *Config {
	cfg, err := NewConfig(opts)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Dictionary returns a copy of the merged dictionary.
func (c *Config) Dictionary() Dictionary { return c.dictionary.Clone() }

// EmptyAction returns the empty-span policy.
func (c *Config) EmptyAction() EmptyAction { return c.emptyAction }

// EscapePattern returns the configured escape pattern, or "".
func (c *Config) EscapePattern() string { return c.escapeExpr }

// Color resolves a classification letter.
func (c *Config) Color(classification string) string {
	return c.dictionary.Lookup(classification)
}

// Fingerprint describes the configuration as a stable string. Two configs
// with the same fingerprint produce the same output. Function-valued
// selectors contribute their String() when they implement fmt.Stringer.
// Any other function selector makes the fingerprint unique to this Config,
// since closures over different values cannot be told apart.
func (c *Config) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dict=%s;", c.dictionary)
	fmt.Fprintf(&b, "tag=%s;", describe(c.tagName))
	fmt.Fprintf(&b, "class=%s;", describe(c.className))
	if c.properties != nil {
		fmt.Fprintf(&b, "props=%s;", describe(c.properties))
	}
	fmt.Fprintf(&b, "escape=%s;empty=%s", c.escapeExpr, c.emptyAction)
	if c.nonce != 0 {
		fmt.Fprintf(&b, ";nonce=%d", c.nonce)
	}
	return b.String()
}

func describe(v any) string {
	switch s := v.(type) {
	case fmt.Stringer:
		return s.String()
	case FixedTagName:
		return "fixed:" + string(s)
	case BaseClassName:
		return "base:" + string(s)
	case TagNameFunc, ClassNameFunc, PropertiesFunc:
		return "func"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// opaque reports whether describe cannot capture v's behaviour.
func opaque(v any) bool {
	switch v.(type) {
	case fmt.Stringer, FixedTagName, BaseClassName:
		return false
	}
	return true
}
