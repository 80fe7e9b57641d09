package marker

import (
	"github.com/dlclark/regexp2"
)

// Delimiter grammar. An opening delimiter is "=" [a-z]? "=", a closing
// delimiter is "==". The full pattern refuses whitespace or "=" right inside
// either delimiter, so "== x==" and "==x ==" stay literal.
const (
	exprFull     = `=([a-z]?)=(?![\s=])([\s\S]*?)(?<![\s=])==`
	exprStarting = `=([a-z]?)=(?![\s]|=+\s)`
	exprEnding   = `(?<!\s|\s=|\s==|\s===|\s====)==`
	exprEmpty    = `=([a-z]?)=\s*==`
)

// Equals is the literal the escape pass restores.
const Equals = "=="

var (
	// Full matches a span contained in one text run.
	Full = mustPattern("full", exprFull)
	// Starting matches an opening delimiter whose span may close in a later sibling.
	Starting = mustPattern("starting", exprStarting)
	// Ending matches a closing delimiter.
	Ending = mustPattern("ending", exprEnding)
	// Empty matches a span with no meaningful content.
	Empty = mustPattern("empty", exprEmpty)
)

// Match is one occurrence of a pattern in a text value. Start and End are
// byte offsets into the scanned value; Content is only set by Full.
type Match struct {
	Classification string
	Content        string
	Start          int
	End            int
}

// Pattern is a compiled delimiter pattern. Matching is leftmost-first and
// non-overlapping.
type Pattern struct {
	name string
	re   *regexp2.Regexp
}

func mustPattern(name, expr string) *Pattern {
	return &Pattern{name: name, re: regexp2.MustCompile(expr, regexp2.None)}
}

// Name returns the pattern's name, used in logs.
func (p *Pattern) Name() string { return p.name }

// MatchString reports whether value contains a match.
func (p *Pattern) MatchString(value string) bool {
	ok, err := p.re.MatchString(value)
	return err == nil && ok
}

// Find returns the leftmost match in value.
func (p *Pattern) Find(value string) (Match, bool) {
	m, err := p.re.FindStringMatch(value)
	if err != nil || m == nil {
		return Match{}, false
	}
	return toMatch(m, runeOffsets(value)), true
}

// FindAll returns every non-overlapping match in value, left to right.
func (p *Pattern) FindAll(value string) []Match {
	m, err := p.re.FindStringMatch(value)
	if err != nil || m == nil {
		return nil
	}

	offsets := runeOffsets(value)
	var matches []Match
	for m != nil {
		matches = append(matches, toMatch(m, offsets))
		m, err = p.re.FindNextMatch(m)
		if err != nil {
			break
		}
	}
	return matches
}

func toMatch(m *regexp2.Match, offsets []int) Match {
	out := Match{
		Start: offsets[m.Index],
		End:   offsets[m.Index+m.Length],
	}
	if g := m.GroupByNumber(1); g != nil && len(g.Captures) > 0 {
		out.Classification = g.String()
	}
	if g := m.GroupByNumber(2); g != nil && len(g.Captures) > 0 {
		out.Content = g.String()
	}
	return out
}

// runeOffsets maps rune indexes (what regexp2 reports) to byte offsets.
// The extra trailing entry is len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
