package marker

import "time"

// Pass names one of the transformer's traversals.
type Pass string

const (
	PassSingle Pass = "single"
	PassCross  Pass = "cross"
	PassEmpty  Pass = "empty"
	PassEscape Pass = "escape"
)

// PassEvent is emitted around each traversal. Changes, Duration and Stats
// are only set on OnPassEnd. Changes counts the marks created, empty spans
// removed or text nodes rewritten by the pass; Stats holds the run's
// counters so far.
type PassEvent struct {
	Pass     Pass
	Changes  int
	Duration time.Duration
	Stats    Stats
}

// MarkEvent is emitted for every mark node created.
type MarkEvent struct {
	Pass           Pass
	Classification string
	Color          string
	Empty          bool
}

// Hooks defines callbacks for transformer observability. Nil fields are skipped.
type Hooks struct {
	OnPassStart func(*PassEvent)
	OnPassEnd   func(*PassEvent)
	OnMark      func(*MarkEvent)
}

// Stats counts what a Transform call changed.
type Stats struct {
	Single  int // marks created by the single-run pass
	Cross   int // marks created by the cross-run pass
	Empty   int // empty marks created
	Removed int // empty spans removed
	Escaped int // text nodes rewritten by the escape pass
}

// Marks is the total number of mark nodes created.
func (s Stats) Marks() int {
	return s.Single + s.Cross + s.Empty
}

func (s Stats) changes(p Pass) int {
	switch p {
	case PassSingle:
		return s.Single
	case PassCross:
		return s.Cross
	case PassEmpty:
		return s.Empty + s.Removed
	case PassEscape:
		return s.Escaped
	}
	return 0
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Single:  s.Single + o.Single,
		Cross:   s.Cross + o.Cross,
		Empty:   s.Empty + o.Empty,
		Removed: s.Removed + o.Removed,
		Escaped: s.Escaped + o.Escaped,
	}
}
