package flattree

import "fmt"

// Hidden is reported for a flat position which is not visible, because a
// node on the path to it is folded.
const Hidden = -1

// ChangeKind tells which kind of structural change a Change describes.
type ChangeKind uint8

// Kinds of changes. Add, Remove, Fold and Unfold carry (Start, Count),
// Replace carries (Start, OldCount, NewCount), Move carries
// (FromStart, FromEnd, ToStart, ToEnd). Invalidate carries no range.
const (
	ChangeAdd ChangeKind = iota + 1
	ChangeRemove
	ChangeFold
	ChangeUnfold
	ChangeReplace
	ChangeMove
	ChangeInvalidate
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdd:
		return "ADD"
	case ChangeRemove:
		return "REMOVE"
	case ChangeFold:
		return "FOLD"
	case ChangeUnfold:
		return "UNFOLD"
	case ChangeReplace:
		return "REPLACE"
	case ChangeMove:
		return "MOVE"
	case ChangeInvalidate:
		return "INVALIDATE"
	}
	return fmt.Sprintf("ChangeKind(%d)", uint8(k))
}

// Change describes the effect of a single mutating call on the flattening.
//
// Positions are flat positions local to Origin, i.e. Origin itself is at
// position 0 and its first child at position 1. For moves, Origin is the node
// the move was issued at and positions may be Hidden.
type Change struct {
	Kind     ChangeKind
	Origin   NodeID
	Start    int
	Count    int
	OldCount int
	NewCount int

	FromStart, FromEnd int
	ToStart, ToEnd     int
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeAdd, ChangeRemove, ChangeFold, ChangeUnfold:
		return fmt.Sprintf("%s@%d(%d,%d)", c.Kind, c.Origin, c.Start, c.Count)
	case ChangeReplace:
		return fmt.Sprintf("%s@%d(%d,%d,%d)", c.Kind, c.Origin, c.Start, c.OldCount, c.NewCount)
	case ChangeMove:
		return fmt.Sprintf("%s@%d(%d,%d,%d,%d)", c.Kind, c.Origin, c.FromStart, c.FromEnd, c.ToStart, c.ToEnd)
	}
	return fmt.Sprintf("%s@%d", c.Kind, c.Origin)
}

// ChangeSink accepts change notifications. Changed is called synchronously
// from within the mutating call, after the position index has been updated.
type ChangeSink interface {
	Changed(Change)
}

// SinkFunc adapts a function to a ChangeSink.
type SinkFunc func(Change)

// Changed calls f(c).
func (f SinkFunc) Changed(c Change) {
	f(c)
}

// Sinks fans out changes to a list of sinks, in order.
type Sinks []ChangeSink

// Changed forwards c to every non-nil sink.
func (s Sinks) Changed(c Change) {
	for _, sink := range s {
		if sink != nil {
			sink.Changed(c)
		}
	}
}

// ChangeLog is a ChangeSink recording every change it receives.
type ChangeLog struct {
	Changes []Change
}

// Changed appends c to the log.
func (l *ChangeLog) Changed(c Change) {
	l.Changes = append(l.Changes, c)
}

// Last returns the most recent change, if any.
func (l *ChangeLog) Last() (Change, bool) {
	if len(l.Changes) == 0 {
		return Change{}, false
	}
	return l.Changes[len(l.Changes)-1], true
}

// Reset drops all recorded changes.
func (l *ChangeLog) Reset() {
	l.Changes = l.Changes[:0]
}

// --- Emitting --------------------------------------------------------------

func (t *Tree[V]) notify(c Change) {
	T().Debugf("flattree: change %s", c)
	if t.sink != nil {
		t.sink.Changed(c)
	}
}

func (t *Tree[V]) notifyRange(kind ChangeKind, origin NodeID, start, count int) {
	t.notify(Change{Kind: kind, Origin: origin, Start: start, Count: count})
}
