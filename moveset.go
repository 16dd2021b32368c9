package fairduel

import (
	"errors"
	"fmt"
)

// Configuration errors, surfaced by NewMoveSet before any commitment is generated.
var (
	// ErrTooFewMoves is returned when fewer than three moves are configured.
	ErrTooFewMoves = errors.New("need at least 3 moves")
	// ErrEvenMoveCount is returned when the number of moves is even.
	ErrEvenMoveCount = errors.New("move count must be odd")
	// ErrDuplicateMove is returned when the same label appears twice.
	ErrDuplicateMove = errors.New("duplicate move")
	// ErrEmptyMove is returned when a move label is the empty string.
	ErrEmptyMove = errors.New("empty move label")
)

// MoveSet is the ordered list of moves for one game session. The order
// defines the cycle: each move beats the N/2 moves immediately preceding
// it and loses to the N/2 immediately following it. Immutable once built.
type MoveSet struct {
	labels []string
	index  map[string]int
}

// NewMoveSet validates the labels (odd count ≥ 3, distinct, non-empty)
// and fixes the canonical cycle order.
func NewMoveSet(labels []string) (MoveSet, error) {
	if len(labels) < 3 {
		return MoveSet{}, fmt.Errorf("%w: got %d", ErrTooFewMoves, len(labels))
	}
	if len(labels)%2 == 0 {
		return MoveSet{}, fmt.Errorf("%w: got %d", ErrEvenMoveCount, len(labels))
	}

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		if label == "" {
			return MoveSet{}, fmt.Errorf("%w: position %d", ErrEmptyMove, i+1)
		}
		if _, seen := index[label]; seen {
			return MoveSet{}, fmt.Errorf("%w: %q", ErrDuplicateMove, label)
		}
		index[label] = i
	}

	return MoveSet{labels: append([]string(nil), labels...), index: index}, nil
}

// Len returns the number of moves N.
func (m MoveSet) Len() int { return len(m.labels) }

// Label returns the move at cycle position i.
func (m MoveSet) Label(i int) string { return m.labels[i] }

// Index returns the cycle position of label and whether it is a member.
func (m MoveSet) Index(label string) (int, bool) {
	i, ok := m.index[label]
	return i, ok
}

// Labels returns the cycle in order.
func (m MoveSet) Labels() []string { return append([]string(nil), m.labels...) }
