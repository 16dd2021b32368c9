package fairduel

import (
	"errors"
	"fmt"
)

// ErrUnknownMove is returned when a label is not in the configured MoveSet.
// Callers validate selections before resolving, so hitting this is a
// contract violation rather than a user-facing condition.
var ErrUnknownMove = errors.New("move not in configured set")

// Outcome is the result of one round from the human's perspective.
type Outcome int

const (
	// Draw means both parties played the same move.
	Draw Outcome = iota
	// OpponentWins means the opponent's move beats the human's.
	OpponentWins
	// HumanWins means the human's move beats the opponent's.
	HumanWins
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "Draw"
	case OpponentWins:
		return "Lose"
	case HumanWins:
		return "Win"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Rules evaluates the generalized cycle rule over a MoveSet.
type Rules struct{ moves MoveSet }

// NewRules binds the rule evaluator to a validated MoveSet.
func NewRules(ms MoveSet) Rules { return Rules{moves: ms} }

// Winner resolves one round. With u and c the cycle positions of the
// human's and the opponent's moves and half = N/2, the opponent wins
// exactly when c lies in the half-window after u, wrapping around:
//
//	(c > u && c <= u+half) || (c < u && c+N <= u+half)
//
// The window boundary c == u+half counts as an opponent win. For N=3 this
// is the classical rock-paper-scissors rule.
func (r Rules) Winner(human, opponent string) (Outcome, error) {
	u, ok := r.moves.Index(human)
	if !ok {
		return Draw, fmt.Errorf("%w: %q", ErrUnknownMove, human)
	}
	c, ok := r.moves.Index(opponent)
	if !ok {
		return Draw, fmt.Errorf("%w: %q", ErrUnknownMove, opponent)
	}

	if u == c {
		return Draw, nil
	}

	n := r.moves.Len()
	half := n / 2
	if (c > u && c <= u+half) || (c < u && c+n <= u+half) {
		return OpponentWins, nil
	}
	return HumanWins, nil
}

// Matrix returns the full N×N outcome table, row = human move, col =
// opponent move. Every cell comes from Winner so the help display can
// never drift from gameplay.
func (r Rules) Matrix() ([][]Outcome, error) {
	n := r.moves.Len()
	m := make([][]Outcome, n)
	for i := 0; i < n; i++ {
		m[i] = make([]Outcome, n)
		for j := 0; j < n; j++ {
			o, err := r.Winner(r.moves.Label(i), r.moves.Label(j))
			if err != nil {
				return nil, err
			}
			m[i][j] = o
		}
	}
	return m, nil
}
