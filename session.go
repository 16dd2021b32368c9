package fairduel

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// State tracks the session's position in the strict linear protocol
// sequence. There are no backward transitions.
type State int

const (
	// StateConfigured means the move set is fixed but nothing is committed.
	StateConfigured State = iota
	// StateCommitted means the opponent's move is sealed behind a tag.
	StateCommitted
	// StateAwaitingHumanMove means the tag has been surfaced and the
	// session is waiting for a valid human move.
	StateAwaitingHumanMove
	// StateResolved is terminal: outcome computed, key and move revealed.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "Configured"
	case StateCommitted:
		return "Committed"
	case StateAwaitingHumanMove:
		return "AwaitingHumanMove"
	case StateResolved:
		return "Resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Ordering errors. Violating the commit-then-show-then-move sequence would
// break the fairness guarantee, so out-of-order calls fail loudly.
var (
	// ErrAlreadyCommitted is returned when Commit is called twice.
	ErrAlreadyCommitted = errors.New("session already committed")
	// ErrNotCommitted is returned when the tag or outcome is requested
	// before a commitment exists.
	ErrNotCommitted = errors.New("session not committed")
	// ErrTagNotShown is returned when a move is resolved before the tag
	// was surfaced to the human.
	ErrTagNotShown = errors.New("commitment tag not surfaced yet")
	// ErrSessionResolved is returned for any call after resolution.
	ErrSessionResolved = errors.New("session already resolved")
)

// Transcript event markers.
const (
	evConfigured = "CONFIGURED"
	evCommitted  = "COMMITTED"
	evMove       = "MOVE"
	evRevealed   = "REVEALED"
	evOutcome    = "OUTCOME"
)

// Config controls session behavior.
type Config struct {
	Rand      io.Reader // entropy source; nil means crypto/rand.Reader
	FixedMove *int      // optional fixed opponent move index (for tests)
}

// Session drives one game: commit to a random opponent move, surface the
// tag, accept the human's move, then resolve and reveal.
type Session struct {
	cfg        Config
	moves      MoveSet
	rules      Rules
	state      State
	commitment Commitment
	opponent   string
	transcript *Transcript
}

// Result is the reveal bundle. All fields become available together at
// resolution, never earlier.
type Result struct {
	Outcome      Outcome
	HumanMove    string
	OpponentMove string
	Key          [KeySize]byte
	Tag          [TagSize]byte
	ReplayKey    [KeySize]byte
	Transcript   []TranscriptEntry
}

// NewSession starts a session over a validated MoveSet.
func NewSession(cfg Config, ms MoveSet) (*Session, error) {
	if cfg.Rand == nil {
		cfg.Rand = rand.Reader
	}
	if ms.Len() == 0 {
		return nil, ErrTooFewMoves
	}

	tr, err := NewTranscript(cfg.Rand)
	if err != nil {
		return nil, err
	}

	s := &Session{cfg: cfg, moves: ms, rules: NewRules(ms), transcript: tr}
	s.transcript.Append([]byte(evConfigured+" "+strings.Join(ms.Labels(), ",")), time.Now())
	return s, nil
}

// Commit draws the opponent's move uniformly at random and commits to it.
// The returned tag is safe to show the human; everything else stays sealed
// until Resolve.
func (s *Session) Commit() ([TagSize]byte, error) {
	switch s.state {
	case StateConfigured:
	case StateResolved:
		return [TagSize]byte{}, ErrSessionResolved
	default:
		return [TagSize]byte{}, ErrAlreadyCommitted
	}

	i, err := s.drawMove()
	if err != nil {
		return [TagSize]byte{}, err
	}
	s.opponent = s.moves.Label(i)

	c, err := Commit(s.cfg.Rand, s.opponent)
	if err != nil {
		return [TagSize]byte{}, err
	}
	s.commitment = c
	s.state = StateCommitted
	s.transcript.Append([]byte(evCommitted+" "+hex.EncodeToString(c.Tag[:])), time.Now())
	return c.Tag, nil
}

// Tag surfaces the commitment tag for display and opens the session for
// the human's move. Resolving before the tag was surfaced violates the
// protocol ordering, so the transition is recorded here.
func (s *Session) Tag() ([TagSize]byte, error) {
	switch s.state {
	case StateCommitted, StateAwaitingHumanMove:
		s.state = StateAwaitingHumanMove
		return s.commitment.Tag, nil
	case StateConfigured:
		return [TagSize]byte{}, ErrNotCommitted
	default:
		return [TagSize]byte{}, ErrSessionResolved
	}
}

// Resolve fixes the human's move, computes the outcome, and reveals the
// commitment key and the opponent's move. An unknown label leaves the
// session awaiting a valid move.
func (s *Session) Resolve(human string) (Result, error) {
	switch s.state {
	case StateAwaitingHumanMove:
	case StateConfigured:
		return Result{}, ErrNotCommitted
	case StateCommitted:
		return Result{}, ErrTagNotShown
	default:
		return Result{}, ErrSessionResolved
	}

	outcome, err := s.rules.Winner(human, s.opponent)
	if err != nil {
		return Result{}, err
	}

	now := time.Now()
	s.transcript.Append([]byte(evMove+" "+human), now)
	s.transcript.Append([]byte(evRevealed+" "+s.opponent+" "+hex.EncodeToString(s.commitment.Key[:])), now)
	s.transcript.Append([]byte(evOutcome+" "+outcome.String()), now)
	s.state = StateResolved

	return Result{
		Outcome:      outcome,
		HumanMove:    human,
		OpponentMove: s.opponent,
		Key:          s.commitment.Key,
		Tag:          s.commitment.Tag,
		ReplayKey:    s.transcript.ReplayKey(),
		Transcript:   s.transcript.Entries(),
	}, nil
}

// State reports the session's protocol position.
func (s *Session) State() State { return s.state }

func (s *Session) drawMove() (int, error) {
	if s.cfg.FixedMove != nil {
		i := *s.cfg.FixedMove
		if i < 0 || i >= s.moves.Len() {
			return 0, fmt.Errorf("%w: fixed index %d", ErrUnknownMove, i)
		}
		return i, nil
	}
	return uniformIndex(s.cfg.Rand, s.moves.Len())
}

// uniformIndex draws an unbiased index in [0, n) by rejection sampling
// over 64-bit reads from r.
func uniformIndex(r io.Reader, n int) (int, error) {
	// reject the top 2^64 mod n values so every residue is equally likely
	reject := (math.MaxUint64%uint64(n) + 1) % uint64(n)
	var b [8]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("read random move: %w", err)
		}
		v := binary.BigEndian.Uint64(b[:])
		if reject == 0 || v <= math.MaxUint64-reject {
			return int(v % uint64(n)), nil
		}
	}
}

// AuditTranscript replays a resolved session's transcript and checks the
// protocol ordering: the commitment must have been recorded strictly
// before the human's move, and the chain must run through the outcome.
func AuditTranscript(entries []TranscriptEntry, k0 [KeySize]byte) error {
	if len(entries) == 0 {
		return errors.New("no transcript entries")
	}
	if err := VerifyTranscript(entries, k0); err != nil {
		return err
	}

	committed, move := -1, -1
	for i, e := range entries {
		switch {
		case bytes.HasPrefix(e.Msg, []byte(evCommitted)):
			if committed == -1 {
				committed = i
			}
		case bytes.HasPrefix(e.Msg, []byte(evMove)):
			if move == -1 {
				move = i
			}
		}
	}
	if committed == -1 || move == -1 || committed > move {
		return errors.New("commitment not recorded before human move")
	}

	if !bytes.HasPrefix(entries[len(entries)-1].Msg, []byte(evOutcome)) {
		return errors.New("transcript truncated before outcome")
	}
	return nil
}
