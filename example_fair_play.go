// Package fairduel implements a provably fair human-vs-computer game over
// any odd-sized cyclic generalization of rock-paper-scissors.
package fairduel

// Example: Fair Play Protocol
//
// The opponent commits to its move before the human chooses, using an
// HMAC-SHA256 commitment, so the human can verify afterwards that the
// opponent did not pick its move adaptively.
//
// Protocol Properties:
// 1. Hiding: the tag reveals nothing about the committed move without the key
// 2. Binding: the opponent cannot open the commitment to a different move
// 3. Ordering: the session state machine refuses to accept a human move
//    before the tag has been surfaced, and refuses to reveal the key before
//    the human move is fixed
// 4. Auditability: every protocol event is appended to a forward-secure MAC
//    chain the human can replay after reveal
//
// Usage:
//   // 1. Fix the move cycle and start a session
//   ms, _ := NewMoveSet([]string{"rock", "paper", "scissors"})
//   sess, _ := NewSession(Config{}, ms)
//
//   // 2. Opponent commits; show the tag to the human
//   tag, _ := sess.Commit()
//   shown, _ := sess.Tag()   // Committed -> AwaitingHumanMove
//
//   // 3. Human chooses; outcome, key and opponent move reveal together
//   res, _ := sess.Resolve("rock")
//
//   // 4. Human checks the commitment and the event ordering
//   ok := Verify(res.Key, res.OpponentMove, res.Tag)
//   err := AuditTranscript(res.Transcript, res.ReplayKey)
//
// Attack Scenarios:
//
// Scenario 1: Opponent picks its move after seeing the human's
//   - The tag was shown before the human moved
//   - A different move under the same key produces a different HMAC
//   - Result: Verify returns false, the human rejects the game
//
// Scenario 2: Opponent grinds keys to reuse a tag for two moves
//   - Requires an HMAC-SHA256 collision across keys for a chosen tag
//   - Infeasible; the 256-bit key also prevents offline move guessing
//     even though the move space is tiny
//
// Scenario 3: Opponent reorders the session record after the fact
//   - Transcript entries are chained (μ_i = H(μ_{i-1} || tag_i)) under
//     evolving keys, so moving the COMMITTED event after MOVE breaks the
//     replay from K_0
//   - Result: AuditTranscript fails
//
