package fairduel

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"
)

// KeySize is the size in bytes of commitment and transcript keys (256 bits).
const KeySize = 32

// TagSize is the size in bytes of all tags (SHA-256 output size).
const TagSize = 32

// Commitment binds a fresh random key to the opponent's move. Tag is the
// only field that may leave the opponent's side before the human's move is
// fixed; Key stays sealed until reveal.
type Commitment struct {
	Key [KeySize]byte
	Tag [TagSize]byte
}

// Commit draws a key from r and computes Tag = HMAC-SHA256(key, move).
// The 256-bit key keeps the move unguessable from the tag even though the
// move space is tiny.
func Commit(r io.Reader, move string) (Commitment, error) {
	var c Commitment
	if _, err := io.ReadFull(r, c.Key[:]); err != nil {
		return Commitment{}, fmt.Errorf("read commitment key: %w", err)
	}
	c.Tag = mac(c.Key[:], []byte(move))
	return c, nil
}

// Verify recomputes the tag for (key, move) and compares it to tag in
// constant time. Deterministic and side-effect free; a false result means
// the reveal does not match the commitment shown before the human moved.
func Verify(key [KeySize]byte, move string, tag [TagSize]byte) bool {
	want := mac(key[:], []byte(move))
	return hmac.Equal(want[:], tag[:])
}

func mac(key []byte, chunks ...[]byte) [TagSize]byte {
	h := hmac.New(sha256.New, key)
	for _, c := range chunks {
		_, _ = h.Write(c)
	}
	var out [TagSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
