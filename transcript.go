package fairduel

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrChainGap indicates missing or non-sequential transcript entries.
var ErrChainGap = errors.New("gap or reordering detected")

// ErrChainTagMismatch indicates a transcript tag failure, suggesting
// tampering or a wrong replay key.
var ErrChainTagMismatch = errors.New("tag mismatch: tampering or wrong key")

// TranscriptEntry is one protocol event together with its aggregate chain tag.
type TranscriptEntry struct {
	Index uint64
	TS    int64 // unix nanos
	Msg   []byte
	Tag   [TagSize]byte
}

// Transcript is a forward-secure MAC chain over the protocol events of one
// session. Entry i is tagged under key K_i = H(K_{i-1}) and folded into the
// aggregate:
//
//	μ_1 = H(tag_1)
//	μ_i = H(μ_{i-1} || tag_i)
//
// Once the human holds K_0 they can replay the chain and confirm the
// commitment event was recorded before their move.
type Transcript struct {
	i       uint64
	k0      [KeySize]byte
	key     [KeySize]byte
	tag     [TagSize]byte
	entries []TranscriptEntry
}

// NewTranscript draws the initial chain key K_0 from r.
func NewTranscript(r io.Reader) (*Transcript, error) {
	t := &Transcript{}
	if _, err := io.ReadFull(r, t.k0[:]); err != nil {
		return nil, fmt.Errorf("read transcript key: %w", err)
	}
	t.key = t.k0
	return t, nil
}

// Append records one event. The key evolves before tagging, so a later
// compromise cannot forge entries already in the chain.
func (t *Transcript) Append(msg []byte, ts time.Time) TranscriptEntry {
	t.i++
	fwdKey(&t.key)

	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], t.i)
	var tsb [8]byte
	binary.BigEndian.PutUint64(tsb[:], uint64(ts.UnixNano()))

	m := mac(t.key[:], idx[:], tsb[:], msg)

	var tag [TagSize]byte
	if t.i == 1 {
		tag = htag(m)
	} else {
		tag = fold(t.tag, m)
	}

	e := TranscriptEntry{
		Index: t.i,
		TS:    ts.UnixNano(),
		Msg:   append([]byte(nil), msg...),
		Tag:   tag,
	}
	t.entries = append(t.entries, e)
	t.tag = tag
	return e
}

// Entries returns the recorded events in order.
func (t *Transcript) Entries() []TranscriptEntry {
	return append([]TranscriptEntry(nil), t.entries...)
}

// ReplayKey returns K_0. It must only be handed out at reveal time: with
// K_0 the holder can rewrite the chain.
func (t *Transcript) ReplayKey() [KeySize]byte { return t.k0 }

// VerifyTranscript replays entries from K_0 and checks every aggregate tag.
// It detects tampering and reordering; completeness of the event sequence
// is checked by AuditTranscript, which knows the protocol's final event.
func VerifyTranscript(entries []TranscriptEntry, k0 [KeySize]byte) error {
	key := k0
	var prev [TagSize]byte
	var expect uint64

	for _, e := range entries {
		expect++
		if e.Index != expect {
			return ErrChainGap
		}
		fwdKey(&key)

		var idx [8]byte
		binary.BigEndian.PutUint64(idx[:], e.Index)
		var tsb [8]byte
		binary.BigEndian.PutUint64(tsb[:], uint64(e.TS))

		m := mac(key[:], idx[:], tsb[:], e.Msg)
		var tag [TagSize]byte
		if e.Index == 1 {
			tag = htag(m)
		} else {
			tag = fold(prev, m)
		}

		if !hmac.Equal(tag[:], e.Tag[:]) {
			return ErrChainTagMismatch
		}
		prev = tag
	}
	return nil
}

// htag computes H(tag) — used to initialize μ_1.
func htag(tag [TagSize]byte) [TagSize]byte { return sha256.Sum256(tag[:]) }

// fwdKey performs forward-secure key evolution: K_i = H(K_{i-1}).
func fwdKey(k *[KeySize]byte) { h := sha256.Sum256(k[:]); copy(k[:], h[:]) }

func fold(prev, mac [TagSize]byte) [TagSize]byte {
	h := sha256.New()
	_, _ = h.Write(prev[:])
	_, _ = h.Write(mac[:])
	var out [TagSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
