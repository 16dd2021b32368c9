package fairduel

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestCommitVerify_RoundTrip(t *testing.T) {
	c, err := Commit(rand.Reader, "rock")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if !Verify(c.Key, "rock", c.Tag) {
		t.Fatal("verification failed for an honest reveal")
	}
	if Verify(c.Key, "paper", c.Tag) {
		t.Fatal("verification passed for a different move")
	}
}

func TestCommit_DeterministicTag(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)

	c1, err := Commit(bytes.NewReader(key), "scissors")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	c2, err := Commit(bytes.NewReader(key), "scissors")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if c1.Tag != c2.Tag {
		t.Fatal("same key and move produced different tags")
	}

	c3, err := Commit(bytes.NewReader(key), "rock")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if c1.Tag == c3.Tag {
		t.Fatal("different moves produced the same tag under one key")
	}
}

func TestCommit_DistinctKeys(t *testing.T) {
	c1, err := Commit(rand.Reader, "rock")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	c2, err := Commit(rand.Reader, "rock")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if c1.Key == c2.Key {
		t.Fatal("two commits drew the same key")
	}
	if c1.Tag == c2.Tag {
		t.Fatal("two commits over fresh keys produced the same tag")
	}
}

func TestCommit_EntropyFailure(t *testing.T) {
	if _, err := Commit(bytes.NewReader(nil), "rock"); err == nil {
		t.Fatal("expected Commit to fail on an exhausted entropy source")
	}
	short := bytes.Repeat([]byte{0x01}, KeySize-1)
	if _, err := Commit(bytes.NewReader(short), "rock"); err == nil {
		t.Fatal("expected Commit to fail on a short entropy read")
	}
}

func TestVerify_BitFlips(t *testing.T) {
	c, err := Commit(rand.Reader, "lizard")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	for bit := 0; bit < KeySize*8; bit += 7 {
		key := c.Key
		key[bit/8] ^= 1 << (bit % 8)
		if Verify(key, "lizard", c.Tag) {
			t.Fatalf("verification passed with key bit %d flipped", bit)
		}
	}

	for bit := 0; bit < TagSize*8; bit += 7 {
		tag := c.Tag
		tag[bit/8] ^= 1 << (bit % 8)
		if Verify(c.Key, "lizard", tag) {
			t.Fatalf("verification passed with tag bit %d flipped", bit)
		}
	}
}
