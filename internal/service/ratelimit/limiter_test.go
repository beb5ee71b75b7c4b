package ratelimit

import "testing"

func TestAllowConsumesTokens(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("alice", 3, 0) {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	if l.Allow("alice", 3, 0) {
		t.Fatalf("bucket should be empty")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		l.Allow("alice", 3, 0)
	}
	if !l.Allow("bob", 3, 0) {
		t.Fatalf("bob should have a fresh bucket")
	}
}
