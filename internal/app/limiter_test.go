package app

import (
	"testing"
	"time"
)

func TestJoinLimiterBlocksOverLimit(t *testing.T) {
	l := NewJoinLimiter(2, time.Minute)

	if !l.Allow("c1") || !l.Allow("c1") {
		t.Fatal("first two joins should be allowed")
	}
	if l.Allow("c1") {
		t.Fatal("third join inside the window should be blocked")
	}
	if !l.Allow("c2") {
		t.Fatal("another connection must not share the budget")
	}
}

func TestJoinLimiterWindowExpires(t *testing.T) {
	l := NewJoinLimiter(1, 10*time.Millisecond)

	if !l.Allow("c1") {
		t.Fatal("first join should be allowed")
	}
	if l.Allow("c1") {
		t.Fatal("second immediate join should be blocked")
	}

	time.Sleep(20 * time.Millisecond)
	if !l.Allow("c1") {
		t.Fatal("join after the window should be allowed again")
	}
}

func TestJoinLimiterForgetResetsHistory(t *testing.T) {
	l := NewJoinLimiter(1, time.Minute)

	l.Allow("c1")
	l.Forget("c1")
	if !l.Allow("c1") {
		t.Fatal("forgotten connection should start fresh")
	}
}
