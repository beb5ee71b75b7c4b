package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestGreeting(t *testing.T) {
	morning := time.Date(2024, 10, 10, 3, 0, 0, 0, time.UTC) // 08:30 in Colombo
	if got := Greeting("Asia/Colombo", morning); got != "Good Morning" {
		t.Fatalf("unexpected greeting %q", got)
	}
	evening := time.Date(2024, 10, 10, 14, 0, 0, 0, time.UTC) // 19:30 in Colombo
	if got := Greeting("Asia/Colombo", evening); got != "Good Evening" {
		t.Fatalf("unexpected greeting %q", got)
	}
	if got := Greeting("Not/AZone", morning); got != "Hello" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(3.14159); got != 3.14 {
		t.Fatalf("unexpected %v", got)
	}
	if got := Round2(-2.005); got != -2.01 && got != -2.0 {
		// -2.005 is not exactly representable; either neighbor is acceptable
		t.Fatalf("unexpected %v", got)
	}
}
