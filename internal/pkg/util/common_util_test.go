package util

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My First Project", "my-first-project"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Hello, World!", "hello-world"},
		{"Already-Kebab", "already-kebab"},
		{"C++ & Go (2026)", "c-go-2026"},
	}
	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestSlugWithSuffix(t *testing.T) {
	got := SlugWithSuffix("my-project")
	if !strings.HasPrefix(got, "my-project-") {
		t.Fatalf("suffix slug must keep the base, got %q", got)
	}
	if len(got) <= len("my-project-") {
		t.Fatalf("suffix slug must append something, got %q", got)
	}
}

func TestGetMidnightIn(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// UTC 的 8 月 30 日 20:00，在东五区半已是 8 月 31 日
	instant := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)

	gotUTC := GetMidnightIn(instant, time.UTC)
	wantUTC := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !gotUTC.Equal(wantUTC) {
		t.Fatalf("utc midnight = %v, want %v", gotUTC, wantUTC)
	}

	gotKolkata := GetMidnightIn(instant, kolkata)
	wantKolkata := time.Date(2026, 8, 31, 0, 0, 0, 0, kolkata)
	if !gotKolkata.Equal(wantKolkata) {
		t.Fatalf("kolkata midnight = %v, want %v", gotKolkata, wantKolkata)
	}

	// 幂等：零点再归一仍是自身
	again := GetMidnightIn(gotKolkata, kolkata)
	if !again.Equal(gotKolkata) {
		t.Fatalf("midnight must be a fixed point, got %v", again)
	}
}
