package main

import (
	"testing"
	"time"
)

func TestDaysFromCE(t *testing.T) {
	tests := []struct {
		date string
		want int64
	}{
		{"1970-01-01", 719163},
		{"1970-01-02", 719164},
		{"2000-01-01", 730120},
	}
	for _, tt := range tests {
		parsed, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", tt.date, err)
		}
		if got := daysFromCE(parsed); got != tt.want {
			t.Errorf("daysFromCE(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestDaysFromCEConstantWithinADay(t *testing.T) {
	morning := time.Date(2026, 8, 24, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2026, 8, 24, 23, 59, 59, 0, time.UTC)
	if daysFromCE(morning) != daysFromCE(evening) {
		t.Error("Expected the same day number across a calendar day")
	}
	if daysFromCE(evening)+1 != daysFromCE(evening.Add(time.Minute)) {
		t.Error("Expected the day number to advance at midnight UTC")
	}
}

func TestWordOfDayIsStablePerSession(t *testing.T) {
	app := testApp(fakeWordRegistry{})

	first := app.wordOfDay("session-a")
	second := app.wordOfDay("session-a")
	if first != second {
		t.Errorf("Expected repeated lookups to agree, got %d then %d", first, second)
	}
	if want := daysFromCE(time.Now()); first != want {
		t.Errorf("Expected today's day number %d, got %d", want, first)
	}

	// Sessions starting on the same day share the default selection.
	if other := app.wordOfDay("session-b"); other != first {
		t.Errorf("Expected same-day sessions to share seed %d, got %d", first, other)
	}
}

func TestWordOfDayKeepsStoredValue(t *testing.T) {
	app := testApp(fakeWordRegistry{})
	app.Sessions["session-a"] = &PlayerSession{
		Values:         map[string]int64{SessionWordKey: 42},
		LastAccessTime: time.Now(),
	}

	if got := app.wordOfDay("session-a"); got != 42 {
		t.Errorf("Expected the stored seed 42 to win over the default, got %d", got)
	}
}

func TestCleanupStaleSessions(t *testing.T) {
	app := testApp(fakeWordRegistry{})
	app.Sessions["fresh"] = &PlayerSession{
		Values:         make(map[string]int64),
		LastAccessTime: time.Now(),
	}
	app.Sessions["stale"] = &PlayerSession{
		Values:         make(map[string]int64),
		LastAccessTime: time.Now().Add(-2 * time.Hour),
	}

	removed := app.cleanupStaleSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if _, ok := app.Sessions["fresh"]; !ok {
		t.Error("Expected the fresh session to survive cleanup")
	}
	if _, ok := app.Sessions["stale"]; ok {
		t.Error("Expected the stale session to be removed")
	}
}
