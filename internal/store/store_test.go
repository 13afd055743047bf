package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	s := New(path)
	want := &Appointment{
		DateTime:         "01.01.2030 12:00",
		Reminder:         0,
		OriginalReminder: 30,
		Title:            "Team Meeting",
		AuthorID:         123456789,
		Recurring:        60,
	}
	s.Add("chan", "msg", want)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded := New(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	got, ok := reloaded.Get("chan", "msg")
	if !ok {
		t.Fatal("appointment missing after reload")
	}
	if *got != *want {
		t.Errorf("reloaded appointment = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"))
	if err := s.Load(); err == nil {
		t.Error("Load with missing file succeeded")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	s := New(path)
	if err := s.Load(); err == nil {
		t.Error("Load with malformed file succeeded")
	}
}

func TestRemove(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "a.json"))
	s.Add("chan", "msg", &Appointment{Title: "T"})

	if !s.Remove("chan", "msg") {
		t.Error("Remove of existing appointment returned false")
	}
	if s.Remove("chan", "msg") {
		t.Error("second Remove returned true")
	}
	if _, ok := s.Get("chan", "msg"); ok {
		t.Error("appointment still present after Remove")
	}
}

func TestCounts(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "a.json"))
	s.Add("a", "1", &Appointment{})
	s.Add("a", "2", &Appointment{})
	s.Add("b", "3", &Appointment{})

	counts := s.Counts()
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Errorf("Counts = %v", counts)
	}
}

func TestReminderSpecFallback(t *testing.T) {
	withOriginal := &Appointment{Reminder: 0, OriginalReminder: 30}
	if got := withOriginal.ReminderSpec(); got != 30 {
		t.Errorf("ReminderSpec = %d, want 30", got)
	}
	// Records from before original_reminder existed.
	legacy := &Appointment{Reminder: 15}
	if got := legacy.ReminderSpec(); got != 15 {
		t.Errorf("legacy ReminderSpec = %d, want 15", got)
	}
}
