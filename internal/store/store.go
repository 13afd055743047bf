// Package store persists appointments as a single JSON file mapping channel
// IDs to message IDs to appointment records. The file is read once at
// startup and rewritten in full after every mutation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Appointment is one scheduled event announcement. DateTime is kept as
// formatted text in the configured layout so the file stays readable and
// compatible with records written by earlier versions of the bot.
type Appointment struct {
	DateTime string `json:"date_time"`
	// Reminder is the live countdown: minutes before DateTime to send the
	// advance notice, 0 once that notice has fired.
	Reminder int `json:"reminder"`
	// OriginalReminder keeps the reminder as originally requested so that a
	// recurring appointment gets its advance notice back on re-creation.
	OriginalReminder int    `json:"original_reminder,omitempty"`
	Title            string `json:"title"`
	AuthorID         int64  `json:"author_id"`
	Recurring        int    `json:"recurring,omitempty"`
}

// ReminderSpec returns the reminder minutes to use when synthesizing the
// next occurrence of a recurring appointment. Records written before
// OriginalReminder existed fall back to the live value.
func (a *Appointment) ReminderSpec() int {
	if a.OriginalReminder > 0 {
		return a.OriginalReminder
	}
	return a.Reminder
}

// Store owns the in-memory appointment mapping and its backing file. The
// mutex guards the maps; handlers and the scheduler tick run on separate
// goroutines.
type Store struct {
	mu       sync.Mutex
	path     string
	channels map[string]map[string]*Appointment
}

func New(path string) *Store {
	return &Store{
		path:     path,
		channels: make(map[string]map[string]*Appointment),
	}
}

// Load reads the whole appointment file. A missing or malformed file is an
// error; the caller must not run with an undefined store.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("appointments file %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	channels := make(map[string]map[string]*Appointment)
	if err := json.Unmarshal(data, &channels); err != nil {
		return fmt.Errorf("appointments file %s: %w", s.path, err)
	}
	s.channels = channels
	return nil
}

// Save rewrites the whole file. Not atomic, a crash mid-write can corrupt
// the file. The lock is held across the write so concurrent saves cannot
// land an older marshal after a newer one.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(s.channels)
	if err != nil {
		return fmt.Errorf("marshal appointments: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write appointments file %s: %w", s.path, err)
	}
	return nil
}

// ZeroReminder marks the advance notice as fired. Records are shared with
// snapshots, so the field write has to happen under the lock.
func (s *Store) ZeroReminder(channelID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.channels[channelID][messageID]; ok {
		a.Reminder = 0
	}
}

func (s *Store) Get(channelID, messageID string) (*Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.channels[channelID][messageID]
	return a, ok
}

func (s *Store) Add(channelID, messageID string, a *Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channels[channelID] == nil {
		s.channels[channelID] = make(map[string]*Appointment)
	}
	s.channels[channelID][messageID] = a
}

// Remove drops the appointment and reports whether it existed. Channels
// left empty stay in the map, matching the historical file shape.
func (s *Store) Remove(channelID, messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[channelID][messageID]; !ok {
		return false
	}
	delete(s.channels[channelID], messageID)
	return true
}

// ChannelIDs returns the IDs of all channels that have appointments.
func (s *Store) ChannelIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.channels))
	for id := range s.channels {
		ids = append(ids, id)
	}
	return ids
}

// Channel returns a snapshot of one channel's appointments. The map is a
// copy, the records are shared.
func (s *Store) Channel(channelID string) map[string]*Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string]*Appointment, len(s.channels[channelID]))
	for id, a := range s.channels[channelID] {
		snapshot[id] = a
	}
	return snapshot
}

// Counts returns the number of live appointments per channel.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int, len(s.channels))
	for id, apps := range s.channels {
		counts[id] = len(apps)
	}
	return counts
}
