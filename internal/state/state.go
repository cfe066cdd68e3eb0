// Package state persists which (trip, contact city) pairs already got their
// outreach reminder.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Pair identifies one notified (trip, contact city) combination.
type Pair struct {
	TripID  string `json:"trip_id"`
	CityKey string `json:"city_key"`
}

type stateFile struct {
	Notified []Pair `json:"notified"`
}

// Store is the persisted set of notified pairs. Marks are flushed to disk as
// they happen, so an interrupted run keeps everything recorded so far.
type Store struct {
	mu            sync.Mutex
	path          string
	pairs         map[Pair]struct{}
	ignoreHistory bool
}

// Load reads the state file at path. A missing file is an empty store; a
// file that cannot be read or parsed is an error, because running against an
// unverifiable history risks duplicate reminders.
func Load(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		pairs: map[Pair]struct{}{},
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return s, nil
	}

	var f stateFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", s.path, err)
	}
	for _, p := range f.Notified {
		s.pairs[p] = struct{}{}
	}
	return s, nil
}

// IgnoreHistory makes IsNotified answer false for the rest of the run.
// Persisted state is untouched and marks still persist normally.
func (s *Store) IgnoreHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignoreHistory = true
}

func (s *Store) IsNotified(tripID, cityKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ignoreHistory {
		return false
	}
	_, ok := s.pairs[Pair{TripID: tripID, CityKey: cityKey}]
	return ok
}

// MarkNotified records the pair and flushes the store. Marking a pair twice
// is a no-op.
func (s *Store) MarkNotified(tripID, cityKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Pair{TripID: tripID, CityKey: cityKey}
	if _, ok := s.pairs[p]; ok {
		return nil
	}
	s.pairs[p] = struct{}{}
	return s.saveLocked()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pairs)
}

func (s *Store) saveLocked() error {
	f := stateFile{Notified: make([]Pair, 0, len(s.pairs))}
	for p := range s.pairs {
		f.Notified = append(f.Notified, p)
	}
	sort.Slice(f.Notified, func(i, j int) bool {
		if f.Notified[i].TripID == f.Notified[j].TripID {
			return f.Notified[i].CityKey < f.Notified[j].CityKey
		}
		return f.Notified[i].TripID < f.Notified[j].TripID
	})

	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("flush state file: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("flush state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("flush state file: %w", err)
	}
	return nil
}
