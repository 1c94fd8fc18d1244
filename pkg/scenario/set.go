package scenario

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned when a scenario ID is not in the set.
var ErrNotFound = errors.New("scenario not found")

// Set holds independent scenario copies for comparison. It lives only in
// memory; values going in and out are cloned.
type Set struct {
	mu    sync.Mutex
	order []string
	byID  map[string]Scenario
	now   func() time.Time
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{
		byID: make(map[string]Scenario),
		now:  time.Now,
	}
}

// Add stores a copy of sc.
func (s *Set) Add(sc Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[sc.ID]; !ok {
		s.order = append(s.order, sc.ID)
	}
	s.byID[sc.ID] = sc.Clone()
}

// Get returns a copy of the scenario with the given ID.
func (s *Set) Get(id string) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.byID[id]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sc.Clone(), nil
}

// List returns copies of all scenarios in insertion order.
func (s *Set) List() []Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Scenario, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out
}

// Duplicate copies an existing scenario under a new ID. An empty name
// becomes "<original> (copy)".
func (s *Set) Duplicate(id, name string) (Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.byID[id]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	dup := src.Clone()
	dup.ID = newID()
	dup.CreatedAt = s.now()
	dup.Name = name
	if dup.Name == "" {
		dup.Name = src.Name + " (copy)"
	}
	s.order = append(s.order, dup.ID)
	s.byID[dup.ID] = dup
	return dup.Clone(), nil
}

// Delete removes a scenario. Other scenarios are unaffected.
func (s *Set) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of scenarios held.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
