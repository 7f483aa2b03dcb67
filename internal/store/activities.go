package store

import (
	"sort"
	"time"
)

// AddActivity inserts a iff its name is unused. Names are compared
// case-sensitively across the whole collection.
func (s *Store) AddActivity(a Activity) error {
	s.mu.Lock()
	if a.Name == "" {
		s.mu.Unlock()
		return ErrEmptyName
	}
	for _, existing := range s.activities {
		if existing.Name == a.Name {
			s.mu.Unlock()
			return ErrDuplicateName
		}
	}
	s.activities[a.ID] = a
	s.saveActivities()
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateActivity replaces the activity with a's id. No-op if absent.
func (s *Store) UpdateActivity(a Activity) {
	s.mu.Lock()
	if _, ok := s.activities[a.ID]; !ok {
		s.mu.Unlock()
		return
	}
	a.UpdatedAt = time.Now()
	s.activities[a.ID] = a
	s.saveActivities()
	s.mu.Unlock()
	s.notify()
}

// DeleteActivity removes the activity by id. Referencing time bars and
// sessions are left in place; readers resolve the missing activity
// defensively.
func (s *Store) DeleteActivity(id string) {
	s.mu.Lock()
	if _, ok := s.activities[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.activities, id)
	s.saveActivities()
	s.mu.Unlock()
	s.notify()
}

// GetActivity returns the activity by id, or nil when absent.
func (s *Store) GetActivity(id string) *Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	if !ok {
		return nil
	}
	return &a
}

// Activities returns all activities ordered by name.
func (s *Store) Activities() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activityList()
}

// activityList builds the ordered snapshot. Callers hold the lock.
func (s *Store) activityList() []Activity {
	list := make([]Activity, 0, len(s.activities))
	for _, a := range s.activities {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
