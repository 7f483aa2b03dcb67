package store

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TodayDaySession returns the day session for today's calendar day,
// creating and persisting an empty one if absent. Idempotent within the
// same day.
func (s *Store) TodayDaySession() DaySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daySessionForDay(DayOf(time.Now()))
}

// daySessionForDay fetches or lazily creates the day session whose
// CreatedAt equals day. Callers hold the write lock.
func (s *Store) daySessionForDay(day time.Time) DaySession {
	for _, d := range s.daySessions {
		if d.CreatedAt.Equal(day) {
			return cloneDaySession(d)
		}
	}
	d := DaySession{
		ID:        uuid.NewString(),
		Sessions:  []Session{},
		CreatedAt: day,
	}
	s.daySessions[d.ID] = d
	s.saveDaySessions()
	return cloneDaySession(d)
}

// AddSessionToToday appends a completed focus interval to today's day
// session. This is the sole mutation path for session records.
func (s *Store) AddSessionToToday(activityID string, start time.Time, durationSecs int64) Session {
	if durationSecs < 0 {
		durationSecs = 0
	}
	sess := Session{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		StartTime:  start,
		Duration:   durationSecs,
	}

	s.mu.Lock()
	day := s.daySessionForDay(DayOf(time.Now()))
	stored := s.daySessions[day.ID]
	stored.Sessions = append(stored.Sessions, sess)
	s.daySessions[day.ID] = stored
	s.saveDaySessions()
	s.mu.Unlock()
	s.notify()
	return sess
}

// DaySessionOn returns the day session for the calendar day of t, or
// nil when no sessions were recorded that day.
func (s *Store) DaySessionOn(t time.Time) *DaySession {
	day := DayOf(t)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.daySessions {
		if d.CreatedAt.Equal(day) {
			cp := cloneDaySession(d)
			return &cp
		}
	}
	return nil
}

// DaySessions returns all day sessions ordered by day.
func (s *Store) DaySessions() []DaySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daySessionList()
}

// daySessionList builds the ordered snapshot. Callers hold the lock.
func (s *Store) daySessionList() []DaySession {
	list := make([]DaySession, 0, len(s.daySessions))
	for _, d := range s.daySessions {
		list = append(list, cloneDaySession(d))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list
}

// AllSessions returns every recorded session across all days, ordered
// by start time.
func (s *Store) AllSessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []Session
	for _, d := range s.daySessions {
		all = append(all, d.Sessions...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.Before(all[j].StartTime) })
	return all
}

func cloneDaySession(d DaySession) DaySession {
	sessions := make([]Session, len(d.Sessions))
	copy(sessions, d.Sessions)
	d.Sessions = sessions
	return d
}
