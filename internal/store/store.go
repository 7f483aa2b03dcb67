package store

import (
	"errors"
	"sync"
)

const (
	keyActivities  = "activities"
	keyPlans       = "plans"
	keyDaySessions = "day-sessions"
	keyCurrentPlan = "current-plan-id"
)

const defaultPlanName = "My Plan"

var (
	// ErrDuplicateName indicates an activity with the same name exists.
	ErrDuplicateName = errors.New("activity name already exists")

	// ErrEmptyName indicates a blank activity name.
	ErrEmptyName = errors.New("activity name required")
)

// Store owns every entity collection and the current-plan pointer. All
// access goes through its methods; collections are id-keyed internally
// and exposed as ordered snapshots. Every mutation is written through
// to the blob before the method returns.
type Store struct {
	mu   sync.RWMutex
	blob Blob

	activities    map[string]Activity
	plans         map[string]Plan
	daySessions   map[string]DaySession
	currentPlanID string

	subs []func()
}

// New loads all collections from blob and repairs the current-plan
// pointer. Malformed or missing data degrades to empty collections.
func New(blob Blob) *Store {
	s := &Store{
		blob:        blob,
		activities:  make(map[string]Activity),
		plans:       make(map[string]Plan),
		daySessions: make(map[string]DaySession),
	}

	for _, a := range loadList[Activity](blob, keyActivities) {
		s.activities[a.ID] = a
	}
	for _, p := range loadList[Plan](blob, keyPlans) {
		s.plans[p.ID] = p
	}
	for _, d := range loadList[DaySession](blob, keyDaySessions) {
		s.daySessions[d.ID] = d
	}
	s.currentPlanID = loadString(blob, keyCurrentPlan)

	if s.repairCurrentPlan() {
		s.savePlans()
		s.saveCurrentPlan()
	}
	return s
}

// NewMemory creates a store over an in-memory blob for testing.
func NewMemory() *Store {
	return New(NewMemoryBlob())
}

// Subscribe registers fn to run synchronously after every committed
// mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// ClearAll empties every collection and reinitializes the default plan.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.activities = make(map[string]Activity)
	s.plans = make(map[string]Plan)
	s.daySessions = make(map[string]DaySession)
	s.currentPlanID = ""
	s.repairCurrentPlan()
	s.saveActivities()
	s.savePlans()
	s.saveDaySessions()
	s.saveCurrentPlan()
	s.mu.Unlock()
	s.notify()
}

// repairCurrentPlan restores the at-most-one-current-plan invariant:
// if the pointer is empty or dangling, the most recently created plan
// becomes current; with no plans at all a default empty plan is
// synthesized. Callers hold the write lock. Reports whether anything
// changed.
func (s *Store) repairCurrentPlan() bool {
	if _, ok := s.plans[s.currentPlanID]; ok {
		return false
	}

	var latest *Plan
	for id := range s.plans {
		p := s.plans[id]
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = &p
		}
	}
	if latest != nil {
		s.currentPlanID = latest.ID
		return true
	}

	def := NewPlan(defaultPlanName)
	s.plans[def.ID] = def
	s.currentPlanID = def.ID
	return true
}

func (s *Store) saveActivities() {
	save(s.blob, keyActivities, s.activityList())
}

func (s *Store) savePlans() {
	save(s.blob, keyPlans, s.planList())
}

func (s *Store) saveDaySessions() {
	save(s.blob, keyDaySessions, s.daySessionList())
}

func (s *Store) saveCurrentPlan() {
	save(s.blob, keyCurrentPlan, s.currentPlanID)
}
