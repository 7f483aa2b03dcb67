package store

import (
	"sort"
	"time"
)

// AddPlan inserts p. No-op if a plan with the same id already exists.
func (s *Store) AddPlan(p Plan) {
	s.mu.Lock()
	if _, ok := s.plans[p.ID]; ok {
		s.mu.Unlock()
		return
	}
	s.plans[p.ID] = p
	s.savePlans()
	s.mu.Unlock()
	s.notify()
}

// UpdatePlan replaces the plan with p's id. No-op if absent.
func (s *Store) UpdatePlan(p Plan) {
	s.mu.Lock()
	if _, ok := s.plans[p.ID]; !ok {
		s.mu.Unlock()
		return
	}
	p.UpdatedAt = time.Now()
	s.plans[p.ID] = p
	s.savePlans()
	s.mu.Unlock()
	s.notify()
}

// DeletePlan removes the plan by id. Deleting the current plan repairs
// the pointer before returning, so readers always observe a valid
// current plan.
func (s *Store) DeletePlan(id string) {
	s.mu.Lock()
	if _, ok := s.plans[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.plans, id)
	repaired := s.repairCurrentPlan()
	s.savePlans()
	if repaired {
		s.saveCurrentPlan()
	}
	s.mu.Unlock()
	s.notify()
}

// SetCurrentPlan makes p current, inserting it first if the store does
// not hold it yet.
func (s *Store) SetCurrentPlan(p Plan) {
	s.mu.Lock()
	if _, ok := s.plans[p.ID]; !ok {
		s.plans[p.ID] = p
		s.savePlans()
	}
	s.currentPlanID = p.ID
	s.saveCurrentPlan()
	s.mu.Unlock()
	s.notify()
}

// CurrentPlan returns a snapshot of the current plan. The repair
// invariant guarantees one exists.
func (s *Store) CurrentPlan() Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePlan(s.plans[s.currentPlanID])
}

// GetPlan returns the plan by id, or nil when absent.
func (s *Store) GetPlan(id string) *Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return nil
	}
	cp := clonePlan(p)
	return &cp
}

// Plans returns all plans ordered by creation time.
func (s *Store) Plans() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planList()
}

// planList builds the ordered snapshot. Callers hold the lock.
func (s *Store) planList() []Plan {
	list := make([]Plan, 0, len(s.plans))
	for _, p := range s.plans {
		list = append(list, clonePlan(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list
}

func clonePlan(p Plan) Plan {
	bars := make([]TimeBar, len(p.TimeBars))
	copy(bars, p.TimeBars)
	p.TimeBars = bars
	return p
}

// --- Plan editor ---

// AddTimeBar appends tb to the plan's sequence. Negative planned time
// is clamped to zero.
func (s *Store) AddTimeBar(planID string, tb TimeBar) {
	if tb.Planned < 0 {
		tb.Planned = 0
	}
	s.mutatePlan(planID, func(p *Plan) {
		p.TimeBars = append(p.TimeBars, tb)
	})
}

// UpdateTimeBar replaces the bar with tb's id, appending when absent.
// Negative planned time is clamped to zero.
func (s *Store) UpdateTimeBar(planID string, tb TimeBar) {
	if tb.Planned < 0 {
		tb.Planned = 0
	}
	s.mutatePlan(planID, func(p *Plan) {
		for i := range p.TimeBars {
			if p.TimeBars[i].ID == tb.ID {
				p.TimeBars[i] = tb
				return
			}
		}
		p.TimeBars = append(p.TimeBars, tb)
	})
}

// DeleteTimeBar removes the bar by id. No-op when absent.
func (s *Store) DeleteTimeBar(planID, timeBarID string) {
	s.mutatePlan(planID, func(p *Plan) {
		for i := range p.TimeBars {
			if p.TimeBars[i].ID == timeBarID {
				p.TimeBars = append(p.TimeBars[:i], p.TimeBars[i+1:]...)
				return
			}
		}
	})
}

// MoveTimeBar removes the bar at from and reinserts it at to. Out of
// range or equal indices are silent no-ops, defending against stale
// indices from concurrent UI state.
func (s *Store) MoveTimeBar(planID string, from, to int) {
	s.mutatePlan(planID, func(p *Plan) {
		n := len(p.TimeBars)
		if from < 0 || from >= n || to < 0 || to >= n || from == to {
			return
		}
		bar := p.TimeBars[from]
		rest := append(p.TimeBars[:from], p.TimeBars[from+1:]...)
		p.TimeBars = append(rest[:to], append([]TimeBar{bar}, rest[to:]...)...)
	})
}

func (s *Store) mutatePlan(planID string, fn func(*Plan)) {
	s.mu.Lock()
	p, ok := s.plans[planID]
	if !ok {
		s.mu.Unlock()
		return
	}
	p = clonePlan(p)
	fn(&p)
	p.UpdatedAt = time.Now()
	s.plans[planID] = p
	s.savePlans()
	s.mu.Unlock()
	s.notify()
}
