// Package stats aggregates planned versus actual time for the current
// plan's time bars and derives the proportional display widths used to
// render them.
package stats

import (
	"math"
	"sync"
	"time"

	"github.com/a-cup-of-joe/reflection/internal/session"
	"github.com/a-cup-of-joe/reflection/internal/store"
)

// Display width constants. The logarithmic mapping keeps short
// durations visually distinguishable without letting long ones grow
// linearly.
const (
	referenceHours = 3.0

	baseWidthFrac = 0.18
	maxWidthFrac  = 0.92
	minWidthFrac  = 0.12
)

// Placeholder for time bars whose activity has been deleted.
const deletedActivityName = "(deleted)"
const deletedActivityColor = "#666666"

// Bar is the per-time-bar projection consumed by the presentation.
type Bar struct {
	TimeBarID    string
	ActivityID   string
	ActivityName string
	Color        string
	Planned      int64 // seconds
	Actual       int64 // seconds
	// CompletionRatio is Actual/Planned, zero when nothing is planned.
	// Deliberately not clamped: over-completion surfaces as > 1.
	CompletionRatio float64
}

// DisplayWidth maps a duration in hours to a bar width inside a
// container of extent w:
//
//	base + (max-base) · log(1+h)/log(1+referenceHours)
//
// clamped to [min, max], where base, max and min are fixed fractions
// of w.
func DisplayWidth(hours, w float64) float64 {
	if hours < 0 {
		hours = 0
	}
	base := baseWidthFrac * w
	maxW := maxWidthFrac * w
	minW := minWidthFrac * w

	width := base + (maxW-base)*math.Log(1+hours)/math.Log(1+referenceHours)
	if width < minW {
		width = minW
	}
	if width > maxW {
		width = maxW
	}
	return width
}

// PlannedWidth returns the bar's display width for a container of
// extent w, scaled by its planned time.
func (b Bar) PlannedWidth(w float64) float64 {
	return DisplayWidth(float64(b.Planned)/3600, w)
}

// ForDay computes the planned-vs-actual projection of the current plan
// against the sessions recorded on the calendar day of t.
func ForDay(s *store.Store, t time.Time) []Bar {
	plan := s.CurrentPlan()

	actualByActivity := make(map[string]int64)
	if day := s.DaySessionOn(t); day != nil {
		for _, sess := range day.Sessions {
			actualByActivity[sess.ActivityID] += sess.Duration
		}
	}

	bars := make([]Bar, 0, len(plan.TimeBars))
	for _, tb := range plan.TimeBars {
		b := Bar{
			TimeBarID:    tb.ID,
			ActivityID:   tb.ActivityID,
			ActivityName: deletedActivityName,
			Color:        deletedActivityColor,
			Planned:      tb.Planned,
			Actual:       actualByActivity[tb.ActivityID],
		}
		if a := s.GetActivity(tb.ActivityID); a != nil {
			b.ActivityName = a.Name
			b.Color = a.Color
		}
		if tb.Planned > 0 {
			b.CompletionRatio = float64(b.Actual) / float64(tb.Planned)
		}
		bars = append(bars, b)
	}
	return bars
}

// Aggregator caches today's projection and recomputes it synchronously
// whenever the store mutates or the session engine records a session.
type Aggregator struct {
	store *store.Store

	mu   sync.Mutex
	bars []Bar
}

func NewAggregator(s *store.Store, eng *session.Engine) *Aggregator {
	a := &Aggregator{store: s}
	a.recompute()
	s.Subscribe(a.recompute)
	if eng != nil {
		eng.Subscribe(a.recompute)
	}
	return a
}

func (a *Aggregator) recompute() {
	bars := ForDay(a.store, time.Now())
	a.mu.Lock()
	a.bars = bars
	a.mu.Unlock()
}

// Today returns the cached projection for today.
func (a *Aggregator) Today() []Bar {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Bar, len(a.bars))
	copy(out, a.bars)
	return out
}
