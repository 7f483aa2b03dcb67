package store

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeBar is one planned allocation inside a plan. It never exists
// outside its owning plan's ordered sequence.
type TimeBar struct {
	ID         string `json:"id"`
	ActivityID string `json:"activity_id"`
	Planned    int64  `json:"planned_seconds"` // seconds
}

type Plan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TimeBars  []TimeBar `json:"time_bars"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is an immutable record of one completed focus interval.
type Session struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	StartTime  time.Time `json:"start_time"`
	Duration   int64     `json:"duration_seconds"` // seconds
}

// DaySession groups all sessions recorded on one calendar day.
// CreatedAt is truncated to local midnight and unique per day.
type DaySession struct {
	ID        string    `json:"id"`
	Sessions  []Session `json:"sessions"`
	CreatedAt time.Time `json:"created_at"`
}

func NewActivity(name, color string) Activity {
	now := time.Now()
	return Activity{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTimeBar(activityID string, plannedSecs int64) TimeBar {
	if plannedSecs < 0 {
		plannedSecs = 0
	}
	return TimeBar{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		Planned:    plannedSecs,
	}
}

func NewPlan(name string) Plan {
	now := time.Now()
	return Plan{
		ID:        uuid.NewString(),
		Name:      name,
		TimeBars:  []TimeBar{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DayOf truncates t to midnight in t's location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
