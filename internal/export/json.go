package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/a-cup-of-joe/reflection/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Activity    string `json:"activity"`
	ActivityID  string `json:"activity_id"`
	StartTime   string `json:"start_time"`
	DurationSec int64  `json:"duration_seconds"`
	Duration    string `json:"duration"`
}

func ToJSON(sessions []store.Session, activities map[string]*store.Activity, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		activityName := "Unknown"
		if a, ok := activities[s.ActivityID]; ok {
			activityName = a.Name
		}

		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			Activity:    activityName,
			ActivityID:  s.ActivityID,
			StartTime:   s.StartTime.Local().Format(time.RFC3339),
			DurationSec: s.Duration,
			Duration:    formatDuration(s.Duration),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
