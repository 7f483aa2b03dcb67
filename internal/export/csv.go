package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/a-cup-of-joe/reflection/internal/store"
)

func ToCSV(sessions []store.Session, activities map[string]*store.Activity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Activity", "Start", "Duration (s)", "Duration"}); err != nil {
		return err
	}

	for _, s := range sessions {
		activityName := "Unknown"
		if a, ok := activities[s.ActivityID]; ok {
			activityName = a.Name
		}

		row := []string{
			s.ID,
			activityName,
			s.StartTime.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", s.Duration),
			formatDuration(s.Duration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
