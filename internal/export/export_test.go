package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/a-cup-of-joe/reflection/internal/store"
)

func sampleData() ([]store.Session, map[string]*store.Activity) {
	now := time.Now()

	sessions := []store.Session{
		{
			ID:         "s1",
			ActivityID: "a1",
			StartTime:  now.Add(-1 * time.Hour),
			Duration:   3600,
		},
		{
			ID:         "s2",
			ActivityID: "a2",
			StartTime:  now.Add(-30 * time.Minute),
			Duration:   1800,
		},
		{
			ID:         "s3",
			ActivityID: "a1",
			StartTime:  now.Add(-10 * time.Minute),
			Duration:   600,
		},
	}

	activities := map[string]*store.Activity{
		"a1": {ID: "a1", Name: "Deep Work", Color: "#FF0000"},
		"a2": {ID: "a2", Name: "Reading", Color: "#00FF00"},
	}

	return sessions, activities
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	sessions, activities := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(sessions, activities, path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	// Check header
	header := records[0]
	expectedHeader := []string{"ID", "Activity", "Start", "Duration (s)", "Duration"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	// Check first data row
	row := records[1]
	if row[0] != "s1" {
		t.Fatalf("ID = %q, want s1", row[0])
	}
	if row[1] != "Deep Work" {
		t.Fatalf("Activity = %q, want Deep Work", row[1])
	}
	if row[3] != "3600" {
		t.Fatalf("Duration (s) = %q, want 3600", row[3])
	}
	if row[4] != "01:00:00" {
		t.Fatalf("Duration = %q, want 01:00:00", row[4])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := ToCSV(nil, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVUnknownActivity(t *testing.T) {
	sessions := []store.Session{
		{ID: "s1", ActivityID: "gone", StartTime: time.Now(), Duration: 60},
	}
	path := filepath.Join(t.TempDir(), "unknown.csv")

	err := ToCSV(sessions, map[string]*store.Activity{}, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if records[1][1] != "Unknown" {
		t.Fatalf("expected 'Unknown' for missing activity, got %q", records[1][1])
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	sessions := []store.Session{
		{ID: "s1", ActivityID: "a1", StartTime: time.Now(), Duration: 60},
	}
	activities := map[string]*store.Activity{
		"a1": {ID: "a1", Name: `Activity "Special", with commas`},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	err := ToCSV(sessions, activities, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][1] != `Activity "Special", with commas` {
		t.Fatalf("activity name mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	sessions, activities := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	err := ToJSON(sessions, activities, path)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 {
		t.Fatalf("count = %d, want 3", result.Count)
	}
	if len(result.Sessions) != 3 {
		t.Fatalf("sessions = %d, want 3", len(result.Sessions))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}

	// Check first session
	s := result.Sessions[0]
	if s.ID != "s1" {
		t.Fatalf("ID = %q, want s1", s.ID)
	}
	if s.Activity != "Deep Work" {
		t.Fatalf("Activity = %q, want Deep Work", s.Activity)
	}
	if s.DurationSec != 3600 {
		t.Fatalf("DurationSec = %d, want 3600", s.DurationSec)
	}
	if s.Duration != "01:00:00" {
		t.Fatalf("Duration = %q, want 01:00:00", s.Duration)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	err := ToJSON(nil, nil, path)
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Sessions != nil {
		t.Fatal("sessions should be nil/null for empty export")
	}
}

func TestToJSONUnknownActivity(t *testing.T) {
	sessions := []store.Session{
		{ID: "s1", ActivityID: "gone", StartTime: time.Now(), Duration: 60},
	}
	path := filepath.Join(t.TempDir(), "unknown.json")

	ToJSON(sessions, map[string]*store.Activity{}, path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)
	if result.Sessions[0].Activity != "Unknown" {
		t.Fatalf("expected 'Unknown', got %q", result.Sessions[0].Activity)
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, nil, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, nil, path)

	data, _ := os.ReadFile(path)
	// Pretty-printed JSON should contain newlines and indentation
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	sessions, activities := sampleData()
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(sessions, activities, path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	for _, s := range result.Sessions {
		if _, err := time.Parse(time.RFC3339, s.StartTime); err != nil {
			t.Fatalf("start_time is not valid RFC3339: %q", s.StartTime)
		}
	}
}

// ============================================================
// formatDuration (internal helper)
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{60, "00:01:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{90061, "25:01:01"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.secs)
		if got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
