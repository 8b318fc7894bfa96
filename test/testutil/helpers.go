// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/alwahis/ride-search/internal/domain"
	"github.com/alwahis/ride-search/internal/infrastructure/timeutil"
)

// ProjectRoot returns the repository root directory.
func ProjectRoot(t *testing.T) string {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	return filepath.Join(filepath.Dir(currentFile), "..", "..")
}

// SeedFilePath returns the path of the development seed file.
func SeedFilePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(ProjectRoot(t), "docs", "seed", "rides.yaml")
}

// LoadSeedYAML loads the raw development seed file.
func LoadSeedYAML(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(SeedFilePath(t))
	if err != nil {
		t.Fatalf("Failed to load seed file: %v", err)
	}
	return data
}

// Baghdad is the reference zone the service runs in by default.
func Baghdad() *time.Location {
	return timeutil.MustGetLocation(timeutil.Baghdad)
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// IntPtr returns a pointer to an int.
// Convenience function for optional criteria fields.
func IntPtr(i int) *int {
	return &i
}

// RideIDs returns the IDs of rides in order.
func RideIDs(rides []domain.Ride) []string {
	ids := make([]string, len(rides))
	for i, r := range rides {
		ids[i] = r.ID
	}
	return ids
}
