package runs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: create a test run store
func createTestRunStore(t *testing.T) *RunStore {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewRunStore(dbPath)
	require.NoError(t, err, "should create run store")
	t.Cleanup(func() { store.Close() })
	return store
}

// Test helper: a finished run of stage
func createTestRun(stage, status string, started time.Time) *Run {
	return &Run{
		Stage:      stage,
		Status:     status,
		Path:       stage + ".txt",
		Pages:      3,
		Entries:    120,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
	}
}

// TestNewRunStore_Empty verifies a new database has no runs
func TestNewRunStore_Empty(t *testing.T) {
	store := createTestRunStore(t)

	runs, err := store.List(RunFilter{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

// TestRecord_AssignsID verifies runs get a UUID and round-trip
func TestRecord_AssignsID(t *testing.T) {
	store := createTestRunStore(t)
	started := time.Date(2026, 10, 19, 8, 30, 0, 123456789, time.UTC)
	run := createTestRun("scrape", "written", started)

	require.NoError(t, store.Record(run))
	assert.NotEqual(t, uuid.Nil, run.RunID, "should generate UUID")

	last, err := store.Last("scrape")
	require.NoError(t, err)
	assert.Equal(t, run.RunID, last.RunID)
	assert.Equal(t, "written", last.Status)
	assert.Equal(t, "scrape.txt", last.Path)
	assert.Equal(t, 3, last.Pages)
	assert.Equal(t, 120, last.Entries)
	assert.Nil(t, last.Error)
	assert.True(t, started.Equal(last.StartedAt))
	assert.Equal(t, 2*time.Second, last.Duration())
}

// TestRecord_KeepsError verifies the error text is stored
func TestRecord_KeepsError(t *testing.T) {
	store := createTestRunStore(t)
	run := createTestRun("scrape", "written", time.Now())
	msg := "transport error on page 4"
	run.Error = &msg

	require.NoError(t, store.Record(run))

	last, err := store.Last("scrape")
	require.NoError(t, err)
	require.NotNil(t, last.Error)
	assert.Equal(t, msg, *last.Error)
}

// TestRecord_DuplicateID verifies run IDs are unique
func TestRecord_DuplicateID(t *testing.T) {
	store := createTestRunStore(t)
	run := createTestRun("filter", "written", time.Now())

	require.NoError(t, store.Record(run))
	assert.Error(t, store.Record(run))
}

// TestList_OrderAndFilter verifies most-recent-first order, stage filter
// and limit
func TestList_OrderAndFilter(t *testing.T) {
	store := createTestRunStore(t)
	base := time.Now()

	require.NoError(t, store.Record(createTestRun("scrape", "written", base)))
	require.NoError(t, store.Record(createTestRun("filter", "written", base.Add(time.Second))))
	require.NoError(t, store.Record(createTestRun("scrape", "skipped", base.Add(2*time.Second))))

	all, err := store.List(RunFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "skipped", all[0].Status, "most recent first")

	stage := "scrape"
	scrapes, err := store.List(RunFilter{Stage: &stage})
	require.NoError(t, err)
	require.Len(t, scrapes, 2)
	for _, r := range scrapes {
		assert.Equal(t, "scrape", r.Stage)
	}

	limited, err := store.List(RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

// TestLast_NotFound verifies the sentinel error
func TestLast_NotFound(t *testing.T) {
	store := createTestRunStore(t)

	_, err := store.Last("filter")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
