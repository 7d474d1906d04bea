package progress

import (
	"testing"
	"time"

	"github.com/pagetrail/pagetrail-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProgress_AppendsNewDay(t *testing.T) {
	ts := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	history := []domain.ReadingSession{{Date: "2024-01-01", PagesRead: 5}}

	out := RecordProgress(history, "2024-01-02", 7, ts)

	require.Len(t, out, 2)
	assert.Equal(t, domain.ReadingSession{Date: "2024-01-02", PagesRead: 7, Timestamp: ts}, out[1])
	assert.Len(t, history, 1)
}

func TestRecordProgress_MergesSameDay(t *testing.T) {
	first := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	second := first.Add(3 * time.Hour)

	out := RecordProgress(nil, "2024-01-02", 10, first)
	out = RecordProgress(out, "2024-01-02", 15, second)

	require.Len(t, out, 1)
	assert.Equal(t, 25, out[0].PagesRead)
	assert.Equal(t, second, out[0].Timestamp)
}

func TestRecordProgress_DoesNotMutateInput(t *testing.T) {
	history := make([]domain.ReadingSession, 1, 4)
	history[0] = domain.ReadingSession{Date: "2024-01-01", PagesRead: 5}

	merged := RecordProgress(history, "2024-01-01", 3, time.Now())
	appended := RecordProgress(history, "2024-01-02", 3, time.Now())

	assert.Equal(t, 5, history[0].PagesRead)
	assert.Equal(t, 8, merged[0].PagesRead)
	require.Len(t, appended, 2)
	// Spare capacity in the input must not be written through.
	assert.Equal(t, domain.ReadingSession{}, history[:2][1])
}

func TestRecordProgress_NonPositiveDelta(t *testing.T) {
	history := []domain.ReadingSession{{Date: "2024-01-01", PagesRead: 5}}

	for _, delta := range []int{0, -3} {
		out := RecordProgress(history, "2024-01-02", delta, time.Now())
		assert.Equal(t, history, out)
	}
	assert.Empty(t, RecordProgress(nil, "2024-01-02", 0, time.Now()))
}

func TestTotalPagesRead(t *testing.T) {
	assert.Equal(t, 0, TotalPagesRead(nil))
	assert.Equal(t, 12, TotalPagesRead([]domain.ReadingSession{{PagesRead: 5}, {PagesRead: 7}}))
}

func TestRecordProgress_MergeKeepsAnnotations(t *testing.T) {
	ts := time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC)
	history := []domain.ReadingSession{{
		Date: "2024-01-02", PagesRead: 10, Timestamp: ts.Add(-2 * time.Hour),
		TimeSpent: 30, Location: "library", Mood: domain.MoodGood,
	}}

	out := RecordProgress(history, "2024-01-02", 5, ts)

	require.Len(t, out, 1)
	assert.Equal(t, 15, out[0].PagesRead)
	assert.Equal(t, 30, out[0].TimeSpent)
	assert.Equal(t, "library", out[0].Location)
	assert.Equal(t, domain.MoodGood, out[0].Mood)
}
