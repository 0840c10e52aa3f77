package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lunabrook/moodscope/internal/common"
	"github.com/lunabrook/moodscope/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage opens a migrated store backed by a temp-dir database.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "moodscope-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// saveAnalysis persists a fresh record built from real scores and returns it.
func saveAnalysis(t *testing.T, store *SQLiteStorage, ts time.Time, notes string, scores ...model.EmotionScore) *model.CheckInRecord {
	t.Helper()

	analysis := model.NewEmotionAnalysis(scores)
	analysis.CreatedAt = ts
	record, err := model.NewCheckInRecord(analysis, notes)
	require.NoError(t, err)
	require.NoError(t, store.SaveCheckIn(context.Background(), record))
	return record
}

func TestSQLiteStorage_SaveAndRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	ts := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	scores := []model.EmotionScore{
		model.NewEmotionScore(model.EmotionHappy, 0.9),
		model.NewEmotionScore(model.EmotionCalm, 0.5),
	}
	saved := saveAnalysis(t, store, ts, "good morning", scores...)

	records, err := store.ListCheckIns(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "happy", got.PrimaryEmotion)
	assert.Equal(t, "good morning", got.UserNotes)
	assert.True(t, got.Timestamp.Equal(ts))

	// The serialized score list survives the trip intact.
	gotScores, err := got.Scores()
	require.NoError(t, err)
	require.Len(t, gotScores, 2)
	assert.Equal(t, model.EmotionHappy, gotScores[0].Emotion)
	assert.InDelta(t, 0.9, gotScores[0].Confidence, 1e-9)

	rebuilt, err := got.Analysis()
	require.NoError(t, err)
	assert.Equal(t, model.EmotionHappy, rebuilt.PrimaryEmotion())
}

func TestSQLiteStorage_ListOrdering(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	saveAnalysis(t, store, base, "oldest", model.NewEmotionScore(model.EmotionSad, 0.6))
	saveAnalysis(t, store, base.AddDate(0, 0, 2), "newest", model.NewEmotionScore(model.EmotionHappy, 0.8))
	saveAnalysis(t, store, base.AddDate(0, 0, 1), "middle", model.NewEmotionScore(model.EmotionCalm, 0.7))

	records, err := store.ListCheckIns(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "newest", records[0].UserNotes)
	assert.Equal(t, "middle", records[1].UserNotes)
	assert.Equal(t, "oldest", records[2].UserNotes)
}

func TestSQLiteStorage_DateRangeInclusiveBounds(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	twoDaysAgo := now.AddDate(0, 0, -2)

	saveAnalysis(t, store, twoDaysAgo, "excluded", model.NewEmotionScore(model.EmotionSad, 0.5))
	saveAnalysis(t, store, yesterday, "boundary-start", model.NewEmotionScore(model.EmotionCalm, 0.5))
	saveAnalysis(t, store, now, "boundary-end", model.NewEmotionScore(model.EmotionHappy, 0.5))

	records, err := store.GetCheckInsByDateRange(ctx, yesterday, now)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "boundary-end", records[0].UserNotes)
	assert.Equal(t, "boundary-start", records[1].UserNotes)
}

func TestSQLiteStorage_GetCheckIn(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	saved := saveAnalysis(t, store, time.Now().UTC(), "", model.NewEmotionScore(model.EmotionExcited, 0.8))

	got, err := store.GetCheckIn(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	_, err = store.GetCheckIn(ctx, "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_UpdateCheckInTimestamp(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	saved := saveAnalysis(t, store, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), "", model.NewEmotionScore(model.EmotionHappy, 0.9))

	backfilled := time.Date(2025, 6, 8, 21, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpdateCheckInTimestamp(ctx, saved.ID, backfilled))

	got, err := store.GetCheckIn(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, got.Timestamp.Equal(backfilled))

	assert.ErrorIs(t, store.UpdateCheckInTimestamp(ctx, "no-such-id", backfilled), common.ErrNotFound)
}

func TestSQLiteStorage_Delete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	saved := saveAnalysis(t, store, time.Now().UTC(), "", model.NewEmotionScore(model.EmotionHappy, 0.9))
	require.NoError(t, store.DeleteCheckIn(ctx, saved.ID))

	records, err := store.ListCheckIns(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, store.DeleteCheckIn(ctx, saved.ID), common.ErrNotFound)
}

func TestSQLiteStorage_DeleteAll(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		saveAnalysis(t, store, time.Now().UTC().Add(time.Duration(i)*time.Minute), "", model.NewEmotionScore(model.EmotionCalm, 0.5))
	}

	count, err := store.CountCheckIns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	require.NoError(t, store.DeleteAllCheckIns(ctx))

	records, err := store.ListCheckIns(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteStorage_SaveValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		record *model.CheckInRecord
		name   string
	}{
		{name: "nil record", record: nil},
		{name: "missing id", record: &model.CheckInRecord{Timestamp: time.Now(), PrimaryEmotion: "happy"}},
		{name: "missing timestamp", record: &model.CheckInRecord{ID: "a", PrimaryEmotion: "happy"}},
		{name: "unknown emotion", record: &model.CheckInRecord{ID: "a", Timestamp: time.Now(), PrimaryEmotion: "wistful"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveCheckIn(ctx, tt.record)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}
