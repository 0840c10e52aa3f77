package checkin

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lunabrook/moodscope/internal/common"
	"github.com/lunabrook/moodscope/internal/model"
	"github.com/lunabrook/moodscope/internal/service"
)

// MockClassifier is a deterministic test implementation of the Classifier
// interface.
type MockClassifier struct {
	Analysis     *model.EmotionAnalysis
	Err          error
	LastEvidence service.Evidence
	Calls        int
	mu           sync.Mutex
}

// AnalyzeEmotion returns the configured analysis or error.
func (m *MockClassifier) AnalyzeEmotion(_ context.Context, evidence service.Evidence) (*model.EmotionAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastEvidence = evidence
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Analysis != nil {
		return m.Analysis, nil
	}
	return model.NewEmotionAnalysis([]model.EmotionScore{
		model.NewEmotionScore(model.EmotionNeutral, 0.5),
	}), nil
}

// MockTranscriber is a deterministic test implementation of the Transcriber
// interface.
type MockTranscriber struct {
	Result Transcription
	Err    error
	Calls  int
	mu     sync.Mutex
}

// Transcribe returns the configured transcription or error.
func (m *MockTranscriber) Transcribe(_ context.Context, _ string) (Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return Transcription{}, m.Err
	}
	return m.Result, nil
}

// MockStorage is an in-memory implementation of service.Storage for tests.
type MockStorage struct {
	SaveErr  error
	FetchErr error
	Records  []model.CheckInRecord
	Saves    int
	mu       sync.Mutex
}

// SaveCheckIn appends the record, or fails with the configured error.
func (m *MockStorage) SaveCheckIn(_ context.Context, record *model.CheckInRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Records = append(m.Records, *record)
	return nil
}

// ListCheckIns returns all records sorted by timestamp descending.
func (m *MockStorage) ListCheckIns(_ context.Context) ([]model.CheckInRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	out := make([]model.CheckInRecord, len(m.Records))
	copy(out, m.Records)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// GetCheckInsByDateRange filters inclusively on both bounds.
func (m *MockStorage) GetCheckInsByDateRange(ctx context.Context, start, end time.Time) ([]model.CheckInRecord, error) {
	all, err := m.ListCheckIns(ctx)
	if err != nil {
		return nil, err
	}
	rng := service.DateRange{Start: start, End: end}
	out := make([]model.CheckInRecord, 0, len(all))
	for _, r := range all {
		if rng.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out, nil
}

// UpdateCheckInTimestamp adjusts one record's timestamp.
func (m *MockStorage) UpdateCheckInTimestamp(_ context.Context, id string, timestamp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records[i].Timestamp = timestamp
			return nil
		}
	}
	return common.ErrNotFound
}

// DeleteCheckIn removes one record by id.
func (m *MockStorage) DeleteCheckIn(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

// DeleteAllCheckIns removes everything.
func (m *MockStorage) DeleteAllCheckIns(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = nil
	return nil
}

// Migrate is a no-op.
func (m *MockStorage) Migrate(_ context.Context) error { return nil }

// Close is a no-op.
func (m *MockStorage) Close() error { return nil }
