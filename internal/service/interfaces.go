// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/lunabrook/moodscope/internal/model"
)

// Storage defines the contract for the check-in record store. The store
// exclusively owns persisted records; orchestrators hold transient
// references only for the duration of a call.
type Storage interface {
	// SaveCheckIn persists a new check-in record.
	SaveCheckIn(ctx context.Context, record *model.CheckInRecord) error
	// ListCheckIns returns all records sorted by timestamp descending.
	ListCheckIns(ctx context.Context) ([]model.CheckInRecord, error)
	// GetCheckInsByDateRange returns records with start <= timestamp <= end,
	// sorted by timestamp descending. Both bounds are inclusive.
	GetCheckInsByDateRange(ctx context.Context, start, end time.Time) ([]model.CheckInRecord, error)
	// UpdateCheckInTimestamp adjusts a record's timestamp (backfill only).
	UpdateCheckInTimestamp(ctx context.Context, id string, timestamp time.Time) error
	// DeleteCheckIn removes a single record by id.
	DeleteCheckIn(ctx context.Context, id string) error
	// DeleteAllCheckIns removes every record.
	DeleteAllCheckIns(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Evidence carries the capture artifacts handed to the AI classifier for a
// single check-in. ImageData and FaceDescription are alternatives; voice
// fields are optional enrichment.
type Evidence struct {
	FaceDescription string
	VoiceTone       string
	Transcript      string
	Notes           string
	ImageData       []byte
}

// DateRange represents a time period with inclusive start and end.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
