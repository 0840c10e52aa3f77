package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lunabrook/moodscope/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidRecord = errors.New("invalid check-in record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord ensures a check-in record is persistable.
func validateRecord(record *model.CheckInRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if record.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if record.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidRecord)
	}
	if record.PrimaryEmotion == "" {
		return fmt.Errorf("%w: missing primary emotion", ErrInvalidRecord)
	}
	if _, ok := model.ParseEmotionKind(record.PrimaryEmotion); !ok {
		return fmt.Errorf("%w: unrecognized primary emotion %q", ErrInvalidRecord, record.PrimaryEmotion)
	}
	return nil
}
