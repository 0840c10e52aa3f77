package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lunabrook/moodscope/internal/common"
	"github.com/lunabrook/moodscope/internal/model"
)

// SaveCheckIn persists a new check-in record.
func (s *SQLiteStorage) SaveCheckIn(ctx context.Context, record *model.CheckInRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO check_ins (
			id, timestamp, primary_emotion, scores,
			user_notes, narrative, voice_transcript
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.Timestamp,
		record.PrimaryEmotion,
		string(record.SerializedScores),
		record.UserNotes,
		record.Narrative,
		record.VoiceTranscript,
	)
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}

	return nil
}

// ListCheckIns returns all records sorted by timestamp descending.
func (s *SQLiteStorage) ListCheckIns(ctx context.Context) ([]model.CheckInRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, primary_emotion, scores, user_notes, narrative, voice_transcript
		FROM check_ins
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// GetCheckInsByDateRange returns records with start <= timestamp <= end,
// newest first. Both bounds are inclusive.
func (s *SQLiteStorage) GetCheckInsByDateRange(ctx context.Context, start, end time.Time) ([]model.CheckInRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, primary_emotion, scores, user_notes, narrative, voice_transcript
		FROM check_ins
		WHERE timestamp >= ? AND timestamp <= ?
		ORDER BY timestamp DESC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins by range: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// GetCheckIn fetches a single record by id.
func (s *SQLiteStorage) GetCheckIn(ctx context.Context, id string) (*model.CheckInRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, primary_emotion, scores, user_notes, narrative, voice_transcript
		FROM check_ins
		WHERE id = ?
	`, id)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch check-in: %w", err)
	}
	return record, nil
}

// UpdateCheckInTimestamp adjusts one record's timestamp. This is the only
// mutation a persisted record supports (rare backfill scenarios).
func (s *SQLiteStorage) UpdateCheckInTimestamp(ctx context.Context, id string, timestamp time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE check_ins SET timestamp = ? WHERE id = ?`, timestamp, id)
	if err != nil {
		return fmt.Errorf("failed to update check-in timestamp: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteCheckIn removes a single record by id.
func (s *SQLiteStorage) DeleteCheckIn(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM check_ins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDeleteFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteAllCheckIns removes every record.
func (s *SQLiteStorage) DeleteAllCheckIns(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM check_ins`); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDeleteFailed, err)
	}
	return nil
}

// CountCheckIns reports the total number of stored records.
func (s *SQLiteStorage) CountCheckIns(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM check_ins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count check-ins: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for record scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*model.CheckInRecord, error) {
	var record model.CheckInRecord
	var scores string
	var notes, narrative, transcript sql.NullString

	if err := row.Scan(
		&record.ID,
		&record.Timestamp,
		&record.PrimaryEmotion,
		&scores,
		&notes,
		&narrative,
		&transcript,
	); err != nil {
		return nil, err
	}

	record.SerializedScores = []byte(scores)
	record.UserNotes = notes.String
	record.Narrative = narrative.String
	record.VoiceTranscript = transcript.String
	return &record, nil
}

func scanRecords(rows *sql.Rows) ([]model.CheckInRecord, error) {
	var records []model.CheckInRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}
	return records, nil
}
