package store

import (
	"context"
	"database/sql"

	"backend-hospital/internal/models"
)

// QueueStore is the MySQL-backed queue.Store implementation.
type QueueStore struct {
	db *sql.DB
}

func NewQueueStore(db *sql.DB) *QueueStore {
	return &QueueStore{db: db}
}

const queueColumns = `id, patient_id, checkin_time, status, assigned_doctor_id, created_at, updated_at`

func (s *QueueStore) Insert(ctx context.Context, entry models.QueueEntry) error {
	query := `
		INSERT INTO queue_entries
		(id, patient_id, checkin_time, status, assigned_doctor_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.PatientID, entry.CheckinTime, entry.Status,
		entry.CreatedAt, entry.UpdatedAt,
	)
	return err
}

func (s *QueueStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM queue_entries WHERE id = ?", id)
	return err
}

func (s *QueueStore) ListByStatus(ctx context.Context, status string) ([]models.QueueEntry, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_entries WHERE status = ?`

	rows, err := s.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.QueueEntry
	for rows.Next() {
		entry, err := scanQueueEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *QueueStore) FindByPatient(ctx context.Context, patientID string) (*models.QueueEntry, error) {
	query := `SELECT ` + queueColumns + ` FROM queue_entries WHERE patient_id = ? LIMIT 1`
	return s.findOne(ctx, query, patientID)
}

func (s *QueueStore) FindAttendingByDoctor(ctx context.Context, doctorID string) (*models.QueueEntry, error) {
	query := `
		SELECT ` + queueColumns + `
		FROM queue_entries
		WHERE assigned_doctor_id = ? AND status = ?
		LIMIT 1
	`
	return s.findOne(ctx, query, doctorID, models.StatusBeingAttended)
}

// Claim is the one correctness-sensitive transition: a single conditional
// UPDATE guarded on the entry still being in waiting state. RowsAffected
// tells the caller whether it won the race.
func (s *QueueStore) Claim(ctx context.Context, id, doctorID string) (bool, error) {
	query := `
		UPDATE queue_entries
		SET status = ?, assigned_doctor_id = ?, updated_at = NOW()
		WHERE id = ? AND status = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		models.StatusBeingAttended, doctorID, id, models.StatusWaiting,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *QueueStore) findOne(ctx context.Context, query string, args ...interface{}) (*models.QueueEntry, error) {
	row := s.db.QueryRowContext(ctx, query, args...)
	entry, err := scanQueueEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQueueEntry(row rowScanner) (models.QueueEntry, error) {
	var entry models.QueueEntry
	var doctorID sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.PatientID,
		&entry.CheckinTime,
		&entry.Status,
		&doctorID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return entry, err
	}

	if doctorID.Valid {
		entry.AssignedDoctorID = &doctorID.String
	}
	return entry, nil
}
