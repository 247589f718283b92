package store

import (
	"context"
	"database/sql"

	"backend-hospital/internal/models"
)

// RecordStore is the MySQL-backed queue.RecordStore implementation.
// Records are insert-only; nothing here updates or deletes.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) Insert(ctx context.Context, record models.MedicalRecord) (models.MedicalRecord, error) {
	query := `
		INSERT INTO medical_records
		(id, doctor_id, patient_id, started_at, end_at,
		 subjective, objective_data, assessment, planning, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.DoctorID, record.PatientID,
		record.StartedAt, record.EndAt,
		record.Subjective, record.ObjectiveData, record.Assessment, record.Planning,
		record.CreatedAt,
	)
	if err != nil {
		return models.MedicalRecord{}, err
	}
	return record, nil
}
