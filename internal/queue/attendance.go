package queue

import (
	"context"
	"log"

	"backend-hospital/internal/models"

	"github.com/google/uuid"
)

// SOAPNote carries the four clinical note fields recorded at completion.
type SOAPNote struct {
	Subjective    string
	ObjectiveData string
	Assessment    string
	Planning      string
}

// CurrentAttendance returns the doctor's active patient, or nil.
func (e *Engine) CurrentAttendance(ctx context.Context, doctorID string) (*models.QueueEntry, error) {
	return e.store.FindAttendingByDoctor(ctx, doctorID)
}

// FinishAttendance converts the doctor's active attendance into a permanent
// medical record and retires the queue entry. The record's started_at is
// the patient's check-in time; end_at is now.
func (e *Engine) FinishAttendance(ctx context.Context, doctorID string, note SOAPNote) (models.MedicalRecord, error) {
	current, err := e.store.FindAttendingByDoctor(ctx, doctorID)
	if err != nil {
		return models.MedicalRecord{}, err
	}
	if current == nil {
		return models.MedicalRecord{}, ErrNoActiveAttendance
	}

	now := e.now()
	record := models.MedicalRecord{
		ID:            uuid.NewString(),
		DoctorID:      doctorID,
		PatientID:     current.PatientID,
		StartedAt:     current.CheckinTime,
		EndAt:         now,
		Subjective:    note.Subjective,
		ObjectiveData: note.ObjectiveData,
		Assessment:    note.Assessment,
		Planning:      note.Planning,
		CreatedAt:     now,
	}

	saved, err := e.records.Insert(ctx, record)
	if err != nil {
		return models.MedicalRecord{}, err
	}

	// Entry removal comes strictly after the record is stored. A failed
	// delete leaves an orphaned being_attended entry, which operators can
	// clean up; a lost record could not be recovered.
	if err := e.store.Delete(ctx, current.ID); err != nil {
		log.Printf("[queue] entry %s orphaned after finish by doctor %s: %v", current.ID, doctorID, err)
	}

	return saved, nil
}
