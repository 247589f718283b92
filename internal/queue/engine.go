package queue

import (
	"context"
	"time"

	"backend-hospital/internal/models"

	"github.com/google/uuid"
)

// Engine implements the front-desk coordination rules: check-in,
// priority-ordered waiting, one-active-patient-per-doctor assignment and
// attendance completion. It keeps no queue state in process memory; every
// operation reads fresh from the store.
type Engine struct {
	store    Store
	profiles ProfileDirectory
	records  RecordStore
	now      func() time.Time
}

func NewEngine(store Store, profiles ProfileDirectory, records RecordStore) *Engine {
	return &Engine{
		store:    store,
		profiles: profiles,
		records:  records,
		now:      hospitalNow,
	}
}

// hospitalNow returns the current time in the hospital's timezone.
func hospitalNow() time.Time {
	loc, err := time.LoadLocation("America/Fortaleza")
	if err != nil {
		return time.Now()
	}
	return time.Now().In(loc)
}

// CheckIn puts the patient at the end of the waiting queue. A patient can
// hold only one entry at a time; checking in again is rejected explicitly
// rather than ignored.
func (e *Engine) CheckIn(ctx context.Context, patientID string) (models.QueueEntry, error) {
	existing, err := e.store.FindByPatient(ctx, patientID)
	if err != nil {
		return models.QueueEntry{}, err
	}
	if existing != nil {
		return models.QueueEntry{}, ErrAlreadyQueued
	}

	now := e.now()
	entry := models.QueueEntry{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		CheckinTime: now,
		Status:      models.StatusWaiting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.store.Insert(ctx, entry); err != nil {
		return models.QueueEntry{}, err
	}
	return entry, nil
}

// CancelCheckIn removes the patient's entry, but only while it is still
// waiting. Once a doctor has claimed the patient the check-in is committed.
func (e *Engine) CancelCheckIn(ctx context.Context, patientID string) error {
	entry, err := e.store.FindByPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrNotInQueue
	}
	if entry.Status != models.StatusWaiting {
		return ErrNotCancellable
	}
	return e.store.Delete(ctx, entry.ID)
}

// IsBeingAttended reports whether the patient is currently with a doctor.
func (e *Engine) IsBeingAttended(ctx context.Context, patientID string) (bool, error) {
	entry, err := e.store.FindByPatient(ctx, patientID)
	if err != nil {
		return false, err
	}
	return entry != nil && entry.Status == models.StatusBeingAttended, nil
}
