package queue

import (
	"context"
	"errors"

	"backend-hospital/internal/models"
)

/*
|--------------------------------------------------------------------------
| STORE CONTRACTS
|--------------------------------------------------------------------------
| The engine never touches the database directly. All mutable queue state
| lives behind these interfaces so the single correctness-sensitive
| transition (claiming a waiting patient) can be expressed as one atomic
| conditional update instead of a read-then-write pair.
*/

type Store interface {
	Insert(ctx context.Context, entry models.QueueEntry) error
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status string) ([]models.QueueEntry, error)
	FindByPatient(ctx context.Context, patientID string) (*models.QueueEntry, error)
	FindAttendingByDoctor(ctx context.Context, doctorID string) (*models.QueueEntry, error)

	// Claim transitions the entry from waiting to being_attended and
	// assigns the doctor, guarded on the entry still being in waiting
	// state. Returns false when the guard fails (claimed concurrently).
	Claim(ctx context.Context, id, doctorID string) (bool, error)
}

type ProfileDirectory interface {
	// PriorityFlags resolves priority flags for a batch of patient ids in
	// one lookup. Missing profiles are simply absent from the result.
	PriorityFlags(ctx context.Context, patientIDs []string) (map[string]bool, error)
	Exists(ctx context.Context, patientID string) (bool, error)
}

type RecordStore interface {
	Insert(ctx context.Context, record models.MedicalRecord) (models.MedicalRecord, error)
}

/*
|--------------------------------------------------------------------------
| BUSINESS-RULE ERRORS
|--------------------------------------------------------------------------
| Always distinct from infrastructure failures, which propagate unchanged.
*/

var (
	ErrAlreadyQueued      = errors.New("patient already has an active check-in")
	ErrNotInQueue         = errors.New("no check-in found for patient")
	ErrNotCancellable     = errors.New("patient is already being attended, check-in cannot be cancelled")
	ErrNoActiveAttendance = errors.New("no active attendance for doctor")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrClaimContention    = errors.New("queue claim failed after repeated conflicts")
)
