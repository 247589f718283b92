package queue

import (
	"context"

	"backend-hospital/internal/models"
)

// Assignment is the outcome of AdvanceQueue: either the doctor's existing
// patient (AlreadyAttending) or a freshly claimed one.
type Assignment struct {
	Entry            models.QueueEntry
	AlreadyAttending bool
}

// maxClaimAttempts bounds the claim-retry loop. Each lost race means some
// other doctor successfully claimed an entry, so the waiting set strictly
// shrinks between attempts; hitting the bound means pathological contention
// and is reported as an infrastructure error.
const maxClaimAttempts = 5

// AdvanceQueue assigns the next eligible waiting patient to the doctor.
//
// A doctor with a patient already in attendance gets that same patient back
// tagged AlreadyAttending — never a second one. An empty queue returns
// (nil, nil). The claim itself is a conditional update guarded on the entry
// still being in waiting state; losing the race to a concurrent caller
// re-reads the queue and tries the new head instead of failing the request.
func (e *Engine) AdvanceQueue(ctx context.Context, doctorID string) (*Assignment, error) {
	current, err := e.store.FindAttendingByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return &Assignment{Entry: *current, AlreadyAttending: true}, nil
	}

	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		ordered, err := e.Waiting(ctx)
		if err != nil {
			return nil, err
		}
		if len(ordered) == 0 {
			return nil, nil
		}

		next := ordered[0]
		claimed, err := e.store.Claim(ctx, next.ID, doctorID)
		if err != nil {
			return nil, err
		}
		if !claimed {
			// Lost the race; the entry went to another doctor.
			continue
		}

		next.Status = models.StatusBeingAttended
		next.AssignedDoctorID = &doctorID
		return &Assignment{Entry: next}, nil
	}

	return nil, ErrClaimContention
}
