package queue

import (
	"context"
	"sort"

	"backend-hospital/internal/models"
)

// rankEntries orders waiting entries for service: priority patients first,
// then by check-in time within each tier. The sort is stable, so entries
// with identical check-in times keep their original relative order.
// Patients without a resolvable profile rank as non-priority.
func rankEntries(entries []models.QueueEntry, priority map[string]bool) []models.QueueEntry {
	ordered := make([]models.QueueEntry, len(entries))
	copy(ordered, entries)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi := priority[ordered[i].PatientID]
		pj := priority[ordered[j].PatientID]
		if pi != pj {
			return pi
		}
		return ordered[i].CheckinTime.Before(ordered[j].CheckinTime)
	})

	return ordered
}

// Waiting returns the current waiting set in service order. The priority
// flags for the whole set are fetched in a single batched lookup, and the
// order is recomputed fresh on every call — never cached, since the set
// mutates under concurrent check-ins and claims.
func (e *Engine) Waiting(ctx context.Context) ([]models.QueueEntry, error) {
	entries, err := e.store.ListByStatus(ctx, models.StatusWaiting)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.PatientID)
	}

	flags, err := e.profiles.PriorityFlags(ctx, ids)
	if err != nil {
		return nil, err
	}

	return rankEntries(entries, flags), nil
}

// PositionOf returns the patient's 1-indexed rank in the service order.
// The second return is false when the patient has no waiting entry.
func (e *Engine) PositionOf(ctx context.Context, patientID string) (int, bool, error) {
	exists, err := e.profiles.Exists(ctx, patientID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, ErrProfileNotFound
	}

	ordered, err := e.Waiting(ctx)
	if err != nil {
		return 0, false, err
	}

	for i, entry := range ordered {
		if entry.PatientID == patientID {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}
