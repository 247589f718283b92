package queue

import (
	"context"
	"sync"
	"time"

	"backend-hospital/internal/models"
)

/*
|--------------------------------------------------------------------------
| In-memory fakes
|--------------------------------------------------------------------------
| memStore mirrors the conditional-update semantics of the MySQL store:
| Claim succeeds only while the entry is still waiting, under one lock.
*/

type memStore struct {
	mu        sync.Mutex
	entries   map[string]models.QueueEntry
	deleteErr error
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]models.QueueEntry)}
}

func (s *memStore) Insert(_ context.Context, entry models.QueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.entries, id)
	return nil
}

func (s *memStore) ListByStatus(_ context.Context, status string) ([]models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.QueueEntry
	for _, entry := range s.entries {
		if entry.Status == status {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *memStore) FindByPatient(_ context.Context, patientID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.PatientID == patientID {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindAttendingByDoctor(_ context.Context, doctorID string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.Status == models.StatusBeingAttended &&
			entry.AssignedDoctorID != nil && *entry.AssignedDoctorID == doctorID {
			e := entry
			return &e, nil
		}
	}
	return nil, nil
}

func (s *memStore) Claim(_ context.Context, id, doctorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || entry.Status != models.StatusWaiting {
		return false, nil
	}
	entry.Status = models.StatusBeingAttended
	entry.AssignedDoctorID = &doctorID
	s.entries[id] = entry
	return true, nil
}

// failingClaimStore wraps memStore and loses the race a fixed number of
// times before delegating, to exercise the retry loop.
type failingClaimStore struct {
	*memStore
	mu        sync.Mutex
	conflicts int
}

func (s *failingClaimStore) Claim(ctx context.Context, id, doctorID string) (bool, error) {
	s.mu.Lock()
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()
	return s.memStore.Claim(ctx, id, doctorID)
}

type memProfiles struct {
	priority map[string]bool // presence in the map means the profile exists
}

func (p *memProfiles) PriorityFlags(_ context.Context, ids []string) (map[string]bool, error) {
	flags := make(map[string]bool, len(ids))
	for _, id := range ids {
		if prio, ok := p.priority[id]; ok {
			flags[id] = prio
		}
	}
	return flags, nil
}

func (p *memProfiles) Exists(_ context.Context, id string) (bool, error) {
	_, ok := p.priority[id]
	return ok, nil
}

type memRecords struct {
	mu      sync.Mutex
	records []models.MedicalRecord
}

func (r *memRecords) Insert(_ context.Context, record models.MedicalRecord) (models.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return record, nil
}

/*
|--------------------------------------------------------------------------
| Helpers
|--------------------------------------------------------------------------
*/

func newTestEngine(store Store, profiles *memProfiles, records *memRecords) *Engine {
	if profiles == nil {
		profiles = &memProfiles{priority: map[string]bool{}}
	}
	if records == nil {
		records = &memRecords{}
	}
	e := NewEngine(store, profiles, records)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	e.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return e
}

func seedEntry(s *memStore, id, patientID string, checkin time.Time) {
	s.entries[id] = models.QueueEntry{
		ID:          id,
		PatientID:   patientID,
		CheckinTime: checkin,
		Status:      models.StatusWaiting,
		CreatedAt:   checkin,
		UpdatedAt:   checkin,
	}
}
