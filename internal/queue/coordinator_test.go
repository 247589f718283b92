package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"backend-hospital/internal/models"
)

func TestAdvanceQueueEmpty(t *testing.T) {
	e := newTestEngine(newMemStore(), nil, nil)

	assignment, err := e.AdvanceQueue(context.Background(), "doctor-1")
	if err != nil {
		t.Fatal(err)
	}
	if assignment != nil {
		t.Fatalf("got assignment %+v from an empty queue", assignment)
	}
}

func TestAdvanceQueuePicksPriorityFirst(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	store := newMemStore()
	seedEntry(store, "e-a", "patient-a", t0)
	seedEntry(store, "e-b", "patient-b", t0.Add(time.Hour)) // priority, later check-in

	profiles := &memProfiles{priority: map[string]bool{"patient-a": false, "patient-b": true}}
	e := newTestEngine(store, profiles, nil)

	assignment, err := e.AdvanceQueue(ctx, "doctor-1")
	if err != nil {
		t.Fatal(err)
	}
	if assignment == nil || assignment.AlreadyAttending {
		t.Fatalf("expected a fresh assignment, got %+v", assignment)
	}
	if assignment.Entry.PatientID != "patient-b" {
		t.Errorf("got patient %s, want priority patient-b", assignment.Entry.PatientID)
	}
	if assignment.Entry.Status != models.StatusBeingAttended {
		t.Errorf("assigned entry status = %s, want being_attended", assignment.Entry.Status)
	}
	if assignment.Entry.AssignedDoctorID == nil || *assignment.Entry.AssignedDoctorID != "doctor-1" {
		t.Error("assigned entry missing doctor id")
	}
}

func TestAdvanceQueueIdempotentForSameDoctor(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	store := newMemStore()
	seedEntry(store, "e-a", "patient-a", t0)
	seedEntry(store, "e-b", "patient-b", t0.Add(time.Minute))

	profiles := &memProfiles{priority: map[string]bool{"patient-a": false, "patient-b": false}}
	e := newTestEngine(store, profiles, nil)

	first, err := e.AdvanceQueue(ctx, "doctor-1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.AdvanceQueue(ctx, "doctor-1")
	if err != nil {
		t.Fatal(err)
	}

	if first.AlreadyAttending {
		t.Error("first call tagged AlreadyAttending")
	}
	if !second.AlreadyAttending {
		t.Error("second call not tagged AlreadyAttending")
	}
	if first.Entry.ID != second.Entry.ID {
		t.Errorf("doctor got a second patient: %s then %s", first.Entry.ID, second.Entry.ID)
	}
}

func TestAdvanceQueueScenario(t *testing.T) {
	// A (normal, T1), B (priority, T2), C (normal, T3) check in.
	// Order is B, A, C; two doctors calling next get B and A, leaving C first.
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	store := newMemStore()
	seedEntry(store, "e-a", "A", t0)
	seedEntry(store, "e-b", "B", t0.Add(time.Minute))
	seedEntry(store, "e-c", "C", t0.Add(2*time.Minute))

	profiles := &memProfiles{priority: map[string]bool{"A": false, "B": true, "C": false}}
	e := newTestEngine(store, profiles, nil)

	if pos, _, _ := e.PositionOf(ctx, "A"); pos != 2 {
		t.Errorf("PositionOf(A) = %d, want 2", pos)
	}

	first, err := e.AdvanceQueue(ctx, "doctor-1")
	if err != nil {
		t.Fatal(err)
	}
	if first.Entry.PatientID != "B" {
		t.Errorf("doctor-1 got %s, want B", first.Entry.PatientID)
	}

	second, err := e.AdvanceQueue(ctx, "doctor-2")
	if err != nil {
		t.Fatal(err)
	}
	if second.Entry.PatientID != "A" {
		t.Errorf("doctor-2 got %s, want A", second.Entry.PatientID)
	}

	if pos, _, _ := e.PositionOf(ctx, "C"); pos != 1 {
		t.Errorf("PositionOf(C) = %d, want 1", pos)
	}
}

func TestAdvanceQueueConcurrentSingleAssignment(t *testing.T) {
	// Doctors race for the queue; no entry may be handed out twice. Every
	// lost claim means another doctor permanently won an entry, so with n
	// doctors nobody can lose more than n-1 times and the retry bound holds.
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	const n = 5
	store := newMemStore()
	profiles := &memProfiles{priority: map[string]bool{}}
	for i := 0; i < n; i++ {
		patient := string(rune('a' + i))
		seedEntry(store, "entry-"+patient, "patient-"+patient, t0.Add(time.Duration(i)*time.Minute))
		profiles.priority["patient-"+patient] = i%3 == 0
	}
	e := newTestEngine(store, profiles, nil)

	var wg sync.WaitGroup
	results := make([]*Assignment, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doctor := "doctor-" + string(rune('0'+i))
			results[i], errs[i] = e.AdvanceQueue(ctx, doctor)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]int)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("doctor %d: %v", i, errs[i])
		}
		if results[i] == nil {
			t.Fatalf("doctor %d got nil from a non-empty queue", i)
		}
		if results[i].AlreadyAttending {
			t.Errorf("doctor %d tagged AlreadyAttending on first call", i)
		}
		seen[results[i].Entry.ID]++
	}

	for id, count := range seen {
		if count > 1 {
			t.Errorf("entry %s assigned to %d doctors", id, count)
		}
	}
	if len(seen) != n {
		t.Errorf("%d distinct entries assigned, want %d", len(seen), n)
	}
}

func TestAdvanceQueueRetriesAfterLostClaim(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	inner := newMemStore()
	seedEntry(inner, "e-a", "patient-a", t0)
	store := &failingClaimStore{memStore: inner, conflicts: 2}

	profiles := &memProfiles{priority: map[string]bool{"patient-a": false}}
	e := newTestEngine(store, profiles, nil)

	assignment, err := e.AdvanceQueue(ctx, "doctor-1")
	if err != nil {
		t.Fatalf("expected retry to absorb the conflicts, got %v", err)
	}
	if assignment == nil || assignment.Entry.PatientID != "patient-a" {
		t.Fatalf("got %+v, want patient-a assigned", assignment)
	}
}

func TestAdvanceQueueContentionExhaustion(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	inner := newMemStore()
	seedEntry(inner, "e-a", "patient-a", t0)
	store := &failingClaimStore{memStore: inner, conflicts: maxClaimAttempts + 1}

	profiles := &memProfiles{priority: map[string]bool{"patient-a": false}}
	e := newTestEngine(store, profiles, nil)

	_, err := e.AdvanceQueue(ctx, "doctor-1")
	if err != ErrClaimContention {
		t.Fatalf("got %v, want ErrClaimContention", err)
	}
}
