package queue

import (
	"context"
	"errors"
	"testing"

	"backend-hospital/internal/models"
)

func TestCheckIn(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	e := newTestEngine(store, nil, nil)

	entry, err := e.CheckIn(ctx, "patient-a")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Status != models.StatusWaiting {
		t.Errorf("status = %s, want waiting", entry.Status)
	}
	if entry.AssignedDoctorID != nil {
		t.Error("fresh entry has an assigned doctor")
	}
	if entry.ID == "" {
		t.Error("entry has no id")
	}
	if entry.CheckinTime.IsZero() {
		t.Error("entry has no check-in time")
	}
}

func TestCheckInTwiceRejected(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(newMemStore(), nil, nil)

	if _, err := e.CheckIn(ctx, "patient-a"); err != nil {
		t.Fatal(err)
	}
	_, err := e.CheckIn(ctx, "patient-a")
	if !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("got %v, want ErrAlreadyQueued", err)
	}
}

func TestCheckInRejectedWhileBeingAttended(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	profiles := &memProfiles{priority: map[string]bool{"patient-a": false}}
	e := newTestEngine(store, profiles, nil)

	if _, err := e.CheckIn(ctx, "patient-a"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AdvanceQueue(ctx, "doctor-1"); err != nil {
		t.Fatal(err)
	}

	_, err := e.CheckIn(ctx, "patient-a")
	if !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("got %v, want ErrAlreadyQueued", err)
	}
}

func TestCancelCheckIn(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	e := newTestEngine(store, nil, nil)

	if _, err := e.CheckIn(ctx, "patient-a"); err != nil {
		t.Fatal(err)
	}
	if err := e.CancelCheckIn(ctx, "patient-a"); err != nil {
		t.Fatal(err)
	}

	entry, err := store.FindByPatient(ctx, "patient-a")
	if err != nil {
		t.Fatal(err)
	}
	if entry != nil {
		t.Error("entry still in store after cancel")
	}
}

func TestCancelCheckInNotInQueue(t *testing.T) {
	e := newTestEngine(newMemStore(), nil, nil)

	err := e.CancelCheckIn(context.Background(), "patient-a")
	if !errors.Is(err, ErrNotInQueue) {
		t.Fatalf("got %v, want ErrNotInQueue", err)
	}
}

func TestCancelCheckInRejectedWhileBeingAttended(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	profiles := &memProfiles{priority: map[string]bool{"patient-a": false}}
	e := newTestEngine(store, profiles, nil)

	if _, err := e.CheckIn(ctx, "patient-a"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AdvanceQueue(ctx, "doctor-1"); err != nil {
		t.Fatal(err)
	}

	err := e.CancelCheckIn(ctx, "patient-a")
	if !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("got %v, want ErrNotCancellable", err)
	}

	// The committed patient must still be with the doctor
	attended, err := e.IsBeingAttended(ctx, "patient-a")
	if err != nil {
		t.Fatal(err)
	}
	if !attended {
		t.Error("patient no longer being attended after rejected cancel")
	}
}

func TestFinishAttendance(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	profiles := &memProfiles{priority: map[string]bool{"patient-a": false}}
	records := &memRecords{}
	e := newTestEngine(store, profiles, records)

	entry, err := e.CheckIn(ctx, "patient-a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.AdvanceQueue(ctx, "doctor-1"); err != nil {
		t.Fatal(err)
	}

	note := SOAPNote{
		Subjective:    "headache for two days",
		ObjectiveData: "BP 120/80, afebrile",
		Assessment:    "tension headache",
		Planning:      "analgesics, rest, return if worse",
	}
	record, err := e.FinishAttendance(ctx, "doctor-1", note)
	if err != nil {
		t.Fatal(err)
	}

	if record.PatientID != "patient-a" || record.DoctorID != "doctor-1" {
		t.Errorf("record identities wrong: %+v", record)
	}
	if !record.StartedAt.Equal(entry.CheckinTime) {
		t.Errorf("started_at = %v, want check-in time %v", record.StartedAt, entry.CheckinTime)
	}
	if !record.EndAt.After(record.StartedAt) {
		t.Error("end_at not after started_at")
	}
	if record.Subjective != note.Subjective || record.ObjectiveData != note.ObjectiveData ||
		record.Assessment != note.Assessment || record.Planning != note.Planning {
		t.Error("SOAP fields not carried verbatim")
	}

	if len(records.records) != 1 {
		t.Fatalf("%d records persisted, want 1", len(records.records))
	}

	// Completion clears the queue
	left, err := store.FindByPatient(ctx, "patient-a")
	if err != nil {
		t.Fatal(err)
	}
	if left != nil {
		t.Error("queue entry still present after completion")
	}
	if _, waiting, _ := e.PositionOf(ctx, "patient-a"); waiting {
		t.Error("finished patient still reported waiting")
	}
}

func TestFinishAttendanceWithoutActiveEntry(t *testing.T) {
	records := &memRecords{}
	e := newTestEngine(newMemStore(), nil, records)

	_, err := e.FinishAttendance(context.Background(), "doctor-1", SOAPNote{
		Subjective: "s", ObjectiveData: "o", Assessment: "a", Planning: "p",
	})
	if !errors.Is(err, ErrNoActiveAttendance) {
		t.Fatalf("got %v, want ErrNoActiveAttendance", err)
	}
	if len(records.records) != 0 {
		t.Error("record created despite missing attendance")
	}
}

func TestFinishAttendanceKeepsRecordWhenDeleteFails(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	profiles := &memProfiles{priority: map[string]bool{"patient-a": false}}
	records := &memRecords{}
	e := newTestEngine(store, profiles, records)

	if _, err := e.CheckIn(ctx, "patient-a"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AdvanceQueue(ctx, "doctor-1"); err != nil {
		t.Fatal(err)
	}

	store.deleteErr = errors.New("connection reset")

	record, err := e.FinishAttendance(ctx, "doctor-1", SOAPNote{
		Subjective: "s", ObjectiveData: "o", Assessment: "a", Planning: "p",
	})
	if err != nil {
		t.Fatalf("record must survive a failed cleanup, got %v", err)
	}
	if record.PatientID != "patient-a" {
		t.Errorf("unexpected record %+v", record)
	}
	if len(records.records) != 1 {
		t.Error("record not persisted")
	}
	// The orphaned entry stays visible for manual cleanup
	left, _ := store.FindByPatient(ctx, "patient-a")
	if left == nil || left.Status != models.StatusBeingAttended {
		t.Error("orphaned entry missing or in wrong state")
	}
}

func TestCurrentAttendance(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	profiles := &memProfiles{priority: map[string]bool{"patient-a": false}}
	e := newTestEngine(store, profiles, nil)

	current, err := e.CurrentAttendance(ctx, "doctor-1")
	if err != nil {
		t.Fatal(err)
	}
	if current != nil {
		t.Fatalf("got %+v, want nil before any assignment", current)
	}

	if _, err := e.CheckIn(ctx, "patient-a"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AdvanceQueue(ctx, "doctor-1"); err != nil {
		t.Fatal(err)
	}

	current, err = e.CurrentAttendance(ctx, "doctor-1")
	if err != nil {
		t.Fatal(err)
	}
	if current == nil || current.PatientID != "patient-a" {
		t.Fatalf("got %+v, want patient-a in attendance", current)
	}
}
