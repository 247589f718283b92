package models

import (
	"time"
)

// MedicalRecord is a permanent SOAP-format note created when a doctor
// finishes an attendance. Records are never updated or deleted.
type MedicalRecord struct {
	ID            string    `json:"id"`
	DoctorID      string    `json:"doctor_id"`
	PatientID     string    `json:"patient_id"`
	StartedAt     time.Time `json:"started_at"` // copied from the queue entry's checkin_time
	EndAt         time.Time `json:"end_at"`
	Subjective    string    `json:"subjective"`
	ObjectiveData string    `json:"objective_data"`
	Assessment    string    `json:"assessment"`
	Planning      string    `json:"planning"`
	CreatedAt     time.Time `json:"created_at"`
}

type FinishAttendanceRequest struct {
	Subjective    string `json:"subjective" validate:"required"`
	ObjectiveData string `json:"objective_data" validate:"required"`
	Assessment    string `json:"assessment" validate:"required"`
	Planning      string `json:"planning" validate:"required"`
}
