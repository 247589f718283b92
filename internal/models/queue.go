package models

import (
	"time"
)

const (
	StatusWaiting       = "waiting"
	StatusBeingAttended = "being_attended"
)

type QueueEntry struct {
	ID               string     `json:"id"`
	PatientID        string     `json:"patient_id"`
	CheckinTime      time.Time  `json:"checkin_time"`
	Status           string     `json:"status"` // waiting, being_attended
	AssignedDoctorID *string    `json:"assigned_doctor_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

/*
|--------------------------------------------------------------------------
| RESPONSE DTO
|--------------------------------------------------------------------------
| Position responses mirror the three states a patient can be in:
| waiting (with a 1-indexed position), called, or not in the queue at all.
*/
const (
	PositionStatusWaiting    = "waiting"
	PositionStatusCalled     = "called"
	PositionStatusNotInQueue = "not_in_queue"
)

type PositionResponse struct {
	Status   string `json:"status"`
	Position int    `json:"position,omitempty"`
}
