package handler

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"backend-hospital/internal/config"
	"backend-hospital/internal/helper"
	"backend-hospital/internal/models"
	"backend-hospital/internal/queue"

	"github.com/gofiber/fiber/v2"
)

// GetQueue - full queue view: the ranked waiting list plus everyone
// currently in attendance. Public, used by the waiting-room display.
func GetQueue(c *fiber.Ctx) error {
	waiting, err := engine.Waiting(c.Context())
	if err != nil {
		log.Printf("[GetQueue] Error listing waiting entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch queue",
		})
	}

	attending, err := listByStatus(models.StatusBeingAttended)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch queue",
		})
	}

	if waiting == nil {
		waiting = []models.QueueEntry{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"waiting":       waiting,
			"in_attendance": attending,
		},
	})
}

// Checkin - patient joins the waiting queue
func Checkin(c *fiber.Ctx) error {
	patientID := c.Locals("user_id").(string)

	// Front desk hours, when configured, gate new check-ins
	open, openTime, closeTime, err := frontDeskOpen()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to validate front desk hours",
		})
	}
	if !open {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Front desk is closed (open " + openTime + " - " + closeTime + ")",
		})
	}

	entry, err := engine.CheckIn(c.Context(), patientID)
	if errors.Is(err, queue.ErrAlreadyQueued) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "You already have an active check-in",
		})
	}
	if err != nil {
		log.Printf("[Checkin] Error creating entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to check in",
		})
	}

	// Daily counter feeds the dashboard; best effort
	day := entry.CheckinTime.Format("2006-01-02")
	if err := config.Redis.Incr(config.Ctx, "checkin:"+day).Err(); err == nil {
		config.Redis.Expire(config.Ctx, "checkin:"+day, 48*time.Hour)
	}

	BroadcastQueueUpdate()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Checked in",
		"data":    entry,
	})
}

// CancelCheckin - patient leaves the queue, only while still waiting
func CancelCheckin(c *fiber.Ctx) error {
	patientID := c.Locals("user_id").(string)

	err := engine.CancelCheckIn(c.Context(), patientID)
	if errors.Is(err, queue.ErrNotInQueue) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No check-in found for this user",
		})
	}
	if errors.Is(err, queue.ErrNotCancellable) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "You are already being attended, check-in cannot be cancelled",
		})
	}
	if err != nil {
		log.Printf("[CancelCheckin] Error deleting entry: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to cancel check-in",
		})
	}

	BroadcastQueueUpdate()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Check-in cancelled",
	})
}

// GetPosition - the patient's place in the priority-ordered queue.
// Three possible answers: waiting (with a 1-indexed position), called, or
// not in the queue at all.
func GetPosition(c *fiber.Ctx) error {
	patientID := c.Locals("user_id").(string)

	position, waiting, err := engine.PositionOf(c.Context(), patientID)
	if errors.Is(err, queue.ErrProfileNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Profile not found",
		})
	}
	if err != nil {
		log.Printf("[GetPosition] Error computing position: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to compute position",
		})
	}

	if waiting {
		return c.JSON(models.PositionResponse{
			Status:   models.PositionStatusWaiting,
			Position: position,
		})
	}

	attended, err := engine.IsBeingAttended(c.Context(), patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to compute position",
		})
	}
	if attended {
		return c.JSON(models.PositionResponse{Status: models.PositionStatusCalled})
	}

	return c.JSON(models.PositionResponse{Status: models.PositionStatusNotInQueue})
}

// CallNext - doctor asks for the next patient. A doctor already attending
// someone gets that same patient back, never a second one.
func CallNext(c *fiber.Ctx) error {
	doctorID := c.Locals("user_id").(string)

	assignment, err := engine.AdvanceQueue(c.Context(), doctorID)
	if errors.Is(err, queue.ErrClaimContention) {
		log.Printf("[CallNext] Claim contention for doctor %s: %v", doctorID, err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "Queue is under heavy contention, try again",
		})
	}
	if err != nil {
		log.Printf("[CallNext] Error advancing queue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to call next patient",
		})
	}

	if assignment == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "The queue is empty",
		})
	}

	if assignment.AlreadyAttending {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "You already have a patient in attendance",
			"called":  assignment.Entry,
		})
	}

	BroadcastQueueUpdate()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Next patient called",
		"called":  assignment.Entry,
	})
}

// listByStatus reads entries straight from the database for display
// purposes; ordering logic stays in the engine.
func listByStatus(status string) ([]models.QueueEntry, error) {
	rows, err := config.DB.Query(`
		SELECT id, patient_id, checkin_time, status, assigned_doctor_id, created_at, updated_at
		FROM queue_entries
		WHERE status = ?
		ORDER BY checkin_time ASC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.QueueEntry{}
	for rows.Next() {
		var entry models.QueueEntry
		var doctorID sql.NullString
		err := rows.Scan(
			&entry.ID, &entry.PatientID, &entry.CheckinTime, &entry.Status,
			&doctorID, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			continue
		}
		if doctorID.Valid {
			entry.AssignedDoctorID = &doctorID.String
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// frontDeskOpen loads the configured opening hours. An unconfigured desk
// is always open.
func frontDeskOpen() (bool, string, string, error) {
	var cfg models.FrontDeskConfig
	err := config.DB.QueryRow(
		"SELECT id, open_time, close_time FROM front_desk_config LIMIT 1",
	).Scan(&cfg.ID, &cfg.OpenTime, &cfg.CloseTime)

	if err == sql.ErrNoRows {
		return true, "", "", nil
	}
	if err != nil {
		return false, "", "", err
	}

	return helper.IsFrontDeskOpen(cfg.OpenTime, cfg.CloseTime), cfg.OpenTime, cfg.CloseTime, nil
}
