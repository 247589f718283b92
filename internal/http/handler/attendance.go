package handler

import (
	"errors"
	"log"

	"backend-hospital/internal/helper"
	"backend-hospital/internal/models"
	"backend-hospital/internal/queue"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentAttendance - the doctor's active patient, if any
func GetCurrentAttendance(c *fiber.Ctx) error {
	doctorID := c.Locals("user_id").(string)

	current, err := engine.CurrentAttendance(c.Context(), doctorID)
	if err != nil {
		log.Printf("[GetCurrentAttendance] Error fetching attendance: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch attendance",
		})
	}

	if current == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No active attendance",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    current,
	})
}

// FinishAttendance - close the active attendance with a SOAP note, which
// becomes a permanent medical record; the queue entry is retired.
func FinishAttendance(c *fiber.Ctx) error {
	doctorID := c.Locals("user_id").(string)

	var req models.FinishAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Subjective == "" || req.ObjectiveData == "" || req.Assessment == "" || req.Planning == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "All SOAP fields are required (subjective, objective_data, assessment, planning)",
		})
	}

	// Records are permanent; re-check the stored role instead of trusting
	// a day-old token claim.
	if err := helper.CheckProfileRole(doctorID, models.RoleDoctor); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Only doctors can finish an attendance",
		})
	}

	record, err := engine.FinishAttendance(c.Context(), doctorID, queue.SOAPNote{
		Subjective:    req.Subjective,
		ObjectiveData: req.ObjectiveData,
		Assessment:    req.Assessment,
		Planning:      req.Planning,
	})
	if errors.Is(err, queue.ErrNoActiveAttendance) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No active attendance",
		})
	}
	if err != nil {
		log.Printf("[FinishAttendance] Error finishing attendance: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to finish attendance",
		})
	}

	BroadcastQueueUpdate()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Attendance finished",
		"record":  record,
	})
}
