package handler

import (
	"time"

	"backend-hospital/internal/config"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStatistics - today's front-desk numbers for the staff
// dashboard: check-ins (Redis counter), current queue state and completed
// attendances.
func GetDashboardStatistics(c *fiber.Ctx) error {
	var waitingCount int
	err := config.DB.QueryRow(
		"SELECT COUNT(id) FROM queue_entries WHERE status = 'waiting'",
	).Scan(&waitingCount)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to count waiting patients",
		})
	}

	var attendingCount int
	err = config.DB.QueryRow(
		"SELECT COUNT(id) FROM queue_entries WHERE status = 'being_attended'",
	).Scan(&attendingCount)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to count active attendances",
		})
	}

	var finishedToday int
	err = config.DB.QueryRow(
		"SELECT COUNT(id) FROM medical_records WHERE DATE(end_at) = CURDATE()",
	).Scan(&finishedToday)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to count finished attendances",
		})
	}

	day := time.Now().Format("2006-01-02")
	checkinsToday, _ := config.Redis.Get(config.Ctx, "checkin:"+day).Int64()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"summary": fiber.Map{
				"checkins_today": checkinsToday,
				"waiting":        waitingCount,
				"in_attendance":  attendingCount,
				"finished_today": finishedToday,
			},
		},
	})
}
