package handler

import (
	"database/sql"
	"log"

	"backend-hospital/internal/config"
	"backend-hospital/internal/helper"
	"backend-hospital/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFrontDeskConfig - current opening hours and whether the desk is open
func GetFrontDeskConfig(c *fiber.Ctx) error {
	var cfg models.FrontDeskConfig
	err := config.DB.QueryRow(
		"SELECT id, open_time, close_time FROM front_desk_config LIMIT 1",
	).Scan(&cfg.ID, &cfg.OpenTime, &cfg.CloseTime)

	if err == sql.ErrNoRows {
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"config":  nil,
				"is_open": true,
			},
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch config",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"config":  cfg,
			"is_open": helper.IsFrontDeskOpen(cfg.OpenTime, cfg.CloseTime),
		},
	})
}

// UpdateFrontDeskConfig - set opening hours (admin only), upserting the
// singleton row
func UpdateFrontDeskConfig(c *fiber.Ctx) error {
	var req models.UpdateFrontDeskConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.OpenTime == "" || req.CloseTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "open_time and close_time are required",
		})
	}

	res, err := config.DB.Exec(
		"UPDATE front_desk_config SET open_time = ?, close_time = ? WHERE id = 1",
		req.OpenTime, req.CloseTime,
	)
	if err != nil {
		log.Printf("[UpdateFrontDeskConfig] Error updating config: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update config",
		})
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		_, err = config.DB.Exec(
			"INSERT INTO front_desk_config (id, open_time, close_time) VALUES (1, ?, ?)",
			req.OpenTime, req.CloseTime,
		)
		if err != nil {
			log.Printf("[UpdateFrontDeskConfig] Error inserting config: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to update config",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Front desk hours updated",
		"data": fiber.Map{
			"open_time":  req.OpenTime,
			"close_time": req.CloseTime,
		},
	})
}
