package handler

import (
	"database/sql"

	"backend-hospital/internal/config"
	"backend-hospital/internal/models"

	"github.com/gofiber/fiber/v2"
)

const profileColumns = `id, full_name, email, role, date_of_birth, mom_full_name, priority`

// GetAllProfiles - every registered profile, for the admin dashboard
func GetAllProfiles(c *fiber.Ctx) error {
	rows, err := config.DB.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY full_name ASC`)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch profiles",
		})
	}
	defer rows.Close()

	profiles := []models.ProfileResponse{}
	for rows.Next() {
		var p models.Profile
		err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.DateOfBirth, &p.MomFullName, &p.Priority)
		if err != nil {
			continue
		}
		profiles = append(profiles, models.ToProfileResponse(p))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profiles,
	})
}

// GetMyProfile - profile of the authenticated user
func GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	return getProfile(c, userID)
}

// GetProfileByID - single profile, used by doctors viewing a patient
func GetProfileByID(c *fiber.Ctx) error {
	return getProfile(c, c.Params("id"))
}

func getProfile(c *fiber.Ctx, id string) error {
	var p models.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	err := config.DB.QueryRow(query, id).Scan(
		&p.ID, &p.FullName, &p.Email, &p.Role, &p.DateOfBirth, &p.MomFullName, &p.Priority,
	)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Profile not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.ToProfileResponse(p),
	})
}
