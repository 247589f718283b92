package handler

import (
	"database/sql"
	"log"

	"backend-hospital/internal/config"
	"backend-hospital/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "full_name, email and password are required",
		})
	}

	if req.Role != models.RolePatient && req.Role != models.RoleDoctor {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "role must be 'patient' or 'doctor'",
		})
	}

	if ferr := verifyRecaptcha(req.RecaptchaToken); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{
			"success": false,
			"error":   ferr.Message,
		})
	}

	// Email must be unique
	var exists int
	err := config.DB.QueryRow("SELECT 1 FROM profiles WHERE email = ?", req.Email).Scan(&exists)
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Email is already registered",
		})
	}
	if err != sql.ErrNoRows {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to validate email",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to hash password",
		})
	}

	profile := models.Profile{
		ID:          uuid.NewString(),
		FullName:    req.FullName,
		Email:       req.Email,
		Role:        req.Role,
		DateOfBirth: req.DateOfBirth,
		MomFullName: req.MomFullName,
		Priority:    req.Priority,
	}

	query := `
		INSERT INTO profiles
		(id, full_name, email, password, role, date_of_birth, mom_full_name, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`
	_, err = config.DB.Exec(query,
		profile.ID, profile.FullName, profile.Email, string(hashed),
		profile.Role, profile.DateOfBirth, profile.MomFullName, profile.Priority,
	)
	if err != nil {
		log.Printf("[Register] Error inserting profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create profile",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Profile created",
		"data":    models.ToProfileResponse(profile),
	})
}

func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	if ferr := verifyRecaptcha(req.RecaptchaToken); ferr != nil {
		return c.Status(ferr.Code).JSON(fiber.Map{
			"error": ferr.Message,
		})
	}

	var profile models.Profile
	query := `SELECT id, full_name, email, password, role, date_of_birth, mom_full_name, priority
	          FROM profiles WHERE email = ?`
	err := config.DB.QueryRow(query, req.Email).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.Password,
		&profile.Role,
		&profile.DateOfBirth,
		&profile.MomFullName,
		&profile.Priority,
	)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Wrong email or password",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Wrong email or password",
		})
	}

	token, err := config.GenerateToken(profile.ID, profile.FullName, profile.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"user":    models.ToProfileResponse(profile),
		"message": "Welcome back, " + profile.FullName,
	})
}

// verifyRecaptcha enforces reCAPTCHA only when a secret key is configured.
func verifyRecaptcha(token string) *fiber.Error {
	if !config.RecaptchaEnabled() {
		return nil
	}

	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "reCAPTCHA token is required")
	}

	ok, score, err := config.VerifyRecaptcha(token)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify reCAPTCHA")
	}
	if !ok || score < 0.5 {
		return fiber.NewError(fiber.StatusForbidden, "Suspicious activity detected")
	}
	return nil
}
