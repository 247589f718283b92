package helper

import (
	"database/sql"
	"errors"

	"backend-hospital/internal/config"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidRole     = errors.New("role not allowed")
)

// CheckProfileRole re-validates a user's role against the profiles table.
// Tokens live for a day, so sensitive operations double-check the stored
// role instead of trusting the claim alone.
func CheckProfileRole(profileID string, allowedRoles ...string) error {
	var role string

	query := "SELECT role FROM profiles WHERE id = ?"
	err := config.DB.QueryRow(query, profileID).Scan(&role)

	if err == sql.ErrNoRows {
		return ErrProfileNotFound
	}

	if err != nil {
		return err
	}

	for _, allowedRole := range allowedRoles {
		if role == allowedRole {
			return nil
		}
	}

	return ErrInvalidRole
}
