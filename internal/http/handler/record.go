package handler

import (
	"database/sql"
	"log"

	"backend-hospital/internal/config"
	"backend-hospital/internal/models"

	"github.com/gofiber/fiber/v2"
)

const recordColumns = `id, doctor_id, patient_id, started_at, end_at,
	subjective, objective_data, assessment, planning, created_at`

// GetAllRecords - every medical record, oldest attendance first
func GetAllRecords(c *fiber.Ctx) error {
	query := `SELECT ` + recordColumns + ` FROM medical_records ORDER BY started_at ASC`
	return listRecords(c, query)
}

// GetMyRecords - the authenticated patient's own history
func GetMyRecords(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	query := `SELECT ` + recordColumns + ` FROM medical_records WHERE patient_id = ? ORDER BY started_at ASC`
	return listRecords(c, query, userID)
}

// GetRecordsByPatient - a patient's history, used by doctors
func GetRecordsByPatient(c *fiber.Ctx) error {
	patientID := c.Params("patientId")
	query := `SELECT ` + recordColumns + ` FROM medical_records WHERE patient_id = ? ORDER BY started_at ASC`
	return listRecords(c, query, patientID)
}

// GetRecordByID - a single record with the full SOAP note
func GetRecordByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var r models.MedicalRecord
	query := `SELECT ` + recordColumns + ` FROM medical_records WHERE id = ?`
	err := config.DB.QueryRow(query, id).Scan(
		&r.ID, &r.DoctorID, &r.PatientID, &r.StartedAt, &r.EndAt,
		&r.Subjective, &r.ObjectiveData, &r.Assessment, &r.Planning, &r.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Record not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch record",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    r,
	})
}

func listRecords(c *fiber.Ctx, query string, args ...interface{}) error {
	rows, err := config.DB.Query(query, args...)
	if err != nil {
		log.Printf("[Records] Error listing records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch records",
		})
	}
	defer rows.Close()

	records := []models.MedicalRecord{}
	for rows.Next() {
		var r models.MedicalRecord
		err := rows.Scan(
			&r.ID, &r.DoctorID, &r.PatientID, &r.StartedAt, &r.EndAt,
			&r.Subjective, &r.ObjectiveData, &r.Assessment, &r.Planning, &r.CreatedAt,
		)
		if err != nil {
			continue
		}
		records = append(records, r)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
	})
}
