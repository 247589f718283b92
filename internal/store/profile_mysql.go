package store

import (
	"context"
	"database/sql"
	"strings"
)

// ProfileStore is the MySQL-backed queue.ProfileDirectory implementation.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// PriorityFlags fetches the priority flag for a whole batch of patients in
// one query, so ranking a queue of n patients costs one round trip instead
// of n.
func (s *ProfileStore) PriorityFlags(ctx context.Context, patientIDs []string) (map[string]bool, error) {
	flags := make(map[string]bool, len(patientIDs))
	if len(patientIDs) == 0 {
		return flags, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(patientIDs)), ",")
	query := "SELECT id, priority FROM profiles WHERE id IN (" + placeholders + ")"

	args := make([]interface{}, len(patientIDs))
	for i, id := range patientIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var priority bool
		if err := rows.Scan(&id, &priority); err != nil {
			return nil, err
		}
		flags[id] = priority
	}
	return flags, rows.Err()
}

func (s *ProfileStore) Exists(ctx context.Context, patientID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM profiles WHERE id = ?", patientID,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
