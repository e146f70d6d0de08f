package postgres

import (
	"database/sql"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
)

// ExceptionRepo implements repository.ExceptionRepository
type ExceptionRepo struct {
	db *sql.DB
}

// NewExceptionRepo creates a new exception repository
func NewExceptionRepo(db *sql.DB) *ExceptionRepo {
	return &ExceptionRepo{db: db}
}

// List returns all exceptions, newest first.
func (r *ExceptionRepo) List() ([]domain.Exception, error) {
	query := `
		SELECT user_id, added_by, added_at
		FROM exceptions
		ORDER BY added_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Exception
	for rows.Next() {
		var e domain.Exception
		if err := rows.Scan(&e.UserID, &e.AddedBy, &e.AddedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Add inserts an exception entry.
func (r *ExceptionRepo) Add(userID, addedBy int64) error {
	query := `
		INSERT INTO exceptions (user_id, added_by)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID, addedBy)
	return err
}

// Remove deletes an exception entry, reporting whether it existed.
func (r *ExceptionRepo) Remove(userID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM exceptions WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// IsException checks membership.
func (r *ExceptionRepo) IsException(userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM exceptions WHERE user_id = $1)`, userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}
