package postgres

import (
	"database/sql"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetAll returns every known user, oldest first.
func (r *UserRepo) GetAll() ([]domain.User, error) {
	query := `
		SELECT user_id, COALESCE(username, ''), language, is_subscribed, created_at
		FROM users
		ORDER BY created_at
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Language, &u.IsSubscribed, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID returns a user or nil if not found.
func (r *UserRepo) GetByID(userID int64) (*domain.User, error) {
	query := `
		SELECT user_id, COALESCE(username, ''), language, is_subscribed, created_at
		FROM users
		WHERE user_id = $1
	`
	var u domain.User
	err := r.db.QueryRow(query, userID).Scan(&u.ID, &u.Username, &u.Language, &u.IsSubscribed, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername matches the stored handle case-insensitively, without
// the leading @. Returns nil if not found.
func (r *UserRepo) GetByUsername(username string) (*domain.User, error) {
	query := `
		SELECT user_id, COALESCE(username, ''), language, is_subscribed, created_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`
	var u domain.User
	err := r.db.QueryRow(query, username).Scan(&u.ID, &u.Username, &u.Language, &u.IsSubscribed, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert creates or refreshes a user record.
func (r *UserRepo) Upsert(user domain.User) error {
	query := `
		INSERT INTO users (user_id, username, language, is_subscribed)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET username = NULLIF($2, ''), language = $3, is_subscribed = $4
	`
	_, err := r.db.Exec(query, user.ID, user.Username, user.Language, user.IsSubscribed)
	return err
}

// Statistics aggregates counters over the user base.
func (r *UserRepo) Statistics() (*domain.Statistics, error) {
	stats := &domain.Statistics{FruitStats: make(map[string]int)}

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_subscribed),
		       COUNT(*) FILTER (WHERE totem_type = 'free'),
		       COUNT(*) FILTER (WHERE totem_type = 'paid')
		FROM users
	`
	err := r.db.QueryRow(query).Scan(
		&stats.TotalUsers,
		&stats.ActiveSubscribers,
		&stats.FreeTotems,
		&stats.PaidTotems,
	)
	if err != nil {
		return nil, err
	}

	fruitQuery := `
		SELECT fruit, COUNT(*)
		FROM users
		WHERE fruit IS NOT NULL
		GROUP BY fruit
	`
	rows, err := r.db.Query(fruitQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var fruit string
		var count int
		if err := rows.Scan(&fruit, &count); err != nil {
			return nil, err
		}
		stats.FruitStats[fruit] = count
	}
	return stats, rows.Err()
}
