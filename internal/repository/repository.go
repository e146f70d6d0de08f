package repository

import (
	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	GetAll() ([]domain.User, error)
	GetByID(userID int64) (*domain.User, error)
	GetByUsername(username string) (*domain.User, error)
	Upsert(user domain.User) error
	Statistics() (*domain.Statistics, error)
}

// ExceptionRepository defines allow/deny list operations
type ExceptionRepository interface {
	List() ([]domain.Exception, error)
	Add(userID, addedBy int64) error
	Remove(userID int64) (bool, error)
	IsException(userID int64) (bool, error)
}
