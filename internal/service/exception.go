package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/repository"

	"go.uber.org/zap"
)

var (
	// ErrBadInput means the input is neither an @handle nor digits;
	// the flow stays in its input state so the admin can retry.
	ErrBadInput = errors.New("exception input malformed")

	// ErrUserNotFound means an @handle matched no stored user.
	ErrUserNotFound = errors.New("exception user not found")
)

// ExceptionService manages the allow/deny list.
type ExceptionService struct {
	userRepo repository.UserRepository
	excRepo  repository.ExceptionRepository
	logger   *zap.Logger
}

// NewExceptionService creates a new exception service
func NewExceptionService(
	userRepo repository.UserRepository,
	excRepo repository.ExceptionRepository,
	logger *zap.Logger,
) *ExceptionService {
	return &ExceptionService{
		userRepo: userRepo,
		excRepo:  excRepo,
		logger:   logger,
	}
}

// ResolveTarget resolves an @handle or raw numeric id to a user id.
// Unlike relay target selection there is no index form: bare digits
// are always an id, known to the store or not.
func (s *ExceptionService) ResolveTarget(input string) (int64, error) {
	input = strings.TrimSpace(input)

	if handle, ok := strings.CutPrefix(input, "@"); ok {
		if handle == "" {
			return 0, ErrBadInput
		}
		user, err := s.userRepo.GetByUsername(handle)
		if err != nil {
			return 0, err
		}
		if user == nil {
			return 0, ErrUserNotFound
		}
		return user.ID, nil
	}

	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadInput
	}
	return id, nil
}

// Add puts a user on the list. Returns true if the user was already
// present, in which case nothing is mutated.
func (s *ExceptionService) Add(userID, addedBy int64) (duplicate bool, err error) {
	present, err := s.excRepo.IsException(userID)
	if err != nil {
		return false, err
	}
	if present {
		return true, nil
	}
	if err := s.excRepo.Add(userID, addedBy); err != nil {
		return false, err
	}
	s.logger.Info("Exception added",
		zap.Int64("user_id", userID),
		zap.Int64("added_by", addedBy),
	)
	return false, nil
}

// Remove takes a user off the list. Returns false if the user was not
// present.
func (s *ExceptionService) Remove(userID int64) (bool, error) {
	found, err := s.excRepo.Remove(userID)
	if err != nil {
		return false, err
	}
	if found {
		s.logger.Info("Exception removed", zap.Int64("user_id", userID))
	}
	return found, nil
}

// List returns the current exception entries.
func (s *ExceptionService) List() ([]domain.Exception, error) {
	return s.excRepo.List()
}

// Apply performs the action the flow was entered with.
func (s *ExceptionService) Apply(action domain.ExceptionAction, userID, actorID int64) (conflict bool, err error) {
	switch action {
	case domain.ExceptionRemove:
		found, err := s.Remove(userID)
		return !found, err
	default:
		return s.Add(userID, actorID)
	}
}
