package service

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/locale"
	"github.com/andrey2025-maker/SelenaZoo/internal/metrics"
	"github.com/andrey2025-maker/SelenaZoo/internal/repository"
	"github.com/andrey2025-maker/SelenaZoo/internal/transport"

	"go.uber.org/zap"
)

var (
	// ErrTargetNotFound means the supplied index/handle/id resolved to
	// no known user; the selection step may be retried.
	ErrTargetNotFound = errors.New("relay target not found")

	// ErrChatInactive means the pairing the actor expects no longer
	// exists or belongs to another admin.
	ErrChatInactive = errors.New("relay chat no longer active")
)

// RelayService bridges one admin with one end user and relays messages
// both ways while the pairing is alive. A user has at most one paired
// admin; an admin may chat with several users at once.
type RelayService struct {
	userRepo  repository.UserRepository
	messenger transport.Messenger
	locales   *locale.Manager
	logger    *zap.Logger

	// indexThreshold: numerals with fewer digits are list indexes,
	// longer ones are raw ids.
	indexThreshold int

	mu       sync.RWMutex
	pairings map[int64]int64 // user id -> admin id
}

// NewRelayService creates a new relay service.
func NewRelayService(
	userRepo repository.UserRepository,
	messenger transport.Messenger,
	locales *locale.Manager,
	indexThreshold int,
	logger *zap.Logger,
) *RelayService {
	return &RelayService{
		userRepo:       userRepo,
		messenger:      messenger,
		locales:        locales,
		logger:         logger,
		indexThreshold: indexThreshold,
		pairings:       make(map[int64]int64),
	}
}

// ResolveTarget interprets an admin's target input as a 1-based index
// into the current user list, an @handle, or a raw numeric id.
func (s *RelayService) ResolveTarget(input string) (*domain.User, error) {
	input = strings.TrimSpace(input)

	if handle, ok := strings.CutPrefix(input, "@"); ok {
		if handle == "" {
			return nil, ErrTargetNotFound
		}
		user, err := s.userRepo.GetByUsername(handle)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrTargetNotFound
		}
		return user, nil
	}

	number, err := strconv.ParseInt(input, 10, 64)
	if err != nil || number <= 0 {
		return nil, ErrTargetNotFound
	}

	if len(input) < s.indexThreshold {
		users, err := s.userRepo.GetAll()
		if err != nil {
			return nil, err
		}
		idx := int(number)
		if idx < 1 || idx > len(users) {
			return nil, ErrTargetNotFound
		}
		return &users[idx-1], nil
	}

	user, err := s.userRepo.GetByID(number)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTargetNotFound
	}
	return user, nil
}

// Establish delivers the contact notice to the user and, only on
// success, installs the pairing. A second pairing for the same user
// replaces the first.
func (s *RelayService) Establish(adminID int64, user domain.User) error {
	notice := s.locales.Get(user.Language.LocaleCode(), "relay.contacted")
	if err := s.messenger.SendText(user.ID, notice); err != nil {
		return err
	}

	s.mu.Lock()
	s.pairings[user.ID] = adminID
	s.mu.Unlock()

	s.logger.Info("Relay pairing established",
		zap.Int64("admin_id", adminID),
		zap.Int64("user_id", user.ID),
	)
	return nil
}

// PairedAdmin returns the admin currently paired with the user.
func (s *RelayService) PairedAdmin(userID int64) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	adminID, ok := s.pairings[userID]
	return adminID, ok
}

// RelayFromAdmin copies the admin's message to the paired user. A
// permanent delivery failure tears the pairing down.
func (s *RelayService) RelayFromAdmin(adminID, userID int64, ref domain.MessageRef) error {
	if paired, ok := s.PairedAdmin(userID); !ok || paired != adminID {
		return ErrChatInactive
	}

	if err := s.messenger.Copy(userID, ref); err != nil {
		if transport.Classify(err).Permanent() {
			s.unpair(userID)
			return ErrChatInactive
		}
		return err
	}

	metrics.RelayMessages.WithLabelValues("admin_to_user").Inc()
	return nil
}

// RelayFromUser forwards a paired user's message to their admin,
// prefixed with an identity line. A permanent failure on the admin
// side silently tears the pairing down.
func (s *RelayService) RelayFromUser(user domain.User, ref domain.MessageRef) error {
	adminID, ok := s.PairedAdmin(user.ID)
	if !ok {
		return ErrChatInactive
	}

	header := s.locales.Get(s.localeFor(adminID), "relay.from_user", user.Identity())
	err := s.messenger.SendText(adminID, header)
	if err == nil {
		err = s.messenger.Copy(adminID, ref)
	}
	if err != nil {
		if transport.Classify(err).Permanent() {
			s.unpair(user.ID)
			s.logger.Warn("Relay pairing dropped, admin unreachable",
				zap.Int64("admin_id", adminID),
				zap.Int64("user_id", user.ID),
			)
			return nil
		}
		return err
	}

	metrics.RelayMessages.WithLabelValues("user_to_admin").Inc()
	return nil
}

// StopByAdmin ends the pairing from the admin side with a best-effort
// notice to the user.
func (s *RelayService) StopByAdmin(adminID, userID int64) error {
	if paired, ok := s.PairedAdmin(userID); !ok || paired != adminID {
		return ErrChatInactive
	}

	notice := s.locales.Get(s.localeFor(userID), "relay.ended_by_admin")
	if err := s.messenger.SendText(userID, notice); err != nil {
		s.logger.Warn("Relay stop notice failed", zap.Int64("user_id", userID), zap.Error(err))
	}

	s.unpair(userID)
	return nil
}

// StopByUser ends the pairing from the user side and notifies the
// admin. Returns false if the user had no active pairing.
func (s *RelayService) StopByUser(user domain.User) bool {
	adminID, ok := s.PairedAdmin(user.ID)
	if !ok {
		return false
	}

	notice := s.locales.Get(s.localeFor(adminID), "relay.ended_by_user", user.Identity())
	if err := s.messenger.SendText(adminID, notice); err != nil {
		s.logger.Warn("Relay stop notice failed", zap.Int64("admin_id", adminID), zap.Error(err))
	}

	s.unpair(user.ID)
	return true
}

func (s *RelayService) unpair(userID int64) {
	s.mu.Lock()
	delete(s.pairings, userID)
	s.mu.Unlock()
}

// localeFor looks up a stored profile language; admins without a
// profile default to Russian, like the rest of the admin surface.
func (s *RelayService) localeFor(userID int64) string {
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return "ru"
	}
	return user.Language.LocaleCode()
}
