package service

import (
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/repository"

	"go.uber.org/zap"
)

// StatsSummary extends raw store statistics with derived values shown
// on the admin panel.
type StatsSummary struct {
	domain.Statistics
	RecentUsers int
}

// StatsService aggregates user-base statistics
type StatsService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(userRepo repository.UserRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Summary returns store statistics plus the 7-day new-user count.
func (s *StatsService) Summary() (*StatsSummary, error) {
	stats, err := s.userRepo.Statistics()
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	recent := 0
	for _, u := range users {
		if u.CreatedAt.After(weekAgo) {
			recent++
		}
	}

	return &StatsSummary{Statistics: *stats, RecentUsers: recent}, nil
}

// SubscribedRatio returns the subscription percentage, zero-safe.
func (s *StatsSummary) SubscribedRatio() float64 {
	if s.TotalUsers == 0 {
		return 0
	}
	return float64(s.ActiveSubscribers) / float64(s.TotalUsers) * 100
}
