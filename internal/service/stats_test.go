package service

import (
	"errors"
	"testing"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_Summary(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("Statistics").Return(&domain.Statistics{
		TotalUsers:        3,
		ActiveSubscribers: 2,
	}, nil)
	mockRepo.On("GetAll").Return([]domain.User{
		{ID: 1, CreatedAt: time.Now().AddDate(0, 0, -1)},
		{ID: 2, CreatedAt: time.Now().AddDate(0, 0, -3)},
		{ID: 3, CreatedAt: time.Now().AddDate(0, 0, -30)},
	}, nil)

	service := NewStatsService(mockRepo, testutil.NewTestLogger())

	summary, err := service.Summary()

	assert.NoError(t, err)
	assert.Equal(t, 3, summary.TotalUsers)
	assert.Equal(t, 2, summary.ActiveSubscribers)
	assert.Equal(t, 2, summary.RecentUsers)
	mockRepo.AssertExpectations(t)
}

func TestStatsService_SummaryStoreError(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("Statistics").Return(nil, errors.New("db down"))

	service := NewStatsService(mockRepo, testutil.NewTestLogger())

	_, err := service.Summary()
	assert.Error(t, err)
}

func TestStatsSummary_SubscribedRatio(t *testing.T) {
	tests := []struct {
		name     string
		summary  StatsSummary
		expected float64
	}{
		{
			name:     "half subscribed",
			summary:  StatsSummary{Statistics: domain.Statistics{TotalUsers: 4, ActiveSubscribers: 2}},
			expected: 50,
		},
		{
			name:     "empty base is zero not NaN",
			summary:  StatsSummary{},
			expected: 0,
		},
		{
			name:     "all subscribed",
			summary:  StatsSummary{Statistics: domain.Statistics{TotalUsers: 5, ActiveSubscribers: 5}},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.summary.SubscribedRatio(), 0.001)
		})
	}
}
