package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessService_IsAdmin(t *testing.T) {
	service := NewAccessService([]int64{100, 200})

	tests := []struct {
		name     string
		userID   int64
		expected bool
	}{
		{name: "first admin", userID: 100, expected: true},
		{name: "second admin", userID: 200, expected: true},
		{name: "regular user", userID: 300, expected: false},
		{name: "zero id", userID: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.IsAdmin(tt.userID))
		})
	}
}

func TestAccessService_Count(t *testing.T) {
	assert.Equal(t, 2, NewAccessService([]int64{100, 200}).Count())
	assert.Equal(t, 1, NewAccessService([]int64{100, 100}).Count())
	assert.Equal(t, 0, NewAccessService(nil).Count())
}
