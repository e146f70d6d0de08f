package service

import (
	"errors"
	"testing"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExceptionFixture() (*ExceptionService, *testutil.MockUserRepository, *testutil.MockExceptionRepository) {
	mockUsers := new(testutil.MockUserRepository)
	mockExc := new(testutil.MockExceptionRepository)
	service := NewExceptionService(mockUsers, mockExc, testutil.NewTestLogger())
	return service, mockUsers, mockExc
}

func TestExceptionService_ResolveTarget(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		setup      func(*testutil.MockUserRepository)
		expectedID int64
		expectErr  error
	}{
		{
			name:  "known handle",
			input: "@alice",
			setup: func(m *testutil.MockUserRepository) {
				m.On("GetByUsername", "alice").Return(&domain.User{ID: 1001, Username: "alice"}, nil)
			},
			expectedID: 1001,
		},
		{
			name:  "unknown handle",
			input: "@nobody",
			setup: func(m *testutil.MockUserRepository) {
				m.On("GetByUsername", "nobody").Return(nil, nil)
			},
			expectErr: ErrUserNotFound,
		},
		{
			name:       "short digits are still an id",
			input:      "42",
			setup:      func(m *testutil.MockUserRepository) {},
			expectedID: 42,
		},
		{
			name:       "long digits",
			input:      "123456789",
			setup:      func(m *testutil.MockUserRepository) {},
			expectedID: 123456789,
		},
		{
			name:      "bare at sign",
			input:     "@",
			setup:     func(m *testutil.MockUserRepository) {},
			expectErr: ErrBadInput,
		},
		{
			name:      "garbage",
			input:     "not-a-user",
			setup:     func(m *testutil.MockUserRepository) {},
			expectErr: ErrBadInput,
		},
		{
			name:      "negative id",
			input:     "-7",
			setup:     func(m *testutil.MockUserRepository) {},
			expectErr: ErrBadInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockUsers, _ := newExceptionFixture()
			tt.setup(mockUsers)

			id, err := service.ResolveTarget(tt.input)

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestExceptionService_AddIdempotent(t *testing.T) {
	service, _, mockExc := newExceptionFixture()
	mockExc.On("IsException", int64(42)).Return(false, nil).Once()
	mockExc.On("Add", int64(42), int64(10)).Return(nil).Once()

	duplicate, err := service.Add(42, 10)
	assert.NoError(t, err)
	assert.False(t, duplicate)

	// Second add reports the duplicate without touching the store.
	mockExc.On("IsException", int64(42)).Return(true, nil).Once()
	duplicate, err = service.Add(42, 10)
	assert.NoError(t, err)
	assert.True(t, duplicate)

	mockExc.AssertExpectations(t)
}

func TestExceptionService_Remove(t *testing.T) {
	service, _, mockExc := newExceptionFixture()
	mockExc.On("Remove", int64(42)).Return(true, nil).Once()
	mockExc.On("Remove", int64(42)).Return(false, nil).Once()

	found, err := service.Remove(42)
	assert.NoError(t, err)
	assert.True(t, found)

	found, err = service.Remove(42)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestExceptionService_Apply(t *testing.T) {
	t.Run("add action", func(t *testing.T) {
		service, _, mockExc := newExceptionFixture()
		mockExc.On("IsException", int64(42)).Return(false, nil)
		mockExc.On("Add", int64(42), int64(10)).Return(nil)

		conflict, err := service.Apply(domain.ExceptionAdd, 42, 10)
		assert.NoError(t, err)
		assert.False(t, conflict)
	})

	t.Run("remove action absent is a conflict", func(t *testing.T) {
		service, _, mockExc := newExceptionFixture()
		mockExc.On("Remove", int64(42)).Return(false, nil)

		conflict, err := service.Apply(domain.ExceptionRemove, 42, 10)
		assert.NoError(t, err)
		assert.True(t, conflict)
	})
}

func TestExceptionService_AddStoreError(t *testing.T) {
	service, _, mockExc := newExceptionFixture()
	mockExc.On("IsException", int64(42)).Return(false, errors.New("db down"))

	_, err := service.Add(42, 10)
	assert.Error(t, err)
}
