package testutil

import (
	"sync"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(user domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Statistics() (*domain.Statistics, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

// MockExceptionRepository is a mock for ExceptionRepository
type MockExceptionRepository struct {
	mock.Mock
}

func (m *MockExceptionRepository) List() ([]domain.Exception, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exception), args.Error(1)
}

func (m *MockExceptionRepository) Add(userID, addedBy int64) error {
	args := m.Called(userID, addedBy)
	return args.Error(0)
}

func (m *MockExceptionRepository) Remove(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockExceptionRepository) IsException(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

// Sent records one message handed to the fake messenger.
type Sent struct {
	ChatID int64
	Text   string
	Ref    domain.MessageRef
	Copied bool
}

// FakeMessenger records outbound messages and fails the chat ids it is
// told to fail.
type FakeMessenger struct {
	mu   sync.Mutex
	sent []Sent

	// Errs maps chat id to the error every delivery to it returns.
	Errs map[int64]error
}

func NewFakeMessenger() *FakeMessenger {
	return &FakeMessenger{Errs: make(map[int64]error)}
}

func (f *FakeMessenger) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errs[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, Sent{ChatID: chatID, Text: text})
	return nil
}

func (f *FakeMessenger) Copy(chatID int64, ref domain.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errs[chatID]; err != nil {
		return err
	}
	f.sent = append(f.sent, Sent{ChatID: chatID, Ref: ref, Copied: true})
	return nil
}

// Sent returns a copy of everything delivered so far.
func (f *FakeMessenger) Sent() []Sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Sent, len(f.sent))
	copy(out, f.sent)
	return out
}

// SentTo returns the deliveries that reached one chat.
func (f *FakeMessenger) SentTo(chatID int64) []Sent {
	var out []Sent
	for _, s := range f.Sent() {
		if s.ChatID == chatID {
			out = append(out, s)
		}
	}
	return out
}
