package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"user_id", "username", "language", "is_subscribed", "created_at"}

func TestUserRepo_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	now := time.Now()
	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(1), "alice", "RUS", true, now).
		AddRow(int64(2), "", "ENG", false, now)

	mock.ExpectQuery("SELECT user_id, COALESCE\\(username, ''\\), language, is_subscribed, created_at").
		WillReturnRows(rows)

	users, err := repo.GetAll()

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, domain.LangRUS, users[0].Language)
	assert.Equal(t, "", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		mockRows   *sqlmock.Rows
		expectNil  bool
		expectName string
	}{
		{
			name:   "existing user",
			userID: 1,
			mockRows: sqlmock.NewRows(userColumns).
				AddRow(int64(1), "alice", "RUS", true, time.Now()),
			expectName: "alice",
		},
		{
			name:      "missing user is nil without error",
			userID:    2,
			mockRows:  sqlmock.NewRows(userColumns),
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			mock.ExpectQuery("FROM users").
				WithArgs(tt.userID).
				WillReturnRows(tt.mockRows)

			user, err := repo.GetByID(tt.userID)

			assert.NoError(t, err)
			if tt.expectNil {
				assert.Nil(t, user)
			} else {
				require.NotNil(t, user)
				assert.Equal(t, tt.expectName, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	rows := sqlmock.NewRows(userColumns).
		AddRow(int64(1), "Alice", "ENG", true, time.Now())

	mock.ExpectQuery("LOWER\\(username\\) = LOWER\\(\\$1\\)").
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.GetByUsername("alice")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	user := domain.User{ID: 1, Username: "alice", Language: domain.LangRUS, IsSubscribed: true}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.Language, user.IsSubscribed).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Upsert(user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Statistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"count", "subscribed", "free", "paid"}).
			AddRow(10, 7, 3, 2))
	mock.ExpectQuery("SELECT fruit, COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"fruit", "count"}).
			AddRow("mango", 4).
			AddRow("durian", 2))

	stats, err := repo.Statistics()

	assert.NoError(t, err)
	assert.Equal(t, 10, stats.TotalUsers)
	assert.Equal(t, 7, stats.ActiveSubscribers)
	assert.Equal(t, 3, stats.FreeTotems)
	assert.Equal(t, 2, stats.PaidTotems)
	assert.Equal(t, map[string]int{"mango": 4, "durian": 2}, stats.FruitStats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetAllQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectQuery("FROM users").WillReturnError(errors.New("db down"))

	_, err = repo.GetAll()
	assert.Error(t, err)
}
