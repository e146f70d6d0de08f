package backup

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManagerFixture(t *testing.T) (*Manager, *testutil.MockUserRepository, *testutil.MockExceptionRepository) {
	t.Helper()
	mockUsers := new(testutil.MockUserRepository)
	mockExc := new(testutil.MockExceptionRepository)
	m := NewManager(t.TempDir(), mockUsers, mockExc, testutil.NewTestLogger())
	return m, mockUsers, mockExc
}

func stubStore(mockUsers *testutil.MockUserRepository, mockExc *testutil.MockExceptionRepository) {
	mockUsers.On("GetAll").Return([]domain.User{
		{ID: 1, Username: "o'brien", Language: domain.LangENG, IsSubscribed: true, CreatedAt: time.Now()},
		{ID: 2, Language: domain.LangRUS, CreatedAt: time.Now()},
	}, nil)
	mockExc.On("List").Return([]domain.Exception{
		{UserID: 2, AddedBy: 10, AddedAt: time.Now()},
	}, nil)
}

func TestManager_CreateBackup(t *testing.T) {
	m, mockUsers, mockExc := newManagerFixture(t)
	stubStore(mockUsers, mockExc)

	path, err := m.CreateBackup(false)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".sql"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	dump := string(data)

	assert.Contains(t, dump, "INSERT INTO users")
	assert.Contains(t, dump, "INSERT INTO exceptions")
	// Quotes in handles are escaped, empty handles become NULL.
	assert.Contains(t, dump, "'o''brien'")
	assert.Contains(t, dump, "NULL")
}

func TestManager_CreateBackupGzip(t *testing.T) {
	m, mockUsers, mockExc := newManagerFixture(t)
	stubStore(mockUsers, mockExc)

	path, err := m.CreateBackup(true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".sql.gz"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	assert.Contains(t, string(data), "INSERT INTO users")
}

func TestManager_CreateJSONBackup(t *testing.T) {
	m, mockUsers, mockExc := newManagerFixture(t)
	stubStore(mockUsers, mockExc)

	path, err := m.CreateJSONBackup()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got export
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got.Users, 2)
	assert.Len(t, got.Exceptions, 1)
	assert.False(t, got.GeneratedAt.IsZero())
}

func TestManager_ListBackups(t *testing.T) {
	m, mockUsers, mockExc := newManagerFixture(t)
	stubStore(mockUsers, mockExc)

	t.Run("empty directory", func(t *testing.T) {
		list, err := m.ListBackups()
		assert.NoError(t, err)
		assert.Empty(t, list)
	})

	_, err := m.CreateBackup(false)
	require.NoError(t, err)

	// A foreign file in the directory is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(m.dir, "notes.txt"), []byte("x"), 0o644))

	list, err := m.ListBackups()
	assert.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sql", list[0].Type)
	assert.Greater(t, list[0].Size, int64(0))
}

func TestManager_ListBackupsMissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"),
		new(testutil.MockUserRepository), new(testutil.MockExceptionRepository), testutil.NewTestLogger())

	list, err := m.ListBackups()
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestManager_Resolve(t *testing.T) {
	m, mockUsers, mockExc := newManagerFixture(t)
	stubStore(mockUsers, mockExc)

	path, err := m.CreateBackup(false)
	require.NoError(t, err)
	filename := filepath.Base(path)

	t.Run("valid filename", func(t *testing.T) {
		resolved, info, err := m.Resolve(filename)
		assert.NoError(t, err)
		assert.Equal(t, path, resolved)
		assert.Equal(t, filename, info.Filename)
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		_, _, err := m.Resolve("../" + filename)
		assert.Error(t, err)
	})

	t.Run("foreign prefix rejected", func(t *testing.T) {
		_, _, err := m.Resolve("passwd")
		assert.Error(t, err)
	})

	t.Run("vanished file", func(t *testing.T) {
		_, _, err := m.Resolve(filePrefix + "20000101_000000.sql")
		assert.Error(t, err)
	})
}

func TestManager_GetStats(t *testing.T) {
	m, mockUsers, mockExc := newManagerFixture(t)
	stubStore(mockUsers, mockExc)

	_, err := m.CreateBackup(false)
	require.NoError(t, err)
	_, err = m.CreateJSONBackup()
	require.NoError(t, err)

	stats, err := m.GetStats()
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Greater(t, stats.TotalSize, int64(0))
	assert.False(t, stats.Newest.IsZero())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "sql", typeOf("backup_1.sql"))
	assert.Equal(t, "sql.gz", typeOf("backup_1.sql.gz"))
	assert.Equal(t, "json", typeOf("backup_1.json"))
	assert.Equal(t, "unknown", typeOf("backup_1.bin"))
}
