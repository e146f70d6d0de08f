// Package backup creates and manages database backup artifacts on the
// local filesystem: logical SQL dumps (optionally gzipped) and
// structured JSON exports.
package backup

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/andrey2025-maker/SelenaZoo/internal/domain"
	"github.com/andrey2025-maker/SelenaZoo/internal/metrics"
	"github.com/andrey2025-maker/SelenaZoo/internal/repository"

	"go.uber.org/zap"
)

const filePrefix = "backup_"

// Info describes one stored artifact.
type Info struct {
	Filename string
	Size     int64
	Modified time.Time
	Type     string
}

// Stats summarizes the backup directory.
type Stats struct {
	Count     int
	TotalSize int64
	Newest    time.Time
}

// Manager owns the backup directory.
type Manager struct {
	dir      string
	userRepo repository.UserRepository
	excRepo  repository.ExceptionRepository
	logger   *zap.Logger
}

// NewManager creates a backup manager over dir.
func NewManager(
	dir string,
	userRepo repository.UserRepository,
	excRepo repository.ExceptionRepository,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		dir:      dir,
		userRepo: userRepo,
		excRepo:  excRepo,
		logger:   logger,
	}
}

// CreateBackup writes a logical SQL dump of the store, gzipped when
// compress is set. Returns the artifact path.
func (m *Manager) CreateBackup(compress bool) (string, error) {
	dump, err := m.sqlDump()
	if err != nil {
		return "", fmt.Errorf("build dump: %w", err)
	}

	name := filePrefix + time.Now().Format("20060102_150405") + ".sql"
	if compress {
		name += ".gz"
	}
	path, err := m.write(name, []byte(dump), compress)
	if err != nil {
		return "", err
	}

	metrics.Backups.WithLabelValues(typeOf(name)).Inc()
	m.logger.Info("Backup created", zap.String("path", path))
	return path, nil
}

// CreateJSONBackup writes a structured JSON export of the store.
func (m *Manager) CreateJSONBackup() (string, error) {
	export, err := m.jsonExport()
	if err != nil {
		return "", fmt.Errorf("build export: %w", err)
	}

	name := filePrefix + time.Now().Format("20060102_150405") + ".json"
	path, err := m.write(name, export, false)
	if err != nil {
		return "", err
	}

	metrics.Backups.WithLabelValues("json").Inc()
	m.logger.Info("JSON backup created", zap.String("path", path))
	return path, nil
}

// ListBackups returns stored artifacts, most recent first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var list []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		list = append(list, Info{
			Filename: entry.Name(),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
			Type:     typeOf(entry.Name()),
		})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Modified.After(list[j].Modified)
	})
	return list, nil
}

// GetStats summarizes the backup directory.
func (m *Manager) GetStats() (Stats, error) {
	list, err := m.ListBackups()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Count: len(list)}
	for _, info := range list {
		stats.TotalSize += info.Size
		if info.Modified.After(stats.Newest) {
			stats.Newest = info.Modified
		}
	}
	return stats, nil
}

// Resolve re-validates a listed filename against the backup directory.
// Artifacts may disappear between listing and selection.
func (m *Manager) Resolve(filename string) (string, Info, error) {
	if filename == "" || filepath.Base(filename) != filename || !strings.HasPrefix(filename, filePrefix) {
		return "", Info{}, fmt.Errorf("invalid backup filename %q", filename)
	}
	path := filepath.Join(m.dir, filename)
	fi, err := os.Stat(path)
	if err != nil {
		return "", Info{}, err
	}
	return path, Info{
		Filename: filename,
		Size:     fi.Size(),
		Modified: fi.ModTime(),
		Type:     typeOf(filename),
	}, nil
}

func (m *Manager) write(name string, data []byte, compress bool) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(m.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if compress {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(data); err != nil {
			return "", err
		}
		if err := gz.Close(); err != nil {
			return "", err
		}
		return path, nil
	}

	if _, err := f.Write(data); err != nil {
		return "", err
	}
	return path, nil
}

func (m *Manager) sqlDump() (string, error) {
	users, err := m.userRepo.GetAll()
	if err != nil {
		return "", err
	}
	exceptions, err := m.excRepo.List()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- SelenaZoo backup %s\n\n", time.Now().Format(time.RFC3339))
	for _, u := range users {
		fmt.Fprintf(&b,
			"INSERT INTO users (user_id, username, language, is_subscribed, created_at) VALUES (%d, %s, '%s', %t, '%s');\n",
			u.ID, sqlString(u.Username), u.Language, u.IsSubscribed, u.CreatedAt.Format(time.RFC3339),
		)
	}
	b.WriteString("\n")
	for _, e := range exceptions {
		fmt.Fprintf(&b,
			"INSERT INTO exceptions (user_id, added_by, added_at) VALUES (%d, %d, '%s');\n",
			e.UserID, e.AddedBy, e.AddedAt.Format(time.RFC3339),
		)
	}
	return b.String(), nil
}

type export struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Users       []domain.User      `json:"users"`
	Exceptions  []domain.Exception `json:"exceptions"`
}

func (m *Manager) jsonExport() ([]byte, error) {
	users, err := m.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	exceptions, err := m.excRepo.List()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(export{
		GeneratedAt: time.Now(),
		Users:       users,
		Exceptions:  exceptions,
	}, "", "  ")
}

func sqlString(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func typeOf(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".sql.gz"):
		return "sql.gz"
	case strings.HasSuffix(filename, ".sql"):
		return "sql"
	case strings.HasSuffix(filename, ".json"):
		return "json"
	default:
		return "unknown"
	}
}
