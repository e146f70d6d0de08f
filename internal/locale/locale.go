package locale

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localeFiles embed.FS

var codes = []string{"ru", "en"}

// Manager resolves user-facing strings by locale code and key.
type Manager struct {
	tables map[string]map[string]string
}

// New parses the embedded locale tables.
func New() (*Manager, error) {
	m := &Manager{tables: make(map[string]map[string]string)}
	for _, code := range codes {
		raw, err := localeFiles.ReadFile("locales/" + code + ".yml")
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", code, err)
		}
		table := make(map[string]string)
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", code, err)
		}
		m.tables[code] = table
	}
	return m, nil
}

// Get returns the string for a locale and key, formatted with args.
// Unknown locales fall back to English; unknown keys return the key
// itself so a missing entry is visible instead of silent.
func (m *Manager) Get(locale, key string, args ...interface{}) string {
	table, ok := m.tables[locale]
	if !ok {
		table = m.tables["en"]
	}
	text, ok := table[key]
	if !ok {
		if text, ok = m.tables["en"][key]; !ok {
			return key
		}
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
