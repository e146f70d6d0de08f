package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	require.NotNil(t, m)

	// Both tables parse and carry the shared keys.
	assert.NotEqual(t, "common.error", m.Get("ru", "common.error"))
	assert.NotEqual(t, "common.error", m.Get("en", "common.error"))
}

func TestManager_Get(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	t.Run("formats arguments", func(t *testing.T) {
		text := m.Get("en", "broadcast.started", 7)
		assert.Contains(t, text, "7")
	})

	t.Run("unknown locale falls back to english", func(t *testing.T) {
		assert.Equal(t, m.Get("en", "common.error"), m.Get("de", "common.error"))
	})

	t.Run("unknown key returns the key", func(t *testing.T) {
		assert.Equal(t, "no.such.key", m.Get("en", "no.such.key"))
	})

	t.Run("locales differ", func(t *testing.T) {
		assert.NotEqual(t, m.Get("ru", "relay.stopped"), m.Get("en", "relay.stopped"))
	})
}

func TestLocaleTablesMirrorEachOther(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	for key := range m.tables["ru"] {
		_, ok := m.tables["en"][key]
		assert.True(t, ok, "key %q missing from en table", key)
	}
	for key := range m.tables["en"] {
		_, ok := m.tables["ru"][key]
		assert.True(t, ok, "key %q missing from ru table", key)
	}
}
