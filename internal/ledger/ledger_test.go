package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	id := Identity("team/service", 42)

	assert.Len(t, id, 64) // hex sha256
	assert.Equal(t, id, Identity("team/service", 42))
	assert.NotEqual(t, id, Identity("team/service", 43))
	assert.NotEqual(t, id, Identity("team/other", 42))
	assert.NotContains(t, id, "team/service")
}

func TestLedgerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	l, err := Load(Config{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())

	id := Identity("team/service", 1)
	l.Add(id)
	assert.True(t, l.Has(id))
	require.NoError(t, l.Save())

	reloaded, err := Load(Config{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Len())
	assert.True(t, reloaded.Has(id))
	assert.False(t, reloaded.Has(Identity("team/service", 2)))
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	l, err := Load(Config{Path: filepath.Join(t.TempDir(), "does-not-exist.json")})
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestLoad_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	l, err := Load(Config{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "nested", "ledger.json")

	l, err := Load(Config{Path: path})
	require.NoError(t, err)

	l.Add(Identity("team/service", 7))
	require.NoError(t, l.Save())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCompact(t *testing.T) {
	l, err := Load(Config{
		Path:      filepath.Join(t.TempDir(), "ledger.json"),
		Retention: time.Hour,
	})
	require.NoError(t, err)

	stale := Identity("team/service", 1)
	fresh := Identity("team/service", 2)

	l.entries.Set(stale, time.Now().Add(-2*time.Hour))
	l.Add(fresh)

	evicted := l.Compact()
	assert.Equal(t, 1, evicted)
	assert.False(t, l.Has(stale))
	assert.True(t, l.Has(fresh))
}

func TestCompact_NothingStale(t *testing.T) {
	l, err := Load(Config{Path: filepath.Join(t.TempDir(), "ledger.json")})
	require.NoError(t, err)

	l.Add(Identity("team/service", 1))
	assert.Equal(t, 0, l.Compact())
	assert.Equal(t, 1, l.Len())
}
