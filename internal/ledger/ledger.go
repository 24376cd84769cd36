// Package ledger persists the set of review requests that were already
// processed, so a request is never reviewed twice.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultPath      = "reviewed_requests.json"
	defaultRetention = 30 * 24 * time.Hour
)

// Config represents ledger configuration.
type Config struct {
	Path string `yaml:"path" env:"LEDGER_PATH"`

	// Retention bounds ledger growth: entries not seen for longer than
	// this are evicted on Compact.
	Retention time.Duration `yaml:"retention" env:"LEDGER_RETENTION"`
}

func (c *Config) PrepareAndValidate() error {
	c.Path = lang.Check(c.Path, defaultPath)
	c.Retention = lang.Check(c.Retention, defaultRetention)
	return nil
}

// Identity derives the stable deduplication key for a review request.
// It is a one-way hash, never reversed.
func Identity(repositoryID string, requestNumber int) string {
	sum := sha256.Sum256([]byte(repositoryID + ":" + strconv.Itoa(requestNumber)))
	return hex.EncodeToString(sum[:])
}

type ledgerEntry struct {
	ID     string    `json:"id"`
	SeenAt time.Time `json:"seen_at"`
}

type ledgerFile struct {
	Entries []ledgerEntry `json:"entries"`
}

// Ledger is the persisted set of processed request identities.
// It is fully loaded into memory and rewritten on each Save.
type Ledger struct {
	cfg     Config
	entries *abstract.SafeMap[string, time.Time]
	log     logze.Logger
}

// Load creates a ledger and reads its persisted state. A missing or
// unreadable file is not an error: the ledger starts empty and future
// cycles will rewrite it.
func Load(cfg Config) (*Ledger, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	l := &Ledger{
		cfg:     cfg,
		entries: abstract.NewSafeMap[string, time.Time](),
		log:     logze.With("component", "ledger"),
	}

	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.log.Err(err, "cannot read ledger file, starting fresh", "path", cfg.Path)
		}
		return l, nil
	}

	var file ledgerFile
	if err := json.Unmarshal(data, &file); err != nil {
		l.log.Err(err, "cannot parse ledger file, starting fresh", "path", cfg.Path)
		return l, nil
	}

	for _, entry := range file.Entries {
		l.entries.Set(entry.ID, entry.SeenAt)
	}

	l.log.Info("loaded ledger", "entries", l.entries.Len(), "path", cfg.Path)

	return l, nil
}

// Has reports whether the identity was already processed.
func (l *Ledger) Has(identity string) bool {
	return l.entries.Has(identity)
}

// Add marks the identity as processed at the current time.
func (l *Ledger) Add(identity string) {
	l.entries.Set(identity, time.Now())
}

// Len returns the number of tracked identities.
func (l *Ledger) Len() int {
	return l.entries.Len()
}

// Compact evicts identities that have not been seen within the configured
// retention and returns the number of evicted entries.
func (l *Ledger) Compact() int {
	cutoff := time.Now().Add(-l.cfg.Retention)

	var stale []string
	for _, id := range l.entries.Keys() {
		if seenAt, ok := l.entries.Lookup(id); ok && seenAt.Before(cutoff) {
			stale = append(stale, id)
		}
	}

	for _, id := range stale {
		l.entries.Delete(id)
	}

	if len(stale) > 0 {
		l.log.Info("compacted ledger", "evicted", len(stale), "remaining", l.entries.Len())
	}

	return len(stale)
}

// Save rewrites the whole ledger file. A write failure is returned to the
// caller but is safe to treat as non-fatal: the next cycle retries it.
func (l *Ledger) Save() error {
	file := ledgerFile{Entries: make([]ledgerEntry, 0, l.entries.Len())}
	for _, id := range l.entries.Keys() {
		if seenAt, ok := l.entries.Lookup(id); ok {
			file.Entries = append(file.Entries, ledgerEntry{ID: id, SeenAt: seenAt})
		}
	}

	data, err := json.Marshal(file)
	if err != nil {
		return errm.Wrap(err, "marshal ledger")
	}

	if dir := filepath.Dir(l.cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errm.Wrap(err, "create ledger directory")
		}
	}

	if err := os.WriteFile(l.cfg.Path, data, 0o644); err != nil {
		return errm.Wrap(err, "write ledger file")
	}

	return nil
}
