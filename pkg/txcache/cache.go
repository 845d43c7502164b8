package txcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultLimit bounds how many records a cache retains.
const DefaultLimit = 50

// Record is one remembered transaction. This is a presentation cache in the
// spirit of browser local storage, not a system of record.
type Record struct {
	TxID        string    `json:"txid"`
	Kind        string    `json:"kind"`
	Round       uint64    `json:"round,omitempty"`
	AssetID     uint64    `json:"assetId,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Cache is a bounded, newest-first list of recent transactions, optionally
// persisted to a JSON file.
type Cache struct {
	mu      sync.Mutex
	path    string
	limit   int
	records []Record
}

// New creates a cache. path may be empty for an in-memory cache; a missing
// or corrupt file starts the cache empty rather than failing.
func New(path string, limit int) *Cache {
	if limit <= 0 {
		limit = DefaultLimit
	}
	c := &Cache{path: path, limit: limit}
	c.load()
	return c
}

// Add prepends a record, evicting the oldest past the limit, and persists.
func (c *Cache) Add(rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append([]Record{rec}, c.records...)
	if len(c.records) > c.limit {
		c.records = c.records[:c.limit]
	}
	return c.save()
}

// MarkConfirmed updates the stored round/asset for a transaction, if present.
func (c *Cache) MarkConfirmed(txid string, round, assetID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.records {
		if c.records[i].TxID == txid {
			c.records[i].Round = round
			if assetID != 0 {
				c.records[i].AssetID = assetID
			}
			return c.save()
		}
	}
	return nil
}

// Recent returns a copy of the cached records, newest first.
func (c *Cache) Recent() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Cache) load() {
	if c.path == "" {
		return
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return
	}
	if len(records) > c.limit {
		records = records[:c.limit]
	}
	c.records = records
}

func (c *Cache) save() error {
	if c.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(c.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tx cache: %w", err)
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write tx cache: %w", err)
	}
	return nil
}
