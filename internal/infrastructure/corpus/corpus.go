package corpus

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lensvault/backend/internal/domain"
)

// DefaultTTL is how long a loaded snapshot is served before a read
// triggers a reload. Stale reads within the TTL are accepted by design;
// the corpus changes only when an enrichment batch runs.
const DefaultTTL = 5 * time.Minute

// Corpus holds the enriched record collection in memory. A reload builds
// the new snapshot off to the side and swaps it in atomically, so
// concurrent readers never observe a partially loaded set. On load
// failure the previous snapshot keeps serving.
type Corpus struct {
	store domain.EnrichedProductStore
	ttl   time.Duration

	loadMu sync.Mutex // serializes reloads

	mu       sync.RWMutex
	records  []domain.EnrichedRecord
	byID     map[string]int
	loadedAt time.Time
	loaded   bool
}

// New creates a corpus over the given store. A non-positive TTL falls
// back to DefaultTTL.
func New(store domain.EnrichedProductStore, ttl time.Duration) *Corpus {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Corpus{
		store: store,
		ttl:   ttl,
	}
}

// Snapshot returns the current record set in stable insertion order,
// reloading first if the cached snapshot is older than the TTL. Callers
// must treat the returned slice as read-only.
func (c *Corpus) Snapshot(ctx context.Context) ([]domain.EnrichedRecord, error) {
	if records, ok := c.fresh(); ok {
		return records, nil
	}
	return c.reload(ctx)
}

// Get returns the record with the given id, or ErrProductNotFound.
func (c *Corpus) Get(ctx context.Context, id string) (*domain.EnrichedRecord, error) {
	if _, err := c.Snapshot(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	idx, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	record := c.records[idx]
	return &record, nil
}

// Invalidate forces the next read to reload.
func (c *Corpus) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedAt = time.Time{}
}

// Size returns the number of records in the current snapshot.
func (c *Corpus) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func (c *Corpus) fresh() ([]domain.EnrichedRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loaded && time.Since(c.loadedAt) < c.ttl {
		return c.records, true
	}
	return nil, false
}

func (c *Corpus) reload(ctx context.Context) ([]domain.EnrichedRecord, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	// Another reader may have finished the reload while we waited.
	if records, ok := c.fresh(); ok {
		return records, nil
	}

	dataset, err := c.store.LoadEnriched(ctx)
	if err != nil {
		c.mu.RLock()
		loaded, records := c.loaded, c.records
		c.mu.RUnlock()

		if loaded {
			// Keep serving the previous snapshot rather than failing reads.
			log.Printf("[CORPUS] Reload failed, serving stale snapshot: %v", err)
			return records, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCorpusUnavailable, err)
	}

	byID := make(map[string]int, len(dataset.Products))
	for i, record := range dataset.Products {
		byID[record.ID] = i
	}

	c.mu.Lock()
	c.records = dataset.Products
	c.byID = byID
	c.loadedAt = time.Now()
	c.loaded = true
	c.mu.Unlock()

	log.Printf("[CORPUS] Loaded %d enriched products", len(dataset.Products))
	return dataset.Products, nil
}
