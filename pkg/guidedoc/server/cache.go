package server

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/source"
)

type cachedRows struct {
	set     *models.RowSet
	fetched time.Time
}

// rowCache keeps recently read row sets per source key. Concurrent misses
// for the same key share one read.
type rowCache struct {
	entries *lru.Cache[string, cachedRows]
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time
	m       *metrics
}

func newRowCache(size int, ttl time.Duration, m *metrics) (*rowCache, error) {
	entries, err := lru.New[string, cachedRows](size)
	if err != nil {
		return nil, fmt.Errorf("row cache: %w", err)
	}
	return &rowCache{entries: entries, ttl: ttl, now: time.Now, m: m}, nil
}

// rows returns the rows of src, reading them when missing or older than the
// TTL. A zero TTL never expires entries.
func (c *rowCache) rows(ctx context.Context, src source.Source) (*models.RowSet, error) {
	key := src.Key()
	if e, ok := c.entries.Get(key); ok && (c.ttl <= 0 || c.now().Sub(e.fetched) < c.ttl) {
		c.m.cache.WithLabelValues("hit").Inc()
		return e.set, nil
	}
	c.m.cache.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(key, func() (any, error) {
		set, err := src.Rows(ctx)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, cachedRows{set: set, fetched: c.now()})
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.RowSet), nil
}

func (c *rowCache) purge() {
	c.entries.Purge()
}
