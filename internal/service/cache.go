package service

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/edge-journal/internal/analytics"
)

// StatisticsKey identifies one statistics computation
type StatisticsKey struct {
	AccountID uuid.UUID
	Start     time.Time
	End       time.Time
}

// String returns string representation of cache key
func (k StatisticsKey) String() string {
	return fmt.Sprintf("%s:%d:%d", k.AccountID, unixOrZero(k.Start), unixOrZero(k.End))
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// ResultCache keeps recent statistics results in memory
type ResultCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewResultCache creates a new result cache
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached result
func (rc *ResultCache) Get(key StatisticsKey) (*analytics.StatisticsResult, bool) {
	if item, found := rc.cache.Get(key.String()); found {
		if result, ok := item.(*analytics.StatisticsResult); ok {
			rc.hitCount.Add(1)
			return result, true
		}
	}
	rc.missCount.Add(1)
	return nil, false
}

// Set stores a result
func (rc *ResultCache) Set(key StatisticsKey, result *analytics.StatisticsResult) {
	rc.cache.Set(key.String(), result, rc.ttl)
}

// InvalidateAccount removes every cached range of an account
func (rc *ResultCache) InvalidateAccount(accountID uuid.UUID) {
	prefix := accountID.String() + ":"
	for k := range rc.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			rc.cache.Delete(k)
		}
	}
}

// Stats returns hit and miss counts
func (rc *ResultCache) Stats() (hits, misses uint64) {
	return rc.hitCount.Load(), rc.missCount.Load()
}
