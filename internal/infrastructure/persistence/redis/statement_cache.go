package redis

import (
	"context"
	"errors"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// statementKeyPrefix namespaces cached statement artifacts.
const statementKeyPrefix = "statement:"

// StatementCache implements statement.ArtifactCache on Redis. The cached
// bytes are the final, password-protected PDF.
type StatementCache struct {
	cache *Cache
}

// NewStatementCache creates a new StatementCache.
func NewStatementCache(cache *Cache) *StatementCache {
	return &StatementCache{cache: cache}
}

// Get returns a cached artifact, or shared.ErrNotFound on a miss.
func (c *StatementCache) Get(ctx context.Context, no student.AdmissionNo) ([]byte, error) {
	doc, err := c.cache.GetBytes(ctx, statementKeyPrefix+no.String())
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, shared.WrapError("statement", "CacheGet", shared.ErrNotFound, "no cached statement", err)
		}
		return nil, err
	}
	return doc, nil
}

// Set stores an artifact with the given TTL.
func (c *StatementCache) Set(ctx context.Context, no student.AdmissionNo, doc []byte, ttl time.Duration) error {
	return c.cache.SetBytes(ctx, statementKeyPrefix+no.String(), doc, ttl)
}
