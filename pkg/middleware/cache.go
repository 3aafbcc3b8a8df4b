package middleware

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"time"

	"planetarium-booking/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CatalogCache caches successful catalog reads in redis. Every successful write
// bumps a version counter, which makes all older entries unreachable.
type CatalogCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

func NewCatalogCache(rdb redis.Cmdable, ttl time.Duration, prefix string, log *zap.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CatalogCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		log:    log.With(zap.String("middleware", "catalog_cache")),
	}
}

func (c *CatalogCache) versionKey() string {
	return c.prefix + ":catalog:version"
}

func (c *CatalogCache) entryKey(version int64, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:catalog:v%d:%x", c.prefix, version, sum[:])
}

func (c *CatalogCache) version(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Invalidate makes every cached catalog response stale.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, c.versionKey()).Err(); err != nil {
		c.log.Warn("Failed to bump catalog cache version", zap.Error(err))
	}
}

func (c *CatalogCache) Middleware(next http.Handler) http.Handler {
	if c == nil || c.rdb == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodGet {
			c.invalidateOnWrite(next, w, r)
			return
		}

		version, err := c.version(ctx)
		if err != nil {
			c.log.Warn("Catalog cache unavailable", zap.Error(err))
			metrics.CacheResults.WithLabelValues("error").Inc()
			next.ServeHTTP(w, r)
			return
		}
		key := c.entryKey(version, r)

		if body, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			metrics.CacheResults.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}

		metrics.CacheResults.WithLabelValues("miss").Inc()
		w.Header().Set("X-Cache", "MISS")
		rw := newResponseWriter(w, true)
		next.ServeHTTP(rw, r)

		if rw.statusCode == http.StatusOK {
			if err := c.rdb.Set(ctx, key, rw.body.Bytes(), c.ttl).Err(); err != nil {
				c.log.Warn("Failed to store catalog response", zap.Error(err))
			}
		}
	})
}

// InvalidateOnWrite never caches, but a successful write through next still
// bumps the catalog version. Reservations change tickets_available in session lists.
func (c *CatalogCache) InvalidateOnWrite(next http.Handler) http.Handler {
	if c == nil || c.rdb == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.invalidateOnWrite(next, w, r)
	})
}

func (c *CatalogCache) invalidateOnWrite(next http.Handler, w http.ResponseWriter, r *http.Request) {
	rw := newResponseWriter(w, false)
	next.ServeHTTP(rw, r)
	if !isSafeMethod(r.Method) && rw.statusCode < http.StatusBadRequest {
		c.Invalidate(r.Context())
	}
}
