package busy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/pkg/metrics"
)

const keyPrefix = "availability:"

// Результаты обращения к кэшу для метрики
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Cache кэширует ответы Provider в Redis на ttl
// Ошибки Redis не ломают запрос: данные берутся у Provider напрямую.
type Cache struct {
	next    Provider
	store   Store
	ttl     time.Duration
	metrics *metrics.Metrics
	log     Logger
}

// NewCache создает кэш поверх provider, m может быть nil
func NewCache(next Provider, store Store, ttl time.Duration, m *metrics.Metrics, log Logger) *Cache {
	return &Cache{
		next:    next,
		store:   store,
		ttl:     ttl,
		metrics: m,
		log:     log,
	}
}

func (c *Cache) GetBusy(ctx context.Context, from, to time.Time) ([]domain.Interval, error) {
	key := busyKey(from, to)

	var cached []domain.Interval
	if c.load(ctx, "busy", key, &cached) {
		return cached, nil
	}

	busy, err := c.next.GetBusy(ctx, from, to)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, busy)
	return busy, nil
}

func (c *Cache) GetContainers(ctx context.Context, query string, from, to time.Time) ([]domain.ContainerEvent, error) {
	key := containersKey(query, from, to)

	var cached []domain.ContainerEvent
	if c.load(ctx, "containers", key, &cached) {
		return cached, nil
	}

	containers, err := c.next.GetContainers(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, containers)
	return containers, nil
}

// load возвращает true, если значение найдено и разобрано
func (c *Cache) load(ctx context.Context, kind, key string, dst interface{}) bool {
	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.observe(kind, resultMiss)
		return false
	case err != nil:
		c.log.Warn("Cache: get %s failed, falling back to provider: %v", key, err)
		c.observe(kind, resultError)
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("Cache: corrupted value for %s: %v", key, err)
		c.observe(kind, resultError)
		return false
	}

	c.observe(kind, resultHit)
	return true
}

func (c *Cache) save(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Error("Cache: encode %s: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("Cache: set %s failed: %v", key, err)
	}
}

func (c *Cache) observe(kind, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CalendarCacheTotal.WithLabelValues(kind, result).Inc()
}

func busyKey(from, to time.Time) string {
	return fmt.Sprintf("%sbusy:%d:%d", keyPrefix, from.Unix(), to.Unix())
}

func containersKey(query string, from, to time.Time) string {
	return fmt.Sprintf("%scontainers:%s:%d:%d", keyPrefix, strings.ToLower(strings.TrimSpace(query)), from.Unix(), to.Unix())
}
