// Package schedule кэширует расписания объектов в Redis.
// Кэшируется только чтение расписания целиком вне транзакции;
// после изменения расписания запись кэша нужно сбросить через Invalidate.
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
	"github.com/Radi03825/PlaySpot-sub000/pkg/dbmetrics"
)

const cacheName = "schedule"

// CachedStore декоратор хранилища расписаний с read-through кэшем
type CachedStore struct {
	store   Store
	redis   *redis.Client
	ttl     time.Duration
	metrics Metrics
	log     Logger
}

// NewCachedStore создает декоратор. metrics может быть nil.
func NewCachedStore(store Store, client *redis.Client, ttl time.Duration, metrics Metrics, log Logger) *CachedStore {
	return &CachedStore{
		store:   store,
		redis:   client,
		ttl:     ttl,
		metrics: metrics,
		log:     log,
	}
}

// GetSchedule читает расписание из кэша, при промахе - из хранилища
func (c *CachedStore) GetSchedule(ctx context.Context, facilityID int64) (*domain.FacilitySchedule, error) {
	// В транзакции читаем напрямую, чтобы видеть собственные изменения
	if dbmetrics.IsInTransaction(ctx) || !c.enabled() {
		return c.store.GetSchedule(ctx, facilityID)
	}

	key := cacheKey(facilityID)
	var cached domain.FacilitySchedule
	if c.readCache(ctx, key, &cached) {
		c.hit()
		return &cached, nil
	}
	c.miss()

	schedule, err := c.store.GetSchedule(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, key, schedule)
	return schedule, nil
}

// GetDay читает расписание типа дня напрямую из хранилища
func (c *CachedStore) GetDay(ctx context.Context, facilityID int64, dayType domain.DayType) (*domain.DaySchedule, error) {
	return c.store.GetDay(ctx, facilityID, dayType)
}

// SaveDay сохраняет расписание типа дня
func (c *CachedStore) SaveDay(ctx context.Context, day *domain.DaySchedule) error {
	return c.store.SaveDay(ctx, day)
}

// Invalidate сбрасывает кэш расписания объекта
func (c *CachedStore) Invalidate(ctx context.Context, facilityID int64) error {
	if !c.enabled() {
		return nil
	}
	if err := c.redis.Del(ctx, cacheKey(facilityID)).Err(); err != nil {
		return fmt.Errorf("invalidate schedule cache for facility %d: %w", facilityID, err)
	}
	return nil
}

func (c *CachedStore) enabled() bool {
	return c.redis != nil && c.ttl > 0
}

func (c *CachedStore) readCache(ctx context.Context, key string, out any) bool {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Schedule cache read failed for key=%s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		c.log.Warn("Schedule cache entry key=%s is corrupted: %v", key, err)
		return false
	}
	return true
}

func (c *CachedStore) writeCache(ctx context.Context, key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("Schedule cache write failed for key=%s: %v", key, err)
	}
}

func (c *CachedStore) hit() {
	if c.metrics != nil {
		c.metrics.IncCacheHit(cacheName)
	}
}

func (c *CachedStore) miss() {
	if c.metrics != nil {
		c.metrics.IncCacheMiss(cacheName)
	}
}

func cacheKey(facilityID int64) string {
	return fmt.Sprintf("schedule:facility:%d", facilityID)
}
