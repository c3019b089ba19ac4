package slots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/igestaos-eng/barbearia-inicio/internal/domain"
)

// Cache кэш рассчитанных слотов поверх Redis
//
// Ключ детерминированно кодирует все входы расчёта:
// slots:<barberID>:<date>:<duration>:<step>
// Разные шаги и длительности никогда не делят значение
//
// Для инвалидации по барберу ведётся индекс-множество его ключей:
// избегаем SCAN по всему keyspace
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает новый экземпляр кэша слотов
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key строит ключ кэша для набора входов расчёта
func (c *Cache) Key(barberID int64, date time.Time, durationMinutes, stepMinutes int) string {
	return fmt.Sprintf("slots:%d:%s:%d:%d",
		barberID, date.Format(domain.DateFormat), durationMinutes, stepMinutes)
}

func (c *Cache) indexKey(barberID int64) string {
	return fmt.Sprintf("slots:index:%d", barberID)
}

// Get возвращает закэшированные слоты или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, barberID int64, date time.Time, durationMinutes, stepMinutes int) ([]domain.Slot, error) {
	key := c.Key(barberID, date, durationMinutes, stepMinutes)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - redis get %q: %v", ErrCacheUnavailable, key, err)
	}

	var cached []domain.Slot
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal %q: %v", ErrDecode, key, err)
	}

	return cached, nil
}

// Set сохраняет слоты и регистрирует ключ в индексе барбера
// Индекс живёт дольше значений, чтобы инвалидация видела все ключи
func (c *Cache) Set(ctx context.Context, barberID int64, date time.Time, durationMinutes, stepMinutes int, computed []domain.Slot) error {
	key := c.Key(barberID, date, durationMinutes, stepMinutes)

	raw, err := json.Marshal(computed)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal %q: %v", ErrEncode, key, err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, raw, c.ttl)
	pipe.SAdd(ctx, c.indexKey(barberID), key)
	pipe.Expire(ctx, c.indexKey(barberID), c.ttl*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Set - redis pipeline %q: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// InvalidateBarber удаляет все закэшированные слоты барбера
// Вызывается при любой мутации его календаря или расписания
func (c *Cache) InvalidateBarber(ctx context.Context, barberID int64) error {
	indexKey := c.indexKey(barberID)

	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("%w: InvalidateBarber - redis smembers %q: %v", ErrCacheUnavailable, indexKey, err)
	}

	keys = append(keys, indexKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateBarber - redis del: %v", ErrCacheUnavailable, err)
	}

	return nil
}
