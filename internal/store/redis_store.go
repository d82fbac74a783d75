package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/MaestroMetty/confesercenti-vallo-app/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// storesKey is the Redis hash holding every store: field = id, value = JSON.
	storesKey = "stores"
	// promotionsKey holds every promotion the same way.
	promotionsKey = "promotions"
)

// RedisStore keeps stores in a single Redis hash.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore connects to Redis and pings it.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ctx:    ctx,
	}, nil
}

// FindAll reads the whole hash and returns the stores sorted by id.
func (s *RedisStore) FindAll() ([]models.Store, error) {
	values, err := s.client.HGetAll(s.ctx, storesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}

	stores := make([]models.Store, 0, len(values))
	for field, raw := range values {
		var st models.Store
		if err := json.Unmarshal([]byte(raw), &st); err != nil {
			return nil, fmt.Errorf("failed to decode store %s: %w", field, err)
		}
		stores = append(stores, st)
	}

	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores, nil
}

// FindByID reads one field of the hash.
func (s *RedisStore) FindByID(id int64) (*models.Store, error) {
	raw, err := s.client.HGet(s.ctx, storesKey, strconv.FormatInt(id, 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}

	var st models.Store
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("failed to decode store %d: %w", id, err)
	}
	return &st, nil
}

// Set adds or replaces a store.
func (s *RedisStore) Set(st models.Store) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := s.client.HSet(s.ctx, storesKey, strconv.FormatInt(st.ID, 10), data).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	return nil
}

// LoadFromCSV copies every store of a CSV file into Redis and returns how
// many were written.
func (s *RedisStore) LoadFromCSV(csvPath string) (int, error) {
	csvStore, err := NewCSVStore(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load CSV: %w", err)
	}
	defer csvStore.Close()

	count := 0
	for _, st := range csvStore.stores {
		if err := s.Set(st); err != nil {
			return count, fmt.Errorf("failed to store %d: %w", st.ID, err)
		}
		count++
	}
	return count, nil
}

// FindPromotions reads the promotions hash and returns it sorted by id.
func (s *RedisStore) FindPromotions() ([]models.Promotion, error) {
	values, err := s.client.HGetAll(s.ctx, promotionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}

	promotions := make([]models.Promotion, 0, len(values))
	for field, raw := range values {
		var p models.Promotion
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to decode promotion %s: %w", field, err)
		}
		promotions = append(promotions, p)
	}

	sortPromotionsByID(promotions)
	return promotions, nil
}

// FindPromotionsByStore scans the promotions hash for one store.
// The hash is small, so no secondary index is kept.
func (s *RedisStore) FindPromotionsByStore(storeID int64) ([]models.Promotion, error) {
	promotions, err := s.FindPromotions()
	if err != nil {
		return nil, err
	}
	return promotionsOf(promotions, storeID), nil
}

// SetPromotion adds or replaces a promotion.
func (s *RedisStore) SetPromotion(p models.Promotion) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode promotion: %w", err)
	}

	if err := s.client.HSet(s.ctx, promotionsKey, strconv.FormatInt(p.ID, 10), data).Err(); err != nil {
		return fmt.Errorf("failed to store promotion in Redis: %w", err)
	}
	return nil
}

// LoadPromotionsFromCSV copies every promotion of a CSV file into Redis and
// returns how many were written.
func (s *RedisStore) LoadPromotionsFromCSV(csvPath string) (int, error) {
	promotions, err := readPromotionsCSV(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load promotions CSV: %w", err)
	}

	count := 0
	for _, p := range promotions {
		if err := s.SetPromotion(p); err != nil {
			return count, fmt.Errorf("failed to store promotion %d: %w", p.ID, err)
		}
		count++
	}
	return count, nil
}

// IsEmpty reports whether the stores hash has no fields.
func (s *RedisStore) IsEmpty() (bool, error) {
	n, err := s.client.HLen(s.ctx, storesKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check Redis keys: %w", err)
	}
	return n == 0, nil
}

// Client exposes the connection so other components (the rate limiter) can share it.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Kind implements Store.
func (s *RedisStore) Kind() string { return "redis" }

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
