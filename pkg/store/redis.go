package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sgerrors "github.com/matzehuels/stepgraph/pkg/errors"
)

const (
	redisDocPrefix = "stepgraph:doc:"
	redisIndex     = "stepgraph:docs"
)

// RedisStore keeps snapshots as JSON strings and indexes them in a sorted
// set scored by creation time.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to addr and pings it.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, sgerrors.Wrap(sgerrors.ErrCodeNetwork, err, "connect to redis at %s", addr)
	}
	return NewRedisStoreFromClient(client, ttl), nil
}

// NewRedisStoreFromClient wraps an existing client. Close closes it.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) makeKey(id string) string {
	return redisDocPrefix + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, s.makeKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sgerrors.NoData()
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return decode(data)
}

func (s *RedisStore) Set(ctx context.Context, snap *Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.makeKey(snap.ID), data, s.ttl)
		p.ZAdd(ctx, redisIndex, redis.Z{Score: float64(snap.CreatedAt.UnixMilli()), Member: snap.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", snap.ID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, s.makeKey(id))
		p.ZRem(ctx, redisIndex, id)
		return nil
	})
	return err
}

// List skips index entries whose snapshot has expired and prunes them.
func (s *RedisStore) List(ctx context.Context) ([]*Snapshot, error) {
	ids, err := s.client.ZRevRange(ctx, redisIndex, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list index: %w", err)
	}
	if len(ids) == 0 {
		return []*Snapshot{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.makeKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	all := make([]*Snapshot, 0, len(values))
	var stale []any
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		if snap, err := decode([]byte(str)); err == nil {
			all = append(all, snap)
		}
	}
	if len(stale) > 0 {
		s.client.ZRem(ctx, redisIndex, stale...)
	}
	newestFirst(all)
	return all, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	ids, err := s.client.ZRange(ctx, redisIndex, 0, -1).Result()
	if err != nil {
		return err
	}
	keys := []string{redisIndex}
	for _, id := range ids {
		keys = append(keys, s.makeKey(id))
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
