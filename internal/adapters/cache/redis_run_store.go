package cache

import (
	"context"
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/obs"
	"lng-supply-optimizer/internal/ports"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRunStore keeps each run as two keys: an immutable payload written
// once with SETNX, and a hash holding the reuse counter and timestamps.
type RedisRunStore struct {
	Client *redis.Client
	Prefix string
	Now    func() time.Time
}

func NewRedisRunStore(client *redis.Client, prefix string) *RedisRunStore {
	if prefix == "" {
		prefix = "lngopt:"
	}
	return &RedisRunStore{Client: client, Prefix: prefix, Now: time.Now}
}

func (s *RedisRunStore) payloadKey(key string) string { return s.Prefix + "run:" + key }
func (s *RedisRunStore) metaKey(key string) string    { return s.Prefix + "run:" + key + ":meta" }

// Fetch the run record stored under key.
func (s *RedisRunStore) Get(ctx context.Context, key string) (_ *domain.RunRecord, err error) {
	defer obs.Time(ctx, "runstore.redis.Get")(&err)

	if s.Client == nil {
		return nil, errors.New("run store: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get run record: key must not be empty")
	}

	var (
		payloadCmd *redis.StringCmd
		metaCmd    *redis.MapStringStringCmd
	)
	_, err = s.Client.Pipelined(ctx, func(p redis.Pipeliner) error {
		payloadCmd = p.Get(ctx, s.payloadKey(key))
		metaCmd = p.HGetAll(ctx, s.metaKey(key))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get run record %s: %w", key, err)
	}

	payload, err := payloadCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run record %s: read payload: %w", key, err)
	}

	rec, err := decodePayload(key, payload)
	if err != nil {
		return nil, fmt.Errorf("get run record: %w", err)
	}

	meta, err := metaCmd.Result()
	if err != nil {
		return nil, fmt.Errorf("get run record %s: read meta: %w", key, err)
	}
	if err := applyMeta(rec, meta); err != nil {
		return nil, fmt.Errorf("get run record %s: %w", key, err)
	}

	return rec, nil
}

// Insert a new run record; if the payload key already exists the stored
// record is returned untouched.
func (s *RedisRunStore) Create(ctx context.Context, rec *domain.RunRecord) (_ *domain.RunRecord, _ bool, err error) {
	defer obs.Time(ctx, "runstore.redis.Create")(&err)

	if s.Client == nil {
		return nil, false, errors.New("run store: redis client is nil")
	}
	if rec == nil || strings.TrimSpace(rec.Key) == "" {
		return nil, false, errors.New("insert run record: key must not be empty")
	}

	payload, err := encodePayload(rec)
	if err != nil {
		return nil, false, fmt.Errorf("insert run record: %w", err)
	}

	ok, err := s.Client.SetNX(ctx, s.payloadKey(rec.Key), payload, 0).Result()
	if err != nil {
		return nil, false, fmt.Errorf("insert run record %s: %w", rec.Key, err)
	}

	if ok {
		created := rec.CreatedAt
		if created.IsZero() {
			created = s.now()
		}
		ms := strconv.FormatInt(created.UnixMilli(), 10)
		// HSETNX: a reuse bumped between SETNX and here must survive.
		meta := s.metaKey(rec.Key)
		if _, err := s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSetNX(ctx, meta, "reuse_count", 0)
			p.HSetNX(ctx, meta, "created_at", ms)
			p.HSetNX(ctx, meta, "updated_at", ms)
			return nil
		}); err != nil {
			return nil, false, fmt.Errorf("insert run record %s: write meta: %w", rec.Key, err)
		}
	}

	stored, err := s.Get(ctx, rec.Key)
	if err != nil {
		return nil, false, fmt.Errorf("insert run record %s: read back: %w", rec.Key, err)
	}
	return stored, ok, nil
}

// Bump the reuse counter of key by exactly one.
func (s *RedisRunStore) IncrementReuse(ctx context.Context, key string) (_ *domain.RunRecord, err error) {
	defer obs.Time(ctx, "runstore.redis.IncrementReuse")(&err)

	if s.Client == nil {
		return nil, errors.New("run store: redis client is nil")
	}

	n, err := s.Client.Exists(ctx, s.payloadKey(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("increment reuse %s: %w", key, err)
	}
	if n == 0 {
		return nil, ports.ErrRunNotFound
	}

	_, err = s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HIncrBy(ctx, s.metaKey(key), "reuse_count", 1)
		p.HSet(ctx, s.metaKey(key), "updated_at", strconv.FormatInt(s.now().UnixMilli(), 10))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("increment reuse %s: %w", key, err)
	}

	return s.Get(ctx, key)
}

func (s *RedisRunStore) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func applyMeta(rec *domain.RunRecord, meta map[string]string) error {
	if v, ok := meta["reuse_count"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse reuse_count %q: %w", v, err)
		}
		rec.ReuseCount = n
	}
	if v, ok := meta["created_at"]; ok {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse created_at %q: %w", v, err)
		}
		rec.CreatedAt = time.UnixMilli(ms).UTC()
	}
	if v, ok := meta["updated_at"]; ok {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse updated_at %q: %w", v, err)
		}
		rec.UpdatedAt = time.UnixMilli(ms).UTC()
	}
	return nil
}
