package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	logging "github.com/ipfs/go-log"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/property"
)

var log = logging.Logger("wttp/store")

// maxTxRetries bounds optimistic-lock retries when concurrent writers touch
// the same path.
const maxTxRetries = 8

// RedisStore is a Redis-backed [Store]. Read-modify-write updates use
// WATCH/MULTI so concurrent Define and Describe calls on one path never lose
// each other's half of the record.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a [RedisStore]. prefix sets the key namespace.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		redis:  client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *RedisStore) key(p string) string {
	return s.prefix + ":res:" + p
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":paths"
}

func (s *RedisStore) Define(ctx context.Context, path string, h header.Info) (Record, error) {
	return s.update(ctx, path, func(r *Record) {
		r.Header = h
		r.HasHeader = true
	})
}

func (s *RedisStore) Describe(ctx context.Context, path string, m property.Metadata) (Record, error) {
	return s.update(ctx, path, func(r *Record) {
		r.Metadata = m
		r.HasMetadata = true
	})
}

func (s *RedisStore) update(ctx context.Context, rawPath string, mutate func(*Record)) (Record, error) {
	p, err := NormalizePath(rawPath)
	if err != nil {
		return Record{}, err
	}
	key := s.key(p)

	var out Record
	txf := func(tx *redis.Tx) error {
		rec, err := s.read(ctx, tx, key)
		switch {
		case errors.Is(err, ErrNotFound):
			rec = Record{Path: p, Metadata: property.DefaultMetadata()}
		case err != nil:
			return err
		}

		mutate(&rec)
		rec = rec.next(s.now())
		data, err := EncodeRecord(rec)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, s.indexKey(), p)
			return nil
		})
		if err == nil {
			out = rec
		}
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = s.redis.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
		log.Debugf("retrying write of %s after concurrent update (attempt %d)", p, attempt+1)
	}
	if err != nil {
		return Record{}, s.wrap(err)
	}
	return out, nil
}

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) read(ctx context.Context, c getter, key string) (Record, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec, err := DecodeRecord(data)
	if err != nil {
		log.Warnf("corrupt record at %s: %v", key, err)
		return Record{}, err
	}
	return rec, nil
}

func (s *RedisStore) Get(ctx context.Context, rawPath string) (Record, error) {
	p, err := NormalizePath(rawPath)
	if err != nil {
		return Record{}, err
	}
	rec, err := s.read(ctx, s.redis, s.key(p))
	if err != nil {
		return Record{}, s.wrap(err)
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, rawPath string) error {
	p, err := NormalizePath(rawPath)
	if err != nil {
		return err
	}
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(p))
		pipe.SRem(ctx, s.indexKey(), p)
		return nil
	})
	if err != nil {
		return s.wrap(err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	paths, err := s.redis.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, s.wrap(err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return s.wrap(err)
	}
	return nil
}

// wrap passes store sentinels through and marks everything else as a
// backend failure.
func (s *RedisStore) wrap(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorruptRecord) || errors.Is(err, ErrInvalidPath) {
		return err
	}
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: too much contention", ErrUnavailable)
	}
	log.Errorf("redis: %v", err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Reindex rebuilds the path index from the record keys and returns the
// number of paths found. It repairs an index set that was lost or written
// by a partial client. On a cluster every master is scanned.
func (s *RedisStore) Reindex(ctx context.Context) (int, error) {
	var (
		mu    sync.Mutex
		paths []any
	)
	scan := func(ctx context.Context, c redis.Cmdable) error {
		iter := c.Scan(ctx, 0, s.key("*"), 256).Iterator()
		for iter.Next(ctx) {
			if p, ok := strings.CutPrefix(iter.Val(), s.prefix+":res:"); ok {
				mu.Lock()
				paths = append(paths, p)
				mu.Unlock()
			}
		}
		return iter.Err()
	}

	var err error
	if cc, ok := s.redis.(*redis.ClusterClient); ok {
		err = cc.ForEachMaster(ctx, func(ctx context.Context, c *redis.Client) error {
			return scan(ctx, c)
		})
	} else {
		err = scan(ctx, s.redis)
	}
	if err != nil {
		return 0, s.wrap(err)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.indexKey())
		if len(paths) > 0 {
			pipe.SAdd(ctx, s.indexKey(), paths...)
		}
		return nil
	})
	if err != nil {
		return 0, s.wrap(err)
	}
	log.Debugf("reindexed %d paths under %s", len(paths), s.prefix)
	return len(paths), nil
}
