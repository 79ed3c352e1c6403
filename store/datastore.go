package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	ds "github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/property"
)

// DatastoreStore is a [Store] over any go-datastore. Writes to the same
// store are serialized so read-modify-write updates stay consistent.
type DatastoreStore struct {
	ds   ds.Datastore
	root ds.Key
	mu   sync.Mutex
	now  func() time.Time
}

// NewDatastoreStore creates a [DatastoreStore] keeping records under
// /<prefix>/res, one escaped key per path.
func NewDatastoreStore(d ds.Datastore, prefix string) *DatastoreStore {
	return &DatastoreStore{
		ds:   d,
		root: ds.NewKey(prefix).ChildString("res"),
		now:  time.Now,
	}
}

// key flattens the resource path into a single escaped segment so "/" and
// nested paths never alias the root key.
func (s *DatastoreStore) key(p string) ds.Key {
	return s.root.ChildString(url.PathEscape(p))
}

func (s *DatastoreStore) Define(ctx context.Context, path string, h header.Info) (Record, error) {
	return s.update(ctx, path, func(r *Record) {
		r.Header = h
		r.HasHeader = true
	})
}

func (s *DatastoreStore) Describe(ctx context.Context, path string, m property.Metadata) (Record, error) {
	return s.update(ctx, path, func(r *Record) {
		r.Metadata = m
		r.HasMetadata = true
	})
}

func (s *DatastoreStore) update(ctx context.Context, rawPath string, mutate func(*Record)) (Record, error) {
	p, err := NormalizePath(rawPath)
	if err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(ctx, p)
	switch {
	case errors.Is(err, ErrNotFound):
		rec = Record{Path: p, Metadata: property.DefaultMetadata()}
	case err != nil:
		return Record{}, err
	}

	mutate(&rec)
	rec = rec.next(s.now())
	data, err := EncodeRecord(rec)
	if err != nil {
		return Record{}, err
	}
	if err := s.ds.Put(ctx, s.key(p), data); err != nil {
		log.Errorf("datastore put %s: %v", p, err)
		return Record{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return rec, nil
}

func (s *DatastoreStore) read(ctx context.Context, p string) (Record, error) {
	data, err := s.ds.Get(ctx, s.key(p))
	if err != nil {
		if errors.Is(err, ds.ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	rec, err := DecodeRecord(data)
	if err != nil {
		log.Warnf("corrupt record at %s: %v", p, err)
		return Record{}, err
	}
	return rec, nil
}

func (s *DatastoreStore) Get(ctx context.Context, rawPath string) (Record, error) {
	p, err := NormalizePath(rawPath)
	if err != nil {
		return Record{}, err
	}
	return s.read(ctx, p)
}

func (s *DatastoreStore) Delete(ctx context.Context, rawPath string) error {
	p, err := NormalizePath(rawPath)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ds.Delete(ctx, s.key(p)); err != nil && !errors.Is(err, ds.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *DatastoreStore) List(ctx context.Context) ([]string, error) {
	results, err := s.ds.Query(ctx, dsq.Query{Prefix: s.root.String(), KeysOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	entries, err := results.Rest()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		p, err := url.PathUnescape(ds.RawKey(e.Key).BaseNamespace())
		if err != nil {
			log.Warnf("skipping undecodable key %s: %v", e.Key, err)
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// Ping checks the backend by probing the root key.
func (s *DatastoreStore) Ping(ctx context.Context) error {
	if _, err := s.ds.Has(ctx, s.root); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
