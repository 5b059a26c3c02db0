package models

import (
	"context"
	"sync"

	"bitbucket.org/mmdatafocus/auditdesk_backend/config"
	"bitbucket.org/mmdatafocus/auditdesk_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Keyed interface {
	GetKey() string
}

// CollectionStore keeps one collection authoritative in memory and mirrors
// it to Redis and the kv table in the background. Reads never block on the
// backing stores; a failed mirror write is logged and retried on the next
// mutation.
type CollectionStore[T Keyed] struct {
	key  string
	seed func() []*T

	mu      sync.RWMutex
	loaded  bool
	records []*T
}

func NewCollectionStore[T Keyed](key string, seed func() []*T) *CollectionStore[T] {
	return &CollectionStore[T]{key: key, seed: seed}
}

// load hydrates the in-memory collection on first use:
// Redis cache, then the kv document row, then the built-in seed.
func (s *CollectionStore[T]) load(ctx context.Context) {
	if s.loaded {
		return
	}

	logger := config.GetLogger()

	cached, err := utils.RetrieveRedisList[T](s.key)
	if err != nil {
		config.LogError(logger, "store", "load", "retrieve redis list", s.key, err)
		// Evict the unreadable key so the next load repopulates from MySQL.
		if rerr := utils.RemoveRedisList[T](s.key); rerr != nil {
			config.LogError(logger, "store", "load", "evict redis list", s.key, rerr)
		}
	}
	if cached != nil {
		s.records = cached
		s.loaded = true
		return
	}

	if db := config.GetDB(); db != nil {
		var doc StoredCollection
		err := db.WithContext(ctx).Where("`key` = ?", s.key).Take(&doc).Error
		if err == nil {
			var records []*T
			if uerr := utils.UnmarshalFromJSON(doc.Value, &records); uerr != nil {
				config.LogError(logger, "store", "load", "unmarshal stored collection", s.key, uerr)
			} else {
				s.records = records
				s.loaded = true
				s.warmCache()
				return
			}
		} else if err != gorm.ErrRecordNotFound {
			config.LogError(logger, "store", "load", "load stored collection", s.key, err)
		}
	}

	s.records = s.seed()
	s.loaded = true
	s.persist(ctx)
}

func (s *CollectionStore[T]) warmCache() {
	if err := utils.StoreRedisList[T](s.records, s.key); err != nil {
		config.LogError(config.GetLogger(), "store", "warmCache", "store redis list", s.key, err)
	}
}

// persist mirrors the in-memory records to MySQL and Redis. Failures are
// logged only; the in-memory state stays authoritative.
func (s *CollectionStore[T]) persist(ctx context.Context) {
	logger := config.GetLogger()

	if db := config.GetDB(); db != nil {
		value, err := utils.MarshalToJSON(s.records)
		if err != nil {
			config.LogError(logger, "store", "persist", "marshal collection", s.key, err)
			return
		}
		doc := StoredCollection{Key: s.key, Value: []byte(value)}
		err = db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&doc).Error
		if err != nil {
			config.LogError(logger, "store", "persist", "upsert stored collection", s.key, err)
		}
	}

	s.warmCache()
}

// List returns a snapshot slice; callers may reorder it freely.
func (s *CollectionStore[T]) List(ctx context.Context) []*T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	out := make([]*T, len(s.records))
	copy(out, s.records)
	return out
}

func (s *CollectionStore[T]) Get(ctx context.Context, key string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	for _, rec := range s.records {
		if (*rec).GetKey() == key {
			return rec, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

// Add prepends so a freshly created row surfaces first, the way new rows
// appear at the top of the dashboard grid.
func (s *CollectionStore[T]) Add(ctx context.Context, rec *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	s.records = append([]*T{rec}, s.records...)
	s.persist(ctx)
}

func (s *CollectionStore[T]) Save(ctx context.Context, rec *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	for i, existing := range s.records {
		if (*existing).GetKey() == (*rec).GetKey() {
			s.records[i] = rec
			s.persist(ctx)
			return nil
		}
	}
	return utils.ErrorRecordNotFound
}

func (s *CollectionStore[T]) Remove(ctx context.Context, key string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	for i, rec := range s.records {
		if (*rec).GetKey() == key {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persist(ctx)
			return rec, nil
		}
	}
	return nil, utils.ErrorRecordNotFound
}

// Replace swaps the whole collection, the import semantic: previous
// records are discarded even if the new set is smaller.
func (s *CollectionStore[T]) Replace(ctx context.Context, records []*T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.loaded = true
	s.persist(ctx)
}

func (s *CollectionStore[T]) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
	return len(s.records)
}
