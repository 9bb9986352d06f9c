package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups that match no row. Services translate it
// into the API's NotFound error.
var ErrNotFound = errors.New("record not found")

// StoreConfig fixes an entity's list behavior at construction time.
type StoreConfig struct {
	// DefaultOrder is the SQL order clause applied when a query does not
	// override it.
	DefaultOrder string
	// Relations is the allow-list of eager-loadable relations: request name
	// to gorm preload path. Names outside the list are silently ignored.
	Relations map[string]string
}

// Store is the uniform CRUD capability every tracked entity implements,
// resolved per concrete type at wiring time. Soft deletes are not a store
// concern: entities that deactivate instead of dropping rows do it through
// Save in their service.
type Store[T any] struct {
	db  *gorm.DB
	cfg StoreConfig
}

func NewStore[T any](db *gorm.DB, cfg StoreConfig) *Store[T] {
	return &Store[T]{db: db, cfg: cfg}
}

// ListQuery carries compiled filter predicates plus paging, ordering and the
// requested eager-loads.
type ListQuery struct {
	Conds     []Cond
	Page      int
	Limit     int
	Order     string
	Relations []string
}

// Cond is one compiled where predicate.
type Cond struct {
	Query string
	Args  []any
}

func (s *Store[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	tx := s.db.WithContext(ctx).Model(new(T))
	for _, c := range q.Conds {
		tx = tx.Where(c.Query, c.Args...)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := q.Order
	if order == "" {
		order = s.cfg.DefaultOrder
	}
	if order != "" {
		tx = tx.Order(order)
	}

	for _, name := range q.Relations {
		if path, ok := s.cfg.Relations[name]; ok {
			tx = tx.Preload(path)
		}
	}

	var items []T
	if err := tx.Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store[T]) Get(ctx context.Context, id uint, relations ...string) (*T, error) {
	tx := s.db.WithContext(ctx)
	for _, name := range relations {
		if path, ok := s.cfg.Relations[name]; ok {
			tx = tx.Preload(path)
		}
	}

	var item T
	if err := tx.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindFirst returns the first row matching the condition, without paging.
func (s *Store[T]) FindFirst(ctx context.Context, query string, args ...any) (*T, error) {
	var item T
	if err := s.db.WithContext(ctx).Where(query, args...).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store[T]) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&n).Error
	return n, err
}

func (s *Store[T]) Create(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Save writes the full record back; merge semantics happen in the service
// before calling this.
func (s *Store[T]) Save(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// HardDelete removes the row. Entities with soft-delete semantics never call
// this.
func (s *Store[T]) HardDelete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
