// Package store is the persistence layer: a small generic record store used by the
// CRUD handlers, plus the game-specific Storage interface the lifecycle service
// depends on. Everything here is backed by GORM over PostgreSQL.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record id does not exist.
// Handlers match it with errors.Is to answer 404 instead of 500.
var ErrNotFound = errors.New("record not found")

// RecordStore is the generic persistence contract the CRUD handlers consume:
// get by id, list, insert, update, delete. Records implements it over GORM;
// handler tests substitute in-memory fakes.
type RecordStore[T any] interface {
	Get(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context, conds ...interface{}) ([]T, error)
	Add(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Remove(ctx context.Context, rec *T) error
}

// Records is a generic record store for one model type: get by id, list, insert,
// update, delete. Each call is its own committed statement; multi-statement units
// of work go through Store.Transaction instead.
//
// Association loading is a constructor capability rather than a per-call flag:
// a Records value built with preloads fetches them on every read. The teams store,
// for example, is created with NewRecords[models.Team](db, "Players") so every team
// read carries its roster — no type-switching inside the generic code.
type Records[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewRecords builds a record store for T. Any preloads given are GORM association
// names eagerly loaded on Get and List.
func NewRecords[T any](db *gorm.DB, preloads ...string) *Records[T] {
	return &Records[T]{db: db, preloads: preloads}
}

func (r *Records[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// Get fetches one record by primary key, or ErrNotFound.
func (r *Records[T]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	if err := r.query(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List fetches all records, optionally filtered by a GORM condition and its
// arguments (e.g. List(ctx, "team_id = ?", id)).
func (r *Records[T]) List(ctx context.Context, conds ...interface{}) ([]T, error) {
	var recs []T
	q := r.query(ctx)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// Add inserts the record and populates its generated id.
func (r *Records[T]) Add(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Update writes all of the record's fields back to its row.
func (r *Records[T]) Update(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Remove deletes the record's row.
func (r *Records[T]) Remove(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Delete(rec).Error
}
