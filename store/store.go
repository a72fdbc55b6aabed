// Package store provides generic document helpers over gorm. Each record type
// maps to one collection (table) and is looked up with equality filters.
package store

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when no document matches the filter.
	ErrNotFound = stderrors.New("document not found")
	// ErrDBNil is returned when the database handle is nil.
	ErrDBNil = stderrors.New("database connection is nil")
	// ErrKeyEmpty is returned when an upsert is attempted without a natural key.
	ErrKeyEmpty = stderrors.New("upsert key can not be empty")
)

// Filter matches documents by column equality. A slice value matches any of its elements.
type Filter map[string]any

// Option adjusts a Find query.
type Option func(*gorm.DB) *gorm.DB

// OrderBy sorts results, e.g. OrderBy("position asc").
func OrderBy(expr string) Option {
	return func(db *gorm.DB) *gorm.DB { return db.Order(expr) }
}

// OrderByColumn sorts by a single column, quoted for the active dialect.
func OrderByColumn(column string, desc bool) Option {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	}
}

// Limit caps the number of results.
func Limit(n int) Option {
	return func(db *gorm.DB) *gorm.DB { return db.Limit(n) }
}

func query[T any](ctx context.Context, db *gorm.DB, filter Filter) *gorm.DB {
	q := db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	return q
}

// Create inserts doc; its identifier is generated on insert.
func Create[T any](ctx context.Context, db *gorm.DB, doc *T) error {
	if db == nil {
		return ErrDBNil
	}
	if err := db.WithContext(ctx).Create(doc).Error; err != nil {
		return errors.Wrap(err, "create document")
	}
	return nil
}

// Find returns every document matching filter.
func Find[T any](ctx context.Context, db *gorm.DB, filter Filter, opts ...Option) ([]T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := query[T](ctx, db, filter)
	for _, opt := range opts {
		q = opt(q)
	}

	docs := []T{}
	if err := q.Find(&docs).Error; err != nil {
		return nil, errors.Wrap(err, "find documents")
	}
	return docs, nil
}

// First returns the first document matching filter or ErrNotFound.
func First[T any](ctx context.Context, db *gorm.DB, filter Filter) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var doc T
	err := query[T](ctx, db, filter).Take(&doc).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}
	return &doc, nil
}

// Count returns the number of documents matching filter.
func Count[T any](ctx context.Context, db *gorm.DB, filter Filter) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64
	if err := query[T](ctx, db, filter).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count documents")
	}
	return n, nil
}

// Update sets fields on every document matching filter and returns how many changed.
func Update[T any](ctx context.Context, db *gorm.DB, filter Filter, fields map[string]any) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	res := query[T](ctx, db, filter).Updates(fields)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update documents")
	}
	return res.RowsAffected, nil
}

// Upsert inserts doc or, when a document with the same key column exists,
// replaces all of its fields except the identifier and creation time. The key
// column must carry a unique index. updated_at is refreshed on every call, so
// repeating the same payload stores the same document apart from that column.
// The stored document is returned.
func Upsert[T any](ctx context.Context, db *gorm.DB, doc *T, key string, value any) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" || value == "" {
		return nil, ErrKeyEmpty
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: key}},
		UpdateAll: true,
	}).Create(doc).Error
	if err != nil {
		return nil, errors.Wrap(err, "upsert document")
	}

	return First[T](ctx, db, Filter{key: value})
}

// CreateIfAbsent inserts doc unless a document with the same key column exists.
// It reports whether doc was inserted. The key column must carry a unique index.
func CreateIfAbsent[T any](ctx context.Context, db *gorm.DB, doc *T, key string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}
	if key == "" {
		return false, ErrKeyEmpty
	}

	res := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: key}},
		DoNothing: true,
	}).Create(doc)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "create document")
	}
	return res.RowsAffected > 0, nil
}
