package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// crudRepo holds the get-all/get-by-id/create/update/delete operations shared
// by every admin-managed collection.
type crudRepo[T any] struct {
	db    *gorm.DB
	order string
}

func newCRUDRepo[T any](db *gorm.DB, order string) crudRepo[T] {
	return crudRepo[T]{db: db, order: order}
}

// GetDB returns the underlying database connection for debugging purposes
func (r crudRepo[T]) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns every row in the repo's display order
func (r crudRepo[T]) FindAll(ctx context.Context) ([]*T, error) {
	var rows []*T
	query := r.db.WithContext(ctx)
	if r.order != "" {
		query = query.Order(r.order)
	}
	err := query.Find(&rows).Error
	return rows, err
}

// FindByID returns nil, nil when no row has the given id
func (r crudRepo[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Add inserts a new row. The server-assigned id and timestamps are written back into row.
func (r crudRepo[T]) Add(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update writes every column of row except created_at
func (r crudRepo[T]) Update(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Omit("created_at").Save(row).Error
}

// Delete removes a row by id
func (r crudRepo[T]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(new(T), id).Error
}
