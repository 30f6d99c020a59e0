// Package repositories wraps gorm access to one model type behind a small
// typed API. Every method takes the request context.
package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles database operations for T.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	var model T
	return r.db.WithContext(ctx).Model(&model)
}

// FindByID looks up a row by primary key; gorm.ErrRecordNotFound when absent.
func (r *Repository[T]) FindByID(ctx context.Context, id uint) (T, error) {
	var row T
	err := r.db.WithContext(ctx).First(&row, id).Error
	return row, err
}

// Exists reports whether a row with id exists.
func (r *Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.query(ctx).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Create persists a new row. Associations are never written through it.
func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
}

// Update persists every column of an existing row, zero values included.
func (r *Repository[T]) Update(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Model(row).Select("*").Omit(clause.Associations).Updates(row).Error
}

// Delete removes the row with id and returns how many rows went.
func (r *Repository[T]) Delete(ctx context.Context, id uint) (int64, error) {
	var model T
	res := r.db.WithContext(ctx).Delete(&model, id)
	return res.RowsAffected, res.Error
}

// Count returns the number of rows matching scopes.
func (r *Repository[T]) Count(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	err := r.query(ctx).Scopes(scopes...).Count(&n).Error
	return n, err
}
