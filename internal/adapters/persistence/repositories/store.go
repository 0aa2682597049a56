package repositories

import (
	"context"

	"gorm.io/gorm"
)

// store is the generic collection access every ledger entity shares: fetch
// all rows, insert, save, delete. The accounting layer does its own joining
// and filtering over full-collection fetches, so nothing richer is needed
// here, and a new entity costs one constructor line.
type store[T any] struct {
	db *gorm.DB
}

func newStore[T any](db *gorm.DB) *store[T] {
	return &store[T]{db: db}
}

// List fetches every row of the collection.
func (s *store[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID fetches one row by primary key.
func (s *store[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a row; the database assigns id and created_at.
func (s *store[T]) Create(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Save writes a full record back by primary key.
func (s *store[T]) Save(ctx context.Context, record *T) error {
	return s.db.WithContext(ctx).Save(record).Error
}

// Delete removes a row by primary key.
func (s *store[T]) Delete(ctx context.Context, id uint) error {
	var record T
	return s.db.WithContext(ctx).Delete(&record, id).Error
}

// Count reports the collection size.
func (s *store[T]) Count(ctx context.Context) (int64, error) {
	var record T
	var count int64
	err := s.db.WithContext(ctx).Model(&record).Count(&count).Error
	return count, err
}
