// Package store holds the persistence implementations for ajson records.
package store

import (
	"context"
	"errors"

	"github.com/NYTimes/ajson/ajson"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("ajson record not found")

// Store is the persistence layer behind the ajson service.
//
// Implementations do not have to enforce key1 uniqueness; callers
// looking for uniqueness must check before they insert.
type Store interface {
	// FindByKey1 returns the first record whose key1 matches or ErrNotFound.
	FindByKey1(ctx context.Context, key1 string) (*ajson.Record, error)
	// Insert saves the record and sets its ID.
	Insert(ctx context.Context, rec *ajson.Record) error
	// Close releases any resources held by the store.
	Close() error
}
