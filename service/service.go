// Package service implements the ajson business logic on top of a store.
package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/NYTimes/ajson/ajson"
	"github.com/NYTimes/ajson/store"
)

// AJSONService validates input and reads or writes ajson records.
//
// Create checks for an existing key1 before inserting. The check and the
// insert are not atomic, so two concurrent creates for the same key1 may
// both succeed unless the store itself enforces uniqueness.
type AJSONService struct {
	store store.Store
}

// New returns an AJSONService backed by the given store.
func New(s store.Store) *AJSONService {
	return &AJSONService{store: s}
}

// Fetch looks up the record with the given key1. The key must be a
// non-empty string.
func (s *AJSONService) Fetch(ctx context.Context, key interface{}) Outcome {
	key1, ok := key.(string)
	if !ok || key1 == "" {
		return invalid(ErrInvalidParams)
	}

	rec, err := s.store.FindByKey1(ctx, key1)
	if errors.Cause(err) == store.ErrNotFound {
		return notFound()
	}
	if err != nil {
		return failed(err, "unable to fetch record")
	}
	return succeeded(rec)
}

// Create saves a new record built from the candidate JSON object. The
// candidate must carry a truthy key1 that is not stored yet.
func (s *AJSONService) Create(ctx context.Context, candidate interface{}) Outcome {
	doc, ok := candidate.(map[string]interface{})
	if !ok || doc == nil {
		return invalid(ErrInvalidParams)
	}
	key1, ok := ajson.Truthy(doc[ajson.Key1Field])
	if !ok {
		return invalid(ErrInvalidParams)
	}

	_, err := s.store.FindByKey1(ctx, key1)
	switch {
	case err == nil:
		return invalid(ErrAlreadyExists)
	case errors.Cause(err) != store.ErrNotFound:
		return failed(err, "unable to check for existing record")
	}

	rec := ajson.Shape(doc)
	if err = s.store.Insert(ctx, &rec); err != nil {
		return failed(err, "unable to save record")
	}
	return succeeded(&rec)
}

// sampleDoc is a static document as it may come out of storage: it lacks
// "key 2" and carries a field the record does not know about.
var sampleDoc = map[string]interface{}{
	ajson.Key1Field:        "value 1",
	"nonExistingModelProp": "who cares",
}

// Sample returns a record shaped from a fixed document. It never touches
// the store.
func (s *AJSONService) Sample() ajson.Record {
	return ajson.Shape(sampleDoc)
}
