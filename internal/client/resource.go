// Package client provides typed accessors for the movie service's resources.
// All of them share one generic CRUD core; only endpoints and payload types
// differ between movies, reviews, genres and the admin namespace.
package client

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/lari1230/fiml/internal/api"
)

// Resource is a generic CRUD client over a single base path. List and Get
// unwrap envelopes themselves; mutations report only the server verdict.
type Resource[T any] struct {
	api  *api.Client
	base string
	log  *zap.Logger
}

// NewResource builds a resource client for the base path, e.g. "/api/movies".
func NewResource[T any](gw *api.Client, base string, log *zap.Logger) *Resource[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resource[T]{api: gw, base: base, log: log}
}

func (r *Resource[T]) item(id int) string {
	return r.base + "/" + strconv.Itoa(id)
}

// List fetches the collection, filtered by p when non-nil. A failed call
// returns the empty slice alongside the error.
func (r *Resource[T]) List(ctx context.Context, p *api.Params) ([]T, error) {
	endpoint := r.base
	if p != nil && p.Len() > 0 {
		endpoint += "?" + p.Encode()
	}
	env, err := r.api.Get(ctx, endpoint)
	if err != nil {
		r.log.Debug("list failed", zap.String("base", r.base), zap.Error(err))
		return []T{}, err
	}
	items, err := api.Data[[]T](env)
	if err != nil {
		r.log.Debug("list rejected", zap.String("base", r.base), zap.Error(err))
		return []T{}, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get fetches a single item by id; nil with an error on failure.
func (r *Resource[T]) Get(ctx context.Context, id int) (*T, error) {
	env, err := r.api.Get(ctx, r.item(id))
	if err != nil {
		r.log.Debug("get failed", zap.String("base", r.base), zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	item, err := api.Data[T](env)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new item and returns the created resource when the server
// echoes one back.
func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	env, err := r.api.Post(ctx, r.base, body)
	if err != nil {
		r.log.Debug("create failed", zap.String("base", r.base), zap.Error(err))
		return nil, err
	}
	item, err := api.Data[T](env)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces an item; only the verdict is returned.
func (r *Resource[T]) Update(ctx context.Context, id int, body any) error {
	env, err := r.api.Put(ctx, r.item(id), body)
	if err != nil {
		r.log.Debug("update failed", zap.String("base", r.base), zap.Int("id", id), zap.Error(err))
		return err
	}
	return env.Err()
}

// Delete removes an item; only the verdict is returned.
func (r *Resource[T]) Delete(ctx context.Context, id int) error {
	env, err := r.api.Delete(ctx, r.item(id))
	if err != nil {
		r.log.Debug("delete failed", zap.String("base", r.base), zap.Int("id", id), zap.Error(err))
		return err
	}
	return env.Err()
}
