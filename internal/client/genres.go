package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/lari1230/fiml/internal/api"
	"github.com/lari1230/fiml/internal/model"
)

// Genres accesses the public genre list.
type Genres struct {
	res *Resource[model.Genre]
}

// NewGenres builds the genre client.
func NewGenres(gw *api.Client, log *zap.Logger) *Genres {
	return &Genres{res: NewResource[model.Genre](gw, "/api/genres", log)}
}

// List fetches all genres with their movie counts.
func (g *Genres) List(ctx context.Context) ([]model.Genre, error) {
	return g.res.List(ctx, nil)
}
