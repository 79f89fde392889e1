package client

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/lari1230/fiml/internal/api"
	"github.com/lari1230/fiml/internal/model"
)

// MovieFilter is the catalog query. Zero-valued fields stay out of the query
// string; Page and Limit are always sent.
type MovieFilter struct {
	Page     int
	Limit    int
	SortBy   string // title | year | rating | reviews
	Order    string // asc | desc
	YearFrom int
	YearTo   int
	Genre    string
	Query    string // free-text search
}

func (f MovieFilter) params() *api.Params {
	p := api.Page(f.Page, f.Limit)
	p.Set("sortBy", f.SortBy).
		Set("order", f.Order).
		SetInt("yearFrom", f.YearFrom).
		SetInt("yearTo", f.YearTo).
		Set("genre", f.Genre).
		Set("q", f.Query)
	return p
}

// TopFilter narrows the rating leaderboard.
type TopFilter struct {
	Limit    int
	Period   string // year | decade, empty = all time
	MinVotes int
	Genre    string
}

// Movies accesses the public movie catalog. Mutations require an admin
// session server-side; the client just forwards them.
type Movies struct {
	res *Resource[model.Movie]
	api *api.Client
}

// NewMovies builds the movie catalog client.
func NewMovies(gw *api.Client, log *zap.Logger) *Movies {
	return &Movies{res: NewResource[model.Movie](gw, "/api/movies", log), api: gw}
}

// List fetches a catalog page.
func (m *Movies) List(ctx context.Context, f MovieFilter) ([]model.Movie, error) {
	return m.res.List(ctx, f.params())
}

// Get fetches one movie with genres and reviews attached.
func (m *Movies) Get(ctx context.Context, id int) (*model.Movie, error) {
	return m.res.Get(ctx, id)
}

// Search runs the free-text search endpoint.
func (m *Movies) Search(ctx context.Context, query string) ([]model.Movie, error) {
	p := (&api.Params{}).Set("q", query)
	env, err := m.api.Get(ctx, "/api/movies/search?"+p.Encode())
	if err != nil {
		return []model.Movie{}, err
	}
	movies, err := api.Data[[]model.Movie](env)
	if err != nil || movies == nil {
		return []model.Movie{}, err
	}
	return movies, nil
}

// Top fetches the rating leaderboard. The limit is always sent; the other
// filters only when set.
func (m *Movies) Top(ctx context.Context, f TopFilter) ([]model.Movie, error) {
	if f.Limit < 1 {
		f.Limit = 10
	}
	p := &api.Params{}
	p.Set("period", f.Period).
		SetInt("minVotes", f.MinVotes).
		Set("genre", f.Genre).
		Set("limit", strconv.Itoa(f.Limit))
	env, err := m.api.Get(ctx, "/api/movies/top?"+p.Encode())
	if err != nil {
		return []model.Movie{}, err
	}
	movies, err := api.Data[[]model.Movie](env)
	if err != nil || movies == nil {
		return []model.Movie{}, err
	}
	return movies, nil
}

// Create adds a movie to the catalog.
func (m *Movies) Create(ctx context.Context, in model.MovieInput) (*model.Movie, error) {
	return m.res.Create(ctx, in)
}

// Update replaces a movie's fields.
func (m *Movies) Update(ctx context.Context, id int, in model.MovieInput) error {
	return m.res.Update(ctx, id, in)
}

// Delete removes a movie.
func (m *Movies) Delete(ctx context.Context, id int) error {
	return m.res.Delete(ctx, id)
}
