package client

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/lari1230/fiml/internal/api"
	"github.com/lari1230/fiml/internal/model"
)

// Reviews accesses reviews: the per-movie aggregate, the caller's own
// reviews, and the usual mutations.
type Reviews struct {
	res *Resource[model.Review]
	api *api.Client
}

// NewReviews builds the review client.
func NewReviews(gw *api.Client, log *zap.Logger) *Reviews {
	return &Reviews{res: NewResource[model.Review](gw, "/api/reviews", log), api: gw}
}

// ForMovie fetches the review aggregate for one movie. On failure the zero
// aggregate comes back alongside the error, so rendering never deals with
// missing fields.
func (r *Reviews) ForMovie(ctx context.Context, movieID int) (model.MovieReviews, error) {
	env, err := r.api.Get(ctx, "/api/reviews/movie/"+strconv.Itoa(movieID))
	if err != nil {
		return emptyAggregate(), err
	}
	agg, err := api.Data[model.MovieReviews](env)
	if err != nil {
		return emptyAggregate(), err
	}
	if agg.Reviews == nil {
		agg.Reviews = []model.Review{}
	}
	return agg, nil
}

// Mine fetches the authenticated user's reviews.
func (r *Reviews) Mine(ctx context.Context) ([]model.Review, error) {
	env, err := r.api.Get(ctx, "/api/reviews/my")
	if err != nil {
		return []model.Review{}, err
	}
	reviews, err := api.Data[[]model.Review](env)
	if err != nil || reviews == nil {
		return []model.Review{}, err
	}
	return reviews, nil
}

// Create posts a review for a movie.
func (r *Reviews) Create(ctx context.Context, movieID, rating int, comment string) error {
	env, err := r.api.Post(ctx, "/api/reviews", map[string]any{
		"movieId": movieID,
		"rating":  rating,
		"comment": comment,
	})
	if err != nil {
		return err
	}
	return env.Err()
}

// Update rewrites an existing review.
func (r *Reviews) Update(ctx context.Context, id, rating int, comment string) error {
	return r.res.Update(ctx, id, map[string]any{
		"rating":  rating,
		"comment": comment,
	})
}

// Delete removes a review.
func (r *Reviews) Delete(ctx context.Context, id int) error {
	return r.res.Delete(ctx, id)
}

func emptyAggregate() model.MovieReviews {
	return model.MovieReviews{Reviews: []model.Review{}}
}
