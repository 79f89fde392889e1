package client

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/lari1230/fiml/internal/api"
	"github.com/lari1230/fiml/internal/model"
)

// Admin accesses the /api/admin namespace. The server enforces the role;
// the client only forwards the cookie it holds.
type Admin struct {
	api    *api.Client
	genres *Resource[model.Genre]
	movies *Resource[model.Movie]
	log    *zap.Logger
}

// NewAdmin builds the admin client.
func NewAdmin(gw *api.Client, log *zap.Logger) *Admin {
	if log == nil {
		log = zap.NewNop()
	}
	return &Admin{
		api:    gw,
		genres: NewResource[model.Genre](gw, "/api/admin/genres", log),
		movies: NewResource[model.Movie](gw, "/api/admin/movies", log),
		log:    log,
	}
}

// Dashboard fetches the landing-page counters.
func (a *Admin) Dashboard(ctx context.Context) (model.Dashboard, error) {
	env, err := a.api.Get(ctx, "/api/admin/dashboard")
	if err != nil {
		return model.Dashboard{}, err
	}
	return api.Data[model.Dashboard](env)
}

// Users fetches a user page; filter narrows by status and is sent only when set.
func (a *Admin) Users(ctx context.Context, page, limit int, filter string) (model.UserPage, error) {
	p := api.Page(page, limit).Set("filter", filter)
	env, err := a.api.Get(ctx, "/api/admin/users?"+p.Encode())
	if err != nil {
		return emptyUserPage(), err
	}
	out, err := api.Data[model.UserPage](env)
	if err != nil {
		return emptyUserPage(), err
	}
	if out.Users == nil {
		out.Users = []model.SessionUser{}
	}
	return out, nil
}

// User fetches one user's public profile.
func (a *Admin) User(ctx context.Context, id int) (*model.SessionUser, error) {
	env, err := a.api.Get(ctx, "/api/user/"+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	u, err := api.Data[model.SessionUser](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Movies fetches a movie page from the admin listing.
func (a *Admin) Movies(ctx context.Context, page, limit int) (model.MoviePage, error) {
	p := api.Page(page, limit)
	env, err := a.api.Get(ctx, "/api/admin/movies?"+p.Encode())
	if err != nil {
		return emptyMoviePage(), err
	}
	out, err := api.Data[model.MoviePage](env)
	if err != nil {
		return emptyMoviePage(), err
	}
	if out.Movies == nil {
		out.Movies = []model.Movie{}
	}
	return out, nil
}

// Reviews fetches the moderation queue; filter is "pending", "approved" or
// empty for all.
func (a *Admin) Reviews(ctx context.Context, filter string) (model.ReviewPage, error) {
	endpoint := "/api/admin/reviews"
	p := (&api.Params{}).Set("filter", filter)
	if p.Len() > 0 {
		endpoint += "?" + p.Encode()
	}
	env, err := a.api.Get(ctx, endpoint)
	if err != nil {
		return emptyReviewPage(), err
	}
	out, err := api.Data[model.ReviewPage](env)
	if err != nil {
		return emptyReviewPage(), err
	}
	if out.Reviews == nil {
		out.Reviews = []model.Review{}
	}
	return out, nil
}

// ApproveReview marks a review as approved.
func (a *Admin) ApproveReview(ctx context.Context, id int) error {
	env, err := a.api.Patch(ctx, "/api/admin/reviews/"+strconv.Itoa(id)+"/approve", nil)
	if err != nil {
		return err
	}
	return env.Err()
}

// DeleteReview removes a review through the admin namespace.
func (a *Admin) DeleteReview(ctx context.Context, id int) error {
	env, err := a.api.Delete(ctx, "/api/admin/reviews/"+strconv.Itoa(id))
	if err != nil {
		return err
	}
	return env.Err()
}

// SetUserStatus activates or deactivates an account.
func (a *Admin) SetUserStatus(ctx context.Context, id int, active bool) error {
	env, err := a.api.Patch(ctx, "/api/admin/users/"+strconv.Itoa(id)+"/status", map[string]any{
		"isActive": active,
	})
	if err != nil {
		return err
	}
	return env.Err()
}

// DeleteUser removes an account.
func (a *Admin) DeleteUser(ctx context.Context, id int) error {
	env, err := a.api.Delete(ctx, "/api/admin/users/"+strconv.Itoa(id))
	if err != nil {
		return err
	}
	return env.Err()
}

// Genres lists genres through the admin namespace.
func (a *Admin) Genres(ctx context.Context) ([]model.Genre, error) {
	return a.genres.List(ctx, nil)
}

// CreateGenre adds a genre.
func (a *Admin) CreateGenre(ctx context.Context, name string) (*model.Genre, error) {
	return a.genres.Create(ctx, map[string]string{"name": name})
}

// UpdateGenre renames a genre.
func (a *Admin) UpdateGenre(ctx context.Context, id int, name string) error {
	return a.genres.Update(ctx, id, map[string]string{"name": name})
}

// DeleteGenre removes a genre.
func (a *Admin) DeleteGenre(ctx context.Context, id int) error {
	return a.genres.Delete(ctx, id)
}

// CreateMovie adds a movie through the admin namespace.
func (a *Admin) CreateMovie(ctx context.Context, in model.MovieInput) (*model.Movie, error) {
	return a.movies.Create(ctx, in)
}

// UpdateMovie replaces a movie through the admin namespace.
func (a *Admin) UpdateMovie(ctx context.Context, id int, in model.MovieInput) error {
	return a.movies.Update(ctx, id, in)
}

// DeleteMovie removes a movie through the admin namespace.
func (a *Admin) DeleteMovie(ctx context.Context, id int) error {
	return a.movies.Delete(ctx, id)
}

func emptyUserPage() model.UserPage {
	return model.UserPage{Users: []model.SessionUser{}}
}

func emptyMoviePage() model.MoviePage {
	return model.MoviePage{Movies: []model.Movie{}}
}

func emptyReviewPage() model.ReviewPage {
	return model.ReviewPage{Reviews: []model.Review{}}
}
