// Package model defines the wire entities exchanged with the movie service.
package model

import "time"

// Roles assigned by the server. The client never invents roles; it only mirrors them.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// SessionUser is the public profile of the authenticated user as returned by the
// server. The client caches a copy locally; the server stays authoritative.
type SessionUser struct {
	ID             int        `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	ReviewCount    int        `json:"reviewCount,omitempty"`
	LastReviewDate *time.Time `json:"lastReviewDate,omitempty"`
	IsActive       bool       `json:"isActive,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Genre is a movie category with its usage count.
type Genre struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	MovieCount int    `json:"movieCount,omitempty"`
}

// Review is a single user review of a movie. MovieTitle is filled only by
// endpoints that join across movies (e.g. "my reviews").
type Review struct {
	ID         int        `json:"id"`
	MovieID    int        `json:"movieId"`
	UserID     int        `json:"userId"`
	Username   string     `json:"username,omitempty"`
	MovieTitle string     `json:"movieTitle,omitempty"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	IsApproved bool       `json:"isApproved,omitempty"`
}

// Movie is a catalog entry. Genres and Reviews are populated only on the
// detail endpoint; list endpoints return them empty.
type Movie struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Director      string   `json:"director"`
	Year          int      `json:"year"`
	Description   string   `json:"description,omitempty"`
	Duration      int      `json:"duration,omitempty"`
	PosterURL     string   `json:"posterUrl,omitempty"`
	AverageRating float64  `json:"averageRating"`
	Genres        []Genre  `json:"genres,omitempty"`
	Reviews       []Review `json:"reviews,omitempty"`
}

// Pagination is the paging block list endpoints return. The client mirrors
// Page/Limit back on the next request; Pages bounds navigation.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// HasNext reports whether another page exists after the current one.
func (p Pagination) HasNext() bool { return p.Page < p.Pages }

// HasPrev reports whether a page exists before the current one.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// MovieReviews is the aggregate returned for a movie's review list.
type MovieReviews struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// UserPage is a paginated slice of users from the admin namespace.
type UserPage struct {
	Users      []SessionUser `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// MoviePage is a paginated slice of movies from the admin namespace.
type MoviePage struct {
	Movies     []Movie    `json:"movies"`
	Pagination Pagination `json:"pagination"`
}

// ReviewPage is a paginated slice of reviews from the admin namespace.
type ReviewPage struct {
	Reviews    []Review   `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}

// Dashboard carries the admin landing-page counters.
type Dashboard struct {
	TotalUsers     int `json:"totalUsers"`
	TotalMovies    int `json:"totalMovies"`
	TotalReviews   int `json:"totalReviews"`
	PendingReviews int `json:"pendingReviews"`
}

// MovieInput is the payload for creating or updating a movie.
type MovieInput struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	Year        int    `json:"year"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	PosterURL   string `json:"posterUrl,omitempty"`
	GenreIDs    []int  `json:"genreIds,omitempty"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Empty fields are omitted from the request and left untouched server-side.
type ProfileUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
