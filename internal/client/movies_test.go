package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lari1230/fiml/internal/api"
	"github.com/lari1230/fiml/internal/model"
)

func movieInput(title string) model.MovieInput {
	return model.MovieInput{Title: title, Director: "Mann", Year: 1995}
}

func newGateway(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	gw, err := api.New(srv.URL, api.Options{})
	require.NoError(t, err)
	return gw
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestMovies_ListBuildsFilterQuery(t *testing.T) {
	var gotQuery string
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":1,"title":"Heat","year":1995}]}`)
	}))

	movies, err := NewMovies(gw, nil).List(context.Background(), MovieFilter{
		Page:   2,
		Limit:  12,
		SortBy: "rating",
		Order:  "desc",
		Query:  "heat",
	})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, "Heat", movies[0].Title)
	require.Equal(t, "page=2&limit=12&sortBy=rating&order=desc&q=heat", gotQuery)
}

func TestMovies_ListDefaultsSendOnlyPaging(t *testing.T) {
	var gotQuery string
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))

	movies, err := NewMovies(gw, nil).List(context.Background(), MovieFilter{})
	require.NoError(t, err)
	require.NotNil(t, movies)
	require.Empty(t, movies)
	require.Equal(t, "page=1&limit=12", gotQuery)
}

func TestMovies_EmptyPageRendersAsEmptySlice(t *testing.T) {
	// pages may be 0 when nothing matches; the client must not care
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))

	movies, err := NewMovies(gw, nil).List(context.Background(), MovieFilter{Page: 2, Limit: 12})
	require.NoError(t, err)
	require.Empty(t, movies)
}

func TestMovies_ListFailureReturnsEmptySliceWithError(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"success":false,"error":"db down"}`)
	}))

	movies, err := NewMovies(gw, nil).List(context.Background(), MovieFilter{})
	require.Error(t, err)
	require.NotNil(t, movies)
	require.Empty(t, movies)
}

func TestMovies_TopAlwaysSendsLimit(t *testing.T) {
	var gotQuery string
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies/top", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))

	m := NewMovies(gw, nil)
	_, err := m.Top(context.Background(), TopFilter{})
	require.NoError(t, err)
	require.Equal(t, "limit=10", gotQuery)

	_, err = m.Top(context.Background(), TopFilter{Limit: 20, Period: "year", MinVotes: 5, Genre: "drama"})
	require.NoError(t, err)
	require.Equal(t, "period=year&minVotes=5&genre=drama&limit=20", gotQuery)
}

func TestMovies_Search(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies/search", r.URL.Path)
		require.Equal(t, "blade runner", r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":2,"title":"Blade Runner"}]}`)
	}))

	movies, err := NewMovies(gw, nil).Search(context.Background(), "blade runner")
	require.NoError(t, err)
	require.Len(t, movies, 1)
}

func TestMovies_GetAndMutations(t *testing.T) {
	gw := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/movies/7":
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":7,"title":"Heat","genres":[{"id":1,"name":"Crime"}]}}`)
		case "POST /api/movies":
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":8,"title":"New"}}`)
		case "PUT /api/movies/8":
			writeJSON(w, http.StatusOK, `{"success":true}`)
		case "DELETE /api/movies/8":
			writeJSON(w, http.StatusOK, `{"success":false,"error":"has reviews"}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"success":false,"error":"not found"}`)
		}
	}))

	m := NewMovies(gw, nil)
	ctx := context.Background()

	movie, err := m.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "Heat", movie.Title)
	require.Len(t, movie.Genres, 1)

	created, err := m.Create(ctx, movieInput("New"))
	require.NoError(t, err)
	require.Equal(t, 8, created.ID)

	require.NoError(t, m.Update(ctx, 8, movieInput("New")))

	err = m.Delete(ctx, 8)
	require.Error(t, err)
	require.True(t, api.IsKind(err, api.KindDomain))
	require.Equal(t, "has reviews", err.Error())
}
