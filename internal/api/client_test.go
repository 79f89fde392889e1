package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lari1230/fiml/internal/errs"
)

func newTestClient(t *testing.T, srvURL string) *Client {
	t.Helper()
	c, err := New(srvURL, Options{})
	require.NoError(t, err)
	return c
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestRequest_EnvelopeErrorWinsOverStatusFallback(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusBadRequest, `{"success":false,"error":"X"}`))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "/api/movies")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, KindHTTP, apiErr.Kind)
	require.Equal(t, "X", apiErr.Message)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestRequest_StatusFallbackWhenEnvelopeHasNoError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusInternalServerError, `{"success":false}`))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "/api/movies")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "HTTP error: 500", apiErr.Message)
}

func TestRequest_NonJSONContentTypeIsProtocolMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>not found</html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "/api/movies")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, KindProtocol, apiErr.Kind)
	require.Contains(t, apiErr.ContentType, "text/html")
}

func TestRequest_JSONContentTypeWithCharsetPasses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	env, err := c.Get(context.Background(), "/api/movies")
	require.NoError(t, err)
	require.True(t, env.Success)
}

func TestRequest_MalformedJSONWithJSONContentTypeIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"success":tru`))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "/api/movies")
	require.True(t, IsKind(err, KindDecode), "want decode kind, got %v", err)
}

func TestRequest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{}`))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.Get(context.Background(), "/api/movies")
	require.True(t, IsKind(err, KindTransport), "want transport kind, got %v", err)
}

func TestRequest_SuccessReturnsEnvelopeVerbatim(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"success":true,"data":{"id":7,"title":"Heat"}}`))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	env, err := c.Get(context.Background(), "/api/movies/7")
	require.NoError(t, err)
	require.True(t, env.Success)
	require.JSONEq(t, `{"id":7,"title":"Heat"}`, string(env.Data))
}

func TestRequest_DomainFailureIsNotATransportError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"success":false,"error":"rating out of range"}`))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	env, err := c.Post(context.Background(), "/api/reviews", map[string]int{"rating": 99})
	require.NoError(t, err)
	require.False(t, env.Success)

	derr := env.Err()
	require.Error(t, derr)
	require.True(t, IsKind(derr, KindDomain))
	require.Equal(t, "rating out of range", derr.Error())
}

func TestRequest_SendsJSONHeadersAndRequestID(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		jsonHandler(http.StatusOK, `{"success":true}`)(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Post(context.Background(), "/api/auth/login", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	require.Equal(t, "application/json", got.Get("Content-Type"))
	require.Equal(t, "application/json", got.Get("Accept"))
	require.NotEmpty(t, got.Get("X-Request-Id"))
}

func TestRequest_CallerHeadersOverrideWithoutClobbering(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		jsonHandler(http.StatusOK, `{"success":true}`)(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	hdr := http.Header{}
	hdr.Set("Accept", "application/json;v=2")
	_, err := c.Request(context.Background(), http.MethodGet, "/api/movies", nil, hdr)
	require.NoError(t, err)
	require.Equal(t, "application/json;v=2", got.Get("Accept"))
	require.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestStatusSentinels(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusUnauthorized, `{"success":false,"error":"no session"}`))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Get(context.Background(), "/api/reviews/my")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.NotErrorIs(t, err, errs.ErrNotFound)
}

func TestCookiesPersistAcrossClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "sessionId", Value: "abc123", Path: "/"})
		}
		jsonHandler(http.StatusOK, `{"success":true}`)(w, r)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "cookies.json")

	c1, err := New(srv.URL, Options{CookiePath: path})
	require.NoError(t, err)
	_, err = c1.Post(context.Background(), "/login", struct{}{})
	require.NoError(t, err)
	require.NotNil(t, c1.Cookie("sessionId"))

	// a fresh client over the same file starts with the cookie
	c2, err := New(srv.URL, Options{CookiePath: path})
	require.NoError(t, err)
	ck := c2.Cookie("sessionId")
	require.NotNil(t, ck)
	require.Equal(t, "abc123", ck.Value)

	c2.ClearCookies()
	require.Nil(t, c2.Cookie("sessionId"))
}

func TestData_MissingDataOnSuccessIsZeroValue(t *testing.T) {
	env := &Envelope{Success: true}

	movies, err := Data[[]json.RawMessage](env)
	require.NoError(t, err)
	require.Empty(t, movies)

	env = &Envelope{Success: true, Data: json.RawMessage("null")}
	n, err := Data[int](env)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestData_DomainErrorPropagates(t *testing.T) {
	env := &Envelope{Success: false, Error: "nope"}
	_, err := Data[int](env)
	require.Error(t, err)
	require.Equal(t, "nope", err.Error())
}
