// Package auth implements the login, registration and profile flows on top of
// the gateway and the local session cache.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/lari1230/fiml/internal/api"
	"github.com/lari1230/fiml/internal/model"
	"github.com/lari1230/fiml/internal/notify"
	"github.com/lari1230/fiml/internal/session"
)

// sessionCookie is the cookie the server issues on login/register.
const sessionCookie = "sessionId"

// defaultSessionTTL matches the server's session window; used as the
// staleness hint when the cookie value carries no parsable expiry.
const defaultSessionTTL = 24 * time.Hour

// Service runs the authentication flows. Both the session store and the
// notifier are injected; there is no ambient global state.
type Service struct {
	api    *api.Client
	sess   *session.Store
	notify notify.Notifier
	log    *zap.Logger
}

// NewService constructs the auth service with its dependencies.
func NewService(gw *api.Client, sess *session.Store, n notify.Notifier, log *zap.Logger) *Service {
	if n == nil {
		n = notify.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: gw, sess: sess, notify: n, log: log}
}

// loginData is the payload shape of login/register responses.
type loginData struct {
	User *model.SessionUser `json:"user"`
}

// CheckAuth asks the server who the caller is. Any failure, network included,
// means "anonymous" and returns nil without an error: this is the one
// operation that may legitimately fail. On success the identity is cached.
func (s *Service) CheckAuth(ctx context.Context) *model.SessionUser {
	env, err := s.api.Get(ctx, "/api/auth/me")
	if err != nil {
		s.log.Debug("auth check failed", zap.Error(err))
		return nil
	}
	u, err := api.Data[model.SessionUser](env)
	if err != nil {
		s.log.Debug("auth check rejected", zap.Error(err))
		return nil
	}
	if u.ID == 0 && u.Username == "" {
		return nil
	}
	_ = s.sess.SetWithExpiry(&u, s.sess.ExpiresAt())
	return &u
}

// Login authenticates with email and password. The returned user is cached
// wholesale; nil means failure, already reported through the notifier.
func (s *Service) Login(ctx context.Context, email, password string) *model.SessionUser {
	env, err := s.api.Post(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		s.notify.Notify(notify.Error, "login failed: "+err.Error())
		return nil
	}
	data, err := api.Data[loginData](env)
	if err != nil || data.User == nil {
		s.notify.Notify(notify.Error, failureMessage(err, "login failed"))
		return nil
	}
	_ = s.sess.SetWithExpiry(data.User, s.sessionExpiry())
	s.notify.Notify(notify.Success, "logged in as "+data.User.Username)
	return data.User
}

// Register creates an account and, like Login, caches the returned user.
func (s *Service) Register(ctx context.Context, username, email, password string) *model.SessionUser {
	env, err := s.api.Post(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		s.notify.Notify(notify.Error, "registration failed: "+err.Error())
		return nil
	}
	data, err := api.Data[loginData](env)
	if err != nil || data.User == nil {
		s.notify.Notify(notify.Error, failureMessage(err, "registration failed"))
		return nil
	}
	_ = s.sess.SetWithExpiry(data.User, s.sessionExpiry())
	s.notify.Notify(notify.Success, "registered as "+data.User.Username)
	return data.User
}

// Logout tells the server to end the session and clears the local cache
// unconditionally, whatever the server answered. The return value reports
// only whether the server confirmed.
func (s *Service) Logout(ctx context.Context) bool {
	env, err := s.api.Post(ctx, "/api/auth/logout", struct{}{})
	_ = s.sess.Clear()
	if err != nil {
		s.notify.Notify(notify.Error, "logout failed: "+err.Error())
		return false
	}
	if !env.Success {
		s.notify.Notify(notify.Error, "logout not confirmed")
		return false
	}
	s.notify.Notify(notify.Success, "logged out")
	return true
}

// UpdateProfile sends the changed fields and shallow-merges them over the
// cached user, leaving untouched fields as they were.
func (s *Service) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) bool {
	env, err := s.api.Put(ctx, "/api/user/profile", upd)
	if err != nil {
		s.notify.Notify(notify.Error, "profile update failed: "+err.Error())
		return false
	}
	if derr := env.Err(); derr != nil {
		s.notify.Notify(notify.Error, derr.Error())
		return false
	}
	if u := s.sess.Get(); u != nil {
		if upd.Username != "" {
			u.Username = upd.Username
		}
		if upd.Email != "" {
			u.Email = upd.Email
		}
		_ = s.sess.SetWithExpiry(u, s.sess.ExpiresAt())
	}
	s.notify.Notify(notify.Success, "profile updated")
	return true
}

// ChangePassword swaps the password. Nothing is cached: passwords never
// touch local storage.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) bool {
	env, err := s.api.Put(ctx, "/api/user/password", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	if err != nil {
		s.notify.Notify(notify.Error, "password change failed: "+err.Error())
		return false
	}
	if derr := env.Err(); derr != nil {
		s.notify.Notify(notify.Error, derr.Error())
		return false
	}
	s.notify.Notify(notify.Success, "password changed")
	return true
}

// IsLoggedIn reports whether a cached user exists. Only as fresh as the last
// cache write; use CheckAuth when it matters.
func (s *Service) IsLoggedIn() bool {
	return s.sess.Present()
}

// IsAdmin reports whether the cached user carries the admin role.
func (s *Service) IsAdmin() bool {
	return s.sess.Get().IsAdmin()
}

// sessionExpiry derives a staleness hint for the fresh session. When the
// session cookie happens to be a JWT its exp claim wins; an opaque cookie
// falls back to the server's session window.
func (s *Service) sessionExpiry() time.Time {
	exp := time.Now().Add(defaultSessionTTL)
	ck := s.api.Cookie(sessionCookie)
	if ck == nil {
		return exp
	}
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(ck.Value, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return exp
}

func failureMessage(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
