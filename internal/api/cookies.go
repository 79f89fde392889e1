package api

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// Jar is a cookie jar mirrored to a JSON file so the session survives
// between runs, the way a browser keeps its cookie store. With an empty
// path it degrades to a plain in-memory jar.
type Jar struct {
	mu    sync.Mutex
	inner http.CookieJar
	base  *url.URL
	path  string
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewJar builds a jar for the given base URL, loading any cookies persisted
// at path. A missing or malformed file is treated as an empty jar.
func NewJar(path string, base *url.URL) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	j := &Jar{inner: inner, base: base, path: path}
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			var stored []storedCookie
			if json.Unmarshal(b, &stored) == nil {
				cookies := make([]*http.Cookie, 0, len(stored))
				for _, s := range stored {
					cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value})
				}
				inner.SetCookies(base, cookies)
			}
		}
	}
	return j, nil
}

// SetCookies stores cookies and mirrors the jar to disk.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
	j.persist()
}

// Cookies returns the cookies to send for u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Clear drops all cookies for the base URL and removes the mirror file.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	expired := make([]*http.Cookie, 0, 4)
	for _, c := range j.inner.Cookies(j.base) {
		expired = append(expired, &http.Cookie{Name: c.Name, Value: "", MaxAge: -1})
	}
	j.inner.SetCookies(j.base, expired)
	if j.path != "" {
		_ = os.Remove(j.path)
	}
}

// persist writes the current cookies for the base URL. Best effort: a failed
// write means the next run starts logged out, nothing worse.
func (j *Jar) persist() {
	if j.path == "" {
		return
	}
	cookies := j.inner.Cookies(j.base)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	b, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(j.path), 0o700)
	_ = os.WriteFile(j.path, b, 0o600)
}
