package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Params builds a query string with stable key order. Empty values are
// skipped entirely: an absent filter key means "let the server decide",
// which is not the same as sending a default.
type Params struct {
	pairs []pair
}

type pair struct{ key, value string }

// Set appends key=value unless value is empty.
func (p *Params) Set(key, value string) *Params {
	if strings.TrimSpace(value) == "" {
		return p
	}
	p.pairs = append(p.pairs, pair{key, value})
	return p
}

// SetInt appends key=value unless value is zero.
func (p *Params) SetInt(key string, value int) *Params {
	if value == 0 {
		return p
	}
	return p.Set(key, strconv.Itoa(value))
}

// Len reports the number of pairs set so far.
func (p *Params) Len() int { return len(p.pairs) }

// Encode serializes the pairs in insertion order.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// Page starts a parameter list for a paginated endpoint. Unlike filters,
// page and limit are always sent, falling back to first page defaults.
func Page(page, limit int) *Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	p := &Params{}
	p.pairs = append(p.pairs,
		pair{"page", strconv.Itoa(page)},
		pair{"limit", strconv.Itoa(limit)},
	)
	return p
}
