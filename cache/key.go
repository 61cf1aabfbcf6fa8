package cache

import (
	"net/url"
	"strings"
)

// Key derives a deterministic cache key from an operation tag and its
// parameters. Parameters are trimmed (case preserved) and percent-escaped
// before joining, so two different parameter lists can never collide on
// the separator.
func Key(op string, params ...string) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, op)
	for _, p := range params {
		parts = append(parts, url.QueryEscape(strings.TrimSpace(p)))
	}
	return strings.Join(parts, ":")
}
