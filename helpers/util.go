package helpers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PageURL returns base with its page query parameter set to page
func PageURL(base string, page int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Excerpt returns at most n runes of s, with an ellipsis when truncated
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
