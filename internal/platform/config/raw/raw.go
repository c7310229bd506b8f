// Package raw is the tiny env reader bootstrap code uses before the logger
// and config layers exist. It must not import either; both call into it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf reads environment variables under a fixed prefix such as LOG_
type Conf struct{ prefix string }

// New opens an unprefixed view over the environment
func New() Conf { return Conf{} }

// Prefix narrows the view, stacking onto any existing prefix
func (c Conf) Prefix(p string) Conf {
	c.prefix += p
	return c
}

// lookup fetches the trimmed value and whether anything was set
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.prefix + key))
	return v, v != ""
}

// String returns the variable or def when unset or blank
func (c Conf) String(key, def string) string {
	if v, ok := c.lookup(key); ok {
		def = v
	}
	return def
}

// Bool treats 1, true, yes or on (any case) as true. Anything else that
// is set reads as false
func (c Conf) Bool(key string, def bool) bool {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Int parses a non-negative integer. Malformed or negative values fall
// back to def; this reader only feeds ports and sizes
func (c Conf) Int(key string, def int) int {
	if v, ok := c.lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
