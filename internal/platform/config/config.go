// Package config reads service settings from namespaced environment variables
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"easel/internal/platform/logger"
	str "easel/internal/platform/strings"
)

// Conf is one prefix-scoped view over the environment. The zero value reads
// unprefixed names; Prefix derives narrower views, so a single root can hand
// CORE_API_ to the http server and IMAGECHECK_ to the checker
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix derives a view that prepends p to every key
func (c Conf) Prefix(p string) Conf {
	c.prefix += p
	return c
}

// lookup reads and trims one variable, reporting whether it held anything
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.prefix + key))
	return v, v != ""
}

// badValue records a fallback to the built-in default
func (c Conf) badValue(key, raw, kind string) {
	logger.Get().Warn().Str("key", c.prefix+key).Str("value", raw).Msgf("invalid %s; using default", kind)
}

// MayString returns the trimmed value, or def when unset
func (c Conf) MayString(key, def string) string {
	if val, ok := c.lookup(key); ok {
		return val
	}
	return def
}

// MayInt parses an integer, falling back to def when unset or malformed
func (c Conf) MayInt(key string, def int) int {
	if s, ok := c.lookup(key); ok {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		c.badValue(key, s, "int")
	}
	return def
}

// MayBool parses a boolean; anything strconv.ParseBool takes counts
func (c Conf) MayBool(key string, def bool) bool {
	if s, ok := c.lookup(key); ok {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		c.badValue(key, s, "bool")
	}
	return def
}

// MayDuration parses a Go duration string such as 250ms or 5m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	if s, ok := c.lookup(key); ok {
		if dur, err := time.ParseDuration(s); err == nil {
			return dur
		}
		c.badValue(key, s, "duration")
	}
	return def
}

// MayCSV splits a comma-separated value, dropping blank entries.
// def comes back when the variable is unset or nothing survives the split
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return str.IfEmpty(out, def)
}

// MayListenAddr reads a TCP listen address, accepting "8480", ":8480",
// or "host:8480". Port 0 is allowed for ephemeral binds. Malformed values
// fall back to def
func (c Conf) MayListenAddr(key, def string) string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	host, port := "", s
	if strings.Contains(s, ":") {
		h, p, err := net.SplitHostPort(s)
		if err != nil {
			c.badValue(key, s, "listen address")
			return def
		}
		host, port = h, p
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		c.badValue(key, s, "listen address")
		return def
	}
	return host + ":" + port
}
