package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var errEmptyDuration = errors.New("empty duration")

// ParseDurationEnv accepts "10s", "5m" or a bare number of seconds.
// Surrounding quotes left over from .env files are ignored.
func ParseDurationEnv(raw string) (time.Duration, error) {
	v := unquote(strings.TrimSpace(raw))
	if v == "" {
		return 0, errEmptyDuration
	}
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("duration %q: want 10s, 5m or seconds: %w", raw, err)
	}
	return d, nil
}

func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
		return v[1 : len(v)-1]
	}
	return v
}

// ParseRedisURL splits a redis:// or rediss:// URL into client options.
func ParseRedisURL(raw string) (addr, password string, db int, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", 0, fmt.Errorf("redis url: %w", err)
	}
	switch u.Scheme {
	case "redis", "rediss":
	default:
		return "", "", 0, fmt.Errorf("redis url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", 0, errors.New("redis url: host is required")
	}
	if u.User != nil {
		password, _ = u.User.Password()
	}
	if idx := strings.Trim(u.Path, "/"); idx != "" {
		if db, err = strconv.Atoi(idx); err != nil {
			return "", "", 0, fmt.Errorf("redis url: bad db index %q", idx)
		}
	}
	return u.Host, password, db, nil
}
