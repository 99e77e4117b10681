package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// IsConnString reports whether s looks like a PostgreSQL URL rather than a file path.
func IsConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// dsnHasKey reports whether a space separated key=value DSN sets key.
func dsnHasKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// urlHasKey reports whether a URL connection string sets query parameter key.
func urlHasKey(connStr, key string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.Scheme == "" {
		return false
	}
	for k := range u.Query() {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func hasSearchPathParam(connStr string) bool {
	return urlHasKey(connStr, "search_path") || dsnHasKey(connStr, "search_path")
}

func hasSSLMode(connStr string) bool {
	return urlHasKey(connStr, "sslmode") || dsnHasKey(connStr, "sslmode")
}

// withSearchPath pins the session to the application schema unless the
// connection string already chooses one.
func withSearchPath(connStr, schema string) string {
	if hasSearchPathParam(connStr) {
		return connStr
	}
	if IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return strings.TrimSpace(connStr) + " search_path=" + schema
}

// ValidateConnString checks that connStr is a usable PostgreSQL URL or DSN
// that carries no password. Passwords belong in the environment, .pgpass or
// the OS keyring.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if dsnHasKey(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}
