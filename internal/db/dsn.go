package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/config"
)

// BuildDSN assembles the lib/pq key=value DSN from the configured parts, or
// passes a full DATABASE_DSN override through unchanged. sslmode defaults
// to disable when absent.
func BuildDSN(cfg config.Config) string {
	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		dsn = strings.Trim(dsn, "\"'")
		if !strings.Contains(strings.ToLower(dsn), "sslmode=") &&
			!strings.HasPrefix(strings.ToLower(dsn), "postgres://") &&
			!strings.HasPrefix(strings.ToLower(dsn), "postgresql://") {
			dsn += " sslmode=disable"
		}
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)
}

// ToURLDSN converts a key=value DSN to postgres:// form, which the migrate
// library requires. URL-form input is returned unchanged.
func ToURLDSN(kvDSN string) string {
	lower := strings.ToLower(kvDSN)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return kvDSN
	}
	m := map[string]string{}
	for _, part := range strings.Fields(kvDSN) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			m[strings.ToLower(kv[0])] = kv[1]
		}
	}
	if m["host"] == "" || m["user"] == "" || m["dbname"] == "" {
		return kvDSN
	}
	u := &url.URL{Scheme: "postgres", Host: m["host"]}
	if m["port"] != "" {
		u.Host = m["host"] + ":" + m["port"]
	}
	if m["password"] != "" {
		u.User = url.UserPassword(m["user"], m["password"])
	} else {
		u.User = url.User(m["user"])
	}
	u.Path = "/" + m["dbname"]
	q := url.Values{}
	if sslm, ok := m["sslmode"]; ok {
		q.Set("sslmode", sslm)
	}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// MaskDSN hides the password for log output.
func MaskDSN(dsn string) string {
	if i := strings.Index(dsn, "password="); i >= 0 {
		end := strings.IndexByte(dsn[i:], ' ')
		if end < 0 {
			return dsn[:i] + "password=***"
		}
		return dsn[:i] + "password=***" + dsn[i+end:]
	}
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, has := u.User.Password(); has {
			// u.String() would percent-encode the placeholder, so splice
			// the masked userinfo in textually.
			rest := strings.TrimPrefix(dsn, u.Scheme+"://")
			if at := strings.IndexByte(rest, '@'); at >= 0 {
				return u.Scheme + "://" + u.User.Username() + ":***" + rest[at:]
			}
		}
	}
	return dsn
}
