package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/futball/internal/config"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	maxTracedQueryBytes = 512
)

// OpenDB opens the traced PostgreSQL pool and checks it is reachable.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(databaseName(dsn)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// NormalizeDBURL adds disable_prepared_binary_result=yes for poolers that
// cannot handle binary results of prepared statements. An explicit value in
// raw wins. Both URL and key=value DSNs are accepted.
func NormalizeDBURL(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary || raw == "" {
		return raw
	}

	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		q := u.Query()
		if q.Get(preparedBinaryParam) != "" {
			return raw
		}
		q.Set(preparedBinaryParam, "yes")
		u.RawQuery = q.Encode()
		return u.String()
	}

	if _, ok := dsnValue(raw, preparedBinaryParam); ok {
		return raw
	}
	return raw + " " + preparedBinaryParam + "=yes"
}

func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	name, _ := dsnValue(dsn, "dbname")
	return name
}

// dsnValue reads key from a libpq key=value connection string.
func dsnValue(dsn, key string) (string, bool) {
	for _, token := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(token, "=")
		if ok && k == key {
			return strings.Trim(v, `"'`), true
		}
	}
	return "", false
}

// traceQuery collapses whitespace and caps the statement recorded on spans.
func traceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) <= maxTracedQueryBytes {
		return query
	}
	cut := maxTracedQueryBytes
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
