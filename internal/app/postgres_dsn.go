package app

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	preparedBinaryParam = "disable_prepared_binary_result"
	appNameParam        = "fallback_application_name"

	maxTracedQueryBytes = 512
)

// resolveDSN adds the connection parameters the pool and the change listener
// share. Only URL-style DSNs are rewritten; parameters already present win.
func resolveDSN(raw, serviceName string, disablePreparedBinary bool) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	changed := false
	setDefault := func(key, value string) {
		if value == "" || query.Has(key) {
			return
		}
		query.Set(key, value)
		changed = true
	}
	if disablePreparedBinary {
		setDefault(preparedBinaryParam, "yes")
	}
	setDefault(appNameParam, serviceName)
	if !changed {
		return raw
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName reads the database out of either DSN form for span attributes.
func databaseName(dsn string) string {
	if parsed, err := url.Parse(strings.TrimSpace(dsn)); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(field, "=")
		if ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace so multi-line repository queries read as
// one line in spans, and caps the length without splitting a rune.
func traceQuery(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) <= maxTracedQueryBytes {
		return compact
	}

	cut := maxTracedQueryBytes
	for cut > 0 && !utf8.RuneStart(compact[cut]) {
		cut--
	}
	return compact[:cut] + "..."
}
