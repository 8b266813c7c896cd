package app

import (
	"net/url"
	"strings"
)

const binaryParametersKey = "binary_parameters"

// normalizeDBURL turns on lib/pq binary parameters so parameterized queries
// skip the extra prepare round trip, which keeps PgBouncer in transaction
// mode happy. An explicit value in the URL wins.
func normalizeDBURL(raw string, binaryParameters bool) string {
	raw = strings.TrimSpace(raw)
	if !binaryParameters || raw == "" {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		query := parsed.Query()
		if query.Get(binaryParametersKey) == "" {
			query.Set(binaryParametersKey, "yes")
			parsed.RawQuery = query.Encode()
		}
		return parsed.String()
	}

	// key=value DSN
	for _, token := range strings.Fields(raw) {
		if strings.HasPrefix(token, binaryParametersKey+"=") {
			return raw
		}
	}
	return raw + " " + binaryParametersKey + "=yes"
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}
