package query

import (
	"strings"

	"github.com/indigo-web/lazysock/internal/urlencoded"
	"github.com/indigo-web/lazysock/kv"
)

// Parse splits the raw query into pairs and appends them to params in the order they
// arrived. Keys and values are decoded separately, so an encoded ampersand or equal sign
// never splits a pair. A key without an equal sign is a flag and gets an empty value.
// Empty segments (as in a&&b) are skipped, while empty keys (as in =v) are kept. Malformed
// percent sequences stay as they are.
func Parse(raw string, params *kv.Storage) {
	for len(raw) > 0 {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if len(pair) == 0 {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		params.Add(urlencoded.Lenient(key), urlencoded.Lenient(value))
	}
}
