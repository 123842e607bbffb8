package cache

import (
	"sort"
	"strings"
)

// Key builds the stable cache signature for a read: the trimmed endpoint
// plus the query parameters in sorted order. The same logical request
// always produces the same key, regardless of map iteration order.
func Key(endpoint string, params map[string]string) string {
	endpoint = strings.Trim(endpoint, "/")
	if len(params) == 0 {
		return endpoint + ":"
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte(':')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}
