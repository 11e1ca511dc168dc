package ingest

import (
	"strings"
)

// gjsonPath converts a JSONPath expression to gjson path syntax.
//
//	JSONPath: $.frames[0].ms
//	gjson:    frames.0.ms
//
// Paths that are already gjson syntax pass through unchanged.
func gjsonPath(path string) string {
	path = strings.TrimPrefix(strings.TrimPrefix(path, "$"), ".")
	if path == "" {
		return "@this"
	}

	// Bracketed member names: ['name'] and ["name"]
	for _, q := range []string{"'", "\""} {
		path = strings.ReplaceAll(path, "["+q, ".")
		path = strings.ReplaceAll(path, q+"]", "")
	}

	// Array indexes: [n] -> .n
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")

	return strings.TrimPrefix(path, ".")
}
