// Package jsonpath extracts values from JSON documents using JSONPath-style
// expressions, backed by gjson.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract extracts a value from a JSON string using a JSONPath expression.
// Both JSONPath ($.users[0].name) and bare gjson (users.0.name) forms are
// accepted.
func Extract(json string, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.Get(json, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractAll extracts a named set of values in one pass. It returns whatever
// could be extracted alongside an error describing the paths that failed.
func ExtractAll(json string, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string, len(paths))
	var failed []string

	for name, path := range paths {
		value, err := Extract(json, path)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(failed) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failed, "; "))
	}
	return results, nil
}

// toGjsonPath converts a JSONPath expression to gjson's dotted form.
// JSONPath: $.users[0].name  ->  gjson: users.0.name
func toGjsonPath(path string) string {
	if path == "$" {
		return "@this"
	}

	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	// Bracketed property access: ['name'] / ["name"]
	replacer := strings.NewReplacer("['", ".", "']", "", `["`, ".", `"]`, "")
	path = replacer.Replace(path)

	// Array indices: [0] -> .0
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")

	return strings.TrimPrefix(path, ".")
}
