package jsonpath

import "testing"

const doc = `{
	"users": [
		{"name": "fry", "age": 25},
		{"name": "leela", "age": 26}
	],
	"count": 2,
	"cursor": null
}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"dotted jsonpath", "$.users[0].name", "fry"},
		{"nested index", "$.users[1].age", "26"},
		{"top-level field", "$.count", "2"},
		{"bracket notation", "$['count']", "2"},
		{"bare gjson path", "users.0.name", "fry"},
		{"null value", "$.cursor", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(doc, tt.path)
			if err != nil {
				t.Fatalf("Error extracting %s: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	if _, err := Extract("", "$.a"); err == nil {
		t.Errorf("Expected error for empty JSON")
	}
	if _, err := Extract(doc, ""); err == nil {
		t.Errorf("Expected error for empty path")
	}
	if _, err := Extract(doc, "$.missing.path"); err == nil {
		t.Errorf("Expected error for missing path")
	}
}

func TestExtractAll(t *testing.T) {
	results, err := ExtractAll(doc, map[string]string{
		"first": "$.users[0].name",
		"total": "$.count",
	})
	if err != nil {
		t.Fatalf("Error extracting: %v", err)
	}
	if results["first"] != "fry" || results["total"] != "2" {
		t.Errorf("Unexpected results: %v", results)
	}
}

func TestExtractAll_PartialFailure(t *testing.T) {
	results, err := ExtractAll(doc, map[string]string{
		"ok":      "$.count",
		"missing": "$.nope",
	})
	if err == nil {
		t.Fatalf("Expected error for missing path")
	}
	if results["ok"] != "2" {
		t.Errorf("Expected successful extractions to be returned, got %v", results)
	}
}
