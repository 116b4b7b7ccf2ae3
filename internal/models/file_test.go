package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"src/main.py", "python"},
		{"app.js", "javascript"},
		{"lib/util.ts", "typescript"},
		{"components/App.jsx", "javascript xml"},
		{"components/App.tsx", "typescript xml"},
		{"README.md", "Unknown"},
		{"Makefile", "Unknown"},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.expected {
			t.Errorf("DetectLanguage(%s) = %s, want %s", tt.path, got, tt.expected)
		}
	}
}

func TestFileRecordJSONKeys(t *testing.T) {
	record := FileRecord{
		FilePath: "a/x.py",
		Metadata: FileMetadata{FileName: "x.py", FileType: ".py", FileSize: 42},
		Language: "python",
		Functions: []FunctionDef{
			{Name: "use", Code: "def use():\n    pass"},
		},
		Dependencies:      []string{"a/y.py"},
		UsageHints:        []string{"y.py:helper"},
		ExternalLibraries: []string{"requests"},
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	// The wire contract uses these exact keys.
	for _, key := range []string{
		`"file_path"`, `"file_name"`, `"file_type"`, `"file_size"`,
		`"language"`, `"functions"`, `"dependencies"`,
		`"used_functions_from_dependencies_hints"`, `"external_libraries"`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Expected JSON key %s in %s", key, data)
		}
	}
}
