package analyzer

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func TestAnalyzeRepositoryTree(t *testing.T) {
	root := t.TempDir()
	xContent := "from . import y\nimport requests\n\ndef use():\n    return helper()\n"
	yContent := "def helper():\n    return 1\n"
	writeFile(t, root, "a/x.py", xContent)
	writeFile(t, root, "a/y.py", yContent)
	writeFile(t, root, "app.js", "const add = (a, b) => a + b;\n")
	writeFile(t, root, "ignored.txt", "import requests\n")

	records, err := NewPipeline().Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// Records come back in sorted discovery order.
	wantPaths := []string{filepath.Join("a", "x.py"), filepath.Join("a", "y.py"), "app.js"}
	for i, want := range wantPaths {
		if records[i].FilePath != want {
			t.Errorf("Expected record %d at %s, got %s", i, want, records[i].FilePath)
		}
	}

	x := records[0]
	if x.Language != "python" {
		t.Errorf("Expected language python, got %s", x.Language)
	}
	if x.Metadata.FileName != "x.py" || x.Metadata.FileType != ".py" {
		t.Errorf("Unexpected metadata: %+v", x.Metadata)
	}
	if x.Metadata.FileSize != int64(len(xContent)) {
		t.Errorf("Expected size %d, got %d", len(xContent), x.Metadata.FileSize)
	}
	if len(x.Functions) != 1 || x.Functions[0].Name != "use" {
		t.Errorf("Expected function 'use', got %+v", x.Functions)
	}
	if !reflect.DeepEqual(x.Dependencies, []string{filepath.Join("a", "y.py")}) {
		t.Errorf("Expected dependency on a/y.py, got %v", x.Dependencies)
	}
	if !reflect.DeepEqual(x.UsageHints, []string{"y.py:helper"}) {
		t.Errorf("Expected hint y.py:helper, got %v", x.UsageHints)
	}
	if !reflect.DeepEqual(x.ExternalLibraries, []string{"requests"}) {
		t.Errorf("Expected external [requests], got %v", x.ExternalLibraries)
	}

	y := records[1]
	if len(y.Functions) != 1 || y.Functions[0].Name != "helper" {
		t.Errorf("Expected function 'helper', got %+v", y.Functions)
	}
	if len(y.Dependencies) != 0 || len(y.UsageHints) != 0 || len(y.ExternalLibraries) != 0 {
		t.Errorf("Expected empty lists for y, got %+v", y)
	}

	app := records[2]
	if app.Language != "javascript" {
		t.Errorf("Expected language javascript, got %s", app.Language)
	}
	if len(app.Functions) != 1 || app.Functions[0].Name != "add" {
		t.Errorf("Expected function 'add', got %+v", app.Functions)
	}
}

func TestAnalyzeNoAbsolutePathsLeak(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/mod.py", "import pkg.other\n")
	writeFile(t, root, "pkg/other.py", "def f():\n    pass\n")

	records, err := NewPipeline().Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, rec := range records {
		if filepath.IsAbs(rec.FilePath) {
			t.Errorf("Absolute file_path leaked: %s", rec.FilePath)
		}
		for _, dep := range rec.Dependencies {
			if filepath.IsAbs(dep) {
				t.Errorf("Absolute dependency path leaked: %s", dep)
			}
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "import b\nimport c\n\ndef one():\n    return two() + three()\n")
	writeFile(t, root, "b.py", "def two():\n    return 2\n")
	writeFile(t, root, "c.py", "def three():\n    return 3\n")
	writeFile(t, root, "d.ts", "import { two } from './b';\nexport const four = () => 4;\n")

	first, err := NewPipeline().Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := NewPipeline().Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output across runs over an unchanged tree")
	}
}

func TestAnalyzeSkipsUndecodableFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.py", "def ok():\n    pass\n")
	writeFile(t, root, "bad.py", string([]byte{0xff, 0xfe, 0xfd}))

	records, err := NewPipeline().Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("Expected the undecodable file to be skipped, got %d records", len(records))
	}
	if records[0].FilePath != "good.py" {
		t.Errorf("Expected good.py, got %s", records[0].FilePath)
	}
}

func TestAnalyzeEmptyTree(t *testing.T) {
	records, err := NewPipeline().Analyze(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestAnalyzeUsageHintIsSubstringOnly(t *testing.T) {
	root := t.TempDir()
	// "helper" appears only inside a comment; the hint fires anyway.
	writeFile(t, root, "a/x.py", "from . import y\n# helper is documented here\n")
	writeFile(t, root, "a/y.py", "def helper():\n    return 1\n")

	records, err := NewPipeline().Analyze(context.Background(), root)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !reflect.DeepEqual(records[0].UsageHints, []string{"y.py:helper"}) {
		t.Errorf("Expected comment co-occurrence to produce a hint, got %v", records[0].UsageHints)
	}
}
