package analyzer

import (
	"reflect"
	"testing"
)

func TestPythonExternalUnresolved(t *testing.T) {
	repo := fileSet("/repo/a/x.py")

	ext := FindExternalImports("import requests\n", "/repo/a/x.py", repo)
	if !reflect.DeepEqual(ext, []string{"requests"}) {
		t.Errorf("Expected [requests], got %v", ext)
	}
}

func TestPythonExternalSuppressedBySameDirFile(t *testing.T) {
	repo := fileSet("/repo/a/x.py", "/repo/a/y.py")

	ext := FindExternalImports("import y\n", "/repo/a/x.py", repo)
	if len(ext) != 0 {
		t.Errorf("Expected same-directory module to be suppressed, got %v", ext)
	}
}

func TestPythonAncestorModuleStillExternal(t *testing.T) {
	// The external check probes only the importing file's directory. A
	// module that resolves via an ancestor yields a dependency edge AND an
	// external entry; both sides of that asymmetry are asserted here.
	repo := fileSet("/repo/a/x.py", "/repo/helpers.py")
	content := "import helpers\n"

	deps := FindDependencies(content, "/repo/a/x.py", repo)
	if len(deps) != 1 || deps[0] != "/repo/helpers.py" {
		t.Fatalf("Expected internal edge to /repo/helpers.py, got %v", deps)
	}

	ext := FindExternalImports(content, "/repo/a/x.py", repo)
	if !reflect.DeepEqual(ext, []string{"helpers"}) {
		t.Errorf("Expected [helpers] despite the internal edge, got %v", ext)
	}
}

func TestPythonExternalCommaSeparated(t *testing.T) {
	repo := fileSet("/repo/x.py")

	ext := FindExternalImports("import os, sys\n", "/repo/x.py", repo)
	if !reflect.DeepEqual(ext, []string{"os", "sys"}) {
		t.Errorf("Expected [os sys], got %v", ext)
	}
}

func TestPythonExternalFromImport(t *testing.T) {
	repo := fileSet("/repo/x.py")

	ext := FindExternalImports("from fastapi import FastAPI\n", "/repo/x.py", repo)
	if !reflect.DeepEqual(ext, []string{"fastapi"}) {
		t.Errorf("Expected [fastapi], got %v", ext)
	}
}

func TestPythonRelativeNeverExternal(t *testing.T) {
	repo := fileSet("/repo/a/x.py")

	ext := FindExternalImports("from . import y\nfrom .z import w\n", "/repo/a/x.py", repo)
	if len(ext) != 0 {
		t.Errorf("Expected relative imports to never be external, got %v", ext)
	}
}

func TestJSExternalBareSpecifier(t *testing.T) {
	repo := fileSet("/repo/src/a.js")

	ext := FindExternalImports("import React from 'react';\nconst express = require(\"express\");\n", "/repo/src/a.js", repo)
	if !reflect.DeepEqual(ext, []string{"react", "express"}) {
		t.Errorf("Expected [react express], got %v", ext)
	}
}

func TestJSRelativeSpecifierNotExternal(t *testing.T) {
	repo := fileSet("/repo/src/a.js")

	ext := FindExternalImports("import x from './local';\nimport y from '/abs/path';\n", "/repo/src/a.js", repo)
	if len(ext) != 0 {
		t.Errorf("Expected relative and absolute specifiers to be skipped, got %v", ext)
	}
}

func TestJSExternalSideEffectImport(t *testing.T) {
	repo := fileSet("/repo/src/a.ts")

	ext := FindExternalImports("import 'reflect-metadata';\n", "/repo/src/a.ts", repo)
	if !reflect.DeepEqual(ext, []string{"reflect-metadata"}) {
		t.Errorf("Expected [reflect-metadata], got %v", ext)
	}
}

func TestExternalsDeduplicated(t *testing.T) {
	repo := fileSet("/repo/x.py")

	ext := FindExternalImports("import numpy\nimport numpy\n", "/repo/x.py", repo)
	if !reflect.DeepEqual(ext, []string{"numpy"}) {
		t.Errorf("Expected a single numpy entry, got %v", ext)
	}
}
