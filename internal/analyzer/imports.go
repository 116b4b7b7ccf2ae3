package analyzer

import (
	"path/filepath"
	"strings"
)

var jsExtensions = []string{".js", ".ts", ".tsx", ".jsx"}
var jsIndexFiles = []string{"/index.js", "/index.ts", "/index.jsx", "/index.tsx"}

// FindDependencies resolves a file's import statements against the set of
// discovered files and returns the absolute paths of the targets, in source
// order, without duplicates or self-edges. Imports that do not resolve to a
// discovered file are dropped here; the external detector reports them
// separately.
func FindDependencies(content, filePath string, repoFiles map[string]bool) []string {
	var deps []string
	seen := make(map[string]bool)
	currentDir := filepath.Dir(filePath)
	ext := strings.ToLower(filepath.Ext(filePath))

	add := func(resolved string) {
		if resolved != filePath && !seen[resolved] {
			seen[resolved] = true
			deps = append(deps, resolved)
		}
	}

	switch {
	case ext == ".py":
		for _, line := range strings.Split(content, "\n") {
			module := pythonModuleRef(line)
			if module == "" {
				continue
			}
			if resolved, ok := resolvePythonImport(currentDir, module, repoFiles); ok {
				add(resolved)
			}
		}

	case ext == ".js" || ext == ".ts" || ext == ".jsx" || ext == ".tsx":
		for _, line := range strings.Split(content, "\n") {
			spec := jsModuleSpecifier(strings.TrimSpace(line))
			if spec == "" || !isRelativeSpecifier(spec) {
				continue
			}
			if resolved, ok := resolveJSImport(currentDir, spec, repoFiles); ok {
				add(resolved)
			}
		}
	}

	return deps
}

// pythonModuleRef derives the dotted module reference from a Python import
// line, or "" when the line is not an import. For `import a, b` only the
// first listed module is considered.
func pythonModuleRef(line string) string {
	stripped := strings.TrimSpace(line)
	if stripped == "" || strings.HasPrefix(stripped, "#") {
		return ""
	}

	if strings.HasPrefix(stripped, "import ") {
		part := strings.TrimSpace(stripped[len("import "):])
		part = strings.Split(part, " as ")[0]
		part = strings.Split(part, ",")[0]
		part = strings.Split(part, "#")[0]
		return strings.TrimSpace(part)
	}

	if strings.HasPrefix(stripped, "from ") {
		fromPart := strings.TrimSpace(stripped[len("from "):])
		if !strings.Contains(fromPart, " import ") {
			return ""
		}
		module := strings.TrimSpace(strings.Split(strings.Split(fromPart, " import ")[0], "#")[0])
		if module != "" && strings.Trim(module, ".") == "" {
			// `from . import name`: the module part carries no path, so
			// resolve the first imported name relative to the dot base.
			imported := strings.SplitN(fromPart, " import ", 2)[1]
			first := strings.Split(imported, ",")[0]
			first = strings.Split(first, " as ")[0]
			first = strings.TrimSpace(strings.Split(first, "#")[0])
			if first != "" {
				module += first
			}
		}
		return module
	}

	return ""
}

// resolvePythonImport maps a dotted module reference to a discovered file.
// Relative references climb one directory per leading dot beyond the first;
// absolute references are probed under the importing directory and then
// under every ancestor up to the filesystem root. Each candidate base is
// tested as <base>/<path>.py and <base>/<path>/__init__.py.
func resolvePythonImport(basePath, module string, repoFiles map[string]bool) (string, bool) {
	sep := string(filepath.Separator)
	var candidates []string

	if strings.HasPrefix(module, ".") {
		dots := len(module) - len(strings.TrimLeft(module, "."))
		clean := module[dots:]
		parts := strings.Split(basePath, sep)
		for n := 0; n < dots-1 && len(parts) > 0; n++ {
			parts = parts[:len(parts)-1]
		}
		base := strings.Join(parts, sep)
		if base == "" {
			base = basePath
		}
		if modulePath := strings.ReplaceAll(clean, ".", sep); modulePath != "" {
			candidates = append(candidates,
				filepath.Join(base, modulePath+".py"),
				filepath.Join(base, modulePath, "__init__.py"),
			)
		}
	} else {
		modulePath := strings.ReplaceAll(module, ".", sep)
		if modulePath != "" {
			for base := basePath; ; base = filepath.Dir(base) {
				candidates = append(candidates,
					filepath.Join(base, modulePath+".py"),
					filepath.Join(base, modulePath, "__init__.py"),
				)
				if filepath.Dir(base) == base {
					break
				}
			}
		}
	}

	for _, candidate := range candidates {
		normalized := filepath.Clean(candidate)
		if repoFiles[normalized] {
			return normalized, true
		}
	}
	return "", false
}

// jsModuleSpecifier pulls the quoted module specifier out of an import or
// require line, or returns "" when the line carries none.
func jsModuleSpecifier(stripped string) string {
	if stripped == "" || strings.HasPrefix(stripped, "//") || strings.HasPrefix(stripped, "/*") {
		return ""
	}

	if strings.Contains(stripped, "import") && strings.Contains(stripped, " from ") {
		part := strings.TrimSpace(stripped[strings.LastIndex(stripped, " from ")+len(" from "):])
		return quotedPrefix(part)
	}

	if strings.HasPrefix(stripped, "import ") {
		part := strings.TrimSpace(stripped[len("import "):])
		return quotedPrefix(part)
	}

	if idx := strings.Index(stripped, "require("); idx != -1 {
		after := stripped[idx+len("require("):]
		for _, q := range []string{`"`, `'`} {
			if strings.Contains(after, q) {
				return strings.Split(after, q)[1]
			}
		}
	}

	return ""
}

// quotedPrefix returns the content of a leading quoted string, or "".
func quotedPrefix(s string) string {
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return ""
	}
	return strings.Split(s[1:], string(s[0]))[0]
}

func isRelativeSpecifier(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || strings.HasPrefix(spec, "/")
}

// resolveJSImport maps a relative specifier to a discovered file. The bare
// path is tried first, then each known extension, then each index file.
func resolveJSImport(basePath, spec string, repoFiles map[string]bool) (string, bool) {
	path := strings.Trim(spec, `'"`)
	if !isRelativeSpecifier(path) {
		return "", false
	}

	// A leading slash anchors at the filesystem root, like os.path.join.
	base := path
	if !strings.HasPrefix(path, "/") {
		base = basePath + string(filepath.Separator) + path
	}

	suffixes := append(append([]string{""}, jsExtensions...), jsIndexFiles...)
	for _, suffix := range suffixes {
		candidate := filepath.Clean(base + suffix)
		if repoFiles[candidate] {
			return candidate, true
		}
	}
	return "", false
}
