package analyzer

import (
	"path/filepath"
	"strings"
)

// FindExternalImports reports the bare import targets in a file that do not
// correspond to a discovered file. For Python only the importing file's own
// directory is probed; this is deliberately narrower than the internal
// resolver's ancestor search, so a module resolvable via an ancestor is
// reported external even though it also yields a dependency edge.
func FindExternalImports(content, filePath string, repoFiles map[string]bool) []string {
	var external []string
	seen := make(map[string]bool)
	currentDir := filepath.Dir(filePath)
	ext := strings.ToLower(filepath.Ext(filePath))

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			external = append(external, name)
		}
	}

	switch {
	case ext == ".py":
		for _, line := range strings.Split(content, "\n") {
			stripped := strings.TrimSpace(line)
			if stripped == "" || strings.HasPrefix(stripped, "#") {
				continue
			}

			if strings.HasPrefix(stripped, "import ") {
				// import a, b: every listed module is checked.
				for _, name := range strings.Split(stripped[len("import "):], ",") {
					module := strings.TrimSpace(strings.Split(name, "#")[0])
					module = strings.TrimSpace(strings.Split(module, " as ")[0])
					if module != "" && !strings.HasPrefix(module, ".") && !pythonLocalFile(currentDir, module, repoFiles) {
						add(module)
					}
				}
			} else if strings.HasPrefix(stripped, "from ") {
				fromPart := strings.TrimSpace(stripped[len("from "):])
				if !strings.Contains(fromPart, "import") {
					continue
				}
				module := strings.TrimSpace(strings.Split(strings.Split(fromPart, " import ")[0], "#")[0])
				if module != "" && !strings.HasPrefix(module, ".") && !pythonLocalFile(currentDir, module, repoFiles) {
					add(module)
				}
			}
		}

	case ext == ".js" || ext == ".ts" || ext == ".jsx" || ext == ".tsx":
		for _, line := range strings.Split(content, "\n") {
			spec := jsExternalSpecifier(strings.TrimSpace(line))
			if spec != "" && !strings.HasPrefix(spec, ".") && !strings.HasPrefix(spec, "/") {
				add(spec)
			}
		}
	}

	return external
}

// pythonLocalFile reports whether the dotted module maps to a discovered
// .py file directly under dir. This is the single probe the external check
// uses; it never climbs ancestors.
func pythonLocalFile(dir, module string, repoFiles map[string]bool) bool {
	segments := append([]string{dir}, strings.Split(module, ".")...)
	candidate := filepath.Clean(filepath.Join(segments...) + ".py")
	return repoFiles[candidate]
}

// jsExternalSpecifier extracts the quoted module specifier for the external
// check. Unlike the dependency scan it splits on the first "from", with or
// without surrounding whitespace.
func jsExternalSpecifier(stripped string) string {
	if stripped == "" || strings.HasPrefix(stripped, "//") || strings.HasPrefix(stripped, "/*") {
		return ""
	}

	if strings.Contains(stripped, "import") && strings.Contains(stripped, "from") {
		idx := strings.Index(stripped, "from")
		part := strings.TrimSpace(stripped[idx+len("from"):])
		return quotedSpan(part)
	}

	if strings.HasPrefix(stripped, "import ") {
		part := strings.TrimSpace(stripped[len("import "):])
		return quotedSpan(part)
	}

	if idx := strings.Index(stripped, "require("); idx != -1 {
		after := strings.TrimSpace(stripped[idx+len("require("):])
		return quotedSpan(after)
	}

	return ""
}

// quotedSpan returns the content of a leading quoted string whose closing
// quote is present, or "".
func quotedSpan(s string) string {
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return ""
	}
	if end := strings.IndexByte(s[1:], s[0]); end != -1 {
		return s[1 : 1+end]
	}
	return ""
}
