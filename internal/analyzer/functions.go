package analyzer

import (
	"regexp"
	"strings"

	"github.com/gitvisually/backend/internal/models"
)

// Function extraction is a line-oriented heuristic, not a parse. It finds
// the defining line, then grows the span by indentation (Python) or brace
// balance (JS/TS family). Good enough for structure visualization; it makes
// no claim of grammatical correctness.

// ExtractFunctions returns the functions defined in content, in source
// order, deduplicated by name (first definition wins).
func ExtractFunctions(content, language string) []models.FunctionDef {
	var funcs []models.FunctionDef

	switch language {
	case "python":
		funcs = extractPythonFunctions(content)
	case "javascript", "typescript", "javascript xml", "typescript xml":
		funcs = extractJSFunctions(content)
	}

	return dedupeByName(funcs)
}

// FunctionNames is the names-only projection of ExtractFunctions.
func FunctionNames(funcs []models.FunctionDef) []string {
	names := make([]string, 0, len(funcs))
	for _, f := range funcs {
		names = append(names, f.Name)
	}
	return names
}

func extractPythonFunctions(content string) []models.FunctionDef {
	var funcs []models.FunctionDef
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); {
		line := lines[i]
		stripped := strings.TrimSpace(line)

		if !strings.HasPrefix(stripped, "def ") || !strings.Contains(stripped, "(") || !strings.Contains(stripped, ":") {
			i++
			continue
		}

		name := strings.TrimSpace(stripped[len("def "):strings.Index(stripped, "(")])
		if name == "" || strings.Contains(name, " ") {
			i++
			continue
		}

		indent := indentWidth(line)
		funcLines := []string{line}
		i++

		// The body is every following line indented deeper than the def
		// line. Blank and comment-only lines are kept regardless, so a
		// nested def is swallowed into the enclosing function's span.
		for i < len(lines) {
			current := lines[i]
			currentStripped := strings.TrimSpace(current)
			if currentStripped != "" && !strings.HasPrefix(currentStripped, "#") {
				if indentWidth(current) <= indent {
					break
				}
			}
			funcLines = append(funcLines, current)
			i++
		}

		funcs = append(funcs, models.FunctionDef{
			Name: name,
			Code: strings.Join(funcLines, "\n"),
		})
	}

	return funcs
}

// jsFunctionPatterns are tried in order per line; the first match wins.
var jsFunctionPatterns = []struct {
	re    *regexp.Regexp
	arrow bool
}{
	{regexp.MustCompile(`function\s+([a-zA-Z0-9_]+)\s*\(`), false},
	{regexp.MustCompile(`const\s+([a-zA-Z0-9_]+)\s*=\s*function\s*\(`), false},
	{regexp.MustCompile(`const\s+([a-zA-Z0-9_]+)\s*=\s*\(?.*?\)?\s*=>`), true},
	{regexp.MustCompile(`let\s+([a-zA-Z0-9_]+)\s*=\s*function\s*\(`), false},
	{regexp.MustCompile(`let\s+([a-zA-Z0-9_]+)\s*=\s*\(?.*?\)?\s*=>`), true},
	{regexp.MustCompile(`export\s+function\s+([a-zA-Z0-9_]+)\s*\(`), false},
	{regexp.MustCompile(`export\s+const\s+([a-zA-Z0-9_]+)\s*=\s*\(?.*?\)?\s*=>`), true},
}

func extractJSFunctions(content string) []models.FunctionDef {
	var funcs []models.FunctionDef
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); {
		stripped := strings.TrimSpace(lines[i])

		matched := false
		for _, pat := range jsFunctionPatterns {
			m := pat.re.FindStringSubmatch(stripped)
			if m == nil {
				continue
			}
			matched = true
			name := m[1]
			line := lines[i]

			// An arrow expression with no opening brace is complete on
			// its defining line.
			if pat.arrow && !strings.Contains(stripped, "{") {
				funcs = append(funcs, models.FunctionDef{Name: name, Code: line})
				i++
				break
			}

			funcLines := []string{line}
			braces := strings.Count(stripped, "{") - strings.Count(stripped, "}")
			i++
			for i < len(lines) && braces > 0 {
				current := lines[i]
				funcLines = append(funcLines, current)
				braces += strings.Count(current, "{") - strings.Count(current, "}")
				i++
			}

			funcs = append(funcs, models.FunctionDef{
				Name: name,
				Code: strings.Join(funcLines, "\n"),
			})
			break
		}

		if !matched {
			i++
		}
	}

	return funcs
}

func dedupeByName(funcs []models.FunctionDef) []models.FunctionDef {
	seen := make(map[string]bool, len(funcs))
	unique := funcs[:0:0]
	for _, f := range funcs {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		unique = append(unique, f)
	}
	return unique
}

// indentWidth is the number of leading whitespace characters on a line.
func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
