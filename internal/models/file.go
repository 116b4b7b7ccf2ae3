package models

import "path/filepath"

// FileRecord is the per-file analysis output. JSON field names follow the
// wire contract consumed by the visualization frontend.
type FileRecord struct {
	FilePath          string        `json:"file_path"`
	Metadata          FileMetadata  `json:"metadata"`
	Language          string        `json:"language"`
	Functions         []FunctionDef `json:"functions"`
	Dependencies      []string      `json:"dependencies"`
	UsageHints        []string      `json:"used_functions_from_dependencies_hints"`
	ExternalLibraries []string      `json:"external_libraries"`
}

type FileMetadata struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

// FunctionDef is one extracted function: its name and the verbatim source
// span it covers.
type FunctionDef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Language labels by extension
var LanguageByExtension = map[string]string{
	".py":  "python",
	".js":  "javascript",
	".ts":  "typescript",
	".jsx": "javascript xml",
	".tsx": "typescript xml",
}

const LanguageUnknown = "Unknown"

// DetectLanguage maps a file path to its language label, or "Unknown" when
// the extension is not one we analyze.
func DetectLanguage(path string) string {
	if lang, ok := LanguageByExtension[filepath.Ext(path)]; ok {
		return lang
	}
	return LanguageUnknown
}
