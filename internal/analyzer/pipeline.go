package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gitvisually/backend/internal/models"
)

const maxWorkers = 4

// Pipeline runs the two-pass repository analysis: per-file scanning first,
// then cross-file resolution over the completed caches.
type Pipeline struct{}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// analysisContext carries the pass-1 outputs pass 2 needs. It is owned by
// Analyze and never escapes the run.
type analysisContext struct {
	fileSet map[string]bool
	content map[string]string
	funcs   map[string][]string
}

// Analyze walks the tree at rootPath and produces one record per readable
// source file, in sorted discovery order. Files that cannot be read or are
// not valid UTF-8 are skipped without failing the run.
func (p *Pipeline) Analyze(ctx context.Context, rootPath string) ([]*models.FileRecord, error) {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	files, err := Discover(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	ac := &analysisContext{
		fileSet: make(map[string]bool, len(files)),
		content: make(map[string]string, len(files)),
		funcs:   make(map[string][]string, len(files)),
	}
	for _, f := range files {
		ac.fileSet[f] = true
	}

	// Pass 1: each file is independent, so process them concurrently into
	// per-index slots. The WaitGroup is the barrier pass 2 depends on: the
	// function cache must be complete before any dependency is resolved.
	slots := make([]*models.FileRecord, len(files))
	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, maxWorkers)

	for i, path := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			record, content := p.processFile(absRoot, path, ac.fileSet)
			if record == nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			slots[i] = record
			ac.content[path] = content
			ac.funcs[path] = FunctionNames(record.Functions)
		}(i, path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]*models.FileRecord, 0, len(files))
	for _, r := range slots {
		if r != nil {
			records = append(records, r)
		}
	}

	// Pass 2: resolve dependencies against the full discovered set, then
	// derive usage hints from the caches.
	for _, record := range records {
		absPath := filepath.Join(absRoot, record.FilePath)
		content := ac.content[absPath]

		deps := FindDependencies(content, absPath, ac.fileSet)
		record.Dependencies = make([]string, 0, len(deps))
		for _, dep := range deps {
			rel, err := filepath.Rel(absRoot, dep)
			if err != nil {
				return nil, fmt.Errorf("failed to relativize %s: %w", dep, err)
			}
			record.Dependencies = append(record.Dependencies, rel)
		}

		record.UsageHints = usageHints(content, deps, ac.funcs)
	}

	return records, nil
}

// processFile builds the pass-1 portion of a record. A nil record means the
// file is excluded from the run entirely.
func (p *Pipeline) processFile(rootPath, path string, fileSet map[string]bool) (*models.FileRecord, string) {
	raw, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(raw) {
		return nil, ""
	}
	content := string(raw)

	rel, err := filepath.Rel(rootPath, path)
	if err != nil {
		return nil, ""
	}

	ext := filepath.Ext(path)
	language := models.DetectLanguage(path)

	functions := ExtractFunctions(content, language)
	if functions == nil {
		functions = []models.FunctionDef{}
	}

	external := FindExternalImports(content, path, fileSet)
	if external == nil {
		external = []string{}
	}

	return &models.FileRecord{
		FilePath: rel,
		Metadata: models.FileMetadata{
			FileName: filepath.Base(path),
			FileType: ext,
			FileSize: int64(len(raw)),
		},
		Language:          language,
		Functions:         functions,
		Dependencies:      []string{},
		UsageHints:        []string{},
		ExternalLibraries: external,
	}, content
}

// usageHints cross-references the importing file's raw text against the
// function names defined in each resolved dependency. A hit is textual
// co-occurrence only; false positives are expected and accepted.
func usageHints(content string, deps []string, funcsByPath map[string][]string) []string {
	hints := []string{}
	for _, dep := range deps {
		for _, name := range funcsByPath[dep] {
			if strings.Contains(content, name) {
				hints = append(hints, filepath.Base(dep)+":"+name)
			}
		}
	}
	return hints
}
