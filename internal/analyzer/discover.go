package analyzer

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/gitvisually/backend/internal/models"
)

// Discover walks the tree rooted at rootPath and returns the absolute paths
// of all files with an analyzable extension. The result is sorted so that
// repeated runs over an unchanged tree produce identical output.
func Discover(rootPath string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := models.LanguageByExtension[filepath.Ext(path)]; ok {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			files = append(files, abs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
