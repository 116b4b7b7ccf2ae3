package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type GitService struct {
	basePath string
}

func NewGitService(basePath string) *GitService {
	return &GitService{basePath: basePath}
}

// ValidateURL accepts only https://github.com/<owner>/<repo> locators.
func ValidateURL(url string) bool {
	if !strings.Contains(url, "https://github.com/") {
		return false
	}
	rest := strings.Replace(url, "https://github.com/", "", 1)
	parts := strings.Split(rest, "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// Clone clones a repository to the base path with depth 1. If the working
// copy already exists it is refreshed with a pull instead.
func (s *GitService) Clone(ctx context.Context, url string) (string, error) {
	repoName := ExtractRepoName(url)
	repoPath := filepath.Join(s.basePath, repoName)

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		return repoPath, s.Pull(ctx, repoPath)
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create repos directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, repoPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git clone failed: %w", err)
	}

	return repoPath, nil
}

// Pull pulls latest changes
func (s *GitService) Pull(ctx context.Context, repoPath string) error {
	cmd := exec.CommandContext(ctx, "git", "pull", "--ff-only")
	cmd.Dir = repoPath
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git pull failed: %w", err)
	}
	return nil
}

// GetCurrentCommit returns the current commit hash
func (s *GitService) GetCurrentCommit(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// Cleanup removes a working copy. Retained clones are the default; callers
// only invoke this when the service is configured not to keep them.
func (s *GitService) Cleanup(repoPath string) error {
	if repoPath == "" {
		return nil
	}
	// Refuse to remove anything outside the managed base path.
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return err
	}
	base, err := filepath.Abs(s.basePath)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(abs, base+string(filepath.Separator)) {
		return fmt.Errorf("refusing to remove %s: outside repos directory", repoPath)
	}
	return os.RemoveAll(abs)
}

// ExtractRepoName extracts repository name from URL
func ExtractRepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")

	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		parts := strings.Split(url, "/")
		return parts[len(parts)-1]
	}

	if strings.Contains(url, ":") {
		parts := strings.Split(url, ":")
		if len(parts) > 1 {
			pathParts := strings.Split(parts[1], "/")
			return pathParts[len(pathParts)-1]
		}
	}

	return url
}

// GetRepoPath returns the full path for a repository
func (s *GitService) GetRepoPath(repoName string) string {
	return filepath.Join(s.basePath, repoName)
}
