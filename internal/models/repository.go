package models

import "time"

type Repository struct {
	ID             string    `json:"id"`
	URL            string    `json:"url"`
	Name           string    `json:"name"`
	Commit         string    `json:"commit,omitempty"`
	LastAnalyzed   time.Time `json:"lastAnalyzed"`
	Status         string    `json:"status"` // pending, analyzing, ready, error
	FilesCount     int       `json:"filesCount"`
	FunctionsCount int       `json:"functionsCount"`
}

// AnalyzeRequest is the body of POST /api/analyze. Query and UserIntent are
// aliases; Query wins when both are set.
type AnalyzeRequest struct {
	RepoURL    string `json:"repo_url"`
	Query      string `json:"query"`
	UserIntent string `json:"user_intent"`
}

// AnalyzeResponse echoes the request identity and carries the per-file
// analysis records.
type AnalyzeResponse struct {
	RepoURL    string        `json:"repo_url"`
	UserIntent string        `json:"user_intent"`
	Analysis   []*FileRecord `json:"analysis"`
}
