package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/gitvisually/backend/internal/analyzer"
	"github.com/gitvisually/backend/internal/config"
	"github.com/gitvisually/backend/internal/db"
	"github.com/gitvisually/backend/internal/git"
	"github.com/gitvisually/backend/internal/models"
)

type Handler struct {
	cfg      *config.Config
	dbClient *db.Neo4jClient
	gitSvc   *git.GitService
	pipeline *analyzer.Pipeline
	writer   *db.GraphWriter
	reader   *db.GraphReader
}

// NewHandler wires the analysis service. dbClient may be nil; the analyze
// endpoint then works without persistence and the browse endpoints return
// 503.
func NewHandler(cfg *config.Config, dbClient *db.Neo4jClient) *Handler {
	h := &Handler{
		cfg:      cfg,
		dbClient: dbClient,
		gitSvc:   git.NewGitService(cfg.ReposPath),
		pipeline: analyzer.NewPipeline(),
	}
	if dbClient != nil {
		h.writer = db.NewGraphWriter(dbClient)
		h.reader = db.NewGraphReader(dbClient)
	}
	return h
}

// AnalyzeRepository clones the requested repository, runs the structural
// analysis and returns the per-file records.
func (h *Handler) AnalyzeRepository(c fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if !git.ValidateURL(req.RepoURL) {
		return c.Status(400).JSON(fiber.Map{"error": "invalid GitHub repository URL"})
	}

	intent := req.Query
	if intent == "" {
		intent = req.UserIntent
	}

	repoPath, err := h.gitSvc.Clone(c.Context(), req.RepoURL)
	if err != nil {
		return c.Status(502).JSON(fiber.Map{"error": "clone failed: " + err.Error()})
	}

	records, err := h.pipeline.Analyze(c.Context(), repoPath)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	if !h.cfg.KeepClones {
		if err := h.gitSvc.Cleanup(repoPath); err != nil {
			log.Printf("Failed to clean up %s: %v", repoPath, err)
		}
	}

	// Persistence never delays or fails the response.
	if h.writer != nil {
		go h.persistAnalysis(req.RepoURL, repoPath, records)
	}

	return c.JSON(models.AnalyzeResponse{
		RepoURL:    req.RepoURL,
		UserIntent: intent,
		Analysis:   records,
	})
}

func (h *Handler) persistAnalysis(repoURL, repoPath string, records []*models.FileRecord) {
	ctx := context.Background()

	repo := &models.Repository{
		URL:    repoURL,
		Name:   git.ExtractRepoName(repoURL),
		Status: "analyzing",
	}
	if commit, err := h.gitSvc.GetCurrentCommit(ctx, repoPath); err == nil {
		repo.Commit = commit
	}

	created, err := db.CreateRepository(ctx, h.dbClient, repo)
	if err != nil {
		log.Printf("Failed to store repository %s: %v", repoURL, err)
		return
	}

	if err := h.writer.WriteAnalysis(ctx, created.ID, records); err != nil {
		log.Printf("Failed to store analysis for %s: %v", repoURL, err)
		db.UpdateRepositoryStatus(ctx, h.dbClient, created.ID, "error")
	}
}

// ListRepositories returns all stored analyses
func (h *Handler) ListRepositories(c fiber.Ctx) error {
	if h.dbClient == nil {
		return c.Status(503).JSON(fiber.Map{"error": "graph store not configured"})
	}
	repos, err := db.ListRepositories(c.Context(), h.dbClient)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if repos == nil {
		repos = []*models.Repository{}
	}
	return c.JSON(repos)
}

// GetRepository returns a single stored analysis record
func (h *Handler) GetRepository(c fiber.Ctx) error {
	if h.dbClient == nil {
		return c.Status(503).JSON(fiber.Map{"error": "graph store not configured"})
	}
	repo, err := db.GetRepository(c.Context(), h.dbClient, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if repo == nil {
		return c.Status(404).JSON(fiber.Map{"error": "repository not found"})
	}
	return c.JSON(repo)
}

// DeleteRepository removes a stored analysis
func (h *Handler) DeleteRepository(c fiber.Ctx) error {
	if h.dbClient == nil {
		return c.Status(503).JSON(fiber.Map{"error": "graph store not configured"})
	}
	if err := db.DeleteRepository(c.Context(), h.dbClient, c.Params("id")); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(204)
}

// GetRepositoryFiles returns the stored file records for a repository
func (h *Handler) GetRepositoryFiles(c fiber.Ctx) error {
	if h.reader == nil {
		return c.Status(503).JSON(fiber.Map{"error": "graph store not configured"})
	}
	files, err := h.reader.GetFileTree(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if files == nil {
		files = []db.FileNode{}
	}
	return c.JSON(files)
}

// GetRepositoryGraph returns graph data for visualization
func (h *Handler) GetRepositoryGraph(c fiber.Ctx) error {
	if h.reader == nil {
		return c.Status(503).JSON(fiber.Map{"error": "graph store not configured"})
	}

	graphType := c.Query("type", "structure")
	if graphType != "structure" && graphType != "dependencies" {
		return c.Status(400).JSON(fiber.Map{"error": "invalid graph type, must be 'structure' or 'dependencies'"})
	}

	graph, err := h.reader.GetGraph(c.Context(), c.Params("id"), graphType)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(graph)
}
