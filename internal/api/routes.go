package api

import (
	"github.com/gofiber/fiber/v3"
)

func SetupRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/api")

	// Analysis
	api.Post("/analyze", h.AnalyzeRepository)

	// Stored analyses
	repos := api.Group("/repositories")
	repos.Get("/", h.ListRepositories)
	repos.Get("/:id", h.GetRepository)
	repos.Delete("/:id", h.DeleteRepository)
	repos.Get("/:id/files", h.GetRepositoryFiles)
	repos.Get("/:id/graph", h.GetRepositoryGraph)
}
