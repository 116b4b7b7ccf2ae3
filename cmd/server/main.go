package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/gitvisually/backend/internal/api"
	"github.com/gitvisually/backend/internal/config"
	"github.com/gitvisually/backend/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	// The analyzer works without a graph store; persistence endpoints just
	// report unavailable when Neo4j is not reachable.
	var dbClient *db.Neo4jClient
	client, err := db.NewNeo4jClient(context.Background(), db.Neo4jConfig{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUser,
		Password: cfg.Neo4jPass,
	})
	if err != nil {
		log.Printf("Neo4j unavailable, running without persistence: %v", err)
	} else {
		dbClient = client
		defer dbClient.Close()
	}

	app := fiber.New(fiber.Config{
		AppName: "Git Visually Backend",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "gitvisually-backend",
		})
	})

	h := api.NewHandler(cfg, dbClient)
	api.SetupRoutes(app, h)

	log.Printf("Starting Git Visually backend on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
