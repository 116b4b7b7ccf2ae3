package db

import (
	"context"
	"testing"

	"github.com/gitvisually/backend/internal/models"
)

func testConfig() Neo4jConfig {
	return Neo4jConfig{
		URI:      "bolt://localhost:7687",
		Username: "neo4j",
		Password: "gitvisually_password",
	}
}

func setupTestNeo4j(t *testing.T) *Neo4jClient {
	t.Helper()
	client, err := NewNeo4jClient(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func setupTestRepository(t *testing.T, ctx context.Context, client *Neo4jClient) string {
	t.Helper()
	repo, err := CreateRepository(ctx, client, &models.Repository{
		URL:    "https://github.com/owner/fixture",
		Name:   "fixture",
		Status: "analyzing",
	})
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}
	return repo.ID
}

func cleanupTestRepository(t *testing.T, ctx context.Context, client *Neo4jClient, repoID string) {
	t.Helper()
	if err := DeleteRepository(ctx, client, repoID); err != nil {
		t.Errorf("Failed to clean up test repository: %v", err)
	}
}

func TestNewNeo4jClient(t *testing.T) {
	// This test requires Neo4j running
	// Skip in CI without Neo4j
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client := setupTestNeo4j(t)
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Failed to ping: %v", err)
	}
}
