package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/gitvisually/backend/internal/models"
)

func CreateRepository(ctx context.Context, client *Neo4jClient, repo *models.Repository) (*models.Repository, error) {
	repo.ID = uuid.New().String()

	_, err := client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CREATE (r:Repository {
				id: $id,
				url: $url,
				name: $name,
				commit: $commit,
				status: $status,
				lastAnalyzed: $lastAnalyzed,
				filesCount: 0,
				functionsCount: 0
			})
			RETURN r
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"id":           repo.ID,
			"url":          repo.URL,
			"name":         repo.Name,
			"commit":       repo.Commit,
			"status":       repo.Status,
			"lastAnalyzed": time.Now().UTC(),
		})
		return nil, err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	return repo, nil
}

func GetRepository(ctx context.Context, client *Neo4jClient, id string) (*models.Repository, error) {
	result, err := client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $id})
			RETURN r.id AS id, r.url AS url, r.name AS name,
			       r.commit AS commit, r.status AS status,
			       r.lastAnalyzed AS lastAnalyzed, r.filesCount AS filesCount,
			       r.functionsCount AS functionsCount
		`
		result, err := tx.Run(ctx, query, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}

		if result.Next(ctx) {
			return recordToRepository(result.Record()), nil
		}
		return nil, nil
	})

	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*models.Repository), nil
}

func ListRepositories(ctx context.Context, client *Neo4jClient) ([]*models.Repository, error) {
	result, err := client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository)
			RETURN r.id AS id, r.url AS url, r.name AS name,
			       r.commit AS commit, r.status AS status,
			       r.lastAnalyzed AS lastAnalyzed, r.filesCount AS filesCount,
			       r.functionsCount AS functionsCount
			ORDER BY r.lastAnalyzed DESC
		`
		result, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		var repos []*models.Repository
		for result.Next(ctx) {
			repos = append(repos, recordToRepository(result.Record()))
		}
		return repos, result.Err()
	})

	if err != nil {
		return nil, err
	}
	return result.([]*models.Repository), nil
}

func UpdateRepositoryStatus(ctx context.Context, client *Neo4jClient, id, status string) error {
	_, err := client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $id})
			SET r.status = $status, r.lastAnalyzed = $lastAnalyzed
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"id":           id,
			"status":       status,
			"lastAnalyzed": time.Now().UTC(),
		})
		return nil, err
	})
	return err
}

func DeleteRepository(ctx context.Context, client *Neo4jClient, id string) error {
	_, err := client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $id})
			OPTIONAL MATCH (r)-[:CONTAINS]->(f:File)
			OPTIONAL MATCH (f)-[:DECLARES]->(fn)
			DETACH DELETE fn, f, r
		`
		_, err := tx.Run(ctx, query, map[string]any{"id": id})
		return nil, err
	})
	return err
}

func recordToRepository(record *neo4j.Record) *models.Repository {
	repo := &models.Repository{}

	if id, ok := record.Get("id"); ok && id != nil {
		repo.ID = id.(string)
	}
	if url, ok := record.Get("url"); ok && url != nil {
		repo.URL = url.(string)
	}
	if name, ok := record.Get("name"); ok && name != nil {
		repo.Name = name.(string)
	}
	if commit, ok := record.Get("commit"); ok && commit != nil {
		repo.Commit = commit.(string)
	}
	if status, ok := record.Get("status"); ok && status != nil {
		repo.Status = status.(string)
	}
	if lastAnalyzed, ok := record.Get("lastAnalyzed"); ok && lastAnalyzed != nil {
		if t, ok := lastAnalyzed.(time.Time); ok {
			repo.LastAnalyzed = t
		}
	}
	if filesCount, ok := record.Get("filesCount"); ok && filesCount != nil {
		repo.FilesCount = int(filesCount.(int64))
	}
	if functionsCount, ok := record.Get("functionsCount"); ok && functionsCount != nil {
		repo.FunctionsCount = int(functionsCount.(int64))
	}

	return repo
}
