package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/gitvisually/backend/internal/models"
)

type GraphWriter struct {
	client *Neo4jClient
}

func NewGraphWriter(client *Neo4jClient) *GraphWriter {
	return &GraphWriter{client: client}
}

// WriteAnalysis writes a full analysis result to the graph: file nodes
// first, then their functions, then the dependency edges between files.
func (w *GraphWriter) WriteAnalysis(ctx context.Context, repoID string, records []*models.FileRecord) error {
	functionsTotal := 0

	for _, record := range records {
		if err := w.WriteFileRecord(ctx, repoID, record); err != nil {
			return fmt.Errorf("failed to write file %s: %w", record.FilePath, err)
		}
		functionsTotal += len(record.Functions)
	}

	for _, record := range records {
		for _, dep := range record.Dependencies {
			if err := w.WriteDependencyEdge(ctx, repoID, record.FilePath, dep); err != nil {
				return fmt.Errorf("failed to write dependency %s -> %s: %w", record.FilePath, dep, err)
			}
		}
	}

	return w.UpdateRepositoryStats(ctx, repoID, len(records), functionsTotal)
}

// WriteFileRecord stores one file together with its declared functions,
// external libraries and usage hints.
func (w *GraphWriter) WriteFileRecord(ctx context.Context, repoID string, record *models.FileRecord) error {
	fileID := uuid.New().String()

	_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $repoId})
			MERGE (f:File {repoId: $repoId, path: $path})
			SET f.id = $id,
			    f.fileName = $fileName,
			    f.fileType = $fileType,
			    f.fileSize = $fileSize,
			    f.language = $language,
			    f.externalLibraries = $externalLibraries,
			    f.usageHints = $usageHints
			MERGE (r)-[:CONTAINS]->(f)
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"id":                fileID,
			"repoId":            repoID,
			"path":              record.FilePath,
			"fileName":          record.Metadata.FileName,
			"fileType":          record.Metadata.FileType,
			"fileSize":          record.Metadata.FileSize,
			"language":          record.Language,
			"externalLibraries": record.ExternalLibraries,
			"usageHints":        record.UsageHints,
		})
		return nil, err
	})
	if err != nil {
		return err
	}

	for _, fn := range record.Functions {
		if err := w.writeFunction(ctx, repoID, record.FilePath, fn); err != nil {
			return err
		}
	}
	return nil
}

func (w *GraphWriter) writeFunction(ctx context.Context, repoID, filePath string, fn models.FunctionDef) error {
	_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (f:File {repoId: $repoId, path: $filePath})
			CREATE (fn:Function {
				id: $id,
				name: $name,
				code: $code,
				filePath: $filePath,
				repoId: $repoId
			})
			CREATE (f)-[:DECLARES]->(fn)
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"id":       uuid.New().String(),
			"repoId":   repoID,
			"filePath": filePath,
			"name":     fn.Name,
			"code":     fn.Code,
		})
		return nil, err
	})
	return err
}

// WriteDependencyEdge links two file nodes of the same repository.
func (w *GraphWriter) WriteDependencyEdge(ctx context.Context, repoID, fromPath, toPath string) error {
	_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a:File {repoId: $repoId, path: $fromPath})
			MATCH (b:File {repoId: $repoId, path: $toPath})
			MERGE (a)-[:DEPENDS_ON]->(b)
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"repoId":   repoID,
			"fromPath": fromPath,
			"toPath":   toPath,
		})
		return nil, err
	})
	return err
}

// ClearRepository removes all analysis data for a repository, keeping the
// repository node itself.
func (w *GraphWriter) ClearRepository(ctx context.Context, repoID string) error {
	_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $repoId})-[:CONTAINS]->(f:File)
			OPTIONAL MATCH (f)-[:DECLARES]->(fn)
			DETACH DELETE fn, f
		`
		_, err := tx.Run(ctx, query, map[string]any{"repoId": repoID})
		return nil, err
	})
	return err
}

func (w *GraphWriter) UpdateRepositoryStats(ctx context.Context, repoID string, filesCount, functionsCount int) error {
	_, err := w.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (r:Repository {id: $repoId})
			SET r.filesCount = $filesCount,
			    r.functionsCount = $functionsCount,
			    r.status = 'ready'
		`
		_, err := tx.Run(ctx, query, map[string]any{
			"repoId":         repoID,
			"filesCount":     filesCount,
			"functionsCount": functionsCount,
		})
		return nil, err
	})
	return err
}
