package db

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type GraphReader struct {
	client *Neo4jClient
}

func NewGraphReader(client *Neo4jClient) *GraphReader {
	return &GraphReader{client: client}
}

type FileNode struct {
	ID                string   `json:"id"`
	Path              string   `json:"path"`
	Language          string   `json:"language"`
	Functions         []string `json:"functions"`
	ExternalLibraries []string `json:"externalLibraries"`
	UsageHints        []string `json:"usageHints"`
}

type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

type GraphNode struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// GetFileTree returns all analyzed files with their function names for a
// repository, ordered by path.
func (r *GraphReader) GetFileTree(ctx context.Context, repoID string) ([]FileNode, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (rep:Repository {id: $repoId})-[:CONTAINS]->(f:File)
			OPTIONAL MATCH (f)-[:DECLARES]->(fn:Function)
			WITH f, collect(fn.name) as functions
			RETURN f.id as id, f.path as path, f.language as language,
			       functions,
			       f.externalLibraries as externalLibraries,
			       f.usageHints as usageHints
			ORDER BY f.path
		`
		records, err := tx.Run(ctx, query, map[string]any{"repoId": repoID})
		if err != nil {
			return nil, err
		}

		var files []FileNode
		for records.Next(ctx) {
			rec := records.Record()

			id, _ := rec.Get("id")
			path, _ := rec.Get("path")
			language, _ := rec.Get("language")
			functionsRaw, _ := rec.Get("functions")
			externalRaw, _ := rec.Get("externalLibraries")
			hintsRaw, _ := rec.Get("usageHints")

			file := FileNode{
				ID:                asString(id),
				Path:              asString(path),
				Language:          asString(language),
				Functions:         asStringList(functionsRaw),
				ExternalLibraries: asStringList(externalRaw),
				UsageHints:        asStringList(hintsRaw),
			}
			files = append(files, file)
		}

		if err := records.Err(); err != nil {
			return nil, err
		}
		return files, nil
	})

	if err != nil {
		return nil, err
	}
	return result.([]FileNode), nil
}

// GetGraph returns graph data for visualization. Type "structure" yields
// Repository→File containment plus File→Function declarations; type
// "dependencies" yields File→File import edges.
func (r *GraphReader) GetGraph(ctx context.Context, repoID, graphType string) (*GraphData, error) {
	var query string

	switch graphType {
	case "dependencies":
		query = `
			MATCH (rep:Repository {id: $repoId})-[:CONTAINS]->(f:File)
			OPTIONAL MATCH (f)-[d:DEPENDS_ON]->(target:File)
			RETURN f, d, target
		`
	case "structure":
		query = `
			MATCH (rep:Repository {id: $repoId})-[:CONTAINS]->(f:File)
			OPTIONAL MATCH (f)-[:DECLARES]->(fn:Function)
			RETURN f, fn
		`
	default:
		return nil, fmt.Errorf("unknown graph type: %s", graphType)
	}

	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, map[string]any{"repoId": repoID})
		if err != nil {
			return nil, err
		}

		graph := &GraphData{Nodes: []GraphNode{}, Edges: []GraphEdge{}}
		seenNodes := make(map[string]bool)

		addFileNode := func(node neo4j.Node) string {
			id := asString(node.Props["id"])
			if id == "" || seenNodes[id] {
				return id
			}
			seenNodes[id] = true
			graph.Nodes = append(graph.Nodes, GraphNode{
				ID:    id,
				Label: asString(node.Props["path"]),
				Type:  "File",
				Props: map[string]any{
					"language": node.Props["language"],
					"fileSize": node.Props["fileSize"],
				},
			})
			return id
		}

		for records.Next(ctx) {
			rec := records.Record()

			fileRaw, _ := rec.Get("f")
			fileNode, ok := fileRaw.(neo4j.Node)
			if !ok {
				continue
			}
			fileID := addFileNode(fileNode)

			if graphType == "dependencies" {
				targetRaw, _ := rec.Get("target")
				if target, ok := targetRaw.(neo4j.Node); ok {
					targetID := addFileNode(target)
					graph.Edges = append(graph.Edges, GraphEdge{
						ID:     fileID + "->" + targetID,
						Source: fileID,
						Target: targetID,
						Type:   "DEPENDS_ON",
					})
				}
				continue
			}

			fnRaw, _ := rec.Get("fn")
			if fn, ok := fnRaw.(neo4j.Node); ok {
				fnID := asString(fn.Props["id"])
				if fnID != "" && !seenNodes[fnID] {
					seenNodes[fnID] = true
					graph.Nodes = append(graph.Nodes, GraphNode{
						ID:    fnID,
						Label: asString(fn.Props["name"]),
						Type:  "Function",
						Props: map[string]any{
							"filePath": fn.Props["filePath"],
						},
					})
				}
				if fnID != "" {
					graph.Edges = append(graph.Edges, GraphEdge{
						ID:     fileID + "->" + fnID,
						Source: fileID,
						Target: fnID,
						Type:   "DECLARES",
					})
				}
			}
		}

		if err := records.Err(); err != nil {
			return nil, err
		}
		return graph, nil
	})

	if err != nil {
		return nil, err
	}
	return result.(*GraphData), nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asStringList(v any) []string {
	out := []string{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
