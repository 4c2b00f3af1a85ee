package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dusk-indust/primer/internal/graph"
)

// GraphExport is the top-level JSON export structure for an import graph.
type GraphExport struct {
	Project    string       `json:"project"`
	ExportedAt string       `json:"exportedAt"`
	Stats      *graph.Stats `json:"stats,omitempty"`
	Hubs       []graph.Hub  `json:"hubs,omitempty"`
	Edges      []graph.Edge `json:"edges"`
}

// BuildGraphExport assembles a GraphExport from a graph store.
func BuildGraphExport(ctx context.Context, store graph.Store, projectName string) (*GraphExport, error) {
	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edges: %w", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	hubs, err := store.Hubs(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("get hubs: %w", err)
	}
	if edges == nil {
		edges = []graph.Edge{}
	}
	return &GraphExport{
		Project:    projectName,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Stats:      stats,
		Hubs:       hubs,
		Edges:      edges,
	}, nil
}

// MarshalGraphJSON renders the export as indented JSON.
func MarshalGraphJSON(ctx context.Context, store graph.Store, projectName string) ([]byte, error) {
	exp, err := BuildGraphExport(ctx, store, projectName)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal graph export: %w", err)
	}
	return data, nil
}
