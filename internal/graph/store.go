package graph

import (
	"context"
	"io"
)

// Store is the interface for the import-graph backend.
// Implementations: MemStore (always available), KuzuStore (cgo builds,
// persistent).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddFile(ctx context.Context, node FileNode) error
	AddPackage(ctx context.Context, node PackageNode) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations.
	GetFile(ctx context.Context, path string) (*FileNode, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	// Hubs returns files with inbound import count >= minInbound, sorted by
	// inbound count descending, path ascending for equal counts.
	Hubs(ctx context.Context, minInbound int) ([]Hub, error)

	// Stats.
	Stats(ctx context.Context) (*Stats, error)
}
