package graph

import (
	"context"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu       sync.RWMutex
	files    map[string]FileNode
	packages map[string]PackageNode
	edges    []Edge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		files:    make(map[string]FileNode),
		packages: make(map[string]PackageNode),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddFile stores a file node keyed by its path.
func (m *MemStore) AddFile(_ context.Context, node FileNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[node.Path] = node
	return nil
}

// AddPackage stores an external package node keyed by name.
func (m *MemStore) AddPackage(_ context.Context, node PackageNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packages[node.Name] = node
	return nil
}

// AddEdge appends an edge to the internal slice.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetFile returns the file node for the given path, or nil if not found.
func (m *MemStore) GetFile(_ context.Context, path string) (*FileNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// GetAllEdges returns a copy of all edges in the store.
func (m *MemStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// Hubs counts inbound IMPORTS edges per file and returns the files at or
// above the threshold, most-imported first.
func (m *MemStore) Hubs(_ context.Context, minInbound int) ([]Hub, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inbound := make(map[string]int)
	for _, e := range m.edges {
		if e.Kind == EdgeKindImports {
			inbound[e.Target]++
		}
	}

	var hubs []Hub
	for path, count := range inbound {
		if count >= minInbound {
			hubs = append(hubs, Hub{Path: path, Inbound: count})
		}
	}
	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].Inbound != hubs[j].Inbound {
			return hubs[i].Inbound > hubs[j].Inbound
		}
		return hubs[i].Path < hubs[j].Path
	})
	return hubs, nil
}

// Stats returns counts of all node and edge types in the graph.
func (m *MemStore) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &Stats{
		FileCount:    len(m.files),
		PackageCount: len(m.packages),
		EdgeCount:    len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
