// Package graph models the resolved import graph of a project: source
// files, the external packages they pull in, and the file-to-file import
// edges recovered by the best-effort resolver.
package graph

// --- Enums ---

// EdgeKind classifies relationships in the import graph.
type EdgeKind string

const (
	// EdgeKindImports links an importing file to a resolved project file.
	EdgeKindImports EdgeKind = "IMPORTS"

	// EdgeKindDepends links a file to an external package name.
	EdgeKindDepends EdgeKind = "DEPENDS_ON"
)

// --- Models ---

// FileNode is one project source file in the graph.
type FileNode struct {
	Path       string `json:"path"`
	Language   string `json:"language"`
	Signatures int    `json:"signatures"`
}

// PackageNode is one external package referenced by the project.
type PackageNode struct {
	Name string `json:"name"`
}

// Edge is a directed relationship. For IMPORTS both ends are file paths;
// for DEPENDS_ON the target is an external package name.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
}

// Hub is a file with a high inbound import count.
type Hub struct {
	Path    string `json:"path"`
	Inbound int    `json:"inbound"`
}

// DirFlow is a coarse directory-to-directory import flow.
type DirFlow struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// Stats summarizes an import graph.
type Stats struct {
	FileCount    int `json:"fileCount"`
	PackageCount int `json:"packageCount"`
	EdgeCount    int `json:"edgeCount"`
}
