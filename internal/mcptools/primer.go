// Package mcptools exposes the context compiler over the Model Context
// Protocol so coding assistants can prime themselves on a project.
package mcptools

import (
	"github.com/dusk-indust/primer/internal/graph"
	"github.com/dusk-indust/primer/internal/project"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// CompileContextInput is the input for the compile_context MCP tool.
type CompileContextInput struct {
	ProjectPath  string `json:"projectPath" jsonschema:"the absolute path to the project to compile"`
	BudgetTokens int    `json:"budgetTokens,omitempty" jsonschema:"total token budget for the output document (default: 8000)"`
	MaxDepth     int    `json:"maxDepth,omitempty" jsonschema:"maximum directory traversal depth (default: 8)"`
}

// CompileContextOutput is the result of the compile_context MCP tool.
type CompileContextOutput struct {
	Document  string   `json:"document"`
	FileCount int      `json:"fileCount"`
	Truncated []string `json:"truncated,omitempty"`
}

// ProjectInfoInput is the input for the project_info MCP tool.
type ProjectInfoInput struct {
	ProjectPath string `json:"projectPath" jsonschema:"the absolute path to the project to inspect"`
}

// ProjectInfoOutput is the result of the project_info MCP tool.
type ProjectInfoOutput struct {
	Project project.Info `json:"project"`
}

// ImportGraphInput is the input for the import_graph MCP tool.
type ImportGraphInput struct {
	ProjectPath string `json:"projectPath" jsonschema:"the absolute path to the project to analyze"`
	Format      string `json:"format,omitempty" jsonschema:"output format: json or mermaid (default: json)"`
	MaxDepth    int    `json:"maxDepth,omitempty" jsonschema:"maximum directory traversal depth (default: 8)"`
}

// ImportGraphOutput is the result of the import_graph MCP tool.
type ImportGraphOutput struct {
	Format  string       `json:"format"`
	Graph   string       `json:"graph,omitempty"`
	Stats   *graph.Stats `json:"stats,omitempty"`
	Hubs    []graph.Hub  `json:"hubs,omitempty"`
	Diagram string       `json:"diagram,omitempty"`
}

// ListLanguagesInput is the input for the list_languages MCP tool.
type ListLanguagesInput struct{}

// ListLanguagesOutput is the result of the list_languages MCP tool.
type ListLanguagesOutput struct {
	Languages  []string `json:"languages"`
	Extensions []string `json:"extensions"`
}
