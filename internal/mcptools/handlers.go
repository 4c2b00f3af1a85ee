package mcptools

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/primer/internal/compiler"
	"github.com/dusk-indust/primer/internal/export"
	"github.com/dusk-indust/primer/internal/graph"
	"github.com/dusk-indust/primer/internal/project"
)

// PrimerService holds the compiler used by MCP tool handlers.
type PrimerService struct {
	compiler *compiler.Compiler
}

// NewPrimerService creates a PrimerService around a shared Compiler.
func NewPrimerService(c *compiler.Compiler) *PrimerService {
	return &PrimerService{compiler: c}
}

// checkProjectPath validates that the given path exists and is a directory.
func checkProjectPath(path string) error {
	if path == "" {
		return fmt.Errorf("projectPath is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access projectPath: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("projectPath is not a directory: %s", path)
	}
	return nil
}

// CompileContext runs a full compilation and returns the document.
func (s *PrimerService) CompileContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompileContextInput,
) (*mcp.CallToolResult, CompileContextOutput, error) {
	if err := checkProjectPath(input.ProjectPath); err != nil {
		return nil, CompileContextOutput{}, err
	}

	result, err := s.compiler.Compile(ctx, compiler.Options{
		Root:         input.ProjectPath,
		BudgetTokens: input.BudgetTokens,
		MaxDepth:     input.MaxDepth,
	})
	if err != nil {
		return nil, CompileContextOutput{}, fmt.Errorf("compile: %w", err)
	}

	return nil, CompileContextOutput{
		Document:  result.Document,
		FileCount: len(result.Files),
		Truncated: result.Truncated,
	}, nil
}

// ProjectInfo detects and returns project facts without compiling.
func (s *PrimerService) ProjectInfo(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ProjectInfoInput,
) (*mcp.CallToolResult, ProjectInfoOutput, error) {
	if err := checkProjectPath(input.ProjectPath); err != nil {
		return nil, ProjectInfoOutput{}, err
	}
	info := project.Detect(input.ProjectPath)
	return nil, ProjectInfoOutput{Project: *info}, nil
}

// ImportGraph scans the project, builds the import graph and returns it as
// JSON or a Mermaid diagram.
func (s *PrimerService) ImportGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportGraphInput,
) (*mcp.CallToolResult, ImportGraphOutput, error) {
	if err := checkProjectPath(input.ProjectPath); err != nil {
		return nil, ImportGraphOutput{}, err
	}

	proj, files, err := s.compiler.Scan(ctx, compiler.Options{
		Root:     input.ProjectPath,
		MaxDepth: input.MaxDepth,
	})
	if err != nil {
		return nil, ImportGraphOutput{}, fmt.Errorf("scan: %w", err)
	}

	store := graph.NewMemStore()
	defer store.Close()
	if err := graph.Build(ctx, store, files); err != nil {
		return nil, ImportGraphOutput{}, fmt.Errorf("build graph: %w", err)
	}

	switch input.Format {
	case "mermaid":
		diagram, err := export.GenerateMermaid(ctx, store)
		if err != nil {
			return nil, ImportGraphOutput{}, fmt.Errorf("render mermaid: %w", err)
		}
		return nil, ImportGraphOutput{Format: "mermaid", Diagram: diagram}, nil
	case "", "json":
		data, err := export.MarshalGraphJSON(ctx, store, proj.Name)
		if err != nil {
			return nil, ImportGraphOutput{}, fmt.Errorf("render json: %w", err)
		}
		stats, err := store.Stats(ctx)
		if err != nil {
			return nil, ImportGraphOutput{}, err
		}
		hubs, err := store.Hubs(ctx, 2)
		if err != nil {
			return nil, ImportGraphOutput{}, err
		}
		return nil, ImportGraphOutput{
			Format: "json",
			Graph:  string(data),
			Stats:  stats,
			Hubs:   hubs,
		}, nil
	default:
		return nil, ImportGraphOutput{}, fmt.Errorf("unknown format: %s", input.Format)
	}
}

// ListLanguages reports the registered grammar languages and the file
// extensions the walker accepts.
func (s *PrimerService) ListLanguages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListLanguagesInput,
) (*mcp.CallToolResult, ListLanguagesOutput, error) {
	loader := s.compiler.Loader()
	langs := loader.Supported()
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, string(l))
	}
	return nil, ListLanguagesOutput{
		Languages:  names,
		Extensions: loader.SupportedExtensions(),
	}, nil
}
