package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewPrimerMCPServer creates an MCP server with all 4 context tools registered.
func NewPrimerMCPServer(svc *PrimerService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "primer",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile_context",
		Description: "Compile a project into a bounded-size Markdown context document: overview, directory structure, key files, per-file signature map, and derived knowledge.",
	}, svc.CompileContext)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "project_info",
		Description: "Detect project facts without compiling: type, name, frameworks, tooling, and monorepo workspaces.",
	}, svc.ProjectInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_graph",
		Description: "Build the project's resolved import graph and return it as JSON (with hub files and stats) or a Mermaid diagram.",
	}, svc.ImportGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_languages",
		Description: "List the languages with registered grammars and the file extensions the walker accepts.",
	}, svc.ListLanguages)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts an HTTP server exposing the MCP tools on the given address.
func RunHTTP(ctx context.Context, svc *PrimerService, addr string) error {
	server := NewPrimerMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
