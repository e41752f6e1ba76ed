// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes asyncforge capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/asyncforge"
	"github.com/erraggy/asyncforge/bindings"
)

const serverInstructions = `asyncforge MCP server: compiles service descriptions into AsyncAPI 3.0.0 documents, validates AsyncAPI documents, and lists the supported protocol bindings.

Configuration: All defaults are configurable via ASYNCFORGE_MCP_* environment variables set in your MCP client config.

Key settings:
- ASYNCFORGE_MCP_CACHE_ENABLED (default: true): disable input caching entirely
- ASYNCFORGE_MCP_CACHE_FILE_TTL (default: 15m): cache TTL for file inputs
- ASYNCFORGE_MCP_LIST_LIMIT (default: 100): default page size for diagnostics
- ASYNCFORGE_MCP_VALIDATE_STRICT (default: false): enable strict validation by default
- ASYNCFORGE_MCP_VALIDATE_NO_WARNINGS (default: false): suppress warnings by default
- ASYNCFORGE_MCP_COLLISION (default: overwrite): collision policy for compile (overwrite, warn, error)
- ASYNCFORGE_MCP_CONCURRENCY (default: 1): parallel binding generation for compile

Caching: Parsed inputs are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// registry is the binding registry every tool compiles against.
var registry = bindings.DefaultRegistry()

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		parseCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "asyncforge", Version: asyncforge.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile",
		Description: "Compile a service description into an AsyncAPI 3.0.0 document. Provide the description as a YAML file, inline YAML content, or a Go package directory annotated with //asyncapi: directives. Runs discovery, generation, processing, binding attachment and validation, and returns the document with its diagnostics. Use output_dir to write the document to disk instead of returning it inline. Use offset/limit to paginate diagnostics.",
	}, handleCompile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an AsyncAPI 3.0.0 document. Checks required fields, operation actions, and that every channel, message, server, security scheme and schema reference resolves. Returns errors and warnings with dotted path locations. Use no_warnings to focus on errors first. Use offset/limit to paginate through results.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bindings",
		Description: "List the protocol and cloud bindings the compiler supports, with each binding's version, the levels it attaches to (channel, operation, message, server), and its features. Filter by type or level.",
	}, handleBindings)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
