package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config controls MCP server startup.
type Config struct {
	Expose  string
	Version string
}

// RunServer starts the MCP stdio server with the requested tool set.
func RunServer(ctx context.Context, cfg Config) error {
	server, err := NewServer(NewSession(), cfg)
	if err != nil {
		return err
	}

	return mcpserver.ServeStdio(server, mcpserver.WithStdioContextFunc(func(_ context.Context) context.Context {
		return ctx
	}))
}

// NewServer builds an MCP server exposing the tools selected by cfg.Expose
// over session.
func NewServer(session *Session, cfg Config) (*mcpserver.MCPServer, error) {
	expose := strings.TrimSpace(cfg.Expose)
	if expose == "" {
		expose = "all"
	}

	toolsToEnable, err := ParseExposeList(expose)
	if err != nil {
		return nil, err
	}

	builder := NewToolBuilder(session)
	serverTools, err := builder.BuildTools(toolsToEnable)
	if err != nil {
		return nil, err
	}

	hooks := &mcpserver.Hooks{}
	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcptypes.MCPMethod, message any) {
		msgJSON, _ := json.Marshal(message)
		slog.Debug("mcp request", "id", id, "method", method, "message", string(msgJSON))
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcptypes.MCPMethod, message any, err error) {
		slog.Debug("mcp error", "id", id, "method", method, "error", err)
	})

	server := mcpserver.NewMCPServer(
		"lifo",
		cfg.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
		mcpserver.WithHooks(hooks),
	)

	for _, tool := range serverTools {
		server.AddTool(tool.Tool, tool.Handler)
	}
	return server, nil
}

// ParseExposeList converts the --expose flag into a deduplicated, ordered tool list.
// Supports groups: all, read, write. Individual tools can be referenced either by
// their short name (e.g., "push") or full MCP name (e.g., "lifo_push").
func ParseExposeList(raw string) ([]string, error) {
	tokenList := strings.Split(raw, ",")

	var tokens []string
	for _, t := range tokenList {
		token := strings.TrimSpace(strings.ToLower(t))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}

	if len(tokens) == 0 {
		tokens = []string{"all"}
	}

	result := make([]string, 0, len(allTools))
	seen := make(map[string]struct{})

	addSet := func(names []string) {
		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			result = append(result, name)
		}
	}

	for _, token := range tokens {
		if group, ok := groupMap[token]; ok {
			addSet(group)
			continue
		}

		if alias, ok := aliasMap[token]; ok {
			addSet([]string{alias})
			continue
		}

		if _, ok := aliasMapFull[token]; ok {
			addSet([]string{token})
			continue
		}

		return nil, fmt.Errorf("unknown tool or group in --expose: %s", token)
	}

	return result, nil
}

var (
	allTools = []string{
		ToolPush,
		ToolPop,
		ToolPeek,
		ToolEmpty,
		ToolClear,
	}

	readTools = []string{
		ToolPeek,
		ToolEmpty,
	}

	writeTools = []string{
		ToolPush,
		ToolPop,
		ToolClear,
	}

	groupMap = map[string][]string{
		"all":   allTools,
		"read":  readTools,
		"write": writeTools,
	}

	aliasMap = map[string]string{
		"push":  ToolPush,
		"pop":   ToolPop,
		"peek":  ToolPeek,
		"empty": ToolEmpty,
		"clear": ToolClear,
	}

	aliasMapFull = func() map[string]string {
		out := make(map[string]string, len(allTools))
		for _, fullName := range allTools {
			out[fullName] = fullName
		}
		return out
	}()
)
