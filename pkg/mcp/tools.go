package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	ToolPush  = "lifo_push"
	ToolPop   = "lifo_pop"
	ToolPeek  = "lifo_peek"
	ToolEmpty = "lifo_empty"
	ToolClear = "lifo_clear"
)

// ToolBuilder wires stack operations into MCP tool handlers.
type ToolBuilder struct {
	session *Session
}

func NewToolBuilder(session *Session) ToolBuilder {
	return ToolBuilder{session: session}
}

// BuildTools returns the server tools for toolNames, in order.
func (b ToolBuilder) BuildTools(toolNames []string) ([]mcpserver.ServerTool, error) {
	factories := map[string]func() mcpserver.ServerTool{
		ToolPush:  b.buildPushTool,
		ToolPop:   b.buildPopTool,
		ToolPeek:  b.buildPeekTool,
		ToolEmpty: b.buildEmptyTool,
		ToolClear: b.buildClearTool,
	}

	var tools []mcpserver.ServerTool
	for _, name := range toolNames {
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown tool: %s", name)
		}
		tools = append(tools, factory())
	}
	return tools, nil
}

type valueResult struct {
	Value *int32 `json:"value"`
}

func (b ToolBuilder) buildPushTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolPush,
			mcptypes.WithDescription("Push a 32-bit integer onto the stack"),
			mcptypes.WithNumber("value",
				mcptypes.Description("Integer to push"),
				mcptypes.Required(),
			),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			raw, err := req.RequireFloat("value")
			if err != nil {
				return mcptypes.NewToolResultError("value is required"), nil
			}
			if raw != math.Trunc(raw) || raw < math.MinInt32 || raw > math.MaxInt32 {
				return mcptypes.NewToolResultErrorf("value must be a 32-bit integer: %v", raw), nil
			}
			value := int32(raw)
			b.session.Push(value)
			slog.Debug("pushed", "value", value)
			return mcptypes.NewToolResultJSON(valueResult{Value: &value})
		},
	}
}

func (b ToolBuilder) buildPopTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolPop,
			mcptypes.WithDescription("Remove and return the top of the stack (null when empty)"),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			value := b.session.Pop()
			slog.Debug("popped", "present", value.IsPresent())
			return mcptypes.NewToolResultJSON(valueResult{Value: value.ToPointer()})
		},
	}
}

func (b ToolBuilder) buildPeekTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolPeek,
			mcptypes.WithDescription("Return the top of the stack without removing it (null when empty)"),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			return mcptypes.NewToolResultJSON(valueResult{Value: b.session.Peek().ToPointer()})
		},
	}
}

func (b ToolBuilder) buildEmptyTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolEmpty,
			mcptypes.WithDescription("Report whether the stack is empty"),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			return mcptypes.NewToolResultJSON(map[string]bool{"empty": b.session.IsEmpty()})
		},
	}
}

func (b ToolBuilder) buildClearTool() mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool: mcptypes.NewTool(
			ToolClear,
			mcptypes.WithDescription("Remove every element from the stack"),
		),
		Handler: func(ctx context.Context, req mcptypes.CallToolRequest) (*mcptypes.CallToolResult, error) {
			b.session.Clear()
			slog.Debug("cleared")
			return mcptypes.NewToolResultJSON(map[string]bool{"empty": true})
		},
	}
}
