package line_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/yamafumi/line-mcp/internal/config"
	"github.com/yamafumi/line-mcp/internal/line"
	"github.com/yamafumi/line-mcp/internal/server"
	"github.com/yamafumi/line-mcp/internal/tools/common"
)

// Delivery targets accepted by the 'target' argument.
const (
	targetGroup    = "group"
	targetPersonal = "personal"
)

// RegisterLineTools registers all LINE messaging tools with the MCP server
func RegisterLineTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	sendMessageTool := mcp.NewTool("send_line_message",
		mcp.WithDescription("Send a text message to a LINE group or personal chat"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Text message to send"),
		),
		mcp.WithString("group_id",
			mcp.Description("LINE group ID to send to (default: the configured group)"),
		),
		mcp.WithString("target",
			mcp.Description("Delivery target: 'group' (default) or 'personal'"),
			mcp.Enum(targetGroup, targetPersonal),
		),
		mcp.WithString("user_id",
			mcp.Description("LINE user ID for personal delivery (default: the configured user)"),
		),
	)

	s.AddTool(sendMessageTool, common.InstrumentedToolHandlerWithOperation("send_line_message", "push", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendMessage(ctx, request, sc)
		}))

	return nil
}

// handleSendMessage handles the send_line_message tool. All failures,
// including bad arguments, are reported as a JSON result document rather
// than a protocol error, so callers always get a machine-readable outcome.
func handleSendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	// Type assert arguments to map
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		args = make(map[string]interface{})
	}

	message, ok := args["message"].(string)
	if !ok || message == "" {
		return failureResult("Missing or invalid 'message' parameter")
	}

	to, errMsg := resolveTarget(args, sc.Config())
	if errMsg != "" {
		return failureResult(errMsg)
	}

	return toolResult(sc.LineClient().Push(ctx, to, message))
}

// resolveTarget determines the destination ID for a send. The second return
// value is a non-empty failure message when no destination can be resolved.
func resolveTarget(args map[string]interface{}, cfg *config.Config) (string, string) {
	target := targetGroup
	if val, ok := args["target"].(string); ok && val != "" {
		target = val
	}

	switch target {
	case targetGroup:
		if groupID, ok := args["group_id"].(string); ok && groupID != "" {
			return groupID, ""
		}
		if cfg.DefaultGroupID != "" {
			return cfg.DefaultGroupID, ""
		}
		return "", "No group ID available: provide 'group_id' or set LINE_GROUP_ID"

	case targetPersonal:
		if userID, ok := args["user_id"].(string); ok && userID != "" {
			return userID, ""
		}
		if cfg.PersonalUserID != "" {
			return cfg.PersonalUserID, ""
		}
		return "", "No user ID available: provide 'user_id' or set LINE_PERSONAL_USER_ID"

	default:
		return "", fmt.Sprintf("Invalid 'target' parameter: %q (must be 'group' or 'personal')", target)
	}
}

// failureResult builds an error tool result carrying a SendResult document.
func failureResult(message string) (*mcp.CallToolResult, error) {
	return toolResult(line.SendResult{Success: false, Error: message})
}

// toolResult serializes a SendResult as the tool's text content. The MCP
// error flag mirrors the Success field so instrumented handlers and callers
// that only check IsError still see failures.
func toolResult(res line.SendResult) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result: %v", err)), nil
	}

	result := mcp.NewToolResultText(string(payload))
	result.IsError = !res.Success
	return result, nil
}
