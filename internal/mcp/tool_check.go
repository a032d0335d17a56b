package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	mcputils "github.com/mvp-joe/propgen/internal/mcp-utils"
	"github.com/mvp-joe/propgen/internal/property"
)

type checkDeclarationRequest struct {
	Text string `json:"text"`
}

type checkDeclarationResponse struct {
	Text        string `json:"text"`
	Declaration bool   `json:"declaration"`
}

// AddCheckDeclarationTool registers the is_property_declaration tool.
func AddCheckDeclarationTool(s *server.MCPServer) {
	tool := mcp.NewTool(
		"is_property_declaration",
		mcp.WithDescription("Report whether a single line of PHP is a simple property declaration such as 'private $name'."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("One line of PHP source")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args checkDeclarationRequest
		if err := mcputils.CoerceBindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		return marshalToolResponse(checkDeclaration(args))
	})
}

func checkDeclaration(args checkDeclarationRequest) checkDeclarationResponse {
	return checkDeclarationResponse{
		Text:        args.Text,
		Declaration: property.IsPropertyDeclaration(args.Text),
	}
}
