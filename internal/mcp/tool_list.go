package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	mcputils "github.com/mvp-joe/propgen/internal/mcp-utils"
	"github.com/mvp-joe/propgen/internal/scan"
)

// AddListPropertiesTool registers the list_properties tool with an MCP server.
// Results come from the scanner's content-hash cache when files are unchanged.
func AddListPropertiesTool(s *server.MCPServer, scanner *scan.Scanner, rootDir string) {
	tool := mcp.NewTool(
		"list_properties",
		mcp.WithDescription("List every property declared in the given PHP files with accessor metadata. Omit paths to scan the whole project."),
		mcp.WithArray("paths",
			mcp.Description("PHP file paths, relative to the project root or absolute")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, createListPropertiesHandler(scanner, rootDir))
}

func createListPropertiesHandler(scanner *scan.Scanner, rootDir string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListPropertiesRequest
		if err := mcputils.CoerceBindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		var (
			report *scan.Report
			err    error
		)
		if len(args.Paths) == 0 {
			report, err = scanner.Scan(ctx, nil)
		} else {
			files := make([]string, 0, len(args.Paths))
			for _, p := range args.Paths {
				files = append(files, resolvePath(rootDir, p))
			}
			report, err = scanner.ScanFiles(ctx, files, nil)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
		}

		return marshalToolResponse(report)
	}
}
