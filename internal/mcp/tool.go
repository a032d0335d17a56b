package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	mcputils "github.com/mvp-joe/propgen/internal/mcp-utils"
	"github.com/mvp-joe/propgen/internal/property"
)

// AddDescribePropertyTool registers the describe_property tool with an MCP server.
// Paths must carry one of extensions; an empty list accepts any file.
func AddDescribePropertyTool(s *server.MCPServer, rootDir string, extensions []string) {
	tool := mcp.NewTool(
		"describe_property",
		mcp.WithDescription("Describe the PHP class property declared at a cursor position. Returns the property name, type, type hint, doc block description and suggested getter/setter names."),
		mcp.WithString("path",
			mcp.Description("PHP file path, relative to the project root or absolute")),
		mcp.WithString("source",
			mcp.Description("PHP source text to use instead of reading path")),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("Zero-based line of the property declaration")),
		mcp.WithNumber("character",
			mcp.Description("Zero-based column of the cursor on that line (default: 0)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, createDescribePropertyHandler(rootDir, extensions))
}

func createDescribePropertyHandler(rootDir string, extensions []string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args DescribePropertyRequest
		if err := mcputils.CoerceBindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		source := args.Source
		if source == "" {
			if args.Path == "" {
				return mcp.NewToolResultError("path or source parameter is required"), nil
			}
			if !hasExtension(args.Path, extensions) {
				return mcp.NewToolResultError(fmt.Sprintf("%s is not a PHP source file (expected %s)", args.Path, strings.Join(extensions, ", "))), nil
			}
			data, err := os.ReadFile(resolvePath(rootDir, args.Path))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
			}
			source = string(data)
		}

		doc := property.NewTextDocument(source)
		prop, err := property.FromPosition(doc, property.Position{Line: args.Line, Character: args.Character})
		if errors.Is(err, property.ErrNoPropertyFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no property found at %d:%d", args.Line, args.Character)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return marshalToolResponse(DescribePropertyResponse{
			Path:        args.Path,
			Line:        args.Line,
			Declaration: property.IsPropertyDeclaration(doc.LineAt(args.Line).Text),
			Property:    prop.Accessors(),
		})
	}
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
