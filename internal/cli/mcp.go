package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/propgen/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for PHP property tools",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
ask propgen about PHP properties.

The MCP server provides:
- describe_property: accessor metadata for the property at a cursor position
- list_properties: every property in a set of files or the whole project
- is_property_declaration: classify a single line of PHP
- Communicates via stdio (standard MCP transport)

Example:
  propgen mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := loadConfig(projectPath)
	if err != nil {
		return err
	}

	// stdout carries the protocol, so banners go to stderr.
	fmt.Fprintf(os.Stderr, "Propgen MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project: %s\n\n", projectPath)

	mcpConfig := mcp.DefaultMCPServerConfig()
	mcpConfig.RootDir = projectPath
	mcpConfig.Version = Version

	server, err := mcp.NewMCPServer(ctx, mcpConfig, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
