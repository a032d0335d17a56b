package mcp

import "github.com/mvp-joe/propgen/internal/property"

// MCPServerConfig contains configuration for the MCP server.
type MCPServerConfig struct {
	// RootDir resolves relative file paths in tool arguments.
	RootDir string
	// Name and Version are reported to MCP clients.
	Name    string
	Version string
}

// DefaultMCPServerConfig returns a config rooted at the working directory.
func DefaultMCPServerConfig() *MCPServerConfig {
	return &MCPServerConfig{
		RootDir: ".",
		Name:    "propgen-mcp",
		Version: "1.0.0",
	}
}

// DescribePropertyRequest holds the describe_property tool arguments.
// Line and Character are zero-based.
type DescribePropertyRequest struct {
	Path      string `json:"path"`
	Source    string `json:"source,omitempty"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
}

// DescribePropertyResponse is returned by describe_property.
type DescribePropertyResponse struct {
	Path        string             `json:"path,omitempty"`
	Line        int                `json:"line"`
	Declaration bool               `json:"declaration"`
	Property    property.Accessors `json:"property"`
}

// ListPropertiesRequest holds the list_properties tool arguments.
type ListPropertiesRequest struct {
	Paths []string `json:"paths"`
}
