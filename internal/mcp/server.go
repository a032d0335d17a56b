package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/propgen/internal/config"
	"github.com/mvp-joe/propgen/internal/scan"
	"github.com/mvp-joe/propgen/internal/watcher"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config  *MCPServerConfig
	scanner *scan.Scanner
	watcher watcher.FileWatcher
	mcp     *server.MCPServer
}

// NewMCPServer creates a new MCP server exposing the property tools for a project.
func NewMCPServer(ctx context.Context, serverConfig *MCPServerConfig, cfg *config.Config) (*MCPServer, error) {
	if serverConfig == nil {
		serverConfig = DefaultMCPServerConfig()
	}

	scanner, err := scan.NewScanner(serverConfig.RootDir, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	mcpServer := server.NewMCPServer(
		serverConfig.Name,
		serverConfig.Version,
		server.WithToolCapabilities(true),
	)

	AddDescribePropertyTool(mcpServer, serverConfig.RootDir, cfg.Extensions())
	AddListPropertiesTool(mcpServer, scanner, serverConfig.RootDir)
	AddCheckDeclarationTool(mcpServer)

	// Drop cached results for files edited while the server runs.
	filter := func(path string) bool {
		rel, err := scanner.Discovery().Rel(path)
		return err == nil && scanner.Discovery().Matches(rel)
	}
	fw, err := watcher.NewFileWatcher([]string{serverConfig.RootDir}, filter, cfg.Watch.Debounce)
	if err != nil {
		scanner.Close()
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &MCPServer{
		config:  serverConfig,
		scanner: scanner,
		watcher: fw,
		mcp:     mcpServer,
	}, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.watcher.Start(ctx, s.invalidate); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MCPServer) invalidate(files []string) {
	for _, f := range files {
		s.scanner.Forget(f)
	}
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	var err error
	if s.watcher != nil {
		err = s.watcher.Stop()
	}
	if s.scanner != nil {
		s.scanner.Close()
	}
	return err
}
