package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mvp-joe/propgen/internal/config"
	"github.com/mvp-joe/propgen/internal/scan"
	"github.com/mvp-joe/propgen/internal/watcher"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Scan a PHP project and re-scan files as they change",
	Long: `Watch performs a full scan, then listens for file system changes and
re-extracts properties from every saved PHP file after watch.debounce.
Unchanged files are served from the in-memory cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	return watchProject(ctx, cmd.OutOrStdout(), rootDir, cfg)
}

// watchProject scans rootDir, then re-scans changed files until ctx is done.
func watchProject(ctx context.Context, out io.Writer, rootDir string, cfg *config.Config) error {
	scanner, err := scan.NewScanner(rootDir, cfg)
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}
	defer scanner.Close()

	report, err := scanner.Scan(ctx, NewCLIProgressReporter(os.Stderr, quietFlag))
	if err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}
	if err := printReport(out, report, false); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher([]string{rootDir}, projectFilter(scanner.Discovery()), cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	if err := fw.Start(ctx, func(files []string) {
		rescan(ctx, out, scanner, files)
	}); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	if !quietFlag {
		log.Printf("Watching %s for changes...", rootDir)
	}
	<-ctx.Done()
	if !quietFlag {
		log.Println("Watch mode stopped")
	}
	return nil
}

func rescan(ctx context.Context, out io.Writer, scanner *scan.Scanner, files []string) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			scanner.Forget(f)
			if verbose {
				log.Printf("Removed %s", f)
			}
			continue
		}
		existing = append(existing, f)
	}
	if len(existing) == 0 {
		return
	}

	report, err := scanner.ScanFiles(ctx, existing, nil)
	if err != nil {
		log.Printf("Warning: re-scan failed: %v", err)
		return
	}
	if err := printReport(out, report, false); err != nil {
		log.Printf("Warning: failed to print report: %v", err)
	}
}

// projectFilter accepts absolute paths that discovery would include.
func projectFilter(d *scan.FileDiscovery) watcher.Filter {
	return func(path string) bool {
		rel, err := d.Rel(path)
		if err != nil {
			return false
		}
		return d.Matches(rel)
	}
}
