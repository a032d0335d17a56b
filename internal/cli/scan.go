package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mvp-joe/propgen/internal/scan"
	"github.com/spf13/cobra"
)

var quietFlag bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List every property in a PHP project",
	Long: `Scan discovers PHP files under dir (default: the working directory)
using paths.include and paths.ignore from .propgen/config.yml, finds every
class, trait and enum property declaration and prints its accessors.

Examples:
  # Scan the current project
  propgen scan

  # Machine-readable output without progress bars
  propgen scan ./src --json --quiet
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the report as JSON")
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	rootDir, err := resolveRoot(args)
	if err != nil {
		return err
	}

	scanner, err := newScanner(rootDir)
	if err != nil {
		return err
	}
	defer scanner.Close()

	// Progress goes to stderr so --json output stays parseable.
	progress := NewCLIProgressReporter(cmd.ErrOrStderr(), quietFlag || jsonFlag)
	report, err := scanner.Scan(ctx, progress)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("scan cancelled")
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	return printReport(cmd.OutOrStdout(), report, jsonFlag)
}

func printReport(out io.Writer, report *scan.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for _, file := range report.Files {
		printFileResult(out, file)
	}
	return nil
}

func printFileResult(out io.Writer, file *scan.FileResult) {
	for _, r := range file.Properties {
		owner := r.Class
		if owner != "" {
			owner += "::"
		}
		fmt.Fprintf(out, "%s:%d: %s%s$%s %s  %s() %s()\n",
			file.Path, r.Line+1, visibilityPrefix(r.Visibility), owner, r.Accessors.Name,
			r.Accessors.Type.OrElse("mixed"), r.Accessors.GetterName, r.Accessors.SetterName)
		if verbose {
			fmt.Fprintf(out, "    %s\n    %s\n", r.Accessors.GetterDescription, r.Accessors.SetterDescription)
		}
	}
}

func visibilityPrefix(v string) string {
	if v == "" {
		return ""
	}
	return v + " "
}

func resolveRoot(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	rootDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if info, err := os.Stat(rootDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}
	return rootDir, nil
}

func newScanner(rootDir string) (*scan.Scanner, error) {
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return nil, err
	}
	scanner, err := scan.NewScanner(rootDir, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}
	return scanner, nil
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
