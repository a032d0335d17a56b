package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mvp-joe/propgen/internal/property"
	"github.com/spf13/cobra"
)

var (
	describeLine   int
	describeColumn int
	jsonFlag       bool
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Describe the property declared on a line",
	Long: `Describe reads the property declared at the given zero-based line and
column, including the @var type and description from the doc block directly
above it, and prints the getter and setter an editor would generate.

Examples:
  # Describe the property on line 12
  propgen describe src/User.php --line 12

  # Emit JSON for tooling
  propgen describe src/User.php --line 12 --column 14 --json
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDescribe(cmd.OutOrStdout(), args[0], property.Position{Line: describeLine, Character: describeColumn}, jsonFlag)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().IntVarP(&describeLine, "line", "l", 0, "Zero-based line of the declaration")
	describeCmd.Flags().IntVarP(&describeColumn, "column", "c", 0, "Zero-based column of the cursor")
	describeCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the result as JSON")
	_ = describeCmd.MarkFlagRequired("line")
}

func runDescribe(out io.Writer, path string, pos property.Position, asJSON bool) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	prop, err := property.FromPosition(doc, pos)
	if errors.Is(err, property.ErrNoPropertyFound) {
		return fmt.Errorf("%s:%d: %w", path, pos.Line+1, err)
	}
	if err != nil {
		return err
	}

	accessors := prop.Accessors()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(accessors)
	}

	printAccessors(out, accessors)
	return nil
}

func printAccessors(out io.Writer, a property.Accessors) {
	fmt.Fprintf(out, "Property:    $%s\n", a.Name)
	fmt.Fprintf(out, "Type:        %s\n", a.Type.OrElse("-"))
	fmt.Fprintf(out, "Type hint:   %s\n", a.TypeHint.OrElse("-"))
	fmt.Fprintf(out, "Description: %s\n", a.Description.OrElse("-"))
	fmt.Fprintf(out, "Getter:      %s() - %s\n", a.GetterName, a.GetterDescription)
	fmt.Fprintf(out, "Setter:      %s() - %s\n", a.SetterName, a.SetterDescription)
}

func readDocument(path string) (*property.TextDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return property.NewTextDocument(string(data)), nil
}
