package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mvp-joe/propgen/internal/config"
	"github.com/mvp-joe/propgen/internal/property"
	"github.com/mvp-joe/propgen/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CLI commands:
// - describe prints accessor names and doc block metadata for a line
// - describe --json emits the accessor record
// - describe reports ErrNoPropertyFound for lines without a variable
// - check accepts declarations and rejects other lines or out-of-range lines,
//   printing 1-based line numbers
// - describe and check keep separate --line values
// - scan report prints one line per property and JSON when asked
// - resolveRoot rejects missing directories
// - projectFilter applies include/ignore globs to absolute paths
// - watchProject prints the initial scan and re-scans saved files
// - formatNumber groups thousands

func TestRunDescribe_Text(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{"User.php": userSource})

	var out bytes.Buffer
	err := runDescribe(&out, filepath.Join(root, "User.php"), property.Position{Line: 8, Character: 14}, false)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Property:    $displayName")
	assert.Contains(t, text, "Type:        string")
	assert.Contains(t, text, "Description: The user's display name.")
	assert.Contains(t, text, "getDisplayName() - Get the user's display name.")
	assert.Contains(t, text, "setDisplayName() - Set the user's display name.")
}

func TestRunDescribe_JSON(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{"User.php": userSource})

	var out bytes.Buffer
	err := runDescribe(&out, filepath.Join(root, "User.php"), property.Position{Line: 10}, true)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "is_active", decoded["name"])
	assert.Equal(t, "bool", decoded["type"])
	assert.Nil(t, decoded["description"])
	assert.Equal(t, "isIsActive", decoded["getter_name"])
	assert.Equal(t, "setIsActive", decoded["setter_name"])
}

func TestRunDescribe_Errors(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{"User.php": userSource})

	err := runDescribe(&bytes.Buffer{}, filepath.Join(root, "User.php"), property.Position{Line: 2}, false)
	assert.ErrorIs(t, err, property.ErrNoPropertyFound)

	err = runDescribe(&bytes.Buffer{}, filepath.Join(root, "Missing.php"), property.Position{}, false)
	assert.Error(t, err)
}

func TestRunCheck(t *testing.T) {
	t.Parallel()

	path := filepath.Join(writeProject(t, map[string]string{"User.php": userSource}), "User.php")

	tests := []struct {
		name    string
		line    int
		wantErr bool
	}{
		{"plain declaration", 8, false},
		{"typed declaration", 10, true},
		{"class line", 2, true},
		{"negative line", -1, true},
		{"past end", 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runCheck(&out, path, tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, path+":9: property declaration\n", out.String())
		})
	}

	err := runCheck(&bytes.Buffer{}, path, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":3: not a property declaration")
}

func TestLineFlagsAreIndependent(t *testing.T) {
	// Mutates package-level flag variables; not parallel.
	defer func() {
		describeLine = 0
		checkLine = 0
	}()

	require.NoError(t, describeCmd.Flags().Set("line", "5"))
	require.NoError(t, checkCmd.Flags().Set("line", "7"))

	assert.Equal(t, 5, describeLine)
	assert.Equal(t, 7, checkLine)
}

func scanProject(t *testing.T, root string) *scan.Report {
	t.Helper()
	scanner, err := scan.NewScanner(root, config.Default())
	require.NoError(t, err)
	t.Cleanup(scanner.Close)

	report, err := scanner.Scan(context.Background(), nil)
	require.NoError(t, err)
	return report
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{"src/User.php": userSource})
	report := scanProject(t, root)

	var out bytes.Buffer
	require.NoError(t, printReport(&out, report, false))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "src/User.php:9: private User::$displayName string  getDisplayName() setDisplayName()", lines[0])
	assert.Equal(t, "src/User.php:11: protected User::$is_active bool  isIsActive() setIsActive()", lines[1])

	out.Reset()
	require.NoError(t, printReport(&out, report, true))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Contains(t, decoded, "files")
	assert.Contains(t, decoded, "stats")
}

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root, err := resolveRoot([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	_, err = resolveRoot([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestProjectFilter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d, err := scan.NewFileDiscovery(root, []string{"**/*.php"}, []string{"vendor/**"})
	require.NoError(t, err)

	filter := projectFilter(d)
	assert.True(t, filter(filepath.Join(root, "src", "User.php")))
	assert.False(t, filter(filepath.Join(root, "vendor", "lib", "Dep.php")))
	assert.False(t, filter(filepath.Join(root, "notes.txt")))
}

// syncBuffer hands each write from the watcher goroutine to the test.
type syncBuffer struct {
	ch chan string
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.ch <- string(p)
	return len(p), nil
}

func TestWatchProject(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{"User.php": userSource})
	cfg := config.Default()
	cfg.Watch.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{ch: make(chan string, 100)}
	done := make(chan error, 1)
	go func() {
		done <- watchProject(ctx, out, root, cfg)
	}()

	waitFor := func(substr string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case s := <-out.ch:
				if strings.Contains(s, substr) {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", substr)
			}
		}
	}

	waitFor("$displayName")
	waitFor("$is_active")

	// Allow the watcher to register before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "Order.php"), []byte("<?php\nclass Order\n{\n    private $total;\n}\n"), 0644))
	waitFor("Order::$total")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchProject did not stop")
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}
