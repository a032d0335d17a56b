package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const userSource = `<?php

class User
{
    /**
     * @var string
     * The user's display name.
     */
    private $displayName;

    protected bool $is_active = true;

    public function rename($name)
    {
        $this->displayName = $name;
    }
}
`

// writeProject creates a project directory containing files relative to it.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}
