// Package repofile links a working directory to a default project through
// a marker file, so CLI calls made inside a repo do not need --project.
package repofile

import (
	"os"
	"path/filepath"
	"strings"
)

const FileName = ".taskmaster-project"

// Find walks up from startDir looking for a project link file. Returns the
// project name and the directory containing the file, or empty strings
// when no link exists anywhere up the tree.
func Find(startDir string) (project, dir string, err error) {
	dir = startDir
	for {
		p, err := Read(dir)
		if err != nil {
			return "", "", err
		}
		if p != "" {
			return p, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Write records project as the link for dir.
func Write(dir, project string) error {
	return os.WriteFile(filepath.Join(dir, FileName), []byte(project+"\n"), 0644)
}

// Read returns the project linked to dir, or "" when dir has no link file.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
