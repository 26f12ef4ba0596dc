package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/geekbozu/CopilotTaskMaster/internal/repofile"
	"github.com/geekbozu/CopilotTaskMaster/internal/taskpath"
)

// resolveProject returns the project from the flag, repo-local link file, or
// global default. Empty is fine: task paths may carry their own project
// prefix, and resolution complains only when neither side names one.
func resolveProject(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("project"); p != "" {
		return p
	}
	if cwd, err := os.Getwd(); err == nil {
		if rp, _, _ := repofile.Find(cwd); rp != "" {
			return rp
		}
	}
	if cfg != nil && cfg.DefaultProject != "" {
		return cfg.DefaultProject
	}
	return ""
}

// withHint decorates path-resolution failures with the fix.
func withHint(err error) error {
	if errors.Is(err, taskpath.ErrProjectRequired) {
		return fmt.Errorf("%w\nUse --project <name>, prefix the path with 'project/', or set a default with: taskmaster project set-default <name>", err)
	}
	return err
}

func readStdin() string {
	info, err := os.Stdin.Stat()
	if err != nil {
		return ""
	}
	// Only read if stdin is explicitly a pipe (not a terminal, not a socket)
	if info.Mode()&os.ModeNamedPipe == 0 && info.Size() == 0 {
		return ""
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ""
	}
	return string(data)
}

func confirmDelete(cmd *cobra.Command, label string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	var confirm bool
	msg := fmt.Sprintf("Delete %s?", label)
	if err := huh.NewConfirm().Title(msg).Value(&confirm).Run(); err != nil || !confirm {
		return fmt.Errorf("deletion cancelled")
	}
	return nil
}

// cardFile maps a logical path to the on-disk file inside the tasks dir.
func cardFile(project, path string) (string, error) {
	ref, err := taskpath.Resolve(project, path)
	if err != nil {
		return "", withHint(err)
	}
	return filepath.Join(tasksDir, filepath.FromSlash(ref.Rel)), nil
}
