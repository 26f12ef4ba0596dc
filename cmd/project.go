package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/geekbozu/CopilotTaskMaster/internal/config"
	"github.com/geekbozu/CopilotTaskMaster/internal/repofile"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := projectDirs()
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}
		for _, name := range projects {
			tasks, _, err := st.List(name, "", true, false)
			if err != nil {
				return err
			}
			marker := " "
			if cfg.DefaultProject == name {
				marker = "*"
			}
			fmt.Printf("%s %s (%d tasks)\n", marker, name, len(tasks))
		}
		return nil
	},
}

var projectSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Set the default project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.DefaultProject = args[0]
		if err := config.Save(dataDir, cfg); err != nil {
			return err
		}
		fmt.Printf("Default project set to %s\n", args[0])
		return nil
	},
}

var projectLinkCmd = &cobra.Command{
	Use:   "link [name]",
	Short: "Link the current directory to a project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var project string
		if len(args) == 1 {
			project = args[0]
		} else {
			projects, err := projectDirs()
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				return fmt.Errorf("no projects exist; create a task first with: taskmaster task create <project>/<name>.md <title>")
			}
			opts := make([]huh.Option[string], len(projects))
			for i, p := range projects {
				opts[i] = huh.NewOption(p, p)
			}
			if err := huh.NewSelect[string]().
				Title("Select a project").
				Options(opts...).
				Value(&project).
				Run(); err != nil {
				return fmt.Errorf("selection cancelled")
			}
		}

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := repofile.Write(cwd, project); err != nil {
			return err
		}
		fmt.Printf("Linked %s to project %s\n", repofile.FileName, project)
		return nil
	},
}

var projectUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the repo-local project link",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := os.Remove(filepath.Join(cwd, repofile.FileName)); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No project linked.")
				return nil
			}
			return err
		}
		fmt.Println("Unlinked project.")
		return nil
	},
}

// projectDirs lists the top-level directories of the task store.
func projectDirs() ([]string, error) {
	entries, err := os.ReadDir(tasksDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectSetDefaultCmd)
	projectCmd.AddCommand(projectLinkCmd)
	projectCmd.AddCommand(projectUnlinkCmd)
	rootCmd.AddCommand(projectCmd)
}
