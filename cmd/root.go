package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/spf13/cobra"

	"github.com/geekbozu/CopilotTaskMaster/internal/config"
	"github.com/geekbozu/CopilotTaskMaster/internal/search"
	"github.com/geekbozu/CopilotTaskMaster/internal/store"
)

var (
	version  = "dev"
	dataDir  string
	tasksDir string
	st       *store.Store
	searcher *search.Searcher
	cfg      *config.Config
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".taskmaster")
	}
	return filepath.Join(home, ".taskmaster")
}

var rootCmd = &cobra.Command{
	Use:     "taskmaster",
	Short:   "Markdown task cards organized by project",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// Tasks dir: flag beats environment beats config beats ./tasks.
		if tasksDir == "" {
			tasksDir = os.Getenv("TASKMASTER_TASKS_DIR")
		}
		if tasksDir == "" {
			tasksDir = cfg.TasksDir
		}
		if tasksDir == "" {
			tasksDir = "./tasks"
		}

		st = store.New(tasksDir)
		searcher = search.New(tasksDir)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "config directory path")
	rootCmd.PersistentFlags().StringVar(&tasksDir, "tasks-dir", "", "task store directory (default $TASKMASTER_TASKS_DIR or ./tasks)")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"task create": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Markdown body content for the task card",
				},
				Examples: []mtp.Example{
					{Description: "Create a task in a project", Command: "taskmaster task create auth/login.md \"Login flow\""},
					{Description: "Create with metadata", Command: "taskmaster task create auth/login.md \"Login flow\" --status in-progress --priority high --tags auth,backend"},
					{Description: "Create with piped content", Command: "echo '# Details' | taskmaster task create auth/login.md \"Login flow\""},
				},
			},
			"task show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Task card metadata and markdown body",
				},
				Examples: []mtp.Example{
					{Description: "Show a task", Command: "taskmaster task show auth/login.md"},
					{Description: "Show with ANSI rendering", Command: "taskmaster task show auth/login.md --pretty"},
				},
			},
			"task update": {
				Stdin: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "New markdown body content for the task card",
				},
				Examples: []mtp.Example{
					{Description: "Change status", Command: "taskmaster task update auth/login.md --status done"},
					{Description: "Replace body", Command: "echo '# Updated' | taskmaster task update auth/login.md"},
				},
			},
			"task delete": {
				Examples: []mtp.Example{
					{Description: "Delete a task (interactive confirm)", Command: "taskmaster task delete auth/login.md"},
					{Description: "Delete a task (skip confirm)", Command: "taskmaster task delete auth/login.md --force"},
				},
			},
			"task move": {
				Examples: []mtp.Example{
					{Description: "Rename a task", Command: "taskmaster task move auth/login.md auth/signin.md"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of tasks with path, title, status, priority, and tags",
				},
				Examples: []mtp.Example{
					{Description: "List all tasks in a project", Command: "taskmaster list auth"},
				},
			},
			"tree": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Directory tree of projects and task cards",
				},
			},
			"search": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Ranked search results with path, title, score, and status",
				},
				Examples: []mtp.Example{
					{Description: "Full-text search", Command: "taskmaster search \"authentication\""},
					{Description: "Filter-only browse", Command: "taskmaster search --status open --priority high"},
				},
			},
			"tags": {
				Examples: []mtp.Example{
					{Description: "List all tags in a project", Command: "taskmaster tags auth"},
				},
			},
			"project link": {
				Examples: []mtp.Example{
					{Description: "Link current directory to a project", Command: "taskmaster project link auth"},
				},
			},
			"project unlink": {
				Examples: []mtp.Example{
					{Description: "Remove repo-local project link", Command: "taskmaster project unlink"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}
