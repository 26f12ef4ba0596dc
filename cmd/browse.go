package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geekbozu/CopilotTaskMaster/internal/markdown"
)

var listCmd = &cobra.Command{
	Use:   "list [subpath]",
	Short: "List task cards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subpath := ""
		if len(args) == 1 {
			subpath = args[0]
		}
		recursive, _ := cmd.Flags().GetBool("recursive")
		full, _ := cmd.Flags().GetBool("full")

		tasks, stats, err := st.List(resolveProject(cmd), subpath, recursive, full)
		if err != nil {
			return withHint(err)
		}
		fmt.Println(markdown.RenderTaskTable(tasks))
		if full {
			for _, task := range tasks {
				if task.Content != "" {
					fmt.Printf("%s: %s\n", task.Path, preview(task.Content, 100))
				}
			}
		}
		if stats.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "Skipped %d unreadable file(s).\n", stats.Skipped)
		}
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree [subpath]",
	Short: "Show the task card hierarchy",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subpath := ""
		if len(args) == 1 {
			subpath = args[0]
		}
		root, err := st.Structure(resolveProject(cmd), subpath)
		if err != nil {
			return withHint(err)
		}
		fmt.Print(markdown.RenderTree(root))
		return nil
	},
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func init() {
	listCmd.Flags().StringP("project", "P", "", "project name")
	listCmd.Flags().BoolP("recursive", "r", true, "include subdirectories")
	listCmd.Flags().Bool("full", false, "include content previews")

	treeCmd.Flags().StringP("project", "P", "", "project name")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(treeCmd)
}
