package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geekbozu/CopilotTaskMaster/internal/editor"
	"github.com/geekbozu/CopilotTaskMaster/internal/markdown"
	"github.com/geekbozu/CopilotTaskMaster/internal/model"
	"github.com/geekbozu/CopilotTaskMaster/internal/store"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage task cards",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <path> <title>",
	Short: "Create a new task card",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")
		tagsStr, _ := cmd.Flags().GetString("tags")

		meta := model.Metadata{}
		meta.Set(model.KeyStatus, model.String(status))
		meta.Set(model.KeyPriority, model.String(priority))
		if tagsStr != "" {
			meta.Set(model.KeyTags, model.Strings(strings.Split(tagsStr, ",")...))
		}

		sum, err := st.Create(resolveProject(cmd), args[0], args[1], readStdin(), meta)
		if err != nil {
			return withHint(err)
		}
		fmt.Printf("Created task %s (%s)\n", sum.Title, sum.Path)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Show a task card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			file, err := cardFile(resolveProject(cmd), args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}

		doc, err := st.Read(resolveProject(cmd), args[0])
		if err != nil {
			return withHint(err)
		}
		if doc == nil {
			return fmt.Errorf("task not found: %s", args[0])
		}

		fields := []string{markdown.RenderField("Path", doc.Path)}
		if v, ok := doc.Metadata.Get(model.KeyStatus); ok {
			fields = append(fields, markdown.RenderField("Status", markdown.RenderStatus(v.Scalar())))
		}
		if v, ok := doc.Metadata.Get(model.KeyPriority); ok {
			fields = append(fields, markdown.RenderField("Priority", markdown.PriorityStyle(v.Scalar()).Render(v.Scalar())))
		}
		if v, ok := doc.Metadata.Get(model.KeyTags); ok {
			fields = append(fields, markdown.RenderField("Tags", v.String()))
		}
		if v, ok := doc.Metadata.Get(model.KeyCreated); ok {
			fields = append(fields, markdown.RenderField("Created", v.Scalar()))
		}
		if v, ok := doc.Metadata.Get(model.KeyUpdated); ok {
			fields = append(fields, markdown.RenderField("Updated", v.Scalar()))
		}
		fmt.Print(markdown.RenderCardHeader(doc.Title, fields))

		full, _ := cmd.Flags().GetBool("full")
		pretty, _ := cmd.Flags().GetBool("pretty")
		if doc.Content == "" || !(full || pretty) {
			return nil
		}
		if pretty {
			rendered, err := markdown.RenderMarkdown(doc.Content)
			if err != nil {
				return err
			}
			fmt.Print(rendered)
			return nil
		}
		fmt.Println("\n" + doc.Content)
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <path>",
	Short: "Update a task card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := store.Update{}

		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			upd.Title = &title
		}
		if body := readStdin(); body != "" {
			upd.Content = &body
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			upd.Metadata.Set(model.KeyStatus, model.String(status))
		}
		if cmd.Flags().Changed("priority") {
			priority, _ := cmd.Flags().GetString("priority")
			upd.Metadata.Set(model.KeyPriority, model.String(priority))
		}
		if cmd.Flags().Changed("tags") {
			tagsStr, _ := cmd.Flags().GetString("tags")
			upd.Metadata.Set(model.KeyTags, model.Strings(strings.Split(tagsStr, ",")...))
		}
		if addTags, _ := cmd.Flags().GetStringSlice("add-tag"); len(addTags) > 0 {
			merged, err := mergeTags(resolveProject(cmd), args[0], addTags)
			if err != nil {
				return err
			}
			upd.Metadata.Set(model.KeyTags, model.Strings(merged...))
		}

		sum, err := st.Update(resolveProject(cmd), args[0], upd)
		if err != nil {
			return withHint(err)
		}
		if sum == nil {
			return fmt.Errorf("task not found: %s", args[0])
		}
		fmt.Printf("Updated task %s\n", sum.Path)
		return nil
	},
}

// mergeTags unions the card's existing tags with additions, keeping the
// existing order and appending new tags in flag order.
func mergeTags(project, path string, add []string) ([]string, error) {
	doc, err := st.Read(project, path)
	if err != nil {
		return nil, withHint(err)
	}
	var merged []string
	seen := make(map[string]bool)
	if doc != nil {
		if existing, ok := doc.Metadata.Get(model.KeyTags); ok {
			for _, tag := range existing.List() {
				if !seen[tag] {
					seen[tag] = true
					merged = append(merged, tag)
				}
			}
		}
	}
	for _, tag := range add {
		if !seen[tag] {
			seen[tag] = true
			merged = append(merged, tag)
		}
	}
	return merged, nil
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a task card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirmDelete(cmd, args[0]); err != nil {
			return err
		}
		ok, err := st.Delete(resolveProject(cmd), args[0])
		if err != nil {
			return withHint(err)
		}
		if !ok {
			return fmt.Errorf("task not found: %s", args[0])
		}
		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <old-path> <new-path>",
	Short: "Move or rename a task card",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := st.Move(resolveProject(cmd), args[0], args[1])
		if err != nil {
			return withHint(err)
		}
		if !ok {
			return fmt.Errorf("cannot move %s: source missing or destination exists", args[0])
		}
		fmt.Printf("Moved task to %s\n", args[1])
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Open a task card in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := cardFile(resolveProject(cmd), args[0])
		if err != nil {
			return err
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("task not found: %s", args[0])
		}
		return editor.Open(file)
	},
}

func init() {
	taskCreateCmd.Flags().StringP("project", "P", "", "project name")
	taskCreateCmd.Flags().StringP("status", "s", "open", "task status")
	taskCreateCmd.Flags().StringP("priority", "p", "medium", "task priority")
	taskCreateCmd.Flags().StringP("tags", "t", "", "comma-separated tags")

	taskShowCmd.Flags().StringP("project", "P", "", "project name")
	taskShowCmd.Flags().Bool("full", false, "show the full content")
	taskShowCmd.Flags().Bool("pretty", false, "render the content with ANSI styling")
	taskShowCmd.Flags().Bool("raw", false, "print the raw file")

	taskUpdateCmd.Flags().StringP("project", "P", "", "project name")
	taskUpdateCmd.Flags().String("title", "", "new title")
	taskUpdateCmd.Flags().StringP("status", "s", "", "new status")
	taskUpdateCmd.Flags().StringP("priority", "p", "", "new priority")
	taskUpdateCmd.Flags().StringP("tags", "t", "", "comma-separated tags (replaces existing)")
	taskUpdateCmd.Flags().StringSlice("add-tag", nil, "tag to add (repeatable, merges with existing)")

	taskDeleteCmd.Flags().StringP("project", "P", "", "project name")
	taskDeleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	taskMoveCmd.Flags().StringP("project", "P", "", "project name")

	taskEditCmd.Flags().StringP("project", "P", "", "project name")

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskEditCmd)
	rootCmd.AddCommand(taskCmd)
}
