package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geekbozu/CopilotTaskMaster/internal/markdown"
	"github.com/geekbozu/CopilotTaskMaster/internal/model"
	"github.com/geekbozu/CopilotTaskMaster/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search task cards by text and metadata",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		var filters model.Metadata
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			filters.Set(model.KeyStatus, model.String(status))
		}
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			filters.Set(model.KeyPriority, model.String(priority))
		}
		if tagsStr, _ := cmd.Flags().GetString("tags"); tagsStr != "" {
			filters.Set(model.KeyTags, model.Strings(strings.Split(tagsStr, ",")...))
		}

		scope, _ := cmd.Flags().GetString("scope")
		max, _ := cmd.Flags().GetInt("max-results")
		full, _ := cmd.Flags().GetBool("full")

		results, stats, err := searcher.Search(search.Options{
			Query:          query,
			Filters:        filters,
			PathScope:      scope,
			MaxResults:     max,
			IncludeContent: full,
		})
		if err != nil {
			return err
		}

		fmt.Println(renderResultTable(results))
		for _, r := range results {
			if r.Snippet != "" {
				fmt.Printf("%s: %s\n", r.Path, r.Snippet)
			}
			if full && r.Content != "" {
				fmt.Printf("\n%s:\n%s\n", r.Path, r.Content)
			}
		}
		if stats.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "Skipped %d unreadable file(s).\n", stats.Skipped)
		}
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags [subpath]",
	Short: "List the tags in use",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subpath := ""
		if len(args) == 1 {
			subpath = args[0]
		}
		tags, _, err := searcher.Tags(resolveProject(cmd), subpath)
		if err != nil {
			return withHint(err)
		}
		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}
		fmt.Println(strings.Join(tags, "\n"))
		return nil
	},
}

func renderResultTable(results []search.Result) string {
	if len(results) == 0 {
		return "No tasks found."
	}
	rows := make([][]string, len(results))
	for i, r := range results {
		status, _ := r.Metadata.Get(model.KeyStatus)
		rows[i] = []string{
			r.Path,
			r.Title,
			strconv.Itoa(r.Score),
			markdown.RenderStatus(status.Scalar()),
		}
	}
	return markdown.RenderTable([]string{"Path", "Title", "Score", "Status"}, rows)
}

func init() {
	searchCmd.Flags().StringP("status", "s", "", "filter by status")
	searchCmd.Flags().StringP("priority", "p", "", "filter by priority")
	searchCmd.Flags().StringP("tags", "t", "", "comma-separated tag filters")
	searchCmd.Flags().String("scope", "", "directory to scope the search to")
	searchCmd.Flags().IntP("max-results", "n", search.DefaultMaxResults, "maximum results")
	searchCmd.Flags().Bool("full", false, "include full content in results")

	tagsCmd.Flags().StringP("project", "P", "", "project name")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tagsCmd)
}
