// Package mcpserver exposes the task store over the Model Context Protocol
// so LLM agents can manage task cards via stdio transport.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/geekbozu/CopilotTaskMaster/internal/model"
	"github.com/geekbozu/CopilotTaskMaster/internal/search"
	"github.com/geekbozu/CopilotTaskMaster/internal/store"
	"github.com/geekbozu/CopilotTaskMaster/internal/taskpath"
)

// Server wraps the MCP server with task tools.
type Server struct {
	mcp      *server.MCPServer
	store    *store.Store
	searcher *search.Searcher
}

// New creates an MCP server with all task tools registered. Tools take
// project-prefixed paths only: there is no ambient default project on this
// surface, so agents must always say which project they mean.
func New(st *store.Store, searcher *search.Searcher) *Server {
	s := &Server{store: st, searcher: searcher}

	s.mcp = server.NewMCPServer(
		"taskmaster",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task card in markdown format. Path MUST include a project folder (e.g. 'project1/task1.md', not 'task1.md')."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the task, with the project folder as the top-level directory")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		mcp.WithString("content", mcp.Description("Task content in markdown")),
		mcp.WithString("status", mcp.Description("Task status (open, in-progress, done, ...)")),
		mcp.WithString("priority", mcp.Description("Task priority (low, medium, high, critical)")),
		mcp.WithArray("tags", mcp.Description("List of tags"), mcp.Items(map[string]any{"type": "string"})),
	), s.createTask)

	s.mcp.AddTool(mcp.NewTool("read_task",
		mcp.WithDescription("Read a task card by its path. Path MUST include a project folder."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the task (e.g. 'project1/task1.md')")),
	), s.readTask)

	s.mcp.AddTool(mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task card. Omitted fields are left unchanged; metadata is merged key by key. Path MUST include a project folder."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the task")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("content", mcp.Description("New content")),
		mcp.WithObject("metadata", mcp.Description("Metadata keys to merge into the existing metadata")),
	), s.updateTask)

	s.mcp.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task card. Path MUST include a project folder."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the task")),
	), s.deleteTask)

	s.mcp.AddTool(mcp.NewTool("move_task",
		mcp.WithDescription("Move or rename a task. Both paths MUST include a project folder."),
		mcp.WithString("old_path", mcp.Required(), mcp.Description("Current path")),
		mcp.WithString("new_path", mcp.Required(), mcp.Description("New path")),
	), s.moveTask)

	s.mcp.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks in a directory (token-efficient summary)."),
		mcp.WithString("subpath", mcp.Description("Subdirectory to list (empty for all)")),
		mcp.WithBoolean("recursive", mcp.Description("Include subdirectories (default true)")),
	), s.listTasks)

	s.mcp.AddTool(mcp.NewTool("search_tasks",
		mcp.WithDescription("Search tasks with text and metadata filters (token-efficient)."),
		mcp.WithString("query", mcp.Description("Text to search in title and content")),
		mcp.WithString("status", mcp.Description("Filter by status")),
		mcp.WithString("priority", mcp.Description("Filter by priority")),
		mcp.WithArray("tags", mcp.Description("Filter by tags"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("path_scope", mcp.Description("Directory to scope the search to (e.g. 'project1')")),
		mcp.WithNumber("max_results", mcp.Description("Maximum results to return (default 20)")),
	), s.searchTasks)

	s.mcp.AddTool(mcp.NewTool("search_by_tags",
		mcp.WithDescription("Find tasks carrying the given tags."),
		mcp.WithArray("tags", mcp.Required(), mcp.Description("Tags to match"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithBoolean("match_all", mcp.Description("Require every tag instead of any (default false)")),
	), s.searchByTags)

	s.mcp.AddTool(mcp.NewTool("get_structure",
		mcp.WithDescription("Get the hierarchical folder structure (token-efficient overview)."),
		mcp.WithString("subpath", mcp.Description("Subdirectory to show structure for")),
	), s.getStructure)

	s.mcp.AddTool(mcp.NewTool("get_all_tags",
		mcp.WithDescription("Get all unique tags across all tasks."),
	), s.getAllTags)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) createTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var meta model.Metadata
	if status := req.GetString("status", ""); status != "" {
		meta.Set(model.KeyStatus, model.String(status))
	}
	if priority := req.GetString("priority", ""); priority != "" {
		meta.Set(model.KeyPriority, model.String(priority))
	}
	if tags := stringSliceArg(req, "tags"); len(tags) > 0 {
		meta.Set(model.KeyTags, model.Strings(tags...))
	}

	sum, err := s.store.Create("", path, title, req.GetString("content", ""), meta)
	if err != nil {
		return mcp.NewToolResultError(pathHint(err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created task %q at %s", sum.Title, sum.Path)), nil
}

func (s *Server) readTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.store.Read("", path)
	if err != nil {
		return mcp.NewToolResultError(pathHint(err)), nil
	}
	if doc == nil {
		return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", path)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\nPath: %s\n\n", doc.Title, doc.Path)
	for _, key := range []string{model.KeyStatus, model.KeyPriority, model.KeyTags, model.KeyCreated, model.KeyUpdated} {
		if v, ok := doc.Metadata.Get(key); ok {
			fmt.Fprintf(&sb, "%s: %s\n", strings.ToUpper(key[:1])+key[1:], v.String())
		}
	}
	fmt.Fprintf(&sb, "\n---\n\n%s", doc.Content)
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) updateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var upd store.Update
	args := req.GetArguments()
	if title, ok := args["title"].(string); ok {
		upd.Title = &title
	}
	if content, ok := args["content"].(string); ok {
		upd.Content = &content
	}
	if raw, ok := args["metadata"].(map[string]interface{}); ok {
		for key, v := range raw {
			upd.Metadata.Set(key, model.ValueOf(v))
		}
	}

	sum, err := s.store.Update("", path, upd)
	if err != nil {
		return mcp.NewToolResultError(pathHint(err)), nil
	}
	if sum == nil {
		return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated task: %s", sum.Path)), nil
}

func (s *Server) deleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ok, err := s.store.Delete("", path)
	if err != nil {
		return mcp.NewToolResultError(pathHint(err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("task not found: %s", path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted task: %s", path)), nil
}

func (s *Server) moveTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldPath, err := req.RequireString("old_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newPath, err := req.RequireString("new_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ok, err := s.store.Move("", oldPath, newPath)
	if err != nil {
		return mcp.NewToolResultError(pathHint(err)), nil
	}
	if !ok {
		return mcp.NewToolResultError("failed to move task: source missing or destination exists"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Moved task to %s", newPath)), nil
}

func (s *Server) listTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, _, err := s.store.List("", req.GetString("subpath", ""), req.GetBool("recursive", true), false)
	if err != nil {
		return mcp.NewToolResultError(pathHint(err)), nil
	}
	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks found."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d tasks:\n\n", len(tasks))
	for _, t := range tasks {
		status := metaOr(t.Metadata, model.KeyStatus, "unknown")
		priority := metaOr(t.Metadata, model.KeyPriority, "-")
		fmt.Fprintf(&sb, "- [%s] %s\n  Path: %s | Priority: %s\n", status, t.Title, t.Path, priority)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) searchTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var filters model.Metadata
	if status := req.GetString("status", ""); status != "" {
		filters.Set(model.KeyStatus, model.String(status))
	}
	if priority := req.GetString("priority", ""); priority != "" {
		filters.Set(model.KeyPriority, model.String(priority))
	}
	if tags := stringSliceArg(req, "tags"); len(tags) > 0 {
		filters.Set(model.KeyTags, model.Strings(tags...))
	}

	results, _, err := s.searcher.Search(search.Options{
		Query:      req.GetString("query", ""),
		Filters:    filters,
		PathScope:  req.GetString("path_scope", ""),
		MaxResults: req.GetInt("max_results", 20),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(renderResults(results)), nil
}

func (s *Server) searchByTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags := stringSliceArg(req, "tags")
	if len(tags) == 0 {
		return mcp.NewToolResultError("tags must not be empty"), nil
	}
	results, _, err := s.searcher.ByTags(tags, req.GetBool("match_all", false), 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(renderResults(results)), nil
}

func (s *Server) getStructure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := s.store.Structure("", req.GetString("subpath", ""))
	if err != nil {
		return mcp.NewToolResultError(pathHint(err)), nil
	}
	out := renderStructure(root, 0)
	if out == "" {
		out = "Empty structure"
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) getAllTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, _, err := s.searcher.Tags("", "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(tags) == 0 {
		return mcp.NewToolResultText("No tags found."), nil
	}
	return mcp.NewToolResultText("Tags: " + strings.Join(tags, ", ")), nil
}

func renderResults(results []search.Result) string {
	if len(results) == 0 {
		return "No tasks found."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d matching tasks:\n\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&sb, "- %s (relevance: %d)\n  Path: %s\n", r.Title, r.Score, r.Path)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "  Snippet: %s\n", r.Snippet)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderStructure(node *model.TreeNode, indent int) string {
	var sb strings.Builder
	pad := strings.Repeat("  ", indent)
	if node.Type == model.NodeDirectory {
		fmt.Fprintf(&sb, "%s%s/\n", pad, node.Name)
		for _, child := range node.Children {
			sb.WriteString(renderStructure(child, indent+1))
		}
		return sb.String()
	}
	status := metaOr(node.Metadata, model.KeyStatus, "?")
	fmt.Fprintf(&sb, "%s%s [%s]\n", pad, node.Title, status)
	return sb.String()
}

// pathHint appends the remediation for unscoped paths, which is by far the
// most common agent mistake on this surface.
func pathHint(err error) string {
	if errors.Is(err, taskpath.ErrProjectRequired) {
		return err.Error() + " (prefix the path with a project folder, e.g. 'project1/task1.md')"
	}
	return err.Error()
}

func metaOr(m model.Metadata, key, fallback string) string {
	if v, ok := m.Get(key); ok && !v.IsZero() {
		return v.String()
	}
	return fallback
}

// stringSliceArg reads an array-of-strings argument, tolerating a single
// string value.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	switch t := raw.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}
