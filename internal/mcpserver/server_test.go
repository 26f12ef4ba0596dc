package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekbozu/CopilotTaskMaster/internal/search"
	"github.com/geekbozu/CopilotTaskMaster/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	return New(store.New(dir), search.New(dir))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct call-tool test helper, so invoke the handlers.
	var result *mcp.CallToolResult
	var err error
	switch name {
	case "create_task":
		result, err = srv.createTask(ctx, req)
	case "read_task":
		result, err = srv.readTask(ctx, req)
	case "update_task":
		result, err = srv.updateTask(ctx, req)
	case "delete_task":
		result, err = srv.deleteTask(ctx, req)
	case "move_task":
		result, err = srv.moveTask(ctx, req)
	case "list_tasks":
		result, err = srv.listTasks(ctx, req)
	case "search_tasks":
		result, err = srv.searchTasks(ctx, req)
	case "search_by_tags":
		result, err = srv.searchByTags(ctx, req)
	case "get_structure":
		result, err = srv.getStructure(ctx, req)
	case "get_all_tags":
		result, err = srv.getAllTags(ctx, req)
	default:
		t.Fatalf("unknown tool %q", name)
	}
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return tc.Text
}

func TestCreateReadTask(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "create_task", map[string]interface{}{
		"path":     "auth/login.md",
		"title":    "Login flow",
		"content":  "# Login",
		"status":   "open",
		"priority": "high",
		"tags":     []interface{}{"auth", "backend"},
	})
	assert.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "auth/login.md")

	res = callTool(t, srv, "read_task", map[string]interface{}{"path": "auth/login.md"})
	assert.False(t, res.IsError)
	text := textOf(t, res)
	assert.Contains(t, text, "Login flow")
	assert.Contains(t, text, "Status: open")
	assert.Contains(t, text, "Tags: auth, backend")
	assert.Contains(t, text, "# Login")
}

func TestCreateTask_BarePathRejected(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "create_task", map[string]interface{}{
		"path":  "login.md",
		"title": "Login flow",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "project")
}

func TestReadTask_NotFound(t *testing.T) {
	srv := testServer(t)
	res := callTool(t, srv, "read_task", map[string]interface{}{"path": "auth/nope.md"})
	assert.True(t, res.IsError)
}

func TestUpdateTask(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/login.md", "title": "Login flow", "status": "open",
	})

	res := callTool(t, srv, "update_task", map[string]interface{}{
		"path":     "auth/login.md",
		"metadata": map[string]interface{}{"status": "done"},
	})
	assert.False(t, res.IsError)

	res = callTool(t, srv, "read_task", map[string]interface{}{"path": "auth/login.md"})
	assert.Contains(t, textOf(t, res), "Status: done")
}

func TestUpdateTask_NotFound(t *testing.T) {
	srv := testServer(t)
	res := callTool(t, srv, "update_task", map[string]interface{}{
		"path": "auth/nope.md", "title": "x",
	})
	assert.True(t, res.IsError)
}

func TestDeleteTask(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/login.md", "title": "Login flow",
	})

	res := callTool(t, srv, "delete_task", map[string]interface{}{"path": "auth/login.md"})
	assert.False(t, res.IsError)

	res = callTool(t, srv, "delete_task", map[string]interface{}{"path": "auth/login.md"})
	assert.True(t, res.IsError)
}

func TestMoveTask(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/login.md", "title": "Login flow",
	})

	res := callTool(t, srv, "move_task", map[string]interface{}{
		"old_path": "auth/login.md",
		"new_path": "auth/done/login.md",
	})
	assert.False(t, res.IsError)

	res = callTool(t, srv, "read_task", map[string]interface{}{"path": "auth/done/login.md"})
	assert.False(t, res.IsError)
}

func TestListTasks(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/login.md", "title": "Login flow", "status": "open",
	})
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "billing/invoice.md", "title": "Invoice", "status": "done",
	})

	res := callTool(t, srv, "list_tasks", map[string]interface{}{})
	text := textOf(t, res)
	assert.Contains(t, text, "Found 2 tasks")
	assert.Contains(t, text, "auth/login.md")

	res = callTool(t, srv, "list_tasks", map[string]interface{}{"subpath": "auth"})
	assert.Contains(t, textOf(t, res), "Found 1 tasks")
}

func TestSearchTasks(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/login.md", "title": "Login flow", "content": "OAuth callback handling",
	})

	res := callTool(t, srv, "search_tasks", map[string]interface{}{"query": "oauth"})
	text := textOf(t, res)
	assert.Contains(t, text, "Login flow")
	assert.Contains(t, text, "auth/login.md")

	res = callTool(t, srv, "search_tasks", map[string]interface{}{"query": "nonexistent"})
	assert.Equal(t, "No tasks found.", textOf(t, res))
}

func TestSearchByTags(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/login.md", "title": "Login flow", "tags": []interface{}{"auth"},
	})

	res := callTool(t, srv, "search_by_tags", map[string]interface{}{
		"tags": []interface{}{"auth"},
	})
	assert.Contains(t, textOf(t, res), "auth/login.md")

	res = callTool(t, srv, "search_by_tags", map[string]interface{}{})
	assert.True(t, res.IsError)
}

func TestGetStructure(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/sprint1/login.md", "title": "Login flow", "status": "open",
	})

	res := callTool(t, srv, "get_structure", map[string]interface{}{"subpath": "auth"})
	text := textOf(t, res)
	assert.Contains(t, text, "sprint1/")
	assert.Contains(t, text, "Login flow [open]")

	res = callTool(t, srv, "get_structure", map[string]interface{}{"subpath": "nope"})
	assert.True(t, res.IsError)
}

func TestGetAllTags(t *testing.T) {
	srv := testServer(t)

	res := callTool(t, srv, "get_all_tags", map[string]interface{}{})
	assert.Equal(t, "No tags found.", textOf(t, res))

	callTool(t, srv, "create_task", map[string]interface{}{
		"path": "auth/login.md", "title": "Login flow", "tags": []interface{}{"Zeta", "auth"},
	})

	res = callTool(t, srv, "get_all_tags", map[string]interface{}{})
	assert.Equal(t, "Tags: auth, zeta", textOf(t, res))
}
