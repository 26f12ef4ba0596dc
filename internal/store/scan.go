package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geekbozu/CopilotTaskMaster/internal/markdown"
	"github.com/geekbozu/CopilotTaskMaster/internal/model"
	"github.com/geekbozu/CopilotTaskMaster/internal/taskpath"
)

// List returns summaries of the task cards under a scope. Browsing is
// lenient: a bare single-segment subpath is taken as the project, and a
// nonexistent scope yields an empty list. Unparseable files are skipped
// and counted, never fatal.
func (s *Store) List(project, subpath string, recursive, includeContent bool) ([]model.Summary, model.ScanStats, error) {
	var stats model.ScanStats

	scope, err := taskpath.ResolveScope(project, subpath)
	if err != nil {
		return nil, stats, err
	}
	dir := s.scopeDir(scope)
	if _, err := os.Stat(dir); err != nil {
		return nil, stats, nil
	}

	files, err := s.cardFiles(dir, recursive)
	if err != nil {
		return nil, stats, err
	}

	var tasks []model.Summary
	for _, file := range files {
		stats.Scanned++
		fm, body, err := s.readFile(file)
		if err != nil {
			stats.Skipped++
			continue
		}
		sum := model.Summary{Path: s.relPosix(file), Title: fm.Title, Metadata: fm.Meta}
		if includeContent {
			sum.Content = body
		}
		tasks = append(tasks, sum)
	}
	return tasks, stats, nil
}

// Structure builds the directory tree of a scope. Unlike List, naming a
// project that does not exist on disk is an error: the tree is a
// single-target lookup, not a best-effort aggregate.
func (s *Store) Structure(project, subpath string) (*model.TreeNode, error) {
	scope, err := taskpath.ResolveScope(project, subpath)
	if err != nil {
		return nil, err
	}
	dir := s.scopeDir(scope)
	if scope.Project != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, scope.Project)
		}
	}
	return s.buildTree(dir), nil
}

func (s *Store) buildTree(dir string) *model.TreeNode {
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) {
		name = "root"
	}
	node := &model.TreeNode{Type: model.NodeDirectory, Name: name}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return node
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			node.Children = append(node.Children, s.buildTree(full))
			continue
		}
		if !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		fm, _, err := s.readFile(full)
		if err != nil {
			continue
		}
		node.Children = append(node.Children, &model.TreeNode{
			Type:     model.NodeTask,
			Name:     e.Name(),
			Path:     s.relPosix(full),
			Title:    fm.Title,
			Metadata: fm.Meta.Subset(model.KeyStatus, model.KeyPriority, model.KeyTags),
		})
	}
	return node
}

// scopeDir maps a resolved scope to its directory under the base.
func (s *Store) scopeDir(scope taskpath.Scope) string {
	if scope.Project == "" {
		return s.BaseDir
	}
	return filepath.Join(s.BaseDir, scope.Project, filepath.FromSlash(scope.Sub))
}

// cardFiles enumerates .md files under dir, recursively or only the
// immediate children.
func (s *Store) cardFiles(dir string, recursive bool) ([]string, error) {
	if !recursive {
		matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", dir, err)
		}
		return matches, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

func (s *Store) readFile(full string) (model.FrontMatter, string, error) {
	f, err := os.Open(full)
	if err != nil {
		return model.FrontMatter{}, "", err
	}
	defer f.Close()
	return markdown.Parse(f)
}

// relPosix converts an absolute on-disk path back to the canonical
// forward-slash path relative to the base.
func (s *Store) relPosix(full string) string {
	rel, err := filepath.Rel(s.BaseDir, full)
	if err != nil {
		return filepath.ToSlash(full)
	}
	return filepath.ToSlash(rel)
}
