// Package search scans a task-card tree and ranks documents against a text
// query and metadata filters. Every search is a fresh scan: there is no
// index, cache, or state between calls.
package search

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geekbozu/CopilotTaskMaster/internal/markdown"
	"github.com/geekbozu/CopilotTaskMaster/internal/model"
)

// DefaultMaxResults caps a search when the caller does not.
const DefaultMaxResults = 50

// titleWeight is the fixed score contribution of a title match; each body
// occurrence contributes 1.
const titleWeight = 10

// Searcher scans task cards under a base directory.
type Searcher struct {
	BaseDir string
}

func New(baseDir string) *Searcher {
	return &Searcher{BaseDir: baseDir}
}

// Options control one search call.
type Options struct {
	// Query is matched case-insensitively against titles and bodies.
	// Empty means filter-only browsing: every surviving document scores 1.
	Query string
	// Filters must all match for a document to survive (any-element
	// semantics for list-valued filters).
	Filters model.Metadata
	// PathScope restricts the scan to <scope>/*.md unless it names a
	// full .md filename, in which case the whole store is scanned.
	PathScope string
	// MaxResults caps the result list; 0 means DefaultMaxResults.
	MaxResults int
	// IncludeContent carries full bodies in results instead of snippets.
	IncludeContent bool
}

// Result is one ranked search hit.
type Result struct {
	Path     string
	Title    string
	Score    int
	Metadata model.Metadata
	Snippet  string
	Content  string
}

// Search runs one ranked scan. Unparseable files are skipped and counted.
// Scanning stops early once MaxResults matching documents are collected;
// the survivors are then sorted by descending score, ties keeping scan
// order.
func (s *Searcher) Search(opts Options) ([]Result, model.ScanStats, error) {
	var stats model.ScanStats

	if _, err := os.Stat(s.BaseDir); err != nil {
		return nil, stats, nil
	}
	max := opts.MaxResults
	if max <= 0 {
		max = DefaultMaxResults
	}

	files, err := s.candidates(opts.PathScope)
	if err != nil {
		return nil, stats, err
	}

	query := strings.ToLower(opts.Query)
	var results []Result

	for _, file := range files {
		stats.Scanned++
		fm, body, err := readCard(file)
		if err != nil {
			stats.Skipped++
			continue
		}

		if len(opts.Filters) > 0 && !MatchMetadata(fm.Meta, opts.Filters, false) {
			continue
		}

		score := 1
		if query != "" {
			score = 0
			if strings.Contains(strings.ToLower(fm.Title), query) {
				score += titleWeight
			}
			score += strings.Count(strings.ToLower(body), query)
			if score == 0 {
				continue
			}
		}

		r := Result{
			Path:     s.relPosix(file),
			Title:    fm.Title,
			Score:    score,
			Metadata: fm.Meta,
		}
		if opts.IncludeContent {
			r.Content = body
		} else if query != "" && strings.Contains(strings.ToLower(body), query) {
			r.Snippet = extractSnippet(body, opts.Query)
		}
		results = append(results, r)

		// Early exit: enough matches collected; the sort below still
		// ranks everything we kept.
		if len(results) >= max {
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > max {
		results = results[:max]
	}
	return results, stats, nil
}

// candidates enumerates the .md files for a scope. A non-filename scope
// narrows to that directory's immediate children; anything else scans the
// whole store.
func (s *Searcher) candidates(scope string) ([]string, error) {
	if scope != "" && !strings.HasSuffix(scope, ".md") {
		matches, err := filepath.Glob(filepath.Join(s.BaseDir, filepath.FromSlash(scope), "*.md"))
		if err != nil {
			return nil, fmt.Errorf("globbing scope %s: %w", scope, err)
		}
		return matches, nil
	}

	var files []string
	err := filepath.WalkDir(s.BaseDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.BaseDir, err)
	}
	return files, nil
}

func readCard(full string) (model.FrontMatter, string, error) {
	f, err := os.Open(full)
	if err != nil {
		return model.FrontMatter{}, "", err
	}
	defer f.Close()
	return markdown.Parse(f)
}

func (s *Searcher) relPosix(full string) string {
	rel, err := filepath.Rel(s.BaseDir, full)
	if err != nil {
		return filepath.ToSlash(full)
	}
	return filepath.ToSlash(rel)
}
