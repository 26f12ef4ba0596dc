package search

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/geekbozu/CopilotTaskMaster/internal/model"
	"github.com/geekbozu/CopilotTaskMaster/internal/taskpath"
)

// ByTags finds task cards carrying the given tags. With matchAll every tag
// must be present; otherwise any one suffices. Matching is case-insensitive
// and tolerates scalar tag values.
func (s *Searcher) ByTags(tags []string, matchAll bool, maxResults int) ([]Result, model.ScanStats, error) {
	var stats model.ScanStats
	if len(tags) == 0 {
		return nil, stats, nil
	}
	if _, err := os.Stat(s.BaseDir); err != nil {
		return nil, stats, nil
	}
	max := maxResults
	if max <= 0 {
		max = DefaultMaxResults
	}

	filters := model.Metadata{{Key: model.KeyTags, Value: model.Strings(tags...)}}

	files, err := s.candidates("")
	if err != nil {
		return nil, stats, err
	}

	var results []Result
	for _, file := range files {
		stats.Scanned++
		fm, _, err := readCard(file)
		if err != nil {
			stats.Skipped++
			continue
		}
		if !MatchMetadata(fm.Meta, filters, matchAll) {
			continue
		}
		results = append(results, Result{
			Path:     s.relPosix(file),
			Title:    fm.Title,
			Metadata: fm.Meta,
		})
		if len(results) >= max {
			break
		}
	}
	return results, stats, nil
}

// Tags collects the unique tags under a scope, lowercased and sorted.
// Scoping follows the lenient list rule; a nonexistent project yields an
// empty set rather than an error.
func (s *Searcher) Tags(project, subpath string) ([]string, model.ScanStats, error) {
	var stats model.ScanStats

	scope, err := taskpath.ResolveScope(project, subpath)
	if err != nil {
		return nil, stats, err
	}
	dir := s.BaseDir
	if scope.Project != "" {
		dir = filepath.Join(s.BaseDir, scope.Project, filepath.FromSlash(scope.Sub))
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, stats, nil
	}

	seen := make(map[string]bool)
	err = walkCards(dir, func(full string) {
		stats.Scanned++
		fm, _, err := readCard(full)
		if err != nil {
			stats.Skipped++
			return
		}
		if tags, ok := fm.Meta.Get(model.KeyTags); ok {
			for _, t := range tags.Normalized() {
				seen[t] = true
			}
		}
	})
	if err != nil {
		return nil, stats, err
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, stats, nil
}

func walkCards(dir string, visit func(full string)) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			visit(p)
		}
		return nil
	})
}
