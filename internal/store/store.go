// Package store owns the task-card tree: one markdown file per card under
// <base>/<project>/<nested path>.md. Every operation resolves its logical
// path first, then performs a single file operation. Absence of a card is a
// normal result, not an error; only path resolution and I/O fail.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/geekbozu/CopilotTaskMaster/internal/markdown"
	"github.com/geekbozu/CopilotTaskMaster/internal/model"
	"github.com/geekbozu/CopilotTaskMaster/internal/taskpath"
)

// ErrProjectNotFound marks a structure request for a project that does not
// exist on disk.
var ErrProjectNotFound = errors.New("project not found")

// Store manages task cards under a base directory.
type Store struct {
	BaseDir string
}

func New(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

// physical converts a canonical relative path to the on-disk location.
func (s *Store) physical(rel string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(rel))
}

var markdownExt = regexp.MustCompile(`\.md$`)

type createInput struct {
	Path  string
	Title string
}

func (in createInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Path, validation.Required, validation.Match(markdownExt).Error("must end with .md")),
		validation.Field(&in.Title, validation.Required),
	)
}

// Create writes a new task card, creating parent directories as needed.
// An existing card at the same path is overwritten. The store stamps
// created and updated after merging caller metadata, so those keys cannot
// be supplied from outside.
func (s *Store) Create(project, path, title, content string, meta model.Metadata) (*model.Summary, error) {
	if err := (createInput{Path: path, Title: title}).Validate(); err != nil {
		return nil, err
	}
	ref, err := taskpath.Resolve(project, path)
	if err != nil {
		return nil, err
	}

	fm := model.FrontMatter{Title: title}
	fm.Meta.Merge(meta)
	ts := now()
	fm.Meta.Set(model.KeyCreated, model.String(ts))
	fm.Meta.Set(model.KeyUpdated, model.String(ts))

	if err := s.write(ref.Rel, fm, content); err != nil {
		return nil, err
	}
	return &model.Summary{Path: ref.Rel, Title: title, Metadata: fm.Meta}, nil
}

// Read loads a task card. A missing card returns (nil, nil).
func (s *Store) Read(project, path string) (*model.Document, error) {
	ref, err := taskpath.Resolve(project, path)
	if err != nil {
		return nil, err
	}
	fm, body, err := s.read(ref.Rel)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &model.Document{Path: ref.Rel, Title: fm.Title, Content: body, Metadata: fm.Meta}, nil
}

// Update holds the partial changes of an update: nil pointers leave the
// field unchanged, and Metadata is merged key-by-key into the existing
// metadata rather than replacing it.
type Update struct {
	Title    *string
	Content  *string
	Metadata model.Metadata
}

// Update applies a partial update and refreshes the updated timestamp.
// A missing card returns (nil, nil).
func (s *Store) Update(project, path string, upd Update) (*model.Summary, error) {
	ref, err := taskpath.Resolve(project, path)
	if err != nil {
		return nil, err
	}
	fm, body, err := s.read(ref.Rel)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if upd.Title != nil {
		fm.Title = *upd.Title
	}
	if upd.Content != nil {
		body = *upd.Content
	}
	fm.Meta.Merge(upd.Metadata)
	fm.Meta.Set(model.KeyUpdated, model.String(now()))

	if err := s.write(ref.Rel, fm, body); err != nil {
		return nil, err
	}
	return &model.Summary{Path: ref.Rel, Title: fm.Title, Metadata: fm.Meta}, nil
}

// Delete removes a task card and prunes any directories it leaves empty,
// walking upward until a non-empty directory or the store root. Returns
// false when the card did not exist.
func (s *Store) Delete(project, path string) (bool, error) {
	ref, err := taskpath.Resolve(project, path)
	if err != nil {
		return false, err
	}
	full := s.physical(ref.Rel)
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting %s: %w", ref.Rel, err)
	}
	s.pruneEmptyDirs(filepath.Dir(full))
	return true, nil
}

// Move renames a task card. Returns false, without touching anything, when
// the source is missing or the destination already exists. The same
// explicit project applies to both paths.
func (s *Store) Move(project, oldPath, newPath string) (bool, error) {
	oldRef, err := taskpath.Resolve(project, oldPath)
	if err != nil {
		return false, err
	}
	newRef, err := taskpath.Resolve(project, newPath)
	if err != nil {
		return false, err
	}

	oldFull := s.physical(oldRef.Rel)
	newFull := s.physical(newRef.Rel)
	if _, err := os.Stat(oldFull); err != nil {
		return false, nil
	}
	if _, err := os.Stat(newFull); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(newFull), 0755); err != nil {
		return false, fmt.Errorf("creating parent dir: %w", err)
	}
	if err := os.Rename(oldFull, newFull); err != nil {
		return false, fmt.Errorf("moving %s to %s: %w", oldRef.Rel, newRef.Rel, err)
	}
	s.pruneEmptyDirs(filepath.Dir(oldFull))
	return true, nil
}

func (s *Store) write(rel string, fm model.FrontMatter, body string) error {
	data, err := markdown.Marshal(fm, body)
	if err != nil {
		return err
	}
	full := s.physical(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("creating parent dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

func (s *Store) read(rel string) (model.FrontMatter, string, error) {
	return s.readFile(s.physical(rel))
}

// pruneEmptyDirs removes now-empty directories from dir upward, stopping at
// the first non-empty directory or the store root. Failures are ignored:
// pruning is best-effort cleanup after a successful delete or move.
func (s *Store) pruneEmptyDirs(dir string) {
	root := filepath.Clean(s.BaseDir)
	for dir != root {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

func now() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}
