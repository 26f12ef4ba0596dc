// Package taskpath resolves caller-supplied logical paths into
// project-scoped canonical paths. It is pure string manipulation: callers
// decide what to do with the result on disk.
package taskpath

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrInvalidPath marks absolute paths and parent-directory traversal.
	ErrInvalidPath = errors.New("invalid path")
	// ErrProjectRequired marks a path that cannot be scoped to a project.
	ErrProjectRequired = errors.New("project required")
)

// Ref is a resolved path reference: the project it belongs to, the
// remainder inside that project, and the canonical project-prefixed
// relative path (always forward slashes, never a leading slash).
type Ref struct {
	Project string
	Rest    string
	Rel     string
}

// Resolve maps an optional explicit project and a logical path to a Ref.
//
// Without an explicit project the leading path segment becomes the project;
// a bare single-segment path is ambiguous and fails with ErrProjectRequired.
// With an explicit project a redundant matching prefix is stripped, while a
// different leading segment nests under the project as a plain subdirectory.
func Resolve(project, logical string) (Ref, error) {
	segs, err := split(logical)
	if err != nil {
		return Ref{}, err
	}
	if len(segs) == 0 {
		return Ref{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if project == "" {
		if len(segs) < 2 {
			return Ref{}, fmt.Errorf("%w: specify a project argument or use a project-prefixed path", ErrProjectRequired)
		}
		project = segs[0]
		segs = segs[1:]
	} else if len(segs) >= 2 && segs[0] == project {
		// Redundant project prefix; tolerate callers that always send it.
		segs = segs[1:]
	}

	rest := strings.Join(segs, "/")
	return Ref{
		Project: project,
		Rest:    rest,
		Rel:     project + "/" + rest,
	}, nil
}

// Scope is the (project, subpath) restriction applied to list, tree and tag
// operations. An empty Project means the whole store.
type Scope struct {
	Project string
	Sub     string
}

// ResolveScope applies the lenient browse-scoping rule: when no explicit
// project is given, a multi-segment subpath contributes its first segment as
// the project, and a single bare segment is itself the project. Browsing has
// no ambiguity to refuse, unlike Resolve.
func ResolveScope(project, subpath string) (Scope, error) {
	segs, err := split(subpath)
	if err != nil {
		return Scope{}, err
	}
	if project != "" {
		return Scope{Project: project, Sub: strings.Join(segs, "/")}, nil
	}
	if len(segs) == 0 {
		return Scope{}, nil
	}
	return Scope{Project: segs[0], Sub: strings.Join(segs[1:], "/")}, nil
}

// split validates a logical path and breaks it into clean segments.
// Backslashes are treated as separators so Windows-style input resolves to
// the same canonical form.
func split(p string) ([]string, error) {
	if p == "" {
		return nil, nil
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("%w: path must be relative", ErrInvalidPath)
	}
	// Reject traversal before Clean collapses it away.
	for _, s := range strings.Split(p, "/") {
		if s == ".." {
			return nil, fmt.Errorf("%w: path must not contain parent references", ErrInvalidPath)
		}
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return nil, nil
	}
	return strings.Split(cleaned, "/"), nil
}
