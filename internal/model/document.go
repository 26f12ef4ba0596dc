package model

// Document is a fully loaded task card.
type Document struct {
	Path     string
	Title    string
	Content  string
	Metadata Metadata
}

// Summary is the listing/result view of a task card: everything but the
// body, which listings include only on request.
type Summary struct {
	Path     string
	Title    string
	Metadata Metadata
	Content  string // populated only when content was requested
}

// ScanStats counts the outcome of a multi-file scan: how many candidate
// files were visited and how many were skipped because they could not be
// parsed. Skips never abort a scan.
type ScanStats struct {
	Scanned int
	Skipped int
}

// Node kinds in a structure tree.
const (
	NodeDirectory = "directory"
	NodeTask      = "task"
)

// TreeNode is one node of the hierarchical structure view. Task nodes carry
// the title and the status/priority/tags metadata subset; directory nodes
// carry children.
type TreeNode struct {
	Type     string
	Name     string
	Path     string
	Title    string
	Metadata Metadata
	Children []*TreeNode
}
