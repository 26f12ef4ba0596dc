package markdown

import (
	"strings"

	"github.com/geekbozu/CopilotTaskMaster/internal/model"
)

// RenderTree prints a structure tree with box-drawing connectors. Task
// nodes show their title on the following line when one is set.
func RenderTree(root *model.TreeNode) string {
	var sb strings.Builder
	renderNode(&sb, root, "", true)
	return sb.String()
}

func renderNode(sb *strings.Builder, node *model.TreeNode, prefix string, isLast bool) {
	connector := "├── "
	extension := "│   "
	if isLast {
		connector = "└── "
		extension = "    "
	}

	name := node.Name
	if node.Type == model.NodeDirectory {
		name = headerStyle.Render(name)
	}
	sb.WriteString(prefix + connector + name + "\n")

	switch node.Type {
	case model.NodeDirectory:
		for i, child := range node.Children {
			renderNode(sb, child, prefix+extension, i == len(node.Children)-1)
		}
	case model.NodeTask:
		if node.Title != "" {
			sb.WriteString(prefix + extension + "    " + labelStyle.Render(node.Title) + "\n")
		}
	}
}
