package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/geekbozu/CopilotTaskMaster/internal/model"
)

// Parse reads YAML frontmatter and body from r. A file with no frontmatter
// block parses as an empty-title document whose body is the whole file.
func Parse(r io.Reader) (model.FrontMatter, string, error) {
	var fm model.FrontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return fm, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return fm, strings.TrimSpace(string(body)), nil
}

// Marshal serializes fm as YAML frontmatter followed by body.
func Marshal(fm model.FrontMatter, body string) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}
