package search

import "strings"

// snippetContext is the number of characters kept on each side of the
// first query match.
const snippetContext = 100

// extractSnippet returns a window around the first case-insensitive match
// of query in content, ellipsis-marked where truncated. Without a literal
// match it falls back to the first 200 characters.
func extractSnippet(content, query string) string {
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))
	if idx < 0 {
		if len(content) > 200 {
			return content[:200] + "..."
		}
		return content
	}

	start := idx - snippetContext
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + snippetContext
	if end > len(content) {
		end = len(content)
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}
	return snippet
}
