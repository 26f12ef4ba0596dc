package search

import "github.com/geekbozu/CopilotTaskMaster/internal/model"

// MatchMetadata reports whether meta satisfies every filter entry. A filter
// key missing from meta rejects the document. Both sides normalize to
// lowercase string sequences, so scalars and lists are interchangeable.
// List-valued filters require at least one element present, or all of them
// when matchAll is set.
func MatchMetadata(meta, filters model.Metadata, matchAll bool) bool {
	for _, f := range filters {
		mv, ok := meta.Get(f.Key)
		if !ok {
			return false
		}
		metaVals := mv.Normalized()
		filterVals := f.Value.Normalized()

		if f.Value.IsList() {
			if matchAll {
				for _, fv := range filterVals {
					if !contains(metaVals, fv) {
						return false
					}
				}
			} else {
				any := false
				for _, fv := range filterVals {
					if contains(metaVals, fv) {
						any = true
						break
					}
				}
				if !any {
					return false
				}
			}
			continue
		}

		if len(filterVals) == 0 || !contains(metaVals, filterVals[0]) {
			return false
		}
	}
	return true
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
