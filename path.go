package statetree

import "strings"

// PathSeparator separates segments of a state path, mirroring the nesting of
// the state tree: "Move/Jump" addresses the child "Jump" under "Move".
const PathSeparator = "/"

// SplitPath splits a path into its segments, dropping empty segments so that
// leading, trailing and doubled separators are tolerated. An empty or
// all-separator path yields nil.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	raw := strings.Split(path, PathSeparator)
	segments := raw[:0]
	for _, seg := range raw {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return nil
	}
	return segments
}

// JoinPath joins segments into a path, skipping empty segments.
func JoinPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, PathSeparator)
}

// normalizePath rewrites a path into canonical segment/segment form.
// Returns ErrEmptyPath when no segments remain.
func normalizePath(path string) (string, error) {
	segments := SplitPath(path)
	if segments == nil {
		return "", ErrEmptyPath
	}
	return strings.Join(segments, PathSeparator), nil
}
