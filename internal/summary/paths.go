package summary

import (
	"path/filepath"
	"strings"
)

// RelativePath renders key relative to root when it lies inside root. Relative
// keys are resolved against root. Keys outside root are returned unchanged.
func RelativePath(root, key string) string {
	if root == "" {
		return key
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return key
	}
	target := key
	if !filepath.IsAbs(target) {
		target = filepath.Join(absRoot, target)
	}
	rel, err := filepath.Rel(absRoot, filepath.Clean(target))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return key
	}
	return filepath.ToSlash(rel)
}
