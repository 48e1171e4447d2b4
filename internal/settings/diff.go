package settings

import (
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
)

// diffMaxLines caps the preview so a large settings file cannot flood the
// terminal before the write.
const diffMaxLines = 40

// DiffPreview renders a unified diff of the pending settings change, headed
// with the file path. An empty string means nothing would change.
func DiffPreview(path string, before []byte, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	unified := udiff.Unified(path, path, string(before), string(after))
	lines := strings.Split(strings.TrimRight(unified, "\n"), "\n")
	if len(lines) > diffMaxLines {
		truncated := lines[:diffMaxLines]
		truncated = append(truncated, "... (diff truncated)")
		return strings.Join(truncated, "\n")
	}
	return strings.Join(lines, "\n")
}
