package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DeriveKey builds a unique, URL-safe object key for an uploaded file. The
// UUID prefix guarantees uniqueness under concurrent uploads; the sanitized
// original name is kept so bucket listings stay readable.
func DeriveKey(filename string) string {
	return uuid.New().String() + "-" + SanitizeFilename(filename)
}

// SanitizeFilename reduces a user-supplied filename to its basename with a
// conservative charset. Returns "upload" when nothing safe remains.
func SanitizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return "upload"
	}
	return out
}
