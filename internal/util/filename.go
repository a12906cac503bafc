package util

import (
	"strings"
)

// SanitizeFilename normalizes a user-supplied filename into a storage-safe
// form: lowercase, unsafe characters replaced with '-', repeated separators
// collapsed. Deterministic and idempotent: the same input always produces
// the same output, and sanitizing twice is a no-op. The extension (text
// after the last dot) is preserved.
func SanitizeFilename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	base := name
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		base = name[:i]
		ext = name[i+1:]
	}

	base = replaceUnsafe(base)
	ext = replaceUnsafe(ext)

	if base == "" {
		base = "file"
	}
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// Extension returns the lowercase extension of name without the dot, or ""
// when there is none. A leading dot (hidden file) is not an extension.
func Extension(name string) string {
	name = strings.ToLower(name)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return replaceUnsafe(name[i+1:])
	}
	return ""
}

func replaceUnsafe(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
