// Package sanitize converts raw filenames into names that are safe on
// Windows, macOS, Linux, and the major cloud storage providers.
//
// All functions are pure: no I/O, no state. Sanitize is idempotent, so it
// can be re-run over an already-processed tree without churning names.
package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// placeholder replaces a stem that sanitization reduced to nothing, so we
// never produce a hidden or empty name.
const placeholder = "file"

// systemFiles are OS artifacts that must never be renamed.
var systemFiles = map[string]bool{
	".DS_Store":                 true,
	".localized":                true,
	"Thumbs.db":                 true,
	"thumbs.db":                 true,
	"desktop.ini":               true,
	"Desktop.ini":               true,
	"$RECYCLE.BIN":              true,
	"System Volume Information": true,
}

// reservedNames are Windows device names that are invalid as file stems
// regardless of extension (checked case-insensitively).
var reservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// isForbidden reports whether r is illegal in filenames on at least one
// target platform. Both separators are included: a backslash inside a
// basename is never a separator marker, only a hazard.
func isForbidden(r rune) bool {
	switch r {
	case '<', '>', ':', '"', '|', '?', '*', '/', '\\':
		return true
	}
	return false
}

// isProblematic reports whether r is legal but known to break shell
// quoting, URL encoding, or sync-tool pattern matching.
func isProblematic(r rune) bool {
	switch r {
	case '#', '@', '!', ',', ';', '[', ']', '(', ')', '{', '}':
		return true
	}
	return false
}

// isQuote reports whether r is an apostrophe or quote character that is
// dropped outright rather than replaced.
func isQuote(r rune) bool {
	switch r {
	case '\'', '`', '‘', '’', '“', '”':
		return true
	}
	return false
}

// IsSystemFile reports whether name is an OS artifact (Finder/Explorer
// metadata, recycle bin) that should be skipped, not sanitized.
func IsSystemFile(name string) bool {
	return systemFiles[name]
}

// Sanitize returns the cross-platform-safe form of name. The stem and the
// final extension are sanitized independently and rejoined, so dots inside
// the stem survive but the extension itself only ever loses forbidden
// characters.
func Sanitize(name string) string {
	name = norm.NFC.String(name)

	stem, ext := splitExt(name)
	stem = sanitizeStem(stem)
	ext = replaceForbidden(ext)

	if stem == "" {
		stem = placeholder
	}
	if reservedNames[strings.ToLower(stem)] {
		stem = "file_" + stem
	}

	if ext != "" {
		return stem + "." + ext
	}
	return stem
}

// NeedsRename reports whether name would change under Sanitize.
func NeedsRename(name string) bool {
	return Sanitize(name) != name
}

// splitExt splits name at the last dot. A leading dot (dotfile) or a
// trailing dot does not start an extension.
func splitExt(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// replaceForbidden swaps forbidden characters for underscores, leaving
// everything else alone. Used for extensions.
func replaceForbidden(s string) string {
	return strings.Map(func(r rune) rune {
		if isForbidden(r) {
			return '_'
		}
		return r
	}, s)
}

// sanitizeStem applies the full replacement pipeline to a name stem:
// forbidden and problematic characters become underscores, quotes are
// dropped, whitespace becomes underscores, underscore runs collapse to
// one, and edge underscores are trimmed.
func sanitizeStem(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevUnderscore := false
	for _, r := range s {
		switch {
		case isQuote(r):
			continue
		case isForbidden(r) || isProblematic(r) || unicode.IsSpace(r):
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		case r == '_':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			b.WriteRune(r)
			prevUnderscore = false
		}
	}

	return strings.Trim(b.String(), "_")
}
