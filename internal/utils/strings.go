package utils

import (
	"regexp"
	"strings"

	"github.com/open-season/openseason/internal/ui"
)

var (
	unsafeNameChars = regexp.MustCompile(`[^a-z0-9\-_]`)
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// SanitizeName turns a free-form case name into a lowercase, hyphenated
// file stem. The result is never empty.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = unsafeNameChars.ReplaceAllString(name, "")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if name == "" {
		name = "hunt"
	}
	return name
}
