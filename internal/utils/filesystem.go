package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ValidateSegment reports whether name can be used as a single directory
// entry under a trusted root: non-empty, valid UTF-8, no separators, not
// "." or "..", and not hidden. '?', '#' and '%' are refused as well since
// the name ends up inside a SQLite file URI.
func ValidateSegment(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name is empty")
	case !utf8.ValidString(name):
		return fmt.Errorf("name %q is not valid UTF-8", name)
	case name == "." || name == "..":
		return fmt.Errorf("name %q is reserved", name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("name %q must not start with a dot", name)
	case strings.ContainsAny(name, `/\:`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("name %q contains a path separator", name)
	case strings.ContainsAny(name, "?#%"):
		return fmt.Errorf("name %q contains one of ?, # or %%", name)
	case !filepath.IsLocal(name):
		return fmt.Errorf("name %q is not a local path", name)
	}
	return nil
}

// DirExists returns true if path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// FileExists returns true if path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
