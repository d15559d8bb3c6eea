package bundle

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	kerrors "github.com/open-season/openseason/internal/errors"
)

// SafeJoin resolves an archive entry name against root and returns the
// destination path. It fails with ErrPathTraversal unless the result lies
// strictly inside root.
func SafeJoin(root, name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: invalid entry name %q", kerrors.ErrPathTraversal, name)
	}

	// Zip names are slash-separated. A backslash is either a Windows
	// separator smuggled in or a name no other platform can reproduce.
	if strings.Contains(name, `\`) {
		return "", fmt.Errorf("%w: backslash in entry %q", kerrors.ErrPathTraversal, name)
	}
	if path.IsAbs(name) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" || strings.Contains(name, ":") {
		return "", fmt.Errorf("%w: absolute entry %q", kerrors.ErrPathTraversal, name)
	}

	trimmed := strings.TrimSuffix(name, "/")
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: parent segment in entry %q", kerrors.ErrPathTraversal, name)
		}
	}

	local := filepath.FromSlash(trimmed)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: entry %q escapes the hunt root", kerrors.ErrPathTraversal, name)
	}

	joined := filepath.Join(root, local)
	rel, err := filepath.Rel(root, joined)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: entry %q resolves outside the hunt root", kerrors.ErrPathTraversal, name)
	}
	return joined, nil
}
