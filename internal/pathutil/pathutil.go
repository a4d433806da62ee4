package pathutil

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Normalize resolves a user-supplied path to the absolute path of the tree
// root. Relative paths are joined with the current working directory, a
// trailing separator is stripped, and the result always uses forward slashes.
// Normalize does no I/O; the path does not need to exist.
func Normalize(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("empty root path")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", p, err)
	}
	abs = filepath.ToSlash(abs)
	if abs != "/" {
		abs = strings.TrimSuffix(abs, "/")
	}
	return abs, nil
}

// Split separates an absolute root path into the leading path and the root
// directory name: /leading/path/to/directory -> ("/leading/path/to/",
// "directory"). The leading path is always separator-terminated. The
// filesystem root splits into ("/", "/").
func Split(abs string) (leading, rootName string) {
	if abs == "/" {
		return "/", "/"
	}
	leading, rootName = path.Split(strings.TrimSuffix(abs, "/"))
	return leading, rootName
}
