package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"treecomp/internal/fsys"
	"treecomp/internal/pathutil"
)

// Options tunes tree construction.
type Options struct {
	// Name is an optional label for the new tree.
	Name string

	// Exclude prunes walk entries before they reach the snapshot. Patterns
	// ending in "/" match directory names anywhere on the relative path and
	// prune the whole subtree; other patterns glob-match the entry base name,
	// or the full relative path when they contain a separator.
	Exclude []string
}

// NewFileTree walks root and snapshots every regular file beneath it.
// The walk either fully succeeds or the constructor fails; an unreadable
// subdirectory is fatal.
func NewFileTree(fsys fsys.Filesystem, root string, opts *Options) (*Tree, error) {
	return build(fsys, root, Files, opts)
}

// NewDirTree walks root and snapshots every directory beneath it. The root
// directory itself is not an element.
func NewDirTree(fsys fsys.Filesystem, root string, opts *Options) (*Tree, error) {
	return build(fsys, root, Dirs, opts)
}

func build(fs fsys.Filesystem, root string, kind Kind, opts *Options) (*Tree, error) {
	if opts == nil {
		opts = &Options{}
	}

	abs, err := pathutil.Normalize(root)
	if err != nil {
		return nil, err
	}
	leading, rootName := pathutil.Split(abs)

	elements := make([]string, 0)
	err = fsys.Walk(fs, abs, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel := relativize(abs, path)
		if rel == "" {
			// The root itself is never an element.
			return nil
		}

		if shouldExclude(rel, opts.Exclude) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch kind {
		case Files:
			if info.Mode().IsRegular() {
				elements = append(elements, rel)
			}
		case Dirs:
			if info.IsDir() {
				elements = append(elements, rel)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", abs, err)
	}

	sort.Strings(elements)

	return &Tree{
		root:     abs,
		leading:  leading,
		rootName: rootName,
		kind:     kind,
		elements: elements,
		filters:  make([]string, 0),
		Name:     opts.Name,
	}, nil
}

// relativize strips the root prefix and its separator, yielding the
// slash-separated element path. The root itself maps to "".
func relativize(root, path string) string {
	path = filepath.ToSlash(path)
	if path == root {
		return ""
	}
	prefix := root + "/"
	if root == "/" {
		prefix = "/"
	}
	return strings.TrimPrefix(path, prefix)
}

func shouldExclude(rel string, exclusions []string) bool {
	for _, pattern := range exclusions {
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			for _, part := range strings.Split(rel, "/") {
				if matched, _ := filepath.Match(dirPattern, part); matched {
					return true
				}
				if part == dirPattern {
					return true
				}
			}
			continue
		}

		if matched, err := filepath.Match(pattern, filepath.Base(rel)); err == nil && matched {
			return true
		}
		if strings.Contains(pattern, "/") {
			if matched, err := filepath.Match(pattern, rel); err == nil && matched {
				return true
			}
		}
	}
	return false
}
