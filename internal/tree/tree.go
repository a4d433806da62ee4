// Package tree builds and queries snapshots of filesystem subtrees.
//
// A Tree is a sorted list of root-relative paths taken once, at construction
// time, by walking a root directory. A file tree holds every regular file
// under the root; a directory tree holds every directory (the root itself
// excluded). Trees never rescan; comparisons and filters operate on the
// snapshot.
package tree

import (
	"fmt"
	"path"
	"strings"
)

// Kind says which entries a Tree holds.
type Kind int

const (
	Files Kind = iota
	Dirs
)

func (k Kind) String() string {
	if k == Dirs {
		return "directory tree"
	}
	return "file tree"
}

// Tree is an immutable-after-construction snapshot of the paths under one
// root. Elements are root-relative, use forward slashes, contain no
// duplicates and are sorted ascending. Filtering is the only mutation;
// everything else is read-only.
type Tree struct {
	root     string // absolute, no trailing separator
	leading  string // parent of root, separator-terminated
	rootName string // final path segment of root
	kind     Kind
	elements []string
	filters  []string

	// Name is an optional user label with no uniqueness constraint.
	Name string
}

// Root returns the absolute path of the tree root.
func (t *Tree) Root() string { return t.root }

// LeadingPath returns everything before the root directory name,
// separator-terminated.
func (t *Tree) LeadingPath() string { return t.leading }

// RootName returns the name of the root directory.
func (t *Tree) RootName() string { return t.rootName }

// Kind reports whether the tree holds files or directories.
func (t *Tree) Kind() Kind { return t.kind }

// Size returns the number of elements in the tree.
func (t *Tree) Size() int { return len(t.elements) }

// Elements returns the tree's relative paths in sorted snapshot order.
// Callers must not modify the returned slice.
func (t *Tree) Elements() []string { return t.elements }

// At returns the element at index i in snapshot order.
func (t *Tree) At(i int) string { return t.elements[i] }

// AbsElements returns the elements joined under the tree root.
func (t *Tree) AbsElements() []string {
	abs := make([]string, len(t.elements))
	for i, e := range t.elements {
		abs[i] = path.Join(t.root, e)
	}
	return abs
}

// AppliedFilters returns the log of filter expressions applied so far, in
// application order. Inverted filters are recorded with a "!><" prefix.
func (t *Tree) AppliedFilters() []string { return t.filters }

// Contains reports whether rel is an element of the tree.
func (t *Tree) Contains(rel string) bool {
	for _, e := range t.elements {
		if e == rel {
			return true
		}
	}
	return false
}

// Less orders trees by element count only. It says nothing about membership:
// a "greater" tree is not a superset of a smaller one.
func (t *Tree) Less(other *Tree) bool { return t.Size() < other.Size() }

// LessOrEqual orders trees by element count only.
func (t *Tree) LessOrEqual(other *Tree) bool { return t.Size() <= other.Size() }

// Greater orders trees by element count only.
func (t *Tree) Greater(other *Tree) bool { return t.Size() > other.Size() }

// GreaterOrEqual orders trees by element count only.
func (t *Tree) GreaterOrEqual(other *Tree) bool { return t.Size() >= other.Size() }

// SameElements reports whether both trees hold exactly the same element set.
// This is the whole of directory-tree equality; file trees additionally need
// a binary comparison of their contents.
func (t *Tree) SameElements(other *Tree) bool {
	if len(t.elements) != len(other.elements) {
		return false
	}
	// Both sides are sorted and duplicate-free.
	for i, e := range t.elements {
		if other.elements[i] != e {
			return false
		}
	}
	return true
}

func (t *Tree) String() string {
	return fmt.Sprintf("%s named <%s>\nroot at <%s>\n<%d> elements\nfilters <%s>\n",
		t.kind, t.Name, t.root, t.Size(), strings.Join(t.filters, "> <&> <"))
}
