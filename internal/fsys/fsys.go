package fsys

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Filesystem is the provider the tree builder and content hasher read from.
// It is satisfied by the native filesystem (OS) and by an in-memory
// filesystem (InMemory) used in tests.
type Filesystem = billy.Filesystem

// OS returns a filesystem backed by the native OS, rooted at /.
func OS() Filesystem {
	return osfs.New("/")
}

// InMemory returns an empty in-memory filesystem.
func InMemory() Filesystem {
	return memfs.New()
}

// Walk walks the subtree rooted at root, calling fn for every entry.
// Errors encountered while walking are passed to fn; returning them from fn
// aborts the walk.
func Walk(fsys Filesystem, root string, fn filepath.WalkFunc) error {
	return util.Walk(fsys, root, fn)
}

// ReadFile reads the whole named file. Intended for the CLI's diff display,
// not for hashing, which streams.
func ReadFile(fsys Filesystem, name string) ([]byte, error) {
	return util.ReadFile(fsys, name)
}

// WriteFile writes data to the named file, creating parent directories as
// needed. Used by tests to lay out fixtures on an in-memory filesystem.
func WriteFile(fsys Filesystem, name string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(name); dir != "" && dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return util.WriteFile(fsys, name, data, perm)
}
