package tree

import (
	"os"
	"path/filepath"
	"testing"

	"treecomp/internal/fsys"
)

// The memfs fixtures cover the walk logic; this exercises the same builder
// against the real filesystem provider.
func TestNewFileTree_OSFilesystem(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"file1.txt",
		"subdir/file2.txt",
		"subdir/nested/file3.md",
	}
	for _, f := range files {
		fullPath := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("content"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}

	tr, err := NewFileTree(fsys.OS(), tmpDir, nil)
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}

	if tr.Size() != len(files) {
		t.Errorf("Expected %d elements, got %d: %v", len(files), tr.Size(), tr.Elements())
	}

	dt, err := NewDirTree(fsys.OS(), tmpDir, nil)
	if err != nil {
		t.Fatalf("NewDirTree failed: %v", err)
	}
	want := []string{"subdir", "subdir/nested"}
	if dt.Size() != len(want) {
		t.Fatalf("Expected %d dirs, got %d: %v", len(want), dt.Size(), dt.Elements())
	}
	for i, e := range want {
		if dt.At(i) != e {
			t.Errorf("Element %d: expected %q, got %q", i, e, dt.At(i))
		}
	}
}
