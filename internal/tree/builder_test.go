package tree

import (
	"sort"
	"testing"

	"treecomp/internal/fsys"
)

// fixtureFS lays out a small source tree on an in-memory filesystem.
func fixtureFS(t *testing.T, files map[string]string) fsys.Filesystem {
	t.Helper()
	fs := fsys.InMemory()
	for path, content := range files {
		if err := fsys.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create fixture %s: %v", path, err)
		}
	}
	return fs
}

func TestNewFileTree_CollectsAllFiles(t *testing.T) {
	fs := fixtureFS(t, map[string]string{
		"/src/file1.txt":            "1",
		"/src/file2.go":             "2",
		"/src/subdir/file3.txt":     "3",
		"/src/subdir/nested/f4.md":  "4",
		"/other/not-in-tree.txt":    "x",
		"/src2/also-not-in-tree.md": "y",
	})

	tr, err := NewFileTree(fs, "/src", nil)
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}

	want := []string{"file1.txt", "file2.go", "subdir/file3.txt", "subdir/nested/f4.md"}
	sort.Strings(want)
	if tr.Size() != len(want) {
		t.Fatalf("Expected %d elements, got %d: %v", len(want), tr.Size(), tr.Elements())
	}
	for i, e := range want {
		if tr.At(i) != e {
			t.Errorf("Element %d: expected %q, got %q", i, e, tr.At(i))
		}
	}
}

func TestNewFileTree_SortedAndUnique(t *testing.T) {
	fs := fixtureFS(t, map[string]string{
		"/src/z.txt":     "",
		"/src/a.txt":     "",
		"/src/m/b.txt":   "",
		"/src/m/a.txt":   "",
		"/src/aaa/z.txt": "",
	})

	tr, err := NewFileTree(fs, "/src", nil)
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}

	elements := tr.Elements()
	for i := 1; i < len(elements); i++ {
		if elements[i-1] >= elements[i] {
			t.Errorf("Elements not strictly ascending at %d: %q >= %q",
				i, elements[i-1], elements[i])
		}
	}
}

func TestNewDirTree_ExcludesRoot(t *testing.T) {
	fs := fixtureFS(t, map[string]string{
		"/src/a/x.txt":     "1",
		"/src/a/sub/y.txt": "2",
		"/src/b/z.txt":     "3",
	})

	tr, err := NewDirTree(fs, "/src", nil)
	if err != nil {
		t.Fatalf("NewDirTree failed: %v", err)
	}

	want := []string{"a", "a/sub", "b"}
	if tr.Size() != len(want) {
		t.Fatalf("Expected %d dirs, got %d: %v", len(want), tr.Size(), tr.Elements())
	}
	for i, e := range want {
		if tr.At(i) != e {
			t.Errorf("Element %d: expected %q, got %q", i, e, tr.At(i))
		}
	}
	for _, e := range tr.Elements() {
		if e == "" || e == "." {
			t.Errorf("Root directory must not be an element, found %q", e)
		}
	}
}

func TestNewFileTree_TrailingSeparator(t *testing.T) {
	fs := fixtureFS(t, map[string]string{"/src/f.txt": ""})

	tr, err := NewFileTree(fs, "/src/", nil)
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}

	if tr.Root() != "/src" {
		t.Errorf("Expected root /src, got %q", tr.Root())
	}
	if tr.LeadingPath() != "/" || tr.RootName() != "src" {
		t.Errorf("Expected (/, src), got (%q, %q)", tr.LeadingPath(), tr.RootName())
	}
}

func TestNewFileTree_WithExclusions(t *testing.T) {
	fs := fixtureFS(t, map[string]string{
		"/src/main.go":             "",
		"/src/main.tmp":            "",
		"/src/node_modules/lib.js": "",
		"/src/pkg/util.go":         "",
	})

	tr, err := NewFileTree(fs, "/src", &Options{
		Exclude: []string{"*.tmp", "node_modules/"},
	})
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}

	want := []string{"main.go", "pkg/util.go"}
	if tr.Size() != len(want) {
		t.Fatalf("Expected %d elements, got %d: %v", len(want), tr.Size(), tr.Elements())
	}
	for i, e := range want {
		if tr.At(i) != e {
			t.Errorf("Element %d: expected %q, got %q", i, e, tr.At(i))
		}
	}
}

func TestNewFileTree_MissingRoot(t *testing.T) {
	fs := fsys.InMemory()
	if _, err := NewFileTree(fs, "/does/not/exist", nil); err == nil {
		t.Error("NewFileTree should fail on a missing root")
	}
}

func TestNewFileTree_Name(t *testing.T) {
	fs := fixtureFS(t, map[string]string{"/src/f.txt": ""})

	tr, err := NewFileTree(fs, "/src", &Options{Name: "snapshot-a"})
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}
	if tr.Name != "snapshot-a" {
		t.Errorf("Expected name snapshot-a, got %q", tr.Name)
	}
}

func TestTree_AbsElements(t *testing.T) {
	fs := fixtureFS(t, map[string]string{
		"/src/a.txt":   "",
		"/src/b/c.txt": "",
	})

	tr, err := NewFileTree(fs, "/src", nil)
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}

	want := []string{"/src/a.txt", "/src/b/c.txt"}
	got := tr.AbsElements()
	if len(got) != len(want) {
		t.Fatalf("Expected %d abs elements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AbsElements[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTree_CountOrdering(t *testing.T) {
	fs := fixtureFS(t, map[string]string{
		"/big/a.txt":   "",
		"/big/b.txt":   "",
		"/big/c.txt":   "",
		"/small/a.txt": "",
	})

	big, err := NewFileTree(fs, "/big", nil)
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}
	small, err := NewFileTree(fs, "/small", nil)
	if err != nil {
		t.Fatalf("NewFileTree failed: %v", err)
	}

	if !small.Less(big) || !small.LessOrEqual(big) {
		t.Error("small should order below big")
	}
	if !big.Greater(small) || !big.GreaterOrEqual(small) {
		t.Error("big should order above small")
	}
	if big.Less(small) {
		t.Error("big.Less(small) should be false")
	}
}
