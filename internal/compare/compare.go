// Package compare holds the three tree comparators: element count, element
// set and binary content. Comparators never mutate their inputs and return
// fully-populated result records.
package compare

import (
	"fmt"
	"path"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"treecomp/internal/fsys"
	"treecomp/internal/hash"
	"treecomp/internal/tree"
)

// Kind selects a comparator. Adding a kind is a compile-time change: the
// switch in Trees must be extended.
type Kind int

const (
	KindSize Kind = iota
	KindSet
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindSize:
		return "size"
	case KindSet:
		return "set"
	case KindBinary:
		return "binary"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a flag or config value to a comparison Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "size":
		return KindSize, nil
	case "set":
		return KindSet, nil
	case "binary", "bin":
		return KindBinary, nil
	}
	return 0, fmt.Errorf("unknown comparison mode %q", s)
}

// SizeResult reports an element-count comparison. Both counts are always
// populated, equal or not.
type SizeResult struct {
	Equal  bool
	CountA int
	CountB int
}

// SetResult reports a membership comparison. MissingFromA holds elements
// present only in B; MissingFromB holds elements present only in A. Both are
// sorted and empty on equality.
type SetResult struct {
	Equal        bool
	MissingFromA []string
	MissingFromB []string
}

// BinaryResult reports a content comparison. Differing is nil, not empty,
// when the comparison was meaningless (a directory tree on either side);
// Warning carries the reason in that case.
type BinaryResult struct {
	Equal     bool
	Differing []string
	Warning   string
}

// Result is the tagged outcome of Trees: exactly the field matching Kind is
// meaningful.
type Result struct {
	Kind   Kind
	Size   SizeResult
	Set    SetResult
	Binary BinaryResult
}

// Options tunes the binary comparator.
type Options struct {
	// Algorithm is the content digest. The zero value is md5.
	Algorithm hash.Algorithm

	// Workers bounds the hashing fan-out. Zero or negative picks a default
	// from the CPU count.
	Workers int

	// OnFile, when set, is called after each candidate file pair has been
	// hashed. Used by the CLI for progress reporting; may be called from
	// multiple goroutines.
	OnFile func(rel string)
}

// Trees runs the comparator selected by kind on a and b.
func Trees(fs fsys.Filesystem, a, b *tree.Tree, kind Kind, opts *Options) (*Result, error) {
	switch kind {
	case KindSize:
		return &Result{Kind: kind, Size: Size(a, b)}, nil
	case KindSet:
		return &Result{Kind: kind, Set: Set(a, b)}, nil
	case KindBinary:
		res, err := Binary(fs, a, b, opts)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: kind, Binary: res}, nil
	}
	return nil, fmt.Errorf("unknown comparison mode %q", kind)
}

// Size compares the element counts of two trees.
func Size(a, b *tree.Tree) SizeResult {
	return SizeResult{
		Equal:  a.Size() == b.Size(),
		CountA: a.Size(),
		CountB: b.Size(),
	}
}

// Set compares the element sets of two trees. It works on file trees and
// directory trees alike.
func Set(a, b *tree.Tree) SetResult {
	inA := make(map[string]bool, a.Size())
	for _, e := range a.Elements() {
		inA[e] = true
	}
	inB := make(map[string]bool, b.Size())
	for _, e := range b.Elements() {
		inB[e] = true
	}

	missingFromB := make([]string, 0)
	for _, e := range a.Elements() {
		if !inB[e] {
			missingFromB = append(missingFromB, e)
		}
	}
	missingFromA := make([]string, 0)
	for _, e := range b.Elements() {
		if !inA[e] {
			missingFromA = append(missingFromA, e)
		}
	}

	sort.Strings(missingFromA)
	sort.Strings(missingFromB)

	return SetResult{
		Equal:        len(missingFromA) == 0 && len(missingFromB) == 0,
		MissingFromA: missingFromA,
		MissingFromB: missingFromB,
	}
}

// Binary compares the content of every file present in both trees, hashing
// each side with the configured digest. Files missing on either side are not
// candidates; Set covers those. Hashing fans out over a bounded worker group;
// the reported Differing list is sorted so the result stays deterministic.
//
// Both inputs must be file trees. A directory tree on either side makes the
// comparison meaningless: the result is Equal with a nil Differing list and
// a non-empty Warning, not an error.
func Binary(fs fsys.Filesystem, a, b *tree.Tree, opts *Options) (BinaryResult, error) {
	if opts == nil {
		opts = &Options{}
	}
	if a.Kind() != tree.Files || b.Kind() != tree.Files {
		return BinaryResult{
			Equal:   true,
			Warning: "binary comparison of directory trees is meaningless",
		}, nil
	}

	candidates := intersect(a.Elements(), b.Elements())

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	var (
		mu        sync.Mutex
		differing = make([]string, 0)
	)
	var g errgroup.Group
	g.SetLimit(workers)

	for _, rel := range candidates {
		rel := rel
		g.Go(func() error {
			pathA := path.Join(a.Root(), rel)
			pathB := path.Join(b.Root(), rel)
			hashA, err := hash.File(fs, pathA, opts.Algorithm)
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", pathA, err)
			}
			hashB, err := hash.File(fs, pathB, opts.Algorithm)
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", pathB, err)
			}
			if hashA != hashB {
				mu.Lock()
				differing = append(differing, rel)
				mu.Unlock()
			}
			if opts.OnFile != nil {
				opts.OnFile(rel)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BinaryResult{}, err
	}

	sort.Strings(differing)

	return BinaryResult{
		Equal:     len(differing) == 0,
		Differing: differing,
	}, nil
}

// Equal implements whole-tree equality: same element set, and for file trees
// additionally identical content for every shared file. Ordering between
// trees is count-only (tree.Less and friends); equality is the structural
// check.
func Equal(fs fsys.Filesystem, a, b *tree.Tree, opts *Options) (bool, error) {
	if !Set(a, b).Equal {
		return false, nil
	}
	if a.Kind() != tree.Files || b.Kind() != tree.Files {
		return true, nil
	}
	res, err := Binary(fs, a, b, opts)
	if err != nil {
		return false, err
	}
	return res.Equal, nil
}

// intersect merges two sorted, duplicate-free lists into their common
// elements, preserving sort order.
func intersect(a, b []string) []string {
	out := make([]string, 0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
