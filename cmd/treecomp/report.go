package main

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"

	"treecomp/internal/compare"
	"treecomp/internal/fsys"
	"treecomp/internal/tree"
)

// maxDiffBytes guards the --diff display against huge or binary files.
const maxDiffBytes = 512 * 1024

func formatResult(a, b *tree.Tree, res *compare.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "A: %s\n", a.Root())
	fmt.Fprintf(&sb, "B: %s\n\n", b.Root())

	switch res.Kind {
	case compare.KindSize:
		formatSize(&sb, res.Size)
	case compare.KindSet:
		formatSet(&sb, res.Set)
	case compare.KindBinary:
		formatBinary(&sb, res.Binary)
	}

	return sb.String()
}

func formatSize(sb *strings.Builder, res compare.SizeResult) {
	if res.Equal {
		fmt.Fprintf(sb, "Equal size: %d elements on both sides.\n", res.CountA)
		return
	}
	fmt.Fprintf(sb, "Sizes differ: A has %d elements, B has %d.\n", res.CountA, res.CountB)
}

func formatSet(sb *strings.Builder, res compare.SetResult) {
	if res.Equal {
		fmt.Fprintf(sb, "Equal sets: both sides hold the same elements.\n")
		return
	}
	if len(res.MissingFromA) > 0 {
		fmt.Fprintf(sb, "MISSING FROM A (%d, present only in B):\n", len(res.MissingFromA))
		for _, e := range res.MissingFromA {
			fmt.Fprintf(sb, "  - %s\n", e)
		}
		fmt.Fprintln(sb)
	}
	if len(res.MissingFromB) > 0 {
		fmt.Fprintf(sb, "MISSING FROM B (%d, present only in A):\n", len(res.MissingFromB))
		for _, e := range res.MissingFromB {
			fmt.Fprintf(sb, "  - %s\n", e)
		}
		fmt.Fprintln(sb)
	}
	fmt.Fprintf(sb, "Summary: %d only in B, %d only in A\n",
		len(res.MissingFromA), len(res.MissingFromB))
}

func formatBinary(sb *strings.Builder, res compare.BinaryResult) {
	if res.Warning != "" {
		fmt.Fprintf(sb, "Warning: %s\n", res.Warning)
		return
	}
	if res.Equal {
		fmt.Fprintf(sb, "Equal content: every shared file matches.\n")
		return
	}
	fmt.Fprintf(sb, "DIFFERING CONTENT (%d files):\n", len(res.Differing))
	for _, e := range res.Differing {
		fmt.Fprintf(sb, "  ~ %s\n", e)
	}
}

// formatDiffs renders a unified diff for each differing file. Files that are
// too large are skipped with a note; read failures degrade to a note as well
// since the comparison itself already succeeded.
func formatDiffs(fs fsys.Filesystem, a, b *tree.Tree, differing []string) string {
	var sb strings.Builder

	for _, rel := range differing {
		contentA, errA := fsys.ReadFile(fs, path.Join(a.Root(), rel))
		contentB, errB := fsys.ReadFile(fs, path.Join(b.Root(), rel))
		if errA != nil || errB != nil {
			slog.Warn("skipping diff", "path", rel, "errA", errA, "errB", errB)
			fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n# diff unavailable\n\n", rel, rel)
			continue
		}
		if len(contentA)+len(contentB) > maxDiffBytes {
			fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n# diff omitted (oversize)\n\n", rel, rel)
			continue
		}

		u := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(contentA)),
			B:        difflib.SplitLines(string(contentB)),
			FromFile: "a/" + rel,
			ToFile:   "b/" + rel,
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(u)
		if err != nil || text == "" {
			fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n# binary files differ\n\n", rel, rel)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String()
}
