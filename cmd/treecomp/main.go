// Package main provides the treecomp CLI. It resolves two root paths, takes
// file or directory snapshots of them and reports how they differ in size,
// membership or binary content. All comparison logic lives in the internal
// packages; this binary is glue: flags in, formatted report out.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"treecomp/internal/compare"
	"treecomp/internal/config"
	"treecomp/internal/fsys"
	"treecomp/internal/hash"
	"treecomp/internal/progress"
	"treecomp/internal/tree"
)

const (
	exitEqual   = 0
	exitDiffers = 1
	exitError   = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
}

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "treecomp",
		Short:         "Compare two directory structures by size, membership or content",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", ".treecomp.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newCompareCmd(flags))
	cmd.AddCommand(newFingerprintCmd(flags))
	cmd.AddCommand(newListCmd(flags))

	return cmd
}

type compareFlags struct {
	mode     string
	dirsOnly bool
	algo     string
	workers  int
	filter   string
	regex    bool
	invert   bool
	showDiff bool
	output   string
}

func newCompareCmd(root *rootFlags) *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare <dirA> <dirB>",
		Short: "Compare two directory trees",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(root, flags, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "size", "comparison mode: size, set or binary")
	cmd.Flags().BoolVarP(&flags.dirsOnly, "dirs", "d", false, "compare directory structure instead of files")
	cmd.Flags().StringVar(&flags.algo, "algo", "", "content digest for binary mode (md5, sha1, sha256, xxh64)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "hashing worker goroutines (0 = auto)")
	cmd.Flags().StringVarP(&flags.filter, "filter", "f", "", "filter elements before comparing")
	cmd.Flags().BoolVar(&flags.regex, "regex", false, "treat --filter as a full-match regular expression")
	cmd.Flags().BoolVar(&flags.invert, "invert", false, "keep elements NOT matching --filter")
	cmd.Flags().BoolVar(&flags.showDiff, "diff", false, "show unified diffs of differing files (binary mode)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "print", "output sink: print, pager or editor")

	return cmd
}

func runCompare(root *rootFlags, flags *compareFlags, pathA, pathB string) error {
	kind, err := compare.ParseKind(flags.mode)
	if err != nil {
		return err
	}
	sink, err := parseSink(flags.output)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(root.configPath)
	if err != nil {
		return err
	}
	algoName := flags.algo
	if algoName == "" {
		algoName = cfg.Algorithm
	}
	algo, err := hash.ParseAlgorithm(algoName)
	if err != nil {
		return err
	}
	workers := flags.workers
	if workers == 0 {
		workers = cfg.Workers
	}

	fs := fsys.OS()
	treeA, err := buildTree(fs, pathA, "A", flags.dirsOnly, cfg.Exclude)
	if err != nil {
		return err
	}
	treeB, err := buildTree(fs, pathB, "B", flags.dirsOnly, cfg.Exclude)
	if err != nil {
		return err
	}

	if flags.filter != "" {
		opts := tree.FilterOptions{Regex: flags.regex, Invert: flags.invert}
		if err := treeA.FilterInPlace(flags.filter, opts); err != nil {
			return err
		}
		if err := treeB.FilterInPlace(flags.filter, opts); err != nil {
			return err
		}
		slog.Debug("filter applied",
			"expression", flags.filter,
			"sizeA", treeA.Size(),
			"sizeB", treeB.Size())
	}

	opts := &compare.Options{Algorithm: algo, Workers: workers}
	var bar *progress.Bar
	if kind == compare.KindBinary && !flags.dirsOnly {
		shared := compare.Set(treeA, treeB)
		candidates := treeA.Size() - len(shared.MissingFromB)
		bar = progress.New(int64(candidates))
		opts.OnFile = func(rel string) { bar.Increment(rel) }
	}

	result, err := compare.Trees(fs, treeA, treeB, kind, opts)
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	var report strings.Builder
	report.WriteString(formatResult(treeA, treeB, result))

	if flags.showDiff && result.Kind == compare.KindBinary && len(result.Binary.Differing) > 0 {
		report.WriteString("\n")
		report.WriteString(formatDiffs(fs, treeA, treeB, result.Binary.Differing))
	}

	if err := sink.Write(report.String()); err != nil {
		return err
	}

	if !resultEqual(result) {
		os.Exit(exitDiffers)
	}
	return nil
}

func resultEqual(res *compare.Result) bool {
	switch res.Kind {
	case compare.KindSize:
		return res.Size.Equal
	case compare.KindSet:
		return res.Set.Equal
	case compare.KindBinary:
		return res.Binary.Equal
	}
	return false
}

func newFingerprintCmd(root *rootFlags) *cobra.Command {
	var dirsOnly bool
	var algoName string

	cmd := &cobra.Command{
		Use:   "fingerprint <dir>",
		Short: "Print a content fingerprint of a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(root.configPath)
			if err != nil {
				return err
			}
			if algoName == "" {
				algoName = cfg.Algorithm
			}
			algo, err := hash.ParseAlgorithm(algoName)
			if err != nil {
				return err
			}

			fs := fsys.OS()
			t, err := buildTree(fs, args[0], "", dirsOnly, cfg.Exclude)
			if err != nil {
				return err
			}
			fp, err := t.Fingerprint(fs, algo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", fp, t.Root())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dirsOnly, "dirs", "d", false, "fingerprint directory structure instead of files")
	cmd.Flags().StringVar(&algoName, "algo", "", "content digest (md5, sha1, sha256, xxh64)")

	return cmd
}

func newListCmd(root *rootFlags) *cobra.Command {
	var dirsOnly bool
	var filter string
	var regex, invert bool

	cmd := &cobra.Command{
		Use:   "list <dir>",
		Short: "Print the elements of a directory snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(root.configPath)
			if err != nil {
				return err
			}

			fs := fsys.OS()
			t, err := buildTree(fs, args[0], "", dirsOnly, cfg.Exclude)
			if err != nil {
				return err
			}
			if filter != "" {
				if err := t.FilterInPlace(filter, tree.FilterOptions{Regex: regex, Invert: invert}); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, t.String())
			for _, e := range t.Elements() {
				fmt.Fprintln(out, e)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dirsOnly, "dirs", "d", false, "list directories instead of files")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "filter elements")
	cmd.Flags().BoolVar(&regex, "regex", false, "treat --filter as a full-match regular expression")
	cmd.Flags().BoolVar(&invert, "invert", false, "keep elements NOT matching --filter")

	return cmd
}

func buildTree(fs fsys.Filesystem, path, name string, dirsOnly bool, exclude []string) (*tree.Tree, error) {
	opts := &tree.Options{Name: name, Exclude: exclude}
	if dirsOnly {
		return tree.NewDirTree(fs, path, opts)
	}
	return tree.NewFileTree(fs, path, opts)
}
