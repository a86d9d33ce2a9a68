package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Songmu/prompter"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	cpr "github.com/sourcefrog/cp-r"
	"github.com/sourcefrog/cp-r/internal/config"
	"github.com/sourcefrog/cp-r/internal/verify"
	"github.com/sourcefrog/cp-r/version"
)

var (
	configFlag       string
	excludeFlag      []string
	noCreateDestFlag bool
	verifyFlag       bool
	workersFlag      int
	hookFlag         []string
	forceFlag        bool
	quietFlag        bool
	jsonFlag         bool
	bufferSizeFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "cp-r <source> <destination>",
	Short: "Recursively copy a directory tree, preserving mtimes, permissions and symlinks",
	Long: `cp-r recursively copies a directory tree from source to destination,
preserving file contents, modification times, permissions, directory
structure, and symbolic links.

Existing files in the destination are never overwritten; copying stops at
the first error.

Configuration:
  Settings can be stored in ` + config.DefaultPath + ` (or --config). All
  config values can be overridden with flags for a single invocation.

  exclude (--exclude)
    Patterns for entries to skip (gitignore syntax).
    Can be specified multiple times.
    Example: cp-r --exclude "*.log" --exclude "node_modules/" src dst

  hooks (--hook)
    Commands to run in the destination after a successful copy.
    Can be specified multiple times.
    Example: cp-r --hook "npm install" src dst

  verify (--verify)
    Hash both trees after copying and report any differences.`,
	RunE:         runRoot,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	Version:      version.Version,
}

func init() {
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", config.DefaultPath, "Config file path")
	rootCmd.Flags().StringArrayVarP(&excludeFlag, "exclude", "e", nil, "Exclude entries matching pattern (gitignore syntax, can be specified multiple times)")
	rootCmd.Flags().BoolVar(&noCreateDestFlag, "no-create-dest", false, "Fail if the destination directory does not already exist")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false, "Hash source and destination after copying and report differences")
	rootCmd.Flags().IntVar(&workersFlag, "workers", 0, "Verification worker goroutines (default: number of CPUs)")
	rootCmd.Flags().StringArrayVar(&hookFlag, "hook", nil, "Run command in the destination after copying (can be specified multiple times)")
	rootCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Do not prompt before copying into a non-empty destination")
	rootCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress the progress line")
	rootCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the result as JSON")
	rootCmd.Flags().IntVar(&bufferSizeFlag, "buffer-size", 0, "Copy buffer size in bytes (default: 8 MiB)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, dest := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !forceFlag && destHasEntries(dest) {
		msg := fmt.Sprintf("destination %q is not empty and existing files are never overwritten. Continue?", dest)
		if !prompter.YN(msg, false) {
			return errors.New("aborted")
		}
	}

	var matcher gitignore.Matcher
	if len(cfg.Exclude) > 0 {
		matcher = newExcludeMatcher(cfg.Exclude)
	}

	var opts []cpr.Option
	if noCreateDestFlag {
		opts = append(opts, cpr.WithCreateDest(false))
	}
	if cfg.BufferSize > 0 {
		opts = append(opts, cpr.WithBufferSize(cfg.BufferSize))
	}
	if matcher != nil {
		opts = append(opts, cpr.WithFilter(excludeFilter(matcher)))
	}

	showProgress := !quietFlag && !jsonFlag && isatty.IsTerminal(os.Stderr.Fd())
	if showProgress {
		opts = append(opts, cpr.WithAfterEntry(progressLine(os.Stderr)))
	}

	stats, err := cpr.CopyTree(src, dest, opts...)
	if showProgress {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
	if err != nil {
		return err
	}

	if err := runHooks(ctx, cfg.Hooks, dest, os.Stderr); err != nil {
		return err
	}

	var diff *verify.Diff
	if cfg.Verify {
		diff, err = verifyTrees(ctx, src, dest, matcher, cfg.Workers)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	if jsonFlag {
		if err := printJSON(os.Stdout, stats, diff); err != nil {
			return err
		}
	} else {
		if err := printStats(os.Stdout, stats); err != nil {
			return err
		}
		if diff != nil {
			reportDiff(os.Stderr, diff)
		}
	}

	if diff != nil && !diff.Clean() {
		return fmt.Errorf("verification found %d differences",
			len(diff.Missing)+len(diff.Extra)+len(diff.Mismatched))
	}
	return nil
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	// Apply flag overrides
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = excludeFlag
	}
	if cmd.Flags().Changed("hook") {
		cfg.Hooks = hookFlag
	}
	if cmd.Flags().Changed("verify") {
		cfg.Verify = verifyFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workersFlag
	}
	if cmd.Flags().Changed("buffer-size") {
		cfg.BufferSize = bufferSizeFlag
	}

	return cfg, nil
}

// newExcludeMatcher builds a gitignore-style matcher from exclude patterns.
func newExcludeMatcher(patterns []string) gitignore.Matcher {
	var ps []gitignore.Pattern
	for _, p := range patterns {
		// Parse pattern from the tree root (empty domain means root)
		ps = append(ps, gitignore.ParsePattern(p, nil))
	}
	return gitignore.NewMatcher(ps)
}

// excludeFilter adapts a gitignore matcher to the library's filter callback.
func excludeFilter(matcher gitignore.Matcher) cpr.FilterFunc {
	return func(rel string, entry fs.DirEntry) (bool, error) {
		components := strings.Split(rel, string(filepath.Separator))
		return !matcher.Match(components, entry.IsDir()), nil
	}
}

// verifyTrees hashes both trees and diffs them. Entries excluded from the
// copy are also excluded from the source summary so they do not show up as
// missing.
func verifyTrees(ctx context.Context, src, dest string, matcher gitignore.Matcher, workers int) (*verify.Diff, error) {
	srcSum, err := verify.Tree(ctx, src, workers)
	if err != nil {
		return nil, err
	}
	destSum, err := verify.Tree(ctx, dest, workers)
	if err != nil {
		return nil, err
	}

	if matcher == nil {
		// With no exclusions the trees should be identical, so matching
		// Merkle roots prove a clean copy without a file-by-file diff.
		if srcSum.Root == destSum.Root {
			return &verify.Diff{}, nil
		}
	} else {
		for rel := range srcSum.Files {
			components := strings.Split(rel, string(filepath.Separator))
			if matcher.Match(components, false) {
				delete(srcSum.Files, rel)
			}
		}
	}

	return verify.Compare(srcSum, destSum), nil
}

// destHasEntries reports whether dest is an existing directory with at least
// one entry.
func destHasEntries(dest string) bool {
	entries, err := os.ReadDir(dest)
	return err == nil && len(entries) > 0
}

func progressLine(w io.Writer) cpr.AfterEntryFunc {
	return func(rel string, kind cpr.EntryKind, stats cpr.CopyStats) error {
		fmt.Fprintf(w, "\r\033[K%d files, %d dirs, %s | %s",
			stats.Files, stats.Dirs, formatSize(stats.FileBytes), rel)
		return nil
	}
}

func reportDiff(w io.Writer, diff *verify.Diff) {
	if diff.Clean() {
		fmt.Fprintln(w, "Verification passed: source and destination match")
		return
	}
	for _, rel := range diff.Mismatched {
		fmt.Fprintf(w, "mismatch: %s\n", rel)
	}
	for _, rel := range diff.Missing {
		fmt.Fprintf(w, "missing from destination: %s\n", rel)
	}
	for _, rel := range diff.Extra {
		fmt.Fprintf(w, "unexpected in destination: %s\n", rel)
	}
}

// formatSize formats a byte count for the progress line and stats table.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
