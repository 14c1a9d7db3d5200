package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/renameio/v2"
	"github.com/google/subcommands"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pkg/diff/ctxt"
	"github.com/pkg/diff/myers"
	"github.com/pkg/diff/write"

	"github.com/a-sync/fnf-presets/manifest"
)

const defaultManifest = "presets.hcl"

// errInvalidManifest reports a manifest whose diagnostics were already
// written.
var errInvalidManifest = errors.New("invalid manifest")

type FormatCommand struct {
	DisableCheck bool
	Overwrite    bool
	ContextSize  int
}

func (*FormatCommand) Name() string     { return "fmt" }
func (*FormatCommand) Synopsis() string { return "format manifests" }
func (*FormatCommand) Usage() string {
	return `Usage: presets fmt [-c int] [-w] [-nocheck] [manifest paths]

	Formats HCL manifests using standard syntax. Without -w, prints a
	unified diff of the changes with the given context size.

Flags:
`
}

func (cmd *FormatCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.DisableCheck, "nocheck", false, "disable diagnostics")
	fs.BoolVar(&cmd.Overwrite, "w", false, "write result to (source) file instead of stdout")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context, negative for whole files")
}

func (cmd *FormatCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var chk *manifestChecker
	if !cmd.DisableCheck {
		chk = newManifestChecker()
	}
	_, color := fdinfo(int(os.Stdout.Fd()))

	for _, fpath := range manifestPaths(fs.Args()) {
		err := cmd.format(ctx, os.Stdout, fpath, chk, color)
		if errors.Is(err, errInvalidManifest) {
			return subcommands.ExitFailure
		}
		if err != nil {
			log.Printf("fmt %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// format rewrites fpath in place or writes its diff to w. A nil chk skips
// validation.
func (cmd *FormatCommand) format(ctx context.Context, w io.Writer, fpath string, chk *manifestChecker, color bool) error {
	src, err := os.ReadFile(fpath)
	if err != nil {
		return err
	}
	if chk != nil {
		if err := chk.check(src, fpath); err != nil {
			return err
		}
	}

	out := hclwrite.Format(src)
	if bytes.Equal(src, out) {
		return nil
	}
	if cmd.Overwrite {
		return renameio.WriteFile(fpath, out, 0644)
	}
	return writeDiff(ctx, w, filepath.ToSlash(fpath), src, out, cmd.ContextSize, color)
}

// manifestPaths sorts and dedupes paths, defaulting to the manifest in the
// working directory.
func manifestPaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{defaultManifest}
	}
	paths = slices.Clone(paths)
	slices.Sort(paths)
	return slices.Compact(paths)
}

// manifestChecker decodes manifests and reports their diagnostics.
type manifestChecker struct {
	parser *hclparse.Parser
}

func newManifestChecker() *manifestChecker {
	return &manifestChecker{parser: hclparse.NewParser()}
}

func (c *manifestChecker) check(src []byte, fpath string) error {
	_, diags := manifest.DecodeHCL(c.parser, src, fpath)
	if len(diags) > 0 {
		diagWr, _ := newDiagWr(c.parser)
		if err := diagWr.WriteDiagnostics(diags); err != nil {
			return err
		}
	}
	if diags.HasErrors() {
		return errInvalidManifest
	}
	return nil
}

// lines is a line-by-line diff pair.
type lines struct {
	a, b [][]byte
}

func (l *lines) LenA() int             { return len(l.a) }
func (l *lines) LenB() int             { return len(l.b) }
func (l *lines) Equal(ai, bi int) bool { return bytes.Equal(l.a[ai], l.b[bi]) }

func (l *lines) WriteATo(w io.Writer, ai int) (int, error) { return w.Write(l.a[ai]) }
func (l *lines) WriteBTo(w io.Writer, bi int) (int, error) { return w.Write(l.b[bi]) }

// writeDiff writes a unified diff of a and b named after fpath. A negative
// contextSize keeps every unchanged line.
func writeDiff(ctx context.Context, w io.Writer, fpath string, a, b []byte, contextSize int, color bool) error {
	ab := &lines{a: splitLines(a), b: splitLines(b)}
	e := myers.Diff(ctx, ab)
	if contextSize >= 0 {
		e = ctxt.Size(e, contextSize)
	}
	opts := []write.Option{write.Names("a/"+fpath, "b/"+fpath)}
	if color {
		opts = append(opts, write.TerminalColor())
	}
	return write.Unified(e, w, ab, opts...)
}

func splitLines(b []byte) [][]byte {
	return bytes.Split(bytes.TrimSuffix(b, []byte("\n")), []byte("\n"))
}
