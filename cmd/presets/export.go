package main

import (
	"archive/zip"
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/renameio/v2"
	"github.com/google/subcommands"
	"github.com/pterm/pterm"

	"github.com/a-sync/fnf-presets/builder"
	"github.com/a-sync/fnf-presets/builder/archive"
	"github.com/a-sync/fnf-presets/builder/dir"
	"github.com/a-sync/fnf-presets/config"
	"github.com/a-sync/fnf-presets/preset"
)

type ExportCommand struct {
	Config *config.Config

	Source  sourceFlags
	OutDir  string
	ZipPath string
}

func (*ExportCommand) Name() string     { return "export" }
func (*ExportCommand) Synopsis() string { return "export launcher presets" }
func (*ExportCommand) Usage() string {
	return `Usage: presets export [-o dir] [-zip file] [identifiers]

	Generates launcher preset documents with DLC, required mods and
	selected optional mods. Exports every preset when no identifier
	is given.

Flags:
`
}

func (cmd *ExportCommand) SetFlags(fs *flag.FlagSet) {
	cmd.Source.setFlags(fs, cmd.Config)
	fs.StringVar(&cmd.OutDir, "o", ".", "output directory")
	fs.StringVar(&cmd.ZipPath, "zip", "", "write a zip archive instead of a directory")
}

func (cmd *ExportCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	setupOutput()
	l := newLogger(cmd.Config)
	defer func() { _ = l.Sync() }()

	ps, _, ok := cmd.Source.catalog(ctx, cmd.Config, l)
	if !ok {
		return subcommands.ExitFailure
	}

	targets := make([]*preset.Preset, 0, len(ps))
	if fs.NArg() == 0 {
		for i := range ps {
			targets = append(targets, &ps[i])
		}
	} else {
		for _, id := range fs.Args() {
			p, err := preset.Find(ps, id)
			if err != nil {
				log.Printf("find %q: %+v", id, err)
				return subcommands.ExitFailure
			}
			targets = append(targets, p)
		}
	}

	st, err := openStore(cmd.Config)
	if err != nil {
		log.Printf("open store: %+v", err)
		return subcommands.ExitFailure
	}
	defer closeStore(st)

	var b builder.Builder
	var pending *renameio.PendingFile
	if cmd.ZipPath != "" {
		pending, err = renameio.NewPendingFile(cmd.ZipPath, renameio.WithPermissions(0644))
		if err != nil {
			log.Printf("create %q: %+v", cmd.ZipPath, err)
			return subcommands.ExitFailure
		}
		defer func() {
			if err := pending.Cleanup(); err != nil {
				log.Printf("cleanup %q: %+v", cmd.ZipPath, err)
			}
		}()
		b = archive.NewArchiveBuilder(zip.NewWriter(pending))
	} else {
		if err := os.MkdirAll(cmd.OutDir, 0755); err != nil {
			log.Printf("mkdir %q: %+v", cmd.OutDir, err)
			return subcommands.ExitFailure
		}
		b = dir.NewDirBuilder(cmd.OutDir)
	}

	for _, p := range targets {
		sel, err := st.Get(p.Identifier)
		if err != nil {
			log.Printf("get selection %q: %+v", p.Identifier, err)
			return subcommands.ExitFailure
		}
		if err := b.Add(p, sel); err != nil {
			log.Printf("export %q: %+v", p.Identifier, err)
			return subcommands.ExitFailure
		}
		pterm.Success.Printfln("exported %s", p.Identifier)
	}
	if err := b.Close(); err != nil {
		log.Printf("close builder: %+v", err)
		return subcommands.ExitFailure
	}
	if pending != nil {
		if err := pending.CloseAtomicallyReplace(); err != nil {
			log.Printf("write %q: %+v", cmd.ZipPath, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
