package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/renameio/v2"
	"github.com/google/subcommands"

	"github.com/a-sync/fnf-presets/manifest"
)

type BootstrapCommand struct {
	InputPath  string
	OutputPath string
}

func (*BootstrapCommand) Name() string     { return "bootstrap" }
func (*BootstrapCommand) Synopsis() string { return "migrate a JSON manifest to HCL" }
func (*BootstrapCommand) Usage() string {
	return `Usage: presets bootstrap [-i presets.json] [-o presets.hcl]

	Converts an existing JSON manifest into an HCL manifest with one
	preset block per entry.

Flags:
`
}

func (cmd *BootstrapCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.InputPath, "i", "presets.json", "JSON manifest path")
	fs.StringVar(&cmd.OutputPath, "o", defaultManifest, "output manifest path")
}

func (cmd *BootstrapCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	fpath := cmd.InputPath
	src, err := os.ReadFile(fpath)
	if err != nil {
		log.Printf("read %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}

	entries, err := manifest.DecodeJSON(src)
	if err != nil {
		log.Printf("decode %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}

	data := manifest.EncodeHCL(entries)
	if err := renameio.WriteFile(cmd.OutputPath, data, 0644); err != nil {
		log.Printf("write %q: %+v", cmd.OutputPath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
