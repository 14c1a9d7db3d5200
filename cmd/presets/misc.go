package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/a-sync/fnf-presets/config"
	"github.com/a-sync/fnf-presets/fetcher"
	"github.com/a-sync/fnf-presets/logger"
	"github.com/a-sync/fnf-presets/preset"
	"github.com/a-sync/fnf-presets/selection"
)

func cacheDir(p string) (string, error) {
	c, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(c, p), nil
}

func makeCache(p string) (string, error) {
	c, err := cacheDir(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c, 0700); err != nil {
		return "", err
	}
	return c, nil
}

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	width := uint(80)
	if !istty {
		return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
	}
	if w, _, err := term.GetSize(fd); err != nil {
		log.Printf("get term size: %+v", err)
	} else if w > 0 {
		width = uint(w)
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = term.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

// setupOutput disables pterm styling when stdout is not a colour terminal.
func setupOutput() {
	if _, color := fdinfo(int(os.Stdout.Fd())); !color {
		pterm.DisableStyling()
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	l, err := logger.New(cfg.Log)
	if err != nil {
		log.Printf("build logger: %+v", err)
		return zap.NewNop()
	}
	return l
}

// sourceFlags select where the catalog is loaded from.
type sourceFlags struct {
	Base         string
	Manifest     string
	DisableCache bool
}

func (s *sourceFlags) setFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&s.Base, "base", cfg.Source.Base, "document directory or URL")
	fs.StringVar(&s.Manifest, "manifest", cfg.Source.Manifest, "manifest path relative to base")
	fs.BoolVar(&s.DisableCache, "nocache", !cfg.Source.Cache, "disable document cache")
}

func (s *sourceFlags) fetcher(cfg *config.Config, l *zap.Logger) (*fetcher.Fetcher, error) {
	var cache billy.Filesystem
	if !s.DisableCache {
		path, err := makeCache(programName)
		if err != nil {
			return nil, err
		}
		cache = osfs.New(path)
	}
	src, err := fetcher.NewSource(s.Base, fetcher.Options{
		Client:      &http.Client{},
		UserAgent:   cfg.Source.UserAgent,
		Storage:     cfg.Storage,
		Cache:       cache,
		CacheMaxAge: cfg.Source.CacheMaxAge(),
		Logger:      l,
	})
	if err != nil {
		return nil, err
	}
	return &fetcher.Fetcher{
		Source:  src,
		Logger:  l,
		Timeout: cfg.Source.Timeout(),
	}, nil
}

// catalog loads every preset. It logs and reports false when the manifest
// cannot be loaded.
func (s *sourceFlags) catalog(ctx context.Context, cfg *config.Config, l *zap.Logger) ([]preset.Preset, fetcher.Report, bool) {
	f, err := s.fetcher(cfg, l)
	if err != nil {
		log.Printf("source %q: %+v", s.Base, err)
		return nil, fetcher.Report{}, false
	}
	ps, rep, err := f.Catalog(ctx, s.Manifest)
	if err != nil {
		log.Printf("something went wrong: %v", err)
		return nil, rep, false
	}
	return ps, rep, true
}

func openStore(cfg *config.Config) (selection.Store, error) {
	path := cfg.Store.Path
	if path == "" && cfg.Store.Driver != selection.DriverMemory {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(dir, programName)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, err
		}
		name := "selections.pogreb"
		if cfg.Store.Driver == selection.DriverBolt {
			name = "selections.db"
		}
		path = filepath.Join(dir, name)
	}
	return selection.Open(cfg.Store.Driver, path)
}

func closeStore(st selection.Store) {
	if err := st.Close(); err != nil {
		log.Printf("close store: %+v", err)
	}
}
