// Package fetcher retrieves the documents named by a manifest and merges
// them into presets.
//
// Every populated document reference is fetched concurrently. A failing
// document is logged and dropped; it never affects other documents. Only a
// manifest that cannot be read fails a whole load.
package fetcher

import (
	"context"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/a-sync/fnf-presets/manifest"
	"github.com/a-sync/fnf-presets/pack"
	"github.com/a-sync/fnf-presets/parser"
	"github.com/a-sync/fnf-presets/preset"
)

type Fetcher struct {
	Source Source
	Parser *parser.Parser
	Logger *zap.Logger

	// Timeout bounds each retrieval. A retrieval that times out counts as
	// failed. Zero means no timeout.
	Timeout time.Duration
}

// Report counts the outcome of an ingestion. Succeeded + Failed equals
// Documents.
type Report struct {
	Documents int
	Succeeded int
	Failed    int
	// Gaps lists manifest indexes that produced no preset.
	Gaps []int
}

type result struct {
	manifest.Document
	doc *parser.Document
	err error
}

func (f *Fetcher) log() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

func (f *Fetcher) docParser() *parser.Parser {
	if f.Parser == nil {
		return &parser.Parser{Logger: f.Logger}
	}
	return f.Parser
}

// Load reads and decodes the manifest at ref. Failures are returned as
// *manifest.Error.
func (f *Fetcher) Load(ctx context.Context, ref string) ([]manifest.Entry, error) {
	src, err := f.read(ctx, ref)
	if err != nil {
		return nil, &manifest.Error{Ref: ref, Err: err}
	}
	return manifest.Decode(src, ref)
}

// Catalog loads the manifest at ref and ingests it.
func (f *Fetcher) Catalog(ctx context.Context, ref string) ([]preset.Preset, Report, error) {
	entries, err := f.Load(ctx, ref)
	if err != nil {
		return nil, Report{}, err
	}
	ps, rep := f.Ingest(ctx, entries)
	return ps, rep, nil
}

// Ingest fetches and parses every document of entries, waits for all of
// them to settle and merges the results in arrival order. Presets are
// returned in manifest order; entries without any merged document are
// left out and reported as gaps.
func (f *Fetcher) Ingest(ctx context.Context, entries []manifest.Entry) ([]preset.Preset, Report) {
	docs := manifest.Documents(entries)
	results := make(chan result, len(docs))

	var wg sync.WaitGroup
	for _, d := range docs {
		wg.Add(1)
		go func(d manifest.Document) {
			defer wg.Done()
			doc, err := f.fetch(ctx, d.Ref)
			results <- result{Document: d, doc: doc, err: err}
		}(d)
	}
	wg.Wait()
	close(results)

	log := f.log()
	arena := pack.NewArena(len(entries))
	rep := Report{Documents: len(docs)}
	for r := range results {
		fields := []zap.Field{
			zap.Int("index", r.Index),
			zap.String("type", string(r.Type)),
			zap.String("ref", r.Ref),
		}
		if r.err != nil {
			rep.Failed++
			log.Warn("fetch document", append(fields, zap.Error(r.err))...)
			continue
		}
		if err := arena.Merge(r.Index, r.Ref, r.Type, r.doc); err != nil {
			rep.Failed++
			log.Warn("merge document", append(fields, zap.Error(err))...)
			continue
		}
		rep.Succeeded++
		log.Debug("merged document", fields...)
	}

	rep.Gaps = arena.Gaps()
	for _, i := range rep.Gaps {
		log.Info("manifest gap", zap.Int("index", i))
	}
	return arena.Presets(), rep
}

func (f *Fetcher) fetch(ctx context.Context, ref string) (*parser.Document, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	r, err := f.Source.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer f.close(r, ref)
	return f.docParser().Parse(r)
}

func (f *Fetcher) read(ctx context.Context, ref string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	r, err := f.Source.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer f.close(r, ref)
	return io.ReadAll(r)
}

func (f *Fetcher) close(r io.Closer, ref string) {
	if err := r.Close(); err != nil {
		f.log().Debug("close document", zap.String("ref", ref), zap.Error(err))
	}
}
