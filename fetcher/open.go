package fetcher

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"
)

// Options configure NewSource.
type Options struct {
	Client    *http.Client
	UserAgent string
	Storage   ObjectConfig

	// Cache, when set, keeps copies of remote documents.
	Cache       billy.Filesystem
	CacheMaxAge time.Duration

	Logger *zap.Logger
}

// NewSource picks a source for base: an http(s) URL, an s3://bucket/prefix
// URL or a local directory. Remote sources are wrapped in a CachedSource
// when a cache filesystem is given.
func NewSource(base string, o Options) (Source, error) {
	var (
		src    Source
		remote bool
	)
	switch {
	case strings.HasPrefix(base, "http://"), strings.HasPrefix(base, "https://"):
		s, err := NewHTTPSource(base, o.Client)
		if err != nil {
			return nil, err
		}
		s.UserAgent = o.UserAgent
		src, remote = s, true
	case strings.HasPrefix(base, "s3://"):
		s, err := NewObjectSource(base, o.Storage)
		if err != nil {
			return nil, err
		}
		src, remote = s, true
	case strings.Contains(base, "://"):
		return nil, fmt.Errorf("%q: %w", base, ErrUnknownSource)
	default:
		src = &FileSource{Files: osfs.New(base)}
	}
	if remote && o.Cache != nil {
		src = &CachedSource{
			Source:    src,
			Files:     o.Cache,
			Namespace: base,
			MaxAge:    o.CacheMaxAge,
			Logger:    o.Logger,
		}
	}
	return src, nil
}
