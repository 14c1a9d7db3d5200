package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Don’t read documents larger than 16MiB.
const maxDocumentSize = 16 * 1024 * 1024

// Source resolves document references to their contents.
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// cleanRef rejects references escaping the source root.
func cleanRef(ref string) (string, error) {
	p := path.Clean("/" + ref)[1:]
	if p == "" || strings.Contains(ref, "\x00") {
		return "", fmt.Errorf("%q: %w", ref, ErrInvalidRef)
	}
	return p, nil
}

// FileSource reads documents from a filesystem.
type FileSource struct {
	Files billy.Filesystem
}

func (s *FileSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := cleanRef(ref)
	if err != nil {
		return nil, err
	}
	f, err := s.Files.Open(p)
	if err != nil {
		return nil, err
	}
	return limitReadCloser(f), nil
}

// HTTPSource fetches documents relative to a base URL.
type HTTPSource struct {
	Base      *url.URL
	Client    *http.Client
	UserAgent string
}

// NewHTTPSource returns a source for documents below rawurl.
func NewHTTPSource(rawurl string, c *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if c == nil {
		c = http.DefaultClient
	}
	return &HTTPSource{Base: u, Client: c}, nil
}

func (s *HTTPSource) URL(ref string) (string, error) {
	p, err := cleanRef(ref)
	if err != nil {
		return "", err
	}
	u := s.Base.ResolveReference(&url.URL{Path: p})
	return u.String(), nil
}

func (s *HTTPSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	rawurl, err := s.URL(ref)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("get %q: %w: %s", rawurl, ErrStatus, resp.Status)
	}
	return limitReadCloser(resp.Body), nil
}

type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// limitReadCloser fails reads past maxDocumentSize instead of truncating.
func limitReadCloser(rc io.ReadCloser) io.ReadCloser {
	lr := io.LimitReader(rc, maxDocumentSize+1)
	return limitedReadCloser{&sizeGuard{r: lr}, rc}
}

type sizeGuard struct {
	r io.Reader
	n int64
}

func (g *sizeGuard) Read(p []byte) (int, error) {
	n, err := g.r.Read(p)
	g.n += int64(n)
	if g.n > maxDocumentSize {
		return n, ErrDocumentTooBig
	}
	return n, err
}
