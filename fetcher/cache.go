package fetcher

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
)

// CachedSource keeps a copy of every document fetched from Source in Files.
// Each document is stored as a data file with a sums file next to it, and a
// copy whose sums no longer match is fetched again.
type CachedSource struct {
	Source Source
	Files  billy.Filesystem

	// Namespace separates caches of different bases sharing Files.
	Namespace string

	// MaxAge is how long a cached copy is served without refetching.
	// Zero keeps copies forever. A stale copy is still served when
	// refetching fails.
	MaxAge time.Duration

	Logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	now   func() time.Time
}

func (c *CachedSource) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *CachedSource) lock(key string) func() {
	c.mu.Lock()
	if c.locks == nil {
		c.locks = make(map[string]*sync.Mutex)
	}
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	c.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (c *CachedSource) cachePath(ref string) (dir, base string) {
	// Good enough is good enough.
	sum := sha1.Sum([]byte(c.Namespace + "\x00" + ref))
	hex := fmt.Sprintf("%x", sum)
	return c.Files.Join("documents", hex[:2]), hex
}

func (c *CachedSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	dir, base := c.cachePath(ref)
	unlock := c.lock(base)
	defer unlock()

	fi, statErr := c.statData(dir, base)
	cached := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return nil, statErr
	}
	if cached && !c.expired(fi) {
		data, err := c.readVerified(dir, base)
		if err == nil {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
		c.log().Warn("cached document invalid", zap.String("ref", ref), zap.Error(err))
		cached = false
	}

	data, err := c.fetch(ctx, ref)
	if err != nil {
		if cached {
			if stale, serr := c.readVerified(dir, base); serr == nil {
				c.log().Warn("serving stale document", zap.String("ref", ref), zap.Error(err))
				return io.NopCloser(bytes.NewReader(stale)), nil
			}
		}
		return nil, err
	}
	if err := c.store(dir, base, data); err != nil {
		c.log().Warn("cache document", zap.String("ref", ref), zap.Error(err))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (c *CachedSource) expired(fi os.FileInfo) bool {
	if c.MaxAge <= 0 {
		return false
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return now().Sub(fi.ModTime()) > c.MaxAge
}

func (c *CachedSource) fetch(ctx context.Context, ref string) ([]byte, error) {
	r, err := c.Source.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer func() {
		err := r.Close()
		if err != nil {
			c.log().Debug("close document", zap.String("ref", ref), zap.Error(err))
		}
	}()
	return io.ReadAll(r)
}

func hashes() ([]string, []hash.Hash) {
	names := []string{
		"sha256",
		"keccak256",
	}
	hs := []hash.Hash{
		sha256.New(),
		sha3.NewLegacyKeccak256(),
	}
	return names, hs
}

func sums(data []byte) []string {
	names, hs := hashes()
	out := make([]string, len(hs))
	for i, h := range hs {
		h.Write(data)
		out[i] = fmt.Sprintf("%s:%x", names[i], h.Sum(nil))
	}
	return out
}

func (c *CachedSource) store(dir, base string, data []byte) error {
	flags := os.O_WRONLY | os.O_TRUNC | os.O_CREATE
	err := c.withData(dir, base, flags, func(f billy.File) (err error) {
		defer func() {
			cerr := f.Close()
			if err == nil {
				err = cerr
			}
		}()
		_, err = f.Write(data)
		return err
	})
	if err != nil {
		return err
	}
	return c.writeSums(dir, base, sums(data))
}

func (c *CachedSource) readVerified(dir, base string) ([]byte, error) {
	var data []byte
	err := c.withData(dir, base, os.O_RDONLY, func(f billy.File) error {
		defer f.Close()
		var err error
		data, err = io.ReadAll(f)
		return err
	})
	if err != nil {
		return nil, err
	}
	want, err := c.readSums(dir, base)
	if err != nil {
		return nil, err
	}
	got := sums(data)
	if len(want) != len(got) {
		return nil, ErrSumsMismatch
	}
	for i := range got {
		if want[i] != got[i] {
			return nil, ErrSumsMismatch
		}
	}
	return data, nil
}

func (c *CachedSource) readSums(dir, base string) ([]string, error) {
	sums := []string{}
	err := c.withSums(dir, base, os.O_RDONLY, func(f billy.File) error {
		defer f.Close()
		s := bufio.NewScanner(f)
		for s.Scan() {
			sums = append(sums, s.Text())
		}
		return s.Err()
	})
	if err != nil {
		return nil, err
	}
	return sums, nil
}

func (c *CachedSource) writeSums(dir, base string, sums []string) error {
	flags := os.O_WRONLY | os.O_TRUNC | os.O_CREATE
	return c.withSums(dir, base, flags, func(f billy.File) (err error) {
		defer func() {
			cerr := f.Close()
			if err == nil {
				err = cerr
			}
		}()
		w := bufio.NewWriter(f)
		defer func() {
			ferr := w.Flush()
			if err == nil {
				err = ferr
			}
		}()
		for _, sum := range sums {
			_, err = fmt.Fprintf(w, "%s\n", sum)
			if err != nil {
				break
			}
		}
		return err
	})
}

func (c *CachedSource) statData(dir, base string) (os.FileInfo, error) {
	fname := fmt.Sprintf("%s.%s", base, "dat")
	return c.Files.Stat(c.Files.Join(dir, fname))
}

func (c *CachedSource) withData(dir, base string, flag int, fn func(billy.File) error) error {
	return c.withFile(dir, base, "dat", flag, fn)
}

func (c *CachedSource) withSums(dir, base string, flag int, fn func(billy.File) error) error {
	return c.withFile(dir, base, "sum", flag, fn)
}

func (c *CachedSource) withFile(dir, base, ext string, flag int, fn func(billy.File) error) error {
	if err := c.Files.MkdirAll(dir, 0755); err != nil {
		return err
	}
	fname := fmt.Sprintf("%s.%s", base, ext)
	fpath := c.Files.Join(dir, fname)
	f, err := c.Files.OpenFile(fpath, flag, 0644)
	if err != nil {
		return err
	}
	return fn(f)
}
