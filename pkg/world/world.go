// Package world gathers every input of a run: the manifest, the body
// of every declared link, and the contents of every file under every
// declared directory.
//
// Gathering is the impure front of the pipeline. It either produces a
// complete World or the full list of what went wrong; it never hands a
// partial World to the transformer.
package world

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/dots/pkg/errors"
	"github.com/arthur-debert/dots/pkg/logging"
	"github.com/arthur-debert/dots/pkg/manifest"
	"github.com/arthur-debert/dots/pkg/paths"
	"github.com/arthur-debert/dots/pkg/types"
)

// fetchConcurrency bounds parallel link downloads.
const fetchConcurrency = 8

// FetchedLink is a manifest link together with the body fetched from
// its URL.
type FetchedLink struct {
	manifest.Link

	// Contents is the response body, read fully as text
	Contents string
}

// SourceFile is one regular file found under a declared directory.
type SourceFile struct {
	// Path is the absolute source location
	Path string

	// Contents of the source file
	Contents string

	// Input is the owning Dir's input directory, relative to root
	Input string

	// Output is the owning Dir's destination tree
	Output paths.OutputPath
}

// World is the complete input to the pure transformation stage.
type World struct {
	// Root is the directory containing the manifest
	Root string

	Links []FetchedLink
	Files []SourceFile
}

// Gather discovers the manifest from startDir and collects every input
// it declares.
//
// Failing to locate or parse the manifest short-circuits alone, as a
// one-element error list. Past that point every link and every file is
// attempted regardless of its siblings; if anything failed, the merged
// error list comes back and no World does.
func Gather(ctx context.Context, fs types.FS, startDir string, fetcher Fetcher) (*World, []error) {
	logger := logging.GetLogger("world")

	root, err := manifest.FindRoot(fs, startDir)
	if err != nil {
		return nil, errors.Single(err)
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	m, err := manifest.Load(fs, root)
	if err != nil {
		return nil, errors.Single(err)
	}

	logger.Debug().
		Str("root", root).
		Int("links", len(m.Links)).
		Int("dirs", len(m.Dirs)).
		Msg("gathering world")

	var errs errors.List

	links := gatherLinks(ctx, m.Links, fetcher, &errs)
	files := gatherFiles(fs, root, m.Dirs, &errs)

	if errs.Len() > 0 {
		return nil, errs.Errors()
	}

	return &World{
		Root:  root,
		Links: links,
		Files: files,
	}, nil
}

// gatherLinks fetches every link, concurrently but bounded. The group
// never short-circuits: each fetch reports into errs and the slot for a
// failed link stays empty.
func gatherLinks(ctx context.Context, decls []manifest.Link, fetcher Fetcher, errs *errors.List) []FetchedLink {
	logger := logging.GetLogger("world")

	results := make([]*FetchedLink, len(decls))

	var mu sync.Mutex
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(fetchConcurrency)

	for i, decl := range decls {
		i, decl := i, decl
		group.Go(func() error {
			contents, err := fetcher.Fetch(ctx, decl.URL)
			if err == nil {
				err = verifyDigest(decl, contents)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs.Append(err)
				return nil
			}
			results[i] = &FetchedLink{Link: decl, Contents: contents}
			logger.Debug().Str("url", decl.URL).Int("bytes", len(contents)).Msg("fetched link")
			return nil
		})
	}
	// Group funcs always return nil; failures land in errs.
	_ = group.Wait()

	links := make([]FetchedLink, 0, len(decls))
	for _, r := range results {
		if r != nil {
			links = append(links, *r)
		}
	}
	return links
}

// verifyDigest checks fetched contents against the link's expected
// sha256, when one is declared.
func verifyDigest(decl manifest.Link, contents string) error {
	if decl.SHA256 == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(contents))
	actual := hex.EncodeToString(sum[:])
	if actual != decl.SHA256 {
		return errors.Newf(errors.ErrHashMismatch, "hash mismatch for %s", decl.URL).
			WithDetail("url", decl.URL).
			WithDetail("expected", decl.SHA256).
			WithDetail("actual", actual)
	}
	return nil
}

// gatherFiles walks every declared directory and reads every regular
// file. Walk and read errors are collected per entry; one unreadable
// file never stops the rest.
func gatherFiles(fs types.FS, root string, dirs []manifest.Dir, errs *errors.List) []SourceFile {
	var files []SourceFile
	for _, dir := range dirs {
		walkDir(fs, filepath.Join(root, dir.Input), dir, &files, errs)
	}
	return files
}

func walkDir(fs types.FS, path string, owner manifest.Dir, files *[]SourceFile, errs *errors.List) {
	entries, err := fs.ReadDir(path)
	if err != nil {
		errs.Append(errors.Wrapf(err, errors.ErrDirWalk, "failed to read directory").
			WithDetail("path", path))
		return
	}

	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			walkDir(fs, entryPath, owner, files, errs)
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		data, err := fs.ReadFile(entryPath)
		if err != nil {
			errs.Append(errors.Wrapf(err, errors.ErrFileRead, "failed to read file").
				WithDetail("path", entryPath))
			continue
		}

		*files = append(*files, SourceFile{
			Path:     entryPath,
			Contents: string(data),
			Input:    owner.Input,
			Output:   owner.Output,
		})
	}
}
