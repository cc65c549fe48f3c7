package archive

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/zip"
	"github.com/leonhh/applist/internal/models"
)

// ScanSuffixes reads every file entry whose name ends with one of suffixes.
// Archives are scanned in order and a later archive overwrites an earlier
// entry of the same name. Returns nil when nothing matched.
func (r *Reader) ScanSuffixes(ctx context.Context, archives []string, suffixes []string) map[string]string {
	results := make(map[string]string)

	for i, archivePath := range archives {
		err := withArchive(archivePath, func(zr *zip.ReadCloser) error {
			for _, f := range zr.File {
				if err := ctx.Err(); err != nil {
					return err
				}
				if isDir(f) || !hasAnySuffix(f.Name, suffixes) {
					continue
				}

				data, err := readEntry(f)
				if err != nil {
					r.log.Warnf("Failed to read file %s from %s: %v", f.Name, label(i), err)
					continue
				}
				results[f.Name] = string(data)
			}
			return nil
		})
		if err != nil {
			r.log.Warnf("Failed to process %s %s: %v", label(i), archivePath, err)
		}
	}

	if ctx.Err() != nil || len(results) == 0 {
		return nil
	}
	return results
}

// ScanPaths resolves each requested path to an entry and reads it. The result
// has one slot per request, in request order; unresolved slots are nil. The
// first archive that resolves a slot wins it, and an entry requested by more
// than one slot is read once.
func (r *Reader) ScanPaths(ctx context.Context, archives []string, requested []string) []*models.FileContent {
	results := make([]*models.FileContent, len(requested))

	for i, archivePath := range archives {
		if resolved(results) {
			break
		}

		err := withArchive(archivePath, func(zr *zip.ReadCloser) error {
			read := make(map[string]*models.FileContent)

			for slot, req := range requested {
				if err := ctx.Err(); err != nil {
					return err
				}
				if results[slot] != nil {
					continue
				}

				f := matchEntry(zr.File, req)
				if f == nil {
					continue
				}

				if fc, ok := read[f.Name]; ok {
					results[slot] = fc
					continue
				}

				data, err := readEntry(f)
				if err != nil {
					r.log.Warnf("Failed to read file %s from %s: %v", f.Name, label(i), err)
					continue
				}
				fc := newFileContent(f.Name, data)
				read[f.Name] = fc
				results[slot] = fc
			}
			return nil
		})
		if err != nil {
			r.log.Warnf("Failed to process %s %s: %v", label(i), archivePath, err)
		}
	}

	return results
}

// NativeLibraries returns the file names of shared objects stored under a
// lib/<arch>/ directory of any archive.
func (r *Reader) NativeLibraries(ctx context.Context, archives []string) []string {
	found := make(map[string]struct{})

	for i, archivePath := range archives {
		err := withArchive(archivePath, func(zr *zip.ReadCloser) error {
			taken := 0
			for _, f := range zr.File {
				if err := ctx.Err(); err != nil {
					return err
				}
				if taken >= r.MaxNativeEntries {
					r.log.Debugf("Native library limit reached for %s", archivePath)
					break
				}
				if !isNativeLibrary(f.Name) {
					continue
				}
				taken++
				found[path.Base(f.Name)] = struct{}{}
			}
			return nil
		})
		if err != nil {
			r.log.Warnf("Failed to scan %s %s: %v", label(i), archivePath, err)
		}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadEntry reads a single named entry from one archive
func (r *Reader) ReadEntry(ctx context.Context, archivePath, name string) ([]byte, error) {
	var data []byte

	err := withArchive(archivePath, func(zr *zip.ReadCloser) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, f := range zr.File {
			if f.Name != name || isDir(f) {
				continue
			}
			var err error
			data, err = readEntry(f)
			return err
		}
		return &models.IntrospectError{
			Type: models.ErrArchiveRead,
			Err:  fmt.Errorf("%s not found in %s", name, archivePath),
		}
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// matchEntry finds the entry a requested path refers to. An exact name wins
// over a suffix on a path boundary, which wins over any other name ending
// with the request. Glob patterns match whole entry names.
func matchEntry(files []*zip.File, req string) *zip.File {
	req = strings.TrimPrefix(req, "/")
	if req == "" {
		return nil
	}

	if isGlob(req) {
		for _, f := range files {
			if isDir(f) {
				continue
			}
			if ok, _ := doublestar.Match(req, f.Name); ok {
				return f
			}
		}
		return nil
	}

	var segmentMatch, suffixMatch *zip.File
	for _, f := range files {
		if isDir(f) {
			continue
		}
		if f.Name == req {
			return f
		}
		if segmentMatch == nil && strings.HasSuffix(f.Name, "/"+req) {
			segmentMatch = f
		}
		if suffixMatch == nil && strings.HasSuffix(f.Name, req) {
			suffixMatch = f
		}
	}
	if segmentMatch != nil {
		return segmentMatch
	}
	return suffixMatch
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func isNativeLibrary(name string) bool {
	if !strings.HasSuffix(name, ".so") {
		return false
	}
	for _, arch := range models.Architectures {
		if strings.Contains(name, "lib/"+arch+"/") {
			return true
		}
	}
	return false
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

func resolved(results []*models.FileContent) bool {
	for _, r := range results {
		if r == nil {
			return false
		}
	}
	return true
}
