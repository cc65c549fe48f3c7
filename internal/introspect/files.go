package introspect

import (
	"context"

	"github.com/leonhh/applist/internal/models"
)

// FileContent reads every archive entry whose name ends with one of suffixes,
// keyed by entry name. Split archives override the primary archive on name
// collisions. Returns nil when nothing matched or the package is unknown.
func (i *Introspector) FileContent(ctx context.Context, name string, suffixes []string) (files map[string]string) {
	defer func() {
		i.absorb("getFileContent", name, recover(), func() { files = nil })
	}()

	entry := i.resolve(ctx, name)
	if entry == nil || entry.Application == nil {
		return nil
	}
	if len(suffixes) == 0 {
		return nil
	}

	return i.archives.ScanSuffixes(ctx, entry.Application.ArchivePaths(), suffixes)
}

// Files reads the requested archive paths. The result has exactly one slot
// per path, in order, holding nil for paths that were not found. ok is false
// only when the package itself cannot be resolved.
func (i *Introspector) Files(ctx context.Context, name string, paths []string) (files []*models.FileContent, ok bool) {
	defer func() {
		i.absorb("getFiles", name, recover(), func() { files, ok = nil, false })
	}()

	entry := i.resolve(ctx, name)
	if entry == nil || entry.Application == nil {
		return nil, false
	}

	return i.archives.ScanPaths(ctx, entry.Application.ArchivePaths(), paths), true
}
