package introspect

import (
	"context"
	"sort"

	"github.com/leonhh/applist/internal/scanner"
)

// NativeLibraries returns the unique native library file names of a package,
// found on disk and inside its archives. Unknown packages yield an empty list.
func (i *Introspector) NativeLibraries(ctx context.Context, name string) (libs []string) {
	defer func() {
		i.absorb("getNativeLibraries", name, recover(), func() { libs = []string{} })
	}()

	entry := i.resolve(ctx, name)
	if entry == nil || entry.Application == nil {
		return []string{}
	}
	app := entry.Application

	found := make(map[string]struct{})
	for _, lib := range i.libraries.Scan(ctx, scanner.NativeLibraryDirs(app)) {
		found[lib] = struct{}{}
	}
	for _, lib := range i.archives.NativeLibraries(ctx, app.ArchivePaths()) {
		found[lib] = struct{}{}
	}

	if err := ctx.Err(); err != nil {
		i.log.WithError(err).Warnf("Native library scan for %s interrupted", name)
		return []string{}
	}

	libs = make([]string, 0, len(found))
	for lib := range found {
		libs = append(libs, lib)
	}
	sort.Strings(libs)
	return libs
}
