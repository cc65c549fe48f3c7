package introspect

import (
	"context"
	"os"

	"github.com/leonhh/applist/internal/models"
	"github.com/leonhh/applist/internal/registry"
)

// AppList enumerates installed packages, rebuilds the package cache from
// scratch and returns the package names in sorted order. A registry failure
// leaves the cache empty and yields an empty list.
func (i *Introspector) AppList(ctx context.Context) (names []string) {
	defer func() {
		i.absorb("getAppList", "", recover(), func() { names = []string{} })
	}()

	fresh := make(map[string]*models.RegistryEntry)

	entries, err := i.registry.InstalledPackages(ctx, registry.DefaultFlags)
	if err != nil {
		i.log.WithError(err).Error("Failed to get app list")
		i.packages.Replace(fresh)
		return []string{}
	}

	for _, entry := range entries {
		if entry == nil || entry.PackageName == "" {
			continue
		}
		fresh[entry.PackageName] = entry
	}
	i.packages.Replace(fresh)
	i.log.Debugf("Cache refreshed with %d packages", len(fresh))

	return i.packages.Keys()
}

// Refresh rebuilds the package cache and returns how many packages it holds
func (i *Introspector) Refresh(ctx context.Context) int {
	return len(i.AppList(ctx))
}

// Invalidate drops the cached entry and icon of one package
func (i *Introspector) Invalidate(name string) {
	i.packages.Delete(name)
	i.icons.Delete(name)
}

// PackageDetails builds the descriptor of one package, or returns nil when
// the package or its application metadata cannot be resolved.
func (i *Introspector) PackageDetails(ctx context.Context, name string) (desc *models.PackageDescriptor) {
	defer func() {
		i.absorb("getPackageDetails", name, recover(), func() { desc = nil })
	}()

	entry := i.resolve(ctx, name)
	if entry == nil || entry.Application == nil {
		return nil
	}
	return i.describe(ctx, entry)
}

// describe reads every field from the one entry it is given
func (i *Introspector) describe(ctx context.Context, entry *models.RegistryEntry) *models.PackageDescriptor {
	app := entry.Application

	var version *string
	if entry.VersionName != nil {
		v := *entry.VersionName
		version = &v
	}

	return &models.PackageDescriptor{
		PackageName:      entry.PackageName,
		VersionName:      version,
		Size:             i.archiveSize(app),
		AppName:          i.label(ctx, entry),
		IsSystemApp:      app.IsSystem(),
		FirstInstallTime: entry.FirstInstallTime,
		LastUpdateTime:   entry.LastUpdateTime,
		TargetSdkVersion: app.TargetSdkVersion,
	}
}

func (i *Introspector) archiveSize(app *models.ApplicationInfo) int64 {
	if app.SourceDir == "" {
		return 0
	}
	info, err := os.Stat(app.SourceDir)
	if err != nil {
		i.log.WithError(err).Warnf("Failed to get APK size for %s", app.PackageName)
		return 0
	}
	return info.Size()
}

// label falls back to the package name when the registry has no label
func (i *Introspector) label(ctx context.Context, entry *models.RegistryEntry) string {
	label, err := i.registry.ApplicationLabel(ctx, entry.Application)
	if err != nil || label == "" {
		return entry.PackageName
	}
	return label
}

// Permissions returns the permissions a package requests, empty if unknown
func (i *Introspector) Permissions(ctx context.Context, name string) (perms []string) {
	defer func() {
		i.absorb("getPermissions", name, recover(), func() { perms = []string{} })
	}()

	entry := i.resolve(ctx, name)
	if entry == nil {
		return []string{}
	}

	perms = make([]string, 0, len(entry.RequestedPermissions))
	return append(perms, entry.RequestedPermissions...)
}

// ArchivePaths returns the primary archive followed by the split archives,
// or nil when the package is unknown or has no application info
func (i *Introspector) ArchivePaths(ctx context.Context, name string) (paths []string) {
	defer func() {
		i.absorb("getArchivePaths", name, recover(), func() { paths = nil })
	}()

	entry := i.resolve(ctx, name)
	if entry == nil || entry.Application == nil {
		return nil
	}
	return entry.Application.ArchivePaths()
}
