// Package registry defines the boundary to the operating system's package
// registry and provides a manifest-backed implementation of it.
package registry

import (
	"context"
	"errors"

	"github.com/leonhh/applist/internal/icon"
	"github.com/leonhh/applist/internal/models"
)

// InfoFlags selects optional parts of a registry entry
type InfoFlags int

const (
	GetMetaData InfoFlags = 1 << iota
	GetPermissions
)

// DefaultFlags is what the introspector requests for every lookup
const DefaultFlags = GetMetaData | GetPermissions

var (
	// ErrNotFound is returned for packages the registry does not know
	ErrNotFound = errors.New("package not found")

	// ErrNoLabel is returned when an application declares no label
	ErrNoLabel = errors.New("application has no label")

	// ErrNoIcon is returned when an application declares no icon
	ErrNoIcon = errors.New("application has no icon")
)

// Registry is the authoritative directory of installed packages.
// Implementations must return entries the caller may keep; an entry is never
// mutated after it is returned.
type Registry interface {
	// InstalledPackages lists every installed package
	InstalledPackages(ctx context.Context, flags InfoFlags) ([]*models.RegistryEntry, error)

	// Package looks up a single package, returning ErrNotFound if it is not installed
	Package(ctx context.Context, name string, flags InfoFlags) (*models.RegistryEntry, error)

	// ApplicationLabel resolves the human-readable name of an application
	ApplicationLabel(ctx context.Context, app *models.ApplicationInfo) (string, error)

	// LoadIcon loads the platform icon of an application
	LoadIcon(ctx context.Context, app *models.ApplicationInfo) (icon.Drawable, error)
}
