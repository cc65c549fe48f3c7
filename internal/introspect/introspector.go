// Package introspect answers questions about installed packages: their
// descriptors, native libraries, icons, permissions and archive contents.
//
// Every operation reports failure through its result (nil, empty or false)
// and never through an error; details are logged. The only error is raised by
// New when no registry is available.
package introspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/leonhh/applist/internal/archive"
	"github.com/leonhh/applist/internal/icon"
	"github.com/leonhh/applist/internal/models"
	"github.com/leonhh/applist/internal/registry"
	"github.com/leonhh/applist/internal/scanner"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Introspector owns the package and icon caches for one registry.
//
// Cached registry entries are only replaced by a full enumeration (AppList,
// Refresh) or dropped by Invalidate; a package uninstalled after it was cached
// keeps resolving until then.
type Introspector struct {
	registry  registry.Registry
	archives  *archive.Reader
	libraries scanner.Scanner

	packages *cache[*models.RegistryEntry]
	icons    *cache[string] // write-once per package
	renders  singleflight.Group

	iconSize int
	log      *logrus.Entry
}

// Option configures an Introspector
type Option func(*Introspector)

// WithLogger sets the logger used by the introspector and its archive reader
func WithLogger(logger *logrus.Logger) Option {
	return func(i *Introspector) {
		i.log = logger.WithField("component", "introspector")
		i.archives = archive.NewReaderWithLogger(logger)
	}
}

// WithArchiveReader replaces the archive reader
func WithArchiveReader(r *archive.Reader) Option {
	return func(i *Introspector) { i.archives = r }
}

// WithLibraryScanner replaces the filesystem native library scanner
func WithLibraryScanner(s scanner.Scanner) Option {
	return func(i *Introspector) { i.libraries = s }
}

// WithDefaultIconSize sets the max dimension used when a caller passes none
func WithDefaultIconSize(size int) Option {
	return func(i *Introspector) {
		if size > 0 {
			i.iconSize = size
		}
	}
}

// New creates an introspector over reg. A nil registry is rejected.
func New(reg registry.Registry, opts ...Option) (*Introspector, error) {
	if reg == nil {
		return nil, &models.IntrospectError{
			Type: models.ErrRegistryUnavailable,
			Err:  errors.New("package registry is nil"),
		}
	}

	i := &Introspector{
		registry:  reg,
		archives:  archive.NewReader(),
		libraries: scanner.NewFileSystemScanner(),
		packages:  newCache[*models.RegistryEntry](),
		icons:     newCache[string](),
		iconSize:  icon.DefaultSize,
		log:       logrus.WithField("component", "introspector"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// resolve returns the cached entry for name, looking it up on a miss
func (i *Introspector) resolve(ctx context.Context, name string) *models.RegistryEntry {
	if entry, ok := i.packages.Get(name); ok {
		return entry
	}

	entry, err := i.registry.Package(ctx, name, registry.DefaultFlags)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			i.log.Debugf("Package %s not found", name)
		} else {
			i.log.WithError(err).Errorf("Error getting package info for %s", name)
		}
		return nil
	}
	if entry == nil {
		return nil
	}

	i.packages.Set(name, entry)
	return entry
}

// absorb turns a recovered panic into the operation's empty result
func (i *Introspector) absorb(op, pkg string, r any, reset func()) {
	if r == nil {
		return
	}
	i.log.WithFields(logrus.Fields{
		"op":      op,
		"package": pkg,
	}).WithError(fmt.Errorf("%v", r)).Error("Operation failed")
	reset()
}
