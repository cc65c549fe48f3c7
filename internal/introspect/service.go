package introspect

import (
	"context"

	"github.com/leonhh/applist/internal/dispatch"
	"github.com/leonhh/applist/internal/models"
)

// Service exposes the introspector as asynchronous calls. Package listing,
// descriptors and permissions run on the CPU pool; native libraries, icons
// and archive contents run on the I/O pool. Calls never block the caller and
// each call gets its own future.
type Service struct {
	in *Introspector
	d  *dispatch.Dispatcher
}

// NewService wires an introspector to a dispatcher
func NewService(in *Introspector, d *dispatch.Dispatcher) *Service {
	if d == nil {
		d = dispatch.New(0, 0)
	}
	return &Service{in: in, d: d}
}

// Introspector returns the underlying introspector
func (s *Service) Introspector() *Introspector {
	return s.in
}

// GetAll enumerates installed packages and returns the descriptor of every
// package that resolves
func (s *Service) GetAll(ctx context.Context) *dispatch.Future[[]models.PackageDescriptor] {
	return dispatch.Submit(ctx, s.d.CPU, func(ctx context.Context) ([]models.PackageDescriptor, error) {
		names := s.in.AppList(ctx)
		all := make([]models.PackageDescriptor, 0, len(names))
		for _, name := range names {
			if desc := s.in.PackageDetails(ctx, name); desc != nil {
				all = append(all, *desc)
			}
		}
		return all, nil
	})
}

// GetAppList enumerates installed package names
func (s *Service) GetAppList(ctx context.Context) *dispatch.Future[[]string] {
	return dispatch.Submit(ctx, s.d.CPU, func(ctx context.Context) ([]string, error) {
		return s.in.AppList(ctx), nil
	})
}

// GetPackageDetails resolves to nil when the package is unknown
func (s *Service) GetPackageDetails(ctx context.Context, name string) *dispatch.Future[*models.PackageDescriptor] {
	return dispatch.Submit(ctx, s.d.CPU, func(ctx context.Context) (*models.PackageDescriptor, error) {
		return s.in.PackageDetails(ctx, name), nil
	})
}

// GetPermissions resolves to the requested permissions of a package
func (s *Service) GetPermissions(ctx context.Context, name string) *dispatch.Future[[]string] {
	return dispatch.Submit(ctx, s.d.CPU, func(ctx context.Context) ([]string, error) {
		return s.in.Permissions(ctx, name), nil
	})
}

// GetNativeLibraries resolves to the native library names of a package
func (s *Service) GetNativeLibraries(ctx context.Context, name string) *dispatch.Future[[]string] {
	return dispatch.Submit(ctx, s.d.IO, func(ctx context.Context) ([]string, error) {
		return s.in.NativeLibraries(ctx, name), nil
	})
}

// GetAppIcon resolves to the base64 icon, or nil when there is none
func (s *Service) GetAppIcon(ctx context.Context, name string, maxSize int) *dispatch.Future[*string] {
	return dispatch.Submit(ctx, s.d.IO, func(ctx context.Context) (*string, error) {
		encoded, ok := s.in.AppIcon(ctx, name, maxSize)
		if !ok {
			return nil, nil
		}
		return &encoded, nil
	})
}

// GetFileContent resolves to the suffix-matched entries, or nil
func (s *Service) GetFileContent(ctx context.Context, name string, suffixes []string) *dispatch.Future[map[string]string] {
	return dispatch.Submit(ctx, s.d.IO, func(ctx context.Context) (map[string]string, error) {
		return s.in.FileContent(ctx, name, suffixes), nil
	})
}

// GetFiles resolves to one slot per requested path, or nil when the package is unknown
func (s *Service) GetFiles(ctx context.Context, name string, paths []string) *dispatch.Future[[]*models.FileContent] {
	return dispatch.Submit(ctx, s.d.IO, func(ctx context.Context) ([]*models.FileContent, error) {
		files, ok := s.in.Files(ctx, name, paths)
		if !ok {
			return nil, nil
		}
		return files, nil
	})
}
