package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leonhh/applist/internal/archive"
	"github.com/leonhh/applist/internal/icon"
	"github.com/leonhh/applist/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// archiveIconPrefix marks an icon stored inside the primary archive
const archiveIconPrefix = "apk:"

// Manifest is the on-disk index read by ManifestRegistry
type Manifest struct {
	Packages []ManifestPackage `yaml:"packages"`
}

// ManifestPackage describes one installed package in the index
type ManifestPackage struct {
	Name             string            `yaml:"name"`
	Label            string            `yaml:"label,omitempty"`
	VersionName      *string           `yaml:"versionName,omitempty"`
	System           bool              `yaml:"system,omitempty"`
	Flags            int               `yaml:"flags,omitempty"`
	FirstInstallTime int64             `yaml:"firstInstallTime,omitempty"`
	LastUpdateTime   int64             `yaml:"lastUpdateTime,omitempty"`
	TargetSdkVersion int               `yaml:"targetSdkVersion,omitempty"`
	SourceDir        string            `yaml:"sourceDir,omitempty"`
	SplitSourceDirs  []string          `yaml:"splitSourceDirs,omitempty"`
	NativeLibraryDir string            `yaml:"nativeLibraryDir,omitempty"`
	DataDir          string            `yaml:"dataDir,omitempty"`
	Permissions      []string          `yaml:"permissions,omitempty"`
	MetaData         map[string]string `yaml:"metaData,omitempty"`

	// Icon is an image file, or "apk:<entry>" for an entry of the primary archive
	Icon string `yaml:"icon,omitempty"`
}

// ManifestRegistry implements Registry over a YAML index file. The index is
// re-read on every call so edits show up as installs and uninstalls.
// Relative paths in the index are resolved against the index's directory.
type ManifestRegistry struct {
	path     string
	archives *archive.Reader
}

// NewManifestRegistry creates a registry reading the index at path
func NewManifestRegistry(path string) (*ManifestRegistry, error) {
	if path == "" {
		return nil, &models.IntrospectError{
			Type: models.ErrRegistryUnavailable,
			Err:  fmt.Errorf("registry manifest path is empty"),
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &models.IntrospectError{Type: models.ErrRegistryUnavailable, Err: err}
	}

	if _, err := os.Stat(abs); err != nil {
		return nil, &models.IntrospectError{
			Type: models.ErrRegistryUnavailable,
			Err:  fmt.Errorf("registry manifest not accessible: %w", err),
		}
	}

	return &ManifestRegistry{
		path:     abs,
		archives: archive.NewReader(),
	}, nil
}

// InstalledPackages returns every package in the index
func (m *ManifestRegistry) InstalledPackages(ctx context.Context, flags InfoFlags) ([]*models.RegistryEntry, error) {
	manifest, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.RegistryEntry, 0, len(manifest.Packages))
	for i := range manifest.Packages {
		entries = append(entries, m.toEntry(&manifest.Packages[i], flags))
	}
	return entries, nil
}

// Package returns one package from the index
func (m *ManifestRegistry) Package(ctx context.Context, name string, flags InfoFlags) (*models.RegistryEntry, error) {
	p, err := m.find(ctx, name)
	if err != nil {
		return nil, err
	}
	return m.toEntry(p, flags), nil
}

// ApplicationLabel returns the label declared in the index
func (m *ManifestRegistry) ApplicationLabel(ctx context.Context, app *models.ApplicationInfo) (string, error) {
	p, err := m.find(ctx, app.PackageName)
	if err != nil {
		return "", err
	}
	if p.Label == "" {
		return "", ErrNoLabel
	}
	return p.Label, nil
}

// LoadIcon decodes the icon declared in the index
func (m *ManifestRegistry) LoadIcon(ctx context.Context, app *models.ApplicationInfo) (icon.Drawable, error) {
	p, err := m.find(ctx, app.PackageName)
	if err != nil {
		return nil, err
	}
	if p.Icon == "" {
		return nil, ErrNoIcon
	}

	var data []byte
	if entry, ok := strings.CutPrefix(p.Icon, archiveIconPrefix); ok {
		logrus.Debugf("Loading icon %s from %s", entry, app.SourceDir)
		data, err = m.archives.ReadEntry(ctx, app.SourceDir, entry)
	} else {
		data, err = os.ReadFile(m.resolve(p.Icon))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load icon for %s: %w", app.PackageName, err)
	}

	return icon.Decode(data)
}

func (m *ManifestRegistry) load(ctx context.Context) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, &models.IntrospectError{
			Type: models.ErrRegistryUnavailable,
			Err:  fmt.Errorf("failed to read manifest: %w", err),
		}
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, &models.IntrospectError{
			Type: models.ErrRegistryUnavailable,
			Err:  fmt.Errorf("failed to parse manifest %s: %w", m.path, err),
		}
	}
	return &manifest, nil
}

func (m *ManifestRegistry) find(ctx context.Context, name string) (*ManifestPackage, error) {
	manifest, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range manifest.Packages {
		if manifest.Packages[i].Name == name {
			return &manifest.Packages[i], nil
		}
	}
	return nil, &models.IntrospectError{
		Type:    models.ErrPackageNotFound,
		Package: name,
		Err:     ErrNotFound,
	}
}

func (m *ManifestRegistry) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(m.path), path)
}

func (m *ManifestRegistry) toEntry(p *ManifestPackage, flags InfoFlags) *models.RegistryEntry {
	entry := &models.RegistryEntry{
		PackageName:      p.Name,
		VersionName:      p.VersionName,
		FirstInstallTime: p.FirstInstallTime,
		LastUpdateTime:   p.LastUpdateTime,
	}

	if flags&GetPermissions != 0 && len(p.Permissions) > 0 {
		entry.RequestedPermissions = append([]string(nil), p.Permissions...)
	}

	// without an archive there is no application to describe
	if p.SourceDir == "" {
		return entry
	}

	app := &models.ApplicationInfo{
		PackageName:      p.Name,
		SourceDir:        m.resolve(p.SourceDir),
		NativeLibraryDir: m.resolve(p.NativeLibraryDir),
		DataDir:          m.resolve(p.DataDir),
		Flags:            p.Flags,
		TargetSdkVersion: p.TargetSdkVersion,
	}
	if p.System {
		app.Flags |= models.FlagSystem
	}
	for _, split := range p.SplitSourceDirs {
		app.SplitSourceDirs = append(app.SplitSourceDirs, m.resolve(split))
	}
	if flags&GetMetaData != 0 && len(p.MetaData) > 0 {
		app.MetaData = make(map[string]string, len(p.MetaData))
		for k, v := range p.MetaData {
			app.MetaData[k] = v
		}
	}

	entry.Application = app
	return entry
}
