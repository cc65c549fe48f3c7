package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/leonhh/applist/internal/models"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner for installed native library directories
type FileSystemScanner struct {
	MaxDepth  int
	Extension string
}

// NewFileSystemScanner creates a scanner with the default depth and extension
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{
		MaxDepth:  DefaultMaxDepth,
		Extension: NativeLibraryExt,
	}
}

// Scan walks each directory independently. Missing or unreadable directories are skipped.
func (s *FileSystemScanner) Scan(ctx context.Context, dirs []string) []string {
	var mu sync.Mutex
	found := make(map[string]struct{})
	add := func(name string) {
		mu.Lock()
		found[name] = struct{}{}
		mu.Unlock()
	}

	for _, dir := range dirs {
		if ctx.Err() != nil {
			break
		}
		if err := s.scanDir(ctx, dir, add); err != nil {
			logrus.Warnf("Failed to scan directory %s: %v", dir, err)
		}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *FileSystemScanner) scanDir(ctx context.Context, dir string, add func(string)) error {
	if dir == "" {
		return nil
	}

	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	conf := fastwalk.Config{Follow: false}

	return fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		depth := strings.Count(rel, string(os.PathSeparator)) + 1

		if d.IsDir() {
			if depth >= s.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if depth > s.MaxDepth || filepath.Ext(d.Name()) != s.Extension {
			return nil
		}

		if !d.Type().IsRegular() {
			// symlinks count when they resolve to a regular file
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		}

		logrus.Debugf("Found native library: %s", path)
		add(d.Name())
		return nil
	})
}

// NativeLibraryDirs lists the directories an installed application may keep native libraries in.
// The list is de-duplicated and keeps first-seen order.
func NativeLibraryDirs(app *models.ApplicationInfo) []string {
	if app == nil {
		return nil
	}

	var dirs []string
	if app.NativeLibraryDir != "" {
		dirs = append(dirs, app.NativeLibraryDir)
	}
	if app.DataDir != "" {
		dirs = append(dirs, app.DataDir+"/lib")
	}

	archiveDirs := func(base string) {
		if base == "" {
			return
		}
		dirs = append(dirs, base+"/lib")
		for _, arch := range models.Architectures {
			dirs = append(dirs, base+"/lib/"+arch)
		}
	}

	archiveDirs(app.SourceDir)
	for _, split := range app.SplitSourceDirs {
		archiveDirs(split)
	}

	seen := make(map[string]struct{}, len(dirs))
	unique := dirs[:0]
	for _, d := range dirs {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}
	return unique
}
