package scanner

import "context"

// ArchiveType represents the container format of a package archive
type ArchiveType int

const (
	TypeUnknown ArchiveType = iota
	TypeZip
)

// String returns the string representation of ArchiveType
func (at ArchiveType) String() string {
	switch at {
	case TypeZip:
		return "zip"
	default:
		return "unknown"
	}
}

const (
	// DefaultMaxDepth bounds how far below a library directory the walk descends
	DefaultMaxDepth = 5

	// NativeLibraryExt is the extension of shared objects
	NativeLibraryExt = ".so"
)

// Scanner interface for locating native libraries on disk
type Scanner interface {
	// Scan walks every directory and returns the unique library file names found
	Scan(ctx context.Context, dirs []string) []string
}
