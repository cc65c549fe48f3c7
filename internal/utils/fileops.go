package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes data to a file, creating directories as needed
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, perm)
}

// SafeJoin joins an archive entry name onto root and refuses names that
// would land outside of it.
func SafeJoin(root, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(strings.TrimLeft(name, "/")))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes %s", name, root)
	}
	return filepath.Join(root, cleaned), nil
}
