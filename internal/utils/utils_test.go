package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCalculateChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.apk")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	sum, err := CalculateChecksum(path)
	if err != nil {
		t.Fatalf("CalculateChecksum failed: %v", err)
	}

	expected := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if sum.SHA256 != expected {
		t.Errorf("Expected %s, got %s", expected, sum.SHA256)
	}
	if sum.Size != 5 {
		t.Errorf("Expected size 5, got %d", sum.Size)
	}
}

func TestCalculateChecksumMissing(t *testing.T) {
	if _, err := CalculateChecksum(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "icon.png")
	if err := WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("Expected 3 bytes, got %d", len(data))
	}
}

func TestSafeJoin(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"AndroidManifest.xml", filepath.Join(root, "AndroidManifest.xml"), false},
		{"/res/raw/a.txt", filepath.Join(root, "res", "raw", "a.txt"), false},
		{"lib/../classes.dex", filepath.Join(root, "classes.dex"), false},
		{"../evil", "", true},
		{"a/../../evil", "", true},
		{"..", "", true},
	}

	for _, tt := range tests {
		got, err := SafeJoin(root, tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SafeJoin(%q): expected error, got %s", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("SafeJoin(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SafeJoin(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}
