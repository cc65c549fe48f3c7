package scanner

import (
	"bytes"
	"io"
	"os"
)

// Magic bytes for archive detection
var (
	// Local file header, the first record of a non-empty zip
	zipMagic = []byte{'P', 'K', 0x03, 0x04}

	// End of central directory record, the only record of an empty zip
	zipEmptyMagic = []byte{'P', 'K', 0x05, 0x06}
)

// DetectArchiveType determines the archive type based on magic bytes
func DetectArchiveType(path string) (ArchiveType, error) {
	f, err := os.Open(path)
	if err != nil {
		return TypeUnknown, err
	}
	defer f.Close()

	header := make([]byte, 4)
	n, err := io.ReadFull(f, header)
	if err != nil && n == 0 {
		return TypeUnknown, err
	}
	header = header[:n]

	if bytes.Equal(header, zipMagic) || bytes.Equal(header, zipEmptyMagic) {
		return TypeZip, nil
	}

	return TypeUnknown, nil
}
