// Package archive reads installed package archives. A package is a primary
// archive plus zero or more split archives; each one is opened, scanned and
// closed independently so a broken split never hides the others.
package archive

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zip"
	"github.com/leonhh/applist/internal/models"
	"github.com/leonhh/applist/internal/scanner"
	"github.com/sirupsen/logrus"
)

// DefaultMaxNativeEntries caps the native library matches taken from one archive
const DefaultMaxNativeEntries = 1000

// Reader performs filtered scans over a package's archives
type Reader struct {
	MaxNativeEntries int

	log *logrus.Entry
}

// NewReader creates an archive reader using the standard logger
func NewReader() *Reader {
	return NewReaderWithLogger(logrus.StandardLogger())
}

// NewReaderWithLogger creates an archive reader logging through logger
func NewReaderWithLogger(logger *logrus.Logger) *Reader {
	return &Reader{
		MaxNativeEntries: DefaultMaxNativeEntries,
		log:              logger.WithField("component", "archive"),
	}
}

// withArchive opens path, hands it to fn and closes it again whatever fn returns.
// Zips with a prefix ahead of the first record (stubs, signing blocks) open fine.
func withArchive(path string, fn func(zr *zip.ReadCloser) error) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if at, derr := scanner.DetectArchiveType(path); derr == nil && at != scanner.TypeZip {
			err = fmt.Errorf("not a zip archive: %w", err)
		}
		return &models.IntrospectError{
			Type: models.ErrArchiveOpen,
			Err:  fmt.Errorf("failed to open %s: %w", path, err),
		}
	}
	defer zr.Close()

	return fn(zr)
}

// readEntry reads one entry in full
func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, &models.IntrospectError{Type: models.ErrArchiveRead, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &models.IntrospectError{
			Type: models.ErrArchiveRead,
			Err:  fmt.Errorf("failed to read %s: %w", f.Name, err),
		}
	}
	return data, nil
}

func isDir(f *zip.File) bool {
	return f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/")
}

func newFileContent(name string, data []byte) *models.FileContent {
	return &models.FileContent{
		Name:     name,
		Content:  string(data),
		Size:     int64(len(data)),
		MIMEType: mimetype.Detect(data).String(),
	}
}

// label names an archive in log lines
func label(i int) string {
	if i == 0 {
		return "APK"
	}
	return "split APK"
}
