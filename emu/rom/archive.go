package rom

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// extractFromZIP extracts the first program file from a ZIP archive.
func extractFromZIP(path string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}
		return readEntry(f.Name, f.Open)
	}
	return nil, "", ErrNoROMFile
}

// extractFrom7z extracts the first program file from a 7z archive.
func extractFrom7z(path string) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}
		return readEntry(f.Name, f.Open)
	}
	return nil, "", ErrNoROMFile
}

// extractFromGzip decompresses a single gzip stream. The program name is
// taken from the gzip header when present, else from the file name with
// the .gz suffix removed.
func extractFromGzip(f *os.File, path string) ([]byte, string, error) {
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, "", fmt.Errorf("opening gzip: %w", err)
	}
	defer zr.Close()

	data, err := limitedRead(zr)
	if err != nil {
		return nil, "", fmt.Errorf("decompressing gzip: %w", err)
	}

	name := zr.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return data, filepath.Base(name), nil
}

func readEntry(name string, open func() (io.ReadCloser, error)) ([]byte, string, error) {
	rc, err := open()
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := limitedRead(rc)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", name, err)
	}
	return data, filepath.Base(name), nil
}
