package deb

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// ErrControlNotFound is returned when a .deb archive carries no control file.
var ErrControlNotFound = errors.New("control file not found")

// ReadControl reads a .deb archive and returns the content of its 'control'
// file, a single stanza.
//
// The control member can be an uncompressed tarball, or one compressed with
// gzip, xz (the dpkg default) or zstd (Ubuntu).
func ReadControl(r io.Reader) (string, error) {
	arR := ar.NewReader(r)
	for {
		header, err := arR.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read deb archive: %w", err)
		}

		// GNU ar terminates member names with a slash.
		name := strings.TrimSuffix(strings.TrimSpace(header.Name), "/")
		if !strings.HasPrefix(name, string(PkgControlTar)) {
			continue
		}

		var tr *tar.Reader
		switch {
		case name == string(PkgControlTar):
			tr = tar.NewReader(arR)
		case name == string(PkgControlTarGz):
			gzr, err := gzip.NewReader(arR)
			if err != nil {
				return "", fmt.Errorf("failed to open %s: %w", name, err)
			}
			defer gzr.Close()
			tr = tar.NewReader(gzr)
		case name == string(PkgControlTarXz):
			xzr, err := xz.NewReader(arR)
			if err != nil {
				return "", fmt.Errorf("failed to open %s: %w", name, err)
			}
			tr = tar.NewReader(xzr)
		case name == string(PkgControlTarZst):
			zr, err := zstd.NewReader(arR)
			if err != nil {
				return "", fmt.Errorf("failed to open %s: %w", name, err)
			}
			defer zr.Close()
			tr = tar.NewReader(zr)
		default:
			return "", fmt.Errorf("unsupported control archive %s", name)
		}
		return readControlFile(tr)
	}
	return "", ErrControlNotFound
}

// readControlFile scans a control tarball for the 'control' entry.
func readControlFile(tr *tar.Reader) (string, error) {
	for {
		th, err := tr.Next()
		if err == io.EOF {
			return "", ErrControlNotFound
		}
		if err != nil {
			return "", fmt.Errorf("failed to read control archive: %w", err)
		}
		if filepath.Base(th.Name) != string(FileControl) {
			continue
		}
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, tr); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}
