package gamefile

import (
	"archive/tar"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmylchreest/tagtint/internal/security"
	"github.com/ulikunitz/xz"
)

// Writer stores rewritten files under paths relative to an output root.
type Writer interface {
	// WriteFile stores data at rel, creating any parent directories.
	WriteFile(rel string, data []byte) error
	// Close flushes pending output.
	Close() error
}

// DirWriter mirrors files into a directory tree.
type DirWriter struct {
	root string
}

// NewDirWriter creates a DirWriter rooted at dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{root: dir}
}

// WriteFile writes data to root/rel.
func (w *DirWriter) WriteFile(rel string, data []byte) error {
	if err := security.ValidateFilePath(rel, w.root); err != nil {
		return fmt.Errorf("invalid output path %q: %w", rel, err)
	}

	dest := filepath.Join(w.root, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil { // #nosec G301 - output tree is user visible game data
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil { // #nosec G306 - game data is not sensitive
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// Close is a no-op for directory output.
func (w *DirWriter) Close() error {
	return nil
}

// ArchiveWriter streams files into a .tar.xz bundle. Output is staged in a
// temporary file beside the destination and only replaces it on Close.
type ArchiveWriter struct {
	path    string
	file    *os.File
	xz      *xz.Writer
	tar     *tar.Writer
	modTime time.Time
}

// NewArchiveWriter creates a writer for the archive at path.
func NewArchiveWriter(path string) (*ArchiveWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - output tree is user visible game data
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	xzw, err := xz.NewWriter(f)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}

	return &ArchiveWriter{
		path:    path,
		file:    f,
		xz:      xzw,
		tar:     tar.NewWriter(xzw),
		modTime: time.Now().UTC().Truncate(time.Second),
	}, nil
}

// WriteFile appends data to the archive as rel.
func (w *ArchiveWriter) WriteFile(rel string, data []byte) error {
	if err := security.ValidateFilePath(rel, "."); err != nil {
		return fmt.Errorf("invalid archive path %q: %w", rel, err)
	}

	header := &tar.Header{
		Name:    filepath.ToSlash(rel),
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: w.modTime,
		Format:  tar.FormatPAX,
	}
	if err := w.tar.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write tar header for %s: %w", rel, err)
	}
	if _, err := w.tar.Write(data); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", rel, err)
	}
	return nil
}

// Close finalises the tar stream, the xz stream and the file, in that order,
// then moves the archive into place. On failure the destination is untouched.
func (w *ArchiveWriter) Close() error {
	tarErr := w.tar.Close()
	xzErr := w.xz.Close()
	fileErr := w.file.Close()

	var err error
	switch {
	case tarErr != nil:
		err = fmt.Errorf("failed to close tar stream: %w", tarErr)
	case xzErr != nil:
		err = fmt.Errorf("failed to close xz stream: %w", xzErr)
	case fileErr != nil:
		err = fmt.Errorf("failed to close archive: %w", fileErr)
	}
	if err == nil {
		err = w.publish()
	}
	if err != nil {
		_ = os.Remove(w.file.Name())
	}
	return err
}

// publish gives the staged archive regular file permissions and renames it over path.
func (w *ArchiveWriter) publish() error {
	if err := os.Chmod(w.file.Name(), 0o644); err != nil { // #nosec G302 - game data is not sensitive
		return fmt.Errorf("failed to set archive permissions: %w", err)
	}
	if err := os.Rename(w.file.Name(), w.path); err != nil {
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}

// Discard abandons the archive, leaving any existing file at the destination intact.
func (w *ArchiveWriter) Discard() error {
	_ = w.tar.Close()
	_ = w.xz.Close()
	_ = w.file.Close()
	if err := os.Remove(w.file.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove staged archive: %w", err)
	}
	return nil
}
