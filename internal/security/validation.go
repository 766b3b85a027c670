// Package security provides path and input validation utilities for tagtint.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned by LimitedReader once its budget is spent.
var ErrSizeLimit = errors.New("read size limit exceeded")

// ValidateFilePath validates a relative path to prevent directory traversal.
// The path must stay within baseDir once joined to it.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	if strings.Contains(filePath, "..") {
		return fmt.Errorf("file path contains directory traversal (..) - not allowed")
	}

	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute paths are not allowed")
	}

	finalPath := filepath.Join(baseDir, filePath)
	cleanFinal := filepath.Clean(finalPath)
	cleanBase := filepath.Clean(baseDir)

	if cleanBase == "." {
		if cleanFinal == "." || filepath.IsAbs(cleanFinal) {
			return fmt.Errorf("file path would escape base directory")
		}
		return nil
	}

	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("file path would escape base directory")
	}

	return nil
}

// SafeUint8 safely converts an integer to uint8 with bounds checking.
// Values outside 0-255 are clamped to the valid range.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails loudly instead of reporting a short read as EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Allow a clean EOF when the source ends exactly at the limit.
		var probe [1]byte
		if n, err := l.R.Read(probe[:]); n == 0 && err == io.EOF {
			return 0, io.EOF
		}
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
