// Package reportlog appends dashboard samples to a plain-text report file.
//
// Each sample becomes a two-line record:
//
//	2026-10-19 12:00:00
//	CPU Usage: 28.7%, Memory Usage: 62.4%, Disk Usage: 79.2%
//
// The file is append-only: there is no header, no index and no rotation.
// It is opened and closed on every append so a crash can lose at most the
// record being written.
package reportlog

import (
	"fmt"
	"os"
	"path/filepath"

	"nathanbeddoewebdev/sysdash/internal/domain"

	"github.com/spf13/afero"
)

// DefaultFileName is the report file used when no path is configured.
const DefaultFileName = "dashboard_report.txt"

// Log appends sample records to a single file.
type Log struct {
	fs   afero.Fs
	path string
}

// New returns a Log writing to path on fs.
func New(fs afero.Fs, path string) *Log {
	return &Log{fs: fs, path: path}
}

// NewOS returns a Log writing to path on the real filesystem.
func NewOS(path string) *Log {
	return New(afero.NewOsFs(), path)
}

// Path returns the report file path.
func (l *Log) Path() string {
	return l.path
}

// FormatRecord returns the two-line record for a sample.
func FormatRecord(s domain.Sample) string {
	return fmt.Sprintf("%s\nCPU Usage: %s%%, Memory Usage: %s%%, Disk Usage: %s%%\n",
		s.FormattedTime(),
		domain.FormatPercent(s.CPUPercent),
		domain.FormatPercent(s.Memory.Percent),
		domain.FormatPercent(s.Disk.Percent),
	)
}

// Append writes one record for s. Errors wrap domain.ErrPersistence.
func (l *Log) Append(s domain.Sample) (err error) {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := l.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("reportlog: %w: failed to create directory %s: %w", domain.ErrPersistence, dir, err)
		}
	}

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("reportlog: %w: failed to open %s: %w", domain.ErrPersistence, l.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("reportlog: %w: failed to close %s: %w", domain.ErrPersistence, l.path, cerr)
		}
	}()

	// A single write keeps the two lines of a record together.
	if _, err := f.WriteString(FormatRecord(s)); err != nil {
		return fmt.Errorf("reportlog: %w: failed to write %s: %w", domain.ErrPersistence, l.path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("reportlog: %w: failed to sync %s: %w", domain.ErrPersistence, l.path, err)
	}
	return nil
}
