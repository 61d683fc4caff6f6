// Package export produces the CSV and PDF report artifacts and owns the
// export file tree. Files are partitioned into csv/ and pdf/ directories and
// named user_{id}_..._{timestamp} so concurrent exports never collide and
// ownership can be checked from the filename alone.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
)

const timestampLayout = "20060102_150405"

// Store manages the on-disk export tree.
type Store struct {
	csvDir string
	pdfDir string
}

// NewStore creates the csv/ and pdf/ directories if needed.
func NewStore(csvDir, pdfDir string) (*Store, error) {
	for _, dir := range []string{csvDir, pdfDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
		}
	}
	return &Store{csvDir: csvDir, pdfDir: pdfDir}, nil
}

// OwnerPrefix is the filename prefix that marks a file as belonging to a user.
func OwnerPrefix(userID uint) string {
	return fmt.Sprintf("user_%d_", userID)
}

// OwnedBy reports whether the filename carries the user's ownership prefix.
func OwnedBy(userID uint, filename string) bool {
	return strings.HasPrefix(filename, OwnerPrefix(userID))
}

func (s *Store) dirFor(fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "csv":
		return s.csvDir, nil
	case "pdf":
		return s.pdfDir, nil
	default:
		return "", apperrors.ErrInvalidExport
	}
}

// Resolve returns the on-disk path for a download request. The ownership
// prefix is checked before anything touches the filesystem, so a denied
// request reveals nothing about whether the file exists.
func (s *Store) Resolve(userID uint, fileType, filename string) (string, error) {
	if !OwnedBy(userID, filename) {
		return "", apperrors.ErrAccessDenied
	}
	if filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return "", apperrors.ErrAccessDenied
	}

	dir, err := s.dirFor(fileType)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.ErrNotFound
	}
	return path, nil
}

// File describes one export artifact for the recent-exports listing.
type File struct {
	Filename string
	Type     string
	ModTime  time.Time
}

// ListRecent returns the user's most recent export files across both
// directories, newest first.
func (s *Store) ListRecent(userID uint, limit int) ([]File, error) {
	var files []File

	collect := func(dir, ext, fileType string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !OwnedBy(userID, name) || !strings.HasSuffix(name, ext) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, File{Filename: name, Type: fileType, ModTime: info.ModTime()})
		}
		return nil
	}

	if err := collect(s.csvDir, ".csv", "CSV"); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := collect(s.pdfDir, ".pdf", "PDF"); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// CleanupOlderThan removes export files older than the given age from both
// directories and returns how many were deleted. Run on a schedule so the
// export tree does not grow without bound.
func (s *Store) CleanupOlderThan(age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age)
	removed := 0

	for _, dir := range []string{s.csvDir, s.pdfDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to read export directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					logger.Get().Warnf("failed to remove old export %s: %v", path, err)
					continue
				}
				removed++
			}
		}
	}
	return removed, nil
}
