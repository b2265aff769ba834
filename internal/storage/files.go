// Package storage persists uploaded certificate files to a flat content
// directory. Files are write-once: nothing here ever deletes or rewrites an
// existing file, so concurrent uploads cannot collide.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// nowMillis is a seam for testing name collisions.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the content directory, for static serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes src to disk under a collision-resistant name and returns that
// name: <millisecond timestamp>-<original name with whitespace runs collapsed
// to a single hyphen>. Files are created exclusively; if two uploads land on
// the same name within one millisecond, the loser moves to the next stamp
// rather than truncating the winner.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	base := whitespaceRun.ReplaceAllString(filepath.Base(originalName), "-")
	millis := nowMillis()

	for attempt := int64(0); ; attempt++ {
		name := fmt.Sprintf("%d-%s", millis+attempt, base)

		dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", name, err)
		}

		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			return "", fmt.Errorf("writing %s: %w", name, err)
		}

		return name, dst.Close()
	}
}
