// Package mediastore persists rendered videos on the local filesystem and
// serves them back by filename. Names are derived from a sanitized topic slug
// plus a creation timestamp, so concurrent runs write distinct paths without
// coordination.
package mediastore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"reelsmith/internal/textutil"
)

const videoExtension = ".mp4"

// ErrInvalidName reports a requested filename that is not one the store
// could have produced (path separators, traversal, wrong extension).
var ErrInvalidName = errors.New("invalid video name")

// Store is a directory-backed video file store.
type Store struct {
	dir  string
	lock *flock.Flock
}

// New ensures the directory exists and returns a store rooted at it.
func New(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("mediastore: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mediastore: ensure directory: %w", err)
	}
	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".reelsmith.lock")),
	}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Acquire takes the store's instance lock, guarding against a second server
// process writing into the same directory. The returned release function is
// safe to call once.
func (s *Store) Acquire() (func(), error) {
	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("mediastore: acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("mediastore: directory %s is locked by another instance", s.dir)
	}
	return func() { _ = s.lock.Unlock() }, nil
}

// Filename derives the stable name a video for the given topic and creation
// time is stored under.
func Filename(topic string, now time.Time) string {
	return fmt.Sprintf("%s_%d%s", textutil.Slugify(topic), now.Unix(), videoExtension)
}

// Save writes the video bytes under the topic-derived name and returns the
// filename. The write goes through a temp file and rename so readers never
// observe a partial video.
func (s *Store) Save(topic string, now time.Time, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("mediastore: refusing to save empty video")
	}
	name := Filename(topic, now)
	final := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("mediastore: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("mediastore: write video: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("mediastore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("mediastore: finalize video: %w", err)
	}
	return name, nil
}

// Open returns a reader for a previously saved video along with its size.
// Names that could not have come from Save are rejected before touching the
// filesystem.
func (s *Store) Open(name string) (io.ReadCloser, int64, error) {
	if err := validateName(name); err != nil {
		return nil, 0, err
	}
	file, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("mediastore: %s: %w", name, fs.ErrNotExist)
		}
		return nil, 0, fmt.Errorf("mediastore: open video: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("mediastore: stat video: %w", err)
	}
	return file, info.Size(), nil
}

func validateName(name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("mediastore: %q: %w", name, ErrInvalidName)
	}
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, videoExtension) {
		return fmt.Errorf("mediastore: %q: %w", name, ErrInvalidName)
	}
	return nil
}
