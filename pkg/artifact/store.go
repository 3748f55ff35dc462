package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/deckgen/pkg/ports"
)

const (
	// DefaultDir is used when New is given an empty directory.
	DefaultDir = "presentations"
	// DefaultRetention is the age after which an artifact is swept.
	DefaultRetention = time.Hour
	// DefaultKeep is how many of the newest artifacts survive a sweep.
	DefaultKeep = 20

	namePrefix   = "presentation_"
	stampLayout  = "20060102_150405"
	maxCollision = 1000
)

var (
	// ErrInvalidName is returned for names that could not have been produced by Save.
	ErrInvalidName = errors.New("invalid artifact name")
	// ErrNotFound is returned when a well-formed artifact does not exist.
	ErrNotFound = errors.New("artifact not found")
	// ErrUnsupportedExtension is returned when saving anything but pptx or pdf.
	ErrUnsupportedExtension = errors.New("unsupported artifact extension")
)

var namePattern = regexp.MustCompile(`^presentation_\d{8}_\d{6}(_\d+)?\.(pptx|pdf)$`)

// Store implements ports.ArtifactStore on the local filesystem.
type Store struct {
	dir       string
	logger    *slog.Logger
	locker    ports.Locker
	retention time.Duration
	keep      int
	now       func() time.Time
}

var _ ports.ArtifactStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for save and sweep events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocker serializes sweeps through l.
func WithLocker(l ports.Locker) Option {
	return func(s *Store) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithRetention sets the maximum artifact age. Zero disables age-based removal.
func WithRetention(d time.Duration) Option {
	return func(s *Store) { s.retention = d }
}

// WithKeep sets how many of the newest artifacts are always eligible to stay.
// Zero disables count-based removal.
func WithKeep(n int) Option {
	return func(s *Store) { s.keep = n }
}

// WithClock overrides the time source used for naming and ages.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store rooted at dir. The directory is created lazily on first Save.
func New(dir string, opts ...Option) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	s := &Store{
		dir:       dir,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		locker:    ports.NopLocker{},
		retention: DefaultRetention,
		keep:      DefaultKeep,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// ValidName reports whether name has the shape Save produces.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Save writes src to a new artifact. The data goes to a temp file first, is synced,
// and then renamed over the reserved name.
func (s *Store) Save(ctx context.Context, ext string, src io.Reader) (ports.Artifact, error) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext != "pptx" && ext != "pdf" {
		return ports.Artifact{}, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	if err := ctx.Err(); err != nil {
		return ports.Artifact{}, err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return ports.Artifact{}, fmt.Errorf("failed to ensure output directory: %w", err)
	}

	name, err := s.reserve(ext)
	if err != nil {
		return ports.Artifact{}, err
	}
	destPath := filepath.Join(s.dir, name)

	tmpFile, err := os.CreateTemp(s.dir, ".tmp-"+name+"-*")
	if err != nil {
		_ = os.Remove(destPath)
		return ports.Artifact{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	committed := false
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		if !committed {
			_ = os.Remove(destPath)
		}
	}()

	size, err := io.Copy(tmpFile, src)
	if err != nil {
		return ports.Artifact{}, fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return ports.Artifact{}, fmt.Errorf("failed to fsync artifact: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return ports.Artifact{}, fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file; the reservation is ours to drop.
	if err := os.Rename(tmpPath, destPath); err != nil {
		if rmErr := os.Remove(destPath); rmErr != nil {
			return ports.Artifact{}, fmt.Errorf("failed to replace reserved artifact: %w", err)
		}
		if err := os.Rename(tmpPath, destPath); err != nil {
			return ports.Artifact{}, fmt.Errorf("failed to rename temp file to artifact: %w", err)
		}
	}
	committed = true

	info, err := os.Stat(destPath)
	if err != nil {
		return ports.Artifact{}, fmt.Errorf("failed to stat artifact: %w", err)
	}

	s.logger.Info("artifact saved", "name", name, "size", size)
	return ports.Artifact{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// reserve claims a unique name by creating it with O_EXCL.
func (s *Store) reserve(ext string) (string, error) {
	base := namePrefix + s.now().Format(stampLayout)
	for i := 0; i < maxCollision; i++ {
		name := base + "." + ext
		if i > 0 {
			name = fmt.Sprintf("%s_%d.%s", base, i, ext)
		}
		f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to reserve artifact name: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to reserve artifact name: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("failed to reserve artifact name: %d collisions for %s", maxCollision, base)
}

// Open returns the named artifact for reading.
func (s *Store) Open(ctx context.Context, name string) (io.ReadSeekCloser, ports.Artifact, error) {
	if !ValidName(name) {
		return nil, ports.Artifact{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, ports.Artifact{}, err
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, ports.Artifact{}, fmt.Errorf("failed to open artifact: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, ports.Artifact{}, fmt.Errorf("failed to stat artifact: %w", err)
	}
	return f, ports.Artifact{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// List returns all artifacts, newest first. A missing directory is an empty store.
func (s *Store) List(ctx context.Context) ([]ports.Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []ports.Artifact{}, nil
		}
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	artifacts := make([]ports.Artifact, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !ValidName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat artifact %s: %w", entry.Name(), err)
		}
		artifacts = append(artifacts, ports.Artifact{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(artifacts, func(a, b ports.Artifact) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return artifacts, nil
}
