package listing

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/denysvitali/filebrowser-go/internal/models"
	"github.com/denysvitali/filebrowser-go/pkg/confine"
)

// readDir is swapped in tests to simulate entries whose metadata cannot be read
var readDir = os.ReadDir

// ErrEnumerationFailed is matched by every error returned when a directory cannot be read
var ErrEnumerationFailed = errors.New("directory enumeration failed")

var errInvalidName = errors.New("entry name is not valid UTF-8")

// EnumerationError wraps the I/O error that prevented a directory from being read
type EnumerationError struct {
	Dir string
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrEnumerationFailed, e.Dir, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrEnumerationFailed) hold
func (e *EnumerationError) Is(target error) bool {
	return target == ErrEnumerationFailed
}

// Option configures an Enumerator
type Option func(*Enumerator)

// WithHidden controls whether dotfiles are listed
func WithHidden(show bool) Option {
	return func(e *Enumerator) { e.showHidden = show }
}

// WithClock overrides the time used when an entry reports no modification time
func WithClock(now func() time.Time) Option {
	return func(e *Enumerator) { e.now = now }
}

// Enumerator lists the immediate children of confined directories.
// It holds no mutable state and is safe for concurrent use.
type Enumerator struct {
	logger     *logrus.Logger
	tracer     trace.Tracer
	showHidden bool
	now        func() time.Time
}

// NewEnumerator creates an enumerator
func NewEnumerator(logger *logrus.Logger, opts ...Option) *Enumerator {
	e := &Enumerator{
		logger:     logger,
		tracer:     otel.Tracer("filebrowser"),
		showHidden: true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enumerate lists dir and returns its entries together with the number of entries
// that were dropped because their metadata or name could not be read. Only a
// failure to read the directory itself is returned as an error.
func (e *Enumerator) Enumerate(ctx context.Context, dir confine.ConfinedPath) ([]models.ListingEntry, int, error) {
	_, span := e.tracer.Start(ctx, "enumerate_directory")
	defer span.End()

	dirPath := dir.String()
	span.SetAttributes(attribute.String("listing.dir", dir.Relative()))

	dirEntries, err := readDir(dirPath)
	if err != nil {
		span.RecordError(err)
		return nil, 0, &EnumerationError{Dir: dirPath, Err: err}
	}

	entries := make([]models.ListingEntry, 0, len(dirEntries))
	dropped := 0
	for _, de := range dirEntries {
		if !e.showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}

		entry, err := e.buildEntry(dirPath, dir.Root(), de)
		if err != nil {
			dropped++
			e.logger.WithFields(logrus.Fields{
				"dir":   dir.Relative(),
				"entry": fmt.Sprintf("%q", de.Name()),
				"error": err,
			}).Warn("Dropping unreadable directory entry")
			continue
		}
		entries = append(entries, entry)
	}

	span.SetAttributes(
		attribute.Int("listing.entries", len(entries)),
		attribute.Int("listing.dropped", dropped),
	)
	return entries, dropped, nil
}

func (e *Enumerator) buildEntry(dirPath, root string, de fs.DirEntry) (models.ListingEntry, error) {
	name := de.Name()
	if !utf8.ValidString(name) {
		return models.ListingEntry{}, errInvalidName
	}

	info, err := de.Info()
	if err != nil {
		return models.ListingEntry{}, err
	}

	relPath, err := confine.Relativize(filepath.Join(dirPath, name), root)
	if err != nil {
		return models.ListingEntry{}, err
	}

	mode := info.Mode()
	isDir := mode.IsDir()
	isSymlink := mode&fs.ModeSymlink != 0

	kind := models.KindFile
	switch {
	case isDir:
		kind = models.KindDirectory
	case isSymlink:
		kind = models.KindSymlink
	}

	size := DirectorySize
	fileType := DirectoryFileType
	if !isDir {
		size = FormatSize(info.Size())
		fileType = TopLevelType(MIMEType(name))
	}

	mtime := info.ModTime()
	if mtime.IsZero() {
		mtime = e.now()
	}

	return models.ListingEntry{
		Name:      name,
		Size:      size,
		FileType:  fileType,
		MTime:     FormatTime(mtime),
		IsDir:     isDir,
		IsSymlink: isSymlink,
		Path:      relPath,
		Ext:       Extension(name),
		Kind:      kind,
	}, nil
}
