package fs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/aisparser/pkg/log"
)

// Stdin is the input name that selects standard input.
const Stdin = "-"

// maxLineBytes bounds an unterminated line kept while following.
// NMEA sentences are at most 82 characters; anything far longer is garbage.
const maxLineBytes = 64 * 1024

// FileSource implements ports.LineSource over a regular file or stdin.
// In follow mode it keeps reading as the file grows and reopens it when it
// is truncated or replaced.
type FileSource struct {
	path   string
	follow bool
	poll   time.Duration
	logger log.Logger

	file    *os.File
	reader  *bufio.Reader
	offset  int64
	partial []byte
	watcher *fsnotify.Watcher
}

// NewFileSource creates a FileSource for path ("-" for stdin).
func NewFileSource(path string, follow bool, poll time.Duration, logger log.Logger) *FileSource {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if poll <= 0 {
		poll = time.Second
	}
	return &FileSource{path: path, follow: follow, poll: poll, logger: logger}
}

// Open opens the input and seeks to offset when the file is at least that long.
func (s *FileSource) Open(ctx context.Context, offset int64) error {
	if s.path == Stdin {
		s.file = os.Stdin
		s.reader = bufio.NewReaderSize(os.Stdin, 64*1024)
		return nil
	}
	if err := s.openAt(offset); err != nil {
		return err
	}
	if !s.follow {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return err
	}
	s.watcher = w
	return nil
}

func (s *FileSource) openAt(offset int64) error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	if offset > 0 {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return err
		}
		if info.Size() < offset {
			s.logger.Warn("saved offset beyond end of input, starting over",
				log.String("path", s.path), log.Int64("offset", offset), log.Int64("size", info.Size()))
			offset = 0
		}
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			f.Close()
			return err
		}
	}
	if s.file != nil && s.file != os.Stdin {
		s.file.Close()
	}
	s.file = f
	s.reader = bufio.NewReaderSize(f, 64*1024)
	s.offset = offset
	s.partial = nil
	return nil
}

// Next returns the next non-empty line without its terminator.
// An unterminated last line is returned at EOF unless the source follows,
// in which case it is held until the writer completes it.
func (s *FileSource) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if s.reader == nil {
			return "", errors.New("file source not open")
		}

		b, err := s.reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if errors.Is(err, io.EOF) {
			if len(b) == 0 {
				return "", io.EOF
			}
			if s.follow {
				s.hold(b)
				return "", io.EOF
			}
		}

		if len(s.partial) > 0 {
			b = append(s.partial, b...)
			s.partial = nil
		}
		s.offset += int64(len(b))
		line := bytes.TrimRight(b, "\r\n")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		return string(line), nil
	}
}

func (s *FileSource) hold(b []byte) {
	if len(s.partial)+len(b) > maxLineBytes {
		s.logger.Warn("discarding oversized line", log.String("path", s.path), log.Int("bytes", len(s.partial)+len(b)))
		s.offset += int64(len(s.partial) + len(b))
		s.partial = nil
		return
	}
	s.partial = append(s.partial, b...)
}

// Wait blocks until the followed file changes, the poll interval elapses or
// ctx is done. Non-following sources just sleep for the poll interval.
func (s *FileSource) Wait(ctx context.Context) error {
	timer := time.NewTimer(s.poll)
	defer timer.Stop()

	if s.watcher == nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}

	name := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return s.checkRotation()
		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			return s.checkRotation()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("file watcher error", log.Err(err))
		}
	}
}

// checkRotation reopens the input from the start when it was truncated or
// replaced by a new file.
func (s *FileSource) checkRotation() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	cur, err := s.file.Stat()
	if err != nil {
		return err
	}
	if os.SameFile(info, cur) && info.Size() >= s.offset+int64(len(s.partial)) {
		return nil
	}
	s.logger.Info("input truncated or replaced, reopening", log.String("path", s.path))
	return s.openAt(0)
}

// Position returns the byte offset just past the last returned line, or -1
// for stdin.
func (s *FileSource) Position() int64 {
	if s.path == Stdin {
		return -1
	}
	return s.offset
}

// Path returns the input path as given.
func (s *FileSource) Path() string { return s.path }

// Close releases the watcher and the file.
func (s *FileSource) Close() error {
	var err error
	if s.watcher != nil {
		err = s.watcher.Close()
		s.watcher = nil
	}
	if s.file != nil && s.file != os.Stdin {
		if cerr := s.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	s.file = nil
	s.reader = nil
	return err
}
