package subst

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileStore constants
const (
	FileStoreExtension = ".tmpl"
	FileStoreTempExt   = ".tmp"
	FileStoreDirPerm   = 0o755
	FileStoreFilePerm  = 0o644
)

// FileStore file-specific error messages
const (
	ErrMsgFileStoreInvalidName = "template name must not contain path separators"
	ErrMsgFileStoreRead        = "template file could not be read"
	ErrMsgFileStoreWrite       = "template file could not be written"
)

// FileStore is a TemplateStore backed by a directory of .tmpl files,
// one file per template, named <name>.tmpl. Versions are not retained;
// Put overwrites and bumps the version counter held in memory.
type FileStore struct {
	dir      string
	mu       sync.RWMutex
	versions map[string]int
	closed   bool
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
}

// NewFileStore creates a file-backed template store rooted at dir,
// creating the directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, FileStoreDirPerm); err != nil {
		return nil, NewStoreError(ErrMsgFileStoreWrite, err)
	}
	return &FileStore{
		dir:      dir,
		versions: make(map[string]int),
		logger:   logger,
	}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+FileStoreExtension)
}

func validTemplateName(name string) error {
	if name == "" {
		return NewStoreError(ErrMsgStoreEmptyName, nil)
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return NewStoreError(ErrMsgFileStoreInvalidName, nil)
	}
	return nil
}

// Get retrieves a template by reading its file.
func (s *FileStore) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validTemplateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	info, err := os.Stat(s.path(name))
	if err != nil {
		return nil, NewStoreTemplateNotFoundError(name)
	}
	source, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, NewStoreError(ErrMsgFileStoreRead, err)
	}

	version := s.versions[name]
	if version == 0 {
		version = 1
	}
	return &StoredTemplate{
		Name:      name,
		Source:    string(source),
		Version:   version,
		CreatedAt: info.ModTime().UTC(),
		UpdatedAt: info.ModTime().UTC(),
	}, nil
}

// Put writes a template file atomically (temp file, then rename).
func (s *FileStore) Put(ctx context.Context, name, source string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validTemplateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	tmpPath := s.path(name) + FileStoreTempExt
	if err := os.WriteFile(tmpPath, []byte(source), FileStoreFilePerm); err != nil {
		return nil, NewStoreError(ErrMsgFileStoreWrite, err)
	}
	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		return nil, NewStoreError(ErrMsgFileStoreWrite, err)
	}

	s.versions[name]++
	now := time.Now().UTC()
	return &StoredTemplate{
		Name:      name,
		Source:    source,
		Version:   s.versions[name],
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// List returns the names of all template files in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, NewStoreError(ErrMsgFileStoreRead, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileStoreExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), FileStoreExtension))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a template file.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validTemplateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return NewStoreTemplateNotFoundError(name)
		}
		return NewStoreError(ErrMsgFileStoreWrite, err)
	}
	delete(s.versions, name)
	return nil
}

// Watch invokes onChange with the template name whenever a .tmpl file in
// the store directory is created or rewritten. It blocks until ctx is
// done or the store is closed. Only one Watch per store is supported.
func (s *FileStore) Watch(ctx context.Context, onChange func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewStoreError(ErrMsgStoreWatchFailed, err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return NewStoreError(ErrMsgStoreWatchFailed, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		watcher.Close()
		return NewStoreClosedError()
	}
	s.watcher = watcher
	s.mu.Unlock()

	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			base := filepath.Base(event.Name)
			if !strings.HasSuffix(base, FileStoreExtension) {
				continue
			}
			name := strings.TrimSuffix(base, FileStoreExtension)
			s.logger.Debug(LogMsgStoreReload, zap.String(LogFieldName, name))
			onChange(name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return NewStoreError(ErrMsgStoreWatchFailed, err)
		}
	}
}

// Close stops any active watcher and marks the store closed.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}
