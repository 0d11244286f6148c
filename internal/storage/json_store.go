package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/aisle/internal/constants"
	apperrors "github.com/julianstephens/aisle/internal/errors"
	"github.com/julianstephens/aisle/internal/logger"
)

// fileEnvelope is the on-disk layout of a JSONStore.
type fileEnvelope struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// JSONStore keeps every key in one JSON file. The file is re-read on every
// call so edits made by another process are picked up.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return s.write(&fileEnvelope{Version: constants.JSONStoreVersion, Values: map[string]string{}})
}

func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.read()
	return err
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) read() (*fileEnvelope, error) {
	env := &fileEnvelope{Version: constants.JSONStoreVersion, Values: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("failed to parse storage file %s: %w", s.path, err)
	}
	if env.Values == nil {
		env.Values = map[string]string{}
	}
	return env, nil
}

// write replaces the file atomically: temp file in the same directory, then rename.
func (s *JSONStore) write(env *fileEnvelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.Storage("get", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read()
	if err != nil {
		return "", apperrors.Storage("get", key, err)
	}
	value, ok := env.Values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *JSONStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Storage("set", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read()
	if err != nil {
		return apperrors.Storage("set", key, err)
	}
	env.Values[key] = value
	return apperrors.Storage("set", key, s.write(env))
}

func (s *JSONStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Storage("remove", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read()
	if err != nil {
		return apperrors.Storage("remove", key, err)
	}
	if _, ok := env.Values[key]; !ok {
		return nil
	}
	delete(env.Values, key)
	return apperrors.Storage("remove", key, s.write(env))
}

func (s *JSONStore) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage("keys", "", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read()
	if err != nil {
		return nil, apperrors.Storage("keys", "", err)
	}
	keys := make([]string, 0, len(env.Values))
	for k := range env.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// Watch signals on the returned channel whenever the store file changes.
// Bursts of events are coalesced into one signal. The channel is closed
// when ctx is cancelled.
func (s *JSONStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Saves replace the file by rename, so the directory is watched instead of the inode.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	out := make(chan struct{}, 1)
	go s.watchLoop(ctx, watcher, out)
	return out, nil
}

func (s *JSONStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer watcher.Close()

	target := filepath.Clean(s.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("store file event", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(constants.WatchDebounce)
			} else {
				timer.Reset(constants.WatchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case out <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("fsnotify error", "error", err)
		}
	}
}
