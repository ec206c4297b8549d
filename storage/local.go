package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider stores documents as files under a root directory.
type LocalProvider struct {
	RootPath string
}

// NewLocalProvider creates the root directory if needed.
func NewLocalProvider(root string) *LocalProvider {
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{RootPath: root}
}

func (l *LocalProvider) path(key string) string {
	return filepath.Join(l.RootPath, filepath.FromSlash(key))
}

func (l *LocalProvider) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (l *LocalProvider) Put(key string, data []byte) error {
	path := l.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (l *LocalProvider) Delete(key string) error {
	err := os.Remove(l.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *LocalProvider) List(prefix string) ([]string, error) {
	var keys []string
	err := filepath.Walk(l.RootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}

		// Convert OS path back to S3-style key (forward slashes).
		rel, _ := filepath.Rel(l.RootPath, path)
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return keys, err
}

func (l *LocalProvider) Exists(key string) (bool, error) {
	_, err := os.Stat(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
