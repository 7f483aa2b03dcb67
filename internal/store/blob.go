package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Blob is the key-value byte persistence capability the store writes
// through. Load returns (nil, nil) when the key has never been saved.
type Blob interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

type diskBlob struct {
	d *diskv.Diskv
}

// NewDiskBlob creates a Blob backed by diskv rooted at basePath.
func NewDiskBlob(basePath string) Blob {
	return &diskBlob{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (b *diskBlob) Load(key string) ([]byte, error) {
	data, err := b.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

func (b *diskBlob) Save(key string, data []byte) error {
	if err := b.d.Write(key, data); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

type memoryBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBlob creates an in-memory Blob for testing.
func NewMemoryBlob() Blob {
	return &memoryBlob{data: make(map[string][]byte)}
}

func (b *memoryBlob) Load(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (b *memoryBlob) Save(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	b.data[key] = cp
	return nil
}

// DefaultDataPath returns ~/.config/reflection
func DefaultDataPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "reflection"), nil
}
