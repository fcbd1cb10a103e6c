package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/natefinch/atomic"
)

// ErrClosed is returned by a collection after its database was closed.
var ErrClosed = errors.New("database closed")

// Collection is one entity type persisted as a single JSON array file.
// Every read loads the whole file and every update rewrites it.  Updates
// are serialized by mu and the file is replaced atomically, so readers
// never observe a torn write.
type Collection[T any] struct {
	mu     sync.RWMutex
	path   string
	closed bool
}

// NewCollection returns a collection backed by path, creating the file
// with an empty array when it does not exist yet.
func NewCollection[T any](path string) (*Collection[T], error) {
	c := &Collection[T]{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := c.write([]T{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return c, nil
}

// Read returns a snapshot of the whole collection.
func (c *Collection[T]) Read() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}
	return c.read()
}

// Update loads the collection, passes it to fn and writes back whatever
// fn returns.  When fn returns an error nothing is written.
func (c *Collection[T]) Update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	items, err := c.read()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.write(items)
}

func (c *Collection[T]) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Collection[T]) read() ([]T, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	items := []T{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	if err := atomic.WriteFile(c.path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}
