package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store keeps all mappings in one JSON document on disk. Every mutation
// rewrites the whole document.
type Store struct {
	mtx      sync.Mutex
	filePath string
}

func NewStore(filePath string) *Store {
	var c Store
	c.filePath = filePath
	return &c
}

func (c *Store) FilePath() string {
	return c.filePath
}

// Load returns all mappings. A missing file is initialized with an empty
// document first.
func (c *Store) Load() ([]Mapping, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.load()
}

// Save replaces the document with mappings.
func (c *Store) Save(mappings []Mapping) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.save(mappings)
}

// Update runs load, fn and save while holding the writer lock. When fn
// returns an error nothing is written.
func (c *Store) Update(fn func(mappings []Mapping) ([]Mapping, error)) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	mappings, err := c.load()
	if err != nil {
		return err
	}
	mappings, err = fn(mappings)
	if err != nil {
		return err
	}
	return c.save(mappings)
}

func (c *Store) load() ([]Mapping, error) {
	bs, err := os.ReadFile(c.filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read store %s: %w", c.filePath, err)
		}
		err = c.save(nil)
		if err != nil {
			return nil, err
		}
		return make([]Mapping, 0), nil
	}

	err = validateDocument(bs)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", c.filePath, err)
	}

	var doc Document
	err = json.Unmarshal(bs, &doc)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w: %v", c.filePath, ErrMalformedDocument, err)
	}
	if doc.Mappings == nil {
		doc.Mappings = make([]Mapping, 0)
	}
	return doc.Mappings, nil
}

func (c *Store) save(mappings []Mapping) (err error) {
	if mappings == nil {
		mappings = make([]Mapping, 0)
	}
	bs, err := json.MarshalIndent(Document{Mappings: mappings}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(c.filePath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("write store %s: %w", c.filePath, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write store %s: %w", c.filePath, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(bs); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store %s: %w", c.filePath, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store %s: %w", c.filePath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write store %s: %w", c.filePath, err)
	}
	if err = os.Rename(tmpName, c.filePath); err != nil {
		return fmt.Errorf("write store %s: %w", c.filePath, err)
	}
	return nil
}
