package chunk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Chunk is one temporary slice of the source audio. It owns its backing file
// until Release is called.
type Chunk struct {
	Index    int
	Path     string
	Offset   float64
	Duration float64

	once       sync.Once
	releaseErr error
}

// Release removes the backing file. It is safe to call more than once and
// from multiple goroutines; only the first call touches the filesystem.
func (c *Chunk) Release() error {
	if c == nil {
		return nil
	}
	c.once.Do(func() {
		if c.Path == "" {
			return
		}
		if err := os.Remove(c.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.releaseErr = fmt.Errorf("release chunk %d: %w", c.Index, err)
		}
	})
	return c.releaseErr
}

// ReleaseAll releases every chunk and returns the first error encountered.
func ReleaseAll(chunks []*Chunk) error {
	var first error
	for _, c := range chunks {
		if err := c.Release(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
