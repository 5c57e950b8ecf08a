// Package storage abstracts where submission files live. The API keeps
// serving whether objects sit on local disk or in S3; callers treat removal
// failures as non-fatal.
package storage

import (
	"io"
	"time"
)

// Object describes a stored file.
type Object struct {
	Key        string
	Size       int64
	ModifiedAt time.Time
}

// Store is the file storage capability consumed by the controllers and the
// deletion cascade.
type Store interface {
	// Save writes the content under key, creating parent paths as needed.
	Save(key string, content io.Reader) error
	// Open returns a reader for the object at key.
	Open(key string) (io.ReadCloser, error)
	// Remove deletes the object at key. Removing a missing object is not
	// an error.
	Remove(key string) error
	// List returns every stored object. Used by the orphan sweep job.
	List() ([]Object, error)
}
