package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors to help callers distinguish failure reasons.
var (
	ErrInvalidObject   = errors.New("storage: invalid object")
	ErrInvalidLocation = errors.New("storage: invalid location")
)

// Object represents the payload sent to a storage backend when archiving.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Location represents where an object is stored inside the backend.
type Location struct {
	Path string
	URL  string
}

// DownloadResult bundles the stream returned by a storage backend and some metadata.
type DownloadResult struct {
	Reader      io.ReadCloser
	ContentType string
	Size        int64
}

// Storage describes the archive operations supported by every backend we
// implement. Report exports are written through Upload and served back from
// the archive through Download; archives are retained, never deleted, so a
// re-export simply overwrites the previous object.
type Storage interface {
	Upload(ctx context.Context, obj *Object) (*Location, error)
	Download(ctx context.Context, loc *Location) (*DownloadResult, error)
}

// ValidateObject performs a light validation of the input object before delegating to providers.
func ValidateObject(obj *Object) error {
	if obj == nil || obj.Reader == nil {
		return fmt.Errorf("%w: missing data stream", ErrInvalidObject)
	}
	if obj.Name == "" {
		return fmt.Errorf("%w: missing object name", ErrInvalidObject)
	}
	return nil
}

// ValidateLocation ensures we only interact with safe locations.
func ValidateLocation(loc *Location) error {
	if loc == nil {
		return ErrInvalidLocation
	}
	if loc.Path == "" {
		return fmt.Errorf("%w: missing path", ErrInvalidLocation)
	}
	return nil
}
