package store

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/property"
)

var (
	// ErrNotFound is returned when no record exists for a path.
	ErrNotFound = errors.New("store: resource not found")
	// ErrUnavailable wraps backend I/O failures.
	ErrUnavailable = errors.New("store: backend unavailable")
	// ErrInvalidPath is returned for empty resource paths.
	ErrInvalidPath = errors.New("store: invalid resource path")
	// ErrCorruptRecord is returned when a stored blob cannot be decoded.
	ErrCorruptRecord = errors.New("store: corrupt record")
)

// Store persists resource records keyed by path.
type Store interface {
	// Define replaces the header of path, keeping its metadata.
	Define(ctx context.Context, path string, h header.Info) (Record, error)
	// Describe replaces the metadata of path, keeping its header.
	Describe(ctx context.Context, path string, m property.Metadata) (Record, error)
	Get(ctx context.Context, path string) (Record, error)
	// Delete removes path. Deleting a missing path is not an error.
	Delete(ctx context.Context, path string) error
	// List returns all stored paths, sorted.
	List(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// NormalizePath cleans a resource path and roots it at "/".
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p), nil
}
