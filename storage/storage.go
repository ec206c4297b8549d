// Package storage provides document storage backends for admin data
// (custom song lists, the metadata library). The default backend is the
// local filesystem; an S3-compatible backend covers shared deployments.
package storage

import "errors"

// ErrNotFound is returned when a key does not exist in the backend.
var ErrNotFound = errors.New("document not found")

// Provider is the behavior any document storage backend must offer.
// Keys are S3-style, forward-slash separated.
type Provider interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
	List(prefix string) ([]string, error)
	Exists(key string) (bool, error)
}
