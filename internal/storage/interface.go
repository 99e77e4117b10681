package storage

import "errors"

// ErrNoDocument is returned by Get when a key has never been written.
var ErrNoDocument = errors.New("document not found")

// Provider is a durable key to JSON document store. Every Put replaces the
// whole document.
//
// Providers assume a single writing process; concurrent writers in other
// processes are not coordinated.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// BatchWriter is implemented by providers that can replace several documents
// in one atomic step.
type BatchWriter interface {
	PutBatch(docs map[string][]byte) error
}
