// Package storage holds the backends that persist the ledger documents. Each
// Store owns exactly one document: the chain or the private key registry.
package storage

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotExist is returned by Load when the document has never been saved.
	ErrNotExist = errors.New("document does not exist")
	// ErrDataCorruption marks a document that exists but does not parse.
	ErrDataCorruption = errors.New("data corruption")
	// ErrLocked is returned by Lock when another cycle holds the document.
	ErrLocked = errors.New("document is locked")
)

// Store persists a single document as an opaque byte slice.
type Store interface {
	// Name identifies the document in logs and errors.
	Name() string
	Load() ([]byte, error)
	// Save overwrites the whole document. It is not atomic.
	Save(data []byte) error
	// Lock acquires exclusive access for one load-mutate-save cycle. The returned
	// function releases it and must be called on every exit path.
	Lock() (func(), error)
}

// Corrupted wraps a parse failure of the named document into ErrDataCorruption.
func Corrupted(name string, err error) error {
	return errors.WithMessagef(ErrDataCorruption, "%s: %v", name, err)
}
