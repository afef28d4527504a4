// Package remote defines the port to the remote mirror holding a full
// copy of the transaction list, plus the document format exchanged
// with it.
package remote

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// ErrNotFound reports that the referenced remote document does not
// exist or is not reachable with the given credential.
var ErrNotFound = errors.New("remote document not found")

// Document is the payload mirrored remotely. LastSync is an RFC3339
// timestamp stamped by the writer on every push.
type Document struct {
	LastSync     string             `json:"lastSync"`
	Transactions []core.Transaction `json:"transactions"`
}

// Store is the remote mirror. Create makes a new document and returns
// its identifier; Update overwrites an existing one; Fetch reads one
// back. Implementations return ErrNotFound for missing documents.
type Store interface {
	Create(ctx context.Context, doc Document) (string, error)
	Update(ctx context.Context, id string, doc Document) error
	Fetch(ctx context.Context, id string) (Document, error)
}
