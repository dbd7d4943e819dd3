package port

import (
	"context"
	"io"
)

// DocumentStore holds dossier document files. Stage writes the file into
// local staging and returns a reference; Promote moves a staged file into
// durable storage and returns the durable reference; Discard drops a staged
// file when its slot is removed or replaced.
type DocumentStore interface {
	Stage(ctx context.Context, dossierID, documentType, fileName string, content io.Reader, size int64) (string, error)
	Promote(ctx context.Context, dossierID, documentType, stagedRef string) (string, error)
	Discard(ctx context.Context, stagedRef string) error
}
