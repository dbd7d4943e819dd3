package adapter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FilesystemDocumentStore keeps dossier documents on local disk: attached
// files land in a staging directory and are promoted into the durable store
// directory on upload. References are paths relative to the respective root.
type FilesystemDocumentStore struct {
	stagingDir string
	storeDir   string
}

// NewFilesystemDocumentStore creates both directories if needed.
func NewFilesystemDocumentStore(stagingDir, storeDir string) (*FilesystemDocumentStore, error) {
	for _, dir := range []string{stagingDir, storeDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create document dir %s: %w", dir, err)
		}
	}
	return &FilesystemDocumentStore{stagingDir: stagingDir, storeDir: storeDir}, nil
}

// Stage writes the file into staging and returns its reference. At most size
// bytes are read; a short write is reported as an error.
func (s *FilesystemDocumentStore) Stage(ctx context.Context, dossierID, documentType, fileName string, content io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := filepath.Join(dossierID, fmt.Sprintf("%s-%s%s", documentType, uuid.New().String(), filepath.Ext(fileName)))
	path := filepath.Join(s.stagingDir, ref)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(content, size))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written != size {
		err = fmt.Errorf("short write: got %d of %d bytes", written, size)
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write staging file: %w", err)
	}

	return ref, nil
}

// Promote moves a staged file into the durable store and returns the durable
// reference. The staged file is gone afterwards.
func (s *FilesystemDocumentStore) Promote(ctx context.Context, dossierID, documentType, stagedRef string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := s.resolve(s.stagingDir, stagedRef)
	if err != nil {
		return "", err
	}

	ref := filepath.Join(dossierID, fmt.Sprintf("%s%s", documentType, filepath.Ext(stagedRef)))
	dst := filepath.Join(s.storeDir, ref)

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return "", fmt.Errorf("create store dir: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("promote document: %w", err)
	}
	return ref, nil
}

// Discard drops a staged file. A missing file is not an error: the slot may
// have been replaced or promoted already.
func (s *FilesystemDocumentStore) Discard(_ context.Context, stagedRef string) error {
	path, err := s.resolve(s.stagingDir, stagedRef)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("discard staged file: %w", err)
	}
	return nil
}

// resolve rejects references escaping the root directory.
func (s *FilesystemDocumentStore) resolve(root, ref string) (string, error) {
	path := filepath.Join(root, filepath.Clean("/"+ref))
	if !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid document reference: %s", ref)
	}
	return path, nil
}
