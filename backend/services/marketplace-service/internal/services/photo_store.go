package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
)

// PhotoStore persists uploaded photos and serves them back by name.
type PhotoStore interface {
	// Store saves data under filename and returns the public URL.
	Store(ctx context.Context, data []byte, filename string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// PhotoURL is the public path a stored photo is served from.
func PhotoURL(name string) string {
	return constants.PhotoURLPrefix + name
}

// cleanPhotoName rejects anything that is not a bare file name.
func cleanPhotoName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", internal_utils.ErrInvalidPhotoName, name)
	}
	return name, nil
}

type DiskPhotoStore struct {
	dir string
}

func NewDiskPhotoStore(dir string) (*DiskPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskPhotoStore{dir: dir}, nil
}

func (s *DiskPhotoStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	name, err := cleanPhotoName(filename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write photo %s: %w", name, err)
	}
	return PhotoURL(name), nil
}

func (s *DiskPhotoStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	clean, err := cleanPhotoName(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, internal_utils.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
