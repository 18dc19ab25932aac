// Package uploads stores payment screenshots. Files are write-once:
// nothing in this system reads them back, they are checked manually
// during external verification.
package uploads

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/JITENDRA0811/impetus9-backend/logging"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const MaxScreenshotBytes = 5 * 1024 * 1024

const filenameAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var ErrNotAnImage = errors.New("only image files are allowed")
var ErrFileTooLarge = errors.New("file exceeds the 5MB limit")

type Store interface {
	Save(file *multipart.FileHeader) (string, error)
}

type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

// Save validates the attachment (image content type, size cap) and
// writes it under a collision-free name, returning the stored path.
func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxScreenshotBytes {
		return "", ErrFileTooLarge
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", ErrNotAnImage
	}

	suffix, err := gonanoid.Generate(filenameAlphabet, 12)
	if err != nil {
		logging.Log.Errorf("UPLOAD: failed to generate filename: %v", err)
		return "", err
	}
	name := "receipt-" + suffix + strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(s.Dir, name)

	src, err := file.Open()
	if err != nil {
		logging.Log.Errorf("UPLOAD: failed to open attachment: %v", err)
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		logging.Log.Errorf("UPLOAD: failed to create %s: %v", path, err)
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		logging.Log.Errorf("UPLOAD: failed to write %s: %v", path, err)
		return "", err
	}
	return path, nil
}
