package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/shoplink/shoplink-api/utils"
)

// LocalFileStorage stores chat attachments on the local filesystem and
// serves them back through the /uploads/chat-files route.
type LocalFileStorage struct {
	dir string
}

// NewLocalFileStorage creates a filesystem-backed storage rooted at dir
func NewLocalFileStorage(dir string) *LocalFileStorage {
	if dir == "" {
		dir = utils.UploadDir
	}
	return &LocalFileStorage{dir: dir}
}

// SaveFile writes the attachment to disk and returns its URL path
func (l *LocalFileStorage) SaveFile(fileHeader *multipart.FileHeader, storageName string) (string, error) {
	if _, err := utils.SaveUploadedFile(fileHeader, l.dir, storageName); err != nil {
		return "", err
	}
	return utils.FileURL(storageName), nil
}

// DeleteFile removes a stored attachment from disk
func (l *LocalFileStorage) DeleteFile(storageName string) error {
	if storageName == "" {
		return nil
	}

	if err := os.Remove(filepath.Join(l.dir, storageName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
