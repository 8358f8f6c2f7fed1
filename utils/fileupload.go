package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxFileSize is the 10MB cap on chat document attachments
const MaxFileSize = 10 * 1024 * 1024

var (
	// UploadDir is the directory where chat attachments are stored when
	// running with local file storage. Can be overridden for testing.
	UploadDir = "./uploads/chat-files"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateChatFile validates an uploaded chat attachment. Any file type is
// accepted; only the size is constrained.
func ValidateChatFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds %dMB limit", MaxFileSize/(1024*1024)),
		}
	}
	return nil
}

// StorageKey generates a fresh collision-free storage name for an uploaded
// file, preserving the original filename's extension.
func StorageKey(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}

// SaveUploadedFile saves the uploaded file under uploadDir using the given
// storage name and returns the name back on success.
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir, storageName string) (filename string, err error) {
	// Create the upload directory if it doesn't exist
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fullPath := filepath.Join(uploadDir, storageName)

	// Open the uploaded file
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			// Log error since we're reading; not critical enough to fail the operation
			fmt.Printf("warning: failed to close source file: %v\n", closeErr)
		}
	}()

	// Create the destination file
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	// Copy the file
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return storageName, nil
}

// FileURL returns the URL path for accessing a locally stored attachment
func FileURL(storageName string) string {
	if storageName == "" {
		return ""
	}
	return fmt.Sprintf("/uploads/chat-files/%s", storageName)
}
