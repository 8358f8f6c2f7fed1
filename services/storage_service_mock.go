package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockFileStorage is an in-memory FileStorage implementation for testing
type MockFileStorage struct {
	savedFiles map[string][]byte // map of storage name to file content
	failSave   bool
	mu         sync.RWMutex
}

// NewMockFileStorage creates a new mock file storage
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{
		savedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global file storage instance
func (m *MockFileStorage) SetAsMockForTesting() {
	SetFileStorage(m)
}

// FailNextSave makes subsequent SaveFile calls fail
func (m *MockFileStorage) FailNextSave(fail bool) {
	m.mu.Lock()
	m.failSave = fail
	m.mu.Unlock()
}

// SaveFile stores the attachment content in memory and returns a mock URL
func (m *MockFileStorage) SaveFile(fileHeader *multipart.FileHeader, storageName string) (string, error) {
	m.mu.RLock()
	fail := m.failSave
	m.mu.RUnlock()
	if fail {
		return "", fmt.Errorf("mock storage failure")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	m.mu.Lock()
	m.savedFiles[storageName] = content
	m.mu.Unlock()

	return "/uploads/chat-files/" + storageName, nil
}

// DeleteFile removes a stored attachment from the mock storage
func (m *MockFileStorage) DeleteFile(storageName string) error {
	if storageName == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.savedFiles, storageName)
	m.mu.Unlock()

	return nil
}

// StoredContent returns the bytes stored under a storage name (for assertions)
func (m *MockFileStorage) StoredContent(storageName string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.savedFiles[storageName]
	return content, ok
}

// StoredCount returns how many files the mock currently holds
func (m *MockFileStorage) StoredCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.savedFiles)
}
