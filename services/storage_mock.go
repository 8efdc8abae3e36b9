package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockStorage is an in-memory MediaStorage for tests
type MockStorage struct {
	files   map[string][]byte
	seq     int
	mu      sync.RWMutex
	SaveErr error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{files: make(map[string][]byte)}
}

func (m *MockStorage) Save(ctx context.Context, fileHeader *multipart.FileHeader) (StoredFile, error) {
	if m.SaveErr != nil {
		return StoredFile{}, m.SaveErr
	}

	file, err := fileHeader.Open()
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to read file: %w", err)
	}

	m.mu.Lock()
	m.seq++
	key := fmt.Sprintf("mock_%d_%s", m.seq, fileHeader.Filename)
	m.files[key] = content
	m.mu.Unlock()

	return StoredFile{Key: key, URL: "http://test.local/uploads/" + key}, nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.files, key)
	m.mu.Unlock()
	return nil
}

// FileExists checks if a file exists in mock storage
func (m *MockStorage) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[key]
	return exists
}

// Count returns the number of stored files
func (m *MockStorage) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
