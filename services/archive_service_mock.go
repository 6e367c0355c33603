package services

import (
	"fmt"
	"sync"
)

// MockArchiveService is a mock implementation of ArchiveService for testing
type MockArchiveService struct {
	uploads map[string][]byte // map of archive key to contents
	failAll bool
	mu      sync.RWMutex
}

// NewMockArchiveService creates a new mock export archive
func NewMockArchiveService() *MockArchiveService {
	return &MockArchiveService{
		uploads: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global archive instance for testing
func (m *MockArchiveService) SetAsMockForTesting() {
	SetArchiveService(m)
}

// FailUploads makes every subsequent upload return an error
func (m *MockArchiveService) FailUploads() {
	m.mu.Lock()
	m.failAll = true
	m.mu.Unlock()
}

// UploadExport simulates archiving an export
func (m *MockArchiveService) UploadExport(key string, contents []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAll {
		return "", fmt.Errorf("mock archive upload failure for %s", key)
	}

	stored := make([]byte, len(contents))
	copy(stored, contents)
	m.uploads[key] = stored

	return fmt.Sprintf("s3://mock-bucket/%s", key), nil
}

// Uploaded returns the archived contents for a key, if present
func (m *MockArchiveService) Uploaded(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	contents, ok := m.uploads[key]
	return contents, ok
}

// UploadCount returns how many exports have been archived
func (m *MockArchiveService) UploadCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uploads)
}
