package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	planapp "github.com/muhammedarifp/catering-app-temp-sub000/internal/application/planning"
	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
)

var _ planapp.PlanArchiveStorage = (*MemoryPlanArchive)(nil)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryPlanArchive keeps plan snapshots in process memory. It backs
// development and single-node deployments without object storage; its links
// point at the API's own archive route.
type MemoryPlanArchive struct {
	// BaseURL prefixes download links, e.g. "/api/v1/planning/archive"
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
	now     func() time.Time
}

// NewMemoryPlanArchive creates an empty archive whose links start with baseURL
func NewMemoryPlanArchive(baseURL string) *MemoryPlanArchive {
	return &MemoryPlanArchive{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]memoryObject),
		now:     time.Now,
	}
}

// Upload stores a copy of data under key, replacing any previous object
func (m *MemoryPlanArchive) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// Download returns a copy of the object under key
func (m *MemoryPlanArchive) Download(ctx context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", shared.ErrNotFound
	}
	return append([]byte(nil), obj.data...), obj.contentType, nil
}

// GenerateDownloadURL returns BaseURL/key for a stored object. The expiry is
// reported but not enforced.
func (m *MemoryPlanArchive) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", time.Time{}, shared.ErrNotFound
	}
	if expiresIn <= 0 {
		expiresIn = defaultPresignExpiration
	}
	escaped := (&url.URL{Path: key}).EscapedPath()
	return m.BaseURL + "/" + escaped, m.now().Add(expiresIn), nil
}

// Len returns the number of stored objects
func (m *MemoryPlanArchive) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
