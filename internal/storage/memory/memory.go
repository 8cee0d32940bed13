package memory

import (
	"sync"
	"time"

	"github.com/hexlink/url-shortener/internal/model"
	"github.com/hexlink/url-shortener/internal/storage"
)

var _ storage.URLStore = (*Storage)(nil)

// Storage implements an in-memory URLStore guarded by a single RWMutex.
type Storage struct {
	urlMap map[string]*model.URLRecord
	now    func() time.Time
	mutex  sync.RWMutex
}

// NewStorage creates a new empty in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		urlMap: make(map[string]*model.URLRecord),
		now:    time.Now,
	}
}

func (s *Storage) newRecord(originalURL string) *model.URLRecord {
	return &model.URLRecord{
		OriginalURL: originalURL,
		CreatedAt:   s.now().UTC(),
	}
}

// Insert stores a new record for code, silently replacing an existing one.
func (s *Storage) Insert(code, originalURL string) {
	rec := s.newRecord(originalURL)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.urlMap[code] = rec
}

// Create stores a new record for code or returns storage.ErrCodeExists.
func (s *Storage) Create(code, originalURL string) error {
	rec := s.newRecord(originalURL)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, found := s.urlMap[code]; found {
		return storage.ErrCodeExists
	}

	s.urlMap[code] = rec
	return nil
}

// Lookup returns a copy of the record stored under code.
func (s *Storage) Lookup(code string) (model.URLRecord, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, found := s.urlMap[code]
	if !found {
		return model.URLRecord{}, false
	}

	return *rec, true
}

// RecordVisit increments the visit counter of code and returns its original URL.
func (s *Storage) RecordVisit(code string) (string, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec, found := s.urlMap[code]
	if !found {
		return "", false
	}

	rec.Visits++
	return rec.OriginalURL, true
}

// Len returns the number of stored records.
func (s *Storage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.urlMap)
}
