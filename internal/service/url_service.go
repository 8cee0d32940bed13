package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hexlink/url-shortener/internal/model"
	"github.com/hexlink/url-shortener/internal/storage"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound is returned when a short code is not stored.
	ErrNotFound = errors.New("url not found")
	// ErrMaxRetriesExceeded is returned when every generated code collided.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")
)

// DefaultCollisionRetries is the number of codes tried before giving up.
const DefaultCollisionRetries = 5

type codeGenerator interface {
	Generate() (string, error)
}

// URLService provides business logic for creating and resolving short codes.
type URLService struct {
	storage storage.URLStore
	gen     codeGenerator
	retries int
}

// NewURLService constructs a URLService.
// With retries == 0 new codes are inserted without a collision check and a
// colliding code replaces the older record.
func NewURLService(storage storage.URLStore, gen codeGenerator, retries int) *URLService {
	if retries < 0 {
		retries = 0
	}

	return &URLService{
		storage: storage,
		gen:     gen,
		retries: retries,
	}
}

// ShortenURL stores originalURL under a new short code and returns the code.
// originalURL is expected to be validated by the caller.
func (s *URLService) ShortenURL(ctx context.Context, originalURL string) (string, error) {
	if s.retries == 0 {
		code, err := s.gen.Generate()
		if err != nil {
			return "", err
		}

		s.storage.Insert(code, originalURL)
		log.Ctx(ctx).Debug().Str("code", code).Msg("URL shortened")
		return code, nil
	}

	for attempt := 1; attempt <= s.retries; attempt++ {
		code, err := s.gen.Generate()
		if err != nil {
			return "", err
		}

		err = s.storage.Create(code, originalURL)
		if errors.Is(err, storage.ErrCodeExists) {
			log.Ctx(ctx).Warn().
				Str("code", code).
				Int("attempt", attempt).
				Msg("Short code collision")
			continue
		}
		if err != nil {
			return "", fmt.Errorf("error saving url: %w", err)
		}

		log.Ctx(ctx).Debug().Str("code", code).Msg("URL shortened")
		return code, nil
	}

	return "", ErrMaxRetriesExceeded
}

// ResolveURL counts a visit to code and returns the URL to redirect to.
func (s *URLService) ResolveURL(ctx context.Context, code string) (string, error) {
	originalURL, found := s.storage.RecordVisit(code)
	if !found {
		return "", fmt.Errorf("resolve %q: %w", code, ErrNotFound)
	}

	return originalURL, nil
}

// GetStats returns the stats view of code without counting a visit.
func (s *URLService) GetStats(ctx context.Context, code string) (model.URLStats, error) {
	rec, found := s.storage.Lookup(code)
	if !found {
		return model.URLStats{}, fmt.Errorf("stats %q: %w", code, ErrNotFound)
	}

	return model.NewURLStats(code, rec), nil
}

// Count returns the number of stored short codes.
func (s *URLService) Count() int {
	return s.storage.Len()
}
