package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hexlink/url-shortener/internal/generator"
	"github.com/hexlink/url-shortener/internal/model"
	"github.com/hexlink/url-shortener/internal/storage"
	"github.com/hexlink/url-shortener/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	insertFunc      func(code, originalURL string)
	createFunc      func(code, originalURL string) error
	lookupFunc      func(code string) (model.URLRecord, bool)
	recordVisitFunc func(code string) (string, bool)
}

func (m *mockStorage) Insert(code, originalURL string) {
	if m.insertFunc != nil {
		m.insertFunc(code, originalURL)
	}
}

func (m *mockStorage) Create(code, originalURL string) error {
	if m.createFunc != nil {
		return m.createFunc(code, originalURL)
	}
	return nil
}

func (m *mockStorage) Lookup(code string) (model.URLRecord, bool) {
	return m.lookupFunc(code)
}

func (m *mockStorage) RecordVisit(code string) (string, bool) {
	return m.recordVisitFunc(code)
}

func (m *mockStorage) Len() int {
	return 0
}

// sequence returns a generator yielding codes in order.
func sequence(codes ...string) generator.Func {
	var i int
	return func() (string, error) {
		code := codes[i%len(codes)]
		i++
		return code, nil
	}
}

func TestURLService_ShortenURL(t *testing.T) {
	errStorage := errors.New("storage error")
	errEntropy := errors.New("entropy exhausted")

	tests := []struct {
		name       string
		gen        generator.Func
		createErrs []error
		want       string
		wantErr    error
		wantCalls  int
	}{
		{
			name:      "Successful shortening",
			gen:       sequence("abc123"),
			want:      "abc123",
			wantCalls: 1,
		},
		{
			name:       "Collision then success",
			gen:        sequence("abc123", "def456"),
			createErrs: []error{storage.ErrCodeExists},
			want:       "def456",
			wantCalls:  2,
		},
		{
			name: "Every attempt collides",
			gen:  sequence("abc123"),
			createErrs: []error{
				storage.ErrCodeExists, storage.ErrCodeExists, storage.ErrCodeExists,
				storage.ErrCodeExists, storage.ErrCodeExists,
			},
			wantErr:   ErrMaxRetriesExceeded,
			wantCalls: DefaultCollisionRetries,
		},
		{
			name:       "Storage error",
			gen:        sequence("abc123"),
			createErrs: []error{errStorage},
			wantErr:    errStorage,
			wantCalls:  1,
		},
		{
			name:      "Generator error",
			gen:       func() (string, error) { return "", errEntropy },
			wantErr:   errEntropy,
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			mockStorage := &mockStorage{
				createFunc: func(code, originalURL string) error {
					defer func() { calls++ }()
					if calls < len(tt.createErrs) {
						return tt.createErrs[calls]
					}
					return nil
				},
			}

			service := NewURLService(mockStorage, tt.gen, DefaultCollisionRetries)
			got, err := service.ShortenURL(context.Background(), "https://example.com")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestURLService_ShortenURLWithoutRetries(t *testing.T) {
	store := memory.NewStorage()
	service := NewURLService(store, sequence("abc123"), 0)

	first, err := service.ShortenURL(context.Background(), "https://example.com/first")
	require.NoError(t, err)
	second, err := service.ShortenURL(context.Background(), "https://example.com/second")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, service.Count())

	stats, err := service.GetStats(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/second", stats.OriginalURL)
}

func TestURLService_ResolveURL(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		mockURL   string
		mockFound bool
		wantURL   string
		wantErr   error
	}{
		{
			name:      "URL found",
			code:      "abc123",
			mockURL:   "https://example.com",
			mockFound: true,
			wantURL:   "https://example.com",
		},
		{
			name:    "URL not found",
			code:    "ffffff",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStorage := &mockStorage{
				recordVisitFunc: func(code string) (string, bool) {
					if code == tt.code {
						return tt.mockURL, tt.mockFound
					}
					return "", false
				},
			}

			service := NewURLService(mockStorage, sequence("abc123"), DefaultCollisionRetries)
			got, err := service.ResolveURL(context.Background(), tt.code)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got)
		})
	}
}

func TestURLService_GetStatsIsReadOnly(t *testing.T) {
	store := memory.NewStorage()
	service := NewURLService(store, generator.New(), DefaultCollisionRetries)
	ctx := context.Background()

	code, err := service.ShortenURL(ctx, "https://example.com/page")
	require.NoError(t, err)

	first, err := service.GetStats(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page", first.OriginalURL)
	assert.Equal(t, code, first.ShortCode)
	assert.Zero(t, first.Visits)

	for i := 0; i < 10; i++ {
		got, err := service.GetStats(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}

	_, err = service.GetStats(ctx, "ffffff")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestURLService_ConcurrentResolve(t *testing.T) {
	const visits = 1000

	store := memory.NewStorage()
	service := NewURLService(store, generator.New(), DefaultCollisionRetries)
	ctx := context.Background()

	code, err := service.ShortenURL(ctx, "https://example.com")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < visits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = service.ResolveURL(ctx, code)
		}()
	}
	wg.Wait()

	stats, err := service.GetStats(ctx, code)
	require.NoError(t, err)
	assert.EqualValues(t, visits, stats.Visits)
}

func BenchmarkURLService_ShortenURL(b *testing.B) {
	service := NewURLService(memory.NewStorage(), generator.New(), DefaultCollisionRetries)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.ShortenURL(context.Background(), "https://example.com/very/long/url/path")
	}
}

func BenchmarkURLService_ResolveURL(b *testing.B) {
	mockStorage := &mockStorage{
		recordVisitFunc: func(code string) (string, bool) {
			return "https://example.com", true
		},
	}
	service := NewURLService(mockStorage, sequence("abc123"), DefaultCollisionRetries)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.ResolveURL(context.Background(), "abc123")
	}
}
