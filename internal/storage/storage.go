package storage

import (
	"errors"

	"github.com/hexlink/url-shortener/internal/model"
)

// ErrCodeExists is returned by Create when the short code is already taken.
var ErrCodeExists = errors.New("short code already exists")

// URLStore maps short codes to URL records.
type URLStore interface {
	// Insert stores a fresh record under code, replacing any previous one.
	Insert(code, originalURL string)

	// Create stores a fresh record under code unless code is already taken.
	Create(code, originalURL string) error

	Lookup(code string) (model.URLRecord, bool)

	// RecordVisit counts one visit and returns the target URL.
	RecordVisit(code string) (string, bool)

	Len() int
}
