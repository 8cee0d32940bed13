package handler

import (
	"net/http"
	"strings"

	"github.com/ajg/form"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"
)

const (
	invalidURLMessage  = "Invalid URL format"
	serverErrorMessage = "Internal server error"
)

type ShortenRequest struct {
	URL string `json:"url" form:"url" validate:"required,url"`
}

type ShortenResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ShortURL  string `json:"shortUrl,omitempty"`
	ShortCode string `json:"shortCode,omitempty"`
}

// handleShorten accepts a urlencoded form or a JSON body with a url field.
// Validation failures are reported in the body with status 200.
func (h *Handler) handleShorten(w http.ResponseWriter, r *http.Request) {
	var req ShortenRequest

	if err := decodeShortenRequest(r, &req); err != nil {
		render.JSON(w, r, ShortenResponse{Message: invalidURLMessage})
		return
	}
	req.URL = trimURL(req.URL)

	if err := h.validate.Struct(req); err != nil {
		render.JSON(w, r, ShortenResponse{Message: invalidURLMessage})
		return
	}

	code, err := h.urlService.ShortenURL(r.Context(), req.URL)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to shorten URL")

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ShortenResponse{Message: serverErrorMessage})
		return
	}

	render.JSON(w, r, ShortenResponse{
		Success:   true,
		ShortURL:  shortURL(r, code),
		ShortCode: code,
	})
}

// decodeShortenRequest ignores form fields other than url, such as the
// submit button of the landing page form.
func decodeShortenRequest(r *http.Request, req *ShortenRequest) error {
	if render.GetRequestContentType(r) != render.ContentTypeForm {
		return render.Decode(r, req)
	}

	d := form.NewDecoder(r.Body)
	d.IgnoreUnknownKeys(true)
	return d.Decode(req)
}

// trimURL strips leading and trailing spaces and C0 control characters,
// as browsers do before parsing a URL.
func trimURL(raw string) string {
	return strings.TrimFunc(raw, func(c rune) bool {
		return c <= ' '
	})
}

// shortURL composes the absolute short URL from the request scheme and host.
func shortURL(r *http.Request, code string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/" + code
}
