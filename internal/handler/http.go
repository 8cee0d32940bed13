package handler

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/hexlink/url-shortener/internal/logger"
	"github.com/hexlink/url-shortener/internal/model"
	"github.com/hexlink/url-shortener/internal/pool"
	"github.com/hexlink/url-shortener/internal/service"
	"github.com/rs/zerolog"
)

// notFoundMessage is shown on the landing page and returned by the stats API.
const notFoundMessage = "URL not found"

var notFoundRedirect = "/?error=" + url.PathEscape(notFoundMessage)

type URLService interface {
	ShortenURL(ctx context.Context, originalURL string) (string, error)
	ResolveURL(ctx context.Context, code string) (string, error)
	GetStats(ctx context.Context, code string) (model.URLStats, error)
}

type Handler struct {
	urlService URLService
	validate   *validator.Validate
	page       *template.Template
	static     http.FileSystem
	buffers    *pool.Pool[*bytes.Buffer]
}

func NewHandler(urlService URLService) *Handler {
	return &Handler{
		urlService: urlService,
		validate:   validator.New(),
		page:       indexTemplate,
		static:     http.FS(staticFS),
		buffers:    newRenderBuffers(),
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5,
		"application/json",
		"text/html",
		"text/css",
		"text/javascript",
		"application/javascript",
	))

	r.Get("/", h.handleIndex)
	r.Handle("/static/*", http.FileServer(h.static))
	r.Post("/shorten", h.handleShorten)
	r.Get("/{shortCode}", h.handleRedirect)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Get("/stats/{shortCode}", h.handleStats)
	})

	return r
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")

	originalURL, err := h.urlService.ResolveURL(r.Context(), code)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("code", code).Msg("Failed to resolve short code")
		}

		http.Redirect(w, r, notFoundRedirect, http.StatusFound)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "shortCode")

	stats, err := h.urlService.GetStats(r.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: notFoundMessage})
			return
		}

		zerolog.Ctx(r.Context()).Error().Err(err).Str("code", code).Msg("Failed to load stats")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "Internal server error"})
		return
	}

	render.JSON(w, r, stats)
}
