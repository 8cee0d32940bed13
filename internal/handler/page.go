package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/hexlink/url-shortener/internal/pool"
	"github.com/rs/zerolog"
)

const renderBufferPoolSize = 16

// Served under /static/, paths inside the FS keep the static/ prefix.
//
//go:embed static
var staticFS embed.FS

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

func newRenderBuffers() *pool.Pool[*bytes.Buffer] {
	return pool.New(renderBufferPoolSize, func() *bytes.Buffer {
		return new(bytes.Buffer)
	})
}

type indexData struct {
	Error string
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	buf := h.buffers.Get()
	defer h.buffers.Put(buf)

	data := indexData{Error: r.URL.Query().Get("error")}
	if err := h.page.Execute(buf, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render landing page")
		http.Error(w, serverErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write landing page")
	}
}
