package logger

import (
	"io"
	"net/http"
	"os"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvDevelopment switches the logger to human-readable console output.
const EnvDevelopment = "development"

// InitLogger initializes the global zerolog logger for the application.
// Unknown level names fall back to info.
func InitLogger(level, env string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if env == EnvDevelopment {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(lvl)
	zerolog.DefaultContextLogger = &log.Logger

	if err != nil && level != "" {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
	}
}

// RequestLogger logs request/response metadata for each HTTP call and puts
// a request-scoped logger into the request context.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLogger := log.Logger.With().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Logger()
		r = r.WithContext(reqLogger.WithContext(r.Context()))

		ww := NewResponseWriter(w)

		next.ServeHTTP(ww, r)

		reqLogger.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", ww.Status()).
			Int("size", ww.Size()).
			Dur("duration", time.Since(start)).
			Msg("Request processed")
	})
}

// ResponseWriter wraps http.ResponseWriter to capture status code and size.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

// NewResponseWriter creates a ResponseWriter wrapper.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Status returns the captured HTTP status code.
func (rw *ResponseWriter) Status() int {
	return rw.statusCode
}

// Size returns the total number of bytes written to the response.
func (rw *ResponseWriter) Size() int {
	return rw.size
}
