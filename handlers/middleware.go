package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader é propagado na resposta e nos logs.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestLogger é a parte do logger usada pelo middleware de logging.
type RequestLogger interface {
	Request(requestID, method, path, remoteAddr string, status int, duration time.Duration)
}

// RequestIDMiddleware reaproveita o X-Request-ID recebido ou gera um novo.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID retorna o id da requisição guardado no contexto, se houver.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// LoggingMiddleware registra informações sobre cada requisição HTTP
func LoggingMiddleware(logger RequestLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Criar um ResponseWriter personalizado para capturar o status code
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			logger.Request(RequestID(r.Context()), r.Method, r.URL.Path, r.RemoteAddr, rw.statusCode, time.Since(start))
		})
	}
}

// responseWriter é um wrapper para http.ResponseWriter que captura o status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captura o status code antes de escrevê-lo
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
