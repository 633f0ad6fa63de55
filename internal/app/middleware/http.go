package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/IT-Nick/visionhub/internal/domain/model"
	"github.com/IT-Nick/visionhub/internal/infra/metrics"
	httpError "github.com/IT-Nick/visionhub/pkg/http"
)

type contextKey int

const (
	identityKey contextKey = iota
	requestIDKey
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// IdentityFromContext возвращает контекст вызывающего, сохраненный Auth
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

// WithIdentity кладет контекст вызывающего в context.Context
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// RequestIDFromContext возвращает идентификатор запроса
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Recover перехватывает панику обработчика и отвечает 500
func Recover(logger *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					var err error
					// Преобразуем значение panic в объект error
					switch x := rec.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("unknown panic: %v", x)
					}
					logger.Printf("recovered from panic in %s %s: %v", r.Method, r.URL.Path, err)
					httpError.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID присваивает запросу идентификатор (или берет его из заголовка)
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Logger пишет в лог строку на каждый запрос и учитывает его в метриках
func Logger(logger *log.Logger, m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			elapsed := time.Since(start)
			m.ObserveRequest(route, strconv.Itoa(rec.status), elapsed)
			logger.Printf("%s %s %d %s request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, RequestIDFromContext(r.Context()))
		})
	}
}

// Auth проверяет bearer-токен и сохраняет контекст вызывающего
func Auth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}

			identity, err := ParseToken(secret, tokenString)
			if err != nil {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
