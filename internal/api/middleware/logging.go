package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Radi03825/PlaySpot-sub000/internal/api/handlers"
	"github.com/Radi03825/PlaySpot-sub000/pkg/requestid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// statusRecorder запоминает код ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// Logging пишет access log и перехватывает панику обработчика
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			reqID, _ := requestid.FromContext(r.Context())

			defer func() {
				if p := recover(); p != nil {
					log.Error("panic: method=%s path=%s request_id=%s panic=%v stack=%s",
						r.Method, r.URL.Path, reqID, p, debug.Stack())
					handlers.RespondInternalError(rec)
				}

				duration := time.Since(start)
				switch {
				case rec.status >= http.StatusInternalServerError:
					log.Error("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, reqID)
				case rec.status >= http.StatusBadRequest:
					log.Warn("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, reqID)
				default:
					log.Info("%s %s - status=%d duration=%s request_id=%s", r.Method, r.URL.Path, rec.status, duration, reqID)
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
