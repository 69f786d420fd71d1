package middleware

import (
	"net/http"

	"github.com/Radi03825/PlaySpot-sub000/pkg/requestid"
)

// RequestID берёт X-Request-ID из запроса или генерирует новый,
// кладёт его в контекст и возвращает в ответе
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" || len(id) > 128 {
			id = requestid.New()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.WithRequestID(r.Context(), id)))
	})
}
