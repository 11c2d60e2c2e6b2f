package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Recovery middleware recovers from panics
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Panic recovered")

				writeError(w, http.StatusInternalServerError, "Something went wrong!")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
