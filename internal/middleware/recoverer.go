package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/pkg/errors"

	"pka-index-backend/internal/apierror"
)

// Recoverer turns a handler panic into an internal error response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			apierror.Write(w, r, apierror.Internal(errors.Errorf("panic: %v\n%s", p, debug.Stack())))
		}()

		next.ServeHTTP(w, r)
	})
}
