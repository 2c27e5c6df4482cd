// File: internal/middleware/recovery.go
package middleware

import (
	"log"
	"net/http"
)

// RecoverPanic is the outermost safety net for the HTTP layer. The
// consultation pipeline has its own recovery; this one only catches panics
// in handlers and middleware themselves.
func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[PANIC] %v", err)

				w.Header().Set("Connection", "close")
				http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
