package middleware

import (
	"net/http"

	"github.com/boulaiscore/clarity-peak-lab-sub004/internal/api/shared"
)

// Trace assigns every request a trace ID so logs and error responses can be
// correlated.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
