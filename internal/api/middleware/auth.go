package middleware

import (
	"context"
	"net/http"

	"github.com/mediscope-ai/backend/internal/application/services"
)

type contextKey string

const doctorIDKey contextKey = "doctor_id"

// DoctorIDFromContext returns the authenticated doctor's id, if any.
func DoctorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(doctorIDKey).(string)
	return id, ok
}

// WithDoctorID returns a context carrying the doctor id. Used by handler
// tests and any non-HTTP caller that already resolved the identity.
func WithDoctorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, doctorIDKey, id)
}

// AuthMiddleware resolves HTTP Basic credentials to a doctor account and
// injects the doctor id into the request context. Session mechanics live
// outside the engine; the engine only ever sees the id as explicit caller
// context.
func AuthMiddleware(doctors *services.DoctorService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="mediscope"`)
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			doctor, err := doctors.Authenticate(r.Context(), username, password)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="mediscope"`)
				http.Error(w, "invalid username or password", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), doctorIDKey, doctor.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
