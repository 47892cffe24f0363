package middleware

import (
	"net/http"
)

// MaxRequestSize caps request bodies at limit bytes. Paths listed in
// overrides get their own cap, used for audio uploads.
func MaxRequestSize(limit int64, overrides map[string]int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			max := limit
			if v, ok := overrides[r.URL.Path]; ok {
				max = v
			}

			if max > 0 {
				if r.ContentLength > max {
					writeJSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}

			next.ServeHTTP(w, r)
		})
	}
}
