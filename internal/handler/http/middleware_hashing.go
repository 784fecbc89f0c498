package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
)

// hashHeader carries the hex HMAC-SHA256 of the request body.
const hashHeader = "HashSHA256"

// withHashCheck rejects requests whose body does not match the HashSHA256
// header. It is a pass-through when the handler has no hash key.
func (h *Handler) withHashCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.signer == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Msg("failed to read request body")
			h.writeError(w, r, errInvalidJSON(err))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.signer.Verify(body, r.Header.Get(hashHeader)) {
			log.Warn().
				Str("hash_from_request", r.Header.Get(hashHeader)).
				Int("body_size", len(body)).
				Msg("request body does not match its hash")
			http.Error(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
