package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/MKhiriev/go-build-keeper/models"
)

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResolveRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeError(w, r, errInvalidJSON(err))
		return
	}

	result, err := h.services.ResolveService.Resolve(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().
		Str("variant", result.Variant).
		Str("plan_id", result.PlanID).
		Msg("configuration resolved")

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) listVariants(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.ResolveService.Variants(r.Context()), http.StatusOK)
}

// writeError maps err to a status code and writes the JSON error body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error occurred")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, errorResponse(err, status), status)
}
