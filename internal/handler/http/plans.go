package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
	"github.com/MKhiriev/go-build-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.services.PlanService.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, plan, http.StatusOK)
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.PlanFilter{Variant: query.Get("variant")}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: limit %q is not a positive number", service.ErrInvalidDataProvided, raw))
			return
		}
		filter.Limit = limit
	}

	plans, err := h.services.PlanService.ListPlans(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if plans == nil {
		plans = []models.BuildPlan{}
	}

	utils.WriteJSON(w, plans, http.StatusOK)
}
