// AngelaMos | 2026
// handler.go

package meal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/middleware"
)

// Authorizer gates on the acting user's own MEAL_REQUIREMENTS grant. There
// is no caregiver override on this surface.
type Authorizer interface {
	CanAccessMealRequirements(ctx context.Context, actingUserID string) bool
}

type SetRequirementsRequest struct {
	Requirements []string `json:"requirements" validate:"required,max=50,dive,max=500"`
}

type RequirementResponse struct {
	ID        string    `json:"id"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type RequirementsResponse struct {
	Requirements []RequirementResponse `json:"requirements"`
}

type Handler struct {
	service    *Service
	authorizer Authorizer
	validator  *validator.Validate
}

func NewHandler(service *Service, authorizer Authorizer) *Handler {
	return &Handler{
		service:    service,
		authorizer: authorizer,
		validator:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users/{userID}/meal-requirements", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.Get)
		r.Put("/", h.Set)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	targetUserID := chi.URLParam(r, "userID")

	if !h.authorizer.CanAccessMealRequirements(r.Context(), actingUserID) {
		core.Forbidden(w, "you don't have permission to view meal requirements")
		return
	}

	requirements, err := h.service.Get(r.Context(), targetUserID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(requirements))
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	actingUserID := middleware.GetUserID(r.Context())
	targetUserID := chi.URLParam(r, "userID")

	if !h.authorizer.CanAccessMealRequirements(r.Context(), actingUserID) {
		core.Forbidden(w, "you don't have permission to set meal requirements")
		return
	}

	var req SetRequirementsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	saved, err := h.service.Set(r.Context(), targetUserID, req.Requirements)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponse(saved))
}

func toResponse(requirements []Requirement) RequirementsResponse {
	items := make([]RequirementResponse, 0, len(requirements))
	for _, req := range requirements {
		items = append(items, RequirementResponse{
			ID:        req.ID,
			Notes:     req.Notes,
			CreatedAt: req.CreatedAt,
		})
	}
	return RequirementsResponse{Requirements: items}
}
