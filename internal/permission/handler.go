// AngelaMos | 2026
// handler.go

package permission

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/middleware"
)

type ReplacePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,max=50,dive,min=1,max=100"`
}

type PermissionResponse struct {
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	GrantedBy string    `json:"granted_by"`
	GrantedAt time.Time `json:"granted_at"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes exposes the caller's own enabled permission names, which
// clients use to decide what to render.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/permissions/me", h.ListMine)
	})
}

// RegisterAdminRoutes exposes direct grant management. Caregivers manage
// their residents' grants through the caretaker surface instead.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/users/{userID}/permissions", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.List)
		r.Put("/", h.Replace)
		r.Post("/{permissionName}", h.Grant)
		r.Delete("/{permissionName}", h.Revoke)
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	names, err := h.service.ListEnabled(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string][]string{"permissions": names})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	perms, err := h.service.ListDetails(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponses(perms))
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	actorID := middleware.GetUserID(r.Context())

	var req ReplacePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.ReplaceAll(r.Context(), userID, req.Permissions, actorID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	perms, err := h.service.ListDetails(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toResponses(perms))
}

func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	name := chi.URLParam(r, "permissionName")
	actorID := middleware.GetUserID(r.Context())

	if err := h.service.Grant(r.Context(), userID, name, actorID); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	name := chi.URLParam(r, "permissionName")

	if err := h.service.Revoke(r.Context(), userID, name); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func toResponses(perms []Permission) []PermissionResponse {
	responses := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		responses = append(responses, PermissionResponse{
			Name:      p.Name,
			Enabled:   p.Enabled,
			GrantedBy: p.GrantedBy,
			GrantedAt: p.GrantedAt,
		})
	}
	return responses
}
