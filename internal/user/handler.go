// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/caretrack/go-backend/internal/authz"
	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/middleware"
	"github.com/caretrack/go-backend/internal/permission"
)

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMe)
		r.Put("/me", h.UpdateMe)
		r.Get("/me/caregiver", h.GetMyCaregiver)
	})
}

// RegisterCaretakerRoutes registers the caregiver roster surface. Admins
// pass the role gate too and skip the assignment checks inside the service.
func (h *Handler) RegisterCaretakerRoutes(
	r chi.Router,
	authenticator, caregiverOnly func(http.Handler) http.Handler,
) {
	r.Route("/caretakers", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(caregiverOnly)

		r.Get("/", h.ListCaretakers)
		r.Post("/", h.CreateCaretaker)
		r.Get("/{caretakerID}", h.GetCaretaker)
		r.Put("/{caretakerID}", h.UpdateCaretaker)
		r.Delete("/{caretakerID}", h.DeleteCaretaker)
		r.Post("/{caretakerID}/assign", h.AssignCaretaker)
		r.Delete("/{caretakerID}/assign", h.UnassignCaretaker)
		r.Get("/{caretakerID}/permissions", h.GetCaretakerPermissions)
		r.Put("/{caretakerID}/permissions", h.SetCaretakerPermissions)
	})
}

// RegisterAdminRoutes registers admin-only user management endpoints.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{userID}", h.GetUser)
		r.Put("/{userID}", h.UpdateUser)
		r.Delete("/{userID}", h.DeleteUser)
	})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateCaretakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if req.Name == nil {
		core.BadRequest(w, "nothing to update")
		return
	}

	user, err := h.service.UpdateMe(r.Context(), userID, *req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) GetMyCaregiver(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	caregiver, err := h.service.MyCaregiver(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(caregiver))
}

// ListUsers returns a paginated list of users with optional filtering.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := ListUsersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
		Role:     r.URL.Query().Get("role"),
	}

	users, total, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToUserResponseList(users),
		params.Page,
		params.PageSize,
		total,
	)
}

// CreateUser provisions an account with any role (admin only).
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.CreateUser(r.Context(), actorID, req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "email already in use")
			return
		}
		writeServiceError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

// GetUser returns a specific user by ID (admin only).
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

// UpdateUser updates a user's profile or role (admin only).
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

// DeleteUser removes a user account and its dependent rows (admin only).
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userID")

	err := h.service.DeleteUser(r.Context(), acting(r), targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListCaretakers(w http.ResponseWriter, r *http.Request) {
	caregiverID := middleware.GetUserID(r.Context())

	users, err := h.service.ListCaretakers(r.Context(), caregiverID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) CreateCaretaker(w http.ResponseWriter, r *http.Request) {
	var req CreateCaretakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.CreateCaretaker(r.Context(), acting(r), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, "email already in use")
			return
		}
		writeServiceError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) GetCaretaker(w http.ResponseWriter, r *http.Request) {
	residentID := chi.URLParam(r, "caretakerID")

	user, err := h.service.GetCaretaker(r.Context(), acting(r), residentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) UpdateCaretaker(w http.ResponseWriter, r *http.Request) {
	residentID := chi.URLParam(r, "caretakerID")

	var req UpdateCaretakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateCaretaker(
		r.Context(),
		acting(r),
		residentID,
		req,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) DeleteCaretaker(w http.ResponseWriter, r *http.Request) {
	residentID := chi.URLParam(r, "caretakerID")

	err := h.service.DeleteCaretaker(r.Context(), acting(r), residentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AssignCaretaker(w http.ResponseWriter, r *http.Request) {
	residentID := chi.URLParam(r, "caretakerID")

	err := h.service.AssignCaretaker(r.Context(), acting(r), residentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) UnassignCaretaker(w http.ResponseWriter, r *http.Request) {
	residentID := chi.URLParam(r, "caretakerID")

	err := h.service.UnassignCaretaker(r.Context(), acting(r), residentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetCaretakerPermissions(
	w http.ResponseWriter,
	r *http.Request,
) {
	residentID := chi.URLParam(r, "caretakerID")

	perms, err := h.service.GetCaretakerPermissions(
		r.Context(),
		acting(r),
		residentID,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, toPermissionResponses(perms))
}

func (h *Handler) SetCaretakerPermissions(
	w http.ResponseWriter,
	r *http.Request,
) {
	residentID := chi.URLParam(r, "caretakerID")

	var req SetPermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	perms, err := h.service.SetCaretakerPermissions(
		r.Context(),
		acting(r),
		residentID,
		req.Permissions,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	core.OK(w, toPermissionResponses(perms))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func acting(r *http.Request) authz.Principal {
	return authz.Principal{
		ID:   middleware.GetUserID(r.Context()),
		Role: middleware.GetUserRole(r.Context()),
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrForbidden),
		errors.Is(err, core.ErrUnauthorized),
		errors.Is(err, core.ErrConflict),
		errors.Is(err, core.ErrDuplicateKey),
		errors.Is(err, core.ErrHasDependencies):
		core.JSONError(w, err)
	default:
		core.InternalServerError(w, err)
	}
}

func toPermissionResponses(
	perms []permission.Permission,
) []PermissionResponse {
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
