// AngelaMos | 2026
// handler.go

package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/caretrack/go-backend/internal/authz"
	"github.com/caretrack/go-backend/internal/core"
	"github.com/caretrack/go-backend/internal/middleware"
)

type Authorizer interface {
	CanManageRemindersFor(
		ctx context.Context,
		acting authz.Principal,
		targetUserID string,
	) bool
	CanViewRemindersFor(
		ctx context.Context,
		acting authz.Principal,
		targetUserID string,
	) bool
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
	r.Route("/users/{userID}/reminders", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Put("/{reminderID}", h.Update)
		r.Delete("/{reminderID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	targetUserID := chi.URLParam(r, "userID")

	if !h.authorizer.CanManageRemindersFor(r.Context(), acting(r), targetUserID) {
		core.Forbidden(w, "you don't have permission to create reminders")
		return
	}

	var req CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rem, err := h.service.Add(r.Context(), targetUserID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Created(w, ToReminderResponse(rem))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	targetUserID := chi.URLParam(r, "userID")

	if !h.authorizer.CanViewRemindersFor(r.Context(), acting(r), targetUserID) {
		core.Forbidden(w, "you don't have permission to view reminders")
		return
	}

	reminders, err := h.service.List(r.Context(), targetUserID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToReminderResponseList(reminders))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	targetUserID := chi.URLParam(r, "userID")
	reminderID := chi.URLParam(r, "reminderID")

	if !h.authorizer.CanManageRemindersFor(r.Context(), acting(r), targetUserID) {
		core.Forbidden(w, "you don't have permission to update reminders")
		return
	}

	var req UpdateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rem, err := h.service.Update(r.Context(), targetUserID, reminderID, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToReminderResponse(rem))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	targetUserID := chi.URLParam(r, "userID")
	reminderID := chi.URLParam(r, "reminderID")

	if !h.authorizer.CanManageRemindersFor(r.Context(), acting(r), targetUserID) {
		core.Forbidden(w, "you don't have permission to delete reminders")
		return
	}

	err := h.service.Delete(r.Context(), targetUserID, reminderID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrInvalidInput):
		core.JSONError(w, err)
	default:
		core.InternalServerError(w, err)
	}
}

func acting(r *http.Request) authz.Principal {
	ctx := r.Context()
	return authz.Principal{
		ID:   middleware.GetUserID(ctx),
		Role: middleware.GetUserRole(ctx),
	}
}
