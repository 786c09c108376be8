package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	identitysvc "github.com/RostianaElla/caihealth/internal/services/identity"
	onboardingsvc "github.com/RostianaElla/caihealth/internal/services/onboarding"
	sessionsvc "github.com/RostianaElla/caihealth/internal/services/session"
	"github.com/RostianaElla/caihealth/internal/transport/http/dto"
	httperrors "github.com/RostianaElla/caihealth/internal/transport/http/errors"
)

type BindingHandler struct {
	controller *sessionsvc.Controller
}

func NewBindingHandler(controller *sessionsvc.Controller) *BindingHandler {
	return &BindingHandler{controller: controller}
}

// Begin opens a binding attempt and returns the account chooser.
func (h *BindingHandler) Begin(w http.ResponseWriter, _ *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	prompt, err := h.controller.BeginBinding()
	if err != nil {
		handleSessionError(w, err)
		return
	}

	accounts := make([]dto.BindingAccount, 0, len(prompt.Accounts))
	for _, a := range prompt.Accounts {
		accounts = append(accounts, dto.BindingAccount{
			ID:      a.ID,
			Name:    a.Name,
			Email:   a.Email,
			Picture: a.Picture,
		})
	}
	httperrors.Write(w, http.StatusOK, dto.BindingPromptResponse{
		AttemptID: prompt.AttemptID,
		Accounts:  accounts,
	})
}

// Confirm resolves the chosen account and routes the session.
func (h *BindingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	attemptID := chi.URLParam(r, "id")

	var req dto.BindingConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.AccountID == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "account_id is required")
		return
	}

	if err := h.controller.ConfirmBinding(r.Context(), attemptID, req.AccountID); err != nil {
		handleSessionError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, sessionResponse(h.controller.Snapshot()))
}

// Cancel dismisses the account chooser.
func (h *BindingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	if err := h.controller.CancelBinding(chi.URLParam(r, "id")); err != nil {
		handleSessionError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identitysvc.ErrAccountNotFound):
		writeNotFound(w, "ACCOUNT_NOT_FOUND", "account not found")
	case errors.Is(err, sessionsvc.ErrBindingNotFound):
		writeNotFound(w, "BINDING_NOT_FOUND", "binding attempt not found")
	case errors.Is(err, sessionsvc.ErrBindingInFlight):
		writeConflict(w, "BINDING_IN_FLIGHT", "another binding attempt is in flight")
	case errors.Is(err, sessionsvc.ErrInvalidState):
		writeConflict(w, "INVALID_STATE", "operation not allowed in the current view")
	case errors.Is(err, onboardingsvc.ErrWrongStep), errors.Is(err, onboardingsvc.ErrActionNotAllowed):
		writeConflict(w, "WRONG_STEP", "sign-in is not offered on the current step")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
