package handlers

import (
	"encoding/json"
	"net/http"

	sessionsvc "github.com/RostianaElla/caihealth/internal/services/session"
	"github.com/RostianaElla/caihealth/internal/transport/http/dto"
	httperrors "github.com/RostianaElla/caihealth/internal/transport/http/errors"
)

type SessionHandler struct {
	controller *sessionsvc.Controller
}

func NewSessionHandler(controller *sessionsvc.Controller) *SessionHandler {
	return &SessionHandler{controller: controller}
}

// Get returns the current view, the active wizard step and the
// signed-in profile.
func (h *SessionHandler) Get(w http.ResponseWriter, _ *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	httperrors.Write(w, http.StatusOK, sessionResponse(h.controller.Snapshot()))
}

func (h *SessionHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	h.controller.Logout()
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func sessionResponse(snap sessionsvc.Snapshot) dto.SessionResponse {
	res := dto.SessionResponse{View: string(snap.View), Profile: snap.Profile}
	if snap.Step != nil {
		res.Step = stepResponse(*snap.Step)
	}
	return res
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
