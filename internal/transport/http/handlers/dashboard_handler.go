package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RostianaElla/caihealth/internal/domain/model"
	sessionsvc "github.com/RostianaElla/caihealth/internal/services/session"
	taskssvc "github.com/RostianaElla/caihealth/internal/services/tasks"
	tipssvc "github.com/RostianaElla/caihealth/internal/services/tips"
	"github.com/RostianaElla/caihealth/internal/transport/http/dto"
	httperrors "github.com/RostianaElla/caihealth/internal/transport/http/errors"
)

type progressStore interface {
	Append(ctx context.Context, record model.WeightRecord) error
	List(ctx context.Context) ([]model.WeightRecord, error)
}

type DashboardHandler struct {
	controller *sessionsvc.Controller
	tasks      *taskssvc.Service
	tips       *tipssvc.Service
	progress   progressStore
}

func NewDashboardHandler(controller *sessionsvc.Controller, tasks *taskssvc.Service, tips *tipssvc.Service, progress progressStore) *DashboardHandler {
	return &DashboardHandler{
		controller: controller,
		tasks:      tasks,
		tips:       tips,
		progress:   progress,
	}
}

// Get assembles the dashboard: profile, checklist, progress ring and
// the weight trend. The seed trend is served until real weigh-ins
// exist.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.requireProfile(w)
	if !ok {
		return
	}

	trend, err := h.progress.List(r.Context())
	if err != nil || len(trend) == 0 {
		trend = taskssvc.DefaultWeightTrend()
	}

	percent, calories := h.tasks.Progress()
	httperrors.Write(w, http.StatusOK, dto.DashboardResponse{
		Profile:         profile,
		Tasks:           h.tasks.List(),
		ProgressPercent: percent,
		ActiveCalories:  calories,
		WeightTrend:     trend,
	})
}

// ToggleTask flips one checklist entry.
func (h *DashboardHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireProfile(w); !ok {
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "task id must be an integer")
		return
	}

	task, err := h.tasks.Toggle(r.Context(), id)
	if err != nil {
		if errors.Is(err, taskssvc.ErrTaskNotFound) {
			writeNotFound(w, "TASK_NOT_FOUND", "task not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to toggle task")
		return
	}

	percent, calories := h.tasks.Progress()
	httperrors.Write(w, http.StatusOK, dto.TaskToggleResponse{
		Task:            task,
		ProgressPercent: percent,
		ActiveCalories:  calories,
	})
}

// Tips returns personalized tips, or the static pair when generation
// is unavailable.
func (h *DashboardHandler) Tips(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.requireProfile(w)
	if !ok {
		return
	}

	generated, err := h.tips.Fetch(r.Context(), profile)
	if err != nil {
		if errors.Is(err, tipssvc.ErrGenerationInFlight) {
			writeConflict(w, "TIPS_IN_FLIGHT", "tip generation already in flight")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to fetch tips")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.TipsResponse{Tips: generated})
}

// RecordWeight appends one weigh-in to the trend.
func (h *DashboardHandler) RecordWeight(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireProfile(w); !ok {
		return
	}

	var req dto.WeightRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.Day == "" || req.WeightKG <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "day and a positive weight are required")
		return
	}

	if err := h.progress.Append(r.Context(), model.WeightRecord{Day: req.Day, WeightKG: req.WeightKG}); err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to record weight")
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *DashboardHandler) requireProfile(w http.ResponseWriter) (model.Profile, bool) {
	if h.controller == nil || h.tasks == nil || h.tips == nil || h.progress == nil {
		writeInternal(w, "DASHBOARD_SERVICE_UNAVAILABLE", "dashboard services are unavailable")
		return model.Profile{}, false
	}
	profile, ok := h.controller.Profile()
	if !ok {
		writeConflict(w, "INVALID_STATE", "no signed-in profile")
		return model.Profile{}, false
	}
	return profile, true
}
