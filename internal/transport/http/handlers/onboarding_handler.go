package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
	onboardingsvc "github.com/RostianaElla/caihealth/internal/services/onboarding"
	sessionsvc "github.com/RostianaElla/caihealth/internal/services/session"
	"github.com/RostianaElla/caihealth/internal/transport/http/dto"
	httperrors "github.com/RostianaElla/caihealth/internal/transport/http/errors"
)

type OnboardingHandler struct {
	controller *sessionsvc.Controller
}

func NewOnboardingHandler(controller *sessionsvc.Controller) *OnboardingHandler {
	return &OnboardingHandler{controller: controller}
}

// Start begins the wizard from the login screen.
func (h *OnboardingHandler) Start(w http.ResponseWriter, _ *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	if err := h.controller.StartOnboarding(); err != nil {
		handleSessionError(w, err)
		return
	}
	h.writeStep(w)
}

// Step returns the active wizard screen.
func (h *OnboardingHandler) Step(w http.ResponseWriter, _ *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	h.writeStep(w)
}

// Answer applies the payload to the current step. Slider values are
// clamped to their ranges the way the UI sliders behave.
func (h *OnboardingHandler) Answer(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	var req dto.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	err := h.controller.Onboarding(func(wz *onboardingsvc.Wizard) error {
		switch wz.StepIndex() {
		case onboardingsvc.StepGender:
			return wz.SetGender(enums.Gender(req.Gender))
		case onboardingsvc.StepWorkoutFrequency:
			return wz.SetWorkoutFrequency(enums.WorkoutFrequency(req.WorkoutFrequency))
		case onboardingsvc.StepReferralSource:
			return wz.SetReferralSource(enums.ReferralSource(req.ReferralSource))
		case onboardingsvc.StepTriedOtherApps:
			if req.TriedOtherApps == nil {
				return onboardingsvc.ErrInvalidValue
			}
			return wz.SetTriedOtherApps(*req.TriedOtherApps)
		case onboardingsvc.StepBodyMetrics:
			return wz.SetBodyMetrics(clamp(req.HeightCM, 100, 250), clamp(req.WeightKG, 30, 200))
		case onboardingsvc.StepBirthDate:
			birthDate, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				return onboardingsvc.ErrInvalidValue
			}
			return wz.SetBirthDate(birthDate)
		case onboardingsvc.StepGoal:
			return wz.SetGoal(enums.Goal(req.Goal))
		case onboardingsvc.StepDesiredWeight:
			return wz.SetDesiredWeight(clamp(req.DesiredWeightKG, 30, 200))
		case onboardingsvc.StepPace:
			return wz.SetPace(enums.Pace(req.Pace))
		case onboardingsvc.StepObstacles:
			return wz.ToggleObstacle(req.Option)
		case onboardingsvc.StepDiet:
			return wz.SetDiet(enums.DietType(req.Diet))
		case onboardingsvc.StepAccomplishments:
			return wz.ToggleAccomplishment(req.Option)
		case onboardingsvc.StepReferralCode:
			return wz.SetReferralCode(req.ReferralCode)
		default:
			return onboardingsvc.ErrActionNotAllowed
		}
	})
	if err != nil {
		handleWizardError(w, err)
		return
	}
	h.writeStep(w)
}

// Continue advances past the current step.
func (h *OnboardingHandler) Continue(w http.ResponseWriter, _ *http.Request) {
	h.wizardOp(w, func(wz *onboardingsvc.Wizard) error {
		return wz.Continue()
	})
}

// Back returns to the previous step.
func (h *OnboardingHandler) Back(w http.ResponseWriter, _ *http.Request) {
	h.wizardOp(w, func(wz *onboardingsvc.Wizard) error {
		wz.Back()
		return nil
	})
}

// Target reports the distance to the desired weight for the summary
// screen.
func (h *OnboardingHandler) Target(w http.ResponseWriter, _ *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	var delta int
	err := h.controller.Onboarding(func(wz *onboardingsvc.Wizard) error {
		delta = wz.TargetDeltaKG()
		return nil
	})
	if err != nil {
		handleWizardError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.TargetResponse{WeightDeltaKG: delta})
}

// Notifications runs the push permission prompt and advances.
func (h *OnboardingHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	var status string
	err := h.controller.Onboarding(func(wz *onboardingsvc.Wizard) error {
		s, err := wz.RequestNotifications(r.Context())
		status = string(s)
		return err
	})
	if err != nil {
		handleWizardError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.NotificationResponse{Status: status})
}

// SignIn moves from the account fork to the trial offer. The identity
// binding itself goes through the bindings endpoints.
func (h *OnboardingHandler) SignIn(w http.ResponseWriter, _ *http.Request) {
	h.wizardOp(w, func(wz *onboardingsvc.Wizard) error {
		return wz.ChooseSignIn()
	})
}

// DismissTrial closes the trial offer and returns to the account fork.
func (h *OnboardingHandler) DismissTrial(w http.ResponseWriter, _ *http.Request) {
	h.wizardOp(w, func(wz *onboardingsvc.Wizard) error {
		return wz.DismissTrial()
	})
}

// Complete finishes the wizard and lands on the dashboard.
func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	if _, err := h.controller.CompleteOnboarding(r.Context()); err != nil {
		handleWizardError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, sessionResponse(h.controller.Snapshot()))
}

// Abort drops the wizard and returns to the login screen.
func (h *OnboardingHandler) Abort(w http.ResponseWriter, _ *http.Request) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	if err := h.controller.AbortOnboarding(); err != nil {
		handleSessionError(w, err)
		return
	}
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *OnboardingHandler) wizardOp(w http.ResponseWriter, fn func(wz *onboardingsvc.Wizard) error) {
	if h.controller == nil {
		writeInternal(w, "SESSION_SERVICE_UNAVAILABLE", "session controller is unavailable")
		return
	}
	if err := h.controller.Onboarding(fn); err != nil {
		handleWizardError(w, err)
		return
	}
	h.writeStep(w)
}

func (h *OnboardingHandler) writeStep(w http.ResponseWriter) {
	snap := h.controller.Snapshot()
	if snap.Step == nil {
		writeConflict(w, "INVALID_STATE", "no wizard is running")
		return
	}
	httperrors.Write(w, http.StatusOK, *stepResponse(*snap.Step))
}

func stepResponse(step onboardingsvc.Step) *dto.StepResponse {
	return &dto.StepResponse{
		Index:   step.Index,
		Total:   onboardingsvc.TotalSteps,
		Kind:    string(step.Kind),
		Title:   step.Title,
		Options: step.Options,
	}
}

func handleWizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, onboardingsvc.ErrWrongStep):
		writeConflict(w, "WRONG_STEP", "operation does not match the current step")
	case errors.Is(err, onboardingsvc.ErrInvalidValue):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid answer value")
	case errors.Is(err, onboardingsvc.ErrSelectionRequired):
		writeBadRequest(w, "SELECTION_REQUIRED", "at least one option must be selected")
	case errors.Is(err, onboardingsvc.ErrActionNotAllowed):
		writeConflict(w, "ACTION_NOT_ALLOWED", "action not allowed on this step")
	case errors.Is(err, sessionsvc.ErrInvalidState):
		writeConflict(w, "INVALID_STATE", "operation not allowed in the current view")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
