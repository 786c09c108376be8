package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
	"github.com/RostianaElla/caihealth/internal/domain/model"
	"github.com/RostianaElla/caihealth/internal/domain/rules"
	"github.com/RostianaElla/caihealth/internal/infra/notify"
	"github.com/RostianaElla/caihealth/internal/services/profiles"
)

var (
	ErrWrongStep         = errors.New("operation does not match the current step")
	ErrInvalidValue      = errors.New("invalid value")
	ErrSelectionRequired = errors.New("at least one option must be selected")
	ErrActionNotAllowed  = errors.New("action not allowed on this step")
)

const (
	minHeightCM = 100
	maxHeightCM = 250
	minWeightKG = 30
	maxWeightKG = 200
)

type permissionRequester interface {
	RequestPermission(ctx context.Context) (notify.Status, error)
	Push(ctx context.Context, title, body string) error
}

// Wizard walks a profile draft through the fixed question sequence.
// It is not safe for concurrent use; the session controller serializes
// access to it.
type Wizard struct {
	draft model.Profile
	step  int

	notif permissionRequester
	log   *zap.Logger
	now   func() time.Time
}

// New starts a wizard at the first step with a defaulted draft.
func New(notif permissionRequester, log *zap.Logger) *Wizard {
	return &Wizard{
		draft: profiles.NewDraft(),
		step:  StepGender,
		notif: notif,
		log:   log,
		now:   time.Now,
	}
}

// Resume starts a wizard over an existing draft, keeping any identity
// already attached to it. Used when sign-in happens before the
// questions are answered.
func Resume(draft model.Profile, notif permissionRequester, log *zap.Logger) *Wizard {
	w := New(notif, log)
	if draft.Identity != nil {
		w.draft.Identity = draft.Identity
	}
	return w
}

// Current returns the screen description for the active step.
func (w *Wizard) Current() Step {
	step, ok := stepCatalog[w.step]
	if !ok {
		return Step{Index: w.step}
	}
	return step
}

// StepIndex returns the 1-based index of the active step.
func (w *Wizard) StepIndex() int { return w.step }

// Draft returns a copy of the profile collected so far.
func (w *Wizard) Draft() model.Profile { return w.draft }

func (w *Wizard) advance() {
	if w.step < TotalSteps {
		w.step++
	}
}

// Back returns to the previous step. Collected answers are kept.
func (w *Wizard) Back() {
	if w.step > StepGender {
		w.step--
	}
}

// SetGender answers the gender step and advances.
func (w *Wizard) SetGender(value enums.Gender) error {
	if w.step != StepGender {
		return fmt.Errorf("set gender: %w", ErrWrongStep)
	}
	switch value {
	case enums.GenderFemale, enums.GenderMale, enums.GenderOther:
	default:
		return fmt.Errorf("set gender %q: %w", value, ErrInvalidValue)
	}
	w.draft.Gender = value
	w.advance()
	return nil
}

// SetWorkoutFrequency answers the workout frequency step and advances.
func (w *Wizard) SetWorkoutFrequency(value enums.WorkoutFrequency) error {
	if w.step != StepWorkoutFrequency {
		return fmt.Errorf("set workout frequency: %w", ErrWrongStep)
	}
	switch value {
	case enums.WorkoutFrequencyLow, enums.WorkoutFrequencyModerate, enums.WorkoutFrequencyHigh:
	default:
		return fmt.Errorf("set workout frequency %q: %w", value, ErrInvalidValue)
	}
	w.draft.WorkoutFrequency = value
	w.advance()
	return nil
}

// SetReferralSource answers the referral source step and advances.
func (w *Wizard) SetReferralSource(value enums.ReferralSource) error {
	if w.step != StepReferralSource {
		return fmt.Errorf("set referral source: %w", ErrWrongStep)
	}
	switch value {
	case enums.ReferralSourceTikTok, enums.ReferralSourceYouTube, enums.ReferralSourceInstagram,
		enums.ReferralSourceGoogle, enums.ReferralSourcePlayStore, enums.ReferralSourceFacebook,
		enums.ReferralSourceOther:
	default:
		return fmt.Errorf("set referral source %q: %w", value, ErrInvalidValue)
	}
	w.draft.ReferralSource = value
	w.advance()
	return nil
}

// SetTriedOtherApps answers the prior apps step and advances.
func (w *Wizard) SetTriedOtherApps(value bool) error {
	if w.step != StepTriedOtherApps {
		return fmt.Errorf("set tried other apps: %w", ErrWrongStep)
	}
	w.draft.TriedOtherApps = &value
	w.advance()
	return nil
}

// SetBodyMetrics stores the height and weight sliders. The step stays
// put until Continue.
func (w *Wizard) SetBodyMetrics(heightCM, weightKG int) error {
	if w.step != StepBodyMetrics {
		return fmt.Errorf("set body metrics: %w", ErrWrongStep)
	}
	if heightCM < minHeightCM || heightCM > maxHeightCM {
		return fmt.Errorf("height %d out of range: %w", heightCM, ErrInvalidValue)
	}
	if weightKG < minWeightKG || weightKG > maxWeightKG {
		return fmt.Errorf("weight %d out of range: %w", weightKG, ErrInvalidValue)
	}
	w.draft.HeightCM = heightCM
	w.draft.WeightKG = weightKG
	return nil
}

// SetBirthDate stores the birth date. The step stays put until Continue.
func (w *Wizard) SetBirthDate(value time.Time) error {
	if w.step != StepBirthDate {
		return fmt.Errorf("set birth date: %w", ErrWrongStep)
	}
	if value.IsZero() || value.After(w.now()) {
		return fmt.Errorf("birth date %s: %w", value.Format("2006-01-02"), ErrInvalidValue)
	}
	w.draft.BirthDate = &value
	return nil
}

// SetGoal answers the goal step and advances.
func (w *Wizard) SetGoal(value enums.Goal) error {
	if w.step != StepGoal {
		return fmt.Errorf("set goal: %w", ErrWrongStep)
	}
	switch value {
	case enums.GoalLoseWeight, enums.GoalMaintain, enums.GoalGainWeight:
	default:
		return fmt.Errorf("set goal %q: %w", value, ErrInvalidValue)
	}
	w.draft.Goal = value
	w.advance()
	return nil
}

// SetDesiredWeight stores the target weight slider. The step stays put
// until Continue.
func (w *Wizard) SetDesiredWeight(weightKG int) error {
	if w.step != StepDesiredWeight {
		return fmt.Errorf("set desired weight: %w", ErrWrongStep)
	}
	if weightKG < minWeightKG || weightKG > maxWeightKG {
		return fmt.Errorf("desired weight %d out of range: %w", weightKG, ErrInvalidValue)
	}
	w.draft.DesiredWeightKG = weightKG
	return nil
}

// TargetDeltaKG reports how far the draft's current weight is from the
// desired one. Shown on the target summary screen.
func (w *Wizard) TargetDeltaKG() int {
	return rules.WeightDelta(w.draft.WeightKG, w.draft.DesiredWeightKG)
}

// SetPace answers the pace step and advances.
func (w *Wizard) SetPace(value enums.Pace) error {
	if w.step != StepPace {
		return fmt.Errorf("set pace: %w", ErrWrongStep)
	}
	switch value {
	case enums.PaceKoala, enums.PaceRabbit, enums.PacePuma:
	default:
		return fmt.Errorf("set pace %q: %w", value, ErrInvalidValue)
	}
	w.draft.Pace = value
	w.advance()
	return nil
}

// ToggleObstacle flips one obstacle in or out of the selection.
func (w *Wizard) ToggleObstacle(value string) error {
	if w.step != StepObstacles {
		return fmt.Errorf("toggle obstacle: %w", ErrWrongStep)
	}
	if !rules.AllowedObstacle(value) {
		return fmt.Errorf("obstacle %q: %w", value, ErrInvalidValue)
	}
	w.draft.Obstacles = toggle(w.draft.Obstacles, value)
	return nil
}

// SetDiet answers the diet step and advances.
func (w *Wizard) SetDiet(value enums.DietType) error {
	if w.step != StepDiet {
		return fmt.Errorf("set diet: %w", ErrWrongStep)
	}
	switch value {
	case enums.DietClassic, enums.DietPescatarian, enums.DietVegetarian, enums.DietVegan:
	default:
		return fmt.Errorf("set diet %q: %w", value, ErrInvalidValue)
	}
	w.draft.Diet = value
	w.advance()
	return nil
}

// ToggleAccomplishment flips one accomplishment in or out of the
// selection.
func (w *Wizard) ToggleAccomplishment(value string) error {
	if w.step != StepAccomplishments {
		return fmt.Errorf("toggle accomplishment: %w", ErrWrongStep)
	}
	if !rules.AllowedAccomplishment(value) {
		return fmt.Errorf("accomplishment %q: %w", value, ErrInvalidValue)
	}
	w.draft.Accomplishments = toggle(w.draft.Accomplishments, value)
	return nil
}

// RequestNotifications asks the notifier for push permission and
// advances whatever the outcome is. Declining is not an error.
func (w *Wizard) RequestNotifications(ctx context.Context) (notify.Status, error) {
	if w.step != StepNotifications {
		return "", fmt.Errorf("request notifications: %w", ErrWrongStep)
	}
	status, err := w.notif.RequestPermission(ctx)
	if err != nil {
		w.log.Warn("notification permission request failed", zap.Error(err))
		status = notify.StatusUnsupported
	}
	if status == notify.StatusGranted {
		if err := w.notif.Push(ctx, "You're all set", "We'll remind you about your daily goals."); err != nil {
			w.log.Warn("welcome push failed", zap.Error(err))
		}
	}
	w.advance()
	return status, nil
}

// SetReferralCode stores the optional referral code. The step stays put
// until Continue.
func (w *Wizard) SetReferralCode(code string) error {
	if w.step != StepReferralCode {
		return fmt.Errorf("set referral code: %w", ErrWrongStep)
	}
	w.draft.ReferralCode = strings.TrimSpace(code)
	return nil
}

// Continue advances past steps that do not auto-advance. Multi-select
// steps require at least one selected option; choice steps and the
// final two screens reject it.
func (w *Wizard) Continue() error {
	step := w.Current()
	switch step.Kind {
	case KindInput, KindInfo:
		w.advance()
		return nil
	case KindNotification:
		// "Maybe later" skips the permission prompt.
		w.advance()
		return nil
	case KindMultiSelect:
		if w.step == StepObstacles && len(w.draft.Obstacles) == 0 {
			return fmt.Errorf("continue: %w", ErrSelectionRequired)
		}
		if w.step == StepAccomplishments && len(w.draft.Accomplishments) == 0 {
			return fmt.Errorf("continue: %w", ErrSelectionRequired)
		}
		w.advance()
		return nil
	default:
		return fmt.Errorf("continue on step %d: %w", w.step, ErrActionNotAllowed)
	}
}

// ChooseSignIn moves from the account fork to the trial offer. The
// actual identity binding runs outside the wizard.
func (w *Wizard) ChooseSignIn() error {
	if w.step != StepAccountFork {
		return fmt.Errorf("choose sign in: %w", ErrWrongStep)
	}
	w.step = StepTrialOffer
	return nil
}

// DismissTrial closes the trial offer and returns to the account fork.
func (w *Wizard) DismissTrial() error {
	if w.step != StepTrialOffer {
		return fmt.Errorf("dismiss trial: %w", ErrWrongStep)
	}
	w.step = StepAccountFork
	return nil
}

// AttachIdentity binds an external account to the draft. Only valid on
// the final two steps where sign-in is offered.
func (w *Wizard) AttachIdentity(id model.ExternalIdentity) error {
	if w.step != StepAccountFork && w.step != StepTrialOffer {
		return fmt.Errorf("attach identity: %w", ErrWrongStep)
	}
	w.draft.Identity = &id
	return nil
}

// Finish completes the wizard from either the account fork (skip) or
// the trial offer (start trial) and returns the registered profile.
func (w *Wizard) Finish() (model.Profile, error) {
	if w.step != StepAccountFork && w.step != StepTrialOffer {
		return model.Profile{}, fmt.Errorf("finish on step %d: %w", w.step, ErrActionNotAllowed)
	}
	return profiles.CompleteOnboarding(w.draft), nil
}

func toggle(set []string, value string) []string {
	for i, v := range set {
		if v == value {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, value)
}
