package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
	"github.com/RostianaElla/caihealth/internal/domain/rules"
	"github.com/RostianaElla/caihealth/internal/infra/notify"
)

type fakeNotifier struct {
	status notify.Status
	err    error
	pushes []string
}

func (f *fakeNotifier) RequestPermission(context.Context) (notify.Status, error) {
	return f.status, f.err
}

func (f *fakeNotifier) Push(_ context.Context, title, _ string) error {
	f.pushes = append(f.pushes, title)
	return nil
}

func newTestWizard(status notify.Status) (*Wizard, *fakeNotifier) {
	n := &fakeNotifier{status: status}
	return New(n, zap.NewNop()), n
}

// walkToFork answers every question up to the account fork.
func walkToFork(t *testing.T, w *Wizard) {
	t.Helper()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error on step %d: %v", w.StepIndex(), err)
		}
	}
	must(w.SetGender(enums.GenderFemale))
	must(w.SetWorkoutFrequency(enums.WorkoutFrequencyModerate))
	must(w.SetReferralSource(enums.ReferralSourceTikTok))
	must(w.SetTriedOtherApps(true))
	must(w.Continue()) // long-term results info
	must(w.SetBodyMetrics(168, 72))
	must(w.Continue())
	must(w.SetBirthDate(time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)))
	must(w.Continue())
	must(w.SetGoal(enums.GoalLoseWeight))
	must(w.SetDesiredWeight(65))
	must(w.Continue())
	must(w.Continue()) // target summary
	must(w.SetPace(enums.PaceRabbit))
	must(w.ToggleObstacle(rules.Obstacles[0]))
	must(w.Continue())
	must(w.SetDiet(enums.DietClassic))
	must(w.ToggleAccomplishment(rules.Accomplishments[0]))
	must(w.Continue())
	must(w.Continue()) // motivation
	must(w.Continue()) // plan ready
	if _, err := w.RequestNotifications(context.Background()); err != nil {
		t.Fatalf("request notifications: %v", err)
	}
	must(w.Continue()) // rating
	must(w.SetReferralCode("FRIEND10"))
	must(w.Continue())
	must(w.Continue()) // congrats
	if w.StepIndex() != StepAccountFork {
		t.Fatalf("unexpected step after walk: got %d want %d", w.StepIndex(), StepAccountFork)
	}
}

func TestWizardFullWalkAndSkip(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	walkToFork(t, w)

	profile, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !profile.IsRegistered {
		t.Fatalf("finished profile is not registered")
	}
	if profile.Gender != enums.GenderFemale || profile.HeightCM != 168 || profile.DesiredWeightKG != 65 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.Identity != nil {
		t.Fatalf("skip path must not attach an identity")
	}
}

func TestWizardSingleSelectAdvancesAndValidates(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)

	if err := w.SetGender("Unknown"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("unexpected error: got %v want ErrInvalidValue", err)
	}
	if w.StepIndex() != StepGender {
		t.Fatalf("invalid answer must not advance: step %d", w.StepIndex())
	}
	if err := w.SetGender(enums.GenderMale); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	if w.StepIndex() != StepWorkoutFrequency {
		t.Fatalf("unexpected step: got %d want %d", w.StepIndex(), StepWorkoutFrequency)
	}
	if err := w.SetGender(enums.GenderMale); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("unexpected error: got %v want ErrWrongStep", err)
	}
}

func TestWizardContinueRules(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)

	if err := w.Continue(); !errors.Is(err, ErrActionNotAllowed) {
		t.Fatalf("continue on single-select: got %v want ErrActionNotAllowed", err)
	}

	w.step = StepObstacles
	if err := w.Continue(); !errors.Is(err, ErrSelectionRequired) {
		t.Fatalf("continue on empty multi-select: got %v want ErrSelectionRequired", err)
	}
	if err := w.ToggleObstacle(rules.Obstacles[1]); err != nil {
		t.Fatalf("toggle obstacle: %v", err)
	}
	if err := w.Continue(); err != nil {
		t.Fatalf("continue with selection: %v", err)
	}
	if w.StepIndex() != StepDiet {
		t.Fatalf("unexpected step: got %d want %d", w.StepIndex(), StepDiet)
	}
}

func TestWizardToggleRemovesOnSecondCall(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	w.step = StepObstacles

	item := rules.Obstacles[2]
	if err := w.ToggleObstacle(item); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := w.ToggleObstacle(item); err != nil {
		t.Fatalf("toggle again: %v", err)
	}
	if n := len(w.Draft().Obstacles); n != 0 {
		t.Fatalf("unexpected obstacle count: got %d want 0", n)
	}
	if err := w.ToggleObstacle("Bad weather"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("unknown obstacle: got %v want ErrInvalidValue", err)
	}
}

func TestWizardBackKeepsAnswers(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	if err := w.SetGender(enums.GenderOther); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	w.Back()
	if w.StepIndex() != StepGender {
		t.Fatalf("unexpected step after back: got %d", w.StepIndex())
	}
	if w.Draft().Gender != enums.GenderOther {
		t.Fatalf("back dropped the answer")
	}
	w.Back()
	if w.StepIndex() != StepGender {
		t.Fatalf("back below first step: got %d", w.StepIndex())
	}
}

func TestWizardBodyMetricsRange(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	w.step = StepBodyMetrics

	if err := w.SetBodyMetrics(99, 70); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("short height: got %v want ErrInvalidValue", err)
	}
	if err := w.SetBodyMetrics(170, 201); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("heavy weight: got %v want ErrInvalidValue", err)
	}
	if err := w.SetBodyMetrics(170, 70); err != nil {
		t.Fatalf("valid metrics: %v", err)
	}
	if w.StepIndex() != StepBodyMetrics {
		t.Fatalf("slider step must not auto-advance")
	}
}

func TestWizardBirthDateInFuture(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	w.step = StepBirthDate
	w.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	if err := w.SetBirthDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("future birth date: got %v want ErrInvalidValue", err)
	}
}

func TestWizardNotificationOutcomes(t *testing.T) {
	w, n := newTestWizard(notify.StatusGranted)
	w.step = StepNotifications

	status, err := w.RequestNotifications(context.Background())
	if err != nil {
		t.Fatalf("request notifications: %v", err)
	}
	if status != notify.StatusGranted {
		t.Fatalf("unexpected status: got %v", status)
	}
	if len(n.pushes) != 1 {
		t.Fatalf("expected welcome push, got %d", len(n.pushes))
	}
	if w.StepIndex() != StepRating {
		t.Fatalf("unexpected step: got %d want %d", w.StepIndex(), StepRating)
	}

	w, n = newTestWizard(notify.StatusDenied)
	w.step = StepNotifications
	status, err = w.RequestNotifications(context.Background())
	if err != nil {
		t.Fatalf("request notifications: %v", err)
	}
	if status != notify.StatusDenied {
		t.Fatalf("unexpected status: got %v", status)
	}
	if len(n.pushes) != 0 {
		t.Fatalf("denied permission must not push")
	}
	if w.StepIndex() != StepRating {
		t.Fatalf("denial must still advance: got %d", w.StepIndex())
	}
}

func TestWizardTrialOfferLoop(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	w.step = StepAccountFork

	if err := w.ChooseSignIn(); err != nil {
		t.Fatalf("choose sign in: %v", err)
	}
	if w.StepIndex() != StepTrialOffer {
		t.Fatalf("unexpected step: got %d want %d", w.StepIndex(), StepTrialOffer)
	}
	if err := w.DismissTrial(); err != nil {
		t.Fatalf("dismiss trial: %v", err)
	}
	if w.StepIndex() != StepAccountFork {
		t.Fatalf("unexpected step: got %d want %d", w.StepIndex(), StepAccountFork)
	}
	if err := w.Continue(); !errors.Is(err, ErrActionNotAllowed) {
		t.Fatalf("continue on fork: got %v want ErrActionNotAllowed", err)
	}
}

func TestWizardFinishOnlyAtEnd(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	if _, err := w.Finish(); !errors.Is(err, ErrActionNotAllowed) {
		t.Fatalf("finish on first step: got %v want ErrActionNotAllowed", err)
	}
}

func TestWizardTargetDelta(t *testing.T) {
	w, _ := newTestWizard(notify.StatusDenied)
	w.draft.WeightKG = 72
	w.draft.DesiredWeightKG = 65
	if got := w.TargetDeltaKG(); got != 7 {
		t.Fatalf("unexpected delta: got %d want 7", got)
	}
}

func TestWizardCatalogCoversEveryStep(t *testing.T) {
	for i := 1; i <= TotalSteps; i++ {
		step, ok := CatalogStep(i)
		if !ok {
			t.Fatalf("missing catalog entry for step %d", i)
		}
		if step.Index != i {
			t.Fatalf("catalog index mismatch: got %d want %d", step.Index, i)
		}
	}
}
