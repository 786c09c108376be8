package session

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
	"github.com/RostianaElla/caihealth/internal/domain/model"
	"github.com/RostianaElla/caihealth/internal/infra/notify"
	"github.com/RostianaElla/caihealth/internal/services/identity"
	"github.com/RostianaElla/caihealth/internal/services/onboarding"
)

type fakeStore struct {
	profile *model.Profile
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStore) Load(context.Context) (model.Profile, bool, error) {
	if f.loadErr != nil {
		return model.Profile{}, false, f.loadErr
	}
	if f.profile == nil {
		return model.Profile{}, false, nil
	}
	return *f.profile, true, nil
}

func (f *fakeStore) Save(_ context.Context, p model.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.profile = &p
	return nil
}

type fakeProvider struct {
	accounts   []identity.Account
	resolveErr error
}

func (f *fakeProvider) Accounts() []identity.Account { return f.accounts }

func (f *fakeProvider) Resolve(_ context.Context, accountID string) (string, error) {
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return "token-for-" + accountID, nil
}

type fakeParser struct {
	identity model.ExternalIdentity
	err      error
}

func (f *fakeParser) Parse(string) (model.ExternalIdentity, error) {
	return f.identity, f.err
}

type fakeNotifier struct{}

func (fakeNotifier) RequestPermission(context.Context) (notify.Status, error) {
	return notify.StatusDenied, nil
}

func (fakeNotifier) Push(context.Context, string, string) error { return nil }

func newTestController(store *fakeStore) *Controller {
	idp := &fakeProvider{accounts: []identity.Account{{ID: "primary", Name: "User Google", Email: "user.health@gmail.com"}}}
	parser := &fakeParser{identity: model.ExternalIdentity{Name: "User Google", Email: "user.health@gmail.com"}}
	return NewController(store, idp, parser, fakeNotifier{}, zap.NewNop())
}

func registeredProfile() model.Profile {
	return model.Profile{
		Gender:          enums.GenderFemale,
		HeightCM:        168,
		WeightKG:        72,
		Goal:            enums.GoalLoseWeight,
		DesiredWeightKG: 65,
		Obstacles:       []string{"Busy schedule"},
		Accomplishments: []string{"Eat and live healthy"},
		IsRegistered:    true,
	}
}

func TestInitFreshStartShowsLogin(t *testing.T) {
	c := newTestController(&fakeStore{})
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if c.View() != enums.ViewLogin {
		t.Fatalf("unexpected view: got %s want %s", c.View(), enums.ViewLogin)
	}
}

func TestInitResumesRegisteredProfile(t *testing.T) {
	p := registeredProfile()
	c := newTestController(&fakeStore{profile: &p})
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if c.View() != enums.ViewDashboard {
		t.Fatalf("unexpected view: got %s want %s", c.View(), enums.ViewDashboard)
	}
	got, ok := c.Profile()
	if !ok || got.HeightCM != 168 {
		t.Fatalf("unexpected profile: %+v ok=%v", got, ok)
	}
}

func TestInitIgnoresUnregisteredRecord(t *testing.T) {
	p := model.Profile{Identity: &model.ExternalIdentity{Email: "user.health@gmail.com"}}
	c := newTestController(&fakeStore{profile: &p})
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if c.View() != enums.ViewLogin {
		t.Fatalf("unexpected view: got %s want %s", c.View(), enums.ViewLogin)
	}
}

func TestStartAndCompleteOnboarding(t *testing.T) {
	store := &fakeStore{}
	c := newTestController(store)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := c.StartOnboarding(); err != nil {
		t.Fatalf("start onboarding: %v", err)
	}
	if c.View() != enums.ViewOnboarding {
		t.Fatalf("unexpected view: got %s", c.View())
	}
	if err := c.StartOnboarding(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double start: got %v want ErrInvalidState", err)
	}

	err := c.Onboarding(func(w *onboarding.Wizard) error {
		return w.SetGender(enums.GenderMale)
	})
	if err != nil {
		t.Fatalf("wizard op: %v", err)
	}

	// Jump to the account fork to finish.
	err = c.Onboarding(func(w *onboarding.Wizard) error {
		for w.StepIndex() < onboarding.StepAccountFork {
			forceAdvance(t, w)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk wizard: %v", err)
	}

	profile, err := c.CompleteOnboarding(context.Background())
	if err != nil {
		t.Fatalf("complete onboarding: %v", err)
	}
	if !profile.IsRegistered {
		t.Fatalf("completed profile not registered")
	}
	if c.View() != enums.ViewDashboard {
		t.Fatalf("unexpected view: got %s", c.View())
	}
	if store.saves != 1 {
		t.Fatalf("unexpected save count: got %d want 1", store.saves)
	}
}

func TestAbortOnboardingKeepsStore(t *testing.T) {
	p := model.Profile{Identity: &model.ExternalIdentity{Email: "user.health@gmail.com"}}
	store := &fakeStore{profile: &p}
	c := newTestController(store)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := c.StartOnboarding(); err != nil {
		t.Fatalf("start onboarding: %v", err)
	}
	if err := c.AbortOnboarding(); err != nil {
		t.Fatalf("abort onboarding: %v", err)
	}
	if c.View() != enums.ViewLogin {
		t.Fatalf("unexpected view: got %s", c.View())
	}
	if store.saves != 0 {
		t.Fatalf("abort must not write: %d saves", store.saves)
	}
}

func TestBindingWithNoStoredProfileStartsOnboarding(t *testing.T) {
	store := &fakeStore{}
	c := newTestController(store)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	prompt, err := c.BeginBinding()
	if err != nil {
		t.Fatalf("begin binding: %v", err)
	}
	if len(prompt.Accounts) != 1 || prompt.AttemptID == "" {
		t.Fatalf("unexpected prompt: %+v", prompt)
	}

	if err := c.ConfirmBinding(context.Background(), prompt.AttemptID, "primary"); err != nil {
		t.Fatalf("confirm binding: %v", err)
	}
	if c.View() != enums.ViewOnboarding {
		t.Fatalf("unexpected view: got %s want %s", c.View(), enums.ViewOnboarding)
	}
	if store.saves != 0 {
		t.Fatalf("fresh sign-in must not write the store: %d saves", store.saves)
	}

	err = c.Onboarding(func(w *onboarding.Wizard) error {
		if w.Draft().Identity == nil {
			t.Fatalf("wizard draft missing identity")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("wizard access: %v", err)
	}
}

func TestAbortAfterFreshBindingLeavesStoreEmpty(t *testing.T) {
	store := &fakeStore{}
	c := newTestController(store)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	prompt, err := c.BeginBinding()
	if err != nil {
		t.Fatalf("begin binding: %v", err)
	}
	if err := c.ConfirmBinding(context.Background(), prompt.AttemptID, "primary"); err != nil {
		t.Fatalf("confirm binding: %v", err)
	}
	if err := c.AbortOnboarding(); err != nil {
		t.Fatalf("abort onboarding: %v", err)
	}
	if c.View() != enums.ViewLogin {
		t.Fatalf("unexpected view: got %s", c.View())
	}
	if store.saves != 0 || store.profile != nil {
		t.Fatalf("aborted sign-in persisted a record: saves=%d profile=%+v", store.saves, store.profile)
	}
}

func TestBindingResumesRegisteredProfile(t *testing.T) {
	p := registeredProfile()
	store := &fakeStore{profile: &p}
	c := newTestController(store)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	c.Logout()

	prompt, err := c.BeginBinding()
	if err != nil {
		t.Fatalf("begin binding: %v", err)
	}
	if err := c.ConfirmBinding(context.Background(), prompt.AttemptID, "primary"); err != nil {
		t.Fatalf("confirm binding: %v", err)
	}
	if c.View() != enums.ViewDashboard {
		t.Fatalf("unexpected view: got %s want %s", c.View(), enums.ViewDashboard)
	}
	got, _ := c.Profile()
	if got.HeightCM != 168 || got.Goal != enums.GoalLoseWeight {
		t.Fatalf("profile fields lost on re-sign-in: %+v", got)
	}
	if got.Identity == nil {
		t.Fatalf("identity not attached")
	}
}

func TestBindingAttemptLifecycle(t *testing.T) {
	c := newTestController(&fakeStore{})
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	prompt, err := c.BeginBinding()
	if err != nil {
		t.Fatalf("begin binding: %v", err)
	}
	if _, err := c.BeginBinding(); !errors.Is(err, ErrBindingInFlight) {
		t.Fatalf("second begin: got %v want ErrBindingInFlight", err)
	}
	if err := c.CancelBinding("bogus"); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("cancel bogus: got %v want ErrBindingNotFound", err)
	}
	if err := c.CancelBinding(prompt.AttemptID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := c.ConfirmBinding(context.Background(), prompt.AttemptID, "primary"); !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("confirm after cancel: got %v want ErrBindingNotFound", err)
	}
	if c.View() != enums.ViewLogin {
		t.Fatalf("cancelled binding must not change the view: %s", c.View())
	}
}

func TestBindingDuringOnboardingAttachesIdentity(t *testing.T) {
	c := newTestController(&fakeStore{})
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := c.StartOnboarding(); err != nil {
		t.Fatalf("start onboarding: %v", err)
	}
	err := c.Onboarding(func(w *onboarding.Wizard) error {
		for w.StepIndex() < onboarding.StepAccountFork {
			forceAdvance(t, w)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk wizard: %v", err)
	}

	prompt, err := c.BeginBinding()
	if err != nil {
		t.Fatalf("begin binding: %v", err)
	}
	if err := c.ConfirmBinding(context.Background(), prompt.AttemptID, "primary"); err != nil {
		t.Fatalf("confirm binding: %v", err)
	}
	if c.View() != enums.ViewOnboarding {
		t.Fatalf("sign-in mid-wizard must stay in onboarding: %s", c.View())
	}
	err = c.Onboarding(func(w *onboarding.Wizard) error {
		if w.StepIndex() != onboarding.StepTrialOffer {
			t.Fatalf("unexpected step: got %d want %d", w.StepIndex(), onboarding.StepTrialOffer)
		}
		if w.Draft().Identity == nil {
			t.Fatalf("identity not attached to draft")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("wizard access: %v", err)
	}
}

func TestLogoutKeepsStoredProfile(t *testing.T) {
	p := registeredProfile()
	store := &fakeStore{profile: &p}
	c := newTestController(store)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	c.Logout()
	if c.View() != enums.ViewLogin {
		t.Fatalf("unexpected view: got %s", c.View())
	}
	if _, ok := c.Profile(); ok {
		t.Fatalf("profile still in memory after logout")
	}
	if store.profile == nil {
		t.Fatalf("logout must not clear the store")
	}

	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	if c.View() != enums.ViewDashboard {
		t.Fatalf("stored profile should resume: got %s", c.View())
	}
}

// forceAdvance answers whatever the current step asks for.
func forceAdvance(t *testing.T, w *onboarding.Wizard) {
	t.Helper()
	var err error
	switch w.StepIndex() {
	case onboarding.StepGender:
		err = w.SetGender(enums.GenderFemale)
	case onboarding.StepWorkoutFrequency:
		err = w.SetWorkoutFrequency(enums.WorkoutFrequencyLow)
	case onboarding.StepReferralSource:
		err = w.SetReferralSource(enums.ReferralSourceOther)
	case onboarding.StepTriedOtherApps:
		err = w.SetTriedOtherApps(false)
	case onboarding.StepGoal:
		err = w.SetGoal(enums.GoalMaintain)
	case onboarding.StepPace:
		err = w.SetPace(enums.PaceRabbit)
	case onboarding.StepObstacles:
		if err = w.ToggleObstacle("Busy schedule"); err == nil {
			err = w.Continue()
		}
	case onboarding.StepDiet:
		err = w.SetDiet(enums.DietClassic)
	case onboarding.StepAccomplishments:
		if err = w.ToggleAccomplishment("Eat and live healthy"); err == nil {
			err = w.Continue()
		}
	case onboarding.StepNotifications:
		_, err = w.RequestNotifications(context.Background())
	default:
		err = w.Continue()
	}
	if err != nil {
		t.Fatalf("advance from step %d: %v", w.StepIndex(), err)
	}
}
