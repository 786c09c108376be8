package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
	"github.com/RostianaElla/caihealth/internal/domain/model"
	"github.com/RostianaElla/caihealth/internal/infra/notify"
	"github.com/RostianaElla/caihealth/internal/services/identity"
	"github.com/RostianaElla/caihealth/internal/services/onboarding"
	"github.com/RostianaElla/caihealth/internal/services/profiles"
)

var (
	ErrInvalidState    = errors.New("operation not allowed in the current view")
	ErrBindingNotFound = errors.New("no matching binding attempt")
	ErrBindingInFlight = errors.New("another binding attempt is in flight")
)

type profileStore interface {
	Load(ctx context.Context) (model.Profile, bool, error)
	Save(ctx context.Context, profile model.Profile) error
}

type identityProvider interface {
	Accounts() []identity.Account
	Resolve(ctx context.Context, accountID string) (string, error)
}

type tokenParser interface {
	Parse(raw string) (model.ExternalIdentity, error)
}

type notifier interface {
	RequestPermission(ctx context.Context) (notify.Status, error)
	Push(ctx context.Context, title, body string) error
}

// BindingPrompt is the account chooser offered to the user when a
// sign-in starts.
type BindingPrompt struct {
	AttemptID string
	Accounts  []identity.Account
}

// Controller owns the single app session: which view is active, the
// signed-in profile, the running wizard and the pending binding
// attempt. All transitions go through its mutex.
type Controller struct {
	store  profileStore
	idp    identityProvider
	tokens tokenParser
	notif  notifier
	log    *zap.Logger

	mu      sync.Mutex
	view    enums.View
	profile *model.Profile
	wizard  *onboarding.Wizard
	attempt string
}

func NewController(store profileStore, idp identityProvider, tokens tokenParser, notif notifier, log *zap.Logger) *Controller {
	return &Controller{
		store:  store,
		idp:    idp,
		tokens: tokens,
		notif:  notif,
		log:    log,
		view:   enums.ViewLogin,
	}
}

// Init loads the stored profile and resumes the session. A registered
// profile lands on the dashboard, anything else on the login screen.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if ok && stored.IsRegistered {
		c.profile = &stored
		c.view = enums.ViewDashboard
		c.log.Info("session resumed", zap.String("view", string(c.view)))
		return nil
	}
	c.profile = nil
	c.view = enums.ViewLogin
	return nil
}

// View returns the active view.
func (c *Controller) View() enums.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Profile returns the signed-in profile, if any.
func (c *Controller) Profile() (model.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return model.Profile{}, false
	}
	return *c.profile, true
}

// Snapshot describes the session for the transport layer.
type Snapshot struct {
	View    enums.View
	Step    *onboarding.Step
	Profile *model.Profile
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{View: c.view}
	if c.wizard != nil && c.view == enums.ViewOnboarding {
		step := c.wizard.Current()
		snap.Step = &step
	}
	if c.profile != nil {
		p := *c.profile
		snap.Profile = &p
	}
	return snap
}

// StartOnboarding begins the wizard from the login screen.
func (c *Controller) StartOnboarding() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != enums.ViewLogin {
		return fmt.Errorf("start onboarding from %s: %w", c.view, ErrInvalidState)
	}
	c.wizard = onboarding.New(c.notif, c.log)
	c.view = enums.ViewOnboarding
	return nil
}

// Onboarding runs one wizard operation under the session lock.
func (c *Controller) Onboarding(fn func(w *onboarding.Wizard) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != enums.ViewOnboarding || c.wizard == nil {
		return fmt.Errorf("wizard access from %s: %w", c.view, ErrInvalidState)
	}
	return fn(c.wizard)
}

// CompleteOnboarding finishes the wizard, persists the registered
// profile and routes to the dashboard.
func (c *Controller) CompleteOnboarding(ctx context.Context) (model.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != enums.ViewOnboarding || c.wizard == nil {
		return model.Profile{}, fmt.Errorf("complete onboarding from %s: %w", c.view, ErrInvalidState)
	}
	profile, err := c.wizard.Finish()
	if err != nil {
		return model.Profile{}, err
	}
	if err := c.store.Save(ctx, profile); err != nil {
		return model.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	c.profile = &profile
	c.wizard = nil
	c.view = enums.ViewDashboard
	c.log.Info("onboarding completed", zap.Bool("has_identity", profile.Identity != nil))
	return profile, nil
}

// AbortOnboarding drops the wizard and its answers and returns to the
// login screen. Nothing is persisted.
func (c *Controller) AbortOnboarding() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != enums.ViewOnboarding {
		return fmt.Errorf("abort onboarding from %s: %w", c.view, ErrInvalidState)
	}
	c.wizard = nil
	c.view = enums.ViewLogin
	return nil
}

// BeginBinding opens an identity binding attempt and returns the
// account chooser. Valid from the login screen and from the wizard's
// sign-in steps.
func (c *Controller) BeginBinding() (BindingPrompt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == enums.ViewDashboard {
		return BindingPrompt{}, fmt.Errorf("begin binding from %s: %w", c.view, ErrInvalidState)
	}
	if c.attempt != "" {
		return BindingPrompt{}, ErrBindingInFlight
	}
	c.attempt = uuid.NewString()
	return BindingPrompt{AttemptID: c.attempt, Accounts: c.idp.Accounts()}, nil
}

// CancelBinding dismisses the account chooser without signing in.
func (c *Controller) CancelBinding(attemptID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attempt == "" || c.attempt != attemptID {
		return ErrBindingNotFound
	}
	c.attempt = ""
	return nil
}

// ConfirmBinding resolves the chosen account, merges the identity with
// whatever is stored at that moment and routes the session. The store
// is re-read after the resolve delay so a record written meanwhile is
// not lost.
func (c *Controller) ConfirmBinding(ctx context.Context, attemptID, accountID string) error {
	c.mu.Lock()
	if c.attempt == "" || c.attempt != attemptID {
		c.mu.Unlock()
		return ErrBindingNotFound
	}
	c.mu.Unlock()

	// The resolve simulates provider latency; run it outside the lock
	// so the session stays readable.
	token, err := c.idp.Resolve(ctx, accountID)
	if err != nil {
		c.clearAttempt(attemptID)
		return fmt.Errorf("resolve account: %w", err)
	}
	extID, err := c.tokens.Parse(token)
	if err != nil {
		c.clearAttempt(attemptID)
		return fmt.Errorf("parse identity token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempt != attemptID {
		return ErrBindingNotFound
	}
	c.attempt = ""

	if c.view == enums.ViewOnboarding && c.wizard != nil {
		// Sign-in offered on the closing wizard screens.
		if err := c.wizard.AttachIdentity(extID); err != nil {
			return err
		}
		if c.wizard.StepIndex() == onboarding.StepAccountFork {
			if err := c.wizard.ChooseSignIn(); err != nil {
				return err
			}
		}
		return nil
	}

	stored, ok, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	var existing *model.Profile
	if ok {
		existing = &stored
	}
	merged := profiles.MergeIdentity(existing, extID)

	if merged.IsRegistered {
		// Re-bind of a finished profile updates the stored record.
		if err := c.store.Save(ctx, merged); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		c.profile = &merged
		c.wizard = nil
		c.view = enums.ViewDashboard
		c.log.Info("sign-in resumed existing profile", zap.String("email", extID.Email))
		return nil
	}

	// Fresh sign-in: the identity rides the in-memory draft and is
	// persisted only when onboarding completes.

	c.wizard = onboarding.Resume(merged, c.notif, c.log)
	c.view = enums.ViewOnboarding
	c.log.Info("sign-in started onboarding", zap.String("email", extID.Email))
	return nil
}

func (c *Controller) clearAttempt(attemptID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempt == attemptID {
		c.attempt = ""
	}
}

// Logout drops the in-memory session and shows the login screen. The
// stored profile is kept so the next sign-in resumes it.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = nil
	c.wizard = nil
	c.attempt = ""
	c.view = enums.ViewLogin
}
