package profiles

import (
	"github.com/RostianaElla/caihealth/internal/domain/model"
)

// Draft defaults applied when onboarding starts.
const (
	DefaultHeightCM        = 170
	DefaultWeightKG        = 70
	DefaultDesiredWeightKG = 65
)

// NewDraft returns the empty wizard draft with its slider defaults.
func NewDraft() model.Profile {
	return model.Profile{
		HeightCM:        DefaultHeightCM,
		WeightKG:        DefaultWeightKG,
		DesiredWeightKG: DefaultDesiredWeightKG,
		Obstacles:       []string{},
		Accomplishments: []string{},
	}
}

// MergeIdentity reconciles a freshly resolved external identity with
// whatever profile already exists.
//
// Registered profile: every non-identity field is preserved and only
// the identity fields are overwritten. Absent profile, or a draft that
// never finished registration: the identity is attached to a bare
// profile and the caller routes to the wizard.
func MergeIdentity(existing *model.Profile, id model.ExternalIdentity) model.Profile {
	attached := id

	if existing == nil || !existing.IsRegistered {
		return model.Profile{Identity: &attached}
	}

	merged := *existing
	merged.Identity = &attached
	return merged
}

// CompleteOnboarding marks the draft as registered. Calling it on an
// already-registered profile changes nothing else, so a double
// invocation persists identical content.
func CompleteOnboarding(draft model.Profile) model.Profile {
	draft.IsRegistered = true
	return draft
}
