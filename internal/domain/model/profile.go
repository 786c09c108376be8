package model

import (
	"time"

	"github.com/RostianaElla/caihealth/internal/domain/enums"
)

// ExternalIdentity is the identity-provider payload bound to a profile.
// At most one identity is attached per profile.
type ExternalIdentity struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Profile is the single durable record of the user's fitness/diet
// parameters. JSON keys match the wire format the mobile clients store,
// so a record written by an older client still loads.
type Profile struct {
	Gender           enums.Gender           `json:"gender,omitempty"`
	WorkoutFrequency enums.WorkoutFrequency `json:"workoutFrequency,omitempty"`
	ReferralSource   enums.ReferralSource   `json:"referralSource,omitempty"`
	TriedOtherApps   *bool                  `json:"triedOtherApps,omitempty"`
	HeightCM         int                    `json:"height,omitempty"`
	WeightKG         int                    `json:"weight,omitempty"`
	BirthDate        *time.Time             `json:"birthDate,omitempty"`
	Goal             enums.Goal             `json:"goal,omitempty"`
	DesiredWeightKG  int                    `json:"desiredWeight,omitempty"`
	Pace             enums.Pace             `json:"speed,omitempty"`
	Obstacles        []string               `json:"obstacles"`
	Diet             enums.DietType         `json:"diet,omitempty"`
	Accomplishments  []string               `json:"accomplishments"`
	ReferralCode     string                 `json:"referralCode,omitempty"`
	IsRegistered     bool                   `json:"isRegistered"`
	Identity         *ExternalIdentity      `json:"googleProfile,omitempty"`
}
