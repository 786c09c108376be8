package dto

// AnswerRequest carries the payload for whatever step the wizard is on.
// Only the fields relevant to the current step are read.
type AnswerRequest struct {
	Gender           string `json:"gender,omitempty"`
	WorkoutFrequency string `json:"workout_frequency,omitempty"`
	ReferralSource   string `json:"referral_source,omitempty"`
	TriedOtherApps   *bool  `json:"tried_other_apps,omitempty"`
	HeightCM         int    `json:"height_cm,omitempty"`
	WeightKG         int    `json:"weight_kg,omitempty"`
	BirthDate        string `json:"birth_date,omitempty"`
	Goal             string `json:"goal,omitempty"`
	DesiredWeightKG  int    `json:"desired_weight_kg,omitempty"`
	Pace             string `json:"pace,omitempty"`
	Option           string `json:"option,omitempty"`
	Diet             string `json:"diet,omitempty"`
	ReferralCode     string `json:"referral_code,omitempty"`
}

type TargetResponse struct {
	WeightDeltaKG int `json:"weight_delta_kg"`
}

type NotificationResponse struct {
	Status string `json:"status"`
}
