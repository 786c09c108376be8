package onboarding

import (
	"github.com/RostianaElla/caihealth/internal/domain/enums"
	"github.com/RostianaElla/caihealth/internal/domain/rules"
)

// StepKind decides which wizard operations a step accepts.
type StepKind string

const (
	// KindSingleSelect auto-advances as soon as the answer is set.
	KindSingleSelect StepKind = "single_select"
	// KindInput holds range/text values and needs an explicit continue.
	KindInput StepKind = "input"
	// KindMultiSelect toggles set membership; continue is gated on a
	// non-empty selection.
	KindMultiSelect StepKind = "multi_select"
	// KindInfo carries no data and advances on continue.
	KindInfo StepKind = "info"
	// KindNotification requests push permission; any outcome advances.
	KindNotification StepKind = "notification"
	// KindAccountFork offers sign-in (jump to the trial step) or skip
	// (finish immediately).
	KindAccountFork StepKind = "account_fork"
	// KindTrialOffer finishes the wizard, or dismisses back to the fork.
	KindTrialOffer StepKind = "trial_offer"
)

// TotalSteps is fixed; the progress indicator is step/TotalSteps.
const TotalSteps = 22

// Step indices, 1-based, in presentation order.
const (
	StepGender           = 1
	StepWorkoutFrequency = 2
	StepReferralSource   = 3
	StepTriedOtherApps   = 4
	StepLongTermResults  = 5
	StepBodyMetrics      = 6
	StepBirthDate        = 7
	StepGoal             = 8
	StepDesiredWeight    = 9
	StepTargetSummary    = 10
	StepPace             = 11
	StepObstacles        = 12
	StepDiet             = 13
	StepAccomplishments  = 14
	StepMotivation       = 15
	StepPlanReady        = 16
	StepNotifications    = 17
	StepRating           = 18
	StepReferralCode     = 19
	StepCongrats         = 20
	StepAccountFork      = 21
	StepTrialOffer       = 22
)

// Step describes one wizard screen for the transport layer.
type Step struct {
	Index   int      `json:"index"`
	Kind    StepKind `json:"kind"`
	Title   string   `json:"title"`
	Options []string `json:"options,omitempty"`
}

var stepCatalog = map[int]Step{
	StepGender: {
		Index: StepGender, Kind: KindSingleSelect,
		Title:   "Choose your gender",
		Options: []string{string(enums.GenderFemale), string(enums.GenderMale), string(enums.GenderOther)},
	},
	StepWorkoutFrequency: {
		Index: StepWorkoutFrequency, Kind: KindSingleSelect,
		Title:   "How many workouts do you do per week?",
		Options: []string{string(enums.WorkoutFrequencyLow), string(enums.WorkoutFrequencyModerate), string(enums.WorkoutFrequencyHigh)},
	},
	StepReferralSource: {
		Index: StepReferralSource, Kind: KindSingleSelect,
		Title: "Where did you hear about us?",
		Options: []string{
			string(enums.ReferralSourceTikTok), string(enums.ReferralSourceYouTube),
			string(enums.ReferralSourceInstagram), string(enums.ReferralSourceGoogle),
			string(enums.ReferralSourcePlayStore), string(enums.ReferralSourceFacebook),
			string(enums.ReferralSourceOther),
		},
	},
	StepTriedOtherApps: {
		Index: StepTriedOtherApps, Kind: KindSingleSelect,
		Title:   "Have you tried other calorie tracking apps?",
		Options: []string{"Yes", "No"},
	},
	StepLongTermResults: {
		Index: StepLongTermResults, Kind: KindInfo,
		Title: "Long-term results",
	},
	StepBodyMetrics: {
		Index: StepBodyMetrics, Kind: KindInput,
		Title: "Height & Weight",
	},
	StepBirthDate: {
		Index: StepBirthDate, Kind: KindInput,
		Title: "When were you born?",
	},
	StepGoal: {
		Index: StepGoal, Kind: KindSingleSelect,
		Title:   "What is your goal?",
		Options: []string{string(enums.GoalLoseWeight), string(enums.GoalMaintain), string(enums.GoalGainWeight)},
	},
	StepDesiredWeight: {
		Index: StepDesiredWeight, Kind: KindInput,
		Title: "What is your desired weight?",
	},
	StepTargetSummary: {
		Index: StepTargetSummary, Kind: KindInfo,
		Title: "Your target",
	},
	StepPace: {
		Index: StepPace, Kind: KindSingleSelect,
		Title:   "How fast do you want to reach your goal?",
		Options: []string{string(enums.PaceKoala), string(enums.PaceRabbit), string(enums.PacePuma)},
	},
	StepObstacles: {
		Index: StepObstacles, Kind: KindMultiSelect,
		Title:   "What's stopping you from reaching your goals?",
		Options: rules.Obstacles,
	},
	StepDiet: {
		Index: StepDiet, Kind: KindSingleSelect,
		Title:   "Do you follow a specific diet?",
		Options: []string{string(enums.DietClassic), string(enums.DietPescatarian), string(enums.DietVegetarian), string(enums.DietVegan)},
	},
	StepAccomplishments: {
		Index: StepAccomplishments, Kind: KindMultiSelect,
		Title:   "What would you like to accomplish?",
		Options: rules.Accomplishments,
	},
	StepMotivation: {
		Index: StepMotivation, Kind: KindInfo,
		Title: "You have great potential to crush your goal",
	},
	StepPlanReady: {
		Index: StepPlanReady, Kind: KindInfo,
		Title: "Thank you for trusting us",
	},
	StepNotifications: {
		Index: StepNotifications, Kind: KindNotification,
		Title: "Reach your goal with notifications",
	},
	StepRating: {
		Index: StepRating, Kind: KindInfo,
		Title: "Love the app?",
	},
	StepReferralCode: {
		Index: StepReferralCode, Kind: KindInput,
		Title: "Enter referral code",
	},
	StepCongrats: {
		Index: StepCongrats, Kind: KindInfo,
		Title: "Congratulations! Your custom plan is ready.",
	},
	StepAccountFork: {
		Index: StepAccountFork, Kind: KindAccountFork,
		Title: "Create an account",
	},
	StepTrialOffer: {
		Index: StepTrialOffer, Kind: KindTrialOffer,
		Title: "No payment due now",
	},
}

// CatalogStep returns the screen description for a step index.
func CatalogStep(index int) (Step, bool) {
	step, ok := stepCatalog[index]
	return step, ok
}
